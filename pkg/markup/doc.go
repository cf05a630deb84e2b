// Package markup rewrites component markup for an output target. Authors
// express target differences with prefixed attributes: amp-* attributes
// surface only in AMP output (unwrapped into AMP's own syntax), web-*
// attributes only in web output. The transform walks the token stream, so
// text, comments, and element structure pass through untouched; along the
// way it hoists style blocks for registry insertion, drops author scripts
// from AMP output, downgrades known AMP elements for the web, and records
// the AMP elements a document will need runtime scripts for.
package markup
