// Package catalog loads the component library a site renders from. Each
// component is a directory holding an optional manifest, markup templates
// (shared or split per target), and CSS fragments. The loader resolves
// per-target markup up front, compiles props schemas, and verifies the
// dependency graph so render time only deals with well-formed components.
package catalog
