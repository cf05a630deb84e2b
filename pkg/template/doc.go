// Package template wraps the pongo2 template engine behind the small
// contract the rest of the pipeline renders through. Component markup,
// document shells, and theme partial overrides all execute here; the
// wrapper owns loader setup, template caching, filter registration, and
// global context plumbing so callers never touch pongo2 types.
package template
