// Package styles collects the CSS a page render produces. A Registry lives
// for exactly one request (or one exported page): components insert their
// fragments as they render, identical fragments collapse onto one
// content-hash id, and the document shell reads the aggregate back out as a
// single style tag. A registry can also be seeded from a previously
// serialized id-set so a resumed render skips styles the document already
// carries.
package styles
