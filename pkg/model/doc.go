// Package model defines the wire data model shared by the attribute loaders,
// the widget renderers, and the reference catalog backend. Schemas are
// free-form: every attribute carries a map of named properties (description,
// fill_type, ...) so backends can grow new properties without a client
// release. Value identifiers accept both JSON strings and numbers because the
// legacy backend emits numeric ids for most attribute kinds.
package model
