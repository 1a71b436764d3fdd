// Package catalog is a reference backend for the products.d controller. It
// answers getAttributesSchema and getAttributeValues queries from a Store and
// can be mounted on any mux that has a Handle method.
//
// Two stores ship with the package: MemoryStore, loaded from YAML, and
// SQLStore, backed by sqlx.
package catalog
