// Package attrschema reads attribute properties out of the per-product-type
// attribute schema served by the products backend. The schema is fetched on
// every call; callers that need caching wrap the loader.
package attrschema
