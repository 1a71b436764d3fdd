// Package page is the DOM boundary for attribute inputs. A Document wraps a
// parsed HTML tree; inputs are discovered by a marker class, read through
// data attributes, and filled by inserting rendered fragments. A second
// marker class records that an input has been claimed so it is never
// initialised twice.
//
// All reads and writes go through the Document lock, so inputs can be filled
// from concurrent loads while the tree stays consistent.
package page
