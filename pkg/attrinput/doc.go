// Package attrinput loads attribute value lists and writes them into page
// inputs as select, radio, checkbox or complexity widgets.
//
// RenderInputs claims every unfilled input of a document, starts one value
// load per input and returns a Batch. The batch callback runs once, after the
// last load has been written, and only when every load succeeded.
package attrinput
