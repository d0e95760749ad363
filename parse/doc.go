// Package parse builds korm documents from text.
//
// [Parse] returns the ordered top-level nodes of a document; [ParseNode]
// returns the single value those nodes stand for.
package parse
