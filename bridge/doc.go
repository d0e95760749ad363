// Package bridge converts between korm documents and YAML, JSON and plain
// Go values, and applies JSON patches and expression queries to documents.
package bridge
