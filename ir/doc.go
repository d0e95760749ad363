// Package ir provides the korm document model.
//
// A parsed document is a tree of [Node]s. Every node may carry a scalar
// key; the entries of a map are its keyed children, in source order.
package ir
