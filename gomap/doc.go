// Package gomap maps korm document nodes onto Go values.
//
// Mapping never fails with an error for ordinary shape mismatches: every
// step returns a value and a boolean reporting whether a value was
// produced. A field, element or entry that produces nothing is skipped and
// its siblings are still mapped. [Mapper.Decode] turns a top-level miss
// into an [UnmarshalError].
//
// Codecs registered in the mapper's [codec.Registry] are consulted for every
// target type before the built-in rules.
package gomap
