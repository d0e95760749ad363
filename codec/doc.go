// Package codec provides user supplied converters which override the
// built-in korm mapping and formatting rules for a type.
//
// A [Registry] resolves the converter of a type by looking, in order, at an
// explicit registration for the type, at a codec the type declares itself
// through KormCodec, KormPuller or KormPusher methods, and then at the
// ancestors of the type: embedded structs in declaration order followed by
// registered interface types the type implements.
//
// Resolution carries a [Path] of the types whose codecs are running. A type
// on the path resolves to nothing, so a codec for an interface can map its
// variants with the built-in rules.
package codec
