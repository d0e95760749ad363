// Package format holds the layout options of the korm writer.
//
// Options are independent toggles. They can be given as text, a comma
// separated list of option names:
//
//	serializeNulls,hashEntryOnNewLine,spaceAfterAssign
//
// The names "min", "pretty" and "max" stand for the presets of the same
// name and may be combined with single options.
package format
