// Package encode writes Go values and korm documents as korm text.
//
// # Usage
//
//	type user struct {
//	    Name string `korm:"field=name"`
//	}
//	err := encode.Encode(user{Name: "Sxtanna"}, os.Stdout)
//	// name: "Sxtanna"
//
//	// Encode with layout options
//	err = encode.Encode(v, w, encode.EncodeLayout(format.Pretty()), encode.EncodeIndent(4))
//
// A record at the root is written as its fields without braces. Codecs
// found in the registry given with [EncodeCodecs] write their values
// through the [codec.Writer] primitives.
//
// # Related Packages
//
//   - github.com/signadot/korm-format/go-korm/format - layout options
//   - github.com/signadot/korm-format/go-korm/gomap - the read direction
package encode
