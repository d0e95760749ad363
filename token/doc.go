// Package token provides tokenization of korm text.
//
// [Tokenize] turns a document into a flat sequence of [Token]s. Whitespace and
// comments are discarded. Quoted strings, characters and complex spans keep
// their delimiters in [Token.Bytes]; [Token.String] decodes them.
package token
