// Package yabe implements YABE, a compact self-describing binary encoding
// for the JSON value domain extended with a typed binary blob value.
//
// The package exposes two small, allocation-free types: Writer encodes one
// value at a time into a caller-owned buffer, and Reader decodes one value
// at a time from a caller-owned buffer. Both operate through a Cursor
// (package cursor): a position + remaining-bytes pair. Every operation
// either fully succeeds and advances the cursor, or fails and leaves the
// cursor untouched - the "atomic-value invariant" described in
// SPEC_FULL.md. The exceptions are WriteData and ReadData, which may
// transfer fewer bytes than requested and advance by that partial count.
//
// The tag table - which tag byte means what - lives in package tag; the
// width-selection rules for integers, floats, and string lengths live in
// Writer.
//
// Two optional layers sit on top of this core and are built entirely out of
// its public API:
//
//   - package document provides a recursive Value type and Encoder/Decoder
//     pair that understands arrays, objects, and blobs, which the core
//     deliberately does not (structural validation is a caller concern).
//   - package stream provides a growable, pooled write buffer and optional
//     whole-frame compression/checksumming for transporting an encoded
//     document over an io.Writer/io.Reader.
package yabe

import "github.com/chmike/yabe/tag"

// Kind classifies the tag byte at a buffer position without decoding or
// advancing past it. It is a thin re-export of tag.Of for callers that only
// import the root package.
func Kind(b byte) tag.Kind {
	return tag.Of(b)
}

// MaxSmallContainer is the largest item count a packed sarray/sobject tag
// can represent; a thin re-export of tag.MaxSmallContainer for callers that
// only import the root package.
const MaxSmallContainer = tag.MaxSmallContainer
