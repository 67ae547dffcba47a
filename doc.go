/*
Package komorph is the lookup layer of a compact morphological dictionary
for Hangul (Korean) text segmentation.

A dictionary maps surface words to a single-byte word class and stores,
per class, a fixed 15-byte metadata record describing how words of that
class decompose into morphemes. Lookups run against a frozen byte-labeled
transducer (package fst): every character of a key, whether Latin-1 or a
Hangul syllable, is encoded as exactly three byte labels, so one
automaton serves both character domains. Hangul syllables are decomposed into their
conjoining jamo indices; Latin-1 characters are mapped onto the label
space that the UTF-8 continuation bytes of a Hangul syllable would
occupy.

The dictionary is immutable after Compile (or LoadDictionary) and safe
for concurrent readers; traversal state lives in per-call cursors.

Further Reading

	https://en.wikipedia.org/wiki/Korean_language_and_computers
	https://www.unicode.org/versions/latest/ch03.pdf  (conjoining jamo arithmetic)

----------------------------------------------------------------------

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer@com>

All rights reserved.

License information is available in the LICENSE file.
*/
package komorph

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'komorph'
func tracer() tracing.Trace {
	return tracing.Select("komorph")
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
