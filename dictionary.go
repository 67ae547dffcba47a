package komorph

import (
	"fmt"

	"github.com/npillmayer/komorph/fst"
)

// WordClass identifies a morphological category. It doubles as the
// index of the class's fixed-size record in the dictionary metadata.
type WordClass byte

// RecordSize is the fixed stride of per-class metadata records.
const RecordSize = 15

// Hangul syllable block and conjoining jamo arithmetic.
const (
	SBase  = 0xAC00          // first Hangul syllable
	SLast  = 0xD7A3          // last Hangul syllable
	VCount = 21              // medial jamo
	TCount = 28              // final jamo, including "none"
	NCount = VCount * TCount // syllables per initial jamo

	hangulB0 = 0xE0 | (SBase >> 12) // UTF-8 lead byte of the whole block
)

// Dictionary is an immutable, precompiled morphological dictionary:
// a byte-labeled transducer mapping encoded words to their word class,
// plus a flat array of fixed-size per-class metadata records.
//
// A Dictionary is safe for arbitrarily many concurrent readers; all
// per-call traversal state lives in local cursors.
type Dictionary struct {
	automaton  *fst.FST
	metadata   []byte
	Identifier string // identifies the dictionary
}

// NewDictionary wraps an already-built transducer and metadata array.
// The transducer's accepted label sequences must use this package's
// character encoding, and every class it outputs must have a record at
// class*RecordSize.
func NewDictionary(automaton *fst.FST, metadata []byte, name string) *Dictionary {
	return &Dictionary{automaton: automaton, metadata: metadata, Identifier: name}
}

// appendLabels appends the three byte labels encoding ch. Latin-1
// characters reuse the lead byte a Hangul syllable's UTF-8 encoding
// would produce, so both domains share one label alphabet; Hangul
// syllables are emitted as their three jamo indices. Characters outside
// both domains report ok=false.
//
// The compile path uses the same function, so the label arithmetic on
// both sides of a dictionary cannot drift apart.
func appendLabels(labels []byte, ch rune) (_ []byte, ok bool) {
	if ch < 0xFF {
		return append(labels,
			hangulB0,
			byte(0x80|((ch>>6)&0x3F)),
			byte(0x80|(ch&0x3F))), true
	}
	if ch >= SBase && ch <= SLast {
		s := ch - SBase
		return append(labels,
			byte(s/NCount),
			byte((s%NCount)/TCount),
			byte(s%TCount)), true
	}
	return labels, false
}

// Lookup finds the word class for an exact key. The boolean result is
// false when key is not an entry, contains characters outside Latin-1
// and the Hangul syllable block, or is empty.
func (dict *Dictionary) Lookup(key string) (WordClass, bool) {
	// TODO: find out why the segmenter probes empty keys at all
	if len(key) == 0 {
		return 0, false
	}
	var arc fst.Arc
	dict.automaton.FirstArc(&arc)
	in := dict.automaton.BytesReader()
	outs := dict.automaton.Outputs()

	// accumulate output as we go
	output := outs.NoOutput()
	var buf [3]byte
	for _, ch := range key {
		labels, ok := appendLabels(buf[:0], ch)
		if !ok {
			return 0, false
		}
		for _, label := range labels {
			found, err := dict.automaton.FindTargetArc(label, &arc, &arc, in)
			fatal(err)
			if !found {
				return 0, false
			}
			output = outs.Add(output, arc.Output)
		}
	}
	if !arc.IsFinal() {
		return 0, false // valid prefix, but not an entry itself
	}
	return WordClass(outs.Add(output, arc.FinalOutput())), true
}

// HasPrefix reports whether any entry starts with key. It walks the
// same labels as Lookup but skips outputs and finality, so longest-match
// scans can stop extending a candidate as soon as it returns false.
// The empty key trivially succeeds.
func (dict *Dictionary) HasPrefix(key string) bool {
	var arc fst.Arc
	dict.automaton.FirstArc(&arc)
	in := dict.automaton.BytesReader()
	var buf [3]byte
	for _, ch := range key {
		labels, ok := appendLabels(buf[:0], ch)
		if !ok {
			return false
		}
		for _, label := range labels {
			found, err := dict.automaton.FindTargetArc(label, &arc, &arc, in)
			fatal(err)
			if !found {
				return false
			}
		}
	}
	return true
}

// fatal converts an automaton read failure into a panic. The image is
// memory-resident, so a failed read means a corrupt build rather than a
// condition callers could handle.
func fatal(err error) {
	if err != nil {
		panic(fmt.Errorf("komorph: corrupt dictionary automaton: %w", err))
	}
}
