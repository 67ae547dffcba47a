package komorph

import (
	"errors"
	"fmt"
	"unicode/utf16"
)

// Per-class metadata records are RecordSize bytes with two incompatible
// layouts. Both start with a big-endian 16-bit flags field; byte 2 is a
// count whose meaning depends on the layout:
//
//	regular:   count of split offsets, then one byte per rune offset
//	irregular: count of UTF-16 code units, then two bytes per unit,
//	           with ',' units separating compound segments
//
// Which layout applies to a class is external knowledge carried by the
// caller; nothing in the record marks it. Compounds and
// IrregularCompounds therefore each assert their own preconditions and
// never try to auto-detect the other layout.

// CompoundEntry is one morpheme segment of a decomposed word. Literal
// is reserved for distinguishing literal from inflected segments and is
// always true for now.
type CompoundEntry struct {
	Word    string
	Literal bool
}

// Flags returns the 16-bit feature flags of a word class. The meaning
// of individual bits belongs to the surrounding analysis ruleset, not
// to the dictionary.
func (dict *Dictionary) Flags(class WordClass) uint16 {
	off := int(class) * RecordSize
	assert(off+2 <= len(dict.metadata), "word class has no metadata record")
	return uint16(dict.metadata[off])<<8 | uint16(dict.metadata[off+1])
}

// Compounds slices word at the split offsets recorded for class and
// returns the segments in order. The class must use the regular layout
// and carry at least one split; a violated record panics, since a
// mismatched dictionary build would otherwise corrupt output silently.
func (dict *Dictionary) Compounds(word string, class WordClass) []CompoundEntry {
	off := int(class) * RecordSize
	assert(off+RecordSize <= len(dict.metadata), "word class has no metadata record")
	numSplits := int(dict.metadata[off+2])
	assert(numSplits > 0, "regular compound record without splits")
	assert(3+numSplits <= RecordSize, "split list overruns record")
	runes := []rune(word)
	compounds := make([]CompoundEntry, 0, numSplits+1)
	last := 0
	for i := 0; i < numSplits; i++ {
		split := int(dict.metadata[off+3+i])
		assert(split >= last && split <= len(runes), "split offset outside word")
		compounds = append(compounds, CompoundEntry{Word: string(runes[last:split]), Literal: true})
		last = split
	}
	compounds = append(compounds, CompoundEntry{Word: string(runes[last:]), Literal: true})
	return compounds
}

// IrregularCompounds returns the rewritten segments recorded for an
// irregular class. The decomposition is self-contained in the record
// and replaces the surface word, which is why no word parameter exists.
// A trailing segment is always emitted, even when the record ends on a
// separator and the segment is empty.
func (dict *Dictionary) IrregularCompounds(class WordClass) []CompoundEntry {
	off := int(class) * RecordSize
	assert(off+RecordSize <= len(dict.metadata), "word class has no metadata record")
	numChars := int(dict.metadata[off+2])
	assert(3+2*numChars <= RecordSize, "char list overruns record")
	compounds := make([]CompoundEntry, 0, 2)
	units := make([]uint16, 0, numChars)
	for i := 0; i < numChars; i++ {
		idx := off + 3 + (i << 1)
		next := uint16(dict.metadata[idx])<<8 | uint16(dict.metadata[idx+1])
		if next == ',' {
			compounds = append(compounds, CompoundEntry{Word: string(utf16.Decode(units)), Literal: true})
			units = units[:0]
		} else {
			units = append(units, next)
		}
	}
	compounds = append(compounds, CompoundEntry{Word: string(utf16.Decode(units)), Literal: true})
	return compounds
}

// ClassDef describes one word class for Compile: its feature flags and
// either regular split offsets or an irregular rewritten form (never
// both). A class with neither decomposes into nothing and must not be
// queried through the compound accessors.
type ClassDef struct {
	Flags     uint16
	Splits    []int  // ascending rune offsets, regular layout
	Irregular string // rewritten form with ',' separators, irregular layout
}

// encodeRecord packs def into one fixed-size record. It is the exact
// inverse of the accessors above and shares their layout constants.
func encodeRecord(def ClassDef) ([RecordSize]byte, error) {
	var rec [RecordSize]byte
	rec[0] = byte(def.Flags >> 8)
	rec[1] = byte(def.Flags)
	if def.Irregular != "" {
		if len(def.Splits) > 0 {
			return rec, errors.New("komorph: class cannot be both regular and irregular")
		}
		units := utf16.Encode([]rune(def.Irregular))
		if 3+2*len(units) > RecordSize {
			return rec, fmt.Errorf("komorph: irregular form %q exceeds record capacity", def.Irregular)
		}
		rec[2] = byte(len(units))
		for i, u := range units {
			rec[3+2*i] = byte(u >> 8)
			rec[3+2*i+1] = byte(u)
		}
		return rec, nil
	}
	if 3+len(def.Splits) > RecordSize {
		return rec, fmt.Errorf("komorph: %d split offsets exceed record capacity", len(def.Splits))
	}
	rec[2] = byte(len(def.Splits))
	last := 0
	for i, split := range def.Splits {
		if split <= last || split > 0xFF {
			return rec, fmt.Errorf("komorph: split offsets must be ascending byte values, got %v", def.Splits)
		}
		rec[3+i] = byte(split)
		last = split
	}
	return rec, nil
}
