package komorph

import (
	"fmt"
	"io"

	"github.com/derekparker/trie"
	"github.com/npillmayer/komorph/fst"
)

// EntryReader yields lexicon entries one-by-one.
// It should return io.EOF when the stream is exhausted.
type EntryReader interface {
	Next() (word string, class WordClass, err error)
}

// Compile builds a dictionary from a class table and a streaming
// lexicon source.
//
// File format parsing is intentionally outside the base package. Use
// adapters like package lexicon to parse concrete formats and feed this
// API.
//
// Entries are collected in a temporary trie first, so the stream may
// repeat words (with a consistent class) and deliver them in any order.
func Compile(name string, classes map[WordClass]ClassDef, reader EntryReader) (dict *Dictionary, err error) {
	entries := trie.New()
	count := 0
	for {
		var word string
		var class WordClass
		word, class, err = reader.Next()
		if err == io.EOF {
			err = nil
			break
		}
		if err != nil {
			return nil, err
		}
		if word == "" {
			continue // empty keys can never match a lookup
		}
		if _, ok := classes[class]; !ok {
			return nil, fmt.Errorf("komorph: entry %q references undefined class %d", word, class)
		}
		if node, ok := entries.Find(word); ok {
			if node.Meta().(WordClass) != class {
				return nil, fmt.Errorf("komorph: conflicting classes for entry %q", word)
			}
			continue
		}
		entries.Add(word, class)
		count++
	}

	builder := fst.NewBuilder(fst.SumOutputs{})
	for _, word := range entries.Keys() {
		node, ok := entries.Find(word)
		if !ok {
			continue
		}
		labels := make([]byte, 0, 3*len(word))
		encodable := true
		for _, ch := range word {
			labels, encodable = appendLabels(labels, ch)
			if !encodable {
				break
			}
		}
		if !encodable {
			return nil, fmt.Errorf("komorph: entry %q contains characters outside Latin-1 and the Hangul syllable block", word)
		}
		if err = builder.Add(labels, fst.Output(node.Meta().(WordClass))); err != nil {
			return nil, err
		}
	}
	automaton, err := builder.Finish()
	if err != nil {
		return nil, err
	}

	maxClass := -1
	for class := range classes {
		if int(class) > maxClass {
			maxClass = int(class)
		}
	}
	metadata := make([]byte, (maxClass+1)*RecordSize)
	for class, def := range classes {
		var rec [RecordSize]byte
		if rec, err = encodeRecord(def); err != nil {
			return nil, err
		}
		copy(metadata[int(class)*RecordSize:], rec[:])
	}

	dict = &Dictionary{
		automaton:  automaton,
		metadata:   metadata,
		Identifier: fmt.Sprintf("lexicon: %s", name),
	}
	tracer().Infof("dictionary %q compiled: entries=%d classes=%d automaton=%dB metadata=%dB",
		name, count, len(classes), automaton.Size(), len(metadata))
	return dict, nil
}
