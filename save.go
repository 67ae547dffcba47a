package komorph

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/npillmayer/komorph/fst"
)

const (
	dictMagic   = "koMD"
	dictVersion = 1
)

// Save writes the dictionary as one self-contained blob: a small
// header, the transducer blob, then the metadata array. Dictionaries
// are compiled offline and shipped precompiled, so the format favors
// load simplicity over compactness.
func (dict *Dictionary) Save(w io.Writer) error {
	header := make([]byte, 0, len(dictMagic)+1)
	header = append(header, dictMagic...)
	header = append(header, dictVersion)
	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("komorph: save failed: %w", err)
	}
	if err := dict.automaton.Save(w); err != nil {
		return err
	}
	var size [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(size[:], uint64(len(dict.metadata)))
	if _, err := w.Write(size[:n]); err != nil {
		return fmt.Errorf("komorph: save failed: %w", err)
	}
	if _, err := w.Write(dict.metadata); err != nil {
		return fmt.Errorf("komorph: save failed: %w", err)
	}
	return nil
}

// LoadDictionary restores a dictionary written with Save.
func LoadDictionary(name string, r io.Reader) (*Dictionary, error) {
	var m [len(dictMagic) + 1]byte
	if _, err := io.ReadFull(r, m[:]); err != nil {
		return nil, fmt.Errorf("komorph: load failed: %w", err)
	}
	if string(m[:len(dictMagic)]) != dictMagic {
		return nil, fmt.Errorf("komorph: bad dictionary magic %q", m[:len(dictMagic)])
	}
	if m[len(dictMagic)] != dictVersion {
		return nil, fmt.Errorf("komorph: unsupported dictionary version %d", m[len(dictMagic)])
	}
	automaton, err := fst.Read(r, fst.SumOutputs{})
	if err != nil {
		return nil, err
	}
	size, err := readUvarint(r)
	if err != nil {
		return nil, fmt.Errorf("komorph: load failed: %w", err)
	}
	metadata := make([]byte, size)
	if _, err := io.ReadFull(r, metadata); err != nil {
		return nil, fmt.Errorf("komorph: load failed: %w", err)
	}
	return &Dictionary{automaton: automaton, metadata: metadata, Identifier: name}, nil
}

// readUvarint reads a varint without buffering past it, so the caller
// keeps control of the stream position.
func readUvarint(r io.Reader) (uint64, error) {
	var x uint64
	var s uint
	var one [1]byte
	for i := 0; ; i++ {
		if _, err := io.ReadFull(r, one[:]); err != nil {
			return 0, err
		}
		b := one[0]
		if b < 0x80 {
			if i > 9 || i == 9 && b > 1 {
				return 0, errors.New("uvarint overflows 64 bits")
			}
			return x | uint64(b)<<s, nil
		}
		x |= uint64(b&0x7F) << s
		s += 7
	}
}
