// Package lexicon parses the plain-text lexicon format for komorph
// dictionaries and feeds it to the compiler.
//
// A lexicon file mixes class definitions and word entries, one per
// line. Lines starting with '#' are comments, blank lines are skipped.
//
// Class definitions:
//
//	class <id> <flags> <spec>
//
// where id is the decimal word class (0..255), flags is the 16-bit
// feature field (0x prefix allowed), and spec is one of
//
//	s:<o1,o2,...>   regular compound class with ascending split offsets
//	i:<form>        irregular class with its rewritten form (',' separates
//	                segments, e.g. "돕,다")
//	-               class without compound data
//
// Word entries:
//
//	<word> <id>
//
// Example:
//
//	# verbs
//	class 17 0x0001 s:2
//	class 23 0x0002 i:돕,다
//	먹었다 17
//	도왔다 23
package lexicon

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/npillmayer/komorph"
)

// LoadDictionary parses a combined lexicon file and compiles it into a
// ready-to-use dictionary.
//
// Example usage:
//
//	f, _ := os.Open("path/to/lexicon.txt")
//	defer f.Close()
//
//	dict, err := lexicon.LoadDictionary("ko-std", f)
func LoadDictionary(name string, reader io.Reader) (*komorph.Dictionary, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	classes, err := ParseClasses(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return komorph.Compile(name, classes, NewEntryScanner(bytes.NewReader(data)))
}

// ParseClasses collects all class definitions from a lexicon source.
func ParseClasses(reader io.Reader) (map[komorph.WordClass]komorph.ClassDef, error) {
	classes := make(map[komorph.WordClass]komorph.ClassDef)
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		fields, skip := splitLine(scanner.Text())
		if skip || fields[0] != "class" {
			continue
		}
		if len(fields) != 4 {
			return nil, fmt.Errorf("lexicon: malformed class line %q", scanner.Text())
		}
		id, err := strconv.ParseUint(fields[1], 10, 8)
		if err != nil {
			return nil, fmt.Errorf("lexicon: bad class id %q: %w", fields[1], err)
		}
		flags, err := strconv.ParseUint(fields[2], 0, 16)
		if err != nil {
			return nil, fmt.Errorf("lexicon: bad class flags %q: %w", fields[2], err)
		}
		def := komorph.ClassDef{Flags: uint16(flags)}
		spec := fields[3]
		switch {
		case spec == "-":
			// class without compound data
		case strings.HasPrefix(spec, "s:"):
			for _, field := range strings.Split(spec[2:], ",") {
				split, err := strconv.Atoi(field)
				if err != nil {
					return nil, fmt.Errorf("lexicon: bad split offset %q: %w", field, err)
				}
				def.Splits = append(def.Splits, split)
			}
		case strings.HasPrefix(spec, "i:"):
			def.Irregular = spec[2:]
		default:
			return nil, fmt.Errorf("lexicon: unknown class spec %q", spec)
		}
		if _, dup := classes[komorph.WordClass(id)]; dup {
			return nil, fmt.Errorf("lexicon: class %d defined twice", id)
		}
		classes[komorph.WordClass(id)] = def
	}
	return classes, scanner.Err()
}

// EntryScanner streams word entries from a lexicon source, skipping
// comments and class definitions. It implements komorph.EntryReader.
type EntryScanner struct {
	scanner *bufio.Scanner
}

func NewEntryScanner(reader io.Reader) *EntryScanner {
	return &EntryScanner{
		scanner: bufio.NewScanner(reader),
	}
}

// Next returns the next entry as (word, class).
// It returns io.EOF when exhausted.
func (s *EntryScanner) Next() (string, komorph.WordClass, error) {
	for s.scanner.Scan() {
		fields, skip := splitLine(s.scanner.Text())
		if skip || fields[0] == "class" {
			continue
		}
		if len(fields) != 2 {
			return "", 0, fmt.Errorf("lexicon: malformed entry line %q", s.scanner.Text())
		}
		id, err := strconv.ParseUint(fields[1], 10, 8)
		if err != nil {
			return "", 0, fmt.Errorf("lexicon: bad class in entry %q: %w", s.scanner.Text(), err)
		}
		return fields[0], komorph.WordClass(id), nil
	}
	if err := s.scanner.Err(); err != nil {
		return "", 0, err
	}
	return "", 0, io.EOF
}

// splitLine tokenizes one line; skip is true for blanks and comments.
func splitLine(line string) (fields []string, skip bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil, true
	}
	return strings.Fields(line), false
}
