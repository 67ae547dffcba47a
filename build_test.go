package komorph

import "testing"

func TestCompileUndefinedClass(t *testing.T) {
	reader := &sliceEntryReader{
		entries: []struct {
			word  string
			class WordClass
		}{{"먹다", 99}},
	}
	if _, err := Compile("bad", testClasses(), reader); err == nil {
		t.Fatal("an entry with an undefined class must fail the build")
	}
}

func TestCompileConflictingClasses(t *testing.T) {
	reader := &sliceEntryReader{
		entries: []struct {
			word  string
			class WordClass
		}{
			{"먹다", 9},
			{"먹다", 17},
		},
	}
	if _, err := Compile("bad", testClasses(), reader); err == nil {
		t.Fatal("conflicting classes for one word must fail the build")
	}
}

func TestCompileRepeatedEntry(t *testing.T) {
	reader := &sliceEntryReader{
		entries: []struct {
			word  string
			class WordClass
		}{
			{"먹다", 9},
			{"먹다", 9}, // consistent repeat is fine
		},
	}
	dict, err := Compile("repeat", testClasses(), reader)
	if err != nil {
		t.Fatal(err)
	}
	if class, found := dict.Lookup("먹다"); !found || class != 9 {
		t.Fatalf("Lookup(먹다) = (%d, %v), want (9, true)", class, found)
	}
}

func TestCompileRejectsUnsupportedWord(t *testing.T) {
	reader := &sliceEntryReader{
		entries: []struct {
			word  string
			class WordClass
		}{{"中다", 9}},
	}
	if _, err := Compile("bad", testClasses(), reader); err == nil {
		t.Fatal("a word outside Latin-1 and the Hangul block must fail the build")
	}
}

func TestCompileSkipsEmptyWords(t *testing.T) {
	reader := &sliceEntryReader{
		entries: []struct {
			word  string
			class WordClass
		}{
			{"", 9},
			{"먹다", 9},
		},
	}
	dict, err := Compile("empty", testClasses(), reader)
	if err != nil {
		t.Fatal(err)
	}
	if _, found := dict.Lookup(""); found {
		t.Fatal("empty key must stay unmatchable")
	}
	if _, found := dict.Lookup("먹다"); !found {
		t.Fatal("entry after the empty word must survive the build")
	}
}

func TestCompileEmptyLexicon(t *testing.T) {
	dict, err := Compile("empty", map[WordClass]ClassDef{}, &sliceEntryReader{})
	if err != nil {
		t.Fatal(err)
	}
	if _, found := dict.Lookup("먹다"); found {
		t.Fatal("empty dictionary must not match anything")
	}
	if dict.HasPrefix("먹") {
		t.Fatal("empty dictionary must not report prefixes")
	}
}
