package lexicon

import (
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/npillmayer/komorph"
)

const fixture = `
# test lexicon
class 17 0x0001 s:2
class 23 0x0002 i:돕,다
class 5 0x0102 -

먹었다	17
도왔다	23
hello	5
`

func TestParseClasses(t *testing.T) {
	classes, err := ParseClasses(strings.NewReader(fixture))
	if err != nil {
		t.Fatal(err)
	}
	want := map[komorph.WordClass]komorph.ClassDef{
		17: {Flags: 0x0001, Splits: []int{2}},
		23: {Flags: 0x0002, Irregular: "돕,다"},
		5:  {Flags: 0x0102},
	}
	if !reflect.DeepEqual(classes, want) {
		t.Fatalf("class table mismatch: got %+v, want %+v", classes, want)
	}
}

func TestEntryScanner(t *testing.T) {
	scanner := NewEntryScanner(strings.NewReader(fixture))
	type entry struct {
		word  string
		class komorph.WordClass
	}
	var got []entry
	for {
		word, class, err := scanner.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, entry{word, class})
	}
	want := []entry{
		{"먹었다", 17},
		{"도왔다", 23},
		{"hello", 5},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("entries mismatch: got %v, want %v", got, want)
	}
}

func TestLoadDictionary(t *testing.T) {
	dict, err := LoadDictionary("fixture", strings.NewReader(fixture))
	if err != nil {
		t.Fatal(err)
	}
	if class, found := dict.Lookup("먹었다"); !found || class != 17 {
		t.Fatalf("Lookup(먹었다) = (%d, %v), want (17, true)", class, found)
	}
	compounds := dict.Compounds("먹었다", 17)
	if len(compounds) != 2 || compounds[0].Word != "먹었" || compounds[1].Word != "다" {
		t.Fatalf("Compounds mismatch: %v", compounds)
	}
	irregular := dict.IrregularCompounds(23)
	if len(irregular) != 2 || irregular[0].Word != "돕" || irregular[1].Word != "다" {
		t.Fatalf("IrregularCompounds mismatch: %v", irregular)
	}
	if dict.Flags(5) != 0x0102 {
		t.Fatalf("Flags(5) = %#04x, want 0x0102", dict.Flags(5))
	}
	if !dict.HasPrefix("먹었") {
		t.Fatal("HasPrefix(먹었) must hold")
	}
}

func TestParseClassesErrors(t *testing.T) {
	sources := []string{
		"class 17 0x0001",          // missing spec
		"class 300 0x0001 -",       // id out of byte range
		"class 17 zz -",            // bad flags
		"class 17 0 x:1",           // unknown spec kind
		"class 17 0 -\nclass 17 0 -", // duplicate class
		"class 17 0 s:a,b",         // bad split offsets
	}
	for _, src := range sources {
		if _, err := ParseClasses(strings.NewReader(src)); err == nil {
			t.Fatalf("ParseClasses(%q) must fail", src)
		}
	}
}

func TestEntryScannerMalformed(t *testing.T) {
	scanner := NewEntryScanner(strings.NewReader("먹다"))
	if _, _, err := scanner.Next(); err == nil || err == io.EOF {
		t.Fatalf("a class-less entry must be a parse error, got %v", err)
	}
	scanner = NewEntryScanner(strings.NewReader("먹다 notaclass"))
	if _, _, err := scanner.Next(); err == nil || err == io.EOF {
		t.Fatalf("a non-numeric class must be a parse error, got %v", err)
	}
}
