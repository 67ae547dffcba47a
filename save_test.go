package komorph

import (
	"bytes"
	"reflect"
	"testing"
)

func TestDictionarySaveLoad(t *testing.T) {
	dict := buildTestDictionary(t)
	var blob bytes.Buffer
	if err := dict.Save(&blob); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadDictionary("fixture", bytes.NewReader(blob.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"먹었다", "도왔다", "먹다", "hello", "비타민c"} {
		wantClass, wantFound := dict.Lookup(key)
		gotClass, gotFound := loaded.Lookup(key)
		if gotClass != wantClass || gotFound != wantFound {
			t.Fatalf("Lookup(%q) after reload = (%d, %v), want (%d, %v)",
				key, gotClass, gotFound, wantClass, wantFound)
		}
	}
	if loaded.Flags(5) != dict.Flags(5) {
		t.Fatal("flags changed across save/load")
	}
	if !reflect.DeepEqual(loaded.Compounds("먹었다", 17), dict.Compounds("먹었다", 17)) {
		t.Fatal("compounds changed across save/load")
	}
	if !reflect.DeepEqual(loaded.IrregularCompounds(23), dict.IrregularCompounds(23)) {
		t.Fatal("irregular compounds changed across save/load")
	}
}

func TestLoadDictionaryBadMagic(t *testing.T) {
	if _, err := LoadDictionary("junk", bytes.NewReader([]byte("not a dictionary"))); err == nil {
		t.Fatal("loading junk must fail")
	}
}

func TestLoadDictionaryTruncated(t *testing.T) {
	dict := buildTestDictionary(t)
	var blob bytes.Buffer
	if err := dict.Save(&blob); err != nil {
		t.Fatal(err)
	}
	truncated := blob.Bytes()[:blob.Len()/2]
	if _, err := LoadDictionary("broken", bytes.NewReader(truncated)); err == nil {
		t.Fatal("loading a truncated blob must fail")
	}
}
