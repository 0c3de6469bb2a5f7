package competition

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestClassify(t *testing.T) {
	names := []string{
		"SEGM012.htm",
		"CAT003c1.htm",
		"index.htm",
		"SEGM002.htm",
		"CAT001c1.htm",
		"style.css",
		"CAT001c2.htm",
	}

	got := Classify("/results", names)

	wantIJS := []string{
		filepath.Join("/results", "SEGM002.htm"),
		filepath.Join("/results", "SEGM012.htm"),
	}
	wantSixO := []string{
		filepath.Join("/results", "CAT001c1.htm"),
		filepath.Join("/results", "CAT003c1.htm"),
	}
	if !reflect.DeepEqual(got[IJS], wantIJS) {
		t.Fatalf("unexpected IJS files.\nwant: %#v\ngot:  %#v", wantIJS, got[IJS])
	}
	if !reflect.DeepEqual(got[SixO], wantSixO) {
		t.Fatalf("unexpected 6.0 files.\nwant: %#v\ngot:  %#v", wantSixO, got[SixO])
	}
}

func TestClassifyEmpty(t *testing.T) {
	got := Classify("/results", nil)
	for _, f := range Formats {
		if len(got[f]) != 0 {
			t.Fatalf("expected no %s files, got %v", f, got[f])
		}
	}
}

func TestClassifyFileSuffixWins(t *testing.T) {
	// A name carrying both markers is a 6.0 page.
	format, ok := ClassifyFile("/tmp/SEGM001c1.htm")
	if !ok || format != SixO {
		t.Fatalf("expected 6.0, got %v (ok=%t)", format, ok)
	}
	if _, ok := ClassifyFile("notes.txt"); ok {
		t.Fatal("expected notes.txt to be ignored")
	}
}
