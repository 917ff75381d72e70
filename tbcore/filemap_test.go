package tbcore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSearchPathsSplitsOnHostSeparator(t *testing.T) {
	sep := string(filepath.ListSeparator)
	var tests = []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"/a", []string{"/a"}},
		{"/a" + sep + "/b" + sep + "/c", []string{"/a", "/b", "/c"}},
	}
	for _, tt := range tests {
		got := searchPaths(tt.in)
		if len(got) != len(tt.want) {
			t.Fatalf("searchPaths(%q) = %v, want %v", tt.in, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("searchPaths(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}

func TestSearchPathsDoesNotSplitAForeignSeparator(t *testing.T) {
	// A path containing the other platform's separator (e.g. a Windows
	// drive letter's ':' when running on POSIX) must survive intact: only
	// filepath.ListSeparator, the host's own, splits the list.
	foreign := ";"
	if filepath.ListSeparator == ';' {
		foreign = ":"
	}
	in := "C" + foreign + "\\syzygy"
	got := searchPaths(in)
	if len(got) != 1 || got[0] != in {
		t.Errorf("searchPaths(%q) = %v, want single untouched entry %q", in, got, in)
	}
}

func TestFindTableFileLocatesFirstMatch(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()
	if err := os.WriteFile(filepath.Join(dirB, "KQvK.rtbw"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	path, ok := findTableFile([]string{dirA, dirB}, "KQvK", ".rtbw")
	if !ok {
		t.Fatal("findTableFile did not find the file")
	}
	if filepath.Dir(path) != dirB {
		t.Errorf("findTableFile returned %q, want it under %q", path, dirB)
	}

	if _, ok := findTableFile([]string{dirA, dirB}, "KRvK", ".rtbw"); ok {
		t.Error("findTableFile reported a hit for a non-existent table")
	}
}
