package contract

import (
	"path/filepath"
	"strings"
	"testing"
)

// FuzzSanitizeFileName fuzzes SanitizeFileName with arbitrary series names.
func FuzzSanitizeFileName(f *testing.F) {
	seeds := []string{
		"ls",
		"[",
		"../etc/passwd",
		"a/b\\c",
		"",
		"..",
		"name\x00with\x01control",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, name string) {
		got := SanitizeFileName(name)
		if got == "" {
			t.Fatalf("empty result for %q", name)
		}
		if strings.ContainsAny(got, "/\\") {
			t.Fatalf("separator left in %q -> %q", name, got)
		}
		if got == "." || got == ".." {
			t.Fatalf("directory name returned for %q", name)
		}
		if filepath.Base(got) != got {
			t.Fatalf("%q is not a single path element", got)
		}
	})
}
