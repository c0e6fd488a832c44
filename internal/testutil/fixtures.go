package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// FixturePath returns the path of the named HTML fixture under
// internal/testutil/testdata/fixtures.
func FixturePath(name string) string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(filename), "testdata", "fixtures", name+".html")
}

// LoadFixture reads an HTML fixture, failing t when it is missing.
func LoadFixture(t *testing.T, name string) string {
	t.Helper()

	data, err := os.ReadFile(FixturePath(name))
	if err != nil {
		t.Fatalf("Failed to load fixture %s: %v", name, err)
	}

	return string(data)
}

// MustLoadFixture is like LoadFixture but panics on error (for non-test use).
func MustLoadFixture(name string) string {
	data, err := os.ReadFile(FixturePath(name))
	if err != nil {
		panic(err)
	}
	return string(data)
}
