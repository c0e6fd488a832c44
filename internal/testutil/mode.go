// Package testutil provides fixtures and gating helpers shared by tests.
package testutil

import (
	"os"
	"testing"
)

// Mode selects which tests run.
type Mode string

const (
	ModeStatic Mode = "static" // goquery fixtures only
	ModeLive   Mode = "live"   // drive a real browser against served fixtures
)

// ModeEnv is the environment variable read by CurrentMode.
const ModeEnv = "PAGEFACTORY_TEST_MODE"

func CurrentMode() Mode {
	mode := os.Getenv(ModeEnv)
	if mode == "" {
		return ModeStatic
	}
	return Mode(mode)
}

// SkipUnlessMode skips t unless the current mode is required.
func SkipUnlessMode(t *testing.T, required Mode) {
	t.Helper()
	if CurrentMode() != required {
		t.Skipf("Skipping: requires %s=%s", ModeEnv, required)
	}
}
