//go:build mutation

package iface_test

import (
	"testing"

	"github.com/gtramontina/ooze"
)

func TestMutation(t *testing.T) {
	ooze.Release(
		t,
		ooze.WithTestCommand("targ test-for-fail"),
		ooze.Parallel(),
		ooze.IgnoreSourceFiles("^dev/.*|^UAT/.*|generated_.*|.*_test.go"),
		ooze.WithMinimumThreshold(0.90),
		ooze.WithRepositoryRoot("."),
		ooze.ForceColors(),
	)
}
