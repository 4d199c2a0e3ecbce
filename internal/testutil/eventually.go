package testutil

import (
	"fmt"
	"testing"
	"time"
)

// pollInterval is how often Eventually re-checks its condition.
const pollInterval = 10 * time.Millisecond

// Eventually polls cond until it holds, failing the test with the formatted
// message once timeout elapses.
func Eventually(t testing.TB, timeout time.Duration, cond func() bool, format string, args ...any) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for !cond() {
		if time.Now().After(deadline) {
			msg := "condition not met before timeout"
			if format != "" {
				msg = fmt.Sprintf(format, args...)
			}
			t.Fatalf("%s", msg)
		}
		time.Sleep(pollInterval)
	}
}
