package testutil

import (
	"testing"

	"go.uber.org/goleak"
)

// VerifyNoNewLeaks snapshots the goroutines running now and returns a check
// that fails on any goroutine started afterwards and still alive. Use it in
// packages whose other tests run in parallel:
//
//	defer VerifyNoNewLeaks(t)()
func VerifyNoNewLeaks(t *testing.T) func() {
	t.Helper()
	options := append(defaultOptions(), goleak.IgnoreCurrent())
	return func() {
		t.Helper()
		goleak.VerifyNone(t, options...)
	}
}

// defaultOptions returns common ignore patterns for testing framework goroutines
func defaultOptions() []goleak.Option {
	return []goleak.Option{
		goleak.IgnoreTopFunction("testing.tRunner.func1"),
		goleak.IgnoreTopFunction("testing.runTests"),
		goleak.IgnoreTopFunction("testing.(*M).Run"),
		goleak.IgnoreTopFunction("go.uber.org/goleak.(*opts).retry"),
		goleak.IgnoreTopFunction("time.Sleep"),
	}
}
