// Package xlog wires a single zerolog.Logger through fbasqi's components.
//
// fbasqi is a library first: callers get silence (zerolog.Nop()) unless
// they opt in with Set. The installed logger is a single process-wide value
// that every component reads through Get.
package xlog

import (
	"sync/atomic"

	"github.com/rs/zerolog"
)

var current atomic.Pointer[zerolog.Logger]

func init() {
	nop := zerolog.Nop()
	current.Store(&nop)
}

// Set installs l as the logger every fbasqi component logs through. It is
// safe to call concurrently with Get, but is intended to be called once,
// before fbasanalyze.Analyze runs.
func Set(l zerolog.Logger) {
	current.Store(&l)
}

// Get returns the currently installed logger. Components should call this
// once per operation rather than caching the result across Set calls.
func Get() zerolog.Logger {
	return *current.Load()
}
