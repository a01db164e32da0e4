package orion

import (
	"log/slog"
	"runtime"
)

type leakCounter struct {
	live int
}

// warnOnLeak logs a warning if the engine is garbage collected while
// some of its windows were never destroyed. The native surfaces can not be
// released from here, cleanups do not run on the main thread.
func warnOnLeak(engine *Engine, counter *leakCounter) {
	runtime.AddCleanup(engine, reportLeak, counter)
}

func reportLeak(counter *leakCounter) {
	if counter.live > 0 {
		slog.Warn("Engine was garbage collected with live windows", slog.Int("windows", counter.live))
	}
}
