package handbook

import "runtime"

// Worker sizing constants.
const (
	// MinWorkers ensures at least one page renders at a time.
	MinWorkers = 1

	// MaxWorkers caps concurrent page rendering.
	MaxWorkers = 16
)

// ResolveWorkers determines how many pages render concurrently.
// Priority: explicit workers > GOMAXPROCS (adjusted by automaxprocs in
// containers). The result is clamped to [MinWorkers, MaxWorkers].
func ResolveWorkers(workers int) int {
	n := workers
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	if n < MinWorkers {
		return MinWorkers
	}
	if n > MaxWorkers {
		return MaxWorkers
	}
	return n
}
