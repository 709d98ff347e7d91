package ports

import "time"

// RateLimiter is the one piece of process-wide mutable state the engine
// depends on. Implementations must be atomic per identity without
// serializing unrelated identities, and may be swapped for a distributed
// store without touching validation logic.
type RateLimiter interface {
	Allow(identity string, now time.Time) bool
}
