package memory

import (
	"hash/fnv"
	"sync"
	"time"
)

const shardCount = 16

// Limiter is a fixed-window counter per identity. A window opens on the
// first request and admits at most limit requests until it expires; the
// next request after expiry opens a fresh window. Identities are sharded
// by hash so unrelated identities do not contend on one lock.
type Limiter struct {
	limit  int
	window time.Duration
	shards [shardCount]shard
}

type shard struct {
	mu      sync.Mutex
	windows map[string]*window
}

type window struct {
	start time.Time
	count int
}

func NewLimiter(limit int, windowSize time.Duration) *Limiter {
	l := &Limiter{limit: limit, window: windowSize}
	for i := range l.shards {
		l.shards[i].windows = make(map[string]*window)
	}
	return l
}

func (l *Limiter) shardFor(identity string) *shard {
	h := fnv.New32a()
	h.Write([]byte(identity))
	return &l.shards[h.Sum32()%shardCount]
}

func (l *Limiter) Allow(identity string, now time.Time) bool {
	s := l.shardFor(identity)
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.windows[identity]
	if !ok || now.Sub(w.start) >= l.window {
		s.windows[identity] = &window{start: now, count: 1}
		return true
	}
	if w.count >= l.limit {
		return false
	}
	w.count++
	return true
}

// Prune drops windows that expired before now. Callers run it periodically
// so idle identities do not accumulate forever.
func (l *Limiter) Prune(now time.Time) {
	for i := range l.shards {
		s := &l.shards[i]
		s.mu.Lock()
		for id, w := range s.windows {
			if now.Sub(w.start) >= l.window {
				delete(s.windows, id)
			}
		}
		s.mu.Unlock()
	}
}
