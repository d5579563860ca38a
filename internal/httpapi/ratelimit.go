package httpapi

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ClientLimiter rate-limits per client address.
type ClientLimiter struct {
	mu  sync.Mutex
	m   map[string]*clientEntry
	r   rate.Limit
	b   int
	now func() time.Time
}

type clientEntry struct {
	lim  *rate.Limiter
	seen time.Time
}

func NewClientLimiter(reqPerSec float64, burst int) *ClientLimiter {
	return &ClientLimiter{
		m:   make(map[string]*clientEntry),
		r:   rate.Limit(reqPerSec),
		b:   burst,
		now: time.Now,
	}
}

func (cl *ClientLimiter) limiterFor(key string) *rate.Limiter {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	now := cl.now()
	if e, ok := cl.m[key]; ok {
		e.seen = now
		return e.lim
	}
	lim := rate.NewLimiter(cl.r, cl.b)
	cl.m[key] = &clientEntry{lim: lim, seen: now}
	return lim
}

func (cl *ClientLimiter) Allow(key string) bool {
	return cl.limiterFor(key).AllowN(cl.now(), 1)
}

// Sweep forgets clients idle for longer than idle and returns how many.
func (cl *ClientLimiter) Sweep(idle time.Duration) int {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	cutoff := cl.now().Add(-idle)
	n := 0
	for k, e := range cl.m {
		if e.seen.Before(cutoff) {
			delete(cl.m, k)
			n++
		}
	}
	return n
}

func (cl *ClientLimiter) Len() int {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return len(cl.m)
}
