package http

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/time/rate"
)

// HostLimiter spaces out requests to each host. Case lists can link several
// documents on the same court site; fetching them back to back would trip
// the sites' throttling, while requests to different hosts never wait on
// each other.
type HostLimiter struct {
	limit rate.Limit

	mu      sync.Mutex
	buckets map[string]*rate.Limiter
}

// NewHostLimiter allows rps requests per second to any one host, with no
// burst. A non-positive rps disables limiting.
func NewHostLimiter(rps float64) *HostLimiter {
	return &HostLimiter{
		limit:   rate.Limit(rps),
		buckets: make(map[string]*rate.Limiter),
	}
}

// Wait blocks until a request to host is allowed or ctx is done. Host names
// are compared case-insensitively.
func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	if l == nil || l.limit <= 0 {
		return ctx.Err()
	}
	return l.bucket(strings.ToLower(host)).Wait(ctx)
}

func (l *HostLimiter) bucket(host string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[host]
	if !ok {
		b = rate.NewLimiter(l.limit, 1)
		l.buckets[host] = b
	}
	return b
}
