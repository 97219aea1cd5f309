package folio

import (
	"sync"
	"time"
)

// SubmitLimiter rate-limits form submissions per client IP with a sliding window.
type SubmitLimiter struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
	max      int
	window   time.Duration
	done     chan struct{}
	stopOnce sync.Once
}

// NewSubmitLimiter creates a SubmitLimiter that allows max submissions per window.
func NewSubmitLimiter(max int, window time.Duration) *SubmitLimiter {
	l := &SubmitLimiter{
		attempts: make(map[string][]time.Time),
		max:      max,
		window:   window,
		done:     make(chan struct{}),
	}
	go l.cleanup()
	return l
}

// Stop ends the background cleanup.
func (l *SubmitLimiter) Stop() {
	l.stopOnce.Do(func() { close(l.done) })
}

func (l *SubmitLimiter) cleanup() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()
	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
		}
		cutoff := time.Now().Add(-l.window)
		l.mu.Lock()
		for ip, hits := range l.attempts {
			kept := prune(hits, cutoff)
			if len(kept) == 0 {
				delete(l.attempts, ip)
			} else {
				l.attempts[ip] = kept
			}
		}
		l.mu.Unlock()
	}
}

// Allow checks if the IP has not exceeded the limit and records the submission.
func (l *SubmitLimiter) Allow(ip string) bool {
	now := time.Now()
	cutoff := now.Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	kept := prune(l.attempts[ip], cutoff)
	if len(kept) >= l.max {
		l.attempts[ip] = kept
		return false
	}
	l.attempts[ip] = append(kept, now)
	return true
}

func prune(hits []time.Time, cutoff time.Time) []time.Time {
	kept := hits[:0]
	for _, t := range hits {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}
