// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package download

import "sync"

// NegativeCache remembers URLs that failed to yield a valid PDF so
// concurrent and repeated attempts skip them. It is append-only and safe
// for use from multiple goroutines. Lifetime is the caller's choice: the
// CLI shares one cache across a whole batch run, a long-lived embedder may
// share one across runs.
type NegativeCache struct {
	mu   sync.Mutex
	urls map[string]struct{}
}

// NewNegativeCache returns an empty cache.
func NewNegativeCache() *NegativeCache {
	return &NegativeCache{urls: make(map[string]struct{})}
}

// Add records a failing URL.
func (c *NegativeCache) Add(url string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.urls[url] = struct{}{}
}

// Contains reports whether url is known to fail.
func (c *NegativeCache) Contains(url string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.urls[url]
	return ok
}

// Len returns the number of recorded URLs.
func (c *NegativeCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.urls)
}
