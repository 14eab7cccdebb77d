package middleware

import (
	"sync"
	"time"
)

// idempotencyCache keeps completed responses for ttl and marks keys in flight.
type idempotencyCache struct {
	mu       sync.Mutex
	items    map[string]*cachedResponse
	inFlight map[string]struct{}
	ttl      time.Duration
	now      func() time.Time
	stopCh   chan struct{}
	stopOnce sync.Once
}

func newIdempotencyCache(ttl time.Duration) *idempotencyCache {
	c := &idempotencyCache{
		items:    make(map[string]*cachedResponse),
		inFlight: make(map[string]struct{}),
		ttl:      ttl,
		now:      time.Now,
		stopCh:   make(chan struct{}),
	}
	go c.startCleanup()
	return c
}

// begin returns the stored response for key, or claims the key. A key already
// claimed by a running request reports busy.
func (c *idempotencyCache) begin(key string) (resp *cachedResponse, busy bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if r, ok := c.items[key]; ok {
		if c.now().Sub(r.Timestamp) <= c.ttl {
			return r, false
		}
		delete(c.items, key)
	}
	if _, ok := c.inFlight[key]; ok {
		return nil, true
	}
	c.inFlight[key] = struct{}{}
	return nil, false
}

// finish releases the claim, storing resp when it is non-nil.
func (c *idempotencyCache) finish(key string, resp *cachedResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.inFlight, key)
	if resp != nil {
		resp.Timestamp = c.now()
		c.items[key] = resp
	}
}

func (c *idempotencyCache) startCleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.stopCh:
			return
		}
	}
}

func (c *idempotencyCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, resp := range c.items {
		if now.Sub(resp.Timestamp) > c.ttl {
			delete(c.items, key)
		}
	}
}

// Stop ends the cleanup goroutine.
func (c *idempotencyCache) Stop() {
	c.stopOnce.Do(func() { close(c.stopCh) })
}
