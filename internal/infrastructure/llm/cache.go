package llm

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

// cacheKeyPrefixLen bounds how much of the user text participates in the
// cache key. Long documents with identical openings and identical prompts
// are considered the same request.
const cacheKeyPrefixLen = 500

func cacheKey(systemPrompt, userText string) string {
	prefix := userText
	if len(prefix) > cacheKeyPrefixLen {
		prefix = prefix[:cacheKeyPrefixLen]
	}
	sum := sha256.Sum256([]byte(systemPrompt + "\x00" + prefix))
	return hex.EncodeToString(sum[:])
}

type cacheEntry struct {
	text       string
	insertedAt time.Time
}

// responseCache is a bounded map of completion texts keyed by prompt
// content. Entries expire after ttl; when full, the oldest inserted
// entry is evicted. Only successful completions are ever stored.
type responseCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	order   []string
	ttl     time.Duration
	maxSize int
	now     func() time.Time
}

func newResponseCache(ttl time.Duration, maxSize int) *responseCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	if maxSize <= 0 {
		maxSize = 1000
	}
	return &responseCache{
		entries: make(map[string]cacheEntry, maxSize),
		ttl:     ttl,
		maxSize: maxSize,
		now:     time.Now,
	}
}

func (c *responseCache) get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return "", false
	}
	if c.now().Sub(entry.insertedAt) > c.ttl {
		delete(c.entries, key)
		c.dropFromOrder(key)
		return "", false
	}
	return entry.text, true
}

func (c *responseCache) put(key, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; ok {
		c.dropFromOrder(key)
	} else if len(c.entries) >= c.maxSize {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[key] = cacheEntry{text: text, insertedAt: c.now()}
	c.order = append(c.order, key)
}

func (c *responseCache) dropFromOrder(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

func (c *responseCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
