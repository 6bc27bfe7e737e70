package ai

import (
	"container/list"
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"github.com/phoenixgodbrain/neurogate/pkg/metrics"
)

// Default cache configuration.
const defaultAudioCacheSize = 64

// AudioCache is a bounded cache of synthesized narration keyed by text
// and voice. Narration scripts repeat heavily across sessions, so most
// lookups after warmup are hits.
type AudioCache struct {
	mu      sync.Mutex
	entries map[string]*list.Element
	order   *list.List // front = most recently used
	maxSize int
}

type cacheEntry struct {
	key  string
	data []byte
}

// NewAudioCache creates a cache with configuration options.
func NewAudioCache(opts ...CacheOption) *AudioCache {
	c := &AudioCache{
		entries: make(map[string]*list.Element),
		order:   list.New(),
		maxSize: defaultAudioCacheSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CacheOption applies a configuration option to the AudioCache.
type CacheOption func(*AudioCache)

// WithCacheSize sets the maximum number of cached clips.
func WithCacheSize(n int) CacheOption {
	return func(c *AudioCache) {
		if n > 0 {
			c.maxSize = n
		}
	}
}

// Key derives the cache key for a text and voice pair.
func Key(text string, voice Voice) string {
	sum := sha256.Sum256([]byte(string(voice) + "\x00" + text))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached clip for key, if present.
func (c *AudioCache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		metrics.RecordAudioCacheMiss()
		return nil, false
	}
	c.order.MoveToFront(el)
	metrics.RecordAudioCacheHit()
	return el.Value.(*cacheEntry).data, true
}

// Put stores a clip, evicting the least recently used entry when full.
func (c *AudioCache) Put(key string, data []byte) {
	if len(data) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		el.Value.(*cacheEntry).data = data
		c.order.MoveToFront(el)
		return
	}

	for len(c.entries) >= c.maxSize {
		oldest := c.order.Back()
		if oldest == nil {
			break
		}
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
	}

	c.entries[key] = c.order.PushFront(&cacheEntry{key: key, data: data})
}

// Len returns the number of cached clips.
func (c *AudioCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
