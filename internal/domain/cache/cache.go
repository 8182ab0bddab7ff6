package cache

import (
	"container/list"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/promptdeck/promptdeck/internal/logging"
	"github.com/promptdeck/promptdeck/internal/storage"
)

const kvPrefix = "cache/"

// Entry is a stored AI-operation result.
type Entry struct {
	Payload   []byte    `json:"payload"`
	CreatedAt time.Time `json:"created_at"`
}

// Cache is a TTL-expiring, LRU-bounded result cache with write-through
// persistence.
type Cache struct {
	ttl      time.Duration
	capacity int
	kv       storage.Store
	logger   *logging.Logger

	// now is replaceable in tests.
	now func() time.Time

	// onEvict fires once per evicted entry while the cache lock is
	// held; it must not reenter the cache.
	onEvict func()

	mu      sync.Mutex
	items   map[string]*list.Element
	recency *list.List // front = most recently used
}

type lruItem struct {
	key   string
	entry Entry
}

// New creates a cache. kv may be nil for a purely in-memory cache.
func New(ttl time.Duration, capacity int, kv storage.Store, logger *logging.Logger) *Cache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if capacity <= 0 {
		capacity = 256
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	return &Cache{
		ttl:      ttl,
		capacity: capacity,
		kv:       kv,
		logger:   logger,
		now:      time.Now,
		items:    make(map[string]*list.Element),
		recency:  list.New(),
	}
}

// OnEvict registers a callback fired once per evicted entry. Call before
// the cache is shared across goroutines.
func (c *Cache) OnEvict(fn func()) {
	c.onEvict = fn
}

// Get returns the stored payload if present and fresh. Expired entries are
// evicted and reported as a miss.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		item := el.Value.(*lruItem)
		if c.expired(item.entry) {
			c.evict(el)
			return nil, false
		}
		c.recency.MoveToFront(el)
		return append([]byte(nil), item.entry.Payload...), true
	}

	// Not in memory: try the persisted copy.
	entry, ok := c.loadPersisted(key)
	if !ok {
		return nil, false
	}
	if c.expired(entry) {
		c.removePersisted(key)
		return nil, false
	}

	c.insert(key, entry, false)
	return append([]byte(nil), entry.Payload...), true
}

// Set stores the payload with the current instant, overwriting any prior
// entry for the key.
func (c *Cache) Set(key string, payload []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := Entry{
		Payload:   append([]byte(nil), payload...),
		CreatedAt: c.now(),
	}
	c.insert(key, entry, true)
}

// Len returns the number of in-memory entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// insert adds or replaces an entry and enforces the capacity bound. Caller
// holds the lock.
func (c *Cache) insert(key string, entry Entry, persist bool) {
	if el, ok := c.items[key]; ok {
		el.Value.(*lruItem).entry = entry
		c.recency.MoveToFront(el)
	} else {
		c.items[key] = c.recency.PushFront(&lruItem{key: key, entry: entry})
	}

	for len(c.items) > c.capacity {
		c.evict(c.recency.Back())
	}

	if persist {
		c.storePersisted(key, entry)
	}
}

// evict removes an entry from memory and from the persisted copy. Caller
// holds the lock.
func (c *Cache) evict(el *list.Element) {
	if el == nil {
		return
	}
	item := el.Value.(*lruItem)
	c.recency.Remove(el)
	delete(c.items, item.key)
	c.removePersisted(item.key)
	if c.onEvict != nil {
		c.onEvict()
	}
}

func (c *Cache) expired(entry Entry) bool {
	return c.now().Sub(entry.CreatedAt) >= c.ttl
}

func (c *Cache) loadPersisted(key string) (Entry, bool) {
	if c.kv == nil {
		return Entry{}, false
	}

	data, ok, err := c.kv.Get(kvPrefix + key)
	if err != nil {
		c.logger.Warn("cache read failed, treating as miss",
			zap.String("key", key), zap.Error(err))
		return Entry{}, false
	}
	if !ok {
		return Entry{}, false
	}

	var entry Entry
	if err := sonic.Unmarshal(data, &entry); err != nil {
		c.logger.Warn("corrupt cache record, treating as miss",
			zap.String("key", key), zap.Error(err))
		c.removePersisted(key)
		return Entry{}, false
	}
	return entry, true
}

func (c *Cache) storePersisted(key string, entry Entry) {
	if c.kv == nil {
		return
	}

	data, err := sonic.Marshal(entry)
	if err != nil {
		c.logger.Warn("cache serialize failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.kv.Set(kvPrefix+key, data); err != nil {
		c.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *Cache) removePersisted(key string) {
	if c.kv == nil {
		return
	}
	if err := c.kv.Remove(kvPrefix + key); err != nil {
		c.logger.Warn("cache evict failed", zap.String("key", key), zap.Error(err))
	}
}
