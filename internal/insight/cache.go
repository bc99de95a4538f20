package insight

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/vampirenirmal/codeintel/internal/engine"
)

// ResponseCache memoizes broker responses behind the Store contract so
// repeated lookups for the same technology skip the network.
type ResponseCache struct {
	store  Store
	ttl    time.Duration
	logger *slog.Logger
}

type cachedResponse struct {
	Data      *engine.Context7Data `json:"data"`
	Timestamp time.Time            `json:"timestamp"`
}

func NewResponseCache(store Store, ttl time.Duration) *ResponseCache {
	return &ResponseCache{
		store:  store,
		ttl:    ttl,
		logger: slog.Default().With("component", "insight_cache"),
	}
}

// Get returns the cached bundle for a technology, or false on miss,
// expiry or undecodable data.
func (c *ResponseCache) Get(ctx context.Context, technology string) (*engine.Context7Data, bool) {
	key := c.cacheKey(technology)

	raw, err := c.store.Load(ctx, key)
	if err != nil {
		c.logger.Debug("cache miss - not found", "key", key)
		return nil, false
	}

	var cached cachedResponse
	if err := json.Unmarshal(raw, &cached); err != nil {
		c.logger.Error("cache miss - invalid data", "key", key, "error", err)
		return nil, false
	}

	age := time.Since(cached.Timestamp)
	if age > c.ttl {
		c.logger.Debug("cache miss - expired", "key", key, "age", age, "ttl", c.ttl)
		return nil, false
	}

	c.logger.Debug("cache hit", "key", key, "age", age)
	return cached.Data, true
}

// Set stores a broker response. Failures are logged only; a broken cache
// never fails the caller.
func (c *ResponseCache) Set(ctx context.Context, technology string, data *engine.Context7Data) {
	key := c.cacheKey(technology)

	raw, err := json.Marshal(cachedResponse{Data: data, Timestamp: time.Now()})
	if err != nil {
		c.logger.Error("cache encode failed", "key", key, "error", err)
		return
	}
	if err := c.store.Save(ctx, key, raw); err != nil {
		c.logger.Error("cache write failed", "key", key, "error", err)
	}
}

func (c *ResponseCache) cacheKey(technology string) string {
	hash := sha256.Sum256([]byte(technology))
	return fmt.Sprintf("insights/%s.json", hex.EncodeToString(hash[:8]))
}
