package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/2beens/fitnessxs/internal/telemetry/metrics"
	"github.com/2beens/fitnessxs/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/singleflight"
)

const (
	megabyte = 1024 * 1024
	// how long the last good result is kept around to be served when a reload fails
	staleKeepSeconds = 24 * 60 * 60
)

// QueryCache wraps read paths with request dedup, a staleness window and
// namespace wide invalidation. Values are stored JSON encoded.
type QueryCache struct {
	store   *freecache.Cache
	group   singleflight.Group
	metrics *metrics.Manager

	mu          sync.Mutex
	generations map[string]uint64
}

func NewQueryCache(sizeMB int, metricsManager *metrics.Manager) *QueryCache {
	if sizeMB <= 0 {
		sizeMB = 16
	}
	return &QueryCache{
		store:       freecache.NewCache(sizeMB * megabyte),
		metrics:     metricsManager,
		generations: make(map[string]uint64),
	}
}

// Invalidate drops every fresh entry of the namespace. Stale copies survive
// and are only used when a reload fails.
func (c *QueryCache) Invalidate(namespace string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generations[namespace]++
}

func (c *QueryCache) generation(namespace string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[namespace]
}

func (c *QueryCache) freshKey(namespace, key string) []byte {
	return []byte(fmt.Sprintf("%s|%d|%s", namespace, c.generation(namespace), key))
}

func staleKey(namespace, key string) []byte {
	return []byte(namespace + "|stale|" + key)
}

func (c *QueryCache) observe(namespace, result string) {
	if c.metrics != nil {
		c.metrics.CounterCacheLookups.WithLabelValues(namespace, result).Inc()
	}
}

// Fetch returns the cached value for namespace/key if it is younger than ttl,
// otherwise calls load. Concurrent loads of the same key are collapsed into one.
// When load fails and an older value is still held, that value is returned.
func Fetch[T any](
	ctx context.Context,
	c *QueryCache,
	namespace, key string,
	ttl time.Duration,
	load func(ctx context.Context) (T, error),
) (_ T, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "cache.fetch")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("namespace", namespace))

	var zero T
	freshKey := c.freshKey(namespace, key)
	if cached, getErr := c.store.Get(freshKey); getErr == nil {
		var val T
		jsonErr := json.Unmarshal(cached, &val)
		if jsonErr == nil {
			c.observe(namespace, "hit")
			span.SetAttributes(attribute.Bool("hit", true))
			return val, nil
		}
		log.Errorf("query cache: unmarshal %s: %s", freshKey, jsonErr)
	}
	c.observe(namespace, "miss")

	res, err, _ := c.group.Do(string(freshKey), func() (any, error) {
		val, err := load(ctx)
		if err != nil {
			return nil, err
		}
		valBytes, err := json.Marshal(val)
		if err != nil {
			return nil, fmt.Errorf("marshal cached value: %w", err)
		}
		expire := int(ttl.Seconds())
		if expire < 1 {
			expire = 1
		}
		if err := c.store.Set(freshKey, valBytes, expire); err != nil {
			log.Warnf("query cache: set %s: %s", freshKey, err)
		}
		if err := c.store.Set(staleKey(namespace, key), valBytes, staleKeepSeconds); err != nil {
			log.Warnf("query cache: set stale %s: %s", freshKey, err)
		}
		return val, nil
	})
	if err != nil {
		if staleBytes, getErr := c.store.Get(staleKey(namespace, key)); getErr == nil {
			var val T
			if jsonErr := json.Unmarshal(staleBytes, &val); jsonErr == nil {
				log.Warnf("query cache: serving stale %s/%s after load error: %s", namespace, key, err)
				c.observe(namespace, "stale")
				return val, nil
			}
		}
		return zero, err
	}

	return res.(T), nil
}
