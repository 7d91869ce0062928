package cache

import (
	"context"
	"time"

	"github.com/matzehuels/graphdraw/pkg/observability"
)

// Instrumented reports cache traffic to the registered cache hooks.
type Instrumented struct {
	Cache
}

// NewInstrumented wraps c.
func NewInstrumented(c Cache) *Instrumented {
	return &Instrumented{Cache: c}
}

// Get implements [Cache].
func (c *Instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := c.Cache.Get(ctx, key)
	if err == nil {
		if hit {
			observability.Cache().OnCacheHit(ctx, keyType(key))
		} else {
			observability.Cache().OnCacheMiss(ctx, keyType(key))
		}
	}
	return data, hit, err
}

// Set implements [Cache].
func (c *Instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.Cache.Set(ctx, key, data, ttl); err != nil {
		return err
	}
	observability.Cache().OnCacheSet(ctx, keyType(key), len(data))
	return nil
}

// Clear forwards to the wrapped backend. Backends that do not implement
// [Clearer] return [ErrClearUnsupported].
func (c *Instrumented) Clear(ctx context.Context) (int, error) {
	cl, ok := c.Cache.(Clearer)
	if !ok {
		return 0, ErrClearUnsupported
	}
	return cl.Clear(ctx)
}

var (
	_ Cache   = (*Instrumented)(nil)
	_ Clearer = (*Instrumented)(nil)
)
