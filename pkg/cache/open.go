package cache

import (
	"context"
	"fmt"
)

// Backend names accepted by [Open].
const (
	BackendFile  = "file"
	BackendNone  = "none"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

// Options selects and configures a backend for [Open].
type Options struct {
	Backend   string
	Dir       string // file backend; empty means DefaultDir
	RedisAddr string
	Mongo     MongoConfig
}

// Open creates the backend named by opts.Backend wrapped with
// [NewInstrumented]. An empty backend name selects the file cache.
func Open(ctx context.Context, opts Options) (*Instrumented, error) {
	var (
		c   Cache
		err error
	)
	switch opts.Backend {
	case "", BackendFile:
		dir := opts.Dir
		if dir == "" {
			if dir, err = DefaultDir(); err != nil {
				return nil, fmt.Errorf("get cache dir: %w", err)
			}
		}
		c, err = NewFileCache(dir)
	case BackendNone:
		c = NewNullCache()
	case BackendRedis:
		c, err = NewRedisCache(ctx, opts.RedisAddr)
	case BackendMongo:
		c, err = NewMongoCache(ctx, opts.Mongo)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
	if err != nil {
		return nil, err
	}
	return NewInstrumented(c), nil
}
