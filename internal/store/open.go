package store

import (
	"context"
	"errors"
	"time"

	retry "github.com/sethvargo/go-retry"
	"go.uber.org/zap"
)

// Backend names accepted by Open
const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

const (
	defaultRetryBase  = 1 * time.Second
	defaultMaxRetries = 5
)

// Options selects and configures a backend
type Options struct {
	Backend     string
	Dir         string
	RedisURL    string
	DatabaseURL string
	TTL         time.Duration

	// RetryBase is the first Fibonacci backoff step for network backends
	RetryBase  time.Duration
	MaxRetries uint64
	Logger     *zap.Logger
}

// Open returns the configured backend. Network backends are dialled with
// Fibonacci backoff; a malformed URL fails immediately.
func Open(ctx context.Context, opts Options) (Store, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	switch opts.Backend {
	case BackendFile, "":
		return NewFileStore(opts.Dir)
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendRedis:
		return connectWithRetry(ctx, opts, log, func(ctx context.Context) (Store, error) {
			return NewRedisStore(ctx, opts.RedisURL, opts.TTL)
		})
	case BackendPostgres:
		return connectWithRetry(ctx, opts, log, func(ctx context.Context) (Store, error) {
			return NewPostgresStore(ctx, opts.DatabaseURL)
		})
	default:
		return nil, &ConnectError{Backend: opts.Backend, Message: "unknown store backend"}
	}
}

func connectWithRetry(ctx context.Context, opts Options, log *zap.Logger, connect func(context.Context) (Store, error)) (Store, error) {
	base := opts.RetryBase
	if base <= 0 {
		base = defaultRetryBase
	}
	maxRetries := opts.MaxRetries
	if maxRetries == 0 {
		maxRetries = defaultMaxRetries
	}

	var s Store
	attempt := 0
	b := retry.NewFibonacci(base)
	err := retry.Do(ctx, retry.WithMaxRetries(maxRetries, b), func(ctx context.Context) error {
		attempt++
		var err error
		s, err = connect(ctx)
		if err == nil {
			return nil
		}
		if !isTransient(err) {
			return err
		}
		log.Warn("store connection failed, retrying",
			zap.String("backend", opts.Backend),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		return retry.RetryableError(err)
	})
	if err != nil {
		return nil, err
	}

	log.Info("store connected", zap.String("backend", opts.Backend), zap.Int("attempts", attempt))
	return s, nil
}

// isTransient reports whether a connect failure may succeed on a later attempt
func isTransient(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var connectErr *ConnectError
	if errors.As(err, &connectErr) {
		return !connectErr.Permanent
	}
	return true
}
