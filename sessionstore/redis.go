// Package sessionstore provides session storage backends for dom documents.
//
// Redis keeps widget state, such as the expanded accordion sections, in a
// Redis server so that documents enhanced in different processes share it:
//
//	store, err := sessionstore.Open(ctx, "redis://localhost:6379/0",
//	    sessionstore.WithPrefix("govuk:session:abc123:"),
//	    sessionstore.WithTTL(30*time.Minute),
//	)
//	doc, err := dom.ParseString(page, dom.WithSessionStorage(store))
package sessionstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/goliatone/go-govuk-frontend/dom"
)

var (
	ErrEmptyConnectionURL = errors.New("sessionstore: empty connection URL")
	ErrFailedToParseURL   = errors.New("sessionstore: failed to parse connection URL")
	ErrConnectionFailed   = errors.New("sessionstore: failed to establish connection")
)

const (
	defaultPrefix  = "govuk:session:"
	defaultTimeout = 3 * time.Second
)

// Redis is a dom.Storage backed by Redis string keys. Values written by
// concurrent processes follow last write wins.
type Redis struct {
	client  redis.UniversalClient
	prefix  string
	ttl     time.Duration
	timeout time.Duration
	logger  *zap.Logger
}

var _ dom.Storage = &Redis{}

// Option configures a Redis store.
type Option func(*Redis)

// WithPrefix namespaces every key. Default: "govuk:session:"
func WithPrefix(prefix string) Option {
	return func(r *Redis) {
		r.prefix = prefix
	}
}

// WithTTL expires keys after d. Zero keeps them forever, which is the default.
func WithTTL(d time.Duration) Option {
	return func(r *Redis) {
		r.ttl = d
	}
}

// WithTimeout bounds every Redis call. Default: 3 seconds
func WithTimeout(d time.Duration) Option {
	return func(r *Redis) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithLogger reports read failures, which GetItem cannot return.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Redis) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New wraps an existing client.
func New(client redis.UniversalClient, opts ...Option) *Redis {
	r := &Redis{
		client:  client,
		prefix:  defaultPrefix,
		timeout: defaultTimeout,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Open connects to the server at url (redis:// or rediss://) and checks it
// answers before returning the store.
func Open(ctx context.Context, url string, opts ...Option) (*Redis, error) {
	if url == "" {
		return nil, ErrEmptyConnectionURL
	}
	if !strings.HasPrefix(url, "redis://") && !strings.HasPrefix(url, "rediss://") {
		return nil, ErrFailedToParseURL
	}

	redisOpts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseURL, err)
	}

	client := redis.NewClient(redisOpts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Join(ErrConnectionFailed, err)
	}
	return New(client, opts...), nil
}

func (r *Redis) key(name string) string {
	return r.prefix + name
}

func (r *Redis) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), r.timeout)
}

// GetItem returns the value stored under key. Missing keys and failed reads
// both report ok=false.
func (r *Redis) GetItem(key string) (string, bool) {
	ctx, cancel := r.context()
	defer cancel()

	value, err := r.client.Get(ctx, r.key(key)).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return "", false
	case err != nil:
		r.logger.Warn("session storage read failed", zap.String("key", key), zap.Error(err))
		return "", false
	}
	return value, true
}

// SetItem stores value under key.
func (r *Redis) SetItem(key, value string) error {
	ctx, cancel := r.context()
	defer cancel()

	if err := r.client.Set(ctx, r.key(key), value, r.ttl).Err(); err != nil {
		return fmt.Errorf("sessionstore: set %s: %w", key, err)
	}
	return nil
}

// RemoveItem deletes key.
func (r *Redis) RemoveItem(key string) error {
	ctx, cancel := r.context()
	defer cancel()

	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("sessionstore: remove %s: %w", key, err)
	}
	return nil
}

// Keys lists the stored keys without the prefix.
func (r *Redis) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	iter := r.client.Scan(ctx, 0, r.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, strings.TrimPrefix(iter.Val(), r.prefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("sessionstore: scan: %w", err)
	}
	return keys, nil
}

// Clear removes every key under the prefix.
func (r *Redis) Clear(ctx context.Context) error {
	keys, err := r.Keys(ctx)
	if err != nil || len(keys) == 0 {
		return err
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = r.key(k)
	}
	if err := r.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("sessionstore: clear: %w", err)
	}
	return nil
}

// Close closes the underlying client.
func (r *Redis) Close() error {
	return r.client.Close()
}
