package ai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"reflect"
	"time"

	"go.uber.org/zap"
)

// ResultCache stores decoded model answers. Get reports whether key was found.
type ResultCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// CachedGenerator serves repeated prompts from a ResultCache and stores
// successful answers of the wrapped Generator. Cache errors count as misses.
// Answers rejected by GenerateOptions.Validate are neither served nor stored.
type CachedGenerator struct {
	next      Generator
	cache     ResultCache
	ttl       time.Duration
	keyPrefix string
	logger    *zap.Logger
}

func NewCachedGenerator(next Generator, cache ResultCache, ttl time.Duration, keyPrefix string, logger *zap.Logger) *CachedGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedGenerator{
		next:      next,
		cache:     cache,
		ttl:       ttl,
		keyPrefix: keyPrefix,
		logger:    logger,
	}
}

// CacheKey is "<prefix><preset>:<sha256(prompt)>".
func CacheKey(prefix string, preset ModelPreset, prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return prefix + string(preset) + ":" + hex.EncodeToString(sum[:])
}

func (c *CachedGenerator) GenerateJSON(ctx context.Context, prompt string, preset ModelPreset, dest any, opts *GenerateOptions) (*GenerateMetadata, error) {
	key := CacheKey(c.keyPrefix, preset, prompt)

	var validate func(any) error
	if opts != nil {
		validate = opts.Validate
	}

	if c.lookup(ctx, key, dest, validate) {
		c.logger.Debug("Result cache hit", zap.String("preset", string(preset)))
		return &GenerateMetadata{Provider: "cache", FromCache: true}, nil
	}

	metadata, err := c.next.GenerateJSON(ctx, prompt, preset, dest, opts)
	if err != nil {
		return nil, err
	}
	if validate != nil {
		if err := validate(dest); err != nil {
			return nil, fmt.Errorf("unusable answer: %w", err)
		}
	}

	if err := c.cache.Set(ctx, key, dest, c.ttl); err != nil {
		c.logger.Warn("Result cache store failed", zap.String("key", key), zap.Error(err))
	}
	return metadata, nil
}

// lookup decodes a cached answer into a fresh value of dest's type and copies
// it into dest only when the entry decodes and validates completely.
func (c *CachedGenerator) lookup(ctx context.Context, key string, dest any, validate func(any) error) bool {
	target := reflect.ValueOf(dest)
	if target.Kind() != reflect.Pointer || target.IsNil() {
		return false
	}

	fresh := reflect.New(target.Elem().Type())
	found, err := c.cache.Get(ctx, key, fresh.Interface())
	if err != nil {
		c.logger.Warn("Result cache lookup failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if !found {
		return false
	}
	if validate != nil {
		if err := validate(fresh.Interface()); err != nil {
			c.logger.Warn("Ignoring invalid cached answer", zap.String("key", key), zap.Error(err))
			return false
		}
	}

	target.Elem().Set(fresh.Elem())
	return true
}
