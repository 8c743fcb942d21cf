package cost

import (
	"context"

	"github.com/konseloradiksi/soapgen/internal/ai"
	"github.com/konseloradiksi/soapgen/internal/cache"
	"github.com/konseloradiksi/soapgen/internal/logger"
)

var _ ai.TokenCounter = (*CachedCounter)(nil)

// CachedCounter remembers token counts by model and prompt hash. Only the
// hash and the count are written to disk.
type CachedCounter struct {
	counter ai.TokenCounter
	cache   *cache.Cache
	model   string
}

func NewCachedCounter(counter ai.TokenCounter, c *cache.Cache, model string) *CachedCounter {
	return &CachedCounter{
		counter: counter,
		cache:   c,
		model:   model,
	}
}

func (c *CachedCounter) CountTokens(ctx context.Context, apiKey, prompt string) (int, error) {
	if apiKey == "" {
		return c.counter.CountTokens(ctx, apiKey, prompt)
	}

	hash := c.cache.GenerateHash(c.model, prompt)

	var tokens int
	found, err := c.cache.Get(hash, &tokens)
	if err != nil {
		logger.Warn(ctx, "token cache read failed", "error", err)
	}
	if found {
		logger.Debug(ctx, "token count served from cache", "tokens", tokens)
		return tokens, nil
	}

	tokens, err = c.counter.CountTokens(ctx, apiKey, prompt)
	if err != nil {
		return 0, err
	}

	if err := c.cache.Set(hash, tokens); err != nil {
		logger.Warn(ctx, "token cache write failed", "error", err)
	}
	return tokens, nil
}
