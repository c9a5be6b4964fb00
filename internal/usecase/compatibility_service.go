package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/beautymatch/backend/internal/domain"
	"github.com/beautymatch/backend/internal/metrics"
	"go.uber.org/zap"
)

// cacheKeyPrefix versions cached results; bump it when scoring output changes shape
const cacheKeyPrefix = "match:v1:"

// CompatibilityServiceConfig holds configuration for the compatibility service
type CompatibilityServiceConfig struct {
	CacheTTL           time.Duration
	EnableDebugLogging bool
}

// CompatibilityService answers match requests from the extension with caching
type CompatibilityService struct {
	cache    domain.CacheRepository
	matcher  *MatchingService
	logger   *zap.Logger
	cacheTTL time.Duration
	debug    bool
}

// NewCompatibilityService creates a compatibility service. cache may be nil to disable caching.
func NewCompatibilityService(
	cache domain.CacheRepository,
	matcher *MatchingService,
	logger *zap.Logger,
	config CompatibilityServiceConfig,
) *CompatibilityService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &CompatibilityService{
		cache:    cache,
		matcher:  matcher,
		logger:   logger,
		cacheTTL: cacheTTL,
		debug:    config.EnableDebugLogging,
	}
}

// Matcher exposes the underlying matching service
func (s *CompatibilityService) Matcher() *MatchingService {
	return s.matcher
}

// Evaluate scores the requested product against the requested profile.
// Flow: validate -> check cache -> match -> cache -> return.
// The boolean reports whether the result came from the cache.
func (s *CompatibilityService) Evaluate(ctx context.Context, request *domain.MatchRequest) (*domain.MatchResult, bool, error) {
	if request == nil || request.Product == nil || request.Profile == nil {
		return nil, false, domain.ErrInvalidRequest
	}
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	cacheKey, err := s.generateCacheKey(*request.Product, *request.Profile)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
	}

	if cached, err := s.getFromCache(ctx, cacheKey); err == nil {
		metrics.MatchesTotal.WithLabelValues(string(cached.Verdict)).Inc()
		return cached, true, nil
	}

	start := time.Now()
	result := s.matcher.Match(*request.Product, *request.Profile)
	metrics.MatchDuration.Observe(time.Since(start).Seconds())
	metrics.MatchesTotal.WithLabelValues(string(result.Verdict)).Inc()

	if s.debug {
		s.logger.Debug("match scored",
			zap.String("product", request.Product.Name),
			zap.String("verdict", string(result.Verdict)),
			zap.Int("score", result.Score),
			zap.Int("confidence", result.Confidence),
		)
	}

	if err := s.setInCache(ctx, cacheKey, &result); err != nil {
		// A cache failure never fails the match
		s.logger.Warn("cache store failed", zap.String("key", cacheKey), zap.Error(err))
	}

	return &result, false, nil
}

// generateCacheKey hashes the normalized inputs, so requests that differ only
// in case or whitespace share one entry.
// Format: "match:v1:{sha256 hex}"
func (s *CompatibilityService) generateCacheKey(product domain.ProductRecord, profile domain.SkinProfile) (string, error) {
	p, u := s.matcher.Normalize(product, profile)
	payload, err := json.Marshal(struct {
		Product domain.ProductRecord `json:"p"`
		Profile domain.SkinProfile   `json:"u"`
	}{p, u})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return cacheKeyPrefix + hex.EncodeToString(sum[:]), nil
}

// getFromCache retrieves a match result from cache
func (s *CompatibilityService) getFromCache(ctx context.Context, key string) (*domain.MatchResult, error) {
	if s.cache == nil {
		return nil, domain.ErrCacheMiss
	}

	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			metrics.CacheLookups.WithLabelValues("miss").Inc()
		} else {
			metrics.CacheLookups.WithLabelValues("error").Inc()
			s.logger.Warn("cache lookup failed", zap.String("key", key), zap.Error(err))
		}
		return nil, err
	}

	var result domain.MatchResult
	if err := json.Unmarshal(data, &result); err != nil {
		metrics.CacheLookups.WithLabelValues("error").Inc()
		return nil, domain.ErrCacheMiss
	}

	metrics.CacheLookups.WithLabelValues("hit").Inc()
	if s.debug {
		s.logger.Debug("cache hit", zap.String("key", key))
	}
	return &result, nil
}

// setInCache stores a match result in cache
func (s *CompatibilityService) setInCache(ctx context.Context, key string, result *domain.MatchResult) error {
	if s.cache == nil {
		return nil
	}
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, key, data, s.cacheTTL)
}
