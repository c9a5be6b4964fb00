package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/beautymatch/backend/internal/domain"
	"github.com/beautymatch/backend/internal/infrastructure/reference"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// MockCacheRepository is a mock implementation of CacheRepository
type MockCacheRepository struct {
	mu        sync.Mutex
	data      map[string][]byte
	getError  error
	setError  error
	getCalled int
	setCalled int
	lastTTL   time.Duration
}

func NewMockCacheRepository() *MockCacheRepository {
	return &MockCacheRepository{
		data: make(map[string][]byte),
	}
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalled++
	if m.getError != nil {
		return nil, m.getError
	}
	if val, ok := m.data[key]; ok {
		return val, nil
	}
	return nil, domain.ErrCacheMiss
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setCalled++
	m.lastTTL = ttl
	if m.setError != nil {
		return m.setError
	}
	m.data[key] = value
	return nil
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok, nil
}

func newTestCompatibilityService(t *testing.T, cache domain.CacheRepository) *CompatibilityService {
	t.Helper()
	matcher := NewMatchingService(reference.MustDefault(), domain.DefaultPolicy())
	return NewCompatibilityService(cache, matcher, zaptest.NewLogger(t), CompatibilityServiceConfig{
		CacheTTL:           time.Hour,
		EnableDebugLogging: true,
	})
}

func sampleRequest() *domain.MatchRequest {
	return &domain.MatchRequest{
		Product: &domain.ProductRecord{
			Name:        "Hydrating Serum",
			Brand:       "Acme",
			Ingredients: []string{"hyaluronic acid", "glycerin", "water"},
			SkinTypes:   []string{"dry"},
		},
		Profile: &domain.SkinProfile{
			SkinType: "dry",
		},
	}
}

func TestCompatibilityService_Evaluate_CacheMissThenHit(t *testing.T) {
	cache := NewMockCacheRepository()
	service := newTestCompatibilityService(t, cache)
	ctx := context.Background()

	first, cached, err := service.Evaluate(ctx, sampleRequest())
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, 1, cache.setCalled)
	assert.Equal(t, time.Hour, cache.lastTTL)

	second, cached, err := service.Evaluate(ctx, sampleRequest())
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, 1, cache.setCalled, "cache hit must not store again")
	assert.Equal(t, first, second)
}

func TestCompatibilityService_Evaluate_NormalizedInputsShareKey(t *testing.T) {
	cache := NewMockCacheRepository()
	service := newTestCompatibilityService(t, cache)
	ctx := context.Background()

	_, _, err := service.Evaluate(ctx, sampleRequest())
	require.NoError(t, err)

	shouting := sampleRequest()
	shouting.Product.Name = "  HYDRATING   serum "
	shouting.Product.Ingredients = []string{"Hyaluronic Acid", "GLYCERIN", "water", "water"}
	shouting.Profile.SkinType = "Dry Skin"

	_, cached, err := service.Evaluate(ctx, shouting)
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Len(t, cache.data, 1)
	for key := range cache.data {
		assert.True(t, strings.HasPrefix(key, cacheKeyPrefix), "key %q", key)
	}
}

func TestCompatibilityService_Evaluate_InvalidRequest(t *testing.T) {
	service := newTestCompatibilityService(t, NewMockCacheRepository())

	tests := []struct {
		name    string
		request *domain.MatchRequest
	}{
		{name: "nil request", request: nil},
		{name: "nil product", request: &domain.MatchRequest{Profile: &domain.SkinProfile{}}},
		{name: "nil profile", request: &domain.MatchRequest{Product: &domain.ProductRecord{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, _, err := service.Evaluate(context.Background(), tt.request)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, domain.ErrInvalidRequest)
		})
	}
}

func TestCompatibilityService_Evaluate_CancelledContext(t *testing.T) {
	service := newTestCompatibilityService(t, NewMockCacheRepository())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := service.Evaluate(ctx, sampleRequest())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompatibilityService_Evaluate_CacheFailuresDoNotFailMatch(t *testing.T) {
	cache := NewMockCacheRepository()
	cache.getError = errors.New("connection refused")
	cache.setError = errors.New("connection refused")
	service := newTestCompatibilityService(t, cache)

	result, cached, err := service.Evaluate(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.False(t, cached)
	require.NotNil(t, result)
	assert.True(t, result.Verdict.IsScored())
}

func TestCompatibilityService_Evaluate_CorruptCacheEntry(t *testing.T) {
	cache := NewMockCacheRepository()
	service := newTestCompatibilityService(t, cache)
	req := sampleRequest()

	key, err := service.generateCacheKey(*req.Product, *req.Profile)
	require.NoError(t, err)
	cache.data[key] = []byte("{not json")

	result, cached, err := service.Evaluate(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, cached)
	require.NotNil(t, result)
	assert.NotEqual(t, "{not json", string(cache.data[key]))
}

func TestCompatibilityService_Evaluate_NilCache(t *testing.T) {
	service := newTestCompatibilityService(t, nil)

	for i := 0; i < 2; i++ {
		result, cached, err := service.Evaluate(context.Background(), sampleRequest())
		require.NoError(t, err)
		assert.False(t, cached)
		assert.NotNil(t, result)
	}
}

func TestNewCompatibilityService_Defaults(t *testing.T) {
	matcher := NewMatchingService(nil, domain.Policy{})
	service := NewCompatibilityService(nil, matcher, nil, CompatibilityServiceConfig{})

	assert.Equal(t, 24*time.Hour, service.cacheTTL)
	assert.NotNil(t, service.logger)
	assert.Same(t, matcher, service.Matcher())
}
