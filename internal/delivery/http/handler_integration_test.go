package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/beautymatch/backend/config"
	"github.com/beautymatch/backend/internal/domain"
	"github.com/beautymatch/backend/internal/infrastructure/cache"
	"github.com/beautymatch/backend/internal/infrastructure/reference"
	"github.com/beautymatch/backend/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// TestMain sets up test environment before running tests
func TestMain(m *testing.M) {
	// Set Gin to test mode once for all tests
	gin.SetMode(gin.TestMode)

	os.Exit(m.Run())
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			Environment:    "test",
			AllowedOrigins: []string{"chrome-extension://*", "http://localhost:3000"},
		},
		Cache: config.CacheConfig{
			Type: config.CacheMemory,
		},
	}
}

// setupTestRouter creates a test router without a match service
func setupTestRouter() *gin.Engine {
	handler := NewHandler(nil, nil)
	return SetupRouter(testConfig(), handler, zap.NewNop())
}

// setupTestRouterWithService creates a test router backed by a real service and memory cache
func setupTestRouterWithService(t *testing.T) *gin.Engine {
	t.Helper()
	memoryCache := cache.NewMemoryCache()
	t.Cleanup(func() { _ = memoryCache.Close() })

	matcher := usecase.NewMatchingService(reference.MustDefault(), domain.DefaultPolicy())
	service := usecase.NewCompatibilityService(memoryCache, matcher, zap.NewNop(), usecase.CompatibilityServiceConfig{
		CacheTTL: time.Hour,
	})

	return SetupRouter(testConfig(), NewHandler(service, zap.NewNop()), zap.NewNop())
}

func postMatch(router *gin.Engine, payload string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", "/api/v1/match", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// TestHealthCheckEndpoint tests the health check endpoint
func TestHealthCheckEndpoint(t *testing.T) {
	t.Run("returns healthy status", func(t *testing.T) {
		router := setupTestRouter()

		req, _ := http.NewRequest("GET", "/health", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusOK)
		}

		var response map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}

		if response["status"] != "healthy" {
			t.Errorf("status = %v, want healthy", response["status"])
		}
		if response["service"] != "beautymatch-backend" {
			t.Errorf("service = %v, want beautymatch-backend", response["service"])
		}
		if response["version"] != Version {
			t.Errorf("version = %v, want %s", response["version"], Version)
		}
	})

	t.Run("accepts GET requests only", func(t *testing.T) {
		router := setupTestRouter()

		for _, method := range []string{"POST", "PUT", "DELETE", "PATCH"} {
			req, _ := http.NewRequest(method, "/health", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusNotFound {
				t.Errorf("Method %s: Status = %d, want %d", method, w.Code, http.StatusNotFound)
			}
		}
	})
}

// TestMatchEndpoint tests the match endpoint end to end
func TestMatchEndpoint(t *testing.T) {
	t.Run("returns 503 when service is not configured", func(t *testing.T) {
		router := setupTestRouter()

		w := postMatch(router, `{"product":{"name":"x"},"profile":{"skinType":"dry"}}`)

		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusServiceUnavailable)
		}
		if !strings.Contains(w.Body.String(), "not configured") {
			t.Errorf("body = %s, want to contain 'not configured'", w.Body.String())
		}
	})

	t.Run("scores a product and caches the result", func(t *testing.T) {
		router := setupTestRouterWithService(t)

		payload := `{
			"product": {
				"name": "Barrier Cream",
				"brand": "Acme",
				"ingredients": ["Hyaluronic Acid", "Ceramides", "Glycerin", "Water"],
				"skinType": ["Dry"]
			},
			"profile": {"skinType": "dry skin", "allergies": []}
		}`

		first := postMatch(router, payload)
		require.Equal(t, http.StatusOK, first.Code, first.Body.String())
		assert.Equal(t, "MISS", first.Header().Get("X-Cache"))

		var result domain.MatchResult
		require.NoError(t, json.Unmarshal(first.Body.Bytes(), &result))
		assert.True(t, result.Verdict.IsScored(), "verdict %s", result.Verdict)
		assert.GreaterOrEqual(t, result.Score, 70)
		assert.Contains(t, result.DetailedAnalysis.BeneficialIngredients, "hyaluronic acid")
		assert.Equal(t, 100, result.Breakdown.SkinTypeScore)

		second := postMatch(router, payload)
		require.Equal(t, http.StatusOK, second.Code)
		assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
		assert.JSONEq(t, first.Body.String(), second.Body.String())
	})

	t.Run("reports allergen conflicts", func(t *testing.T) {
		router := setupTestRouterWithService(t)

		payload := `{
			"product": {"name": "Glow Oil", "brand": "Acme", "ingredients": ["Squalane", "Fragrance (Parfum)"]},
			"profile": {"skinType": "dry", "allergies": ["fragrance"]}
		}`
		w := postMatch(router, payload)
		require.Equal(t, http.StatusOK, w.Code)

		var result domain.MatchResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.Equal(t, domain.VerdictContainsAllergen, result.Verdict)
		assert.Equal(t, 0, result.Score)
		assert.Equal(t, 100, result.Confidence)
	})

	t.Run("returns 400 for missing profile", func(t *testing.T) {
		router := setupTestRouterWithService(t)

		w := postMatch(router, `{"product":{"name":"Serum"}}`)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
		var response map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if response["error"] == nil {
			t.Error("expected error field in response")
		}
	})

	t.Run("returns 400 for invalid JSON", func(t *testing.T) {
		router := setupTestRouterWithService(t)

		w := postMatch(router, `{invalid json}`)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("validates HTTP method", func(t *testing.T) {
		router := setupTestRouterWithService(t)

		for _, method := range []string{"GET", "PUT", "DELETE", "PATCH"} {
			req, _ := http.NewRequest(method, "/api/v1/match", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusNotFound {
				t.Errorf("Method %s: Status = %d, want %d", method, w.Code, http.StatusNotFound)
			}
		}
	})
}

// TestReferenceEndpoints tests the onboarding vocabulary endpoints
func TestReferenceEndpoints(t *testing.T) {
	t.Run("lists concern vocabulary", func(t *testing.T) {
		router := setupTestRouterWithService(t)

		req, _ := http.NewRequest("GET", "/api/v1/reference/concerns", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var response struct {
			Concerns []ConcernVocabulary `json:"concerns"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

		keys := make([]string, 0, len(response.Concerns))
		for _, c := range response.Concerns {
			keys = append(keys, c.Key)
			assert.NotEmpty(t, c.Ingredients, "concern %s", c.Key)
		}
		assert.ElementsMatch(t, domain.ConcernKeys, keys)
	})

	t.Run("lists skin types", func(t *testing.T) {
		router := setupTestRouterWithService(t)

		req, _ := http.NewRequest("GET", "/api/v1/reference/skin-types", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var response struct {
			SkinTypes []string          `json:"skinTypes"`
			Aliases   map[string]string `json:"aliases"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, domain.CanonicalSkinTypes, response.SkinTypes)
		assert.Equal(t, "acne-prone", response.Aliases["acne prone"])
	})
}

// TestMetricsEndpoint tests that prometheus metrics are exposed
func TestMetricsEndpoint(t *testing.T) {
	router := setupTestRouterWithService(t)
	postMatch(router, `{"product":{"name":"Serum","ingredients":["glycerin"]},"profile":{"skinType":"dry"}}`)

	req, _ := http.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "beautymatch_matches_total")
	assert.Contains(t, w.Body.String(), "beautymatch_http_requests_total")
}

// TestCORSIntegration tests CORS headers work end-to-end with full router
func TestCORSIntegration(t *testing.T) {
	t.Run("health endpoint has CORS for the extension", func(t *testing.T) {
		router := setupTestRouter()

		req, _ := http.NewRequest("GET", "/health", nil)
		req.Header.Set("Origin", "chrome-extension://abcdefghijklmnop")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusOK)
		}
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "chrome-extension://abcdefghijklmnop" {
			t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, "chrome-extension://abcdefghijklmnop")
		}
		if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
			t.Errorf("Access-Control-Allow-Credentials = %q, want %q", got, "true")
		}
	})

	t.Run("preflight for match endpoint", func(t *testing.T) {
		router := setupTestRouter()

		req, _ := http.NewRequest("OPTIONS", "/api/v1/match", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", "POST")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusNoContent)
		}
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
			t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, "http://localhost:3000")
		}
	})
}

// TestAPIVersioning tests that API v1 routes are correctly versioned
func TestAPIVersioning(t *testing.T) {
	router := setupTestRouter()

	for _, path := range []string{"/api/match", "/match", "/api/v2/match"} {
		req, _ := http.NewRequest("POST", path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Path %s: Status = %d, want %d", path, w.Code, http.StatusNotFound)
		}
	}
}

// TestJSONResponses tests that API responses are valid JSON
func TestJSONResponses(t *testing.T) {
	endpoints := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"POST", "/api/v1/match"},
		{"GET", "/api/v1/reference/skin-types"},
	}

	for _, endpoint := range endpoints {
		t.Run(endpoint.method+" "+endpoint.path, func(t *testing.T) {
			router := setupTestRouter()

			req, _ := http.NewRequest(endpoint.method, endpoint.path, nil)
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if got := w.Header().Get("Content-Type"); got != "application/json; charset=utf-8" {
				t.Errorf("Content-Type = %q, want application/json; charset=utf-8", got)
			}

			var response map[string]interface{}
			if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
				t.Errorf("Response should be valid JSON, got error: %v", err)
			}
		})
	}
}
