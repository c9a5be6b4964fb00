package http

import (
	"errors"
	"net/http"

	"github.com/beautymatch/backend/internal/domain"
	"github.com/beautymatch/backend/internal/usecase"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// Handler holds dependencies for HTTP handlers
type Handler struct {
	service *usecase.CompatibilityService
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler. A nil service makes the match and
// reference endpoints answer 503.
func NewHandler(service *usecase.CompatibilityService, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, logger: logger}
}

// ErrorResponse is the body of every non-2xx answer
type ErrorResponse struct {
	Error string `json:"error"`
}

// ConcernVocabulary is one concern and the ingredients that address it
type ConcernVocabulary struct {
	Key         string   `json:"key"`
	Ingredients []string `json:"ingredients"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "beautymatch-backend",
		"version": Version,
	})
}

// Match scores the posted product against the posted skin profile
func (h *Handler) Match(c *gin.Context) {
	if h.service == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "match service not configured"})
		return
	}

	var request domain.MatchRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request: " + err.Error()})
		return
	}

	result, cached, err := h.service.Evaluate(c.Request.Context(), &request)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if cached {
		c.Header("X-Cache", "HIT")
	} else {
		c.Header("X-Cache", "MISS")
	}
	c.JSON(http.StatusOK, result)
}

// ConcernVocabulary lists the concern keys a profile may declare with their ingredients
func (h *Handler) ConcernVocabulary(c *gin.Context) {
	if h.service == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "match service not configured"})
		return
	}

	tables := h.service.Matcher().Tables()
	concerns := make([]ConcernVocabulary, 0, len(tables.Concerns))
	for _, key := range tables.SortedConcerns() {
		ingredients := tables.ConcernIngredients(key)
		if ingredients == nil {
			ingredients = []string{}
		}
		concerns = append(concerns, ConcernVocabulary{Key: key, Ingredients: ingredients})
	}

	c.JSON(http.StatusOK, gin.H{"concerns": concerns})
}

// SkinTypes lists the canonical skin-type keys and the aliases that resolve to them
func (h *Handler) SkinTypes(c *gin.Context) {
	aliases := map[string]string{}
	if h.service != nil {
		if t := h.service.Matcher().Tables(); t.SkinTypeAliases != nil {
			aliases = t.SkinTypeAliases
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"skinTypes": domain.CanonicalSkinTypes,
		"aliases":   aliases,
	})
}

// respondError maps service errors onto HTTP status codes
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: err.Error()})
	default:
		h.logger.Error("match failed", zap.Error(err), zap.String("request_id", c.GetString(requestIDKey)))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}
