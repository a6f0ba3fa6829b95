package recommendationhandler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	catalogdomain "shoprec-server/internal/domain/catalog"
	"shoprec-server/internal/domain/recommendation"
	"shoprec-server/internal/interfaces/httpserver/requests"
	"shoprec-server/internal/interfaces/httpserver/responses"
)

// RecommendationHandler serves presenter operations that do not need a
// model round trip.
type RecommendationHandler struct {
	repo         catalogdomain.Repository
	defaultCount int
	log          zerolog.Logger
}

// NewRecommendationHandler creates a new recommendation handler
func NewRecommendationHandler(repo catalogdomain.Repository, defaultCount int, log zerolog.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		repo:         repo,
		defaultCount: defaultCount,
		log:          log.With().Str("handler", "recommendation").Logger(),
	}
}

// Rerank handles POST /api/recommendations/rerank: promote a chosen
// alternative to primary.
func (h *RecommendationHandler) Rerank(c *gin.Context) {
	var req requests.RerankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.NewError(err.Error()))
		return
	}

	rec := recommendation.Recommendation{
		Confidence: recommendation.BaseConfidence,
		Intent:     recommendation.IntentProductSearch,
		Rule:       recommendation.RuleRerank,
	}

	primary, ok := h.repo.ByID(req.Primary)
	if !ok {
		c.JSON(http.StatusBadRequest, responses.NewError(fmt.Sprintf("unknown product id %q", req.Primary)))
		return
	}
	rec.Primary = primary

	for _, id := range req.Alternatives {
		alt, ok := h.repo.ByID(id)
		if !ok {
			c.JSON(http.StatusBadRequest, responses.NewError(fmt.Sprintf("unknown product id %q", id)))
			return
		}
		rec.Alternatives = append(rec.Alternatives, alt)
	}

	promoted, ok := recommendation.Promote(rec, req.Chosen)
	if !ok {
		c.JSON(http.StatusBadRequest, responses.NewError(fmt.Sprintf("chosen id %q is not an alternative", req.Chosen)))
		return
	}

	c.JSON(http.StatusOK, promoted)
}

// Default handles GET /api/recommendations/default: the recommendation
// shown before any conversation exists.
func (h *RecommendationHandler) Default(c *gin.Context) {
	c.JSON(http.StatusOK, recommendation.Default(h.repo, h.defaultCount))
}
