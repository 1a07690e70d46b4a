package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/address-similarity/app/config"
	"github.com/address-similarity/app/requests"
	"github.com/address-similarity/app/responses"
	"github.com/address-similarity/app/services"
	"github.com/address-similarity/internal/similarity"
)

// SimilarityController serves the query surface.
type SimilarityController struct {
	service *services.SimilarityService
	logger  *zap.Logger
}

func NewSimilarityController(service *services.SimilarityService, logger *zap.Logger) *SimilarityController {
	return &SimilarityController{service: service, logger: logger}
}

// FindSimilar handles POST /v1/addresses/similar.
func (sc *SimilarityController) FindSimilar(c *gin.Context) {
	var req requests.SimilarityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:     "INVALID_REQUEST",
			Message:   err.Error(),
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	topN := req.TopN
	if topN <= 0 {
		topN = config.C.DefaultTopN
	}
	mode := req.Mode
	if mode == 0 {
		mode = config.C.DefaultMode
	}
	useCache := true
	if req.UseCache != nil {
		useCache = *req.UseCache
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), config.RequestTimeout())
	defer cancel()

	result, cacheHit, err := sc.service.FindSimilar(ctx, req.Address, topN, mode, useCache)
	if err != nil {
		sc.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, responses.SimilarityResponse{
		Query:            result.Query,
		RegionKey:        result.RegionKey,
		Mode:             result.Mode,
		TopN:             result.TopN,
		Results:          result.Results,
		ProcessingTimeMs: result.TookMs,
		CacheHit:         cacheHit,
	})
}

// HealthCheck handles GET /health.
func (sc *SimilarityController) HealthCheck(c *gin.Context) {
	regions, documents := sc.service.VectorStats()

	c.JSON(http.StatusOK, responses.HealthCheckResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
		Uptime:    sc.service.Uptime().String(),
		Version:   "1.0.0",
		Services: map[string]string{
			"vector_store": statusFor(regions >= 0 && documents >= 0),
		},
	})
}

func (sc *SimilarityController) writeError(c *gin.Context, err error) {
	now := time.Now().Format(time.RFC3339)

	var noCorpus *similarity.NoCorpusError
	switch {
	case errors.Is(err, similarity.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:     "INVALID_ADDRESS",
			Message:   err.Error(),
			Timestamp: now,
		})
	case errors.As(err, &noCorpus):
		c.JSON(http.StatusNotFound, responses.ErrorResponse{
			Error:     "NO_CORPUS",
			Message:   err.Error(),
			Details:   gin.H{"region_key": noCorpus.Region},
			Timestamp: now,
		})
	case errors.Is(err, similarity.ErrNoCorpus):
		c.JSON(http.StatusNotFound, responses.ErrorResponse{
			Error:     "NO_CORPUS",
			Message:   err.Error(),
			Timestamp: now,
		})
	default:
		sc.logger.Error("similarity query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:     "INTERNAL_ERROR",
			Message:   err.Error(),
			Timestamp: now,
		})
	}
}

func statusFor(ok bool) string {
	if ok {
		return "up"
	}
	return "down"
}
