package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/address-similarity/app/requests"
	"github.com/address-similarity/app/responses"
	"github.com/address-similarity/app/services"
)

// AdminController serves corpus-rebuild and cache administration.
type AdminController struct {
	service *services.SimilarityService
	logger  *zap.Logger
}

func NewAdminController(service *services.SimilarityService, logger *zap.Logger) *AdminController {
	return &AdminController{service: service, logger: logger}
}

// RebuildAll handles POST /v1/admin/corpus/rebuild. It starts a background
// job and returns its id.
func (ac *AdminController) RebuildAll(c *gin.Context) {
	jobID, err := ac.service.StartRebuildAll()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, responses.ErrorResponse{
			Error:     "REBUILD_UNAVAILABLE",
			Message:   err.Error(),
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	c.JSON(http.StatusAccepted, responses.RebuildResponse{
		JobID:   jobID,
		Message: "rebuild started",
	})
}

// RebuildRegion handles POST /v1/admin/corpus/rebuild-region synchronously.
func (ac *AdminController) RebuildRegion(c *gin.Context) {
	var req requests.RebuildRegionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:     "INVALID_REQUEST",
			Message:   err.Error(),
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	count, err := ac.service.RebuildRegion(c.Request.Context(), req.RegionKey)
	if err != nil {
		ac.logger.Error("region rebuild failed",
			zap.String("region_key", req.RegionKey),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:     "REBUILD_FAILED",
			Message:   err.Error(),
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	c.JSON(http.StatusOK, responses.RebuildResponse{
		RegionKey: req.RegionKey,
		Documents: count,
		Message:   "rebuild completed",
	})
}

// JobStatus handles GET /v1/admin/jobs/:id.
func (ac *AdminController) JobStatus(c *gin.Context) {
	job, err := ac.service.GetJobStatus(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, responses.ErrorResponse{
			Error:     "JOB_NOT_FOUND",
			Message:   err.Error(),
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	c.JSON(http.StatusOK, responses.JobStatusResponse{
		JobID:     job.JobID,
		Status:    job.Status,
		Progress:  job.Progress,
		Processed: job.Processed,
		Total:     job.Total,
		Message:   job.Message,
	})
}

// Stats handles GET /v1/admin/stats.
func (ac *AdminController) Stats(c *gin.Context) {
	regions, documents := ac.service.VectorStats()

	resp := responses.StatsResponse{
		VectorRegions:   regions,
		VectorDocuments: documents,
		UptimeSeconds:   int64(ac.service.Uptime().Seconds()),
	}

	if stats, err := ac.service.CacheStats(c.Request.Context()); err == nil && stats != nil {
		resp.CacheHitRate = stats.HitRate
		resp.CacheTotalHits = stats.TotalHits
		resp.CacheTotalMiss = stats.TotalMiss
		resp.CacheTotalItems = stats.TotalItems
	}

	c.JSON(http.StatusOK, resp)
}

// ClearCache handles POST /v1/admin/cache/clear.
func (ac *AdminController) ClearCache(c *gin.Context) {
	if err := ac.service.ClearCache(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:     "CACHE_CLEAR_FAILED",
			Message:   err.Error(),
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cache cleared"})
}
