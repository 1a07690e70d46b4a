package responses

import "github.com/address-similarity/app/models"

// SimilarityResponse wraps one ranked query answer.
type SimilarityResponse struct {
	Query            string                  `json:"query"`
	RegionKey        string                  `json:"region_key"`
	Mode             int                     `json:"mode"`
	TopN             int                     `json:"top_n"`
	Results          []models.SimilarAddress `json:"results"`
	ProcessingTimeMs int64                   `json:"processing_time_ms"`
	CacheHit         bool                    `json:"cache_hit"`
}

// RebuildResponse acknowledges a rebuild request.
type RebuildResponse struct {
	JobID     string `json:"job_id,omitempty"`
	RegionKey string `json:"region_key,omitempty"`
	Documents int    `json:"documents,omitempty"`
	Message   string `json:"message"`
}

// JobStatusResponse reports one background job.
type JobStatusResponse struct {
	JobID     string  `json:"job_id"`
	Status    string  `json:"status"`
	Progress  float64 `json:"progress"`
	Processed int     `json:"processed"`
	Total     int     `json:"total"`
	Message   string  `json:"message,omitempty"`
}

// StatsResponse exposes engine counters for the admin surface.
type StatsResponse struct {
	CacheHitRate    float64 `json:"cache_hit_rate"`
	CacheTotalHits  int64   `json:"cache_total_hits"`
	CacheTotalMiss  int64   `json:"cache_total_miss"`
	CacheTotalItems int64   `json:"cache_total_items"`
	VectorRegions   int     `json:"vector_regions"`
	VectorDocuments int     `json:"vector_documents"`
	UptimeSeconds   int64   `json:"uptime_seconds"`
}

// HealthCheckResponse reports service liveness.
type HealthCheckResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Uptime    string            `json:"uptime"`
	Version   string            `json:"version"`
	Services  map[string]string `json:"services"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error     string      `json:"error"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
	Timestamp string      `json:"timestamp"`
}
