package services

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/address-similarity/app/models"
	"github.com/address-similarity/helpers/utils"
	"github.com/address-similarity/internal/similarity"
)

// JobStatus tracks one background corpus-rebuild job.
type JobStatus struct {
	JobID     string    `json:"job_id"`
	Status    string    `json:"status"` // running | completed | failed
	Progress  float64   `json:"progress"`
	Processed int       `json:"processed"`
	Total     int       `json:"total"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SimilarityService orchestrates query handling: result cache in front of the
// computer, plus background corpus rebuilds from the source-of-record.
type SimilarityService struct {
	computer   *similarity.Computer
	queryCache IQueryCache  // may be nil
	corpus     *CorpusStore // may be nil; rebuilds disabled without it
	logger     *zap.Logger
	startTime  time.Time

	mu   sync.RWMutex
	jobs map[string]*JobStatus
}

func NewSimilarityService(computer *similarity.Computer, queryCache IQueryCache, corpus *CorpusStore, logger *zap.Logger) *SimilarityService {
	return &SimilarityService{
		computer:   computer,
		queryCache: queryCache,
		corpus:     corpus,
		logger:     logger,
		startTime:  time.Now(),
		jobs:       make(map[string]*JobStatus),
	}
}

// FindSimilar ranks corpus addresses against addressText. The second return
// reports whether the answer came from the query cache.
func (ss *SimilarityService) FindSimilar(ctx context.Context, addressText string, topN, mode int, useCache bool) (*models.SimilarityResult, bool, error) {
	key := queryKey(addressText, topN, mode)

	if useCache && ss.queryCache != nil {
		if cached, found, err := ss.queryCache.Get(ctx, key); err == nil && found {
			return cached, true, nil
		}
	}

	start := time.Now()
	query, err := ss.computer.FindSimilar(addressText, topN, mode)
	if err != nil {
		return nil, false, err
	}

	result := toResult(query, addressText, topN, mode)
	result.TookMs = time.Since(start).Milliseconds()

	if useCache && ss.queryCache != nil {
		result.CachedAt = time.Now()
		if err := ss.queryCache.Set(ctx, key, result); err != nil {
			ss.logger.Warn("query cache set failed", zap.Error(err))
		}
	}
	return result, false, nil
}

// RebuildRegion rebuilds the vector file for a single region key.
func (ss *SimilarityService) RebuildRegion(ctx context.Context, regionKey string) (int, error) {
	if ss.corpus == nil {
		return 0, errors.New("no corpus store configured")
	}

	records, err := ss.corpus.AddressesByRegion(ctx, regionKey)
	if err != nil {
		return 0, err
	}

	addresses := ss.interpretRecords(records)
	if err := ss.computer.BuildCorpusFile(regionKey, addresses); err != nil {
		return 0, err
	}
	return len(addresses), nil
}

// StartRebuildAll kicks a background job that rebuilds every region and
// returns its job id immediately.
func (ss *SimilarityService) StartRebuildAll() (string, error) {
	if ss.corpus == nil {
		return "", errors.New("no corpus store configured")
	}

	jobID := utils.GenerateUUID()
	ss.mu.Lock()
	ss.jobs[jobID] = &JobStatus{
		JobID:     jobID,
		Status:    "running",
		Message:   "listing regions",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	ss.mu.Unlock()

	go ss.runRebuildAll(jobID)
	return jobID, nil
}

func (ss *SimilarityService) runRebuildAll(jobID string) {
	ctx := context.Background()

	keys, err := ss.corpus.RegionKeys(ctx)
	if err != nil {
		ss.failJob(jobID, fmt.Sprintf("list regions: %v", err))
		return
	}

	ss.updateJob(jobID, func(j *JobStatus) {
		j.Total = len(keys)
		j.Message = "rebuilding"
	})

	for i, key := range keys {
		if _, err := ss.RebuildRegion(ctx, key); err != nil {
			ss.logger.Error("region rebuild failed",
				zap.String("job_id", jobID),
				zap.String("region_key", key),
				zap.Error(err))
			ss.failJob(jobID, fmt.Sprintf("region %s: %v", key, err))
			return
		}
		done := i + 1
		ss.updateJob(jobID, func(j *JobStatus) {
			j.Processed = done
			j.Progress = float64(done) / float64(len(keys))
		})
	}

	if ss.queryCache != nil {
		if err := ss.queryCache.Clear(ctx); err != nil {
			ss.logger.Warn("query cache clear after rebuild failed", zap.Error(err))
		}
	}

	ss.updateJob(jobID, func(j *JobStatus) {
		j.Status = "completed"
		j.Progress = 1
		j.Message = ""
	})
	ss.logger.Info("corpus rebuild completed",
		zap.String("job_id", jobID),
		zap.Int("regions", len(keys)))
}

// GetJobStatus returns the status of a rebuild job.
func (ss *SimilarityService) GetJobStatus(jobID string) (*JobStatus, error) {
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	job, exists := ss.jobs[jobID]
	if !exists {
		return nil, errors.New("job not found")
	}
	snapshot := *job
	return &snapshot, nil
}

// CacheStats reports query-cache counters, or nil when no cache is wired.
func (ss *SimilarityService) CacheStats(ctx context.Context) (*CacheStats, error) {
	if ss.queryCache == nil {
		return nil, nil
	}
	return ss.queryCache.GetStats(ctx)
}

// ClearCache drops every cached query result.
func (ss *SimilarityService) ClearCache(ctx context.Context) error {
	if ss.queryCache == nil {
		return nil
	}
	return ss.queryCache.Clear(ctx)
}

// VectorStats reports how many regions and documents are resident in memory.
func (ss *SimilarityService) VectorStats() (regions, documents int) {
	return ss.computer.Store().Stats()
}

func (ss *SimilarityService) Uptime() time.Duration {
	return time.Since(ss.startTime)
}

func (ss *SimilarityService) interpretRecords(records []CorpusRecord) []*models.AddressEntity {
	addresses := make([]*models.AddressEntity, 0, len(records))
	for _, rec := range records {
		addr, err := ss.computer.Interpret(rec.Text)
		if err != nil {
			ss.logger.Warn("skipping uninterpretable corpus record",
				zap.Int64("doc_id", rec.ID),
				zap.Error(err))
			continue
		}
		addr.ID = rec.ID
		addresses = append(addresses, addr)
	}
	return addresses
}

func (ss *SimilarityService) updateJob(jobID string, fn func(*JobStatus)) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	if job, ok := ss.jobs[jobID]; ok {
		fn(job)
		job.UpdatedAt = time.Now()
	}
}

func (ss *SimilarityService) failJob(jobID string, msg string) {
	ss.updateJob(jobID, func(j *JobStatus) {
		j.Status = "failed"
		j.Message = msg
	})
}

func queryKey(addressText string, topN, mode int) string {
	sum := sha256.Sum256([]byte(addressText))
	return fmt.Sprintf("%d:%d:%x", mode, topN, sum[:16])
}

func toResult(query *similarity.Query, addressText string, topN, mode int) *models.SimilarityResult {
	results := make([]models.SimilarAddress, 0, len(query.SimilarDocs))
	for _, sd := range query.SimilarDocs {
		sa := models.SimilarAddress{
			ID:           sd.Doc.ID,
			Similarity:   sd.Similarity,
			TextValue:    sd.TextValue,
			TextPercent:  sd.TextPercent,
			ExactValue:   sd.ExactValue,
			ExactPercent: sd.ExactPercent,
		}
		for _, mt := range sd.MatchedTerms {
			sa.MatchedTerms = append(sa.MatchedTerms, models.MatchedTermView{
				Type:    string(mt.Term.Type),
				Text:    mt.Term.Text,
				Boost:   mt.Boost,
				Rate:    mt.Rate,
				Density: mt.Density,
				TFIDF:   mt.TFIDF,
			})
		}
		results = append(results, sa)
	}

	regionKey := ""
	if query.QueryAddr != nil {
		regionKey = similarity.BuildCacheKey(query.QueryAddr)
	}

	return &models.SimilarityResult{
		Query:     addressText,
		RegionKey: regionKey,
		Mode:      mode,
		TopN:      topN,
		Results:   results,
	}
}
