package similarity

import (
	"strings"
	"time"

	"github.com/address-similarity/app/models"
	"go.uber.org/zap"
)

// Scoring modes.
const (
	ModeCosine = 1 // weighted cosine over the full query vector
	ModeHybrid = 2 // text cosine blended with deterministic structural rules
)

// Computer ranks historical addresses by similarity to a query address.
// It owns no global state: the vector store carries the per-region caches
// and is injected once at startup.
type Computer struct {
	interpreter Interpreter
	segmenter   Segmenter
	store       *VectorStore
	logger      *zap.Logger
}

// NewComputer wires the similarity engine.
func NewComputer(interpreter Interpreter, segmenter Segmenter, store *VectorStore, logger *zap.Logger) *Computer {
	return &Computer{
		interpreter: interpreter,
		segmenter:   segmenter,
		store:       store,
		logger:      logger,
	}
}

// Store exposes the underlying vector store for admin surfaces.
func (c *Computer) Store() *VectorStore { return c.store }

// Interpret exposes structured interpretation for callers that build corpus
// files from raw address rows.
func (c *Computer) Interpret(text string) (*models.AddressEntity, error) {
	return c.interpreter.Interpret(text)
}

// FindSimilar ranks the region's corpus against the query address and keeps
// the topN best matches. The address text must interpret to at least
// province, city and county; the resolved region must have a corpus.
func (c *Computer) FindSimilar(addressText string, topN, mode int) (*Query, error) {
	start := time.Now()

	if strings.TrimSpace(addressText) == "" {
		return nil, &InputError{Reason: "empty address text"}
	}
	if mode != ModeCosine && mode != ModeHybrid {
		return nil, &InputError{Reason: "unknown scoring mode"}
	}

	addr, err := c.interpreter.Interpret(addressText)
	if err != nil || addr == nil {
		c.logger.Warn("cannot interpret address", zap.String("text", addressText), zap.Error(err))
		return nil, &InputError{Reason: "cannot interpret address"}
	}
	if !addr.HasProvince() || !addr.HasCity() || !addr.HasCounty() {
		c.logger.Warn("address lacks province, city or county",
			zap.String("text", addressText),
			zap.String("resolved", regionTriple(addr)))
		return nil, &InputError{Reason: "address lacks province, city or county"}
	}

	key := BuildCacheKey(addr)
	docs := c.store.Load(key)
	if len(docs) == 0 {
		return nil, &NoCorpusError{Region: addr.DisplayName()}
	}

	// Analyze after the corpus load so the query terms pick up the cached
	// IDF table when the memory tier is enabled.
	query := &Query{TopN: topN, QueryAddr: addr, QueryDoc: c.Analyze(addr)}

	for _, doc := range docs {
		if mode == ModeHybrid {
			c.scoreHybrid(query, doc)
		} else {
			c.scoreCosine(query, doc)
		}
	}
	query.sortSimilarDocs()

	c.logger.Info("find-similar done",
		zap.String("region", key),
		zap.Int("corpus_docs", len(docs)),
		zap.Int("results", len(query.SimilarDocs)),
		zap.Duration("elapsed", time.Since(start)))
	return query, nil
}

// BuildCorpusFile re-analyzes a full address batch and overwrites the
// region's durable cache file. Offline maintenance only: it is not safe to
// run against a key being read concurrently, and already-cached memory-tier
// entries keep serving the old corpus until the process restarts.
func (c *Computer) BuildCorpusFile(key string, addresses []*models.AddressEntity) error {
	if key == "" || len(addresses) == 0 {
		return nil
	}
	start := time.Now()
	docs := c.analyzeAll(addresses)
	if err := c.store.WriteFile(key, docs); err != nil {
		return err
	}
	c.logger.Info("corpus file rebuilt",
		zap.String("region", key),
		zap.Int("docs", len(docs)),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

func regionTriple(addr *models.AddressEntity) string {
	part := func(r *models.RegionEntity) string {
		if r == nil {
			return "X"
		}
		return r.Name
	}
	return part(addr.Province) + "-" + part(addr.City) + "-" + part(addr.County)
}
