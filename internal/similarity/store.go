package similarity

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/address-similarity/app/models"
	"go.uber.org/zap"
)

// DefaultCacheDir is used when no cache directory is configured.
const DefaultCacheDir = "~/.vector_cache"

// BuildCacheKey derives the corpus partition key for an address:
// provinceID-cityID, plus the county id unless the county is a city-level
// pseudo-county. Empty when province or city is missing.
func BuildCacheKey(addr *models.AddressEntity) string {
	if addr == nil || !addr.HasProvince() || !addr.HasCity() {
		return ""
	}
	key := strconv.FormatInt(addr.Province.ID, 10) + "-" + strconv.FormatInt(addr.City.ID, 10)
	if addr.HasCounty() && addr.County.Type != models.RegionCityLevelCounty {
		key += "-" + strconv.FormatInt(addr.County.ID, 10)
	}
	return key
}

// VectorStore is the two-tier document cache: newline-delimited `.vt` files
// per region key as the durable source of truth, plus an optional
// process-wide memory tier populated lazily, at most once per key.
//
// There is no eviction and no invalidation: entries live for the process
// lifetime, and a corpus rebuild without a restart serves stale vectors and
// IDF weights. Rebuilds are offline maintenance operations.
type VectorStore struct {
	dir      string
	inMemory bool
	logger   *zap.Logger

	mu      sync.RWMutex
	vectors map[string][]*Document

	idfMu sync.RWMutex
	idfs  map[string]map[string]float64
}

// NewVectorStore creates a store rooted at dir (defaulting to
// DefaultCacheDir, with a leading ~ expanded to the user home).
func NewVectorStore(dir string, inMemory bool, logger *zap.Logger) *VectorStore {
	if dir == "" {
		dir = DefaultCacheDir
	}
	if strings.HasPrefix(dir, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, strings.TrimPrefix(dir, "~"))
		}
	}
	return &VectorStore{
		dir:      dir,
		inMemory: inMemory,
		logger:   logger,
		vectors:  make(map[string][]*Document),
		idfs:     make(map[string]map[string]float64),
	}
}

// Dir returns the resolved cache directory.
func (s *VectorStore) Dir() string { return s.dir }

// Load returns the region's documents with IDF assigned from the cached
// table.
//
// When the memory tier is disabled the documents come straight from the
// durable tier and no IDF table is computed, leaving IDF unset on every
// term. This skew is inherited from the source design and kept on purpose:
// changing it changes scoring output.
func (s *VectorStore) Load(key string) []*Document {
	if !s.inMemory {
		return s.loadFile(key)
	}

	s.mu.RLock()
	docs, ok := s.vectors[key]
	s.mu.RUnlock()
	if ok {
		return docs
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if docs, ok := s.vectors[key]; ok {
		return docs
	}
	docs = s.loadFile(key)
	idfs := s.ensureIDF(key, docs)
	for _, doc := range docs {
		for _, t := range doc.Terms {
			if idf, ok := idfs[t.Text]; ok {
				t.SetIDF(idf)
			} else {
				t.SetIDF(missingIDF)
			}
		}
	}
	s.vectors[key] = docs
	return docs
}

// CachedIDF returns the region's IDF table if one has been computed, else
// nil. It never triggers a load.
func (s *VectorStore) CachedIDF(key string) map[string]float64 {
	if key == "" {
		return nil
	}
	s.idfMu.RLock()
	defer s.idfMu.RUnlock()
	return s.idfs[key]
}

// ensureIDF computes and caches the IDF table for key, once.
func (s *VectorStore) ensureIDF(key string, docs []*Document) map[string]float64 {
	s.idfMu.RLock()
	idfs, ok := s.idfs[key]
	s.idfMu.RUnlock()
	if ok {
		return idfs
	}
	s.idfMu.Lock()
	defer s.idfMu.Unlock()
	if idfs, ok := s.idfs[key]; ok {
		return idfs
	}
	idfs = ComputeIDF(docs)
	s.idfs[key] = idfs
	return idfs
}

func (s *VectorStore) filePath(key string) string {
	return filepath.Join(s.dir, key+".vt")
}

// loadFile reads the durable tier. A missing file means an empty corpus;
// a read failure is logged and degrades to an empty corpus as well.
func (s *VectorStore) loadFile(key string) []*Document {
	docs := make([]*Document, 0)
	path := s.filePath(key)
	f, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Error("reading vector cache file failed",
				zap.String("path", path), zap.Error(err))
		}
		return docs
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		if doc := Deserialize(scanner.Text()); doc != nil {
			docs = append(docs, doc)
		}
	}
	if err := scanner.Err(); err != nil {
		s.logger.Error("reading vector cache file failed",
			zap.String("path", path), zap.Error(err))
	}
	return docs
}

// WriteFile overwrites the durable tier for key with the given documents.
// Delete-then-recreate: not safe against concurrent readers of the same key.
func (s *VectorStore) WriteFile(key string, docs []*Document) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating cache dir %s: %w", s.dir, err)
	}
	path := s.filePath(key)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger.Error("removing stale vector cache file failed",
			zap.String("path", path), zap.Error(err))
		return fmt.Errorf("removing cache file %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		s.logger.Error("creating vector cache file failed",
			zap.String("path", path), zap.Error(err))
		return fmt.Errorf("creating cache file %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, doc := range docs {
		if _, err := w.WriteString(Serialize(doc)); err != nil {
			return fmt.Errorf("writing cache file %s: %w", path, err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing cache file %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		s.logger.Error("writing vector cache file failed",
			zap.String("path", path), zap.Error(err))
		return fmt.Errorf("writing cache file %s: %w", path, err)
	}
	return nil
}

// Stats reports how many regions and documents sit in the memory tier.
func (s *VectorStore) Stats() (regions, documents int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, docs := range s.vectors {
		documents += len(docs)
	}
	return len(s.vectors), documents
}
