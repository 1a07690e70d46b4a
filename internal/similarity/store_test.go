package similarity

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/address-similarity/app/models"
)

func TestBuildCacheKey(t *testing.T) {
	province, city, county := testRegions()

	tests := []struct {
		name string
		addr *models.AddressEntity
		want string
	}{
		{"nil", nil, ""},
		{"missing city", &models.AddressEntity{Province: province}, ""},
		{"province and city", &models.AddressEntity{Province: province, City: city}, "330000-330100"},
		{"full triple", &models.AddressEntity{Province: province, City: city, County: county}, "330000-330100-330106"},
		{
			"city-level county excluded",
			&models.AddressEntity{
				Province: province,
				City:     city,
				County:   &models.RegionEntity{ID: 331081, Type: models.RegionCityLevelCounty},
			},
			"330000-330100",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildCacheKey(tt.addr))
		})
	}
}

func writeTestCorpus(t *testing.T, store *VectorStore, key string, n int) {
	t.Helper()
	docs := make([]*Document, 0, n)
	for i := 1; i <= n; i++ {
		doc := NewDocument(int64(i))
		doc.AddTerm(TermCounty, "西湖区")
		doc.AddTerm(TermRoad, fmt.Sprintf("路%d", i))
		docs = append(docs, doc)
	}
	require.NoError(t, store.WriteFile(key, docs))
}

func TestLoadFromFileOnly(t *testing.T) {
	store := NewVectorStore(t.TempDir(), false, zap.NewNop())
	writeTestCorpus(t, store, "1-2-3", 3)

	docs := store.Load("1-2-3")
	require.Len(t, docs, 3)

	// With the memory tier disabled the durable tier is re-read every time
	// and no IDF table is ever computed.
	for _, doc := range docs {
		for _, term := range doc.Terms {
			assert.False(t, term.IDFSet)
		}
	}
	assert.Nil(t, store.CachedIDF("1-2-3"))

	again := store.Load("1-2-3")
	require.Len(t, again, 3)
	assert.NotSame(t, docs[0], again[0], "file tier returns fresh documents")
}

func TestLoadMemoryTier(t *testing.T) {
	store := NewVectorStore(t.TempDir(), true, zap.NewNop())
	writeTestCorpus(t, store, "1-2-3", 4)

	docs := store.Load("1-2-3")
	require.Len(t, docs, 4)

	// Memory tier assigns IDF weights on first load.
	for _, doc := range docs {
		for _, term := range doc.Terms {
			assert.True(t, term.IDFSet)
		}
	}
	idfs := store.CachedIDF("1-2-3")
	require.NotNil(t, idfs)
	assert.Equal(t, 0.0, idfs["西湖区"], "term shared by the whole corpus clamps to zero")
	assert.Greater(t, idfs["路1"], 0.0)

	again := store.Load("1-2-3")
	assert.Same(t, docs[0], again[0], "subsequent loads serve the cached slice")

	regions, documents := store.Stats()
	assert.Equal(t, 1, regions)
	assert.Equal(t, 4, documents)
}

func TestLoadMissingFileIsEmptyCorpus(t *testing.T) {
	store := NewVectorStore(t.TempDir(), true, zap.NewNop())
	assert.Empty(t, store.Load("9-9-9"))
}

func TestLoadConcurrentSingleFlight(t *testing.T) {
	store := NewVectorStore(t.TempDir(), true, zap.NewNop())
	writeTestCorpus(t, store, "1-2-3", 5)

	const goroutines = 16
	results := make([][]*Document, goroutines)

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = store.Load("1-2-3")
		}(i)
	}
	wg.Wait()

	for i := 1; i < goroutines; i++ {
		require.Len(t, results[i], 5)
		assert.Same(t, results[0][0], results[i][0], "every caller observes the same loaded corpus")
	}
}

func TestWriteFileOverwrites(t *testing.T) {
	store := NewVectorStore(t.TempDir(), false, zap.NewNop())
	writeTestCorpus(t, store, "1-2", 6)
	writeTestCorpus(t, store, "1-2", 2)

	assert.Len(t, store.Load("1-2"), 2)
}
