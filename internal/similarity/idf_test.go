package similarity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docWithTexts(id int64, texts ...string) *Document {
	doc := NewDocument(id)
	for _, text := range texts {
		doc.AddTerm(TermText, text)
	}
	return doc
}

func TestComputeIDF(t *testing.T) {
	docs := []*Document{
		docWithTexts(1, "人", "民", "路"),
		docWithTexts(2, "人", "民", "巷"),
		docWithTexts(3, "人", "和", "路"),
		docWithTexts(4, "人", "平", "街"),
	}

	idfs := ComputeIDF(docs)

	// Present in every document: ln(4/5) < 0 clamps to neutral.
	assert.Equal(t, 0.0, idfs["人"])

	// Rarer terms weigh more.
	require.Contains(t, idfs, "民")
	require.Contains(t, idfs, "巷")
	assert.Greater(t, idfs["巷"], idfs["民"])
	assert.Greater(t, idfs["民"], idfs["人"])

	assert.InDelta(t, math.Log(4.0/2.0), idfs["巷"], 1e-12)
	assert.InDelta(t, math.Log(4.0/3.0), idfs["民"], 1e-12)
}

func TestComputeIDFSkipsNilDocs(t *testing.T) {
	idfs := ComputeIDF([]*Document{nil, docWithTexts(1, "路")})
	assert.InDelta(t, 0.0, idfs["路"], 1e-12) // ln(2/2) = 0
}
