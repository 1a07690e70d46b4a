package similarity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoreHybridOne(t *testing.T, queryDoc, doc *Document) *SimilarDoc {
	t.Helper()
	c := &Computer{}
	query := &Query{QueryDoc: queryDoc}
	c.scoreHybrid(query, doc)
	require.Len(t, query.SimilarDocs, 1, "hybrid mode records every candidate")
	return query.SimilarDocs[0]
}

func TestScoreHybridSameTownAndVillage(t *testing.T) {
	queryDoc := NewDocument(0)
	queryDoc.Terms = []*Term{
		weightedTerm(TermTown, "大王", 1),
		weightedTerm(TermVillage, "李村", 1),
	}
	doc := NewDocument(1)
	doc.Terms = []*Term{
		weightedTerm(TermTown, "大王", 1),
		weightedTerm(TermVillage, "李村", 1),
	}

	sd := scoreHybridOne(t, queryDoc, doc)
	assert.Equal(t, 0.98, sd.ExactPercent)
	assert.Equal(t, 1.0, sd.ExactValue)
	assert.InDelta(t, 0.98, sd.Similarity, 1e-12)
}

func TestScoreHybridSameTownOnly(t *testing.T) {
	queryDoc := NewDocument(0)
	queryDoc.Terms = []*Term{weightedTerm(TermTown, "大王", 1)}
	doc := NewDocument(1)
	doc.Terms = []*Term{
		weightedTerm(TermTown, "大王", 1),
		weightedTerm(TermVillage, "李村", 1),
	}

	sd := scoreHybridOne(t, queryDoc, doc)
	// Same town caps at 0.96 plus whatever the 2% text share adds.
	assert.InDelta(t, 0.96, sd.Similarity, 1e-12)
}

func TestScoreHybridDifferentTownsCapped(t *testing.T) {
	queryDoc := NewDocument(0)
	queryDoc.Terms = []*Term{
		weightedTerm(TermTown, "大王", 1),
		weightedTerm(TermText, "金", 1),
		weightedTerm(TermText, "城", 1),
	}
	doc := NewDocument(1)
	doc.Terms = []*Term{
		weightedTerm(TermTown, "小王", 1),
		weightedTerm(TermText, "金", 1),
		weightedTerm(TermText, "城", 1),
	}

	sd := scoreHybridOne(t, queryDoc, doc)
	// Full text match but different towns: 0.2*0 + 0.8*1.
	assert.InDelta(t, 1.0, sd.TextValue, 1e-9)
	assert.InDelta(t, 0.8, sd.Similarity, 1e-9)
}

func TestScoreHybridSameRoadAndNumber(t *testing.T) {
	queryDoc := NewDocument(0)
	queryDoc.Terms = []*Term{
		weightedTerm(TermRoad, "人民路", 1),
		weightedTerm(TermRoadNum, "40号", 1),
	}
	doc := NewDocument(1)
	doc.Terms = []*Term{
		weightedTerm(TermRoad, "人民路", 1),
		weightedTerm(TermRoadNum, "四十号", 1), // different spelling, same number
	}

	sd := scoreHybridOne(t, queryDoc, doc)
	assert.Equal(t, 1.0, sd.ExactValue)
	assert.InDelta(t, 0.98, sd.Similarity, 1e-12)
}

func TestScoreHybridSameRoadDifferentNumber(t *testing.T) {
	queryDoc := NewDocument(0)
	queryDoc.Terms = []*Term{
		weightedTerm(TermRoad, "人民路", 1),
		weightedTerm(TermRoadNum, "40号", 1),
	}
	doc := NewDocument(1)
	doc.Terms = []*Term{
		weightedTerm(TermRoad, "人民路", 1),
		weightedTerm(TermRoadNum, "42号", 1),
	}

	sd := scoreHybridOne(t, queryDoc, doc)
	wantEV := 0.8 + (1/math.Sqrt(math.Sqrt(3)))*0.2
	assert.Equal(t, 0.7, sd.ExactPercent, "weak text evidence keeps weight on the number distance")
	assert.InDelta(t, wantEV, sd.ExactValue, 1e-12)
	assert.InDelta(t, 0.7*wantEV, sd.Similarity, 1e-12)
}

func TestScoreHybridSameRoadDifferentNumberStrongText(t *testing.T) {
	queryDoc := NewDocument(0)
	queryDoc.Terms = []*Term{
		weightedTerm(TermRoad, "人民路", 1),
		weightedTerm(TermRoadNum, "40号", 1),
		weightedTerm(TermText, "金", 1),
		weightedTerm(TermText, "城", 1),
	}
	doc := NewDocument(1)
	doc.Terms = []*Term{
		weightedTerm(TermRoad, "人民路", 1),
		weightedTerm(TermRoadNum, "42号", 1),
		weightedTerm(TermText, "金", 1),
		weightedTerm(TermText, "城", 1),
	}

	sd := scoreHybridOne(t, queryDoc, doc)
	require.InDelta(t, 1.0, sd.TextValue, 1e-9)

	// Convincing text evidence shifts the weight away from the number
	// distance.
	wantEV := 0.8 + (1/math.Sqrt(math.Sqrt(3)))*0.2
	assert.Equal(t, 0.2, sd.ExactPercent)
	assert.InDelta(t, wantEV, sd.ExactValue, 1e-12)
	assert.InDelta(t, 0.2*wantEV+0.8*sd.TextValue, sd.Similarity, 1e-12)
}

func TestScoreHybridSameRoadMissingNumber(t *testing.T) {
	queryDoc := NewDocument(0)
	queryDoc.Terms = []*Term{weightedTerm(TermRoad, "人民路", 1)}
	doc := NewDocument(1)
	doc.Terms = []*Term{
		weightedTerm(TermRoad, "人民路", 1),
		weightedTerm(TermRoadNum, "42号", 1),
	}

	sd := scoreHybridOne(t, queryDoc, doc)
	assert.Equal(t, 0.8, sd.ExactValue)
	assert.Equal(t, 0.7, sd.ExactPercent)
	assert.InDelta(t, 0.56, sd.Similarity, 1e-12)
}

func TestScoreHybridSameRoadMissingNumberStrongText(t *testing.T) {
	queryDoc := NewDocument(0)
	queryDoc.Terms = []*Term{
		weightedTerm(TermRoad, "人民路", 1),
		weightedTerm(TermText, "金", 1),
		weightedTerm(TermText, "城", 1),
	}
	doc := NewDocument(1)
	doc.Terms = []*Term{
		weightedTerm(TermRoad, "人民路", 1),
		weightedTerm(TermRoadNum, "42号", 1),
		weightedTerm(TermText, "金", 1),
		weightedTerm(TermText, "城", 1),
	}

	sd := scoreHybridOne(t, queryDoc, doc)
	require.InDelta(t, 1.0, sd.TextValue, 1e-9)
	assert.Equal(t, 0.9, sd.ExactValue)
	assert.Equal(t, 0.3, sd.ExactPercent)
	assert.InDelta(t, 0.3*0.9+0.7*sd.TextValue, sd.Similarity, 1e-12)
}

func TestScoreHybridDifferentRoads(t *testing.T) {
	queryDoc := NewDocument(0)
	queryDoc.Terms = []*Term{weightedTerm(TermRoad, "人民路", 1)}
	doc := NewDocument(1)
	doc.Terms = []*Term{weightedTerm(TermRoad, "建国路", 1)}

	sd := scoreHybridOne(t, queryDoc, doc)
	assert.Equal(t, 0.0, sd.ExactValue)
	assert.Equal(t, 0.15, sd.ExactPercent)
	assert.Equal(t, 0.0, sd.Similarity)
}

func TestScoreHybridDifferentRoadsStrongText(t *testing.T) {
	queryDoc := NewDocument(0)
	queryDoc.Terms = []*Term{
		weightedTerm(TermRoad, "人民路", 1),
		weightedTerm(TermText, "金", 1),
		weightedTerm(TermText, "城", 1),
	}
	doc := NewDocument(1)
	doc.Terms = []*Term{
		weightedTerm(TermRoad, "建国路", 1),
		weightedTerm(TermText, "金", 1),
		weightedTerm(TermText, "城", 1),
	}

	sd := scoreHybridOne(t, queryDoc, doc)
	require.InDelta(t, 1.0, sd.TextValue, 1e-9)

	// Conflicting roads barely dent a near-perfect text match.
	assert.Equal(t, 0.07, sd.ExactPercent)
	assert.Equal(t, 0.0, sd.ExactValue)
	assert.InDelta(t, 0.93*sd.TextValue, sd.Similarity, 1e-12)
}

func TestScoreHybridPureTextFallthrough(t *testing.T) {
	queryDoc := NewDocument(0)
	queryDoc.Terms = []*Term{
		weightedTerm(TermText, "金", 1),
		weightedTerm(TermText, "城", 1),
	}
	doc := NewDocument(1)
	doc.Terms = []*Term{
		weightedTerm(TermText, "金", 1),
		weightedTerm(TermText, "城", 1),
	}

	sd := scoreHybridOne(t, queryDoc, doc)
	assert.Equal(t, 0.0, sd.ExactPercent)
	assert.InDelta(t, sd.TextValue, sd.Similarity, 1e-12)
	assert.InDelta(t, 1.0, sd.Similarity, 1e-9)
}

func TestScoreHybridTownRuleBeatsRoadRule(t *testing.T) {
	queryDoc := NewDocument(0)
	queryDoc.Terms = []*Term{
		weightedTerm(TermTown, "大王", 1),
		weightedTerm(TermRoad, "人民路", 1),
		weightedTerm(TermRoadNum, "40号", 1),
	}
	doc := NewDocument(1)
	doc.Terms = []*Term{
		weightedTerm(TermTown, "小王", 1),
		weightedTerm(TermRoad, "人民路", 1),
		weightedTerm(TermRoadNum, "40号", 1),
	}

	sd := scoreHybridOne(t, queryDoc, doc)
	// Conflicting towns decide first even when road and number agree.
	assert.Equal(t, 0.2, sd.ExactPercent)
	assert.Equal(t, 0.0, sd.ExactValue)
}
