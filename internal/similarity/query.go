package similarity

import (
	"sort"

	"github.com/address-similarity/app/models"
)

// MatchedTerm explains one candidate term that matched the query, with the
// multipliers that went into its weighted value.
type MatchedTerm struct {
	Term    *Term   `json:"term"`
	Boost   float64 `json:"boost"`
	Rate    float64 `json:"rate"`
	Density float64 `json:"density"`
	TFIDF   float64 `json:"tfidf"`
}

// SimilarDoc is one scored corpus document. For the hybrid scorer the
// similarity decomposes into a free-text cosine part (TextValue weighted by
// TextPercent) and a deterministic part (ExactValue weighted by
// ExactPercent).
type SimilarDoc struct {
	Doc          *Document      `json:"doc"`
	Similarity   float64        `json:"similarity"`
	TextValue    float64        `json:"text_value"`
	TextPercent  float64        `json:"text_percent"`
	ExactValue   float64        `json:"exact_value"`
	ExactPercent float64        `json:"exact_percent"`
	MatchedTerms []*MatchedTerm `json:"matched_terms,omitempty"`
}

func newSimilarDoc(doc *Document) *SimilarDoc {
	return &SimilarDoc{Doc: doc, TextPercent: 1}
}

func (sd *SimilarDoc) addMatched(mt *MatchedTerm) {
	sd.MatchedTerms = append(sd.MatchedTerms, mt)
}

// blend recomputes the overall similarity from the exact/text split.
func (sd *SimilarDoc) blend() {
	sd.TextPercent = 1 - sd.ExactPercent
	sd.Similarity = sd.ExactValue*sd.ExactPercent + sd.TextValue*sd.TextPercent
}

// Query is one similarity request and its result set.
type Query struct {
	TopN        int                   `json:"top_n"`
	QueryAddr   *models.AddressEntity `json:"query_addr"`
	QueryDoc    *Document             `json:"query_doc"`
	SimilarDocs []*SimilarDoc         `json:"similar_docs"`
}

func (q *Query) addSimilarDoc(sd *SimilarDoc) {
	q.SimilarDocs = append(q.SimilarDocs, sd)
}

// sortSimilarDocs orders results by similarity descending; the stable sort
// breaks ties by corpus order. The list is truncated to TopN when set.
func (q *Query) sortSimilarDocs() {
	sort.SliceStable(q.SimilarDocs, func(i, j int) bool {
		return q.SimilarDocs[i].Similarity > q.SimilarDocs[j].Similarity
	})
	if q.TopN > 0 && len(q.SimilarDocs) > q.TopN {
		q.SimilarDocs = q.SimilarDocs[:q.TopN]
	}
}
