package models

import "time"

// MatchedTermView is a per-term breakdown of how a candidate matched the query.
type MatchedTermView struct {
	Type    string  `json:"type"`
	Text    string  `json:"text"`
	Boost   float64 `json:"boost"`
	Rate    float64 `json:"rate,omitempty"`
	Density float64 `json:"density,omitempty"`
	TFIDF   float64 `json:"tfidf"`
}

// SimilarAddress is one ranked candidate.
type SimilarAddress struct {
	ID           int64             `json:"id"`
	Text         string            `json:"text,omitempty"`
	Similarity   float64           `json:"similarity"`
	TextValue    float64           `json:"text_value"`
	TextPercent  float64           `json:"text_percent"`
	ExactValue   float64           `json:"exact_value"`
	ExactPercent float64           `json:"exact_percent"`
	MatchedTerms []MatchedTermView `json:"matched_terms,omitempty"`
}

// SimilarityResult is the full ranked answer for one query. It is what the
// query-result cache stores.
type SimilarityResult struct {
	Query     string           `json:"query"`
	RegionKey string           `json:"region_key"`
	Mode      int              `json:"mode"`
	TopN      int              `json:"top_n"`
	Results   []SimilarAddress `json:"results"`
	TookMs    int64            `json:"took_ms"`
	CachedAt  time.Time        `json:"cached_at,omitempty"`
}
