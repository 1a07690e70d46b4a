package similarity

import "math"

// statDocRefers counts, for every distinct term text, the number of
// documents containing it at least once.
func statDocRefers(docs []*Document) map[string]int {
	refers := make(map[string]int)
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		for _, term := range doc.Terms {
			refers[term.Text]++
		}
	}
	return refers
}

// ComputeIDF builds the inverse-document-frequency table for one corpus:
// idf = ln(N / (df+1)), floored at 0. Terms occurring in more than half the
// corpus end up with no discriminating power but are never penalized below
// neutral.
func ComputeIDF(docs []*Document) map[string]float64 {
	refers := statDocRefers(docs)
	idfs := make(map[string]float64, len(refers))
	total := float64(len(docs))
	for text, df := range refers {
		idf := math.Log(total / float64(df+1))
		if idf < 0 {
			idf = 0
		}
		idfs[text] = idf
	}
	return idfs
}
