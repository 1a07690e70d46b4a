package similarity

import "math"

// scoreCosine is scoring mode 1: a weighted cosine over the query's terms.
//
// The iteration is asymmetric on purpose: only the query's terms span the
// vector space, candidate-only terms are ignored. Free-text matches are
// additionally scaled by the match rate and density so that contiguous
// matches outrank scattered ones. When either vector norm is zero the
// candidate is skipped entirely rather than recorded with a NaN score.
func (c *Computer) scoreCosine(query *Query, doc *Document) {
	rate, density := textMatchStats(query.QueryDoc, doc)

	sd := newSimilarDoc(doc)

	var sumQQ, sumQD, sumDD float64
	for _, qterm := range query.QueryDoc.Terms {
		qtfidf := qterm.IDF * queryBoost(qterm)

		dterm := doc.FindTerm(qterm.Text)
		if dterm == nil && qterm.Type == TermRoadNum {
			// No textual match: a road number still counts when both
			// documents reference the same road. Only the candidate's own
			// road-number term qualifies.
			for _, t := range doc.Terms {
				if t.Type == TermRoadNum {
					dRoad := doc.refRoad(t)
					if dRoad != nil && dRoad.equal(query.QueryDoc.refRoad(qterm)) {
						dterm = t
					}
					break
				}
			}
		}

		var dboost float64
		if dterm != nil {
			dboost = candidateBoost(query.QueryDoc, doc, dterm)
		}
		r, d := 1.0, 1.0
		if dterm != nil && dterm.Type == TermText {
			r, d = rate, density
		}
		dtfidf := qterm.IDF * dboost * r * d

		if dterm != nil {
			sd.addMatched(&MatchedTerm{
				Term:    dterm,
				Boost:   dboost,
				Rate:    r,
				Density: d,
				TFIDF:   dtfidf,
			})
		}

		sumQQ += qtfidf * qtfidf
		sumQD += qtfidf * dtfidf
		sumDD += dtfidf * dtfidf
	}

	if sumDD == 0 || sumQQ == 0 {
		return
	}

	sd.Similarity = sumQD / math.Sqrt(sumQQ*sumDD)
	sd.TextValue = sd.Similarity
	query.addSimilarDoc(sd)
}
