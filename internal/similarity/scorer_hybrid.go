package similarity

import "math"

// scoreHybrid is scoring mode 2: a free-text cosine blended with a
// deterministic structural override. Unlike mode 1 it always records a
// result for every candidate.
//
// Phase A computes the cosine over Text terms only. Phase B walks a fixed
// priority ladder of structural rules (town+village, town, road+number,
// road) where the first applicable rule decides how much weight the text
// score keeps. With no applicable rule the text score stands alone.
func (c *Computer) scoreHybrid(query *Query, doc *Document) {
	sd := newSimilarDoc(doc)

	rate, density := textMatchStats(query.QueryDoc, doc)

	var sumQQ, sumQD, sumDD float64
	for _, qterm := range query.QueryDoc.Terms {
		if qterm.Type != TermText {
			continue
		}
		qtfidf := qterm.IDF * queryBoost(qterm)

		var mtfidf float64
		if dterm := doc.FindTerm(qterm.Text); dterm != nil {
			mt := &MatchedTerm{Term: dterm, Rate: 1, Density: 1}
			mt.Boost = candidateBoost(query.QueryDoc, doc, dterm)
			if dterm.Type == TermText {
				mt.Rate, mt.Density = rate, density
			}
			mt.TFIDF = dterm.IDF * mt.Boost * mt.Rate * mt.Density
			sd.addMatched(mt)
			mtfidf = mt.TFIDF
		}

		sumQQ += qtfidf * qtfidf
		sumQD += qtfidf * mtfidf
		sumDD += mtfidf * mtfidf
	}
	if sumQQ > 0 && sumDD > 0 {
		sd.TextValue = sumQD / math.Sqrt(sumQQ*sumDD)
	}

	var qRoad, qRoadNum, qTown, qVillage *Term
	for _, t := range query.QueryDoc.Terms {
		switch t.Type {
		case TermRoad:
			qRoad = t
		case TermRoadNum:
			qRoadNum = t
		case TermTown:
			qTown = t
		case TermVillage:
			qVillage = t
		}
	}
	var dRoad, dRoadNum, dTown, dVillage *Term
	for _, t := range doc.Terms {
		switch t.Type {
		case TermRoad:
			dRoad = t
		case TermRoadNum:
			dRoadNum = t
		case TermTown:
			dTown = t
		case TermVillage:
			dVillage = t
		}
	}

	// Town rules.
	if qTown.equal(dTown) {
		if qVillage != nil && qVillage.equal(dVillage) {
			// Same town, same village: similarity in [0.98, 1].
			sd.ExactPercent, sd.ExactValue = 0.98, 1
			sd.blend()
			sd.addMatched(&MatchedTerm{Term: dTown})
			sd.addMatched(&MatchedTerm{Term: dVillage})
			query.addSimilarDoc(sd)
			return
		}
		// Same town: similarity in [0.96, 1].
		sd.ExactPercent, sd.ExactValue = 0.98, 0.96/0.98
		sd.blend()
		sd.addMatched(&MatchedTerm{Term: dTown})
		query.addSimilarDoc(sd)
		return
	}
	if qTown != nil && dTown != nil {
		// Both towns present but different: similarity capped at 0.8.
		sd.ExactPercent, sd.ExactValue = 0.2, 0
		sd.blend()
		query.addSimilarDoc(sd)
		return
	}

	// Road rules.
	if qRoad.equal(dRoad) {
		if qRoadNum != nil && dRoadNum != nil {
			qn := ParseRoadNumber(qRoadNum.Text)
			dn := ParseRoadNumber(dRoadNum.Text)
			sd.addMatched(&MatchedTerm{Term: dRoad})
			sd.addMatched(&MatchedTerm{Term: dRoadNum})
			if qn == dn {
				// Same road, same number: similarity in [0.98, 1].
				sd.ExactPercent, sd.ExactValue = 0.98, 1
				sd.blend()
				query.addSimilarDoc(sd)
				return
			}
			// Same road, different numbers: weight shifts to the number
			// distance unless the text part already matches convincingly.
			if sd.TextValue > 0.9 {
				sd.ExactPercent = 0.2
			} else {
				sd.ExactPercent = 0.7
			}
			sd.ExactValue = 0.8 + (1/math.Sqrt(math.Sqrt(math.Abs(float64(qn-dn))+1)))*0.2
			sd.blend()
			query.addSimilarDoc(sd)
			return
		}
		// Same road, number missing on at least one side.
		sd.addMatched(&MatchedTerm{Term: dRoad})
		if sd.TextValue > 0.9 {
			sd.ExactValue, sd.ExactPercent = 0.9, 0.3
		} else {
			sd.ExactValue, sd.ExactPercent = 0.8, 0.7
		}
		sd.blend()
		query.addSimilarDoc(sd)
		return
	}
	if qRoad != nil && dRoad != nil {
		// Both roads present but different.
		if sd.TextValue > 0.9 {
			sd.ExactPercent = 0.07
		} else {
			sd.ExactPercent = 0.15
		}
		sd.ExactValue = 0
		sd.blend()
		query.addSimilarDoc(sd)
		return
	}

	// No structural comparison possible: pure text score.
	sd.Similarity = sd.ExactPercent*sd.ExactValue + sd.TextPercent*sd.TextValue
	query.addSimilarDoc(sd)
}
