package similarity

import "math"

// queryBoost is the fixed weight multiplier for a query-side term.
func queryBoost(t *Term) float64 {
	switch t.Type {
	case TermProvince, TermCity, TermCounty:
		return boostXL
	case TermTown, TermVillage, TermRoad:
		return boostL
	case TermRoadNum:
		return boostL
	case TermStreet:
		return boostS
	default:
		return boostM
	}
}

// candidateBoost is the weight multiplier for a matched candidate term.
// RoadNum terms are special: when both documents sit on the same road the
// boost decays with the numeric distance between the two road numbers
// (equal numbers keep the full high boost); when the numbers cannot be
// parsed the term is demoted instead, which leaves the better spots to
// candidates that can be ranked by number distance. A road number on a
// different road contributes nothing.
func candidateBoost(queryDoc *Document, doc *Document, dterm *Term) float64 {
	if dterm.Type == TermRoadNum {
		var qNumTerm *Term
		for _, qt := range queryDoc.Terms {
			if qt.Type == TermRoadNum {
				qNumTerm = qt
			}
		}
		qRoad := queryDoc.refRoad(qNumTerm)
		dRoad := doc.refRoad(dterm)
		if qRoad != nil && dRoad != nil && qRoad.equal(dRoad) {
			if qNumTerm != nil {
				qn := ParseRoadNumber(qNumTerm.Text)
				dn := ParseRoadNumber(dterm.Text)
				if qn > 0 && dn > 0 {
					return (1 / math.Sqrt(math.Sqrt(math.Abs(float64(qn-dn))+1))) * boostL
				}
			}
			return boostS
		}
		return 0
	}
	switch dterm.Type {
	case TermProvince, TermCity, TermCounty:
		return boostXL
	case TermTown, TermVillage, TermRoad:
		return boostL
	case TermStreet:
		return boostS
	default:
		return boostM
	}
}

// textMatchStats measures how well the query's free-text terms land in the
// candidate. Rate rewards the fraction matched; density rewards contiguous
// matches over scattered ones (indexes span the candidate's full term list,
// so unrelated terms between two matches dilute the density). Both sit in
// [0.5, 1] and default to 1 when there is nothing to measure.
func textMatchStats(queryDoc, doc *Document) (rate, density float64) {
	textTerms, matchCount := 0, 0
	matchStart, matchEnd := -1, -1
	for _, qt := range queryDoc.Terms {
		if qt.Type != TermText {
			continue
		}
		textTerms++
		for i, t := range doc.Terms {
			if t.Type != TermText {
				continue
			}
			if t.Text == qt.Text {
				matchCount++
				if matchStart == -1 {
					matchStart, matchEnd = i, i
					break
				}
				if i > matchEnd {
					matchEnd = i
				} else if i < matchStart {
					matchStart = i
				}
				break
			}
		}
	}
	rate, density = 1, 1
	if textTerms > 0 {
		rate = math.Sqrt(float64(matchCount)/float64(textTerms))*0.5 + 0.5
	}
	if textTerms >= 2 && matchCount >= 2 {
		density = math.Sqrt(float64(matchCount)/float64(matchEnd-matchStart+1))*0.5 + 0.5
	}
	return rate, density
}
