package similarity

import (
	"strings"
	"unicode/utf8"

	"github.com/address-similarity/app/models"
	"go.uber.org/zap"
)

// Term weight classes. Provinces and cities repeat so often that their IDF
// is near zero, hence the extra-large structural boost; streets are chosen
// carelessly by users and get demoted instead of dropped.
const (
	boostM  = 1.0 // normal weight: free text, road numbers
	boostL  = 2.0 // high weight: town, village, road
	boostXL = 3.0 // extra weight: province, city, county
	boostS  = 0.5 // demoted: street
)

// missingIDF is assigned to query terms absent from the region's IDF table.
const missingIDF = 4.0

// Analyze builds the term vector for one interpreted address: structural
// terms first in fixed priority order, then tokens segmented from the
// leftover text, all deduplicated by (canonicalized) text. When the region's
// IDF table is already cached the terms get their weights immediately,
// otherwise IDF stays unset until the corpus loader assigns it.
func (c *Computer) Analyze(addr *models.AddressEntity) *Document {
	doc := NewDocument(addr.ID)

	if addr.HasCounty() {
		addTerm(doc, addr.County.Name, TermCounty, addr.County)
	}

	// A string ending in 街道 is a residential district: recorded only to
	// stop the scan early, never added as a term (street selection is too
	// unreliable to help matching). 镇/乡 strings become the Town term.
	var street, town string
	for _, s := range addr.Towns {
		if strings.HasSuffix(s, "街道") {
			street = s
			if town == "" {
				continue
			}
			break
		}
		if strings.HasSuffix(s, "镇") || strings.HasSuffix(s, "乡") {
			town = strings.TrimRight(s, "镇乡")
			if street == "" {
				continue
			}
			break
		}
	}
	if town != "" {
		addTerm(doc, town, TermTown, nil)
	}
	if addr.Village != "" {
		addTerm(doc, addr.Village, TermVillage, nil)
	}

	roadIdx := -1
	if addr.Road != "" {
		roadTerm, idx := addTerm(doc, addr.Road, TermRoad, nil)
		if roadTerm.Type != TermRoad {
			c.logger.Warn("add road term failed: text collides with existing term",
				zap.Int64("doc_id", doc.ID),
				zap.String("road", addr.Road))
		} else {
			roadIdx = idx
		}
	}
	if addr.RoadNum != "" {
		numTerm, _ := addTerm(doc, addr.RoadNum, TermRoadNum, nil)
		if numTerm.Type == TermRoadNum {
			numTerm.Ref = roadIdx
		}
	}

	if addr.Text != "" {
		for _, token := range c.segmenter.Segment(addr.Text) {
			addTerm(doc, token, TermText, nil)
		}
	}

	if idfs := c.store.CachedIDF(BuildCacheKey(addr)); idfs != nil {
		for _, t := range doc.Terms {
			if idf, ok := idfs[t.Text]; ok {
				t.SetIDF(idf)
			} else {
				t.SetIDF(missingIDF)
			}
		}
	}

	return doc
}

func (c *Computer) analyzeAll(addrs []*models.AddressEntity) []*Document {
	docs := make([]*Document, 0, len(addrs))
	for _, addr := range addrs {
		docs = append(docs, c.Analyze(addr))
	}
	return docs
}

// addTerm pushes a term through the dedup step. Region-derived texts of 4+
// runes are canonicalized to the last entry of the region's ordered
// name/alias list, which absorbs "same region, different alias" collisions.
func addTerm(doc *Document, text string, typ TermType, region *models.RegionEntity) (*Term, int) {
	if utf8.RuneCountInString(text) >= 4 && region != nil {
		if names := region.OrderedNameAndAlias(); len(names) > 0 {
			text = names[len(names)-1]
		}
	}
	return doc.AddTerm(typ, text)
}
