// Package interpret contains the reference address interpreter: a
// gazetteer-driven prefix matcher for the province/city/county hierarchy
// followed by suffix heuristics for town, village, road and road number.
// It implements the Interpreter boundary consumed by internal/similarity.
package interpret

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/address-similarity/app/models"
	"github.com/agnivade/levenshtein"
	"github.com/xrash/smetrics"
	"go.uber.org/zap"
)

var (
	townRe    = regexp.MustCompile(`^[\p{Han}]{1,8}?(?:街道|镇|乡)`)
	villageRe = regexp.MustCompile(`^[\p{Han}]{1,6}?村`)
	roadRe    = regexp.MustCompile(`([\p{Han}]{1,8}?(?:大道|路|街|巷))([0-9０-９一二三四五六七八九十甲乙丙]+(?:号院|号|號)?)?`)
)

// jaroWinklerMin is the acceptance threshold for fuzzy region matches.
const jaroWinklerMin = 0.92

// AddressInterpreter resolves free text into a structured AddressEntity.
type AddressInterpreter struct {
	gaz    *Gazetteer
	logger *zap.Logger
}

func NewAddressInterpreter(gaz *Gazetteer, logger *zap.Logger) *AddressInterpreter {
	return &AddressInterpreter{gaz: gaz, logger: logger}
}

// Interpret resolves as much structure as the gazetteer and the suffix
// heuristics allow. Unresolved region levels stay nil; the caller decides
// whether a partial address is acceptable.
func (ai *AddressInterpreter) Interpret(text string) (*models.AddressEntity, error) {
	rest := strings.TrimSpace(text)
	addr := &models.AddressEntity{Raw: text}

	if region, n := matchRegion(ai.gaz.Provinces, rest); region != nil {
		addr.Province = region
		rest = rest[n:]
		if city, n := matchRegion(region.Children, rest); city != nil {
			addr.City = city
			rest = rest[n:]
			if county, n := matchRegion(city.Children, rest); county != nil {
				addr.County = county
				rest = rest[n:]
			} else if city.Type == models.RegionCityLevelCounty {
				// A city-level county is its own county level.
				addr.County = city
			}
		}
	}

	for {
		m := townRe.FindString(rest)
		if m == "" {
			break
		}
		addr.Towns = append(addr.Towns, m)
		rest = rest[len(m):]
	}

	if m := villageRe.FindString(rest); m != "" {
		addr.Village = m
		rest = rest[len(m):]
	}

	if loc := roadRe.FindStringSubmatchIndex(rest); loc != nil {
		addr.Road = rest[loc[2]:loc[3]]
		if loc[4] >= 0 {
			addr.RoadNum = rest[loc[4]:loc[5]]
		}
		rest = rest[:loc[0]] + rest[loc[1]:]
	}

	addr.Text = strings.TrimSpace(rest)
	return addr, nil
}

// matchRegion finds the region whose name or alias prefixes text, trying
// longer spellings first. When nothing matches exactly, a fuzzy pass
// tolerates off-by-one spellings via Levenshtein distance and
// Jaro-Winkler similarity, as typed addresses frequently drop or swap one
// character of a region name.
func matchRegion(regions []*models.RegionEntity, text string) (*models.RegionEntity, int) {
	if text == "" {
		return nil, 0
	}
	for _, region := range regions {
		for _, name := range region.OrderedNameAndAlias() {
			if name != "" && strings.HasPrefix(text, name) {
				return region, len(name)
			}
		}
	}
	for _, region := range regions {
		for _, name := range region.OrderedNameAndAlias() {
			nameLen := utf8.RuneCountInString(name)
			if nameLen < 3 {
				continue
			}
			prefix := runePrefix(text, nameLen)
			if utf8.RuneCountInString(prefix) < nameLen {
				continue
			}
			if levenshtein.ComputeDistance(prefix, name) <= 1 ||
				smetrics.JaroWinkler(prefix, name, 0.7, 4) >= jaroWinklerMin {
				return region, len(prefix)
			}
		}
	}
	return nil, 0
}

// runePrefix returns the first n runes of s as a string.
func runePrefix(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
