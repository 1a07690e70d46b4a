package models

import (
	"sort"
	"sync"
)

// RegionType classifies an administrative region in the gazetteer.
type RegionType string

const (
	RegionProvince        RegionType = "province"
	RegionCity            RegionType = "city"
	RegionCounty          RegionType = "county"
	// RegionCityLevelCounty is a county that administratively acts as its own
	// city (直辖县级市). Such counties are excluded from region cache keys.
	RegionCityLevelCounty RegionType = "city_level_county"
)

// RegionEntity one node of the administrative hierarchy with its aliases.
type RegionEntity struct {
	ID       int64           `json:"id" yaml:"id" bson:"id"`
	Name     string          `json:"name" yaml:"name" bson:"name"`
	Alias    []string        `json:"alias,omitempty" yaml:"alias,omitempty" bson:"alias,omitempty"`
	Type     RegionType      `json:"type" yaml:"type" bson:"type"`
	Children []*RegionEntity `json:"children,omitempty" yaml:"children,omitempty" bson:"children,omitempty"`

	ordered     []string
	orderedOnce sync.Once
}

// OrderedNameAndAlias returns the region's name and aliases sorted by rune
// length descending. The last entry is the shortest spelling and serves as
// the canonical term text for this region. Gazetteer nodes are shared by
// every request, so the memoization is guarded for concurrent callers.
func (r *RegionEntity) OrderedNameAndAlias() []string {
	if r == nil {
		return nil
	}
	r.orderedOnce.Do(func() {
		list := make([]string, 0, len(r.Alias)+1)
		list = append(list, r.Name)
		list = append(list, r.Alias...)
		sort.SliceStable(list, func(i, j int) bool {
			return len([]rune(list[i])) > len([]rune(list[j]))
		})
		r.ordered = list
	})
	return r.ordered
}
