package models

// AddressEntity is a structured address as produced by the interpreter.
// Region fields are nil when the interpreter could not resolve them; Towns
// holds every town/sub-district string found, in source order; Text is the
// leftover free text that was not consumed by interpretation.
type AddressEntity struct {
	ID       int64         `json:"id" bson:"address_id"`
	Raw      string        `json:"raw,omitempty" bson:"raw,omitempty"`
	Province *RegionEntity `json:"province,omitempty" bson:"province,omitempty"`
	City     *RegionEntity `json:"city,omitempty" bson:"city,omitempty"`
	County   *RegionEntity `json:"county,omitempty" bson:"county,omitempty"`
	Towns    []string      `json:"towns,omitempty" bson:"towns,omitempty"`
	Village  string        `json:"village,omitempty" bson:"village,omitempty"`
	Road     string        `json:"road,omitempty" bson:"road,omitempty"`
	RoadNum  string        `json:"road_num,omitempty" bson:"road_num,omitempty"`
	Text     string        `json:"text,omitempty" bson:"text,omitempty"`
}

func (a *AddressEntity) HasProvince() bool { return a != nil && a.Province != nil }
func (a *AddressEntity) HasCity() bool     { return a != nil && a.City != nil }
func (a *AddressEntity) HasCounty() bool   { return a != nil && a.County != nil }

// DisplayName is the human-readable region prefix used in error messages:
// province + city, plus the county unless it is a city-level pseudo-county.
func (a *AddressEntity) DisplayName() string {
	if !a.HasProvince() || !a.HasCity() {
		return ""
	}
	name := a.Province.Name + a.City.Name
	if a.HasCounty() && a.County.Type != RegionCityLevelCounty {
		name += a.County.Name
	}
	return name
}
