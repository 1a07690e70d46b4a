package interpret

import (
	"fmt"
	"os"

	"github.com/address-similarity/app/models"
	"gopkg.in/yaml.v3"
)

// Gazetteer is the administrative hierarchy the interpreter resolves
// against: provinces at the top, cities and counties as children.
type Gazetteer struct {
	Provinces []*models.RegionEntity
}

// NewGazetteer wraps an already-built hierarchy.
func NewGazetteer(provinces []*models.RegionEntity) *Gazetteer {
	return &Gazetteer{Provinces: provinces}
}

// LoadGazetteer reads the hierarchy from a YAML file of nested regions.
func LoadGazetteer(path string) (*Gazetteer, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading gazetteer %s: %w", path, err)
	}
	var provinces []*models.RegionEntity
	if err := yaml.Unmarshal(b, &provinces); err != nil {
		return nil, fmt.Errorf("parsing gazetteer %s: %w", path, err)
	}
	return &Gazetteer{Provinces: provinces}, nil
}
