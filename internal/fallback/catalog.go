package fallback

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Fbari2002/side-quest/internal/model"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

// Catalog is the versioned set of pre-written offline quests.
type Catalog struct {
	Version int                  `yaml:"version"`
	Quests  []model.OfflineQuest `yaml:"quests"`
}

// LoadCatalog reads the catalog at path, or the built-in catalog when path
// is empty.
func LoadCatalog(path string) (*Catalog, error) {
	data := embeddedCatalog
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading catalog: %w", err)
		}
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes a YAML catalog.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if c.Version < 1 {
		return nil, fmt.Errorf("catalog version %d is not supported", c.Version)
	}
	return &c, nil
}
