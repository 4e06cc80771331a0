package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"gozai/internal/logging"
)

// Catalogue is the read-only fixture store. The four collections keep
// the order they have in the fixture document.
type Catalogue struct {
	Products    []Product    `yaml:"products"`
	RepairShops []RepairShop `yaml:"repair_shops"`
	Buyers      []Buyer      `yaml:"buyers"`
	Recyclers   []Recycler   `yaml:"recyclers"`
}

// Load reads the fixture document at path. A missing file is not an
// error: the app degrades to an empty catalogue and every view renders
// its "no options" state. A file that exists but does not parse is a
// configuration defect and fails startup.
func Load(path string) (*Catalogue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logging.Catalog("fixture file %s not found, starting with empty catalogue", path)
			return &Catalogue{}, nil
		}
		return nil, fmt.Errorf("failed to read fixture file %s: %w", path, err)
	}

	var c Catalogue
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse fixture file %s: %w", path, err)
	}

	for _, p := range c.Products {
		if !p.Category.Valid() {
			logging.CatalogWarn("product %q has unknown category %q", p.Name, p.Category)
		}
	}

	logging.Catalog("loaded catalogue: %d products, %d shops, %d buyers, %d recyclers",
		len(c.Products), len(c.RepairShops), len(c.Buyers), len(c.Recyclers))
	return &c, nil
}
