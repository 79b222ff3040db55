// Defines the static item catalog: the closed set of SKUs the simulation
// can order, receive and store. Entries are immutable after process start.

package sim

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// ItemCategory classifies the handling requirements of a SKU.
type ItemCategory string

const (
	CategoryStandard   ItemCategory = "standard"
	CategoryControlled ItemCategory = "controlled"
	CategoryColdChain  ItemCategory = "cold_chain"
	CategoryFragile    ItemCategory = "fragile"
)

// TurnoverClass is the ABC inventory classification. Class A moves in
// high volume, class C barely moves; arrival quantities scale with it.
type TurnoverClass string

const (
	TurnoverA TurnoverClass = "A"
	TurnoverB TurnoverClass = "B"
	TurnoverC TurnoverClass = "C"
)

// Item is one catalog entry. Defined once at startup, never mutated.
type Item struct {
	ID            string        `json:"id" yaml:"id"`
	Name          string        `json:"name" yaml:"name"`
	Category      ItemCategory  `json:"category" yaml:"category"`
	Size          int           `json:"size" yaml:"size"` // storage units occupied
	TurnoverClass TurnoverClass `json:"turnoverClass" yaml:"turnover_class"`
	ExpiryDays    int           `json:"expiryDays" yaml:"expiry_days"` // shelf-life horizon
	Value         float64       `json:"value" yaml:"value"`
	Weight        float64       `json:"weight" yaml:"weight"` // kg
}

// Catalog is a closed, static set of items keyed by ID. The ID slice is
// kept sorted so that random selection under a fixed seed is stable
// regardless of map iteration order.
type Catalog struct {
	items map[string]Item
	ids   []string
}

// NewCatalog builds a catalog from the given entries.
// Duplicate IDs are rejected: the catalog is reference data and a
// collision means the data set itself is broken.
func NewCatalog(items []Item) (*Catalog, error) {
	c := &Catalog{items: make(map[string]Item, len(items))}
	for _, it := range items {
		if it.ID == "" {
			return nil, fmt.Errorf("catalog entry %q has empty ID", it.Name)
		}
		if _, dup := c.items[it.ID]; dup {
			return nil, fmt.Errorf("duplicate catalog ID %q", it.ID)
		}
		c.items[it.ID] = it
		c.ids = append(c.ids, it.ID)
	}
	if len(c.ids) == 0 {
		return nil, fmt.Errorf("catalog must contain at least one item")
	}
	sort.Strings(c.ids)
	return c, nil
}

// Get returns the item for the given ID. The catalog is closed, so an
// unknown ID is a programming error and fails loudly.
func (c *Catalog) Get(id string) (Item, error) {
	it, ok := c.items[id]
	if !ok {
		return Item{}, fmt.Errorf("unknown catalog item %q", id)
	}
	return it, nil
}

// IDs returns the sorted list of catalog IDs.
// The returned slice is shared; callers must not modify it.
func (c *Catalog) IDs() []string {
	return c.ids
}

// Len returns the number of items in the catalog.
func (c *Catalog) Len() int {
	return len(c.ids)
}

// ByTurnover returns all items with the given turnover class, in ID order.
func (c *Catalog) ByTurnover(class TurnoverClass) []Item {
	var out []Item
	for _, id := range c.ids {
		if it := c.items[id]; it.TurnoverClass == class {
			out = append(out, it)
		}
	}
	return out
}

// ByCategory returns all items with the given handling category, in ID order.
func (c *Catalog) ByCategory(cat ItemCategory) []Item {
	var out []Item
	for _, id := range c.ids {
		if it := c.items[id]; it.Category == cat {
			out = append(out, it)
		}
	}
	return out
}

// catalogFile is the on-disk YAML shape for catalog overrides.
type catalogFile struct {
	Items []Item `yaml:"items"`
}

// LoadCatalog reads a catalog from a YAML file. Used to swap the default
// medical/dental data set for a custom one without recompiling.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog file %s: %w", path, err)
	}
	return NewCatalog(f.Items)
}

// DefaultCatalog returns the built-in medical/dental supply data set.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(defaultItems)
	if err != nil {
		// The built-in data set is validated by tests; reaching this
		// means the binary itself is inconsistent.
		panic(err)
	}
	return c
}

// defaultItems is the built-in medical/dental distribution catalog.
var defaultItems = []Item{
	// High-turnover consumables (class A)
	{ID: "LATEX_GLOVES", Name: "Latex Gloves (Box of 100)", Category: CategoryStandard, Size: 1, TurnoverClass: TurnoverA, ExpiryDays: 365, Value: 45.90, Weight: 0.8},
	{ID: "SURGICAL_MASK", Name: "Surgical Mask (Box of 50)", Category: CategoryStandard, Size: 1, TurnoverClass: TurnoverA, ExpiryDays: 730, Value: 35.50, Weight: 0.5},
	{ID: "SYRINGE_5ML", Name: "Disposable Syringe 5ml (Box of 100)", Category: CategoryStandard, Size: 1, TurnoverClass: TurnoverA, ExpiryDays: 1095, Value: 28.90, Weight: 1.2},

	// Controlled substances
	{ID: "LIDOCAINE_2PCT", Name: "Lidocaine 2% Anesthetic (Cartridge)", Category: CategoryControlled, Size: 1, TurnoverClass: TurnoverB, ExpiryDays: 540, Value: 89.90, Weight: 0.3},
	{ID: "ARTICAINE_4PCT", Name: "Articaine 4% Anesthetic (Cartridge)", Category: CategoryControlled, Size: 1, TurnoverClass: TurnoverB, ExpiryDays: 540, Value: 125.00, Weight: 0.3},

	// Cold chain
	{ID: "HEP_B_VACCINE", Name: "Hepatitis B Vaccine", Category: CategoryColdChain, Size: 1, TurnoverClass: TurnoverC, ExpiryDays: 180, Value: 450.00, Weight: 0.2},
	{ID: "INSULIN_REGULAR", Name: "Regular Insulin (Vial)", Category: CategoryColdChain, Size: 1, TurnoverClass: TurnoverB, ExpiryDays: 90, Value: 320.00, Weight: 0.15},

	// Low-turnover capital goods (class C)
	{ID: "ELECTROSURGICAL_UNIT", Name: "Electrosurgical Unit", Category: CategoryStandard, Size: 4, TurnoverClass: TurnoverC, ExpiryDays: 1825, Value: 8500.00, Weight: 5.5},
	{ID: "DENTAL_CHAIR", Name: "Complete Dental Chair", Category: CategoryFragile, Size: 8, TurnoverClass: TurnoverC, ExpiryDays: 3650, Value: 18900.00, Weight: 85.0},

	// Class B supplies
	{ID: "STERILE_GAUZE", Name: "Sterile Gauze (Pack of 100)", Category: CategoryStandard, Size: 1, TurnoverClass: TurnoverB, ExpiryDays: 1095, Value: 22.50, Weight: 0.6},
	{ID: "COTTON_ROLL", Name: "Hydrophilic Cotton (500g Roll)", Category: CategoryStandard, Size: 2, TurnoverClass: TurnoverB, ExpiryDays: 1095, Value: 38.90, Weight: 0.5},
	{ID: "DIAMOND_BUR_KIT", Name: "Diamond Bur Kit (Set)", Category: CategoryStandard, Size: 1, TurnoverClass: TurnoverB, ExpiryDays: 1825, Value: 285.00, Weight: 0.3},
}
