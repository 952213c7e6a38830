package storage

import (
	"github.com/pixil98/go-escape/internal/game"
)

// Catalog answers questions about item kinds. A nil Catalog, or one without
// an entry for an item, treats the item as ungrouped and non-consumable.
type Catalog struct {
	items Storer[*game.ItemSpec]
}

func NewCatalog(items Storer[*game.ItemSpec]) *Catalog {
	return &Catalog{items: items}
}

// LoadCatalog reads item specs from a directory of JSON assets.
func LoadCatalog(path string) (*Catalog, error) {
	items, err := NewFileStore[*game.ItemSpec](path)
	if err != nil {
		return nil, err
	}
	return NewCatalog(items), nil
}

// Spec returns the spec for name, or nil.
func (c *Catalog) Spec(name game.ItemName) *game.ItemSpec {
	if c == nil || c.items == nil {
		return nil
	}
	spec, ok := c.items.Get(name.String())
	if !ok {
		return nil
	}
	return spec
}

// Group returns the stack group for name.
func (c *Catalog) Group(name game.ItemName) string {
	return game.StackGroup(name, c.Spec(name))
}

// GroupSize returns how many items complete group, or 0 when unknown.
func (c *Catalog) GroupSize(group string) int {
	if c == nil || c.items == nil {
		return 0
	}
	for _, id := range c.items.Ids() {
		spec, ok := c.items.Get(id)
		if ok && spec != nil && spec.Group == group && spec.GroupSize > 0 {
			return spec.GroupSize
		}
	}
	return 0
}

// Consumable reports whether using name removes it from the inventory.
func (c *Catalog) Consumable(name game.ItemName) bool {
	spec := c.Spec(name)
	return spec != nil && spec.Consumable
}
