package game

import (
	"fmt"
	"strings"

	"github.com/pixil98/go-errors"
)

// ItemName identifies an inventory item. It doubles as the key of the item's
// display asset.
type ItemName string

func (n ItemName) String() string {
	return string(n)
}

const (
	ItemKnife             ItemName = "knife"
	ItemDishcloth         ItemName = "dishcloth"
	ItemBattery           ItemName = "battery"
	ItemTorch             ItemName = "torch"
	ItemBlueAndYellowBall ItemName = "blue_and_yellow_ball"

	ItemSofaPictureFragment    ItemName = "sofa_picture_fragment"
	ItemCabinetPictureFragment ItemName = "cabinet_picture_fragment"
	ItemBooksPictureFragment   ItemName = "books_picture_fragment"
	ItemClothPictureFragment   ItemName = "cloth_picture_fragment"
	ItemShelfPictureFragment   ItemName = "shelf_picture_fragment"
)

// GroupPictureFragment is the stack group shared by every picture fragment.
// All fragments sit in one inventory slot.
const GroupPictureFragment = "picture_fragment"

// NoSlot marks an item whose slot should be chosen by the inventory.
const NoSlot = -1

// InventoryItem is one row of a save's inventory.
type InventoryItem struct {
	Id        uint     `json:"id"`
	Name      ItemName `json:"name"`
	Slot      int      `json:"slot"`
	Collected bool     `json:"collected"`
	Used      bool     `json:"used"`
}

// ItemSpec describes an item kind. Specs are loaded from the content catalog.
type ItemSpec struct {
	// Asset is the image shown in the inventory bar. Defaults to the item name.
	Asset string `json:"asset,omitempty"`

	// Group names the stack this item shares a slot with. Items without a
	// group occupy their own slot.
	Group string `json:"group,omitempty"`

	// Consumable items are deleted rather than marked used.
	Consumable bool `json:"consumable,omitempty"`

	// CollectHint is a text template shown when the item is picked up.
	// It receives .Name, .Count and .Total.
	CollectHint string `json:"collect_hint,omitempty"`

	// GroupSize is the number of items that complete the group.
	GroupSize int `json:"group_size,omitempty"`
}

// Validate satisfies storage.ValidatingSpec
func (s *ItemSpec) Validate() error {
	el := errors.NewErrorList()
	if s.GroupSize < 0 {
		el.Add(fmt.Errorf("group_size must not be negative"))
	}
	if s.GroupSize > 0 && s.Group == "" {
		el.Add(fmt.Errorf("group_size requires a group"))
	}
	if strings.TrimSpace(s.Asset) != s.Asset {
		el.Add(fmt.Errorf("asset %q has surrounding whitespace", s.Asset))
	}
	return el.Err()
}

// StackGroup returns the slot-sharing group for name. A nil spec or one
// without a group stacks only with itself.
func StackGroup(name ItemName, spec *ItemSpec) string {
	if spec != nil && spec.Group != "" {
		return spec.Group
	}
	if strings.HasSuffix(string(name), "_"+GroupPictureFragment) {
		return GroupPictureFragment
	}
	return string(name)
}
