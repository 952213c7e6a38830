package progress

import (
	"context"

	"github.com/pixil98/go-escape/internal/game"
)

// FlagRepository persists flags per save slot.
type FlagRepository interface {
	GetFlag(ctx context.Context, slot int, key game.FlagKey) (bool, bool, error)
	SetFlag(ctx context.Context, slot int, key game.FlagKey, value bool) error
	ListFlags(ctx context.Context, slot int) ([]game.Flag, error)
	DeleteFlags(ctx context.Context, slot int) error
}

// ItemRepository persists inventory rows per save slot.
type ItemRepository interface {
	ListItems(ctx context.Context, slot int) ([]game.InventoryItem, error)
	GetItem(ctx context.Context, slot int, name game.ItemName) (game.InventoryItem, bool, error)
	SaveItem(ctx context.Context, slot int, item game.InventoryItem) (game.InventoryItem, error)
	DeleteItem(ctx context.Context, slot int, name game.ItemName) error
	DeleteItems(ctx context.Context, slot int) error
}

// SettingsRepository persists one settings record per save slot.
type SettingsRepository interface {
	GetSettings(ctx context.Context, slot int) (game.Settings, bool, error)
	SaveSettings(ctx context.Context, s game.Settings) error
	DeleteSettings(ctx context.Context, slot int) error
}

// ItemCatalog describes item kinds.
type ItemCatalog interface {
	Group(name game.ItemName) string
	GroupSize(group string) int
	Consumable(name game.ItemName) bool
}
