package progress

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pixil98/go-escape/internal/game"
)

// Inventory holds the items of one save slot and owns slot assignment: every
// slot holds at most one stack group, and all items of a group share a slot.
type Inventory struct {
	repo    ItemRepository
	slot    int
	catalog ItemCatalog
	slots   int
	pub     Publisher

	// mu serializes mutations; slot allocation is read-then-write.
	mu sync.Mutex
}

func NewInventory(repo ItemRepository, slot int, opts ...Option) *Inventory {
	o := newOptions(opts)
	return &Inventory{
		repo:    repo,
		slot:    slot,
		catalog: o.catalog,
		slots:   o.slots,
		pub:     o.publisher,
	}
}

// Slots returns the number of inventory slots.
func (inv *Inventory) Slots() int {
	return inv.slots
}

func (inv *Inventory) group(name game.ItemName) string {
	if inv.catalog == nil {
		return game.StackGroup(name, nil)
	}
	return inv.catalog.Group(name)
}

// ListItems returns every item of the save. It returns an empty list when
// storage fails.
func (inv *Inventory) ListItems(ctx context.Context) []game.InventoryItem {
	items, err := inv.repo.ListItems(ctx, inv.slot)
	if err != nil {
		slog.WarnContext(ctx, "listing inventory", "slot", inv.slot, "error", err)
		return []game.InventoryItem{}
	}
	return items
}

// GetItem looks up an item by name.
func (inv *Inventory) GetItem(ctx context.Context, name game.ItemName) (game.InventoryItem, bool) {
	item, ok, err := inv.repo.GetItem(ctx, inv.slot, name)
	if err != nil {
		slog.WarnContext(ctx, "reading item", "slot", inv.slot, "item", name, "error", err)
		return game.InventoryItem{}, false
	}
	return item, ok
}

// AllocateSlot returns the slot name should occupy without storing anything.
func (inv *Inventory) AllocateSlot(ctx context.Context, name game.ItemName) (int, error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	items, err := inv.repo.ListItems(ctx, inv.slot)
	if err != nil {
		slog.WarnContext(ctx, "listing inventory", "slot", inv.slot, "error", err)
		return game.NoSlot, err
	}
	return inv.allocate(items, name)
}

func (inv *Inventory) allocate(items []game.InventoryItem, name game.ItemName) (int, error) {
	group := inv.group(name)

	occupied := make(map[int]bool, len(items))
	for _, it := range items {
		if it.Slot < 0 {
			continue
		}
		if it.Name == name || inv.group(it.Name) == group {
			return it.Slot, nil
		}
		occupied[it.Slot] = true
	}

	for i := 0; i < inv.slots; i++ {
		if !occupied[i] {
			return i, nil
		}
	}
	return game.NoSlot, game.ErrInventoryFull
}

// SaveItem inserts or updates the item with the same name. An item with
// Slot set to game.NoSlot gets a slot assigned; an explicit slot must be free
// or held by the item's own stack group.
func (inv *Inventory) SaveItem(ctx context.Context, item game.InventoryItem) (game.InventoryItem, error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	return inv.save(ctx, item)
}

func (inv *Inventory) save(ctx context.Context, item game.InventoryItem) (game.InventoryItem, error) {
	if item.Name == "" {
		return game.InventoryItem{}, fmt.Errorf("item name is required: %w", game.ErrInvalidValue)
	}

	items, err := inv.repo.ListItems(ctx, inv.slot)
	if err != nil {
		slog.WarnContext(ctx, "listing inventory", "slot", inv.slot, "error", err)
		return game.InventoryItem{}, err
	}

	if item.Slot < 0 {
		item.Slot, err = inv.allocate(items, item.Name)
		if err != nil {
			slog.WarnContext(ctx, "allocating slot", "slot", inv.slot, "item", item.Name, "error", err)
			return game.InventoryItem{}, err
		}
	} else if err := inv.checkSlot(items, item); err != nil {
		slog.WarnContext(ctx, "saving item", "slot", inv.slot, "item", item.Name, "error", err)
		return game.InventoryItem{}, err
	}

	stored, err := inv.repo.SaveItem(ctx, inv.slot, item)
	if err != nil {
		slog.WarnContext(ctx, "saving item", "slot", inv.slot, "item", item.Name, "error", err)
		return game.InventoryItem{}, err
	}

	inv.pub.Publish(ctx, Event{Kind: EventItem, Slot: inv.slot, Item: &stored})
	return stored, nil
}

func (inv *Inventory) checkSlot(items []game.InventoryItem, item game.InventoryItem) error {
	if item.Slot >= inv.slots {
		return fmt.Errorf("slot %d outside inventory of %d: %w", item.Slot, inv.slots, game.ErrInvalidValue)
	}

	group := inv.group(item.Name)
	for _, it := range items {
		if it.Name == item.Name || it.Slot < 0 {
			continue
		}
		sameGroup := inv.group(it.Name) == group
		switch {
		case it.Slot == item.Slot && !sameGroup:
			return fmt.Errorf("slot %d holds %s: %w", item.Slot, it.Name, game.ErrSlotOccupied)
		case it.Slot != item.Slot && sameGroup:
			// A group never spans two slots.
			return fmt.Errorf("group %s is held in slot %d: %w", group, it.Slot, game.ErrSlotOccupied)
		}
	}
	return nil
}

// Collect picks up name into the slot the inventory chooses. Collecting an
// item already held returns the stored row unchanged.
func (inv *Inventory) Collect(ctx context.Context, name game.ItemName) (game.InventoryItem, error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	existing, ok, err := inv.repo.GetItem(ctx, inv.slot, name)
	if err != nil {
		slog.WarnContext(ctx, "reading item", "slot", inv.slot, "item", name, "error", err)
		return game.InventoryItem{}, err
	}
	if ok && existing.Collected {
		return existing, nil
	}

	return inv.save(ctx, game.InventoryItem{Name: name, Slot: game.NoSlot, Collected: true})
}

// MarkUsed flags a held item as used.
func (inv *Inventory) MarkUsed(ctx context.Context, name game.ItemName) (game.InventoryItem, error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	item, ok, err := inv.repo.GetItem(ctx, inv.slot, name)
	if err != nil {
		slog.WarnContext(ctx, "reading item", "slot", inv.slot, "item", name, "error", err)
		return game.InventoryItem{}, err
	}
	if !ok {
		return game.InventoryItem{}, fmt.Errorf("%s: %w", name, game.ErrItemNotFound)
	}

	item.Used = true
	return inv.save(ctx, item)
}

// Consume uses up an item: consumable items are removed, others are marked
// used. It reports whether the item was removed.
func (inv *Inventory) Consume(ctx context.Context, name game.ItemName) (bool, error) {
	if inv.catalog != nil && inv.catalog.Consumable(name) {
		if _, ok := inv.GetItem(ctx, name); !ok {
			return false, fmt.Errorf("%s: %w", name, game.ErrItemNotFound)
		}
		return true, inv.DeleteItem(ctx, name)
	}
	_, err := inv.MarkUsed(ctx, name)
	return false, err
}

// DeleteItem removes an item. Deleting a missing item is not an error.
func (inv *Inventory) DeleteItem(ctx context.Context, name game.ItemName) error {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	if err := inv.repo.DeleteItem(ctx, inv.slot, name); err != nil {
		slog.WarnContext(ctx, "deleting item", "slot", inv.slot, "item", name, "error", err)
		return err
	}
	inv.pub.Publish(ctx, Event{Kind: EventItem, Slot: inv.slot, Item: &game.InventoryItem{Name: name, Slot: game.NoSlot}, Removed: true})
	return nil
}

// ResetAll removes every item of the save slot.
func (inv *Inventory) ResetAll(ctx context.Context) error {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	if err := inv.repo.DeleteItems(ctx, inv.slot); err != nil {
		slog.WarnContext(ctx, "resetting inventory", "slot", inv.slot, "error", err)
		return err
	}
	return nil
}

// CountGroup returns how many collected items of group are held.
func (inv *Inventory) CountGroup(ctx context.Context, group string) int {
	n := 0
	for _, it := range inv.ListItems(ctx) {
		if it.Collected && inv.group(it.Name) == group {
			n++
		}
	}
	return n
}

// GroupSize returns how many items complete group, or 0 when unknown.
func (inv *Inventory) GroupSize(group string) int {
	if inv.catalog == nil {
		return 0
	}
	return inv.catalog.GroupSize(group)
}
