package progress

import (
	"context"
	"fmt"
	"time"

	"github.com/pixil98/go-errors"

	"github.com/pixil98/go-escape/internal/game"
)

// Repository is everything the stores persist through.
type Repository interface {
	FlagRepository
	ItemRepository
	SettingsRepository
}

// Progress bundles the stores of one save slot.
type Progress struct {
	Flags     *FlagStore
	Inventory *Inventory
	Settings  *SettingsStore

	slot int
	pub  Publisher
}

func NewProgress(repo Repository, slot int, opts ...Option) *Progress {
	o := newOptions(opts)
	return &Progress{
		Flags:     NewFlagStore(repo, slot, opts...),
		Inventory: NewInventory(repo, slot, opts...),
		Settings:  NewSettingsStore(repo, opts...),
		slot:      slot,
		pub:       o.publisher,
	}
}

// Slot returns the save slot the stores operate on.
func (p *Progress) Slot() int {
	return p.slot
}

// CurrentSettings returns the settings record of the save slot.
func (p *Progress) CurrentSettings(ctx context.Context) game.Settings {
	return p.Settings.GetSettings(ctx, p.slot)
}

// HasSave reports whether there is a game to continue.
func (p *Progress) HasSave(ctx context.Context) bool {
	return p.CurrentSettings(ctx).HasSave()
}

// ResetGame starts the save over: settings are reset, then every flag and
// item is cleared. Every step runs even if an earlier one fails.
func (p *Progress) ResetGame(ctx context.Context, now time.Time) error {
	el := errors.NewErrorList()

	if err := p.Settings.FullReset(ctx, p.slot, now); err != nil {
		el.Add(fmt.Errorf("resetting settings: %w", err))
	}
	if err := p.Flags.ResetAll(ctx); err != nil {
		el.Add(fmt.Errorf("resetting flags: %w", err))
	}
	if err := p.Inventory.ResetAll(ctx); err != nil {
		el.Add(fmt.Errorf("resetting inventory: %w", err))
	}

	if err := el.Err(); err != nil {
		return err
	}

	p.pub.Publish(ctx, Event{Kind: EventReset, Slot: p.slot})
	return nil
}

// DeleteSave removes every trace of the save slot: flags, items and the
// settings record, preferences included. Every step runs even if an earlier
// one fails.
func (p *Progress) DeleteSave(ctx context.Context) error {
	el := errors.NewErrorList()

	if err := p.Flags.ResetAll(ctx); err != nil {
		el.Add(fmt.Errorf("deleting flags: %w", err))
	}
	if err := p.Inventory.ResetAll(ctx); err != nil {
		el.Add(fmt.Errorf("deleting inventory: %w", err))
	}
	if err := p.Settings.Delete(ctx, p.slot); err != nil {
		el.Add(fmt.Errorf("deleting settings: %w", err))
	}

	if err := el.Err(); err != nil {
		return err
	}

	p.pub.Publish(ctx, Event{Kind: EventDeleted, Slot: p.slot})
	return nil
}
