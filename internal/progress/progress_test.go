package progress

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/pixil98/go-escape/internal/game"
	"github.com/pixil98/go-escape/internal/storage"
)

var errStorage = errors.New("disk on fire")

func newTestDatabase(t *testing.T) *storage.Database {
	t.Helper()
	db, err := storage.NewDatabase(filepath.Join(t.TempDir(), "escape.db"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// brokenRepo fails every call.
type brokenRepo struct{}

func (brokenRepo) GetFlag(context.Context, int, game.FlagKey) (bool, bool, error) {
	return false, false, errStorage
}
func (brokenRepo) SetFlag(context.Context, int, game.FlagKey, bool) error { return errStorage }
func (brokenRepo) ListFlags(context.Context, int) ([]game.Flag, error)    { return nil, errStorage }
func (brokenRepo) DeleteFlags(context.Context, int) error                 { return errStorage }
func (brokenRepo) ListItems(context.Context, int) ([]game.InventoryItem, error) {
	return nil, errStorage
}
func (brokenRepo) GetItem(context.Context, int, game.ItemName) (game.InventoryItem, bool, error) {
	return game.InventoryItem{}, false, errStorage
}
func (brokenRepo) SaveItem(context.Context, int, game.InventoryItem) (game.InventoryItem, error) {
	return game.InventoryItem{}, errStorage
}
func (brokenRepo) DeleteItem(context.Context, int, game.ItemName) error { return errStorage }
func (brokenRepo) DeleteItems(context.Context, int) error               { return errStorage }
func (brokenRepo) GetSettings(context.Context, int) (game.Settings, bool, error) {
	return game.Settings{}, false, errStorage
}
func (brokenRepo) SaveSettings(context.Context, game.Settings) error { return errStorage }
func (brokenRepo) DeleteSettings(context.Context, int) error         { return errStorage }

// recordingPublisher keeps every published event.
type recordingPublisher struct {
	mu     sync.Mutex
	events []Event
}

func (p *recordingPublisher) Publish(_ context.Context, ev Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
}

func (p *recordingPublisher) kinds() []EventKind {
	p.mu.Lock()
	defer p.mu.Unlock()
	var kinds []EventKind
	for _, ev := range p.events {
		kinds = append(kinds, ev.Kind)
	}
	return kinds
}
