package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/pixil98/go-testutil"

	"github.com/pixil98/go-escape/internal/game"
)

func newTestDatabase(t *testing.T) *Database {
	t.Helper()
	db, err := NewDatabase(filepath.Join(t.TempDir(), "escape.db"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestNewDatabase_RequiresPath(t *testing.T) {
	_, err := NewDatabase("")
	testutil.AssertErrorContains(t, err, "'path' is required")
}

func TestDatabase_CloseUnopened(t *testing.T) {
	db, err := NewDatabase(filepath.Join(t.TempDir(), "escape.db"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestDatabase_Flags(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)

	_, found, err := db.GetFlag(ctx, 1, game.FlagDoorUnlocked)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "found before write", found, false)

	if err := db.SetFlag(ctx, 1, game.FlagDoorUnlocked, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := db.SetFlag(ctx, 1, game.FlagDoorUnlocked, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := db.SetFlag(ctx, 2, game.FlagDoorUnlocked, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	value, found, err := db.GetFlag(ctx, 1, game.FlagDoorUnlocked)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "found", found, true)
	testutil.AssertEqual(t, "value", value, false)

	flags, err := db.ListFlags(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "slot 1 flag count", len(flags), 1)

	if err := db.DeleteFlags(ctx, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	flags, err = db.ListFlags(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "slot 1 flags after delete", len(flags), 0)

	value, found, err = db.GetFlag(ctx, 2, game.FlagDoorUnlocked)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "slot 2 untouched", found && value, true)
}

func TestDatabase_Items(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)

	saved, err := db.SaveItem(ctx, 1, game.InventoryItem{Name: game.ItemKnife, Slot: 0, Collected: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.Id == 0 {
		t.Error("expected an assigned id")
	}

	// Saving the same name again updates in place.
	again, err := db.SaveItem(ctx, 1, game.InventoryItem{Name: game.ItemKnife, Slot: 3, Collected: true, Used: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "same id", again.Id, saved.Id)
	testutil.AssertEqual(t, "slot", again.Slot, 3)
	testutil.AssertEqual(t, "used", again.Used, true)

	if _, err := db.SaveItem(ctx, 1, game.InventoryItem{Name: game.ItemBattery, Slot: 1, Collected: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	items, err := db.ListItems(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "item count", len(items), 2)
	testutil.AssertEqual(t, "first item", items[0].Name, game.ItemKnife)

	if err := db.DeleteItem(ctx, 1, game.ItemBattery); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, found, err := db.GetItem(ctx, 1, game.ItemBattery)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "battery found", found, false)

	if err := db.DeleteItems(ctx, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	items, err = db.ListItems(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "items after reset", len(items), 0)
}

func TestDatabase_Settings(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)

	_, found, err := db.GetSettings(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "found before write", found, false)

	s := game.DefaultSettings(1)
	s.MusicEnabled = false
	s.PlayTimeSeconds = 42
	if err := db.SaveSettings(ctx, s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s.Archive = 7
	if err := db.SaveSettings(ctx, s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, found, err := db.GetSettings(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "found", found, true)
	testutil.AssertEqual(t, "archive", got.Archive, 7)
	testutil.AssertEqual(t, "music enabled", got.MusicEnabled, false)
	testutil.AssertEqual(t, "music volume", got.MusicVolume, 0.5)
	testutil.AssertEqual(t, "play time", got.PlayTimeSeconds, int64(42))
	testutil.AssertEqual(t, "back page", got.BackPage, game.PageStart)

	if err := db.DeleteSettings(ctx, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, found, err = db.GetSettings(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "found after delete", found, false)
}

func TestDatabase_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "escape.db")

	db, err := NewDatabase(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := db.SetFlag(ctx, 1, game.FlagLightOn, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reopened, err := NewDatabase(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	value, found, err := reopened.GetFlag(ctx, 1, game.FlagLightOn)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "found", found, true)
	testutil.AssertEqual(t, "value", value, true)
}

func TestDatabase_ClosedStaysClosed(t *testing.T) {
	ctx := context.Background()
	db, err := NewDatabase(filepath.Join(t.TempDir(), "escape.db"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := db.SetFlag(ctx, 1, game.FlagLightOn, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, _, err = db.GetFlag(ctx, 1, game.FlagLightOn)
	if !errors.Is(err, ErrDatabaseClosed) {
		t.Fatalf("expected ErrDatabaseClosed, got %v", err)
	}
	if err := db.Close(); err != nil {
		t.Errorf("unexpected error closing twice: %v", err)
	}
}
