package storage

import (
	"path/filepath"
	"testing"

	"github.com/pixil98/go-testutil"

	"github.com/pixil98/go-escape/internal/game"
)

func TestCatalog(t *testing.T) {
	store, err := NewFileStore[*game.ItemSpec](t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error creating store: %v", err)
	}
	store.records = map[string]*game.ItemSpec{
		"battery":               {Consumable: true},
		"sofa_picture_fragment": {Group: game.GroupPictureFragment, GroupSize: 5},
		"blue_ball":             {Group: "balls"},
	}
	catalog := NewCatalog(store)

	tests := map[string]struct {
		name          game.ItemName
		expGroup      string
		expConsumable bool
	}{
		"consumable item": {
			name:          game.ItemBattery,
			expGroup:      "battery",
			expConsumable: true,
		},
		"grouped item": {
			name:     game.ItemSofaPictureFragment,
			expGroup: game.GroupPictureFragment,
		},
		"fragment missing from catalog still groups": {
			name:     game.ItemShelfPictureFragment,
			expGroup: game.GroupPictureFragment,
		},
		"unknown item": {
			name:     game.ItemKnife,
			expGroup: "knife",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "group", catalog.Group(tt.name), tt.expGroup)
			testutil.AssertEqual(t, "consumable", catalog.Consumable(tt.name), tt.expConsumable)
		})
	}

	testutil.AssertEqual(t, "fragment group size", catalog.GroupSize(game.GroupPictureFragment), 5)
	testutil.AssertEqual(t, "balls group size", catalog.GroupSize("balls"), 0)
}

func TestCatalog_Nil(t *testing.T) {
	var catalog *Catalog

	testutil.AssertEqual(t, "group", catalog.Group(game.ItemKnife), "knife")
	testutil.AssertEqual(t, "consumable", catalog.Consumable(game.ItemBattery), false)
	testutil.AssertEqual(t, "group size", catalog.GroupSize(game.GroupPictureFragment), 0)
}

func TestLoadCatalog_ShippedAssets(t *testing.T) {
	catalog, err := LoadCatalog(filepath.Join("..", "..", "assets", "items"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "battery consumable", catalog.Consumable(game.ItemBattery), true)
	testutil.AssertEqual(t, "knife consumable", catalog.Consumable(game.ItemKnife), false)
	testutil.AssertEqual(t, "fragment group", catalog.Group(game.ItemShelfPictureFragment), game.GroupPictureFragment)
	testutil.AssertEqual(t, "fragment group size", catalog.GroupSize(game.GroupPictureFragment), 5)
}
