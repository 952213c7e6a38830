package progress

import (
	"context"
	"testing"

	"github.com/pixil98/go-testutil"

	"github.com/pixil98/go-escape/internal/game"
)

func TestFlagStore_UnwrittenFlagsAreFalse(t *testing.T) {
	ctx := context.Background()
	flags := NewFlagStore(newTestDatabase(t), game.DefaultSlot)

	keys := append([]game.FlagKey{"SomethingNew", ""}, game.KnownFlags...)
	for _, key := range keys {
		testutil.AssertEqual(t, string(key), flags.GetFlag(ctx, key), false)
	}
}

func TestFlagStore_SetThenGet(t *testing.T) {
	tests := map[string]struct {
		writes []bool
		exp    bool
	}{
		"set true":          {writes: []bool{true}, exp: true},
		"set false":         {writes: []bool{false}, exp: false},
		"toggle":            {writes: []bool{true, false}, exp: false},
		"repeat same value": {writes: []bool{true, true, true}, exp: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			flags := NewFlagStore(newTestDatabase(t), game.DefaultSlot)

			for _, v := range tt.writes {
				if err := flags.SetFlag(ctx, game.FlagLightOn, v); err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			}

			testutil.AssertEqual(t, "value", flags.GetFlag(ctx, game.FlagLightOn), tt.exp)
			testutil.AssertEqual(t, "stored rows", len(flags.Flags(ctx)), 1)
		})
	}
}

func TestFlagStore_SlotsAreIndependent(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)
	one := NewFlagStore(db, 1)
	two := NewFlagStore(db, 2)

	if err := one.SetFlag(ctx, game.FlagDoorUnlocked, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "slot one", one.GetFlag(ctx, game.FlagDoorUnlocked), true)
	testutil.AssertEqual(t, "slot two", two.GetFlag(ctx, game.FlagDoorUnlocked), false)
}

func TestFlagStore_ResetAll(t *testing.T) {
	ctx := context.Background()
	flags := NewFlagStore(newTestDatabase(t), game.DefaultSlot)

	for _, key := range game.KnownFlags {
		if err := flags.SetFlag(ctx, key, true); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if err := flags.ResetAll(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "stored rows", len(flags.Flags(ctx)), 0)
	testutil.AssertEqual(t, "door", flags.GetFlag(ctx, game.FlagDoorUnlocked), false)
}

func TestFlagStore_PublishesChanges(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	flags := NewFlagStore(newTestDatabase(t), game.DefaultSlot, WithPublisher(pub))

	if err := flags.SetFlag(ctx, game.FlagHasKnife, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "event count", len(pub.events), 1)
	ev := pub.events[0]
	testutil.AssertEqual(t, "kind", ev.Kind, EventFlag)
	testutil.AssertEqual(t, "key", ev.Flag.Key, game.FlagHasKnife)
	testutil.AssertEqual(t, "value", ev.Flag.Value, true)
}

func TestFlagStore_StorageFailure(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	flags := NewFlagStore(brokenRepo{}, game.DefaultSlot, WithPublisher(pub))

	testutil.AssertEqual(t, "get", flags.GetFlag(ctx, game.FlagDoorUnlocked), false)
	testutil.AssertErrorContains(t, flags.SetFlag(ctx, game.FlagDoorUnlocked, true), "disk on fire")
	testutil.AssertErrorContains(t, flags.ResetAll(ctx), "disk on fire")
	testutil.AssertEqual(t, "flags", len(flags.Flags(ctx)), 0)
	testutil.AssertEqual(t, "events", len(pub.events), 0)
}

func TestFlagStore_EnsureFlag(t *testing.T) {
	tests := map[string]struct {
		stored *bool
		def    bool
		exp    bool
	}{
		"unwritten takes default": {def: true, exp: true},
		"stored false wins":       {stored: new(bool), def: true, exp: false},
		"unwritten false default": {def: false, exp: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			flags := NewFlagStore(newTestDatabase(t), game.DefaultSlot)

			if tt.stored != nil {
				if err := flags.SetFlag(ctx, game.FlagLightOn, *tt.stored); err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			}

			testutil.AssertEqual(t, "value", flags.EnsureFlag(ctx, game.FlagLightOn, tt.def), tt.exp)
			testutil.AssertEqual(t, "stored rows", len(flags.Flags(ctx)), 1)
			testutil.AssertEqual(t, "get", flags.GetFlag(ctx, game.FlagLightOn), tt.exp)
		})
	}

	// Other flags still read false until written.
	flags := NewFlagStore(newTestDatabase(t), game.DefaultSlot)
	testutil.AssertEqual(t, "unrelated", flags.GetFlag(context.Background(), game.FlagDoorUnlocked), false)
}
