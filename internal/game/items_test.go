package game

import (
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestItemSpec_Validate(t *testing.T) {
	tests := map[string]struct {
		spec   ItemSpec
		expErr string
	}{
		"empty spec": {
			spec: ItemSpec{},
		},
		"grouped spec": {
			spec: ItemSpec{Group: GroupPictureFragment, GroupSize: 5, CollectHint: "画碎片 {{ .Count }}/{{ .Total }}"},
		},
		"negative group size": {
			spec:   ItemSpec{Group: "balls", GroupSize: -1},
			expErr: "group_size must not be negative",
		},
		"group size without group": {
			spec:   ItemSpec{GroupSize: 2},
			expErr: "group_size requires a group",
		},
		"asset with whitespace": {
			spec:   ItemSpec{Asset: " knife.png"},
			expErr: "surrounding whitespace",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.spec.Validate()
			if tt.expErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			testutil.AssertErrorContains(t, err, tt.expErr)
		})
	}
}

func TestStackGroup(t *testing.T) {
	tests := map[string]struct {
		name     ItemName
		spec     *ItemSpec
		expGroup string
	}{
		"plain item": {
			name:     ItemKnife,
			expGroup: "knife",
		},
		"fragment by name": {
			name:     ItemCabinetPictureFragment,
			expGroup: GroupPictureFragment,
		},
		"group from spec": {
			name:     "redball",
			spec:     &ItemSpec{Group: "balls"},
			expGroup: "balls",
		},
		"spec without group": {
			name:     ItemTorch,
			spec:     &ItemSpec{Consumable: true},
			expGroup: "torch",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "group", StackGroup(tt.name, tt.spec), tt.expGroup)
		})
	}
}

func TestFlagKey_IsKnown(t *testing.T) {
	testutil.AssertEqual(t, "door", FlagDoorUnlocked.IsKnown(), true)
	testutil.AssertEqual(t, "light", FlagKey("light_state").IsKnown(), true)
	testutil.AssertEqual(t, "custom", FlagKey("SafeOpened").IsKnown(), false)
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings(DefaultSlot)

	testutil.AssertEqual(t, "slot", s.Slot, 1)
	testutil.AssertEqual(t, "music enabled", s.MusicEnabled, true)
	testutil.AssertEqual(t, "music volume", s.MusicVolume, 0.5)
	testutil.AssertEqual(t, "sound volume", s.SoundEffectVolume, 0.7)
	testutil.AssertEqual(t, "text size", s.TextSize, 1.0)
	testutil.AssertEqual(t, "archive", s.Archive, 0)
	testutil.AssertEqual(t, "has save", s.HasSave(), false)
	testutil.AssertEqual(t, "back page", s.BackPage, PageStart)
}
