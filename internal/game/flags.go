package game

// FlagKey names a boolean piece of world state. The constants below are the flags
// the rooms know about; any other string is still a valid key so new content
// does not need a code change.
type FlagKey string

func (k FlagKey) String() string {
	return string(k)
}

const (
	FlagDoorUnlocked       FlagKey = "DoorUnlocked"
	FlagHasKnife           FlagKey = "HasKnife"
	FlagHasPictureFragment FlagKey = "HasPictureFragment"
	FlagCabinetBroken      FlagKey = "IsCabinetBroken"
	FlagLightOn            FlagKey = "light_state"

	FlagBloodOneCleaned    FlagKey = "IsBloodOneCleaned"
	FlagBloodThreeCleaned  FlagKey = "IsBloodThreeCleaned"
	FlagBloodFourCleaned   FlagKey = "IsBloodFourCleaned"
	FlagBloodHiddenCleaned FlagKey = "IsBloodHiddenCleaned"
)

// KnownFlags lists every flag the rooms read or write.
var KnownFlags = []FlagKey{
	FlagDoorUnlocked,
	FlagHasKnife,
	FlagHasPictureFragment,
	FlagCabinetBroken,
	FlagLightOn,
	FlagBloodOneCleaned,
	FlagBloodThreeCleaned,
	FlagBloodFourCleaned,
	FlagBloodHiddenCleaned,
}

// IsKnown reports whether k is one of KnownFlags.
func (k FlagKey) IsKnown() bool {
	for _, f := range KnownFlags {
		if f == k {
			return true
		}
	}
	return false
}

// Flag is a single stored flag value.
type Flag struct {
	Key   FlagKey `json:"key"`
	Value bool    `json:"value"`
}
