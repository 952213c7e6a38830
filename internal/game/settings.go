package game

// DefaultSlot is the save slot used when none is configured.
const DefaultSlot = 1

// Settings is the per-save settings and session record.
type Settings struct {
	Slot     int  `json:"slot"`
	Archive  int  `json:"archive"`
	BackPage Page `json:"back_page"`

	// SettingBackPage is where the settings screen returns to.
	SettingBackPage Page `json:"setting_back_page"`
	LastActivePage  Page `json:"last_active_page"`

	MusicEnabled      bool    `json:"music_enabled"`
	MusicVolume       float64 `json:"music_volume"`
	SoundEffectVolume float64 `json:"sound_effect_volume"`
	TextSize          float64 `json:"text_size"`

	PlayTimeSeconds    int64 `json:"play_time_seconds"`
	LastSessionStartAt int64 `json:"last_session_start_at"`
}

// DefaultSettings returns the record a fresh save starts with.
func DefaultSettings(slot int) Settings {
	return Settings{
		Slot:              slot,
		Archive:           0,
		BackPage:          PageStart,
		MusicEnabled:      true,
		MusicVolume:       0.5,
		SoundEffectVolume: 0.7,
		TextSize:          1.0,
	}
}

// HasSave reports whether the record points at a saved game.
func (s Settings) HasSave() bool {
	return s.Archive != 0
}
