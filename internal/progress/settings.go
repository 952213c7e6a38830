package progress

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/pixil98/go-escape/internal/game"
)

// SettingsStore holds one settings record per save slot. Every write is a
// read-modify-write of the whole record and all writes are serialized, so the
// play-time ticker and foreground updates cannot overwrite each other.
type SettingsStore struct {
	repo SettingsRepository
	pub  Publisher

	mu sync.Mutex
}

func NewSettingsStore(repo SettingsRepository, opts ...Option) *SettingsStore {
	o := newOptions(opts)
	return &SettingsStore{repo: repo, pub: o.publisher}
}

// GetSettings returns the record for slot, creating it with defaults when it
// does not exist. On storage failure the defaults are returned.
func (s *SettingsStore) GetSettings(ctx context.Context, slot int) game.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, err := s.load(ctx, slot)
	if err != nil {
		slog.WarnContext(ctx, "reading settings", "slot", slot, "error", err)
		return game.DefaultSettings(slot)
	}
	return settings
}

func (s *SettingsStore) load(ctx context.Context, slot int) (game.Settings, error) {
	settings, ok, err := s.repo.GetSettings(ctx, slot)
	if err != nil {
		return game.Settings{}, err
	}
	if ok {
		return settings, nil
	}

	settings = game.DefaultSettings(slot)
	if err := s.repo.SaveSettings(ctx, settings); err != nil {
		return game.Settings{}, fmt.Errorf("creating default settings: %w", err)
	}
	return settings, nil
}

// Update applies fn to the record for slot and stores the result.
func (s *SettingsStore) Update(ctx context.Context, slot int, fn func(*game.Settings) error) (game.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, err := s.load(ctx, slot)
	if err != nil {
		slog.WarnContext(ctx, "reading settings", "slot", slot, "error", err)
		return game.Settings{}, err
	}

	if err := fn(&settings); err != nil {
		slog.WarnContext(ctx, "updating settings", "slot", slot, "error", err)
		return game.Settings{}, err
	}
	settings.Slot = slot

	if err := s.repo.SaveSettings(ctx, settings); err != nil {
		slog.WarnContext(ctx, "writing settings", "slot", slot, "error", err)
		return game.Settings{}, err
	}

	published := settings
	s.pub.Publish(ctx, Event{Kind: EventSettings, Slot: slot, Settings: &published})
	return settings, nil
}

func (s *SettingsStore) UpdateArchive(ctx context.Context, slot int, archive int) error {
	_, err := s.Update(ctx, slot, func(st *game.Settings) error {
		st.Archive = archive
		return nil
	})
	return err
}

// UpdateBackPage sets the page to return to. The settings screen return page
// follows it.
func (s *SettingsStore) UpdateBackPage(ctx context.Context, slot int, page game.Page) error {
	_, err := s.Update(ctx, slot, func(st *game.Settings) error {
		st.BackPage = page
		st.SettingBackPage = page
		return nil
	})
	return err
}

func (s *SettingsStore) UpdateSettingBackPage(ctx context.Context, slot int, page game.Page) error {
	_, err := s.Update(ctx, slot, func(st *game.Settings) error {
		st.SettingBackPage = page
		return nil
	})
	return err
}

func (s *SettingsStore) UpdateLastActivePage(ctx context.Context, slot int, page game.Page) error {
	_, err := s.Update(ctx, slot, func(st *game.Settings) error {
		st.LastActivePage = page
		return nil
	})
	return err
}

func (s *SettingsStore) UpdateMusicEnabled(ctx context.Context, slot int, enabled bool) error {
	_, err := s.Update(ctx, slot, func(st *game.Settings) error {
		st.MusicEnabled = enabled
		return nil
	})
	return err
}

// UpdateMusicVolume stores volume clamped to [0,1].
func (s *SettingsStore) UpdateMusicVolume(ctx context.Context, slot int, volume float64) error {
	_, err := s.Update(ctx, slot, func(st *game.Settings) error {
		st.MusicVolume = clampVolume(volume)
		return nil
	})
	return err
}

// UpdateSoundEffectVolume stores volume clamped to [0,1].
func (s *SettingsStore) UpdateSoundEffectVolume(ctx context.Context, slot int, volume float64) error {
	_, err := s.Update(ctx, slot, func(st *game.Settings) error {
		st.SoundEffectVolume = clampVolume(volume)
		return nil
	})
	return err
}

func (s *SettingsStore) UpdateTextSize(ctx context.Context, slot int, size float64) error {
	_, err := s.Update(ctx, slot, func(st *game.Settings) error {
		if !(size > 0) {
			return fmt.Errorf("text size %v must be positive: %w", size, game.ErrInvalidValue)
		}
		st.TextSize = size
		return nil
	})
	return err
}

func (s *SettingsStore) UpdatePlayTime(ctx context.Context, slot int, seconds int64) error {
	_, err := s.Update(ctx, slot, func(st *game.Settings) error {
		if seconds < 0 {
			return fmt.Errorf("play time %d must not be negative: %w", seconds, game.ErrInvalidValue)
		}
		st.PlayTimeSeconds = seconds
		return nil
	})
	return err
}

func (s *SettingsStore) UpdateLastSessionStart(ctx context.Context, slot int, at time.Time) error {
	_, err := s.Update(ctx, slot, func(st *game.Settings) error {
		st.LastSessionStartAt = at.Unix()
		return nil
	})
	return err
}

// AddPlayTime adds seconds to the total and records sessionStart in a single
// write.
func (s *SettingsStore) AddPlayTime(ctx context.Context, slot int, seconds int64, sessionStart time.Time) error {
	_, err := s.Update(ctx, slot, func(st *game.Settings) error {
		if seconds < 0 {
			return fmt.Errorf("play time delta %d must not be negative: %w", seconds, game.ErrInvalidValue)
		}
		st.PlayTimeSeconds += seconds
		st.LastSessionStartAt = sessionStart.Unix()
		return nil
	})
	return err
}

// PlayTime returns the stored play time total.
func (s *SettingsStore) PlayTime(ctx context.Context, slot int) int64 {
	return s.GetSettings(ctx, slot).PlayTimeSeconds
}

// ResetProgress forgets the saved game but keeps every preference.
func (s *SettingsStore) ResetProgress(ctx context.Context, slot int) error {
	_, err := s.Update(ctx, slot, func(st *game.Settings) error {
		st.Archive = 0
		st.BackPage = game.PageStart
		st.SettingBackPage = game.PageStart
		return nil
	})
	return err
}

// FullReset returns the record to a fresh game. Audio and text preferences
// are left as they are; the session clock restarts at now.
func (s *SettingsStore) FullReset(ctx context.Context, slot int, now time.Time) error {
	_, err := s.Update(ctx, slot, func(st *game.Settings) error {
		st.Archive = 0
		st.BackPage = game.PageStart
		st.SettingBackPage = game.PageStart
		st.LastActivePage = game.PageRoom1Wall1
		st.PlayTimeSeconds = 0
		st.LastSessionStartAt = now.Unix()
		return nil
	})
	return err
}

// Delete removes the record for slot. The next read recreates it with
// defaults.
func (s *SettingsStore) Delete(ctx context.Context, slot int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.DeleteSettings(ctx, slot); err != nil {
		slog.WarnContext(ctx, "deleting settings", "slot", slot, "error", err)
		return err
	}
	return nil
}

func clampVolume(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
