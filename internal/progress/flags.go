package progress

import (
	"context"
	"log/slog"

	"github.com/pixil98/go-escape/internal/game"
)

// FlagStore holds the boolean world state of one save slot. Reads never fail:
// a missing flag or a storage error reads as false.
type FlagStore struct {
	repo FlagRepository
	slot int
	pub  Publisher
}

func NewFlagStore(repo FlagRepository, slot int, opts ...Option) *FlagStore {
	o := newOptions(opts)
	return &FlagStore{repo: repo, slot: slot, pub: o.publisher}
}

func (s *FlagStore) GetFlag(ctx context.Context, key game.FlagKey) bool {
	value, _, err := s.repo.GetFlag(ctx, s.slot, key)
	if err != nil {
		slog.WarnContext(ctx, "reading flag", "slot", s.slot, "flag", key, "error", err)
		return false
	}
	return value
}

// EnsureFlag returns the stored value of key. A flag that was never written is
// stored as def first. On a read error def is returned without writing.
func (s *FlagStore) EnsureFlag(ctx context.Context, key game.FlagKey, def bool) bool {
	value, ok, err := s.repo.GetFlag(ctx, s.slot, key)
	if err != nil {
		slog.WarnContext(ctx, "reading flag", "slot", s.slot, "flag", key, "error", err)
		return def
	}
	if ok {
		return value
	}
	_ = s.SetFlag(ctx, key, def)
	return def
}

// SetFlag stores value under key. The returned error is informational; the
// failure has already been logged.
func (s *FlagStore) SetFlag(ctx context.Context, key game.FlagKey, value bool) error {
	if err := s.repo.SetFlag(ctx, s.slot, key, value); err != nil {
		slog.WarnContext(ctx, "writing flag", "slot", s.slot, "flag", key, "error", err)
		return err
	}
	s.pub.Publish(ctx, Event{Kind: EventFlag, Slot: s.slot, Flag: &game.Flag{Key: key, Value: value}})
	return nil
}

// Flags returns every stored flag, or nil on error.
func (s *FlagStore) Flags(ctx context.Context) []game.Flag {
	flags, err := s.repo.ListFlags(ctx, s.slot)
	if err != nil {
		slog.WarnContext(ctx, "listing flags", "slot", s.slot, "error", err)
		return nil
	}
	return flags
}

// ResetAll clears every flag of the save slot.
func (s *FlagStore) ResetAll(ctx context.Context) error {
	if err := s.repo.DeleteFlags(ctx, s.slot); err != nil {
		slog.WarnContext(ctx, "resetting flags", "slot", s.slot, "error", err)
		return err
	}
	return nil
}
