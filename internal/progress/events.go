package progress

import (
	"context"

	"github.com/pixil98/go-escape/internal/game"
)

type EventKind string

const (
	EventFlag     EventKind = "flag"
	EventItem     EventKind = "item"
	EventSettings EventKind = "settings"
	EventReset    EventKind = "reset"
	EventDeleted  EventKind = "deleted"
)

// Event describes a committed change. Only the field matching Kind is set.
type Event struct {
	Kind     EventKind           `json:"kind"`
	Slot     int                 `json:"slot"`
	Flag     *game.Flag          `json:"flag,omitempty"`
	Item     *game.InventoryItem `json:"item,omitempty"`
	Removed  bool                `json:"removed,omitempty"`
	Settings *game.Settings      `json:"settings,omitempty"`
}

// Publisher receives change events. Publishing must not block the caller for
// long and failures are the publisher's to log.
type Publisher interface {
	Publish(ctx context.Context, ev Event)
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, Event) {}

func publisherOrNop(p Publisher) Publisher {
	if p == nil {
		return nopPublisher{}
	}
	return p
}
