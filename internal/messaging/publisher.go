package messaging

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pixil98/go-escape/internal/progress"
)

// EventSubjectPrefix prefixes the subject of every change event. The event
// kind completes it, e.g. escape.events.flag.
const EventSubjectPrefix = "escape.events."

// EventEnvelope is the wire form of a change event.
type EventEnvelope struct {
	Id    string         `json:"id"`
	At    time.Time      `json:"at"`
	Event progress.Event `json:"event"`
}

// EventSubject returns the subject events of kind are published on.
func EventSubject(kind progress.EventKind) string {
	return EventSubjectPrefix + string(kind)
}

// NatsPublisher publishes progress events on the local bus.
type NatsPublisher struct {
	server *NatsServer
	now    func() time.Time
}

// NewNatsPublisher wraps a NatsServer for event delivery.
func NewNatsPublisher(server *NatsServer) *NatsPublisher {
	return &NatsPublisher{server: server, now: time.Now}
}

// Publish satisfies progress.Publisher. Events raised before the server is up
// are dropped.
func (p *NatsPublisher) Publish(ctx context.Context, ev progress.Event) {
	env := EventEnvelope{
		Id:    uuid.NewString(),
		At:    p.now().UTC(),
		Event: ev,
	}
	data, err := json.Marshal(env)
	if err != nil {
		slog.WarnContext(ctx, "encoding event", "kind", ev.Kind, "error", err)
		return
	}

	if err := p.server.Publish(EventSubject(ev.Kind), data); err != nil {
		slog.DebugContext(ctx, "publishing event", "kind", ev.Kind, "error", err)
	}
}
