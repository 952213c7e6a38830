package messaging

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pixil98/go-testutil"

	"github.com/pixil98/go-escape/internal/game"
	"github.com/pixil98/go-escape/internal/progress"
)

func TestEventSubject(t *testing.T) {
	testutil.AssertEqual(t, "flag", EventSubject(progress.EventFlag), "escape.events.flag")
	testutil.AssertEqual(t, "reset", EventSubject(progress.EventReset), "escape.events.reset")
}

func TestNatsPublisher_Publish(t *testing.T) {
	srv := startServer(t)
	nc := connect(t, srv)

	sub, err := nc.SubscribeSync(EventSubjectPrefix + ">")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := nc.Flush(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	pub := NewNatsPublisher(srv)
	pub.now = func() time.Time { return at }

	pub.Publish(context.Background(), progress.Event{
		Kind: progress.EventFlag,
		Slot: 1,
		Flag: &game.Flag{Key: game.FlagDoorUnlocked, Value: true},
	})

	msg, err := sub.NextMsg(2 * time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "subject", msg.Subject, "escape.events.flag")

	var env EventEnvelope
	if err := json.Unmarshal(msg.Data, &env); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := uuid.Parse(env.Id); err != nil {
		t.Errorf("event id %q is not a uuid: %v", env.Id, err)
	}
	testutil.AssertEqual(t, "at", env.At.Equal(at), true)
	testutil.AssertEqual(t, "kind", env.Event.Kind, progress.EventFlag)
	testutil.AssertEqual(t, "flag", *env.Event.Flag, game.Flag{Key: game.FlagDoorUnlocked, Value: true})
}

func TestNatsPublisher_EventIdsAreUnique(t *testing.T) {
	srv := startServer(t)
	nc := connect(t, srv)

	sub, err := nc.SubscribeSync(EventSubject(progress.EventReset))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := nc.Flush(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pub := NewNatsPublisher(srv)
	for i := 0; i < 2; i++ {
		pub.Publish(context.Background(), progress.Event{Kind: progress.EventReset, Slot: 1})
	}

	ids := map[string]bool{}
	for i := 0; i < 2; i++ {
		msg, err := sub.NextMsg(2 * time.Second)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var env EventEnvelope
		if err := json.Unmarshal(msg.Data, &env); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		ids[env.Id] = true
	}
	testutil.AssertEqual(t, "distinct ids", len(ids), 2)
}

func TestNatsPublisher_BeforeStartIsDropped(t *testing.T) {
	srv, err := NewNatsServer(WithPort(-1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Must not panic or block.
	NewNatsPublisher(srv).Publish(context.Background(), progress.Event{Kind: progress.EventFlag})
}
