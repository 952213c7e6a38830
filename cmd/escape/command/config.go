package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"

	"github.com/pixil98/go-escape/internal/game"
	"github.com/pixil98/go-escape/internal/session"
)

type Config struct {
	TickInterval    string        `json:"tick_interval"`
	MaxTickFailures int           `json:"max_tick_failures"`
	SaveSlot        int           `json:"save_slot"`
	Storage         StorageConfig `json:"storage"`
	Nats            NatsConfig    `json:"nats"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	if c.TickInterval != "" {
		d, err := time.ParseDuration(c.TickInterval)
		if err != nil {
			el.Add(fmt.Errorf("parsing tick_interval: %w", err))
		} else if d < time.Second {
			el.Add(fmt.Errorf("tick_interval must be at least 1 second"))
		}
	}

	if c.MaxTickFailures < 0 {
		el.Add(fmt.Errorf("max_tick_failures must not be negative"))
	}

	if c.SaveSlot < 0 {
		el.Add(fmt.Errorf("save_slot must not be negative"))
	}

	el.Add(c.Storage.validate())
	el.Add(c.Nats.validate())

	return el.Err()
}

// tickInterval returns how often play time is committed.
func (c *Config) tickInterval() time.Duration {
	d, err := time.ParseDuration(c.TickInterval)
	if err != nil || d <= 0 {
		return session.DefaultTickInterval
	}
	return d
}

// saveSlot returns the save slot to play, defaulting to the first.
func (c *Config) saveSlot() int {
	if c.SaveSlot == 0 {
		return game.DefaultSlot
	}
	return c.SaveSlot
}
