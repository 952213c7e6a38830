package messaging

import (
	"encoding/json"

	"github.com/pixil98/go-escape/internal/game"
	"github.com/pixil98/go-escape/internal/puzzle"
)

// Request subjects served by the gateway.
const (
	SubjectFlagGet   = "escape.flag.get"
	SubjectFlagSet   = "escape.flag.set"
	SubjectFlagList  = "escape.flag.list"
	SubjectFlagReset = "escape.flag.reset"

	SubjectInventoryList    = "escape.inventory.list"
	SubjectInventoryGet     = "escape.inventory.get"
	SubjectInventoryCollect = "escape.inventory.collect"
	SubjectInventorySave    = "escape.inventory.save"
	SubjectInventoryUse     = "escape.inventory.use"
	SubjectInventoryDelete  = "escape.inventory.delete"
	SubjectInventoryReset   = "escape.inventory.reset"

	SubjectSettingsGet    = "escape.settings.get"
	SubjectSettingsUpdate = "escape.settings.update"

	SubjectSessionStart = "escape.session.start"
	SubjectSessionStop  = "escape.session.stop"
	SubjectSessionTotal = "escape.session.total"

	SubjectGameReset  = "escape.game.reset"
	SubjectGameDelete = "escape.game.delete"

	SubjectPuzzlePassword = "escape.puzzle.password"
	SubjectPuzzleScale    = "escape.puzzle.scale"
	SubjectPuzzleBox      = "escape.puzzle.box"
	SubjectPuzzleBooks    = "escape.puzzle.books"
	SubjectPuzzleLight    = "escape.puzzle.light"
)

// Reply is the body of every gateway response.
type Reply struct {
	Ok    bool            `json:"ok"`
	Error string          `json:"error,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type FlagRequest struct {
	Key   game.FlagKey `json:"key"`
	Value bool         `json:"value"`
}

type ItemRequest struct {
	Name game.ItemName `json:"name"`
}

// SaveItemRequest stores an item. A missing slot lets the inventory choose.
type SaveItemRequest struct {
	Name      game.ItemName `json:"name"`
	Slot      *int          `json:"slot,omitempty"`
	Collected bool          `json:"collected"`
	Used      bool          `json:"used"`
}

func (r SaveItemRequest) item() game.InventoryItem {
	slot := game.NoSlot
	if r.Slot != nil {
		slot = *r.Slot
	}
	return game.InventoryItem{Name: r.Name, Slot: slot, Collected: r.Collected, Used: r.Used}
}

type CollectReply struct {
	Item game.InventoryItem `json:"item"`
	Hint string             `json:"hint,omitempty"`
}

type UseReply struct {
	Removed bool `json:"removed"`
}

// SettingsPatch changes only the fields that are set.
type SettingsPatch struct {
	Archive           *int       `json:"archive,omitempty"`
	BackPage          *game.Page `json:"back_page,omitempty"`
	SettingBackPage   *game.Page `json:"setting_back_page,omitempty"`
	LastActivePage    *game.Page `json:"last_active_page,omitempty"`
	MusicEnabled      *bool      `json:"music_enabled,omitempty"`
	MusicVolume       *float64   `json:"music_volume,omitempty"`
	SoundEffectVolume *float64   `json:"sound_effect_volume,omitempty"`
	TextSize          *float64   `json:"text_size,omitempty"`
	PlayTimeSeconds   *int64     `json:"play_time_seconds,omitempty"`
}

type SessionReply struct {
	State     string `json:"state"`
	Seconds   int64  `json:"seconds"`
	Formatted string `json:"formatted"`
}

type PasswordRequest struct {
	Input string `json:"input"`
}

type PasswordReply struct {
	Correct bool   `json:"correct"`
	Hint    string `json:"hint,omitempty"`
}

type ScaleRequest struct {
	Left  []string `json:"left"`
	Right []string `json:"right"`
}

type ScaleReply struct {
	Left    int            `json:"left"`
	Right   int            `json:"right"`
	Balance puzzle.Balance `json:"balance"`
	Hint    string         `json:"hint,omitempty"`
}

type BoxRequest struct {
	Pieces map[string]puzzle.Point `json:"pieces"`
}

type BoxReply struct {
	Solved bool                `json:"solved"`
	Knife  *game.InventoryItem `json:"knife,omitempty"`
	Hint   string              `json:"hint,omitempty"`
}

// BooksRequest lists the placement of Book1 to Book5 in order.
type BooksRequest struct {
	Books []puzzle.Book `json:"books"`
}

type BooksReply struct {
	Solved   bool                `json:"solved"`
	Fragment *game.InventoryItem `json:"fragment,omitempty"`
	Hint     string              `json:"hint,omitempty"`
}

// LightRequest reads the light, or presses the switch when Toggle is set.
type LightRequest struct {
	Toggle bool `json:"toggle"`
}

type LightReply struct {
	On          bool   `json:"on"`
	BatteryUsed bool   `json:"battery_used"`
	Hint        string `json:"hint,omitempty"`
}
