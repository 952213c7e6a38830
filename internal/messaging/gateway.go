package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/pixil98/go-errors"

	"github.com/pixil98/go-escape/internal/display"
	"github.com/pixil98/go-escape/internal/game"
	"github.com/pixil98/go-escape/internal/progress"
	"github.com/pixil98/go-escape/internal/puzzle"
	"github.com/pixil98/go-escape/internal/session"
)

const (
	hintDoorUnlocked = "门锁已经打开！！！"
	hintKnifeFound   = "获得了一把小刀"
)

// HintSource looks up item specs for collect hints.
type HintSource interface {
	Spec(name game.ItemName) *game.ItemSpec
}

type handlerFunc func(ctx context.Context, body []byte) (any, error)

// Gateway serves the progress store to the UI over the local bus.
type Gateway struct {
	server   *NatsServer
	progress *progress.Progress
	tracker  *session.Tracker
	hints    HintSource

	ready   chan struct{}
	closers []io.Closer
}

func NewGateway(server *NatsServer, p *progress.Progress, tracker *session.Tracker, hints HintSource, opts ...GatewayOpt) *Gateway {
	g := &Gateway{
		server:   server,
		progress: p,
		tracker:  tracker,
		hints:    hints,
		ready:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Ready is closed once every subject is being served.
func (g *Gateway) Ready() <-chan struct{} {
	return g.ready
}

func (g *Gateway) handlers() map[string]handlerFunc {
	return map[string]handlerFunc{
		SubjectFlagGet:   g.flagGet,
		SubjectFlagSet:   g.flagSet,
		SubjectFlagList:  g.flagList,
		SubjectFlagReset: g.flagReset,

		SubjectInventoryList:    g.inventoryList,
		SubjectInventoryGet:     g.inventoryGet,
		SubjectInventoryCollect: g.inventoryCollect,
		SubjectInventorySave:    g.inventorySave,
		SubjectInventoryUse:     g.inventoryUse,
		SubjectInventoryDelete:  g.inventoryDelete,
		SubjectInventoryReset:   g.inventoryReset,

		SubjectSettingsGet:    g.settingsGet,
		SubjectSettingsUpdate: g.settingsUpdate,

		SubjectSessionStart: g.sessionStart,
		SubjectSessionStop:  g.sessionStop,
		SubjectSessionTotal: g.sessionTotal,

		SubjectGameReset:  g.gameReset,
		SubjectGameDelete: g.gameDelete,

		SubjectPuzzlePassword: g.puzzlePassword,
		SubjectPuzzleScale:    g.puzzleScale,
		SubjectPuzzleBox:      g.puzzleBox,
		SubjectPuzzleBooks:    g.puzzleBooks,
		SubjectPuzzleLight:    g.puzzleLight,
	}
}

// Start serves requests until ctx is done, then closes the play session so
// the last window is committed. The session is closed and the closers run on
// every return path.
func (g *Gateway) Start(ctx context.Context) (err error) {
	// Requests still in flight at shutdown should finish their writes.
	reqCtx := context.WithoutCancel(ctx)

	var unsubs []func()
	defer func() {
		for _, u := range unsubs {
			u()
		}
		el := errors.NewErrorList()
		el.Add(err)
		el.Add(g.shutdown(reqCtx))
		err = el.Err()
	}()

	if err := g.server.WaitReady(ctx); err != nil {
		slog.InfoContext(reqCtx, "gateway stopped before serving", "error", err)
		return nil
	}

	for subject, h := range g.handlers() {
		unsub, err := g.server.Respond(subject, g.serve(reqCtx, subject, h))
		if err != nil {
			return fmt.Errorf("subscribing to %s: %w", subject, err)
		}
		unsubs = append(unsubs, unsub)
	}
	if err := g.server.Flush(); err != nil {
		return fmt.Errorf("flushing subscriptions: %w", err)
	}
	close(g.ready)
	slog.InfoContext(ctx, "gateway serving", "slot", g.progress.Slot(), "subjects", len(unsubs))

	<-ctx.Done()
	return nil
}

// shutdown commits the running session and closes the closers.
func (g *Gateway) shutdown(ctx context.Context) error {
	g.tracker.Stop(ctx)
	slog.InfoContext(ctx, "play session closed", "slot", g.progress.Slot(), "play_time", session.FormatPlayTime(g.tracker.Total(ctx)))

	el := errors.NewErrorList()
	for _, c := range g.closers {
		el.Add(c.Close())
	}
	return el.Err()
}

func (g *Gateway) serve(ctx context.Context, subject string, h handlerFunc) func([]byte) []byte {
	return func(body []byte) []byte {
		data, err := h(ctx, body)
		if err != nil {
			slog.DebugContext(ctx, "request failed", "subject", subject, "error", err)
			return encodeReply(ctx, Reply{Error: err.Error()})
		}

		raw, err := json.Marshal(data)
		if err != nil {
			slog.WarnContext(ctx, "encoding reply", "subject", subject, "error", err)
			return encodeReply(ctx, Reply{Error: "encoding reply"})
		}
		return encodeReply(ctx, Reply{Ok: true, Data: raw})
	}
}

func encodeReply(ctx context.Context, r Reply) []byte {
	out, err := json.Marshal(r)
	if err != nil {
		slog.WarnContext(ctx, "encoding reply", "error", err)
		return []byte(`{"ok":false,"error":"encoding reply"}`)
	}
	return out
}

// decode reads a JSON request body. An empty body leaves v untouched.
func decode(body []byte, v any) error {
	if len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decoding request: %w", err)
	}
	return nil
}

func decodeFlag(body []byte) (FlagRequest, error) {
	var req FlagRequest
	if err := decode(body, &req); err != nil {
		return req, err
	}
	if req.Key == "" {
		return req, fmt.Errorf("key is required: %w", game.ErrInvalidValue)
	}
	return req, nil
}

func decodeItem(body []byte) (ItemRequest, error) {
	var req ItemRequest
	if err := decode(body, &req); err != nil {
		return req, err
	}
	if req.Name == "" {
		return req, fmt.Errorf("name is required: %w", game.ErrInvalidValue)
	}
	return req, nil
}

func (g *Gateway) flagGet(ctx context.Context, body []byte) (any, error) {
	req, err := decodeFlag(body)
	if err != nil {
		return nil, err
	}
	return game.Flag{Key: req.Key, Value: g.progress.Flags.GetFlag(ctx, req.Key)}, nil
}

func (g *Gateway) flagSet(ctx context.Context, body []byte) (any, error) {
	req, err := decodeFlag(body)
	if err != nil {
		return nil, err
	}
	if err := g.progress.Flags.SetFlag(ctx, req.Key, req.Value); err != nil {
		return nil, err
	}
	return game.Flag{Key: req.Key, Value: req.Value}, nil
}

func (g *Gateway) flagList(ctx context.Context, _ []byte) (any, error) {
	flags := g.progress.Flags.Flags(ctx)
	if flags == nil {
		flags = []game.Flag{}
	}
	return flags, nil
}

func (g *Gateway) flagReset(ctx context.Context, _ []byte) (any, error) {
	return nil, g.progress.Flags.ResetAll(ctx)
}

func (g *Gateway) inventoryList(ctx context.Context, _ []byte) (any, error) {
	return g.progress.Inventory.ListItems(ctx), nil
}

func (g *Gateway) inventoryGet(ctx context.Context, body []byte) (any, error) {
	req, err := decodeItem(body)
	if err != nil {
		return nil, err
	}
	item, ok := g.progress.Inventory.GetItem(ctx, req.Name)
	if !ok {
		return nil, fmt.Errorf("%s: %w", req.Name, game.ErrItemNotFound)
	}
	return item, nil
}

func (g *Gateway) inventoryCollect(ctx context.Context, body []byte) (any, error) {
	req, err := decodeItem(body)
	if err != nil {
		return nil, err
	}
	item, err := g.progress.Inventory.Collect(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	return CollectReply{Item: item, Hint: g.collectHint(ctx, req.Name)}, nil
}

// collectHint renders the catalog hint for name. Hints are decoration, so
// failures only cost the hint.
func (g *Gateway) collectHint(ctx context.Context, name game.ItemName) string {
	if g.hints == nil {
		return ""
	}
	spec := g.hints.Spec(name)
	if spec == nil || spec.CollectHint == "" {
		return ""
	}

	group := game.StackGroup(name, spec)
	data := display.HintData{
		Name:  name.String(),
		Count: g.progress.Inventory.CountGroup(ctx, group),
		Total: g.progress.Inventory.GroupSize(group),
	}
	if data.Total == 0 && group == game.GroupPictureFragment {
		data.Total = puzzle.FragmentsTotal
	}

	hint, err := display.Hint(spec.CollectHint, data, g.progress.CurrentSettings(ctx).TextSize)
	if err != nil {
		slog.WarnContext(ctx, "rendering collect hint", "item", name, "error", err)
		return ""
	}
	return hint
}

func (g *Gateway) inventorySave(ctx context.Context, body []byte) (any, error) {
	var req SaveItemRequest
	if err := decode(body, &req); err != nil {
		return nil, err
	}
	return g.progress.Inventory.SaveItem(ctx, req.item())
}

func (g *Gateway) inventoryUse(ctx context.Context, body []byte) (any, error) {
	req, err := decodeItem(body)
	if err != nil {
		return nil, err
	}
	removed, err := g.progress.Inventory.Consume(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	return UseReply{Removed: removed}, nil
}

func (g *Gateway) inventoryDelete(ctx context.Context, body []byte) (any, error) {
	req, err := decodeItem(body)
	if err != nil {
		return nil, err
	}
	return nil, g.progress.Inventory.DeleteItem(ctx, req.Name)
}

func (g *Gateway) inventoryReset(ctx context.Context, _ []byte) (any, error) {
	return nil, g.progress.Inventory.ResetAll(ctx)
}

func (g *Gateway) settingsGet(ctx context.Context, _ []byte) (any, error) {
	return g.progress.CurrentSettings(ctx), nil
}

// settingsUpdate applies every field of the patch. A failing field does not
// stop the others.
func (g *Gateway) settingsUpdate(ctx context.Context, body []byte) (any, error) {
	var patch SettingsPatch
	if err := decode(body, &patch); err != nil {
		return nil, err
	}

	s := g.progress.Settings
	slot := g.progress.Slot()
	el := errors.NewErrorList()

	if patch.Archive != nil {
		el.Add(s.UpdateArchive(ctx, slot, *patch.Archive))
	}
	if patch.BackPage != nil {
		el.Add(s.UpdateBackPage(ctx, slot, *patch.BackPage))
	}
	if patch.SettingBackPage != nil {
		el.Add(s.UpdateSettingBackPage(ctx, slot, *patch.SettingBackPage))
	}
	if patch.LastActivePage != nil {
		el.Add(s.UpdateLastActivePage(ctx, slot, *patch.LastActivePage))
	}
	if patch.MusicEnabled != nil {
		el.Add(s.UpdateMusicEnabled(ctx, slot, *patch.MusicEnabled))
	}
	if patch.MusicVolume != nil {
		el.Add(s.UpdateMusicVolume(ctx, slot, *patch.MusicVolume))
	}
	if patch.SoundEffectVolume != nil {
		el.Add(s.UpdateSoundEffectVolume(ctx, slot, *patch.SoundEffectVolume))
	}
	if patch.TextSize != nil {
		el.Add(s.UpdateTextSize(ctx, slot, *patch.TextSize))
	}
	if patch.PlayTimeSeconds != nil {
		seconds := *patch.PlayTimeSeconds
		el.Add(g.tracker.Rebase(ctx, func(time.Time) error {
			return s.UpdatePlayTime(ctx, slot, seconds)
		}))
	}

	if err := el.Err(); err != nil {
		return nil, err
	}
	return g.progress.CurrentSettings(ctx), nil
}

func (g *Gateway) session(ctx context.Context) SessionReply {
	total := g.tracker.Total(ctx)
	return SessionReply{
		State:     g.tracker.State().String(),
		Seconds:   total,
		Formatted: session.FormatPlayTime(total),
	}
}

func (g *Gateway) sessionStart(ctx context.Context, _ []byte) (any, error) {
	g.tracker.Start(ctx)
	return g.session(ctx), nil
}

func (g *Gateway) sessionStop(ctx context.Context, _ []byte) (any, error) {
	g.tracker.Stop(ctx)
	return g.session(ctx), nil
}

func (g *Gateway) sessionTotal(ctx context.Context, _ []byte) (any, error) {
	return g.session(ctx), nil
}

// gameReset starts the save over. The running play window restarts at the
// reset so no earlier time is counted.
func (g *Gateway) gameReset(ctx context.Context, _ []byte) (any, error) {
	var err error
	// ResetGame runs every step even when one fails, so the window restarts
	// regardless.
	_ = g.tracker.Rebase(ctx, func(now time.Time) error {
		err = g.progress.ResetGame(ctx, now)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return g.progress.CurrentSettings(ctx), nil
}

// gameDelete removes the save slot. Like a reset, the running play window
// restarts so no earlier time is counted.
func (g *Gateway) gameDelete(ctx context.Context, _ []byte) (any, error) {
	var err error
	_ = g.tracker.Rebase(ctx, func(time.Time) error {
		err = g.progress.DeleteSave(ctx)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return g.progress.CurrentSettings(ctx), nil
}

func (g *Gateway) puzzlePassword(ctx context.Context, body []byte) (any, error) {
	var req PasswordRequest
	if err := decode(body, &req); err != nil {
		return nil, err
	}
	if !puzzle.CheckPassword(req.Input) {
		return PasswordReply{}, nil
	}
	if err := g.progress.Flags.SetFlag(ctx, game.FlagDoorUnlocked, true); err != nil {
		return nil, err
	}
	return PasswordReply{Correct: true, Hint: hintDoorUnlocked}, nil
}

func (g *Gateway) puzzleScale(_ context.Context, body []byte) (any, error) {
	var req ScaleRequest
	if err := decode(body, &req); err != nil {
		return nil, err
	}
	hint, _ := puzzle.ScaleHint(req.Left, req.Right)
	return ScaleReply{
		Left:    puzzle.Weight(req.Left),
		Right:   puzzle.Weight(req.Right),
		Balance: puzzle.Weigh(req.Left, req.Right),
		Hint:    hint,
	}, nil
}

// puzzleBox checks the box riddle. Solving it the first time hands out the
// knife.
func (g *Gateway) puzzleBox(ctx context.Context, body []byte) (any, error) {
	var req BoxRequest
	if err := decode(body, &req); err != nil {
		return nil, err
	}
	if !puzzle.BoxSolved(req.Pieces) {
		return BoxReply{}, nil
	}
	if g.progress.Flags.GetFlag(ctx, game.FlagHasKnife) {
		return BoxReply{Solved: true}, nil
	}

	knife, err := g.progress.Inventory.Collect(ctx, game.ItemKnife)
	if err != nil {
		return nil, err
	}
	if err := g.progress.Flags.SetFlag(ctx, game.FlagHasKnife, true); err != nil {
		return nil, err
	}
	return BoxReply{Solved: true, Knife: &knife, Hint: hintKnifeFound}, nil
}

// puzzleBooks checks the book stack. Solving it the first time hands out the
// books picture fragment.
func (g *Gateway) puzzleBooks(ctx context.Context, body []byte) (any, error) {
	var req BooksRequest
	if err := decode(body, &req); err != nil {
		return nil, err
	}
	if !puzzle.BooksStacked(req.Books) {
		return BooksReply{}, nil
	}
	if held, ok := g.progress.Inventory.GetItem(ctx, game.ItemBooksPictureFragment); ok && held.Collected {
		return BooksReply{Solved: true}, nil
	}

	fragment, err := g.progress.Inventory.Collect(ctx, game.ItemBooksPictureFragment)
	if err != nil {
		return nil, err
	}
	return BooksReply{
		Solved:   true,
		Fragment: &fragment,
		Hint:     g.collectHint(ctx, game.ItemBooksPictureFragment),
	}, nil
}

// puzzleLight reports the room light, which starts switched on. Pressing the
// switch takes a battery and flips the light.
func (g *Gateway) puzzleLight(ctx context.Context, body []byte) (any, error) {
	var req LightRequest
	if err := decode(body, &req); err != nil {
		return nil, err
	}

	on := g.progress.Flags.EnsureFlag(ctx, game.FlagLightOn, puzzle.LightOnAtStart)
	if !req.Toggle {
		return LightReply{On: on}, nil
	}

	battery, ok := g.progress.Inventory.GetItem(ctx, game.ItemBattery)
	if !ok || !battery.Collected || battery.Used {
		reply := LightReply{On: on}
		if !on {
			reply.Hint = puzzle.NeedBatteryHint
		}
		return reply, nil
	}

	if _, err := g.progress.Inventory.Consume(ctx, game.ItemBattery); err != nil {
		return nil, err
	}
	on = !on
	if err := g.progress.Flags.SetFlag(ctx, game.FlagLightOn, on); err != nil {
		return nil, err
	}
	return LightReply{On: on, BatteryUsed: true, Hint: puzzle.LightHint(on)}, nil
}
