package engine

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/marcus/shelf/internal/models"
)

// Store is the record store the engine reads and writes. Every call is
// synchronous; failures become messages and go no further.
type Store interface {
	CreateBoardgame(b *models.Boardgame) (int64, error)
	ListBoardgames() ([]models.Boardgame, error)
	GetBoardgame(id int64) (*models.Boardgame, error)
	UpdateBoardgame(b *models.Boardgame) error
	DeleteBoardgame(id int64) error
}

// Options configures an Engine. Zero values select defaults.
type Options struct {
	MessageTimeout time.Duration
	Debug          bool
	Hover          bool
	Keys           *KeyMap
	Clock          func() time.Time
	Logger         *slog.Logger
}

// Engine owns the interaction state: the mode stack, this frame's hit-test
// registry, input focus and the message queue. It is single-threaded; the
// caller renders, expires, polls and dispatches in turn.
type Engine struct {
	store    Store
	modes    *ModeStack
	registry *Registry
	focus    *Focus
	messages *MessageQueue
	keys     KeyMap
	timeout  time.Duration
	hover    bool
	now      func() time.Time
	log      *slog.Logger

	quit       bool
	pointer    struct{ x, y int }
	hasPointer bool

	records  []models.Boardgame
	stale    bool
	selected int64
	scroll   int
	follow   bool
}

// New returns an engine in Main mode with a stale record cache
func New(store Store, opts Options) *Engine {
	e := &Engine{
		store:    store,
		modes:    NewModeStack(Main),
		registry: NewRegistry(),
		focus:    NewFocus(),
		messages: NewMessageQueue(),
		timeout:  opts.MessageTimeout,
		hover:    opts.Hover,
		now:      opts.Clock,
		log:      opts.Logger,
		stale:    true,
	}
	if e.timeout <= 0 {
		e.timeout = DefaultMessageTimeout
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.log == nil {
		e.log = slog.Default()
	}
	if opts.Keys != nil {
		e.keys = *opts.Keys
	} else {
		e.keys = DefaultKeyMap()
	}
	e.keys.Debug.SetEnabled(opts.Debug)
	return e
}

// Mode returns the current mode
func (e *Engine) Mode() Mode {
	return e.modes.Current()
}

// Modes returns the mode stack, bottom first
func (e *Engine) Modes() []Mode {
	return e.modes.Modes()
}

// PushMode enters m
func (e *Engine) PushMode(m Mode) {
	e.modes.Push(m)
	e.transitioned()
}

// PopMode returns to the previous mode. It is a no-op in the root mode.
func (e *Engine) PopMode() {
	if e.modes.Pop() {
		e.transitioned()
	}
}

// transitioned drops everything owned by the mode that was just left
func (e *Engine) transitioned() {
	e.registry.Clear()
	e.focus.Clear()
	e.messages.Clear()
	mode := e.modes.Current()
	if mode.Kind == ModeMain {
		e.stale = true
	}
	e.log.Debug("mode transition", "mode", mode.String(), "depth", e.modes.Len())
}

// BeginFrame empties the registry before the current mode is drawn
func (e *Engine) BeginFrame() {
	e.registry.Clear()
}

// RegisterAction binds a clickable region for this frame
func (e *Engine) RegisterAction(r Rect, a Action) {
	e.registry.RegisterAction(r, a)
}

// RegisterInput binds an input field region for this frame. Registration
// order is tab order.
func (e *Engine) RegisterInput(r Rect, field string) {
	e.registry.RegisterInput(r, field)
}

// Registry exposes the current frame's regions
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Focus exposes the input focus model
func (e *Engine) Focus() *Focus {
	return e.focus
}

// Keys returns the global key bindings
func (e *Engine) Keys() KeyMap {
	return e.keys
}

// ExpireMessages drops the front message if it has been shown long enough
func (e *Engine) ExpireMessages() {
	e.messages.ExpireIfDue(e.now(), e.timeout)
}

// Notify queues a message for the user
func (e *Engine) Notify(text string) {
	e.messages.Push(text, e.now())
}

// Messages returns the pending messages, oldest first
func (e *Engine) Messages() []string {
	return e.messages.Snapshot()
}

// QuitRequested reports whether the user confirmed quitting
func (e *Engine) QuitRequested() bool {
	return e.quit
}

// Hovered reports whether the pointer was last seen inside r
func (e *Engine) Hovered(r Rect) bool {
	return e.hover && e.hasPointer && r.Contains(e.pointer.x, e.pointer.y)
}

// Dispatch routes one input event
func (e *Engine) Dispatch(ev Event) {
	switch ev.Kind {
	case EventKeyPress:
		e.HandleKey(ev.Key)
	case EventPointerPress:
		e.HandleClick(ev.X, ev.Y)
	case EventPointerMove:
		e.HandleMove(ev.X, ev.Y)
	case EventScroll:
		e.HandleScroll(ev.Delta)
	}
}

// HandleKey routes a key press to the focused input, or to the global
// bindings when nothing is focused
func (e *Engine) HandleKey(k Key) {
	if _, focused := e.focus.Selected(); focused {
		e.focusedKey(k)
		return
	}

	switch {
	case key.Matches(k, e.keys.Quit):
		if e.Mode().Kind != ModeQuitting {
			e.PushMode(Mode{Kind: ModeQuitting})
		}
	case key.Matches(k, e.keys.Debug):
		e.debugMessages()
	case key.Matches(k, e.keys.Back):
		e.PopMode()
	case k == KeyTab || k == KeyShiftTab:
		e.cycleFocus(k == KeyShiftTab)
	case e.Mode().Kind == ModeMain && key.Matches(k, e.keys.Add):
		e.PushMode(Mode{Kind: ModeAdding})
	case e.Mode().Kind == ModeMain && key.Matches(k, e.keys.Up):
		e.moveSelection(-1)
	case e.Mode().Kind == ModeMain && key.Matches(k, e.keys.Down):
		e.moveSelection(1)
	case e.Mode().Kind == ModeMain && key.Matches(k, e.keys.Refresh):
		e.Invoke(Action{Kind: ActionRefresh})
	default:
		e.Notify(fmt.Sprintf("Unhandled key: %s", k))
	}
}

func (e *Engine) focusedKey(k Key) {
	switch {
	case k == KeyEnter:
		e.focus.Unfocus()
	case k == KeyTab || k == KeyShiftTab:
		e.cycleFocus(k == KeyShiftTab)
	case k == KeyBackspace:
		e.focus.Backspace()
		e.searchEdited()
	case k.IsChar():
		e.focus.Append(k.Rune)
		e.searchEdited()
	default:
		e.Notify(fmt.Sprintf("Unhandled key: %s", k))
	}
}

// cycleFocus moves focus to the next (or previous) input drawn this frame,
// wrapping. With nothing focused it picks the first (or last) one.
func (e *Engine) cycleFocus(reverse bool) {
	fields := e.registry.Inputs()
	if len(fields) == 0 {
		return
	}
	next := 0
	if reverse {
		next = len(fields) - 1
	}
	if cur, ok := e.focus.Selected(); ok {
		for i, f := range fields {
			if f != cur {
				continue
			}
			if reverse {
				next = (i - 1 + len(fields)) % len(fields)
			} else {
				next = (i + 1) % len(fields)
			}
			break
		}
	}
	e.focus.Select(fields[next])
}

// HandleClick resolves a pointer press against this frame's registry. An
// input hit only moves focus; otherwise focus is dropped and the action under
// the pointer, if any, runs.
func (e *Engine) HandleClick(x, y int) {
	e.HandleMove(x, y)
	if field, ok := e.registry.HitInput(x, y); ok {
		e.focus.Select(field)
		return
	}
	e.focus.Unfocus()
	if a, ok := e.registry.HitAction(x, y); ok {
		e.Invoke(a)
	}
}

// HandleMove records the pointer position for hover highlighting
func (e *Engine) HandleMove(x, y int) {
	e.pointer.x, e.pointer.y = x, y
	e.hasPointer = true
}

// HandleScroll moves the list window in Main mode
func (e *Engine) HandleScroll(delta int) {
	if e.Mode().Kind != ModeMain || delta == 0 {
		return
	}
	if delta < 0 {
		e.Invoke(Action{Kind: ActionScrollUp})
	} else {
		e.Invoke(Action{Kind: ActionScrollDown})
	}
}

func (e *Engine) debugMessages() {
	prev := "none"
	if m, ok := e.modes.Previous(); ok {
		prev = m.String()
	}
	e.Notify("previous mode: " + prev)

	fields := e.focus.Fields()
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s=%q", f, e.focus.Buffer(f)))
	}
	e.Notify("buffers: {" + strings.Join(parts, ", ") + "}")

	actions, inputs := e.registry.Len()
	e.Notify(fmt.Sprintf("regions: %d actions, %d inputs", actions, inputs))
}

// Records returns the cached catalog, reloading it first when stale. A failed
// reload is reported once and leaves the previous list in place.
func (e *Engine) Records() []models.Boardgame {
	if e.stale {
		e.reload()
	}
	return e.records
}

func (e *Engine) reload() {
	e.stale = false
	games, err := e.store.ListBoardgames()
	if err != nil {
		e.log.Warn("list boardgames", "err", err)
		e.Notify(fmt.Sprintf("Error getting boardgames: %v", err))
		return
	}
	e.records = games
	if e.selected != 0 && e.find(e.selected) == nil {
		e.selected = 0
	}
}

// MarkStale forces a reload on the next Records call
func (e *Engine) MarkStale() {
	e.stale = true
}

// VisibleRecords returns the records matching the search field, best first
func (e *Engine) VisibleRecords() []models.Boardgame {
	return models.FuzzyFilter(e.Records(), e.focus.Buffer(FieldSearch))
}

// Selected returns the selected record, if it is visible
func (e *Engine) Selected() (*models.Boardgame, bool) {
	if e.selected == 0 {
		return nil, false
	}
	visible := e.VisibleRecords()
	for i := range visible {
		if visible[i].ID == e.selected {
			return &visible[i], true
		}
	}
	return nil, false
}

// SelectedID returns the id of the selected record, zero for none
func (e *Engine) SelectedID() int64 {
	return e.selected
}

func (e *Engine) find(id int64) *models.Boardgame {
	for i := range e.records {
		if e.records[i].ID == id {
			return &e.records[i]
		}
	}
	return nil
}

// ListWindow returns the bounds [start, end) of the visible records that fit
// in height rows, starting at the current scroll offset
func (e *Engine) ListWindow(height int) (start, end int) {
	visible := e.VisibleRecords()
	n := len(visible)
	if height <= 0 || n == 0 {
		e.scroll = 0
		return 0, 0
	}
	if e.follow {
		e.follow = false
		for i, g := range visible {
			if g.ID != e.selected {
				continue
			}
			if i < e.scroll {
				e.scroll = i
			} else if i >= e.scroll+height {
				e.scroll = i - height + 1
			}
			break
		}
	}
	maxScroll := max(n-height, 0)
	e.scroll = min(max(e.scroll, 0), maxScroll)
	return e.scroll, min(e.scroll+height, n)
}

// moveSelection steps the selection through the visible records. The next
// ListWindow call scrolls to keep it on screen.
func (e *Engine) moveSelection(step int) {
	visible := e.VisibleRecords()
	if len(visible) == 0 {
		return
	}
	idx := -1
	for i, g := range visible {
		if g.ID == e.selected {
			idx = i
			break
		}
	}
	switch {
	case idx < 0 && step > 0:
		idx = 0
	case idx < 0:
		idx = len(visible) - 1
	default:
		idx = min(max(idx+step, 0), len(visible)-1)
	}
	e.selected = visible[idx].ID
	e.follow = true
}

// searchEdited resets the list window when the search text changes
func (e *Engine) searchEdited() {
	if field, _ := e.focus.Selected(); field == FieldSearch {
		e.scroll = 0
	}
}

// similarNotices queues a notice for each existing record whose name is a
// near-miss for b's
func (e *Engine) similarNotices(b *models.Boardgame) {
	for _, n := range models.SimilarNames(b.Name, e.Records(), b.ID) {
		e.Notify(fmt.Sprintf("'%s' looks similar to existing '%s'", b.Name, n))
	}
}
