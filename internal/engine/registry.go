package engine

import "fmt"

// Rect is an axis-aligned region in terminal cells, origin top-left.
// Width and height are exclusive bounds.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the point (x, y) lies inside r
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Empty reports whether r covers no cells
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Offset returns r moved by (dx, dy)
func (r Rect) Offset(dx, dy int) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// ActionKind enumerates what a clickable region does
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionAddNew
	ActionBack
	ActionQuitPrompt
	ActionQuitConfirm
	ActionSubmitNew
	ActionSubmitEdit
	ActionSelect
	ActionEdit
	ActionDeletePrompt
	ActionDeleteConfirm
	ActionScrollUp
	ActionScrollDown
	ActionClearSearch
	ActionRefresh
)

var actionNames = map[ActionKind]string{
	ActionNone:          "none",
	ActionAddNew:        "add",
	ActionBack:          "back",
	ActionQuitPrompt:    "quit-prompt",
	ActionQuitConfirm:   "quit",
	ActionSubmitNew:     "submit-new",
	ActionSubmitEdit:    "submit-edit",
	ActionSelect:        "select",
	ActionEdit:          "edit",
	ActionDeletePrompt:  "delete-prompt",
	ActionDeleteConfirm: "delete",
	ActionScrollUp:      "scroll-up",
	ActionScrollDown:    "scroll-down",
	ActionClearSearch:   "clear-search",
	ActionRefresh:       "refresh",
}

func (k ActionKind) String() string {
	if name, ok := actionNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ActionKind(%d)", int(k))
}

// Action is a state mutation bound to a region. ID carries the record for
// record-scoped kinds (Select, Edit, DeletePrompt).
type Action struct {
	Kind ActionKind
	ID   int64
}

func (a Action) String() string {
	if a.ID != 0 {
		return fmt.Sprintf("%s(%d)", a.Kind, a.ID)
	}
	return a.Kind.String()
}

type actionBinding struct {
	rect   Rect
	action Action
}

type inputBinding struct {
	rect  Rect
	field string
}

// Registry maps on-screen regions to actions and input fields for one frame.
// It is emptied before every render pass and on every mode transition, so a
// pointer event is only ever tested against what is currently displayed.
// When regions overlap, the one registered last wins.
type Registry struct {
	actions []actionBinding
	inputs  []inputBinding
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry {
	return &Registry{}
}

// RegisterAction binds r to a. Empty rects are ignored.
func (reg *Registry) RegisterAction(r Rect, a Action) {
	if r.Empty() {
		return
	}
	reg.actions = append(reg.actions, actionBinding{rect: r, action: a})
}

// RegisterInput binds r to the input field id. Empty rects are ignored.
func (reg *Registry) RegisterInput(r Rect, field string) {
	if r.Empty() {
		return
	}
	reg.inputs = append(reg.inputs, inputBinding{rect: r, field: field})
}

// Clear empties both mappings
func (reg *Registry) Clear() {
	reg.actions = reg.actions[:0]
	reg.inputs = reg.inputs[:0]
}

// HitInput returns the input field under (x, y)
func (reg *Registry) HitInput(x, y int) (string, bool) {
	for i := len(reg.inputs) - 1; i >= 0; i-- {
		if reg.inputs[i].rect.Contains(x, y) {
			return reg.inputs[i].field, true
		}
	}
	return "", false
}

// HitAction returns the action under (x, y)
func (reg *Registry) HitAction(x, y int) (Action, bool) {
	for i := len(reg.actions) - 1; i >= 0; i-- {
		if reg.actions[i].rect.Contains(x, y) {
			return reg.actions[i].action, true
		}
	}
	return Action{}, false
}

// Inputs returns the distinct registered field ids in registration order
func (reg *Registry) Inputs() []string {
	seen := make(map[string]bool, len(reg.inputs))
	var fields []string
	for _, in := range reg.inputs {
		if !seen[in.field] {
			seen[in.field] = true
			fields = append(fields, in.field)
		}
	}
	return fields
}

// Len returns the number of action and input regions registered
func (reg *Registry) Len() (actions, inputs int) {
	return len(reg.actions), len(reg.inputs)
}

// IsEmpty reports whether nothing is registered
func (reg *Registry) IsEmpty() bool {
	return len(reg.actions) == 0 && len(reg.inputs) == 0
}
