package engine

import (
	"fmt"

	"github.com/marcus/shelf/internal/models"
)

// Invoke performs a. Store failures and bad input become messages; the mode
// only changes when the operation succeeded.
func (e *Engine) Invoke(a Action) {
	e.log.Debug("action", "action", a.String(), "mode", e.Mode().String())

	switch a.Kind {
	case ActionNone:
	case ActionAddNew:
		e.PushMode(Mode{Kind: ModeAdding})
	case ActionBack:
		e.PopMode()
	case ActionQuitPrompt:
		if e.Mode().Kind != ModeQuitting {
			e.PushMode(Mode{Kind: ModeQuitting})
		}
	case ActionQuitConfirm:
		e.quit = true
	case ActionSubmitNew:
		e.submitNew()
	case ActionSubmitEdit:
		e.submitEdit()
	case ActionSelect:
		e.selected = a.ID
	case ActionEdit:
		e.beginEdit(a.ID)
	case ActionDeletePrompt:
		if a.ID == 0 {
			e.Notify("Select a boardgame first")
			return
		}
		e.PushMode(Mode{Kind: ModeDeleting, RecordID: a.ID})
	case ActionDeleteConfirm:
		e.confirmDelete()
	case ActionScrollUp:
		e.scroll = max(e.scroll-1, 0)
	case ActionScrollDown:
		// ListWindow clamps against the visible height
		e.scroll++
	case ActionClearSearch:
		e.focus.SetBuffer(FieldSearch, "")
		e.scroll = 0
	case ActionRefresh:
		e.MarkStale()
	default:
		violate("unknown action %s", a)
	}
}

// parseForm reads the form buffers and validates the result. It reports the
// first problem as a message and returns nil.
func (e *Engine) parseForm() *models.Boardgame {
	b, err := recordFromBuffers(e.focus)
	if err != nil {
		e.Notify(err.Error())
		return nil
	}
	b.Normalize()
	if err := b.Validate(); err != nil {
		e.Notify(fmt.Sprintf("Invalid boardgame: %v", err))
		return nil
	}
	return b
}

func (e *Engine) submitNew() {
	b := e.parseForm()
	if b == nil {
		return
	}
	id, err := e.store.CreateBoardgame(b)
	if err != nil {
		e.log.Warn("create boardgame", "name", b.Name, "err", err)
		e.Notify(fmt.Sprintf("Error adding boardgame: %v", err))
		return
	}
	b.ID = id
	e.PopMode()
	e.selected = id
	e.follow = true
	e.Notify("Successfully added new boardgame!")
	e.similarNotices(b)
}

func (e *Engine) beginEdit(id int64) {
	if id == 0 {
		e.Notify("Select a boardgame first")
		return
	}
	b, err := e.store.GetBoardgame(id)
	if err != nil {
		e.log.Warn("get boardgame", "id", id, "err", err)
		e.Notify(fmt.Sprintf("Error loading boardgame: %v", err))
		return
	}
	e.PushMode(Mode{Kind: ModeEditing, RecordID: id})
	seedBuffers(e.focus, b)
}

func (e *Engine) submitEdit() {
	mode := e.Mode()
	if mode.Kind != ModeEditing {
		violate("submit edit outside Editing mode (%s)", mode)
	}
	b := e.parseForm()
	if b == nil {
		return
	}
	b.ID = mode.RecordID
	if err := e.store.UpdateBoardgame(b); err != nil {
		e.log.Warn("update boardgame", "id", b.ID, "err", err)
		e.Notify(fmt.Sprintf("Error updating boardgame: %v", err))
		return
	}
	e.PopMode()
	e.selected = b.ID
	e.follow = true
	e.Notify(fmt.Sprintf("Successfully updated '%s'", b.Name))
	e.similarNotices(b)
}

func (e *Engine) confirmDelete() {
	mode := e.Mode()
	if mode.Kind != ModeDeleting {
		violate("confirm delete outside Deleting mode (%s)", mode)
	}
	name := fmt.Sprintf("#%d", mode.RecordID)
	if b := e.find(mode.RecordID); b != nil {
		name = "'" + b.Name + "'"
	}
	if err := e.store.DeleteBoardgame(mode.RecordID); err != nil {
		e.log.Warn("delete boardgame", "id", mode.RecordID, "err", err)
		e.Notify(fmt.Sprintf("Error deleting boardgame: %v", err))
		return
	}
	e.PopMode()
	if e.selected == mode.RecordID {
		e.selected = 0
	}
	e.Notify(fmt.Sprintf("Deleted %s", name))
}
