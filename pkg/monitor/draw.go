package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/shelf/internal/engine"
	"github.com/marcus/shelf/internal/models"
)

const (
	minWidth        = 40
	minHeight       = 12
	formLabelWidth  = 14
	maxDetailLines  = 6
	maxMessageLines = 4
	playersColWidth = 8
	timeColWidth    = 7
)

var fieldLabels = map[string]string{
	engine.FieldName:        "Name",
	engine.FieldMinPlayers:  "Min players",
	engine.FieldMaxPlayers:  "Max players",
	engine.FieldPlayTime:    "Play time (m)",
	engine.FieldDescription: "Description",
}

// view draws engine modes. It holds presentation state only: the help
// renderer and the markdown cache.
type view struct {
	help help.Model
	md   *markdown
}

func newView(markdownStyle string) *view {
	h := help.New()
	h.ShowAll = false
	return &view{help: h, md: newMarkdown(markdownStyle)}
}

// draw renders the current mode at width x height. Drawing registers the
// frame's action and input regions on e; the caller clears the registry
// beforehand.
func (v *view) draw(e *engine.Engine, width, height int) string {
	width = max(width, minWidth)
	height = max(height, minHeight)
	c := newCanvas(e, 0, 0, width)

	v.drawTitleBar(c, e)
	switch mode := e.Mode(); mode.Kind {
	case engine.ModeMain:
		v.drawMain(c, e, height)
	case engine.ModeAdding, engine.ModeEditing:
		v.drawForm(c, e, mode)
	case engine.ModeDeleting:
		v.drawConfirm(c, e, deletePrompt(e, mode.RecordID), engine.ActionDeleteConfirm)
	case engine.ModeQuitting:
		v.drawConfirm(c, e, "Quit shelf?", engine.ActionQuitConfirm)
	}

	if e.Mode().Kind != engine.ModeMain {
		v.drawMessages(c, e)
		c.blank(max(height-c.height()-1, 0))
	}
	v.drawFooter(c, e)
	return c.render(height)
}

func modeTitle(m engine.Mode) string {
	switch m.Kind {
	case engine.ModeAdding:
		return "Add boardgame"
	case engine.ModeEditing:
		return fmt.Sprintf("Edit boardgame #%d", m.RecordID)
	case engine.ModeDeleting:
		return "Delete boardgame"
	case engine.ModeQuitting:
		return "Quit"
	default:
		return "Catalog"
	}
}

func (v *view) drawTitleBar(c *canvas, e *engine.Engine) {
	left := titleStyle.Render("shelf") + titleBarStyle.Render(" "+modeTitle(e.Mode())+" ")

	label, action := " Back ", engine.Action{Kind: engine.ActionBack}
	if e.Mode().Kind == engine.ModeMain {
		label, action = " Quit ", engine.Action{Kind: engine.ActionQuitPrompt}
	}
	right := item{
		normal: titleActionStyle.Render(label),
		hover:  titleActionHoverStyle.Render(label),
		action: action,
	}

	pad := max(c.width-lipgloss.Width(left)-lipgloss.Width(right.normal), 1)
	c.row(0, item{normal: left}, item{normal: titleBarStyle.Render(strings.Repeat(" ", pad))}, right)
}

func button(label string, a engine.Action) item {
	return item{
		normal: buttonStyle.Render(label),
		hover:  buttonHoverStyle.Render(label),
		action: a,
	}
}

func dangerButton(label string, a engine.Action) item {
	return item{
		normal: buttonDangerStyle.Render(label),
		hover:  buttonDangerHoverStyle.Render(label),
		action: a,
	}
}

func primaryButton(label string, a engine.Action) item {
	return item{
		normal: buttonPrimaryStyle.Render(label),
		hover:  buttonHoverStyle.Render(label),
		action: a,
	}
}

// inputBox renders a single-line bordered field showing the live buffer.
// Long text keeps its tail visible so the cursor stays on screen.
func inputBox(e *engine.Engine, field, placeholder string, width int) item {
	inner := max(width-4, 4)
	text := e.Focus().Buffer(field)
	focused := e.Focus().IsFocused(field)

	shown := text
	if focused {
		inner-- // room for the cursor
	}
	if w := ansi.StringWidth(shown); w > inner {
		shown = "…" + ansi.TruncateLeft(shown, w-inner+1, "")
	}
	if shown == "" && !focused {
		shown = mutedStyle.Render(placeholder)
	}
	if focused {
		shown += cursorStyle.Render("█")
	}

	style := inputBoxStyle
	if focused {
		style = inputFocusedStyle
	}
	box := style.Width(width - 2).Render(shown)
	return item{
		normal: box,
		hover:  inputHoverStyle.Width(width - 2).Render(shown),
		input:  field,
	}
}

func (v *view) drawMain(c *canvas, e *engine.Engine, height int) {
	sel := e.SelectedID()
	c.row(1,
		primaryButton("Add", engine.Action{Kind: engine.ActionAddNew}),
		button("Edit", engine.Action{Kind: engine.ActionEdit, ID: sel}),
		dangerButton("Delete", engine.Action{Kind: engine.ActionDeletePrompt, ID: sel}),
		button("Reload", engine.Action{Kind: engine.ActionRefresh}),
	)

	// Clear is padded to the height of the search box beside it
	clearSearch := item{
		normal: buttonStyle.Padding(1, 2).Render("Clear"),
		hover:  buttonHoverStyle.Padding(1, 2).Render("Clear"),
		action: engine.Action{Kind: engine.ActionClearSearch},
	}
	searchWidth := c.width - lipgloss.Width(clearSearch.normal) - 1
	c.row(1, inputBox(e, engine.FieldSearch, "Search names…", searchWidth), clearSearch)

	// Everything below the list has a known height once the detail text and
	// messages are rendered, so the list takes what is left.
	detail := v.detailLines(e, c.width-4)
	msgs := messageLines(e, c.width-4)
	below := 1 + (len(detail) + 2) + (len(msgs) + 2) + 1 // indicator, panels, footer
	listHeight := max(height-c.height()-1-below, 3)

	v.drawList(c, e, listHeight)
	c.add(panelStyle.Width(c.width - 2).Render(strings.Join(detail, "\n")))
	c.add(messagePanelStyle.Width(c.width - 2).Render(strings.Join(msgs, "\n")))
}

func (v *view) drawList(c *canvas, e *engine.Engine, rows int) {
	visible := e.VisibleRecords()
	nameWidth := max(c.width-2-playersColWidth-timeColWidth-2, 8)

	header := fmt.Sprintf("  %-*s %*s %*s", nameWidth, "NAME", playersColWidth, "PLAYERS", timeColWidth, "TIME")
	c.add(listHeaderStyle.Render(header))

	start, end := e.ListWindow(rows)
	for i := start; i < end; i++ {
		g := visible[i]
		selected := g.ID == e.SelectedID()
		name := g.Name
		if ansi.StringWidth(name) > nameWidth {
			name = ansi.Truncate(name, nameWidth, "…")
		}
		name += strings.Repeat(" ", nameWidth-ansi.StringWidth(name))
		line := fmt.Sprintf("%s %*s %*s", name, playersColWidth, g.Players(), timeColWidth, g.PlayTime())

		cursor := "  "
		style := listItemStyle
		if selected {
			cursor = listCursorStyle.Render("> ")
			style = listSelectedStyle
		}
		c.row(0, item{
			normal: cursor + style.Render(line),
			hover:  cursor + listHoverStyle.Render(line),
			action: engine.Action{Kind: engine.ActionSelect, ID: g.ID},
		})
	}
	if len(visible) == 0 {
		empty := "No boardgames yet. Press a to add one."
		if e.Focus().Buffer(engine.FieldSearch) != "" {
			empty = "No names match the search."
		}
		c.add(mutedStyle.Render("  " + empty))
		end = start + 1
	}
	c.blank(rows - (end - start))

	var indicators []item
	if start > 0 {
		indicators = append(indicators, item{
			normal: mutedStyle.Render(fmt.Sprintf("↑ %d more", start)),
			action: engine.Action{Kind: engine.ActionScrollUp},
		})
	}
	if end < len(visible) {
		indicators = append(indicators, item{
			normal: mutedStyle.Render(fmt.Sprintf("↓ %d more", len(visible)-end)),
			action: engine.Action{Kind: engine.ActionScrollDown},
		})
	}
	if len(indicators) == 0 {
		c.blank(1)
		return
	}
	c.row(3, append([]item{{normal: " "}}, indicators...)...)
}

// detailLines renders the selected record for the detail pane
func (v *view) detailLines(e *engine.Engine, width int) []string {
	g, ok := e.Selected()
	if !ok {
		return []string{mutedStyle.Render("Select a boardgame to see its description.")}
	}
	lines := []string{promptStyle.Render(summary(g))}
	if g.Description == "" {
		return append(lines, mutedStyle.Render("No description."))
	}
	body := strings.Split(v.md.render(g.Description, width), "\n")
	if len(body) > maxDetailLines-1 {
		body = append(body[:maxDetailLines-2], mutedStyle.Render("…"))
	}
	return append(lines, body...)
}

func summary(g *models.Boardgame) string {
	players := g.Players() + " players"
	if g.MinPlayers == 1 && g.MaxPlayers == 1 {
		players = "solo"
	}
	return fmt.Sprintf("%s · %s · %s", g.Name, players, g.PlayTime())
}

// messageLines renders the message queue, newest last, keeping the most
// recent lines when there are too many to show
func messageLines(e *engine.Engine, width int) []string {
	msgs := e.Messages()
	if len(msgs) == 0 {
		return []string{mutedStyle.Render("No messages")}
	}
	if len(msgs) > maxMessageLines {
		msgs = msgs[len(msgs)-maxMessageLines:]
	}
	lines := make([]string, len(msgs))
	for i, m := range msgs {
		lines[i] = warningStyle.Render(ansi.Truncate(m, width, "…"))
	}
	return lines
}

func (v *view) drawMessages(c *canvas, e *engine.Engine) {
	c.add(messagePanelStyle.Width(c.width - 2).Render(strings.Join(messageLines(e, c.width-4), "\n")))
}

func (v *view) drawForm(c *canvas, e *engine.Engine, mode engine.Mode) {
	boxWidth := c.width - formLabelWidth - 1
	for _, field := range engine.FormFields {
		label := labelStyle.Width(formLabelWidth).Render("\n" + fieldLabels[field])
		c.row(1, item{normal: label}, inputBox(e, field, "", boxWidth))
	}

	submit := engine.Action{Kind: engine.ActionSubmitNew}
	if mode.Kind == engine.ModeEditing {
		submit = engine.Action{Kind: engine.ActionSubmitEdit}
	}
	c.blank(1)
	c.row(1,
		item{normal: strings.Repeat(" ", formLabelWidth)},
		primaryButton("Save", submit),
		button("Cancel", engine.Action{Kind: engine.ActionBack}),
	)
	c.blank(1)
}

func deletePrompt(e *engine.Engine, id int64) string {
	for _, g := range e.Records() {
		if g.ID == id {
			return fmt.Sprintf("Delete '%s'? This cannot be undone.", g.Name)
		}
	}
	return fmt.Sprintf("Delete boardgame #%d? This cannot be undone.", id)
}

func (v *view) drawConfirm(c *canvas, e *engine.Engine, prompt string, yes engine.ActionKind) {
	c.blank(1)
	c.add("  " + promptStyle.Render(prompt))
	c.blank(1)
	c.row(2,
		item{normal: " "},
		dangerButton("Yes", engine.Action{Kind: yes}),
		button("No", engine.Action{Kind: engine.ActionBack}),
	)
	c.blank(1)
}

func (v *view) drawFooter(c *canvas, e *engine.Engine) {
	var bindings []key.Binding
	if _, focused := e.Focus().Selected(); focused {
		bindings = engine.FocusedHelp()
	} else {
		bindings = e.Keys().ShortHelp()
	}
	v.help.Width = c.width
	c.add(v.help.ShortHelpView(bindings))
}
