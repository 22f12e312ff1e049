package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/shelf/internal/models"
)

// nameColumn caps the name column in listings
const nameColumn = 32

// FormatGameShort renders one listing line: id, name, players, play time
func FormatGameShort(b *models.Boardgame) string {
	name := ansi.Truncate(b.Name, nameColumn, "…")
	pad := nameColumn - ansi.StringWidth(name)
	return fmt.Sprintf("%s  %s%s  %-7s %s",
		mutedStyle.Render(fmt.Sprintf("#%-4d", b.ID)),
		nameStyle.Render(name), strings.Repeat(" ", pad),
		b.Players(), b.PlayTime())
}

// FormatGameLong renders every field of a record, one per line
func FormatGameLong(b *models.Boardgame) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s\n", nameStyle.Render(b.Name), mutedStyle.Render(fmt.Sprintf("#%d", b.ID)))
	fmt.Fprintf(&sb, "Players:   %s\n", b.Players())
	fmt.Fprintf(&sb, "Play time: %s\n", b.PlayTime())
	if !b.CreatedAt.IsZero() {
		fmt.Fprintf(&sb, "Added:     %s\n", FormatTimeAgo(b.CreatedAt, time.Now()))
	}
	if b.Description != "" {
		sb.WriteString("\n")
		sb.WriteString(lipgloss.NewStyle().Width(72).Render(b.Description))
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatTimeAgo renders t relative to now, e.g. "5m ago"
func FormatTimeAgo(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("2006-01-02")
	}
}
