package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	domain "libris/internal/library/domain"
)

// FormatStatus returns the styled status badge for a record.
func FormatStatus(status domain.Status) string {
	switch status {
	case domain.StatusIssued:
		return lipgloss.NewStyle().Foreground(StatusIssuedColor).Render("issued")
	default:
		return lipgloss.NewStyle().Foreground(StatusAvailableColor).Render("available")
	}
}

// FormatCount renders the "n records" header fragment.
func FormatCount(n int) string {
	if n == 1 {
		return "1 record"
	}
	return fmt.Sprintf("%d records", n)
}

// Truncate shortens s to the given display width, appending an ellipsis when
// anything was cut. Widths are measured in terminal cells, not bytes.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// Pad right-pads s with spaces to the given display width.
func Pad(s string, width int) string {
	return runewidth.FillRight(Truncate(s, width), width)
}
