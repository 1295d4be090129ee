// Package report builds the catalog summary shown by the report command.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	domain "libris/internal/library/domain"
)

// Build renders the catalog summary as markdown: totals, a per-author
// breakdown and the full record listing, all in store order.
func Build(records []domain.Record) string {
	issued := 0
	for _, r := range records {
		if !r.IsAvailable() {
			issued++
		}
	}

	var b strings.Builder
	b.WriteString("# Catalog summary\n\n")
	fmt.Fprintf(&b, "- Records: %d\n", len(records))
	fmt.Fprintf(&b, "- Available: %d\n", len(records)-issued)
	fmt.Fprintf(&b, "- Issued: %d\n", issued)

	if len(records) == 0 {
		return b.String()
	}

	b.WriteString("\n## By author\n\n")
	type authorCount struct {
		total  int
		issued int
	}
	counts := make(map[string]*authorCount)
	var order []string
	for _, r := range records {
		c, ok := counts[r.Author]
		if !ok {
			c = &authorCount{}
			counts[r.Author] = c
			order = append(order, r.Author)
		}
		c.total++
		if !r.IsAvailable() {
			c.issued++
		}
	}
	for _, author := range order {
		c := counts[author]
		if c.issued > 0 {
			fmt.Fprintf(&b, "- %s: %d (%d issued)\n", author, c.total, c.issued)
		} else {
			fmt.Fprintf(&b, "- %s: %d\n", author, c.total)
		}
	}

	b.WriteString("\n## Records\n\n")
	b.WriteString("| Identifier | Title | Author | Status |\n")
	b.WriteString("|---|---|---|---|\n")
	for _, r := range records {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			escapeCell(r.Identifier), escapeCell(r.Title), escapeCell(r.Author), r.Status)
	}

	return b.String()
}

// Render formats the markdown for the terminal.
func Render(markdown string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return "", err
	}
	return renderer.Render(markdown)
}

// escapeCell keeps user text from breaking the markdown table.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
