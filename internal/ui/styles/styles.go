// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

// Color tokens. Adaptive colors pick the variant matching the terminal
// background.
var (
	TextPrimaryColor     = lipgloss.AdaptiveColor{Light: "#1A1A2E", Dark: "#EAEAEA"}
	TextMutedColor       = lipgloss.AdaptiveColor{Light: "#8A8A99", Dark: "#6C6C7A"}
	TextDescriptionColor = lipgloss.AdaptiveColor{Light: "#44445A", Dark: "#A8A8B8"}
	BorderDefaultColor   = lipgloss.AdaptiveColor{Light: "#C9C9D6", Dark: "#3A3A4A"}
	BorderFocusedColor   = lipgloss.AdaptiveColor{Light: "#5458D8", Dark: "#7D83FF"}

	StatusAvailableColor = lipgloss.AdaptiveColor{Light: "#0E7A4D", Dark: "#73F59F"}
	StatusIssuedColor    = lipgloss.AdaptiveColor{Light: "#B3471D", Dark: "#FFB454"}
	StatusErrorColor     = lipgloss.AdaptiveColor{Light: "#C52233", Dark: "#FF8787"}
)

// Shared styles.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextPrimaryColor)

	HintStyle = lipgloss.NewStyle().
			Foreground(TextMutedColor).
			Italic(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(StatusErrorColor)

	SelectionIndicatorStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(BorderFocusedColor)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextDescriptionColor)
)
