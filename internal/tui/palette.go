package tui

import "github.com/charmbracelet/lipgloss"

// The palette leans green: the headline number of every run is bytes
// saved.
var (
	ColorInk       = lipgloss.Color("#DDE3DC")
	ColorDim       = lipgloss.Color("#6E7B6E")
	ColorAccent    = lipgloss.Color("#5FD7A0")
	ColorAccentAlt = lipgloss.Color("#4AA8C0")
	ColorSuccess   = lipgloss.Color("#87D75F")
	ColorWarn      = lipgloss.Color("#D7AF5F")
)
