package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"squeeze/internal/processor"
)

type Model struct {
	updates  <-chan processor.ProgressUpdate
	started  time.Time
	width    int
	total    int
	files    int
	errors   int
	original int64
	final    int64
	quitting bool
}

type doneMsg struct{}

type updateMsg processor.ProgressUpdate

func NewModel(updates <-chan processor.ProgressUpdate) Model {
	return Model{updates: updates, started: time.Now()}
}

func (m Model) Init() tea.Cmd {
	return listenForUpdates(m.updates)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case updateMsg:
		m.total += msg.TotalDelta
		m.files += msg.FilesDelta
		m.errors += msg.ErrorDelta
		m.original += msg.OriginalDelta
		m.final += msg.FinalDelta
		return m, listenForUpdates(m.updates)
	case doneMsg:
		m.quitting = true
		return m, tea.Quit
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	barWidth := 40
	if m.width > 0 {
		barWidth = int(math.Min(60, float64(m.width-10)))
		if barWidth < 20 {
			barWidth = 20
		}
	}

	ratio := 0.0
	if m.total > 0 {
		ratio = float64(m.files) / float64(m.total)
		if ratio > 1 {
			ratio = 1
		}
	}

	bar := renderBar(barWidth, ratio)
	elapsed := time.Since(m.started).Round(time.Millisecond)

	progress := fmt.Sprintf("%d files | %s → %s | -%s",
		m.files,
		humanize.Bytes(uint64(m.original)),
		humanize.Bytes(uint64(m.final)),
		humanize.Bytes(uint64(m.original-m.final)))

	errs := dimStyle.Render(fmt.Sprintf("  errors:%d", m.errors))
	if m.errors > 0 {
		errs = warnStyle.Render(fmt.Sprintf("  errors:%d", m.errors))
	}

	lines := []string{
		titleStyle.Render("squeeze"),
		labelStyle.Render(progress) + errs,
		dimStyle.Render(fmt.Sprintf("Elapsed: %s", elapsed)),
		barStyle.Render(bar),
	}

	return strings.Join(lines, "\n")
}

func listenForUpdates(updates <-chan processor.ProgressUpdate) tea.Cmd {
	return func() tea.Msg {
		update, ok := <-updates
		if !ok {
			return doneMsg{}
		}
		return updateMsg(update)
	}
}

func renderBar(width int, ratio float64) string {
	filled := int(math.Round(ratio * float64(width)))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", width-filled) + "]"
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	labelStyle = lipgloss.NewStyle().Foreground(ColorInk)
	barStyle   = lipgloss.NewStyle().Foreground(ColorAccentAlt)
	dimStyle   = lipgloss.NewStyle().Foreground(ColorDim)
	warnStyle  = lipgloss.NewStyle().Foreground(ColorWarn)
)
