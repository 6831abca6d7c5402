// Package tui is the terminal front end of the viewer.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"art-space/pkg/catalog"
	"art-space/pkg/resources"
	"art-space/pkg/viewer"
)

const (
	defaultWidth = 64
	maxCardWidth = 60
)

// Model renders one artwork at a time and reacts to the Previous/Next keys
type Model struct {
	catalog *catalog.Catalog
	bundle  *resources.Bundle
	state   *viewer.State
	keys    keyMap
	width   int
	height  int
	logger  *zap.Logger
}

// New creates a viewer model showing position start
func New(bundle *resources.Bundle, start int, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := catalog.New(bundle)
	state := viewer.NewState(c.Len())
	state.Set(start)

	return Model{
		catalog: c,
		bundle:  bundle,
		state:   state,
		keys: defaultKeys(
			bundle.Lookup("previous", "Previous"),
			bundle.Lookup("next", "Next"),
			bundle.Lookup("first", "First"),
			bundle.Lookup("quit", "Quit"),
		),
		width:  defaultWidth,
		logger: logger,
	}
}

// Position returns the position currently shown
func (m Model) Position() int {
	return m.state.Position()
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.state.Next()
			m.logger.Debug("Next", zap.Int("position", m.state.Position()))
		case key.Matches(msg, m.keys.Previous):
			m.state.Previous()
			m.logger.Debug("Previous", zap.Int("position", m.state.Position()))
		case key.Matches(msg, m.keys.First):
			m.state.Reset()
		}
	}
	return m, nil
}

// View implements tea.Model
func (m Model) View() string {
	artwork, err := m.catalog.At(m.state.Position())
	if err != nil {
		return errorStyle.Render(fmt.Sprintf("error: %v", err)) + "\n"
	}

	cardWidth := m.width - 4
	if cardWidth > maxCardWidth {
		cardWidth = maxCardWidth
	}
	if cardWidth < 20 {
		cardWidth = 20
	}

	image := frameStyle.Width(cardWidth).Render("[ " + artwork.Description + " ]")

	details := detailsStyle.Width(cardWidth).Render(lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Width(cardWidth-4).Render(artwork.Title),
		"",
		captionStyle.Width(cardWidth-4).Render(artwork.Caption()),
	))

	prev := buttonStyle.Render(m.keys.Previous.Help().Desc)
	next := buttonStyle.Render(m.keys.Next.Help().Desc)
	counter := fmt.Sprintf("%d/%d", m.state.Position()+1, m.state.Size())
	gap := cardWidth - lipgloss.Width(prev) - lipgloss.Width(next) - lipgloss.Width(counter)
	if gap < 2 {
		gap = 2
	}
	left := gap / 2
	controls := prev + strings.Repeat(" ", left) + counter + strings.Repeat(" ", gap-left) + next

	help := make([]string, 0, 4)
	for _, b := range m.keys.bindings() {
		help = append(help, b.Help().Key+" "+b.Help().Desc)
	}

	screen := lipgloss.JoinVertical(lipgloss.Center,
		image,
		"",
		details,
		"",
		controls,
		"",
		helpStyle.Render(strings.Join(help, " • ")),
	)

	if m.width > 0 {
		screen = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, screen)
	}
	return screen + "\n"
}
