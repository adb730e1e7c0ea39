// Package tui provides the interactive main menu.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/cli"
)

// Action is a main menu entry.
type Action int

// Menu actions in display order. Digits 1-6 pick them directly.
const (
	ActionRun Action = iota
	ActionTopMatches
	ActionCandidateAnalytics
	ActionOpportunityAnalytics
	ActionExport
	ActionExit
)

var actionLabels = [...]string{
	ActionRun:                  "Run Matching Algorithm",
	ActionTopMatches:           "View Top Matches",
	ActionCandidateAnalytics:   "Candidate Analytics",
	ActionOpportunityAnalytics: "Opportunity Analytics",
	ActionExport:               "Export Results to CSV",
	ActionExit:                 "Exit",
}

// Actions lists every menu action in display order.
func Actions() []Action {
	return []Action{ActionRun, ActionTopMatches, ActionCandidateAnalytics, ActionOpportunityAnalytics, ActionExport, ActionExit}
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionLabels) {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionLabels[a]
}

var (
	cursorStyle   = lipgloss.NewStyle().Foreground(cli.PrimaryColor).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(cli.PrimaryColor)
)

// Menu is the bubbletea model of the main menu.
type Menu struct {
	keymap  KeyMap
	help    help.Model
	status  string
	cursor  int
	chosen  Action
	done    bool
	aborted bool
}

// NewMenu creates a menu. status is shown under the title when non-empty.
func NewMenu(status string) Menu {
	return Menu{
		keymap: DefaultKeyMap(),
		help:   help.New(),
		status: status,
		chosen: ActionExit,
	}
}

// Init implements tea.Model.
func (m Menu) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.Quit):
			m.aborted = true
			m.chosen = ActionExit
			m.done = true
			return m, tea.Quit
		case key.Matches(msg, m.keymap.Up):
			m.cursor = (m.cursor + len(actionLabels) - 1) % len(actionLabels)
		case key.Matches(msg, m.keymap.Down):
			m.cursor = (m.cursor + 1) % len(actionLabels)
		case key.Matches(msg, m.keymap.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keymap.Select):
			m.chosen = Action(m.cursor)
			m.done = true
			return m, tea.Quit
		default:
			if a, ok := digitAction(msg.String()); ok {
				m.cursor = int(a)
				m.chosen = a
				m.done = true
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func digitAction(s string) (Action, bool) {
	if len(s) != 1 || s[0] < '1' || s[0] > '0'+byte(len(actionLabels)) {
		return 0, false
	}
	return Action(s[0] - '1'), true
}

// View implements tea.Model.
func (m Menu) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(cli.FormatTitle("Allocation Engine"))
	b.WriteString("\n")
	b.WriteString(cli.SubtleStyle.Render("Smart matching for better placements"))
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(cli.InfoStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, a := range Actions() {
		line := fmt.Sprintf("%d. %s", i+1, a)
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> ") + selectedStyle.Render(line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keymap))
	b.WriteString("\n")
	return b.String()
}

// Chosen returns the selected action and whether the user quit instead.
func (m Menu) Chosen() (Action, bool) {
	return m.chosen, m.aborted
}

// Options configures where the menu reads and renders.
type Options struct {
	Input  io.Reader
	Output io.Writer
	Status string
}

// SelectAction shows the menu until the user picks an action.
func SelectAction(ctx context.Context, opts Options) (Action, error) {
	var programOpts []tea.ProgramOption
	programOpts = append(programOpts, tea.WithContext(ctx))
	if opts.Input != nil {
		programOpts = append(programOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		programOpts = append(programOpts, tea.WithOutput(opts.Output))
	}

	final, err := tea.NewProgram(NewMenu(opts.Status), programOpts...).Run()
	if err != nil {
		return ActionExit, fmt.Errorf("menu failed: %w", err)
	}

	menu, ok := final.(Menu)
	if !ok {
		return ActionExit, fmt.Errorf("menu returned unexpected model %T", final)
	}
	action, _ := menu.Chosen()
	return action, nil
}
