// Package tui renders a presentation sequencer in the terminal.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"chimera/internal/presentation/models"
	"chimera/pkg/platform/sentinel"
)

// maxLogLines bounds the scrolling log shown under a frame.
const maxLogLines = 6

// Player is the part of a sequencer the terminal drives.
type Player interface {
	Start() error
	Reset() error
	Snapshot() models.Snapshot
}

type eventMsg models.Event

type closedMsg struct{}

// Model is the bubbletea model of the terminal player.
type Model struct {
	player  Player
	events  <-chan models.Event
	subject string
	state   models.State
	frame   *models.Frame
	spinner spinner.Model
	bar     progress.Model
	notice  string
	width   int
	closed  bool
}

// New builds a player model. events must come from the same sequencer.
func New(player Player, events <-chan models.Event) Model {
	snap := player.Snapshot()
	return Model{
		player:  player,
		events:  events,
		subject: snap.Subject,
		state:   snap.State,
		frame:   snap.Frame,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(cyan)),
		),
		bar:   progress.New(progress.WithGradient("#0891b2", "#34d399"), progress.WithWidth(48)),
		width: 80,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForEvent(m.events))
}

func waitForEvent(events <-chan models.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return closedMsg{}
		}
		return eventMsg(ev)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = min(max(msg.Width-12, 10), 64)
		return m, nil

	case eventMsg:
		m.state = msg.State
		switch msg.Kind {
		case models.EventTransition:
			m.frame = nil
			m.notice = ""
		case models.EventFrame:
			m.frame = msg.Frame
		}
		return m, waitForEvent(m.events)

	case closedMsg:
		m.closed = true
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "enter", " ":
		m.notice = noticeFor(m.player.Start(), "start is only available from IDLE")
	case "r":
		m.notice = noticeFor(m.player.Reset(), "reset is only available once COMPLETE")
	}
	return m, nil
}

func noticeFor(err error, invalid string) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, sentinel.ErrInvalidState):
		return invalid
	default:
		return err.Error()
	}
}

// State reports the last state the model rendered.
func (m Model) State() models.State {
	return m.state
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("CHIMERA // COMPLIANCE ENGINE"))
	b.WriteString("  ")
	b.WriteString(captionStyle.Render("subject: " + m.subject))
	b.WriteString("\n\n")
	b.WriteString(m.stepRow())
	b.WriteString("\n\n")

	phase := phaseStyle.Render(m.state.String())
	if m.state.Phase != models.PhaseIdle && m.state.Phase != models.PhaseComplete {
		phase = m.spinner.View() + " " + phase
	}
	b.WriteString(phase)
	b.WriteString("\n\n")
	b.WriteString(frameStyle.Width(min(max(m.width-4, 40), 96)).Render(m.frameView()))
	b.WriteString("\n")

	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.help()))
	b.WriteString("\n")
	return b.String()
}

func (m Model) stepRow() string {
	cells := make([]string, 0, models.StepCount)
	for i, view := range models.StepViews(m.state) {
		switch view.Status {
		case models.StepComplete:
			cells = append(cells, stepComplete.Render("✓ "+view.Title))
		case models.StepActive:
			cells = append(cells, stepActive.Render("● "+view.Title))
		default:
			cells = append(cells, stepPending.Render(fmt.Sprintf("%d %s", i+1, view.Title)))
		}
	}
	return strings.Join(cells, stepPending.Render("  ─  "))
}

func (m Model) frameView() string {
	if m.state.Phase == models.PhaseIdle {
		return headlineStyle.Render("READY TO SCREEN") + "\n" +
			captionStyle.Render("Press enter to begin the compliance sequence.")
	}
	f := m.frame
	if f == nil {
		return captionStyle.Render("initialising " + strings.ToLower(m.state.Phase.String()) + "...")
	}

	var b strings.Builder
	b.WriteString(headlineStyle.Render(f.Headline))
	if f.Caption != "" {
		b.WriteString("\n")
		b.WriteString(captionStyle.Render(f.Caption))
	}
	b.WriteString("\n\n")
	b.WriteString(m.bar.ViewAs(f.Progress / 100))
	if f.Score != nil {
		b.WriteString("\n")
		b.WriteString(scoreStyle.Render(fmt.Sprintf("RISK SCORE %d/100", *f.Score)))
	}
	if f.Countdown != nil {
		b.WriteString("\n")
		b.WriteString(captionStyle.Render(fmt.Sprintf("auto-continue in %ds", *f.Countdown)))
	}
	for _, item := range f.Items {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%-34s %s", item.Label, item.Status))
	}
	if len(f.Bars) > 0 {
		b.WriteString("\n")
		for _, bar := range f.Bars {
			b.WriteString(fmt.Sprintf("\n%-6s %s %d", bar.Label, strings.Repeat("▇", bar.Value/5), bar.Value))
		}
	}
	lines := f.Lines
	if len(lines) > maxLogLines {
		lines = lines[len(lines)-maxLogLines:]
	}
	for _, line := range lines {
		b.WriteString("\n")
		b.WriteString(logStyle.Render("> " + line))
	}
	if f.Narrative != "" {
		b.WriteString("\n\n")
		b.WriteString(f.Narrative)
	}
	return b.String()
}

func (m Model) help() string {
	switch m.state.Phase {
	case models.PhaseIdle:
		return "enter/space start • q quit"
	case models.PhaseComplete:
		return "r reset • q quit"
	default:
		return "q quit"
	}
}

// Run plays the sequencer until the user quits, ctx ends, or events closes.
func Run(ctx context.Context, player Player, events <-chan models.Event, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, opts...)
	if _, err := tea.NewProgram(New(player, events), opts...).Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("terminal player: %w", err)
	}
	return nil
}
