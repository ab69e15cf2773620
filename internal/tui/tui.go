// Package tui provides a Bubble Tea terminal user interface for retagger.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/retagger/internal/change"
	"github.com/handiism/retagger/internal/config"
	"github.com/handiism/retagger/internal/retag"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)
)

// maxLogs is the number of log lines kept on screen.
const maxLogs = 12

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateRunning
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   retag.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	logs      []LogEntry
	summary   change.Summary
	err       error

	// Run context
	ctx    context.Context
	cancel context.CancelFunc

	manager *retag.Manager
	events  chan retag.ProgressEvent

	processed int32
	total     int32

	// Options
	test     bool
	playlist bool
	verbose  bool

	width  int
	height int
}

// NewModel creates a new TUI model starting from settings.
func NewModel(settings *config.Settings) Model {
	ti := textinput.New()
	ti.Placeholder = "/path/to/music"
	ti.SetValue(settings.Root)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		settings:  settings,
		logs:      make([]LogEntry, 0),
		ctx:       ctx,
		cancel:    cancel,
		test:      settings.DryRun,
		playlist:  settings.CreatePlaylist,
		verbose:   settings.Verbose,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg carries one event from the running manager.
	ProgressMsg struct {
		Event retag.ProgressEvent
	}

	// RunDoneMsg is sent when the run finishes.
	RunDoneMsg struct {
		Summary change.Summary
		Err     error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 20
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		if m.progress.Width < 20 {
			m.progress.Width = 20
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateInput {
				return m, tea.Quit
			}
			if m.state == StateRunning {
				m.cancel()
			}
			return m, nil

		case "enter":
			if m.state == StateInput && strings.TrimSpace(m.textInput.Value()) != "" {
				return m.startRun()
			}
			return m, nil

		case "ctrl+t":
			if m.state == StateInput {
				m.test = !m.test
			}
			return m, nil

		case "ctrl+p":
			if m.state == StateInput {
				m.playlist = !m.playlist
			}
			return m, nil

		case "ctrl+o":
			if m.state == StateInput {
				m.verbose = !m.verbose
			}
			return m, nil

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				// Reset for a new run
				m.state = StateInput
				m.logs = nil
				m.err = nil
				m.summary = change.Summary{}
				m.processed = 0
				m.total = 0
				m.manager = nil
				m.events = nil
				m.ctx, m.cancel = context.WithCancel(context.Background())
				m.textInput.Focus()
				return m, nil
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		cmds = append(cmds, waitForEvent(m.events))
		// Filter verbose messages if not in verbose mode
		if msg.Event.Level == retag.LevelVerbose && !m.verbose {
			break
		}
		m.logs = append(m.logs, LogEntry{
			Message: msg.Event.Message,
			Level:   msg.Event.Level,
		})
		if len(m.logs) > maxLogs {
			m.logs = m.logs[len(m.logs)-maxLogs:]
		}

	case RunDoneMsg:
		m.summary = msg.Summary
		if m.manager != nil {
			m.processed, m.total = m.manager.GetProgress()
		}
		switch {
		case errors.Is(msg.Err, context.Canceled):
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		case msg.Err != nil:
			m.state = StateError
			m.err = msg.Err
		default:
			m.state = StateComplete
		}

	case TickMsg:
		if m.manager != nil && m.state == StateRunning {
			m.processed, m.total = m.manager.GetProgress()

			var percent float64
			if m.total > 0 {
				percent = float64(m.processed) / float64(m.total)
			}
			cmds = append(cmds, m.progress.SetPercent(percent), tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	// Update text input
	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// startRun builds a manager from the current options and starts it.
func (m Model) startRun() (tea.Model, tea.Cmd) {
	settings := *m.settings
	settings.Root = strings.TrimSpace(m.textInput.Value())
	settings.DryRun = m.test
	settings.CreatePlaylist = m.playlist
	settings.Verbose = m.verbose

	if err := settings.Validate(); err != nil {
		m.state = StateError
		m.err = err
		return m, nil
	}

	events := make(chan retag.ProgressEvent, 64)
	manager, err := retag.NewManager(&settings, change.NewReporter(io.Discard, false),
		retag.WithProgress(func(e retag.ProgressEvent) { events <- e }))
	if err != nil {
		m.state = StateError
		m.err = err
		return m, nil
	}

	m.manager = manager
	m.events = events
	m.state = StateRunning
	m.textInput.Blur()

	return m, tea.Batch(
		runManager(m.ctx, manager, events),
		waitForEvent(events),
		tickProgress(),
		m.spinner.Tick,
	)
}

// runManager runs the manager in the background and closes events when done.
func runManager(ctx context.Context, manager *retag.Manager, events chan retag.ProgressEvent) tea.Cmd {
	return func() tea.Msg {
		summary, err := manager.Run(ctx)
		close(events)
		return RunDoneMsg{Summary: summary, Err: err}
	}
}

// waitForEvent delivers the next manager event as a ProgressMsg.
func waitForEvent(events <-chan retag.ProgressEvent) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		e, ok := <-events
		if !ok {
			return nil
		}
		return ProgressMsg{Event: e}
	}
}

// tickProgress returns a command to tick progress updates.
func tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("retag"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Normalize MP3 tags from file and folder names"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateRunning:
		b.WriteString(m.viewRunning())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Music folder:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Test run, write nothing (ctrl+t)\n", checkbox(m.test)))
	b.WriteString(fmt.Sprintf("  %s Create %s playlists (ctrl+p)\n", checkbox(m.playlist), m.settings.ToPlaylistFormat()))
	b.WriteString(fmt.Sprintf("  %s Verbose output (ctrl+o)\n", checkbox(m.verbose)))
	if m.settings.LegacyCharset != "" {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(fmt.Sprintf("Legacy charset: %s", m.settings.LegacyCharset)))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) viewRunning() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	if m.test {
		b.WriteString(subtitleStyle.Render("Checking tags (test run)..."))
	} else {
		b.WriteString(subtitleStyle.Render("Updating tags..."))
	}
	b.WriteString("\n\n")

	var percent float64
	if m.total > 0 {
		percent = float64(m.processed) / float64(m.total)
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf("Files: %d/%d", m.processed, m.total)))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	text := fmt.Sprintf("Done!\n\n%d/%d files changed", m.summary.Changed, m.summary.Total)
	if m.test {
		text = fmt.Sprintf("Test run complete, nothing written.\n\n%d/%d files would change", m.summary.Pending, m.summary.Total)
	}
	b.WriteString(boxStyle.Render(text))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%d/%d files changed before the error", m.summary.Changed, m.summary.Total)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "-"
		switch log.Level {
		case retag.LevelError:
			style = errorStyle
			prefix = "x"
		case retag.LevelWarning:
			style = warningStyle
			prefix = "!"
		case retag.LevelSuccess:
			style = successStyle
			prefix = "+"
		case retag.LevelInfo:
			style = infoStyle
			prefix = ">"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: start | ctrl+t: test run | ctrl+p: playlist | ctrl+o: verbose | esc: quit"
	case StateRunning:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: new run | q: quit"
	}
	return ""
}

// Run starts the TUI application with settings from the default config
// file and the environment.
func Run() error {
	settings, err := config.Load(config.DefaultPath())
	if err != nil {
		return err
	}
	if err := settings.ApplyEnv(); err != nil {
		return err
	}
	if settings.Root == "." {
		if wd, err := os.Getwd(); err == nil {
			settings.Root = wd
		}
	}

	p := tea.NewProgram(NewModel(settings), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
