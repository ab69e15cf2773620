package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/handiism/retagger/internal/change"
	"github.com/handiism/retagger/internal/config"
	"github.com/handiism/retagger/internal/retag"
)

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModel_ToggleOptions(t *testing.T) {
	m := NewModel(config.DefaultSettings())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlP})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlO})

	if !m.test || !m.playlist || !m.verbose {
		t.Errorf("options = test:%v playlist:%v verbose:%v, want all enabled", m.test, m.playlist, m.verbose)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	if m.test {
		t.Error("ctrl+t should toggle the test run off again")
	}
}

func TestModel_EnterWithEmptyRoot(t *testing.T) {
	settings := config.DefaultSettings()
	settings.Root = ""
	m := NewModel(settings)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != StateInput {
		t.Errorf("state = %v, want StateInput", m.state)
	}
}

func TestModel_InvalidSettings(t *testing.T) {
	settings := config.DefaultSettings()
	settings.Extension = "mp3"
	m := NewModel(settings)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != StateError || m.err == nil {
		t.Errorf("state = %v, err = %v, want StateError", m.state, m.err)
	}
}

func TestModel_ProgressFiltering(t *testing.T) {
	m := NewModel(config.DefaultSettings())

	m = update(t, m, ProgressMsg{Event: retag.ProgressEvent{Message: "Up to date: a.mp3", Level: retag.LevelVerbose}})
	m = update(t, m, ProgressMsg{Event: retag.ProgressEvent{Message: "Updated: b.mp3", Level: retag.LevelSuccess}})

	if len(m.logs) != 1 || m.logs[0].Message != "Updated: b.mp3" {
		t.Errorf("logs = %+v, want only the success entry", m.logs)
	}

	m.verbose = true
	m = update(t, m, ProgressMsg{Event: retag.ProgressEvent{Message: "Up to date: c.mp3", Level: retag.LevelVerbose}})
	if len(m.logs) != 2 {
		t.Errorf("verbose entries should be kept in verbose mode, logs = %+v", m.logs)
	}
}

func TestModel_LogsAreCapped(t *testing.T) {
	m := NewModel(config.DefaultSettings())
	for i := 0; i < maxLogs+5; i++ {
		m = update(t, m, ProgressMsg{Event: retag.ProgressEvent{Message: "x", Level: retag.LevelInfo}})
	}
	if len(m.logs) != maxLogs {
		t.Errorf("len(logs) = %d, want %d", len(m.logs), maxLogs)
	}
}

func TestModel_RunDone(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want State
	}{
		{"success", nil, StateComplete},
		{"failure", errors.New("cannot write tag"), StateError},
		{"cancelled", context.Canceled, StateError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModel(config.DefaultSettings())
			m.state = StateRunning

			m = update(t, m, RunDoneMsg{Summary: change.Summary{Changed: 1, Total: 2}, Err: tt.err})
			if m.state != tt.want {
				t.Errorf("state = %v, want %v", m.state, tt.want)
			}
			if m.summary.Total != 2 {
				t.Errorf("summary = %+v, want the reported summary", m.summary)
			}
		})
	}
}

func TestModel_Reset(t *testing.T) {
	m := NewModel(config.DefaultSettings())
	m.state = StateComplete
	m.logs = []LogEntry{{Message: "x"}}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	if m.state != StateInput || len(m.logs) != 0 {
		t.Errorf("after reset state = %v, logs = %d, want fresh input state", m.state, len(m.logs))
	}
}
