package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/fxmath/internal/batch"
	"github.com/san-kum/fxmath/internal/config"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m model, keys ...string) model {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(model)
	}
	return m
}

func TestNewModel(t *testing.T) {
	m := newModel(config.DefaultConfig())
	if m.err != nil {
		t.Fatalf("unexpected error: %v", m.err)
	}
	if m.report == nil || len(m.report.Entries) != len(batch.Plan) {
		t.Fatal("expected a full batch report")
	}
	if m.formats[m.format].Alias != "M" {
		t.Errorf("format = %s, want M", m.formats[m.format].Alias)
	}
}

func TestEditInput(t *testing.T) {
	m := newModel(config.DefaultConfig())
	m = send(m, "enter")
	if !m.editing {
		t.Fatal("expected edit mode")
	}
	m.editBuf = ""
	m = send(m, "2", ".", "5", "x", "enter")
	if m.editing {
		t.Fatal("expected edit mode to end")
	}
	if m.cfg.Input != 2.5 {
		t.Errorf("input = %v, want 2.5", m.cfg.Input)
	}
	if m.report.Input != 2.5 {
		t.Errorf("report input = %v, want 2.5", m.report.Input)
	}
}

func TestKeys(t *testing.T) {
	m := newModel(config.DefaultConfig())
	n := m.cfg.Iterations

	m = send(m, "+", "+", "-")
	if m.cfg.Iterations != n+1 {
		t.Errorf("iterations = %d, want %d", m.cfg.Iterations, n+1)
	}

	m = send(m, "f")
	if m.cfg.Format == "M" {
		t.Error("expected format to change")
	}
	if m.report.Format.Alias != m.cfg.Format {
		t.Errorf("report format = %s, want %s", m.report.Format.Alias, m.cfg.Format)
	}

	m = send(m, "tab", "down", "down")
	if m.state != stateFunction || m.cursor != 2 {
		t.Errorf("state = %v cursor = %d", m.state, m.cursor)
	}
	if m.sweep == nil || m.sweep.Config.Op != batch.Plan[2].Op {
		t.Error("expected sweep of the selected function")
	}
	if !strings.Contains(m.View(), batch.Plan[2].Name) {
		t.Error("function view is missing the function name")
	}
}

func TestIterationsClamp(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Iterations = 1
	m := send(newModel(cfg), "-")
	if m.cfg.Iterations != 1 {
		t.Errorf("iterations = %d, want 1", m.cfg.Iterations)
	}
}

func TestBadEdit(t *testing.T) {
	m := newModel(config.DefaultConfig())
	m = send(m, "b")
	m.editBuf = "-"
	m = send(m, "enter")
	if m.err == nil {
		t.Error("expected parse error")
	}
	if m.cfg.Base != config.DefaultBase {
		t.Errorf("base = %v, want unchanged", m.cfg.Base)
	}
}
