// Package tui is an interactive explorer: the batch table for an editable
// input, and a plot of any single function against its reference.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/fxmath/internal/analysis"
	"github.com/san-kum/fxmath/internal/batch"
	"github.com/san-kum/fxmath/internal/config"
	"github.com/san-kum/fxmath/internal/fixed"
	"github.com/san-kum/fxmath/internal/fxmath"
	"github.com/san-kum/fxmath/internal/viz"
)

type state int

const (
	stateTable state = iota
	stateFunction
)

type field int

const (
	fieldInput field = iota
	fieldBase
)

type model struct {
	state   state
	cfg     config.Config
	formats []fixed.Info
	format  int

	report *batch.Report
	sweep  *analysis.SweepResult
	err    error
	cursor int // row of batch.Plan shown in the function view

	editing bool
	field   field
	editBuf string

	width  int
	height int
}

func newModel(cfg *config.Config) model {
	m := model{
		cfg:     *cfg,
		formats: fixed.Formats(),
		width:   100,
		height:  40,
	}
	for i, f := range m.formats {
		if strings.EqualFold(f.Alias, cfg.Format) || strings.EqualFold(f.Name, cfg.Format) {
			m.format = i
		}
	}
	m.cfg.Format = m.formats[m.format].Alias
	m.recompute()
	return m
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recompute()
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if m.editing {
		return m.editKey(msg), nil
	}
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab":
		if m.state == stateTable {
			m.state = stateFunction
		} else {
			m.state = stateTable
		}
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(batch.Plan)-1 {
			m.cursor++
		}
	case "left", "h":
		m.cfg.Input -= 0.1
	case "right", "l":
		m.cfg.Input += 0.1
	case "f":
		m.format = (m.format + 1) % len(m.formats)
		m.cfg.Format = m.formats[m.format].Alias
	case "+", "=":
		m.cfg.Iterations = cordicClamp(m.cfg.Iterations + 1)
	case "-", "_":
		m.cfg.Iterations = cordicClamp(m.cfg.Iterations - 1)
	case "t":
		viz.CurrentTheme = viz.NextTheme(viz.CurrentTheme.Name)
		return m, nil
	case "enter", "x":
		m.editing, m.field = true, fieldInput
		m.editBuf = strconv.FormatFloat(m.cfg.Input, 'g', -1, 64)
		return m, nil
	case "b":
		m.editing, m.field = true, fieldBase
		m.editBuf = strconv.FormatFloat(m.cfg.Base, 'g', -1, 64)
		return m, nil
	default:
		return m, nil
	}
	m.recompute()
	return m, nil
}

func (m model) editKey(msg tea.KeyMsg) model {
	switch msg.String() {
	case "enter":
		v, err := strconv.ParseFloat(m.editBuf, 64)
		m.editing, m.editBuf = false, ""
		if err != nil {
			m.err = fmt.Errorf("not a number: %w", err)
			return m
		}
		if m.field == fieldBase {
			m.cfg.Base = v
		} else {
			m.cfg.Input = v
		}
		m.recompute()
	case "esc":
		m.editing, m.editBuf = false, ""
	case "backspace":
		if len(m.editBuf) > 0 {
			m.editBuf = m.editBuf[:len(m.editBuf)-1]
		}
	default:
		if s := msg.String(); len(s) == 1 {
			c := s[0]
			if (c >= '0' && c <= '9') || c == '.' || c == '-' || c == 'e' {
				m.editBuf += s
			}
		}
	}
	return m
}

func cordicClamp(n int) int {
	return min(max(n, 1), 62)
}

// recompute refreshes the batch report and the sweep of the selected row.
func (m *model) recompute() {
	m.err = nil
	r, err := batch.Run(context.Background(), m.cfg.Input, m.cfg.BatchOptions())
	if err != nil {
		m.err = err
		return
	}
	m.report = r

	spec := batch.Plan[m.cursor]
	start, limit := rangeFor(spec.Op)
	res, err := analysis.Sweep(analysis.SweepConfig{
		Format:     m.cfg.Format,
		Op:         spec.Op,
		Strategy:   spec.Strategy,
		Iterations: m.cfg.Iterations,
		Base:       m.cfg.Base,
		Start:      start,
		Limit:      limit,
		Steps:      max(m.canvasWidth()*2, 2),
	})
	if err != nil {
		m.err = err
		return
	}
	m.sweep = res
}

// rangeFor takes the plotting range of the op's first preset.
func rangeFor(op fxmath.Op) (float64, float64) {
	names := config.ListPresets(op.String())
	if len(names) == 0 {
		return -4, 4
	}
	p := config.GetPreset(op.String(), names[0])
	return p.Sweep.Start, p.Sweep.Limit
}

func (m model) canvasWidth() int {
	return max(m.width-8, 20)
}

func (m model) canvasHeight() int {
	return max(m.height-14, 6)
}

func (m model) View() string {
	var b strings.Builder
	st := viz.Current()

	b.WriteString(st.Title.Render("f x m a t h") + "  ")
	b.WriteString(st.Label.Render("format ") + st.Value.Render(m.formats[m.format].Name) + "  ")
	b.WriteString(st.Label.Render("x ") + st.Value.Render(m.valueOr(fieldInput, m.cfg.Input)) + "  ")
	b.WriteString(st.Label.Render("base ") + st.Value.Render(m.valueOr(fieldBase, m.cfg.Base)) + "  ")
	b.WriteString(st.Label.Render("N ") + st.Value.Render(strconv.Itoa(m.cfg.Iterations)) + "\n\n")

	if m.err != nil {
		b.WriteString(st.Fail.Render(m.err.Error()) + "\n\n")
	}

	switch m.state {
	case stateTable:
		if m.report != nil {
			b.WriteString(viz.Report(m.report) + "\n")
		}
	case stateFunction:
		b.WriteString(m.viewFunction())
	}

	b.WriteString("\n" + st.Key.Render("←→ x ±0.1  enter edit x  b base  f format  +/- N  ↑↓ function  tab view  t theme  q quit") + "\n")
	return b.String()
}

func (m model) valueOr(f field, v float64) string {
	if m.editing && m.field == f {
		return m.editBuf + "▋"
	}
	return strconv.FormatFloat(v, 'g', 8, 64)
}

func (m model) viewFunction() string {
	if m.sweep == nil {
		return ""
	}
	st := viz.Current()
	var b strings.Builder

	got := make([]float64, len(m.sweep.Samples))
	want := make([]float64, len(m.sweep.Samples))
	for i, s := range m.sweep.Samples {
		got[i], want[i] = s.Got, s.Want
		if s.Skipped || s.Overflow {
			got[i] = want[i]
		}
	}
	lo, hi := viz.Bounds(want)

	ref := viz.NewCanvas(m.canvasWidth(), m.canvasHeight())
	ref.Plot(want, lo, hi)
	fx := viz.NewCanvas(m.canvasWidth(), m.canvasHeight())
	fx.Plot(got, lo, hi)

	c := m.sweep.Config
	b.WriteString(st.Value.Render(batch.Plan[m.cursor].Name))
	b.WriteString(st.Muted.Render(fmt.Sprintf("  [%g, %g]  y in [%.3g, %.3g]", c.Start, c.Limit, lo, hi)) + "\n")

	refLines := strings.Split(ref.String(), "\n")
	fxLines := strings.Split(fx.String(), "\n")
	for i := range fxLines {
		if fxLines[i] == "" {
			continue
		}
		b.WriteString("  " + overlay(refLines[i], fxLines[i], st) + "\n")
	}

	s := m.sweep.Stats
	b.WriteString(fmt.Sprintf("  %s %s  %s %s  %s %s  %s %d\n",
		st.Label.Render("max"), st.Value.Render(fmt.Sprintf("%.3e", s.MaxAbs)),
		st.Label.Render("rms"), st.Value.Render(fmt.Sprintf("%.3e", s.RMS)),
		st.Label.Render("ulp"), st.Value.Render(fmt.Sprintf("%.1f", s.MaxULP)),
		st.Label.Render("undefined"), s.Skipped))
	b.WriteString("  " + viz.Sparkline(absErrors(m.sweep), m.canvasWidth()) + "\n")
	return b.String()
}

// overlay colors cells with the reference muted and the fixed-point curve
// highlighted.
func overlay(ref, fx string, st viz.Styles) string {
	r, f := []rune(ref), []rune(fx)
	var b strings.Builder
	for i := range f {
		switch {
		case f[i] != 0x2800:
			b.WriteString(st.Value.Render(string(f[i] | r[i])))
		case r[i] != 0x2800:
			b.WriteString(st.Muted.Render(string(r[i])))
		default:
			b.WriteRune(f[i])
		}
	}
	return b.String()
}

func absErrors(r *analysis.SweepResult) []float64 {
	errs := r.Errors()
	for i, e := range errs {
		if e < 0 {
			errs[i] = -e
		}
	}
	return errs
}

func RunInteractive(cfg *config.Config) error {
	p := tea.NewProgram(newModel(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
