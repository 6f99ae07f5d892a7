package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles are derived from a theme on every render so SetTheme takes
// effect immediately.
type Styles struct {
	Title  lipgloss.Style
	Header lipgloss.Style
	Label  lipgloss.Style
	Value  lipgloss.Style
	Muted  lipgloss.Style
	Pass   lipgloss.Style
	Warn   lipgloss.Style
	Fail   lipgloss.Style
	Border lipgloss.Style
	Panel  lipgloss.Style
	Key    lipgloss.Style
}

func StylesFor(t Theme) Styles {
	return Styles{
		Title: lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Text).
			Padding(0, 1),
		Label:  lipgloss.NewStyle().Foreground(t.Muted),
		Value:  lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Muted:  lipgloss.NewStyle().Foreground(t.Muted),
		Pass:   lipgloss.NewStyle().Foreground(t.Success),
		Warn:   lipgloss.NewStyle().Foreground(t.Warning),
		Fail:   lipgloss.NewStyle().Bold(true).Foreground(t.Error),
		Border: lipgloss.NewStyle().Foreground(t.Muted),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(0, 1),
		Key: lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
	}
}

func Current() Styles { return StylesFor(CurrentTheme) }

// Sparkline renders values as block characters, sampled down to width.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}
	st := Current()
	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	step := len(values) / width
	if step < 1 {
		step = 1
	}

	var b strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - lo) / rng
		idx := min(max(int(norm*float64(len(chars)-1)), 0), len(chars)-1)
		c := string(chars[idx])
		switch {
		case norm > 0.7:
			b.WriteString(st.Fail.Render(c))
		case norm > 0.3:
			b.WriteString(st.Warn.Render(c))
		default:
			b.WriteString(st.Pass.Render(c))
		}
	}
	return b.String()
}

// PassBar shows the share of passing entries.
func PassBar(passed, total, width int) string {
	if total <= 0 || width <= 0 {
		return ""
	}
	filled := min(max(passed*width/total, 0), width)
	st := Current()
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	if passed == total {
		return st.Pass.Render(bar)
	}
	return st.Fail.Render(bar)
}

func Separator(width int) string {
	if width < 8 {
		return Current().Muted.Render(strings.Repeat("─", max(width, 0)))
	}
	mid := width / 2
	return Current().Muted.Render(strings.Repeat("─", mid-3) + " ◆ " + strings.Repeat("─", width-mid-3))
}
