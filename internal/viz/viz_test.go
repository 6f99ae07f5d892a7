package viz

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/fxmath/internal/analysis"
	"github.com/san-kum/fxmath/internal/batch"
	"github.com/san-kum/fxmath/internal/fxmath"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(-1, 0)
	c.Set(4, 0)

	if got, want := c.Grid[0][0], rune(0x2801); got != want {
		t.Errorf("Grid[0][0] = %U, want %U", got, want)
	}
	if got, want := c.Grid[0][1], rune(0x2880); got != want {
		t.Errorf("Grid[0][1] = %U, want %U", got, want)
	}
}

func TestCanvasPlot(t *testing.T) {
	c := NewCanvas(10, 3)
	c.Plot([]float64{0, 1, math.NaN(), 1, 0}, 0, 1)

	lines := strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(lines))
	}
	if strings.Trim(lines[0], "⠀") == "" {
		t.Error("expected the maximum on the top row")
	}
	if strings.Trim(lines[2], "⠀") == "" {
		t.Error("expected the minimum on the bottom row")
	}
}

func TestBounds(t *testing.T) {
	tests := []struct {
		name   string
		series [][]float64
		lo, hi float64
	}{
		{"empty", nil, -1, 1},
		{"flat", [][]float64{{2, 2}}, 1, 3},
		{"skips nan", [][]float64{{math.NaN(), -3}, {5, math.Inf(1)}}, -3, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := Bounds(tt.series...)
			if lo != tt.lo || hi != tt.hi {
				t.Errorf("Bounds() = %v, %v, want %v, %v", lo, hi, tt.lo, tt.hi)
			}
		})
	}
}

func TestReportRows(t *testing.T) {
	r, err := batch.Run(context.Background(), -0.5, batch.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	rows := ReportRows(r)
	if len(rows) != len(batch.Plan) {
		t.Fatalf("expected %d rows, got %d", len(batch.Plan), len(rows))
	}
	for i, row := range rows {
		if row[0] != batch.Plan[i].Name {
			t.Errorf("row %d = %s, want %s", i, row[0], batch.Plan[i].Name)
		}
		if row[0] == "sqrt" && row[4] != "domain" {
			t.Errorf("sqrt(-0.5) status = %s, want domain", row[4])
		}
	}

	out := Report(r)
	if !strings.Contains(out, "atan_cordic") || !strings.Contains(out, "Q16_16") {
		t.Error("report is missing rows or header")
	}
}

func TestPlots(t *testing.T) {
	res, err := analysis.Sweep(analysis.SweepConfig{
		Format: "M", Op: fxmath.OpSin, Strategy: fxmath.LUT, Iterations: 16,
		Start: -3, Limit: 3, Steps: 64,
	})
	if err != nil {
		t.Fatal(err)
	}
	size := PlotSize{Width: 40, Height: 6}
	for name, out := range map[string]string{
		"sweep":    SweepPlot(res, size),
		"function": FunctionPlot(res, size),
		"spectrum": SpectrumPlot(analysis.PowerSpectrum(res.Errors()), size),
	} {
		if !strings.Contains(out, "\n") {
			t.Errorf("%s plot is empty", name)
		}
	}

	pts, err := analysis.Convergence(analysis.SweepConfig{
		Format: "M", Op: fxmath.OpAtan, Strategy: fxmath.CORDIC,
		Start: -2, Limit: 2, Steps: 32,
	}, 12)
	if err != nil {
		t.Fatal(err)
	}
	if out := ConvergencePlot(pts, size); !strings.Contains(out, "iterations 1..12") {
		t.Errorf("convergence caption missing: %q", out)
	}
	if SweepPlot(&analysis.SweepResult{}, size) != "" {
		t.Error("expected empty plot for empty sweep")
	}
}

func TestNextTheme(t *testing.T) {
	if got := NextTheme("minimal").Name; got != "cyberpunk" {
		t.Errorf("NextTheme(minimal) = %s, want cyberpunk", got)
	}
	if got := GetTheme("nope").Name; got != "cyberpunk" {
		t.Errorf("GetTheme(nope) = %s, want cyberpunk", got)
	}
}
