package viz

import (
	"fmt"
	"math"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/fxmath/internal/analysis"
	"github.com/san-kum/fxmath/internal/fxmath"
)

// PlotSize is the graph area in terminal cells.
type PlotSize struct {
	Width, Height int
}

var DefaultPlotSize = PlotSize{Width: 80, Height: 12}

func (s PlotSize) options(caption string) []asciigraph.Option {
	return []asciigraph.Option{
		asciigraph.Width(s.Width),
		asciigraph.Height(s.Height),
		asciigraph.Caption(caption),
	}
}

func sweepCaption(r *analysis.SweepResult) string {
	c := r.Config
	return fmt.Sprintf("%s %s N=%d  [%g, %g]", fxmath.Name(c.Op, c.Strategy), c.Format, c.Iterations, c.Start, c.Limit)
}

// SweepPlot plots the signed error of a sweep.
func SweepPlot(r *analysis.SweepResult, size PlotSize) string {
	errs := r.Errors()
	if len(errs) == 0 {
		return ""
	}
	opts := append(size.options("error of "+sweepCaption(r)), asciigraph.Precision(6))
	return asciigraph.Plot(errs, opts...)
}

// FunctionPlot overlays the fixed-point result on the reference.
// Points without a defined value are drawn as zero.
func FunctionPlot(r *analysis.SweepResult, size PlotSize) string {
	if len(r.Samples) == 0 {
		return ""
	}
	got := make([]float64, len(r.Samples))
	want := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		if !s.Skipped && !math.IsNaN(s.Err) {
			got[i], want[i] = s.Got, s.Want
		}
	}
	opts := append(size.options(sweepCaption(r)+"  (result, reference)"),
		asciigraph.SeriesColors(asciigraph.Cyan, asciigraph.Yellow))
	return asciigraph.PlotMany([][]float64{got, want}, opts...)
}

// ConvergencePlot plots log10 of the max and rms error against N.
func ConvergencePlot(points []analysis.Point, size PlotSize) string {
	if len(points) == 0 {
		return ""
	}
	maxErr := make([]float64, len(points))
	rms := make([]float64, len(points))
	for i, p := range points {
		maxErr[i] = log10(p.MaxAbs)
		rms[i] = log10(p.RMS)
	}
	caption := fmt.Sprintf("log10 error vs iterations 1..%d  (max, rms)", points[len(points)-1].N)
	opts := append(size.options(caption),
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.Green),
		asciigraph.Precision(1))
	return asciigraph.PlotMany([][]float64{maxErr, rms}, opts...)
}

// SpectrumPlot plots a power spectrum in decibels.
func SpectrumPlot(ps []float64, size PlotSize) string {
	if len(ps) == 0 {
		return ""
	}
	db := make([]float64, len(ps))
	for i, p := range ps {
		db[i] = 10 * log10(p)
	}
	return asciigraph.Plot(db, size.options("error power spectrum (dB)")...)
}

// log10 keeps exact zeros plottable.
func log10(v float64) float64 {
	if v <= 0 || math.IsNaN(v) {
		return -20
	}
	return math.Max(math.Log10(v), -20)
}
