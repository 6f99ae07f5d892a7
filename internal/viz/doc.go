// Package viz renders fxmath results for the terminal.
//
//   - [Report]: batch results as a styled table, failures highlighted
//   - [SweepPlot], [ConvergencePlot], [SpectrumPlot]: asciigraph line plots
//   - [Canvas]: Braille pixel canvas for comparing a function with its reference
//
// Colors come from the current [Theme]; [SetTheme] switches it.
package viz
