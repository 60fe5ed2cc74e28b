// Package viz renders fit summaries for the terminal.
//
// The package complements the PNG figure with two quick text views:
//
//   - [RenderSummary]: a lipgloss table of RMSE per quantity and component
//   - [Residuals]: an asciigraph plot of prediction minus reference per series
//
// Colours follow the current [Theme]; output piped to a file is rendered
// without escape codes.
package viz
