// Package viz renders learning runs in the terminal: lipgloss-styled
// tables and sparklines, a bubbletea view that follows trials as they
// finish, and PNG plots via gonum/plot.
package viz
