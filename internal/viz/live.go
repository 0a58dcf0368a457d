package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/ilc/internal/ilc"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

// TrialMsg carries one finished trial into the view.
type TrialMsg ilc.TrialRecord

// DoneMsg signals the end of the run.
type DoneMsg struct {
	Err error
}

// Model is the live trial monitor. The run itself executes in a separate
// goroutine and feeds trial records through the events channel.
type Model struct {
	system string
	trials int
	events <-chan tea.Msg

	records []ilc.TrialRecord
	means   []float64
	done    bool
	err     error
}

func NewModel(system string, trials int, events <-chan tea.Msg) Model {
	return Model{system: system, trials: trials, events: events}
}

func waitForEvent(events <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg { return <-events }
}

func (m Model) Init() tea.Cmd {
	return waitForEvent(m.events)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	case TrialMsg:
		m.records = append(m.records, ilc.TrialRecord(msg))
		m.means = append(m.means, msg.MeanAbsError)
		return m, waitForEvent(m.events)
	case DoneMsg:
		m.done = true
		m.err = msg.Err
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render("ILC "+strings.ToUpper(m.system)) + "\n")

	status := fmt.Sprintf("RUNNING trial %d/%d", len(m.records)+1, m.trials)
	if m.done {
		status = "COMPLETE"
		if m.err != nil {
			status = failStyle.Render("FAILED: " + m.err.Error())
		}
	} else if len(m.records) >= m.trials {
		status = "FINISHING"
	}
	s.WriteString(status + "\n")
	s.WriteString(ProgressBar(float64(len(m.records))/float64(m.trials), 40) + "\n\n")

	for _, rec := range m.records {
		s.WriteString(labelStyle.Render(fmt.Sprintf("trial %d", rec.Trial)))
		s.WriteString(valueStyle.Render(fmt.Sprintf("mean %.6f  max %.6f", rec.MeanAbsError, rec.MaxAbsError)))
		s.WriteString("\n")
	}

	if len(m.means) > 1 {
		chart := asciigraph.Plot(m.means,
			asciigraph.Height(8),
			asciigraph.Width(50),
			asciigraph.Caption("mean abs error per trial"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	if m.done && m.err == nil && len(m.records) > 0 {
		final := m.records[len(m.records)-1]
		s.WriteString("\n" + labelStyle.Render("final pos"))
		s.WriteString(Sparkline(column(final.Positions, 0), 50) + "\n")
	}

	s.WriteString(helpStyle.Render("q: quit"))
	return s.String()
}

func column(rows [][]float64, j int) []float64 {
	col := make([]float64, 0, len(rows))
	for _, row := range rows {
		if j < len(row) {
			col = append(col, row[j])
		}
	}
	return col
}
