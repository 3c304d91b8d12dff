// Package viz provides a terminal live view of a continuation run.
//
// The driver itself stays strictly sequential: it runs in a feeder goroutine
// and every accepted step is forwarded to the bubbletea program as a
// message. The UI never calls back into the driver.
package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

const (
	graphWidth  = 70
	graphHeight = 8
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

// PointMsg is one accepted continuation step.
type PointMsg struct {
	Step  int
	Lmbda float64
	Norm  float64
	Ds    float64
	Iters int
}

// DoneMsg signals that the run finished, possibly with an error.
type DoneMsg struct {
	Err error
}

// Model is the bubbletea model of the live view.
type Model struct {
	problem string
	points  []PointMsg
	done    bool
	err     error
}

func NewModel(problem string) Model {
	return Model{problem: problem}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case PointMsg:
		m.points = append(m.points, msg)
	case DoneMsg:
		m.done = true
		m.err = msg.Err
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("pacopy live: %s", m.problem)))
	b.WriteByte('\n')

	if len(m.points) == 0 {
		b.WriteString(valueStyle.Render("waiting for first accepted step..."))
		b.WriteString(helpStyle.Render("\nq: quit"))
		return b.String()
	}

	last := m.points[len(m.points)-1]
	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(valueStyle.Render(value))
		b.WriteByte('\n')
	}
	row("step", fmt.Sprintf("%d", last.Step))
	row("lambda", fmt.Sprintf("%.6f", last.Lmbda))
	row("|u|", fmt.Sprintf("%.6f", last.Norm))
	row("ds", fmt.Sprintf("%.3g", last.Ds))
	row("newton iters", fmt.Sprintf("%d", last.Iters))

	lmbdas := make([]float64, len(m.points))
	norms := make([]float64, len(m.points))
	for i, p := range m.points {
		lmbdas[i] = p.Lmbda
		norms[i] = p.Norm
	}
	if len(m.points) >= 2 {
		b.WriteString(graphStyle.Render(asciigraph.Plot(lmbdas,
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption("lambda per step"),
		)))
		b.WriteByte('\n')
		b.WriteString(graphStyle.Render(asciigraph.Plot(norms,
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption("|u| per step"),
		)))
		b.WriteByte('\n')
	}

	if m.done {
		if m.err != nil {
			b.WriteString(errStyle.Render(fmt.Sprintf("halted: %v", m.err)))
		} else {
			b.WriteString(headerStyle.Render("run complete"))
		}
		b.WriteByte('\n')
	}
	b.WriteString(helpStyle.Render("q: quit"))
	return b.String()
}

// Run launches the live view and invokes trace from a feeder goroutine.
// trace must call emit once per accepted step and return when the run ends;
// its error is shown in the view. Run blocks until the user quits.
func Run(problem string, trace func(emit func(PointMsg)) error) error {
	p := tea.NewProgram(NewModel(problem))
	go func() {
		err := trace(func(msg PointMsg) { p.Send(msg) })
		p.Send(DoneMsg{Err: err})
	}()
	_, err := p.Run()
	return err
}
