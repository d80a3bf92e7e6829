package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/automatalib/automata/pkg/definition"
	"github.com/automatalib/automata/pkg/fa"
	"github.com/automatalib/automata/pkg/fa/dfa"
)

// runStepper starts the interactive recognition debugger: one keypress per
// consumed symbol, with the visited states and the verdict shown live.
func runStepper(def *definition.Definition, input []string) error {
	machine, err := def.ToDFA()
	if err != nil {
		return err
	}
	model := newStepperModel(machine, input)
	_, err = tea.NewProgram(model).Run()
	return err
}

// stepperModel is the bubbletea model for the interactive stepper.
type stepperModel struct {
	machine *dfa.DFA
	input   []string

	pos     int        // symbols consumed so far
	visited []fa.State // states visited so far
	failed  bool       // an undefined transition stopped the run
	done    bool       // all input consumed or failed
}

func newStepperModel(machine *dfa.DFA, input []string) stepperModel {
	return stepperModel{
		machine: machine,
		input:   input,
		visited: []fa.State{machine.InitialState()},
	}
}

// Init implements tea.Model.
func (m stepperModel) Init() tea.Cmd { return nil }

// Update implements tea.Model. Space or enter advances one symbol; q quits.
func (m stepperModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case " ", "enter":
		if m.done {
			return m, tea.Quit
		}
		m = m.step()
	}
	return m, nil
}

// step consumes the next input symbol.
func (m stepperModel) step() stepperModel {
	if m.pos >= len(m.input) {
		m.done = true
		return m
	}
	symbol := fa.Symbol(m.input[m.pos])
	current := m.visited[len(m.visited)-1]
	next, ok := m.machine.Transitions()[current][symbol]
	if !ok {
		m.failed = true
		m.done = true
		return m
	}
	m.visited = append(m.visited, next)
	m.pos++
	if m.pos == len(m.input) {
		m.done = true
	}
	return m
}

// View implements tea.Model.
func (m stepperModel) View() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("recognition stepper"))
	b.WriteString("\n\n")

	// Input with the cursor on the next symbol.
	for i, symbol := range m.input {
		if i == m.pos && !m.done {
			b.WriteString(styleSymbol.Render("[" + symbol + "]"))
		} else {
			b.WriteString(styleDim.Render(symbol))
		}
		b.WriteString(" ")
	}
	b.WriteString("\n\n")

	trace := make([]string, len(m.visited))
	for i, s := range m.visited {
		trace[i] = string(s)
	}
	b.WriteString(styleState.Render(strings.Join(trace, " → ")))
	b.WriteString("\n\n")

	switch {
	case m.failed:
		b.WriteString(styleRejected.Render(fmt.Sprintf("rejected: no transition for %s", m.input[m.pos])))
	case m.done:
		last := m.visited[len(m.visited)-1]
		if m.machine.FinalStates().Contains(last) {
			b.WriteString(styleAccepted.Render("accepted"))
		} else {
			b.WriteString(styleRejected.Render(fmt.Sprintf("rejected: stopped on non-final state %s", last)))
		}
	default:
		b.WriteString(styleDim.Render("space/enter: step · q: quit"))
	}
	b.WriteString("\n")
	return b.String()
}
