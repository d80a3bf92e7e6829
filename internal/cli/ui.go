package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan  = lipgloss.Color("36")  // Teal - primary
	colorGreen = lipgloss.Color("35")  // Green - accepted
	colorRed   = lipgloss.Color("167") // Soft red - rejected
	colorWhite = lipgloss.Color("255") // Bright white - values
	colorDim   = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	styleTitle    = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleAccepted = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	styleRejected = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	styleState    = lipgloss.NewStyle().Foreground(colorWhite)
	styleFinal    = lipgloss.NewStyle().Foreground(colorGreen)
	styleDim      = lipgloss.NewStyle().Foreground(colorDim)
	styleSymbol   = lipgloss.NewStyle().Foreground(colorCyan)
)

// printVerdict prints the accept/reject result of a recognition run.
func printVerdict(accepted bool) {
	if accepted {
		fmt.Println(styleAccepted.Render("accepted"))
	} else {
		fmt.Println(styleRejected.Render("rejected"))
	}
}

// printTrace prints a recognition trace as "q0 -0-> q1 -1-> q2".
// The trace may cover fewer symbols than the input when recognition stopped
// early.
func printTrace(trace []string, input []string) {
	if len(trace) == 0 {
		return
	}
	var b strings.Builder
	b.WriteString(styleState.Render(trace[0]))
	for i := 1; i < len(trace); i++ {
		b.WriteString(styleDim.Render(" -"))
		b.WriteString(styleSymbol.Render(input[i-1]))
		b.WriteString(styleDim.Render("-> "))
		b.WriteString(styleState.Render(trace[i]))
	}
	fmt.Println(b.String())
}

// printSummary prints the defining tuple of an automaton definition.
func printSummary(name string, states, symbols, finals []string, initial string) {
	if name != "" {
		fmt.Println(styleTitle.Render(name))
	}
	fmt.Printf("%s %s\n", styleDim.Render("states: "), styleState.Render(strings.Join(states, " ")))
	fmt.Printf("%s %s\n", styleDim.Render("symbols:"), styleSymbol.Render(strings.Join(symbols, " ")))
	fmt.Printf("%s %s\n", styleDim.Render("initial:"), styleState.Render(initial))
	fmt.Printf("%s %s\n", styleDim.Render("finals: "), styleFinal.Render(strings.Join(finals, " ")))
}
