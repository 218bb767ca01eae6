package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/despensa-hq/despensa/pkg/assistant"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	hintStyle    = lipgloss.NewStyle().Faint(true)
	loadingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	listStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("78")).PaddingLeft(1)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Despensa — asistente de lista de compra"))
	b.WriteString("\n\n")
	for i := range m.inputs {
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.stateView())
	b.WriteString("\n\n")
	b.WriteString(hintStyle.Render("enter: generar · tab: cambiar campo · esc: salir"))
	return b.String()
}

// stateView renders the current controller state. The switch is exhaustive
// over the UiState variants.
func (m Model) stateView() string {
	switch s := m.state.(type) {
	case assistant.Idle:
		return hintStyle.Render("Introduce recetas separadas por comas y pulsa enter.")
	case assistant.Loading:
		return loadingStyle.Render("Generando lista de compra...")
	case assistant.Success:
		return listStyle.Render(s.Text)
	case assistant.Failure:
		return errorStyle.Render("Error: " + s.Message)
	default:
		return ""
	}
}
