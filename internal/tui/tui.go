package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/despensa-hq/despensa/pkg/assistant"
)

const (
	recipesField = iota
	ingredientsField
	fieldCount
)

// stateMsg carries a controller state transition into the bubbletea loop.
type stateMsg struct {
	state assistant.UiState
}

// Model renders the controller's state and forwards the generate action.
// It never mutates the state itself; the controller owns it.
type Model struct {
	ctrl   *assistant.Controller
	states <-chan assistant.UiState
	unsub  func()
	inputs []textinput.Model
	focus  int
	state  assistant.UiState
}

// New builds the TUI model around an existing controller.
func New(ctrl *assistant.Controller) Model {
	recipes := textinput.New()
	recipes.Placeholder = "Tacos, Paella"
	recipes.Prompt = "Recetas: "
	recipes.Focus()

	ingredients := textinput.New()
	ingredients.Placeholder = "Queso, Arroz"
	ingredients.Prompt = "Ingredientes en casa: "

	states, unsub := ctrl.Subscribe()

	return Model{
		ctrl:   ctrl,
		states: states,
		unsub:  unsub,
		inputs: []textinput.Model{recipes, ingredients},
		focus:  recipesField,
		state:  ctrl.State(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForState())
}

// waitForState blocks on the subscription until the controller transitions.
func (m Model) waitForState() tea.Cmd {
	states := m.states
	return func() tea.Msg {
		s, ok := <-states
		if !ok {
			return nil
		}
		return stateMsg{state: s}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateMsg:
		m.state = msg.state
		return m, m.waitForState()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.unsub()
			return m, tea.Quit
		case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
			return m.cycleFocus(msg), nil
		case tea.KeyEnter:
			m.ctrl.GenerateShoppingList(m.inputs[recipesField].Value(), m.inputs[ingredientsField].Value())
			return m, nil
		}
	}

	var cmds []tea.Cmd
	for i := range m.inputs {
		var cmd tea.Cmd
		m.inputs[i], cmd = m.inputs[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) cycleFocus(msg tea.KeyMsg) Model {
	if msg.Type == tea.KeyShiftTab || msg.Type == tea.KeyUp {
		m.focus--
	} else {
		m.focus++
	}
	if m.focus < 0 {
		m.focus = fieldCount - 1
	}
	if m.focus >= fieldCount {
		m.focus = 0
	}

	for i := range m.inputs {
		if i == m.focus {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return m
}
