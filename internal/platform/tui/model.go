package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/moto-rush/internal/core"
	"github.com/vovakirdan/moto-rush/internal/run"
	"github.com/vovakirdan/moto-rush/internal/sim"
)

// Model is the Bubble Tea model driving a run machine. It owns the tick
// loop, key mapping and the name-entry text input; everything else lives
// in the machine.
type Model struct {
	machine *run.Machine
	screen  *core.Screen
	config  core.RuntimeConfig
	input   core.InputFrame
	keys    *KeyMapper
	name    textinput.Model

	paused   bool
	quitting bool

	toast     string
	toastLeft float64
}

// NewModel creates a model for the given machine.
func NewModel(machine *run.Machine, cfg core.RuntimeConfig) Model {
	name := textinput.New()
	name.Placeholder = "your name"
	name.CharLimit = 12
	name.Width = 16

	return Model{
		machine: machine,
		screen:  core.NewScreen(cfg.ScreenW, cfg.ScreenH-2),
		config:  cfg,
		input:   core.NewInputFrame(),
		keys:    NewKeyMapper(),
		name:    name,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		// Two rows are reserved for the HUD and the help line
		m.screen.Resize(msg.Width, core.Max(1, msg.Height-2))
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input. While the name-entry screen is
// active, keys go to the text input instead of the action map.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.machine.State() == run.StateNameEntry {
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			m.machine.SubmitName(strings.TrimSpace(m.name.Value()))
			return m, nil
		case "esc":
			m.machine.CancelNameEntry()
			return m, nil
		}
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(msg)
		return m, cmd
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}
	if action == core.ActionPause && m.machine.State() == run.StatePlaying {
		m.paused = !m.paused
		return m, nil
	}
	if action != core.ActionNone {
		m.input.Set(action)
	}
	return m, nil
}

// handleTick advances the machine one fixed step.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	before := m.machine.State()

	if !m.paused {
		dt := 1.0 / float64(m.config.TickRate)
		m.machine.Update(dt, m.input)
		m.applyEvents(m.machine.ConsumeEvents())
		if m.toastLeft > 0 {
			m.toastLeft -= dt
		}
	}
	m.input.Clear()

	// Arm the text input the moment name entry opens
	if before != run.StateNameEntry && m.machine.State() == run.StateNameEntry {
		m.name.SetValue("")
		m.name.Focus()
	}
	if before == run.StatePlaying && m.machine.State() != run.StatePlaying {
		m.paused = false
	}

	return m, tickCmd(m.config.TickRate)
}

// applyEvents turns this frame's simulation events into transient HUD
// feedback. Only the latest noteworthy event is shown.
func (m *Model) applyEvents(events []sim.Event) {
	for _, e := range events {
		switch e.Kind {
		case sim.EventPickupCollected:
			if e.Pickup == sim.PickupShield {
				m.toast = "shield up"
			} else {
				m.toast = "+ammo"
			}
			m.toastLeft = 1.2
		case sim.EventExplosion:
			if m.toastLeft <= 0 {
				m.toast = "boom"
				m.toastLeft = 0.5
			}
		}
	}
}

// View renders the current state.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.machine.State() {
	case run.StateTitle:
		return m.viewTitle()
	case run.StateSongSelect:
		return m.viewSongSelect()
	case run.StateTutorial:
		return m.viewTutorial()
	case run.StateNameEntry:
		return m.viewNameEntry()
	case run.StateDead:
		return m.viewDead()
	default:
		return m.viewGame()
	}
}

// Run starts the Bubble Tea program with the given machine.
func Run(machine *run.Machine, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewModel(machine, cfg),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
