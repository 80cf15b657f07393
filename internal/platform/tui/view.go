package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/moto-rush/internal/core"
	"github.com/vovakirdan/moto-rush/internal/run"
	"github.com/vovakirdan/moto-rush/internal/sim"
)

var (
	hudStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	hudDimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	rageHudStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// viewGame renders the live simulation: HUD line, road buffer, help line.
func (m Model) viewGame() string {
	m.renderField()

	switch m.machine.State() {
	case run.StateStarting:
		m.renderCountdown()
	case run.StateDying:
		m.renderDeathOverlay()
	}
	if m.paused {
		m.screen.DrawTextCentered(m.screen.Height()/2, " P A U S E D ")
	}

	return m.hudLine() + "\n" + m.screen.String() + "\n" + m.helpLine()
}

// renderField draws the road, entities and warning markers into the
// screen buffer.
func (m Model) renderField() {
	s := m.screen
	s.Clear()

	cfg := m.machine.Config()
	field := m.machine.Field()
	w, h := s.Width(), s.Height()
	lanes := cfg.Road.LaneCount

	laneRows := core.Max(1, h/lanes)
	toCol := func(x float64) int {
		return int(x / cfg.Road.Width * float64(w))
	}
	toRow := func(laneF float64) int {
		return int((laneF + 0.5) * float64(laneRows))
	}

	// Lane separators
	for i := 1; i < lanes; i++ {
		s.DrawHLine(0, i*laneRows, w, '╌')
	}

	field.Obstacles().Each(func(o *sim.Obstacle) {
		col := toCol(o.X)
		row := toRow(float64(o.Lane))
		half := core.Max(1, toCol(o.W)/2)
		if o.Dying {
			s.Set(col, row, '✸')
			return
		}
		switch o.Kind {
		case sim.Barrier:
			for c := col - half; c <= col+half; c++ {
				s.Set(c, row, '█')
			}
		case sim.Vehicle:
			s.Set(col-half, row, '«')
			for c := col - half + 1; c <= col+half; c++ {
				s.Set(c, row, '▓')
			}
		case sim.Hazard:
			for c := col - half; c <= col+half; c++ {
				s.Set(c, row, '▒')
			}
		}
	})

	field.Pickups().Each(func(p *sim.Pickup) {
		glyph := 'A'
		if p.Kind == sim.PickupShield {
			glyph = 'O'
		}
		s.Set(toCol(p.X), toRow(float64(p.Lane)), glyph)
	})

	field.Projectiles().Each(func(p *sim.Projectile) {
		s.Set(toCol(p.X), toRow(float64(p.Lane)), '–')
	})

	field.Explosions().Each(func(e *sim.Explosion) {
		col, row := toCol(e.X), toRow(float64(e.Lane))
		s.Set(col, row, '✶')
		s.Set(col-1, row, '<')
		s.Set(col+1, row, '>')
	})

	// Warning markers at the right edge for obstacles about to enter
	for lane, t := range field.LaneThreats() {
		if !t.Incoming || t.ETA > cfg.Spawning.WarningDuration+cfg.Spawning.VehicleExtra {
			continue
		}
		s.Set(w-1, toRow(float64(lane)), '!')
	}

	// Player
	col := toCol(cfg.Player.X)
	row := toRow(m.machine.LaneF())
	if m.machine.Shield() {
		s.Set(col-2, row, '(')
		s.Set(col+1, row, ')')
	}
	s.Set(col-1, row, '=')
	s.Set(col, row, '>')
}

// renderCountdown draws the pre-run countdown over the road.
func (m Model) renderCountdown() {
	n := int(m.machine.Countdown()) + 1
	m.screen.DrawTextCentered(m.screen.Height()/2, fmt.Sprintf("  %d  ", n))
}

// renderDeathOverlay covers the screen from the top according to the
// machine's overlay value and captions the wreck once mostly covered.
func (m Model) renderDeathOverlay() {
	h := m.screen.Height()
	cover := int(m.machine.Overlay() * float64(h))
	m.screen.FillRect(0, 0, m.screen.Width(), cover, '░')
	if cover >= h/2 {
		m.screen.DrawTextCentered(h/2, "  C R A S H E D  ")
		m.screen.DrawTextCentered(h/2+1, fmt.Sprintf("  score %d  ", m.machine.FinalScore()))
	}
}

// hudLine renders the one-line status bar above the road.
func (m Model) hudLine() string {
	parts := []string{
		hudStyle.Render(fmt.Sprintf("SCORE %d", m.machine.Score())),
	}
	if mult := m.machine.Multiplier(); mult > 1 {
		parts = append(parts, hudStyle.Render(fmt.Sprintf("x%.2f", mult)))
	}
	parts = append(parts, m.rageBar())
	if a := m.machine.Ammo(); a > 0 {
		parts = append(parts, hudDimStyle.Render(fmt.Sprintf("ammo %d", a)))
	}
	if m.machine.Shield() {
		parts = append(parts, hudDimStyle.Render("shield"))
	}
	if m.toastLeft > 0 {
		parts = append(parts, hudStyle.Render(m.toast))
	}
	if c := m.machine.CurrentCourse(); c != nil {
		parts = append(parts, hudDimStyle.Render(
			fmt.Sprintf("%s %.0f/%.0fs", c.Name, m.machine.Playback(), c.DurationS)))
	} else {
		parts = append(parts, hudDimStyle.Render(m.machine.WeekKey()))
	}
	return strings.Join(parts, "  ")
}

// rageBar renders the rage meter as a ten-cell bar.
func (m Model) rageBar() string {
	const cells = 10
	filled := int(m.machine.RageFraction() * cells)
	bar := strings.Repeat("█", filled) + strings.Repeat("·", cells-filled)
	if m.machine.RageActive() {
		return rageHudStyle.Render("RAGE " + bar)
	}
	return hudDimStyle.Render("rage " + bar)
}

func (m Model) helpLine() string {
	return helpStyle.Render("w/s lanes · space slash · f fire · p pause · q quit")
}
