package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/moto-rush/internal/run"
)

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	boardRowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	boardTopStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func (m Model) viewTitle() string {
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(m.center(titleStyle.Render("M O T O  R U S H")))
	b.WriteString("\n\n")
	if m.machine.Mode() == run.ModeRhythm {
		b.WriteString(m.center(dimStyle.Render("rhythm mode")))
	} else {
		b.WriteString(m.center(dimStyle.Render("weekly board " + m.machine.WeekKey())))
	}
	b.WriteString("\n\n")
	b.WriteString(m.center("Enter: start"))
	b.WriteString("\n")
	b.WriteString(m.center(dimStyle.Render("q: quit")))
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewSongSelect() string {
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(m.center(titleStyle.Render("SELECT A TRACK")))
	b.WriteString("\n\n")

	for i, c := range m.machine.Courses() {
		line := fmt.Sprintf("  %s  (%s, %.0fs, %.0f bpm)", c.Name, c.Difficulty, c.DurationS, c.BPM)
		if i == m.machine.CourseIdx() {
			line = selectedStyle.Render("> " + strings.TrimLeft(line, " "))
		}
		b.WriteString(m.center(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.center(dimStyle.Render("w/s: navigate · Enter: play · Esc: back")))
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewTutorial() string {
	lines := []string{
		"",
		titleStyle.Render("HOW TO RIDE"),
		"",
		"w / s      switch lanes",
		"space      slash barriers up close",
		"f          fire (needs ammo)",
		"",
		"barriers  █   slash or dodge",
		"vehicles  «▓  dodge; they crush barriers",
		"hazards   ▒   slow you down",
		"pickups   A O  ammo and shield",
		"",
		"melee kills fill the rage meter",
		"",
		dimStyle.Render("Enter: ride"),
	}
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(m.center(l))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewNameEntry() string {
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(m.center(titleStyle.Render(fmt.Sprintf("TOP %d THIS WEEK", m.machine.Rank()))))
	b.WriteString("\n\n")
	b.WriteString(m.center(fmt.Sprintf("score %d", m.machine.FinalScore())))
	b.WriteString("\n\n")
	b.WriteString(m.center("enter your name:"))
	b.WriteString("\n")
	b.WriteString(m.center(m.name.View()))
	b.WriteString("\n\n")
	if m.machine.EmptyConfirmPending() {
		b.WriteString(m.center(errStyle.Render("empty name — Enter again submits as anonymous")))
	} else {
		b.WriteString(m.center(dimStyle.Render("Enter: submit · Esc: skip")))
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewDead() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(m.center(titleStyle.Render("RUN OVER")))
	b.WriteString("\n\n")
	b.WriteString(m.center(fmt.Sprintf("score %d", m.machine.FinalScore())))
	if r := m.machine.Rank(); r > 0 {
		b.WriteString("\n")
		b.WriteString(m.center(dimStyle.Render(fmt.Sprintf("rank #%d this week", r))))
	}
	b.WriteString("\n\n")

	if m.machine.BoardErr() {
		b.WriteString(m.center(errStyle.Render("leaderboard unavailable — local view only")))
		b.WriteString("\n")
	} else {
		b.WriteString(m.center(boardTopStyle.Render(fmt.Sprintf("— top runs %s —", m.machine.WeekKey()))))
		b.WriteString("\n")
		for i, e := range m.machine.Board() {
			name := e.Name
			if name == "" {
				name = "anonymous"
			}
			row := fmt.Sprintf("%2d. %-12s %8d", i+1, name, e.Score)
			if i == 0 {
				b.WriteString(m.center(boardTopStyle.Render(row)))
			} else {
				b.WriteString(m.center(boardRowStyle.Render(row)))
			}
			b.WriteString("\n")
		}
		if len(m.machine.Board()) == 0 {
			b.WriteString(m.center(dimStyle.Render("no runs yet this week")))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.center(dimStyle.Render("r: ride again · Esc: menu · q: quit")))
	b.WriteString("\n")
	return b.String()
}

// center pads a (possibly styled) line to the screen center.
func (m Model) center(text string) string {
	width := m.config.ScreenW
	pad := (width - lipgloss.Width(text)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + text
}
