package term

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"woodfalls/internal/creature"
	"woodfalls/internal/dex"
)

const (
	IconSparkle = "✨"
	IconBall    = "◓"
	IconWarn    = "⚠️"
	IconError   = "🧨"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

// CreatureCard renders a party member or template preview in a panel.
func CreatureCard(c *creature.Creature) string {
	var b strings.Builder
	b.WriteString(Key.Render(c.Label()))
	b.WriteByte('\n')
	hp := dex.HPBar(c.CurrentHP(), c.MaxHP())
	if c.CurrentHP()*2 < c.MaxHP() {
		hp = Warn.Render(hp)
	} else {
		hp = Good.Render(hp)
	}
	fmt.Fprintf(&b, "%s %d/%d\n", hp, c.CurrentHP(), c.MaxHP())
	fmt.Fprintf(&b, "ATK %d  DEF %d  SPD %d", c.Attack(), c.Defense(), c.Speed())
	if ev := c.PendingEvolution(); ev != nil {
		b.WriteByte('\n')
		b.WriteString(Muted.Render(fmt.Sprintf("Evolves into %s at Lv%d", ev.Into, ev.Level)))
	}
	for _, m := range c.Moves() {
		b.WriteByte('\n')
		b.WriteString(moveLine(m))
	}
	return Panel.Render(b.String())
}

func moveLine(m creature.Move) string {
	s := fmt.Sprintf("• %s (%s)", m.Name, m.Type)
	if m.Power > 0 {
		s += fmt.Sprintf(" pow %d", m.Power)
	}
	if m.Effect != nil {
		switch {
		case m.Effect.StatChange != nil:
			s += fmt.Sprintf(" %s %+d", m.Effect.StatChange.Stat, m.Effect.StatChange.Change)
		case m.Effect.Status != "":
			s += " inflicts " + m.Effect.Status
		}
	}
	return s
}

// DiscoveryText colours a dex line by how far the player has got.
func DiscoveryText(r dex.Row) string {
	switch r.Discovery {
	case dex.Caught:
		return Gold.Render(r.String())
	case dex.Seen:
		return Key.Render(r.String())
	default:
		return Muted.Render(r.String())
	}
}
