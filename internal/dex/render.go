package dex

import (
	"fmt"
	"strings"
)

// Progress is the part of a player's ledger the Pokedex reads.
type Progress interface {
	HasSeen(name string) bool
	HasCaught(name string) bool
}

// Discovery is how far the player has got with a species.
type Discovery int

const (
	Unknown Discovery = iota
	Seen
	Caught
)

func (d Discovery) String() string {
	switch d {
	case Seen:
		return "Seen"
	case Caught:
		return "Caught"
	default:
		return "???"
	}
}

// Row is one projected dex line.
type Row struct {
	Entry
	Discovery Discovery
}

func (r Row) String() string {
	if r.Discovery == Unknown {
		return fmt.Sprintf("%d. ???", r.Number)
	}
	return fmt.Sprintf("%d. %s [%s]", r.Number, r.Name, r.Discovery)
}

// Rows projects the catalog through p in dex order. A species only counts as
// caught if it has also been seen.
func Rows(c *Catalog, p Progress) []Row {
	rows := make([]Row, 0, len(c.entries))
	for _, e := range c.entries {
		d := Unknown
		if p.HasSeen(e.Name) {
			d = Seen
			if p.HasCaught(e.Name) {
				d = Caught
			}
		}
		rows = append(rows, Row{Entry: e, Discovery: d})
	}
	return rows
}

// Lines renders Rows as text, one line per dex entry.
func Lines(c *Catalog, p Progress) []string {
	rows := Rows(c, p)
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.String()
	}
	return out
}

// Render is the full Pokedex screen text.
func Render(c *Catalog, p Progress) string {
	var b strings.Builder
	b.WriteString("Pokédex:\n")
	for _, l := range Lines(c, p) {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return b.String()
}

const hpBarSegments = 10

// HPBar draws a ten-segment health bar, e.g. "HP: [█████░░░░░]".
func HPBar(current, max int) string {
	filled := 0
	if max > 0 {
		filled = current * hpBarSegments / max
	}
	if filled < 0 {
		filled = 0
	}
	if filled > hpBarSegments {
		filled = hpBarSegments
	}
	return "HP: [" + strings.Repeat("█", filled) + strings.Repeat("░", hpBarSegments-filled) + "]"
}
