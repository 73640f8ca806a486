// Package creature models battlers, their moves, and the level-based rules
// for learning moves and evolving.
package creature

import (
	"fmt"
	"strings"
)

// Fixed one-time bonuses applied when a creature evolves.
const (
	EvolveHPBonus      = 20
	EvolveAttackBonus  = 10
	EvolveDefenseBonus = 10
	EvolveSpeedBonus   = 5
)

// Evolution is a pending level-gated transformation into another species.
type Evolution struct {
	Level int    `yaml:"level"`
	Into  string `yaml:"into"`
}

// Template holds everything needed to build a Creature.
type Template struct {
	Name      string
	Type      string
	Level     int
	MaxHP     int
	Attack    int
	Defense   int
	Speed     int
	Moves     []Move
	Evolution *Evolution
}

// Notifier receives narrative side effects, such as evolution messages.
type Notifier interface {
	NotifyEvolution(text string)
}

// NotifierFunc adapts a plain function to Notifier.
type NotifierFunc func(text string)

func (f NotifierFunc) NotifyEvolution(text string) { f(text) }

// Creature is the mutable state of one battler. The zero value is not usable;
// build one with New.
type Creature struct {
	name      string
	typ       string
	level     int
	maxHP     int
	currentHP int
	attack    int
	defense   int
	speed     int
	pool      []Move
	moves     []Move
	evolution *Evolution
	evolved   bool
	status    string
}

// New validates t and returns a fully healed creature whose active moves are
// the pool moves available at its starting level.
func New(t Template) (*Creature, error) {
	if strings.TrimSpace(t.Name) == "" {
		return nil, invalidCreature("name", "is required")
	}
	if strings.TrimSpace(t.Type) == "" {
		return nil, invalidCreature("type", "is required")
	}
	if t.Level < 1 {
		return nil, invalidCreature("level", "must be at least 1")
	}
	if t.MaxHP < 1 {
		return nil, invalidCreature("maxHP", "must be positive")
	}
	for _, s := range []struct {
		field string
		v     int
	}{{"attack", t.Attack}, {"defense", t.Defense}, {"speed", t.Speed}} {
		if s.v < 1 {
			return nil, invalidCreature(s.field, "must be positive")
		}
	}
	var evo *Evolution
	if t.Evolution != nil {
		if t.Evolution.Level < 1 {
			return nil, invalidCreature("evolution.level", "must be at least 1")
		}
		if strings.TrimSpace(t.Evolution.Into) == "" {
			return nil, invalidCreature("evolution.into", "is required when an evolution level is set")
		}
		e := *t.Evolution
		evo = &e
	}
	for i, m := range t.Moves {
		if m.ID == "" || m.LevelLearned < 1 {
			return nil, invalidCreature(fmt.Sprintf("moves[%d]", i), "is not a valid move")
		}
	}

	c := &Creature{
		name:      t.Name,
		typ:       t.Type,
		level:     t.Level,
		maxHP:     t.MaxHP,
		currentHP: t.MaxHP,
		attack:    t.Attack,
		defense:   t.Defense,
		speed:     t.Speed,
		pool:      cloneMoves(t.Moves),
		evolution: evo,
	}
	c.LearnMoves()
	return c, nil
}

func (c *Creature) Name() string { return c.name }
func (c *Creature) Type() string { return c.typ }
func (c *Creature) Level() int { return c.level }
func (c *Creature) MaxHP() int { return c.maxHP }
func (c *Creature) CurrentHP() int { return c.currentHP }
func (c *Creature) Attack() int { return c.attack }
func (c *Creature) Defense() int { return c.defense }
func (c *Creature) Speed() int { return c.speed }
func (c *Creature) Status() string { return c.status }

// Evolved reports whether the creature has already evolved.
func (c *Creature) Evolved() bool { return c.evolved }

// SetStatus sets the status condition tag; "" clears it.
func (c *Creature) SetStatus(s string) { c.status = s }

// Moves returns a deep copy of the active move list in learn order.
func (c *Creature) Moves() []Move {
	return cloneMoves(c.moves)
}

// PendingEvolution returns the evolution rule that has not fired yet, or nil.
func (c *Creature) PendingEvolution() *Evolution {
	if c.evolution == nil {
		return nil
	}
	e := *c.evolution
	return &e
}

// Label is the one-line summary shown on choice buttons.
func (c *Creature) Label() string {
	return fmt.Sprintf("%s (%s) Lv%d", c.name, c.typ, c.level)
}

// LearnMoves appends every pool move unlocked at the current level that is
// not active yet, keeping pool order, and returns the newly learned moves.
func (c *Creature) LearnMoves() []Move {
	known := make(map[string]bool, len(c.moves))
	for _, m := range c.moves {
		known[m.ID] = true
	}
	var learned []Move
	for _, m := range c.pool {
		if m.LevelLearned > c.level || known[m.ID] {
			continue
		}
		known[m.ID] = true
		c.moves = append(c.moves, m)
		learned = append(learned, m.Clone())
	}
	return learned
}

// LevelUpCheck evolves the creature if its evolution level has been reached.
// The rule is cleared once it fires, so a creature evolves at most once.
// n may be nil.
func (c *Creature) LevelUpCheck(n Notifier) bool {
	if c.evolution == nil || c.level < c.evolution.Level {
		return false
	}
	into := c.evolution.Into
	if n != nil {
		n.NotifyEvolution(fmt.Sprintf("%s is evolving into %s!", c.name, into))
	}
	c.name = into
	c.maxHP += EvolveHPBonus
	c.currentHP = c.maxHP
	c.attack += EvolveAttackBonus
	c.defense += EvolveDefenseBonus
	c.speed += EvolveSpeedBonus
	c.evolution = nil
	c.evolved = true
	return true
}

// LevelUp raises the level by one, learns any unlocked moves and checks for
// evolution. It returns the moves learned on this level.
func (c *Creature) LevelUp(n Notifier) []Move {
	c.level++
	learned := c.LearnMoves()
	c.LevelUpCheck(n)
	return learned
}
