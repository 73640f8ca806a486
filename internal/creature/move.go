package creature

import "strings"

// Stat names a combat stat a move can modify.
type Stat string

const (
	StatAttack  Stat = "attack"
	StatDefense Stat = "defense"
	StatSpeed   Stat = "speed"
)

func (s Stat) valid() bool {
	switch s {
	case StatAttack, StatDefense, StatSpeed:
		return true
	default:
		return false
	}
}

// StatChange raises or lowers a stat by Change stages.
type StatChange struct {
	Stat   Stat `yaml:"stat"`
	Change int  `yaml:"change"`
}

// Effect is the optional secondary payload of a move. Exactly one of
// StatChange or Status is set.
type Effect struct {
	StatChange *StatChange `yaml:"statChange"`
	Status     string      `yaml:"status"`
}

func (e *Effect) validate() error {
	hasStat := e.StatChange != nil
	hasStatus := strings.TrimSpace(e.Status) != ""
	switch {
	case hasStat && hasStatus:
		return invalidMove("effect", "sets both statChange and status")
	case !hasStat && !hasStatus:
		return invalidMove("effect", "is empty")
	case hasStat && !e.StatChange.Stat.valid():
		return invalidMove("effect.stat", "must be attack, defense or speed")
	}
	return nil
}

// Move is an immutable learnable action. ID is its identity: two moves with
// the same ID are the same move, whatever their names.
type Move struct {
	ID           string
	Name         string
	Type         string
	Power        int
	Effect       *Effect
	LevelLearned int
}

// NewMove validates and returns a move. The effect is copied so later changes
// to the caller's value cannot leak into the move.
func NewMove(id, name, typ string, power int, effect *Effect, levelLearned int) (Move, error) {
	if strings.TrimSpace(id) == "" {
		return Move{}, invalidMove("id", "is required")
	}
	if strings.TrimSpace(name) == "" {
		return Move{}, invalidMove("name", "is required")
	}
	if strings.TrimSpace(typ) == "" {
		return Move{}, invalidMove("type", "is required")
	}
	if power < 0 {
		return Move{}, invalidMove("power", "must not be negative")
	}
	if levelLearned < 1 {
		return Move{}, invalidMove("levelLearned", "must be at least 1")
	}
	if effect != nil {
		if err := effect.validate(); err != nil {
			return Move{}, err
		}
	}
	return Move{
		ID:           id,
		Name:         name,
		Type:         typ,
		Power:        power,
		Effect:       effect.clone(),
		LevelLearned: levelLearned,
	}, nil
}

func (e *Effect) clone() *Effect {
	if e == nil {
		return nil
	}
	cp := *e
	if e.StatChange != nil {
		sc := *e.StatChange
		cp.StatChange = &sc
	}
	return &cp
}

// Clone returns a copy of m that shares no effect data with it.
func (m Move) Clone() Move {
	m.Effect = m.Effect.clone()
	return m
}

// cloneMoves deep-copies a move list.
func cloneMoves(ms []Move) []Move {
	if ms == nil {
		return nil
	}
	out := make([]Move, len(ms))
	for i, m := range ms {
		out[i] = m.Clone()
	}
	return out
}

// IsStatus reports whether the move deals no damage.
func (m Move) IsStatus() bool { return m.Power == 0 }
