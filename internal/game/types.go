package game

import (
	"context"
	"errors"

	"woodfalls/internal/creature"
)

var (
	ErrInvalidChoice = errors.New("choice out of range")
	ErrNoRival       = errors.New("no rival for starter")
)

// Presenter is the display side of a game flow. RevealText returns once the
// text has been fully shown. PresentChoices blocks until the player picks one
// of labels and returns its index. Evolution notices are fire-and-forget.
type Presenter interface {
	RevealText(ctx context.Context, text string) error
	PresentChoices(ctx context.Context, labels []string) (int, error)
	creature.Notifier
}

// Choice is a labelled option and what to do when it is picked.
type Choice struct {
	Label    string
	OnSelect func(ctx context.Context) error
}

// BattleFunc runs a battle between the player's creature and the rival's.
type BattleFunc func(ctx context.Context, player, rival *creature.Creature) error

// Narrative lines.
const (
	IntroText       = "You wake up in Wood Falls, the morning sun warms your room."
	ChooseText      = "Choose your starter Pokémon:"
	ChosenFormat    = "You chose %s!"
	RivalName       = "John Johnson"
	RivalPickFormat = "Your rival %s picked %s!"
	ChallengeFormat = "%s challenges you to battle!"
	BackLabel       = "Back"
)

// Starters is the fixed starter roster, in the order offered.
var Starters = []string{"Rabgrass", "Loonwave", "Squirrelcamp"}

// rivals maps each starter to the rival's counter-pick.
var rivals = map[string]string{
	"Rabgrass":     "Loonwave",
	"Loonwave":     "Squirrelcamp",
	"Squirrelcamp": "Rabgrass",
}

// RivalFor returns the species the rival picks against starter.
func RivalFor(starter string) (string, bool) {
	r, ok := rivals[starter]
	return r, ok
}
