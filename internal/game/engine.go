// Package game sequences a play session: the intro, starter selection, the
// rival's pick and the hand-off to battle.
package game

import (
	"context"
	"fmt"

	"woodfalls/internal/creature"
	"woodfalls/internal/dex"
	"woodfalls/internal/session"
)

// Controller drives one player's session. It is not safe for concurrent use;
// each step runs after the previous one has finished.
type Controller struct {
	Catalog  *dex.Catalog
	Progress *session.Progress

	p      Presenter
	battle BattleFunc
	rival  *creature.Creature
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithBattle sets the battle hand-off. Without it the battle is a no-op.
func WithBattle(f BattleFunc) ControllerOption {
	return func(c *Controller) { c.battle = f }
}

func NewController(cat *dex.Catalog, progress *session.Progress, p Presenter, opts ...ControllerOption) *Controller {
	c := &Controller{Catalog: cat, Progress: progress, p: p}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Rival returns the rival's creature once it has been assigned.
func (c *Controller) Rival() *creature.Creature { return c.rival }

// StartGame plays the intro and moves on to starter selection.
func (c *Controller) StartGame(ctx context.Context) error {
	if err := c.p.RevealText(ctx, IntroText); err != nil {
		return fmt.Errorf("intro: %w", err)
	}
	return c.ChooseStarter(ctx)
}

// ChooseStarter offers the three starters and, once one is picked, adds a
// fresh copy to the party and continues to the rival's pick.
func (c *Controller) ChooseStarter(ctx context.Context) error {
	if err := c.p.RevealText(ctx, ChooseText); err != nil {
		return fmt.Errorf("starter prompt: %w", err)
	}

	choices := make([]Choice, 0, len(Starters))
	for _, name := range Starters {
		name := name
		// Labels come from a throwaway instance so the offered stats match
		// what the player gets.
		preview, err := c.Catalog.Spawn(name)
		if err != nil {
			return fmt.Errorf("starter %s: %w", name, err)
		}
		choices = append(choices, Choice{
			Label: preview.Label(),
			OnSelect: func(ctx context.Context) error {
				return c.pickStarter(ctx, name)
			},
		})
	}
	return c.choose(ctx, choices)
}

func (c *Controller) pickStarter(ctx context.Context, name string) error {
	starter, err := c.Catalog.Spawn(name)
	if err != nil {
		return fmt.Errorf("starter %s: %w", name, err)
	}
	c.Progress.AddToParty(starter)
	c.Progress.MarkSeen(starter.Name())
	if err := c.p.RevealText(ctx, fmt.Sprintf(ChosenFormat, starter.Name())); err != nil {
		return fmt.Errorf("starter confirmation: %w", err)
	}
	return c.StartRivalBattle(ctx, starter)
}

// StartRivalBattle gives the rival the counter-pick to starter, announces the
// challenge and hands off to the battle.
func (c *Controller) StartRivalBattle(ctx context.Context, starter *creature.Creature) error {
	name, ok := RivalFor(starter.Name())
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoRival, starter.Name())
	}
	rival, err := c.Catalog.Spawn(name)
	if err != nil {
		return fmt.Errorf("rival %s: %w", name, err)
	}
	c.rival = rival
	c.Progress.MarkSeen(rival.Name())

	if err := c.p.RevealText(ctx, fmt.Sprintf(RivalPickFormat, RivalName, rival.Name())); err != nil {
		return fmt.Errorf("rival pick: %w", err)
	}
	if err := c.p.RevealText(ctx, fmt.Sprintf(ChallengeFormat, RivalName)); err != nil {
		return fmt.Errorf("rival challenge: %w", err)
	}
	if c.battle == nil {
		return nil
	}
	return c.battle(ctx, starter, rival)
}

// ShowPokedex reveals the Pokedex and waits for the player to go back.
func (c *Controller) ShowPokedex(ctx context.Context) error {
	if err := c.p.RevealText(ctx, dex.Render(c.Catalog, c.Progress)); err != nil {
		return fmt.Errorf("pokedex: %w", err)
	}
	return c.choose(ctx, []Choice{{
		Label:    BackLabel,
		OnSelect: func(context.Context) error { return nil },
	}})
}

// LevelUp raises party member i by one level. Learned moves are announced and
// an evolution is reported through the presenter.
func (c *Controller) LevelUp(ctx context.Context, i int) error {
	party := c.Progress.Party()
	if i < 0 || i >= len(party) {
		return fmt.Errorf("party slot %d: %w", i, ErrInvalidChoice)
	}
	cr := party[i]
	before := cr.Name()
	learned := cr.LevelUp(c.p)
	if cr.Name() != before {
		c.Progress.MarkSeen(cr.Name())
	}
	for _, m := range learned {
		if err := c.p.RevealText(ctx, fmt.Sprintf("%s learned %s!", before, m.Name)); err != nil {
			return fmt.Errorf("level up: %w", err)
		}
	}
	return nil
}

func (c *Controller) choose(ctx context.Context, choices []Choice) error {
	labels := make([]string, len(choices))
	for i, ch := range choices {
		labels[i] = ch.Label
	}
	i, err := c.p.PresentChoices(ctx, labels)
	if err != nil {
		return fmt.Errorf("choice: %w", err)
	}
	if i < 0 || i >= len(choices) {
		return fmt.Errorf("%w: %d of %d", ErrInvalidChoice, i, len(choices))
	}
	return choices[i].OnSelect(ctx)
}
