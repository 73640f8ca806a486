package term

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"woodfalls/internal/dex"
	"woodfalls/internal/game"
	"woodfalls/internal/session"
)

var _ game.Presenter = (*Presenter)(nil)

func TestRevealText(t *testing.T) {
	var out bytes.Buffer
	p := NewPresenter(strings.NewReader(""), &out, WithDelay(0))
	if err := p.RevealText(context.Background(), "You chose Loonwave!"); err != nil {
		t.Fatalf("RevealText: %v", err)
	}
	if out.String() != "You chose Loonwave!\n" {
		t.Errorf("Unexpected output %q", out.String())
	}
}

func TestRevealText_TakesTime(t *testing.T) {
	var out bytes.Buffer
	p := NewPresenter(strings.NewReader(""), &out, WithDelay(2*time.Millisecond))
	start := time.Now()
	if err := p.RevealText(context.Background(), "abcde"); err != nil {
		t.Fatalf("RevealText: %v", err)
	}
	if el := time.Since(start); el < 10*time.Millisecond {
		t.Errorf("Expected typing to take at least 10ms, took %v", el)
	}
}

func TestRevealText_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := NewPresenter(strings.NewReader(""), &bytes.Buffer{}, WithDelay(time.Second))
	if err := p.RevealText(ctx, "slow"); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestPresentChoices_RetriesBadInput(t *testing.T) {
	var out bytes.Buffer
	p := NewPresenter(strings.NewReader("zero\n7\n2\n"), &out, WithDelay(0))
	i, err := p.PresentChoices(context.Background(), []string{"A", "B", "C"})
	if err != nil {
		t.Fatalf("PresentChoices: %v", err)
	}
	if i != 1 {
		t.Errorf("Expected index 1, got %d", i)
	}
	if n := strings.Count(out.String(), "pick a number from 1 to 3"); n != 2 {
		t.Errorf("Expected 2 warnings, got %d:\n%s", n, out.String())
	}
	for _, l := range []string{"A", "B", "C"} {
		if !strings.Contains(out.String(), l) {
			t.Errorf("Option %s not listed", l)
		}
	}
}

func TestPresentChoices_LastLineWithoutNewline(t *testing.T) {
	p := NewPresenter(strings.NewReader("3"), &bytes.Buffer{}, WithDelay(0))
	i, err := p.PresentChoices(context.Background(), []string{"A", "B", "C"})
	if err != nil || i != 2 {
		t.Errorf("Expected 2, nil; got %d, %v", i, err)
	}
}

func TestPresentChoices_EOF(t *testing.T) {
	p := NewPresenter(strings.NewReader("nope\n"), &bytes.Buffer{}, WithDelay(0))
	if _, err := p.PresentChoices(context.Background(), []string{"A"}); !errors.Is(err, ErrAborted) {
		t.Errorf("Expected ErrAborted, got %v", err)
	}
}

func TestPresentChoices_NoOptionsStalls(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	p := NewPresenter(strings.NewReader("1\n"), &bytes.Buffer{}, WithDelay(0))
	if _, err := p.PresentChoices(ctx, nil); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected the flow to stall until the deadline, got %v", err)
	}
}

func TestNotifyEvolution(t *testing.T) {
	var out bytes.Buffer
	p := NewPresenter(strings.NewReader(""), &out)
	p.NotifyEvolution("Rabgrass is evolving into Bloombit!")
	if !strings.Contains(out.String(), "Rabgrass is evolving into Bloombit!") {
		t.Errorf("Unexpected output %q", out.String())
	}
}

func TestPresenter_FullFlow(t *testing.T) {
	var out bytes.Buffer
	p := NewPresenter(strings.NewReader("1\n1\n"), &out, WithDelay(0))
	c := game.NewController(dex.Default(), session.New(), p)
	ctx := context.Background()
	if err := c.StartGame(ctx); err != nil {
		t.Fatalf("StartGame: %v", err)
	}
	if err := c.ShowPokedex(ctx); err != nil {
		t.Fatalf("ShowPokedex: %v", err)
	}
	for _, want := range []string{
		"Rabgrass (Grass) Lv5",
		"You chose Rabgrass!",
		"Your rival John Johnson picked Loonwave!",
		"4. Loonwave [Seen]",
		"Back",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("Output missing %q", want)
		}
	}
}

func TestPicker_Update(t *testing.T) {
	m := newPicker([]string{"A", "B", "C"})

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(pickerModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(pickerModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(pickerModel)
	if m.cursor != 2 {
		t.Fatalf("Expected cursor clamped at 2, got %d", m.cursor)
	}
	if !strings.Contains(m.View(), "> C") {
		t.Errorf("Expected C highlighted:\n%s", m.View())
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(pickerModel)
	if m.chosen != 2 || cmd == nil {
		t.Errorf("Expected pick 2 and quit, got %d", m.chosen)
	}
}

func TestPicker_DigitAndAbort(t *testing.T) {
	m := newPicker([]string{"A", "B"})
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}})
	if got := next.(pickerModel).chosen; got != 1 {
		t.Errorf("Expected digit 2 to pick index 1, got %d", got)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(pickerModel).aborted {
		t.Error("Expected esc to abort")
	}
}

func TestPresentChoices_PickerReadsInput(t *testing.T) {
	p := NewPresenter(strings.NewReader("2"), &bytes.Buffer{}, WithDelay(0), WithPicker())
	if p.lines != nil {
		t.Fatal("Picker mode must not wrap input in a line reader")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	i, err := p.PresentChoices(ctx, []string{"A", "B"})
	if err != nil {
		t.Fatalf("PresentChoices: %v", err)
	}
	if i != 1 {
		t.Errorf("Expected index 1, got %d", i)
	}
}

func TestCreatureCard(t *testing.T) {
	c, err := dex.Default().Spawn("Rabgrass")
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	card := CreatureCard(c)
	for _, want := range []string{"Rabgrass (Grass) Lv5", "50/50", "Evolves into Bloombit at Lv15", "Growl", "attack -1"} {
		if !strings.Contains(card, want) {
			t.Errorf("Card missing %q:\n%s", want, card)
		}
	}
}
