// Package term presents a game flow in a terminal: narrative is typed out a
// character at a time and choices are read from the keyboard.
package term

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// DefaultDelay is the pause between typed characters.
const DefaultDelay = 15 * time.Millisecond

var ErrAborted = errors.New("aborted by player")

// Presenter implements game.Presenter on a reader/writer pair.
type Presenter struct {
	in    io.Reader
	lines *bufio.Reader // nil in picker mode
	out   io.Writer
	delay time.Duration
	tui   bool
}

type Option func(*Presenter)

// WithDelay sets the per-character typing delay. Zero prints text at once.
func WithDelay(d time.Duration) Option {
	return func(p *Presenter) { p.delay = d }
}

// WithPicker makes PresentChoices use an arrow-key menu instead of numbered
// prompts. The menu reads keys straight from in.
func WithPicker() Option {
	return func(p *Presenter) { p.tui = true }
}

func NewPresenter(in io.Reader, out io.Writer, opts ...Option) *Presenter {
	p := &Presenter{in: in, out: out, delay: DefaultDelay}
	for _, o := range opts {
		o(p)
	}
	// The picker reads in itself; a line reader would buffer keys away from it.
	if !p.tui {
		p.lines = bufio.NewReader(in)
	}
	return p
}

// RevealText types text out and ends the line.
func (p *Presenter) RevealText(ctx context.Context, text string) error {
	for _, r := range text {
		if _, err := io.WriteString(p.out, string(r)); err != nil {
			return err
		}
		if err := p.pause(ctx); err != nil {
			return err
		}
	}
	_, err := io.WriteString(p.out, "\n")
	return err
}

func (p *Presenter) pause(ctx context.Context) error {
	if p.delay <= 0 {
		return nil
	}
	t := time.NewTimer(p.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// PresentChoices lists labels and waits for a valid pick. Bad input is
// reported and asked again; end of input is an error.
func (p *Presenter) PresentChoices(ctx context.Context, labels []string) (int, error) {
	if len(labels) == 0 {
		// Nothing to pick from: wait for the caller to give up.
		<-ctx.Done()
		return 0, ctx.Err()
	}
	if p.tui {
		return runPicker(ctx, p.in, p.out, labels)
	}
	for i, l := range labels {
		fmt.Fprintf(p.out, "  %s %s\n", Key.Render(strconv.Itoa(i+1)+")"), l)
	}
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		fmt.Fprint(p.out, Muted.Render("> "))
		line, err := p.lines.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return 0, err
		}
		if n, convErr := strconv.Atoi(strings.TrimSpace(line)); convErr == nil && n >= 1 && n <= len(labels) {
			return n - 1, nil
		}
		if err != nil {
			return 0, ErrAborted
		}
		fmt.Fprintln(p.out, Warn.Render(fmt.Sprintf("%s pick a number from 1 to %d", IconWarn, len(labels))))
	}
}

// NotifyEvolution prints the evolution notice straight away.
func (p *Presenter) NotifyEvolution(text string) {
	fmt.Fprintln(p.out, Gold.Render(IconSparkle+" "+text))
}
