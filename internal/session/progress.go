package session

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"woodfalls/internal/creature"
)

var (
	ErrNotSeen       = errors.New("species has not been seen")
	ErrNoItem        = errors.New("no such item left")
	ErrNegativeCount = errors.New("item count must not be negative")
)

// Starting bag of a new game.
var defaultInventory = map[string]int{
	"Potion":   5,
	"Pokeball": 5,
}

// Progress is one player's ledger: species seen and caught, the party, and
// the item bag. A species can only be caught after it has been seen.
//
// A flow mutates Progress from a single goroutine, but other readers (the
// web Pokedex) may look at it concurrently, so access is locked.
type Progress struct {
	mu        sync.RWMutex
	seen      map[string]bool
	seenOrder []string
	caught    map[string]bool
	party     []*creature.Creature
	inventory map[string]int
}

// New returns an empty ledger with the starting bag.
func New() *Progress {
	inv := make(map[string]int, len(defaultInventory))
	for k, v := range defaultInventory {
		inv[k] = v
	}
	return &Progress{
		seen:      map[string]bool{},
		caught:    map[string]bool{},
		inventory: inv,
	}
}

// MarkSeen records a sighting. Marking twice is a no-op.
func (p *Progress) MarkSeen(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.seen[name] {
		return
	}
	p.seen[name] = true
	p.seenOrder = append(p.seenOrder, name)
}

// MarkCaught records a catch. It fails with ErrNotSeen if the species was
// never seen.
func (p *Progress) MarkCaught(name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.seen[name] {
		return fmt.Errorf("catch %s: %w", name, ErrNotSeen)
	}
	p.caught[name] = true
	return nil
}

func (p *Progress) HasSeen(name string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.seen[name]
}

func (p *Progress) HasCaught(name string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.caught[name]
}

// Seen lists seen species in the order they were first seen.
func (p *Progress) Seen() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]string(nil), p.seenOrder...)
}

// Caught lists caught species alphabetically.
func (p *Progress) Caught() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]string, 0, len(p.caught))
	for n := range p.caught {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// AddToParty appends c to the party. The ledger owns c from here on.
func (p *Progress) AddToParty(c *creature.Creature) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.party = append(p.party, c)
}

// Party returns the party in join order.
func (p *Progress) Party() []*creature.Creature {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]*creature.Creature(nil), p.party...)
}

// Inventory returns a copy of the item bag.
func (p *Progress) Inventory() map[string]int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make(map[string]int, len(p.inventory))
	for k, v := range p.inventory {
		out[k] = v
	}
	return out
}

func (p *Progress) ItemCount(item string) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.inventory[item]
}

// AddItem adds n of item to the bag.
func (p *Progress) AddItem(item string, n int) error {
	if n < 0 {
		return fmt.Errorf("add %d %s: %w", n, item, ErrNegativeCount)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.inventory[item] += n
	return nil
}

// UseItem removes one of item from the bag.
func (p *Progress) UseItem(item string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.inventory[item] <= 0 {
		return fmt.Errorf("use %s: %w", item, ErrNoItem)
	}
	p.inventory[item]--
	return nil
}
