// Package dex holds the species catalog: dex numbering, the stat and move
// templates creatures are spawned from, and the Pokedex projection of a
// player's progress.
package dex

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"

	"woodfalls/internal/creature"
)

var (
	ErrUnknownSpecies  = errors.New("unknown species")
	ErrDuplicateNumber = errors.New("duplicate dex number")
	ErrDuplicateName   = errors.New("duplicate species name")
	ErrNoCatalog       = errors.New("no catalog")
)

//go:embed data/catalog.yaml
var defaultCatalog []byte

// Entry is one row of the dex.
type Entry struct {
	Number int    `yaml:"number"`
	Name   string `yaml:"name"`
}

// Catalog is read-only once built and safe to share between sessions.
type Catalog struct {
	entries []Entry
	byName  map[string]Entry
	species map[string]creature.Template
	order   []string
}

type catalogFile struct {
	Dex     []Entry       `yaml:"dex"`
	Species []speciesSpec `yaml:"species"`
}

type speciesSpec struct {
	Name      string              `yaml:"name"`
	Type      string              `yaml:"type"`
	Level     int                 `yaml:"level"`
	MaxHP     int                 `yaml:"maxHP"`
	Attack    int                 `yaml:"attack"`
	Defense   int                 `yaml:"defense"`
	Speed     int                 `yaml:"speed"`
	Evolution *creature.Evolution `yaml:"evolution"`
	Moves     []moveSpec          `yaml:"moves"`
}

type moveSpec struct {
	ID           string      `yaml:"id"`
	Name         string      `yaml:"name"`
	Type         string      `yaml:"type"`
	Power        int         `yaml:"power"`
	Effect       *effectSpec `yaml:"effect"`
	LevelLearned *int        `yaml:"levelLearned"`
}

// effectSpec mirrors the data format: either {stat, change} or {status}.
type effectSpec struct {
	Stat   string `yaml:"stat"`
	Change int    `yaml:"change"`
	Status string `yaml:"status"`
}

func (e *effectSpec) effect() *creature.Effect {
	if e == nil {
		return nil
	}
	out := &creature.Effect{Status: e.Status}
	if e.Stat != "" {
		out.StatChange = &creature.StatChange{Stat: creature.Stat(e.Stat), Change: e.Change}
	}
	return out
}

// LoadCatalog loads a catalog from a YAML file.
func LoadCatalog(path string) (*Catalog, error) {
	cleanPath := filepath.Clean(path)
	b, err := os.ReadFile(cleanPath) //nolint:gosec // path comes from the operator's --catalog flag
	if err != nil {
		return nil, err
	}
	cat, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cleanPath, err)
	}
	return cat, nil
}

// Default returns the built-in Wood Falls roster. It panics if the embedded
// data is broken.
func Default() *Catalog {
	cat, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("dex: embedded catalog: %v", err))
	}
	return cat
}

// Parse builds a catalog from YAML and validates every entry and template.
func Parse(b []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, err
	}

	cat := &Catalog{
		byName:  map[string]Entry{},
		species: map[string]creature.Template{},
	}
	numbers := map[int]bool{}
	for _, e := range f.Dex {
		if e.Number < 1 {
			return nil, fmt.Errorf("dex entry %q: number must be positive", e.Name)
		}
		if strings.TrimSpace(e.Name) == "" {
			return nil, fmt.Errorf("dex entry %d: name is required", e.Number)
		}
		if numbers[e.Number] {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateNumber, e.Number)
		}
		key := fold(e.Name)
		if _, ok := cat.byName[key]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateName, e.Name)
		}
		numbers[e.Number] = true
		cat.byName[key] = e
		cat.entries = append(cat.entries, e)
	}
	sort.Slice(cat.entries, func(i, j int) bool { return cat.entries[i].Number < cat.entries[j].Number })

	for _, sp := range f.Species {
		tmpl, err := sp.template()
		if err != nil {
			return nil, err
		}
		// Reject broken templates now rather than on first spawn.
		if _, err := creature.New(tmpl); err != nil {
			return nil, fmt.Errorf("species %s: %w", tmpl.Name, err)
		}
		key := fold(tmpl.Name)
		if _, ok := cat.byName[key]; !ok {
			return nil, fmt.Errorf("species %s: %w: not in dex", tmpl.Name, ErrUnknownSpecies)
		}
		if tmpl.Evolution != nil {
			if _, ok := cat.byName[fold(tmpl.Evolution.Into)]; !ok {
				return nil, fmt.Errorf("species %s evolves into %s: %w", tmpl.Name, tmpl.Evolution.Into, ErrUnknownSpecies)
			}
		}
		if _, ok := cat.species[key]; ok {
			return nil, fmt.Errorf("%w: %s has two templates", ErrDuplicateName, tmpl.Name)
		}
		cat.species[key] = tmpl
		cat.order = append(cat.order, tmpl.Name)
	}
	return cat, nil
}

func (sp speciesSpec) template() (creature.Template, error) {
	moves := make([]creature.Move, 0, len(sp.Moves))
	for i, ms := range sp.Moves {
		id := ms.ID
		if id == "" {
			id = fmt.Sprintf("%s/%d", slug(sp.Name), i)
		}
		lvl := 1
		if ms.LevelLearned != nil {
			lvl = *ms.LevelLearned
		}
		m, err := creature.NewMove(id, ms.Name, ms.Type, ms.Power, ms.Effect.effect(), lvl)
		if err != nil {
			return creature.Template{}, fmt.Errorf("species %s move %d: %w", sp.Name, i, err)
		}
		moves = append(moves, m)
	}
	return creature.Template{
		Name:      sp.Name,
		Type:      sp.Type,
		Level:     sp.Level,
		MaxHP:     sp.MaxHP,
		Attack:    sp.Attack,
		Defense:   sp.Defense,
		Speed:     sp.Speed,
		Moves:     moves,
		Evolution: sp.Evolution,
	}, nil
}

// Entries returns the dex in ascending number order.
func (c *Catalog) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}

// Lookup finds a dex entry by name, ignoring case.
func (c *Catalog) Lookup(name string) (Entry, bool) {
	e, ok := c.byName[fold(name)]
	return e, ok
}

// SpeciesNames lists the species that have templates, in catalog order.
func (c *Catalog) SpeciesNames() []string {
	return append([]string(nil), c.order...)
}

// Template returns a deep copy of the named species template.
func (c *Catalog) Template(name string) (creature.Template, bool) {
	t, ok := c.species[fold(name)]
	if !ok {
		return creature.Template{}, false
	}
	moves := make([]creature.Move, len(t.Moves))
	for i, m := range t.Moves {
		moves[i] = m.Clone()
	}
	t.Moves = moves
	if t.Evolution != nil {
		e := *t.Evolution
		t.Evolution = &e
	}
	return t, true
}

// Spawn builds a fresh creature of the named species. Each call returns a
// new instance owned by the caller.
func (c *Catalog) Spawn(name string) (*creature.Creature, error) {
	t, ok := c.Template(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSpecies, name)
	}
	return creature.New(t)
}

func fold(s string) string {
	// Casers keep state, so each call gets its own.
	return cases.Fold().String(strings.TrimSpace(s))
}

func slug(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "-")
}
