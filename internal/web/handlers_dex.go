package web

import (
	"encoding/json"
	"net/http"

	"woodfalls/internal/dex"
)

func (s *Server) handleDex(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	p, _ := s.getOrCreateProgress(r.Context(), w, r)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write([]byte(dex.Render(s.Catalog, p)))
}

func (s *Server) handleDexPDF(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	p, _ := s.getOrCreateProgress(r.Context(), w, r)
	pdf, err := dex.ExportPDF(s.Catalog, p, p.Party(), "Wood Falls")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="pokedex.pdf"`)
	if _, err := w.Write(pdf); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

type partyMember struct {
	Name      string   `json:"name"`
	Type      string   `json:"type"`
	Level     int      `json:"level"`
	CurrentHP int      `json:"currentHP"`
	MaxHP     int      `json:"maxHP"`
	Attack    int      `json:"attack"`
	Defense   int      `json:"defense"`
	Speed     int      `json:"speed"`
	Moves     []string `json:"moves"`
	Status    string   `json:"status,omitempty"`
}

type partyView struct {
	Party     []partyMember  `json:"party"`
	Inventory map[string]int `json:"inventory"`
}

func (s *Server) handleParty(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	p, _ := s.getOrCreateProgress(r.Context(), w, r)
	view := partyView{Party: []partyMember{}, Inventory: p.Inventory()}
	for _, c := range p.Party() {
		m := partyMember{
			Name:      c.Name(),
			Type:      c.Type(),
			Level:     c.Level(),
			CurrentHP: c.CurrentHP(),
			MaxHP:     c.MaxHP(),
			Attack:    c.Attack(),
			Defense:   c.Defense(),
			Speed:     c.Speed(),
			Status:    c.Status(),
		}
		for _, mv := range c.Moves() {
			m.Moves = append(m.Moves, mv.Name)
		}
		view.Party = append(view.Party, m)
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
