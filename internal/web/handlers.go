package web

import (
	"context"
	"log"
	"net/http"

	"woodfalls/internal/dex"
	"woodfalls/internal/game"
	"woodfalls/internal/session"
)

type Server struct {
	Catalog *dex.Catalog
	Store   session.Store[*session.Progress]
	// Battle runs after the rival's challenge. Nil means no battle.
	Battle game.BattleFunc
}

const cookieName = "woodfalls_sid"

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)

	mux.HandleFunc("/ws", s.handlePlay)
	mux.HandleFunc("/dex", s.handleDex)
	mux.HandleFunc("/dex.pdf", s.handleDexPDF)
	mux.HandleFunc("/party", s.handleParty)
	return mux
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, "/dex", http.StatusFound)
}

// getOrCreateProgress returns the caller's ledger, starting a new session
// (and setting its cookie) when there is none.
func (s *Server) getOrCreateProgress(ctx context.Context, w http.ResponseWriter, r *http.Request) (*session.Progress, string) {
	id := s.sessionID(r)
	if id == "" {
		id = s.Store.NewID()
		http.SetCookie(w, sessionCookie(id))
	}
	p, ok, err := s.Store.Get(ctx, id)
	if err != nil {
		log.Printf("session %s: %v", id, err)
	}
	if !ok || p == nil {
		p = session.New()
		if err := s.Store.Put(ctx, id, p); err != nil {
			log.Printf("session %s: %v", id, err)
		}
	}
	return p, id
}

func (s *Server) sessionID(r *http.Request) string {
	c, err := r.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

func sessionCookie(id string) *http.Cookie {
	return &http.Cookie{
		Name:     cookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
