package web

import (
	"context"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"woodfalls/internal/game"
	"woodfalls/internal/session"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// frame is the JSON message exchanged over /ws. The server sends "text",
// "choices", "evolution", "error" and "done"; the client sends "choose".
type frame struct {
	Type    string   `json:"type"`
	Text    string   `json:"text,omitempty"`
	Options []string `json:"options,omitempty"`
	Index   int      `json:"index"`
}

// wsPresenter shows a game flow to a websocket client. The client does the
// typewriter effect; a text frame counts as revealed once it is written.
type wsPresenter struct {
	conn *websocket.Conn
}

func (p *wsPresenter) RevealText(_ context.Context, text string) error {
	return p.conn.WriteJSON(frame{Type: "text", Text: text})
}

func (p *wsPresenter) PresentChoices(ctx context.Context, labels []string) (int, error) {
	if err := p.conn.WriteJSON(frame{Type: "choices", Options: labels}); err != nil {
		return 0, err
	}
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		var in frame
		if err := p.conn.ReadJSON(&in); err != nil {
			return 0, err
		}
		if in.Type == "choose" && in.Index >= 0 && in.Index < len(labels) {
			return in.Index, nil
		}
		if err := p.conn.WriteJSON(frame{Type: "error", Text: "pick one of the offered options"}); err != nil {
			return 0, err
		}
	}
}

func (p *wsPresenter) NotifyEvolution(text string) {
	_ = p.conn.WriteJSON(frame{Type: "evolution", Text: text})
}

// GET /ws
//
// Each connection plays a new game from the intro to the rival's challenge,
// then shows the Pokedex. The ledger is stored under the session cookie so
// /dex and /party can read it.
func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	id := s.sessionID(r)
	hdr := http.Header{}
	if id == "" {
		id = s.Store.NewID()
		hdr.Add("Set-Cookie", sessionCookie(id).String())
	}

	conn, err := upgrader.Upgrade(w, r, hdr)
	if err != nil {
		log.Println("upgrade:", err)
		return
	}
	defer conn.Close()

	ctx := r.Context()
	progress := session.New()
	if err := s.Store.Put(ctx, id, progress); err != nil {
		log.Printf("session %s: %v", id, err)
		_ = conn.WriteJSON(frame{Type: "error", Text: "failed to save state"})
		return
	}

	ctrl := game.NewController(s.Catalog, progress, &wsPresenter{conn: conn}, game.WithBattle(s.Battle))
	if err := ctrl.StartGame(ctx); err != nil {
		log.Printf("session %s: game ended: %v", id, err)
		_ = conn.WriteJSON(frame{Type: "error", Text: err.Error()})
		return
	}
	if err := ctrl.ShowPokedex(ctx); err != nil {
		log.Printf("session %s: pokedex: %v", id, err)
		return
	}
	_ = conn.WriteJSON(frame{Type: "done"})
}
