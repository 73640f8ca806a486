package web

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"woodfalls/internal/dex"
	"woodfalls/internal/session"
)

func testServer(t *testing.T) (*Server, *session.MemoryStore[*session.Progress]) {
	t.Helper()
	store := session.NewMemoryStore[*session.Progress]()
	return &Server{Catalog: dex.Default(), Store: store}, store
}

func TestHandleIndex(t *testing.T) {
	srv, _ := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)
	if rec.Code != http.StatusFound {
		t.Errorf("Expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/dex" {
		t.Errorf("Expected Location /dex, got %q", loc)
	}
}

func TestHandleIndex_UnknownPath(t *testing.T) {
	srv, _ := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/nope", http.NoBody)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}
}

func TestHandleDex_NewSession(t *testing.T) {
	srv, store := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/dex", http.NoBody)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.HasPrefix(body, "Pokédex:\n1. ???\n") {
		t.Errorf("Unexpected body %q", body)
	}
	if strings.Contains(body, "[Seen]") {
		t.Error("Fresh session should have seen nothing")
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != cookieName {
		t.Fatalf("Expected session cookie, got %v", cookies)
	}
	if _, ok, _ := store.Get(context.Background(), cookies[0].Value); !ok {
		t.Error("Expected session to be stored")
	}
}

func TestHandleDex_ExistingSession(t *testing.T) {
	srv, store := testServer(t)
	p := session.New()
	p.MarkSeen("Flambug")
	if err := p.MarkCaught("Flambug"); err != nil {
		t.Fatalf("MarkCaught: %v", err)
	}
	_ = store.Put(context.Background(), "sid", p)

	req := httptest.NewRequest(http.MethodGet, "/dex", http.NoBody)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: "sid"})
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)
	if !strings.Contains(rec.Body.String(), "13. Flambug [Caught]") {
		t.Errorf("Expected Flambug caught, got %q", rec.Body.String())
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("Existing session should not get a new cookie")
	}
}

func TestHandleDex_MethodNotAllowed(t *testing.T) {
	srv, _ := testServer(t)
	for _, path := range []string{"/dex", "/dex.pdf", "/party"} {
		req := httptest.NewRequest(http.MethodPost, path, http.NoBody)
		rec := httptest.NewRecorder()
		srv.Routes().ServeHTTP(rec, req)
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s: expected 405, got %d", path, rec.Code)
		}
	}
}

func TestHandleDexPDF(t *testing.T) {
	srv, _ := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/dex.pdf", http.NoBody)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Expected application/pdf, got %q", ct)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Error("Body is not a PDF")
	}
}

type wsClient struct {
	t    *testing.T
	conn *websocket.Conn
}

func (c *wsClient) expect(typ string) frame {
	c.t.Helper()
	var f frame
	if err := c.conn.ReadJSON(&f); err != nil {
		c.t.Fatalf("read %s frame: %v", typ, err)
	}
	if f.Type != typ {
		c.t.Fatalf("Expected %s frame, got %+v", typ, f)
	}
	return f
}

func (c *wsClient) choose(i int) {
	c.t.Helper()
	if err := c.conn.WriteJSON(frame{Type: "choose", Index: i}); err != nil {
		c.t.Fatalf("write choose: %v", err)
	}
}

func dial(t *testing.T, ts *httptest.Server, hdr http.Header) (*wsClient, *http.Response) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, hdr)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return &wsClient{t: t, conn: conn}, resp
}

func TestHandlePlay_FullFlow(t *testing.T) {
	srv, store := testServer(t)
	ts := httptest.NewServer(srv.Routes())
	defer ts.Close()

	c, resp := dial(t, ts, nil)

	if f := c.expect("text"); !strings.HasPrefix(f.Text, "You wake up in Wood Falls") {
		t.Errorf("Unexpected intro %q", f.Text)
	}
	c.expect("text")
	ch := c.expect("choices")
	want := []string{"Rabgrass (Grass) Lv5", "Loonwave (Water) Lv5", "Squirrelcamp (Fire) Lv5"}
	if !reflect.DeepEqual(ch.Options, want) {
		t.Errorf("Expected options %q, got %q", want, ch.Options)
	}

	c.choose(7)
	c.expect("error")
	c.choose(2)

	for _, wantText := range []string{
		"You chose Squirrelcamp!",
		"Your rival John Johnson picked Rabgrass!",
		"John Johnson challenges you to battle!",
	} {
		if f := c.expect("text"); f.Text != wantText {
			t.Errorf("Expected %q, got %q", wantText, f.Text)
		}
	}
	if f := c.expect("text"); !strings.Contains(f.Text, "6. Squirrelcamp [Seen]") {
		t.Errorf("Expected Pokedex text, got %q", f.Text)
	}
	if f := c.expect("choices"); !reflect.DeepEqual(f.Options, []string{"Back"}) {
		t.Errorf("Expected Back option, got %q", f.Options)
	}
	c.choose(0)
	c.expect("done")

	var sid string
	for _, ck := range resp.Cookies() {
		if ck.Name == cookieName {
			sid = ck.Value
		}
	}
	if sid == "" {
		t.Fatal("Expected session cookie on upgrade response")
	}
	p, ok, _ := store.Get(context.Background(), sid)
	if !ok {
		t.Fatal("Expected stored ledger")
	}
	if got := p.Seen(); !reflect.DeepEqual(got, []string{"Squirrelcamp", "Rabgrass"}) {
		t.Errorf("Expected seen [Squirrelcamp Rabgrass], got %v", got)
	}
	if len(p.Caught()) != 0 {
		t.Errorf("Expected nothing caught, got %v", p.Caught())
	}

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/party", http.NoBody)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: sid})
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET /party: %v", err)
	}
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)
	var view partyView
	if err := json.Unmarshal(body, &view); err != nil {
		t.Fatalf("decode party: %v (%s)", err, body)
	}
	if len(view.Party) != 1 || view.Party[0].Name != "Squirrelcamp" || view.Party[0].Speed != 16 {
		t.Errorf("Unexpected party %+v", view.Party)
	}
	if view.Inventory["Pokeball"] != 5 {
		t.Errorf("Unexpected inventory %v", view.Inventory)
	}
}

func TestHandlePlay_ReusesCookie(t *testing.T) {
	srv, store := testServer(t)
	ts := httptest.NewServer(srv.Routes())
	defer ts.Close()

	hdr := http.Header{}
	hdr.Add("Cookie", (&http.Cookie{Name: cookieName, Value: "known"}).String())
	c, resp := dial(t, ts, hdr)
	if len(resp.Cookies()) != 0 {
		t.Error("Known session should not get a new cookie")
	}
	c.expect("text")
	c.expect("text")
	c.expect("choices")
	c.choose(0)
	c.expect("text")
	if f := c.expect("text"); f.Text != "Your rival John Johnson picked Loonwave!" {
		t.Errorf("Unexpected rival line %q", f.Text)
	}

	p, ok, _ := store.Get(context.Background(), "known")
	if !ok || !p.HasSeen("Rabgrass") {
		t.Error("Expected the ledger under the existing session ID")
	}
}
