package web

import (
	"bufio"
	"embed"
	"encoding/json"
	"io"
	"io/fs"
	"log"
	"net"
	"net/http"
	"os"

	"github.com/coder/websocket"

	"github.com/peterkuimelis/magicwound/internal/game"
)

//go:embed static
var staticFiles embed.FS

// CardInfo is the JSON representation of a card for the /api/cards endpoint.
type CardInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Elements    []string `json:"elements"`
	Cost        int      `json:"cost"`
	Rarity      string   `json:"rarity"`
	Type        string   `json:"type"`
	Attack      int      `json:"attack,omitempty"`
	Defense     int      `json:"defense,omitempty"`
	Health      int      `json:"health,omitempty"`
}

// CharacterInfo is the JSON representation of a character for the
// /api/characters endpoint.
type CharacterInfo struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Elements []string `json:"elements"`
	Health   int      `json:"health"`
	Energy   int      `json:"energy"`
	Attack   int      `json:"attack"`
	Defense  int      `json:"defense"`
	Mage     bool     `json:"mage"`
	Ability  string   `json:"ability,omitempty"`
	Passive  string   `json:"passive,omitempty"`
}

// DeckInfo is the JSON representation of a deck for the /api/decks endpoint.
type DeckInfo struct {
	Number     int      `json:"number"`
	Name       string   `json:"name"`
	Type       string   `json:"type"`
	Code       string   `json:"code"`
	Characters []string `json:"characters"`
	Cards      []string `json:"cards"`
}

// Server is the MagicWound web UI server: the card browser API plus a
// websocket bridge into a running TCP battle.
type Server struct {
	catalog   *game.Catalog
	decksFile string
	mux       *http.ServeMux
}

// NewServer creates a new web server backed by the given catalog.
func NewServer(catalog *game.Catalog, decksFile string) *Server {
	s := &Server{
		catalog:   catalog,
		decksFile: decksFile,
		mux:       http.NewServeMux(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	staticFS, _ := fs.Sub(staticFiles, "static")

	s.mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		f, err := staticFS.Open("index.html")
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer f.Close()
		io.Copy(w, f.(io.Reader))
	})

	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	s.mux.HandleFunc("GET /api/cards", s.handleCards)
	s.mux.HandleFunc("GET /api/characters", s.handleCharacters)
	s.mux.HandleFunc("GET /api/decks", s.handleDecks)

	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	var cards []CardInfo
	for _, c := range s.catalog.Cards() {
		ci := CardInfo{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			Elements:    elementNames(c.Elements),
			Cost:        c.Cost,
			Rarity:      c.Rarity.String(),
			Type:        c.Type().String(),
			Attack:      c.Attack,
			Defense:     c.Defense,
			Health:      c.Health,
		}
		cards = append(cards, ci)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cards)
}

func (s *Server) handleCharacters(w http.ResponseWriter, r *http.Request) {
	var chars []CharacterInfo
	for _, ch := range s.catalog.Characters() {
		chars = append(chars, CharacterInfo{
			ID:       ch.ID,
			Name:     ch.Name,
			Elements: elementNames(ch.Elements),
			Health:   ch.Health,
			Energy:   ch.Energy,
			Attack:   ch.Attack,
			Defense:  ch.Defense,
			Mage:     ch.IsMage(),
			Ability:  ch.Ability,
			Passive:  ch.Passive,
		})
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(chars)
}

func (s *Server) handleDecks(w http.ResponseWriter, r *http.Request) {
	data, err := os.ReadFile(s.decksFile)
	if err != nil {
		http.Error(w, "could not read decks file", http.StatusInternalServerError)
		return
	}

	decks, err := parseDeckFileYAML(data, s.catalog)
	if err != nil {
		http.Error(w, "could not parse decks file", http.StatusInternalServerError)
		return
	}

	var infos []DeckInfo
	for i, d := range decks {
		di := DeckInfo{
			Number: i + 1,
			Name:   d.Name,
			Type:   d.Type.String(),
			Code:   d.Code,
		}
		for _, ch := range d.Characters {
			di.Characters = append(di.Characters, ch.Name)
		}
		// Unique card names for display
		seen := make(map[string]bool)
		for _, c := range d.Cards {
			if !seen[c.Name] {
				di.Cards = append(di.Cards, c.Name)
				seen[c.Name] = true
			}
		}
		infos = append(infos, di)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(infos)
}

// handleWebSocket bridges a browser onto the line protocol of a running
// battle: each text frame becomes one protocol line and each protocol line
// becomes one text frame.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		log.Printf("WebSocket accept error: %v", err)
		return
	}
	defer wsConn.CloseNow()

	ctx := r.Context()

	// First frame from the browser names the peer to bridge to.
	_, connectData, err := wsConn.Read(ctx)
	if err != nil {
		log.Printf("WebSocket read connect: %v", err)
		return
	}

	var connectMsg struct {
		Type string `json:"type"`
		Addr string `json:"addr"`
	}
	if err := json.Unmarshal(connectData, &connectMsg); err != nil || connectMsg.Type != "connect" {
		wsConn.Close(websocket.StatusPolicyViolation, "expected connect message")
		return
	}

	tcpConn, err := net.Dial("tcp", connectMsg.Addr)
	if err != nil {
		wsConn.Close(websocket.StatusNormalClosure, "connection failed")
		return
	}
	defer tcpConn.Close()

	done := make(chan struct{})

	// TCP lines to websocket frames
	go func() {
		defer close(done)
		scanner := bufio.NewScanner(tcpConn)
		for scanner.Scan() {
			if err := wsConn.Write(ctx, websocket.MessageText, scanner.Bytes()); err != nil {
				return
			}
		}
	}()

	// Websocket frames to TCP lines
	go func() {
		for {
			_, data, err := wsConn.Read(ctx)
			if err != nil {
				return
			}
			data = append(data, '\n')
			if _, err := tcpConn.Write(data); err != nil {
				return
			}
		}
	}()

	<-done
	wsConn.Close(websocket.StatusNormalClosure, "game ended")
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}

func elementNames(elems []game.Element) []string {
	names := make([]string, 0, len(elems))
	for _, e := range elems {
		names = append(names, e.String())
	}
	return names
}
