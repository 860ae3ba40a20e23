package mcp

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/peterkuimelis/magicwound/internal/game"
	"github.com/peterkuimelis/magicwound/internal/log"
	mwnet "github.com/peterkuimelis/magicwound/internal/net"
)

// GameSession holds one hosted battle: the peer link, the battle, and an
// event buffer drained into tool responses. The session always plays as
// player 0 (the host); the human joins with `mw-cli join` and controls
// player 1 from their own terminal.
type GameSession struct {
	mu      sync.Mutex
	battle  *game.Battle
	session *mwnet.Session
	applier *mwnet.Applier
	logger  *log.MemoryLogger

	localPlayer int
	drained     int // events already handed out
	emotes      []string
	applyErr    error
}

// NewGameSession hosts on the port, waits for the human to join, exchanges
// names and decks, and starts the battle. Blocks until the joiner arrives.
func NewGameSession(decksFile string, deckNumber int, hostName, port string, catalog *game.Catalog) (*GameSession, error) {
	deck, err := game.DeckByNumber(decksFile, deckNumber, catalog)
	if err != nil {
		return nil, fmt.Errorf("load deck: %w", err)
	}

	conn, err := mwnet.Host(port)
	if err != nil {
		return nil, err
	}

	conn.Handshake(hostName)
	theirDeck, err := mwnet.ExchangeDecks(conn, deck, catalog)
	if err != nil {
		conn.Close()
		return nil, err
	}
	seed, err := mwnet.SignalStart(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}

	logger := log.NewMemoryLogger()
	battle, err := game.NewBattle(game.BattleConfig{
		Deck0:   deck,
		Deck1:   theirDeck,
		Name0:   hostName,
		Name1:   conn.PeerName,
		Catalog: catalog,
		Logger:  logger,
		Seed:    seed,
	})
	if err != nil {
		conn.Close()
		return nil, err
	}
	battle.Start()

	sess := &GameSession{
		battle:  battle,
		session: conn,
		logger:  logger,
	}
	sess.applier = mwnet.NewApplier(battle, conn, 1)
	sess.applier.OnEmote = func(text string) {
		sess.emotes = append(sess.emotes, text)
	}
	go sess.runApplier()
	return sess, nil
}

// runApplier replays the joiner's messages as they arrive. Holds the session
// lock for each application so tool handlers see consistent state.
func (s *GameSession) runApplier() {
	for {
		msg, ok := s.session.Recv()
		if !ok {
			return
		}
		s.mu.Lock()
		if err := s.applier.Apply(msg); err != nil && s.applyErr == nil {
			s.applyErr = err
		}
		s.mu.Unlock()
	}
}

// ToolResponse is the JSON envelope returned by all tools.
type ToolResponse struct {
	State    *StateView `json:"state"`
	Events   []string   `json:"events"`
	Emotes   []string   `json:"emotes,omitempty"`
	GameOver bool       `json:"game_over"`
	Winner   int        `json:"winner,omitempty"`
	Result   string     `json:"result,omitempty"`
	Error    string     `json:"error,omitempty"`
}

// snapshot builds a tool response under the lock: current state plus any
// events and emotes accumulated since the last call.
func (s *GameSession) snapshot() *ToolResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	resp := &ToolResponse{
		State:  BuildStateView(s.battle, s.localPlayer),
		Events: []string{},
	}
	events := s.logger.Events()
	for _, e := range events[s.drained:] {
		resp.Events = append(resp.Events, log.FormatEvent(e))
	}
	s.drained = len(events)

	resp.Emotes = s.emotes
	s.emotes = nil

	if s.battle.Over {
		resp.GameOver = true
		resp.Winner = s.battle.Winner
		resp.Result = s.battle.Result
	}
	if s.applyErr != nil {
		resp.Error = s.applyErr.Error()
	}
	return resp
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp *ToolResponse) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}

// Close tears down the peer link.
func (s *GameSession) Close() {
	s.session.Close()
}
