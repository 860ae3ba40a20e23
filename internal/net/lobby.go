package net

import (
	"fmt"
	"strconv"
	"time"

	"github.com/peterkuimelis/magicwound/internal/game"
)

// deckExchangeTimeout bounds the pre-battle deck swap. Decks are a single
// line each; a peer that takes longer than this is gone.
const deckExchangeTimeout = 30 * time.Second

// ExchangeDecks sends our deck name and code and waits for the peer's,
// decoding the code against the catalog. Both sides end up holding both
// decks without either trusting more than a deck code from the wire. A
// bare one-field DECK line is tolerated for older peers that omit the
// name.
func ExchangeDecks(s *Session, mine *game.Deck, catalog *game.Catalog) (*game.Deck, error) {
	if err := s.Send(MsgDeck, mine.Name, mine.Code); err != nil {
		return nil, err
	}
	msg, err := s.WaitFor(MsgDeck, deckExchangeTimeout)
	if err != nil {
		return nil, err
	}
	if len(msg.Args) == 0 {
		return nil, fmt.Errorf("peer sent an empty deck line")
	}
	token := msg.Args[0]
	if len(msg.Args) >= 2 {
		token = msg.Args[1]
	}
	theirs, err := game.DeckFromCode(token, catalog)
	if err != nil {
		return nil, fmt.Errorf("peer deck: %w", err)
	}
	return theirs, nil
}

// SignalStart picks the shuffle seed and announces the battle start to the
// peer. Hosts call this; joiners call AwaitStart. Both sides must build
// their battles from the same seed or their replicas shuffle apart and
// every remote play desyncs.
func SignalStart(s *Session) (int64, error) {
	seed := time.Now().UnixNano()
	if seed == 0 {
		seed = 1
	}
	if err := s.Send(MsgStartBattle, strconv.FormatInt(seed, 10)); err != nil {
		return 0, err
	}
	return seed, nil
}

// AwaitStart blocks until the host signals the battle start and returns the
// shuffle seed it chose.
func AwaitStart(s *Session) (int64, error) {
	msg, err := s.WaitFor(MsgStartBattle, deckExchangeTimeout)
	if err != nil {
		return 0, err
	}
	if len(msg.Args) == 0 {
		return 0, fmt.Errorf("peer sent STARTBATTLE without a shuffle seed")
	}
	seed, err := strconv.ParseInt(msg.Args[0], 10, 64)
	if err != nil || seed == 0 {
		return 0, fmt.Errorf("peer sent a bad shuffle seed %q", msg.Args[0])
	}
	return seed, nil
}
