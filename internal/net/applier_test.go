package net

import (
	"bufio"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/magicwound/internal/game"
	"github.com/peterkuimelis/magicwound/internal/log"
)

func testDeck(name string) *game.Deck {
	mage := &game.Character{
		ID: "testmage", Name: "Test Mage",
		Elements: []game.Element{game.ElementWater}, Health: 20, Energy: 10,
	}
	bolt := &game.Card{
		ID: "bolt", Name: "Water Bolt",
		Elements: []game.Element{game.ElementWater}, Cost: 5,
	}
	d := &game.Deck{Name: name, Type: game.DeckCasual, MaxCardLimit: game.DefaultMaxCardLimit}
	for i := 0; i < 10; i++ {
		d.Cards = append(d.Cards, bolt)
	}
	d.Characters = append(d.Characters, mage)
	return d
}

func startedBattle(t *testing.T) *game.Battle {
	t.Helper()
	b, err := game.NewBattle(game.BattleConfig{
		Deck0:     testDeck("host"),
		Deck1:     testDeck("joiner"),
		Logger:    log.NewMemoryLogger(),
		Seed:      1,
		NoShuffle: true,
	})
	require.NoError(t, err)
	b.Start()
	return b
}

func TestApplyEndTurn(t *testing.T) {
	b := startedBattle(t)
	a := NewApplier(b, nil, 1)

	// The remote side cannot end a turn it does not own.
	err := a.Apply(Message{Type: MsgEndTurn})
	assert.ErrorIs(t, err, game.ErrNotYourTurn)

	require.NoError(t, b.EndTurn(0))
	require.NoError(t, a.Apply(Message{Type: MsgEndTurn}))
	assert.Equal(t, 0, b.TurnPlayer)
	assert.Equal(t, 3, b.Turn)
}

func TestApplyPlayResolvesHandCard(t *testing.T) {
	b := startedBattle(t)
	a := NewApplier(b, nil, 1)
	require.NoError(t, b.EndTurn(0))

	err := a.Apply(Message{Type: MsgPlay, Args: []string{"bolt", "0", "B"}})
	require.NoError(t, err)

	// Water mage, Water card: 5 doubled to 10 into the host base.
	assert.Equal(t, game.BaseHealth-10, b.Players[0].BaseHP)
	assert.Len(t, b.Players[1].Discard, 1)
}

func TestApplyPlayRejectsBadLines(t *testing.T) {
	b := startedBattle(t)
	a := NewApplier(b, nil, 1)
	require.NoError(t, b.EndTurn(0))

	assert.Error(t, a.Apply(Message{Type: MsgPlay, Args: []string{"bolt"}}),
		"short arg list")
	assert.Error(t, a.Apply(Message{Type: MsgPlay, Args: []string{"ghost", "0", "B"}}),
		"card not in the remote hand")
	assert.Error(t, a.Apply(Message{Type: MsgPlay, Args: []string{"bolt", "x", "B"}}),
		"unparseable actor slot")
	assert.Error(t, a.Apply(Message{Type: MsgPlay, Args: []string{"bolt", "0", "?"}}),
		"unparseable target")
}

func TestApplyEmoteCallsBack(t *testing.T) {
	b := startedBattle(t)
	a := NewApplier(b, nil, 1)

	var got string
	a.OnEmote = func(text string) { got = text }

	require.NoError(t, a.Apply(Message{Type: MsgEmoji, Args: []string{"gg"}}))
	assert.Equal(t, "gg", got)

	emotes := b.Logger.(*log.MemoryLogger).EventsOfType(log.EventEmote)
	assert.Len(t, emotes, 1)
}

func TestApplyIgnoresPreBattleTraffic(t *testing.T) {
	b := startedBattle(t)
	a := NewApplier(b, nil, 1)

	assert.NoError(t, a.Apply(Message{Type: MsgName, Args: []string{"late"}}))
	assert.NoError(t, a.Apply(Message{Type: MsgDeck, Args: []string{"CODE"}}))
	assert.NoError(t, a.Apply(Message{Type: MsgStartBattle}))
}

func TestSendHelpersMirrorMoves(t *testing.T) {
	sa, sb := pipeSessions(t)
	a := NewApplier(startedBattle(t), sa, 1)

	go func() {
		a.SendPlay("bolt", 0, game.TargetSlot(1))
		a.SendEndTurn()
		a.SendEmote("wp")
	}()

	msg, ok := sb.Recv()
	require.True(t, ok)
	assert.Equal(t, MsgPlay, msg.Type)
	assert.Equal(t, []string{"bolt", "0", "1"}, msg.Args)

	msg, ok = sb.Recv()
	require.True(t, ok)
	assert.Equal(t, MsgEndTurn, msg.Type)

	msg, ok = sb.Recv()
	require.True(t, ok)
	assert.Equal(t, MsgEmoji, msg.Type)
}

func TestPollDrainsQueuedMessages(t *testing.T) {
	sa, sb := pipeSessions(t)
	b := startedBattle(t)
	a := NewApplier(b, sa, 1)
	require.NoError(t, b.EndTurn(0))

	require.NoError(t, sb.Send(MsgPlay, "bolt", "0", "B"))
	require.NoError(t, sb.Send(MsgEndTurn))

	// Give the pump a moment to queue both lines.
	require.Eventually(t, func() bool {
		return len(sa.Inbox) == 2
	}, 2*time.Second, 5*time.Millisecond)

	require.NoError(t, a.Poll())
	assert.Equal(t, game.BaseHealth-10, b.Players[0].BaseHP)
	assert.Equal(t, 0, b.TurnPlayer)
}

func TestLobbyDeckExchange(t *testing.T) {
	catalog := game.NewCatalog()
	sa, sb := pipeSessions(t)

	mine, err := game.NewDeck("Mine", game.DeckStandard)
	require.NoError(t, err)
	require.NoError(t, mine.AddCharacter(catalog.Character("xxmlt")))
	require.NoError(t, mine.AddCard(catalog.Card("balance")))

	theirs, err := game.NewDeck("Theirs", game.DeckCasual)
	require.NoError(t, err)
	require.NoError(t, theirs.AddCharacter(catalog.Character("neko")))
	require.NoError(t, theirs.AddCard(catalog.Card("Wordle")))

	type result struct {
		deck *game.Deck
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		d, err := ExchangeDecks(sb, theirs, catalog)
		ch <- result{d, err}
	}()

	got, err := ExchangeDecks(sa, mine, catalog)
	require.NoError(t, err)
	assert.Equal(t, "Theirs", got.Name)
	assert.Equal(t, game.DeckCasual, got.Type)
	require.Len(t, got.Cards, 1)
	assert.Equal(t, "Wordle", got.Cards[0].ID)

	r := <-ch
	require.NoError(t, r.err)
	assert.Equal(t, "Mine", r.deck.Name)

	// Start coordination rides the same link; both sides see one seed.
	seedCh := make(chan int64, 1)
	go func() {
		seed, err := SignalStart(sa)
		assert.NoError(t, err)
		seedCh <- seed
	}()
	seed, err := AwaitStart(sb)
	require.NoError(t, err)
	assert.NotZero(t, seed)
	assert.Equal(t, <-seedCh, seed)
}

func TestDeckExchangeWireShape(t *testing.T) {
	catalog := game.NewCatalog()
	a, bConn := net.Pipe()
	sa := NewSession(a)
	defer sa.Close()

	mine, err := game.NewDeck("Mine", game.DeckStandard)
	require.NoError(t, err)
	require.NoError(t, mine.AddCharacter(catalog.Character("xxmlt")))
	require.NoError(t, mine.AddCard(catalog.Card("balance")))

	lineCh := make(chan string, 1)
	go func() {
		r := bufio.NewReader(bConn)
		line, _ := r.ReadString('\n')
		lineCh <- line
		// Answer with a bare one-field line, as an older peer would.
		fmt.Fprintf(bConn, "DECK;%s\n", mine.Code)
	}()

	got, err := ExchangeDecks(sa, mine, catalog)
	require.NoError(t, err, "one-field deck lines are still accepted")
	assert.Equal(t, "Mine", got.Name)

	// The line we put on the wire carries the name, then the code.
	assert.Equal(t, "DECK;Mine;"+mine.Code+"\n", <-lineCh)
}

func catalogDeck(t *testing.T, catalog *game.Catalog, name string, ids ...string) *game.Deck {
	t.Helper()
	d, err := game.NewDeck(name, game.DeckCasual)
	require.NoError(t, err)
	require.NoError(t, d.AddCharacter(catalog.Character("xxmlt")))
	for _, id := range ids {
		require.NoError(t, d.AddCard(catalog.Card(id)))
	}
	return d
}

func handIDs(p *game.PlayerState) []string {
	ids := make([]string, 0, len(p.Hand))
	for _, c := range p.Hand {
		ids = append(ids, c.ID)
	}
	return ids
}

func TestSeededReplicasConverge(t *testing.T) {
	catalog := game.NewCatalog()
	sa, sb := pipeSessions(t)

	hostDeck := catalogDeck(t, catalog, "Host",
		"slowdown", "Timeelder", "LGBTQ", "LazarusArise", "whAt", "balance", "Wordle", "madposion")
	joinDeck := catalogDeck(t, catalog, "Join",
		"TheCardLetMeWin", "TheCardLetYouLose", "DontForgotMe", "organichemistry", "IDontcar", "TearAll")

	type side struct {
		battle *game.Battle
		err    error
	}
	joinCh := make(chan side, 1)
	go func() {
		theirs, err := ExchangeDecks(sb, joinDeck, catalog)
		if err != nil {
			joinCh <- side{nil, err}
			return
		}
		seed, err := AwaitStart(sb)
		if err != nil {
			joinCh <- side{nil, err}
			return
		}
		b, err := game.NewBattle(game.BattleConfig{
			Deck0:  theirs,
			Deck1:  joinDeck,
			Logger: log.NewMemoryLogger(),
			Seed:   seed,
		})
		if err == nil {
			b.Start()
		}
		joinCh <- side{b, err}
	}()

	theirs, err := ExchangeDecks(sa, hostDeck, catalog)
	require.NoError(t, err)
	seed, err := SignalStart(sa)
	require.NoError(t, err)
	host, err := game.NewBattle(game.BattleConfig{
		Deck0:  hostDeck,
		Deck1:  theirs,
		Logger: log.NewMemoryLogger(),
		Seed:   seed,
	})
	require.NoError(t, err)
	host.Start()

	join := <-joinCh
	require.NoError(t, join.err)
	replica := join.battle

	// Both replicas shuffled both piles identically.
	for p := 0; p < 2; p++ {
		require.Equal(t, handIDs(host.Players[p]), handIDs(replica.Players[p]),
			"player %d hands diverged", p)
	}

	// So the host's first play replays cleanly on the joiner's replica.
	cardID := host.Players[0].Hand[0].ID
	require.NoError(t, host.PlayCard(0, 0, 0, game.TargetBase()))

	a := NewApplier(replica, nil, 0)
	require.NoError(t, a.Apply(Message{Type: MsgPlay, Args: []string{cardID, "0", "B"}}))
	assert.Equal(t, host.Players[1].BaseHP, replica.Players[1].BaseHP)
}

func TestLobbyRejectsCorruptDeck(t *testing.T) {
	catalog := game.NewCatalog()
	a, bConn := net.Pipe()
	sa := NewSession(a)
	defer sa.Close()

	go func() {
		// A hand-rolled peer sends garbage instead of a real code.
		bConn.Write([]byte("DECK;notacode\n"))
		// Drain the deck line the session under test sends.
		buf := make([]byte, 1024)
		bConn.Read(buf)
	}()

	mine, err := game.NewDeck("Mine", game.DeckStandard)
	require.NoError(t, err)
	require.NoError(t, mine.AddCharacter(catalog.Character("xxmlt")))

	_, err = ExchangeDecks(sa, mine, catalog)
	assert.ErrorIs(t, err, game.ErrBadDeckCode)
}
