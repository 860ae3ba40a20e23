package game

import (
	"testing"

	"github.com/peterkuimelis/magicwound/internal/log"
)

// Test fixtures: a minimal cast of characters and cards with known numbers,
// so damage math in tests is readable.

// testMage is a Water caster with 20 HP and 10 max energy (starts at 5).
func testMage() *Character {
	return &Character{
		ID: "testmage", Name: "Test Mage",
		Elements: []Element{ElementWater}, Health: 20, Energy: 10,
	}
}

// testBrawler is a pure Physical character: no energy, cannot cast.
func testBrawler() *Character {
	return &Character{
		ID: "brawler", Name: "Pit Brawler",
		Elements: []Element{ElementPhysical}, Health: 20,
	}
}

// waterBolt is a plain Water spell with no registered effect.
func waterBolt() *Card {
	return &Card{
		ID: "bolt", Name: "Water Bolt",
		Elements: []Element{ElementWater}, Cost: 5, Rarity: RarityCommon,
	}
}

// fireJab is a spell sharing no element with testMage.
func fireJab() *Card {
	return &Card{
		ID: "jab", Name: "Fire Jab",
		Elements: []Element{ElementFire}, Cost: 3, Rarity: RarityCommon,
	}
}

// punch is a pure Physical card: free to play for anyone.
func punch() *Card {
	return &Card{
		ID: "punch", Name: "Punch",
		Elements: []Element{ElementPhysical}, Cost: 2, Rarity: RarityCommon,
	}
}

// orderedDeck builds a deck whose draws come out in the given card order.
// Draws pop from the end of the pile, so the order is reversed into the
// slice. Extra filler pads the pile to keep it from running dry.
func orderedDeck(name string, draws []*Card, filler int, chars ...*Character) *Deck {
	d := &Deck{Name: name, Type: DeckCasual, MaxCardLimit: DefaultMaxCardLimit}
	pad := waterBolt()
	for i := 0; i < filler; i++ {
		d.Cards = append(d.Cards, pad)
	}
	for i := len(draws) - 1; i >= 0; i-- {
		d.Cards = append(d.Cards, draws[i])
	}
	d.Characters = append(d.Characters, chars...)
	d.refreshCode()
	return d
}

// newTestBattle starts a deterministic battle: no shuffling, memory logger.
func newTestBattle(t *testing.T, deck0, deck1 *Deck) (*Battle, *log.MemoryLogger) {
	t.Helper()
	logger := log.NewMemoryLogger()
	b, err := NewBattle(BattleConfig{
		Deck0:     deck0,
		Deck1:     deck1,
		Name0:     "P1",
		Name1:     "P2",
		Effects:   DefaultEffects(),
		Logger:    logger,
		Seed:      1,
		NoShuffle: true,
	})
	if err != nil {
		t.Fatalf("NewBattle: %v", err)
	}
	b.Start()
	return b, logger
}
