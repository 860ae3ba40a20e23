package game

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// DefaultMaxCardLimit is the deck size cap unless a token says otherwise.
	DefaultMaxCardLimit = 20
	// MinDeckCards is the smallest playable deck.
	MinDeckCards = 20
	// DeckCharacterCount is the exact character count of a playable deck.
	DeckCharacterCount = 3
)

var (
	ErrDeckFull          = errors.New("deck is at its card limit")
	ErrFunnyInStandard   = errors.New("standard decks cannot carry Funny-rarity cards")
	ErrTooManyCharacters = errors.New("decks hold at most 3 characters")
	ErrBadDeckName       = errors.New("deck names must not contain ';', ',' or '|'")
)

// Deck is a named, typed card list plus up to three characters. The encoded
// token is recomputed on every mutation so Code is always current.
type Deck struct {
	Name         string
	Type         DeckType
	Cards        []*Card
	Characters   []*Character
	MaxCardLimit int
	Code         string
}

// NewDeck creates an empty deck. The name must be free of the deck-code
// delimiter characters.
func NewDeck(name string, dt DeckType) (*Deck, error) {
	if strings.ContainsAny(name, ";,|") {
		return nil, fmt.Errorf("%w: %q", ErrBadDeckName, name)
	}
	d := &Deck{
		Name:         name,
		Type:         dt,
		MaxCardLimit: DefaultMaxCardLimit,
	}
	d.refreshCode()
	return d, nil
}

// AddCard appends a card, enforcing the format rule and the size cap.
func (d *Deck) AddCard(c *Card) error {
	if d.Type == DeckStandard && c.Rarity == RarityFunny {
		return fmt.Errorf("%w: %s", ErrFunnyInStandard, c.Name)
	}
	if len(d.Cards) >= d.MaxCardLimit {
		return fmt.Errorf("%w (%d cards)", ErrDeckFull, d.MaxCardLimit)
	}
	d.Cards = append(d.Cards, c)
	d.refreshCode()
	return nil
}

// RemoveCard removes the first card with the given id. Reports whether a
// card was removed.
func (d *Deck) RemoveCard(id string) bool {
	for i, c := range d.Cards {
		if c.ID == id {
			d.Cards = append(d.Cards[:i], d.Cards[i+1:]...)
			d.refreshCode()
			return true
		}
	}
	return false
}

// AddCharacter appends a character, up to three.
func (d *Deck) AddCharacter(ch *Character) error {
	if len(d.Characters) >= DeckCharacterCount {
		return ErrTooManyCharacters
	}
	d.Characters = append(d.Characters, ch)
	d.refreshCode()
	return nil
}

// RemoveCharacter removes the first character with the given id.
func (d *Deck) RemoveCharacter(id string) bool {
	for i, ch := range d.Characters {
		if ch.ID == id {
			d.Characters = append(d.Characters[:i], d.Characters[i+1:]...)
			d.refreshCode()
			return true
		}
	}
	return false
}

// Valid reports whether the deck is playable: a full character roster and at
// least the minimum card count.
func (d *Deck) Valid() bool {
	return len(d.Cards) >= MinDeckCards && len(d.Characters) == DeckCharacterCount
}

// ElementDistribution counts cards per element across the deck.
func (d *Deck) ElementDistribution() map[Element]int {
	dist := make(map[Element]int)
	for _, c := range d.Cards {
		for _, e := range c.Elements {
			dist[e]++
		}
	}
	return dist
}

func (d *Deck) refreshCode() {
	d.Code = EncodeDeck(d)
}
