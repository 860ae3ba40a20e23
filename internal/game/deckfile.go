package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DeckFile is the top-level YAML structure of a decks file.
type DeckFile struct {
	Decks []DeckEntry `yaml:"decks"`
}

// DeckEntry is a single deck list: catalog ids plus a count per card.
type DeckEntry struct {
	Name       string      `yaml:"name"`
	Type       string      `yaml:"type"` // "standard" or "casual"
	Characters []string    `yaml:"characters"`
	Cards      []CardEntry `yaml:"cards"`
}

// CardEntry is one card id and how many copies the deck runs.
type CardEntry struct {
	ID    string `yaml:"id"`
	Count int    `yaml:"count"`
}

// ParseDeckFile parses a YAML decks file and builds each deck through the
// catalog. Unknown ids are an error here, unlike deck-code decoding: a local
// file naming a card that does not exist is a typo worth surfacing.
func ParseDeckFile(path string, catalog *Catalog) ([]*Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var df DeckFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return nil, fmt.Errorf("parse decks YAML: %w", err)
	}

	decks := make([]*Deck, 0, len(df.Decks))
	for _, entry := range df.Decks {
		d, err := BuildDeck(entry, catalog)
		if err != nil {
			return nil, fmt.Errorf("deck %q: %w", entry.Name, err)
		}
		decks = append(decks, d)
	}
	return decks, nil
}

// DeckByNumber returns the Nth deck (1-indexed) from a decks file.
func DeckByNumber(path string, n int, catalog *Catalog) (*Deck, error) {
	decks, err := ParseDeckFile(path, catalog)
	if err != nil {
		return nil, err
	}
	if n < 1 || n > len(decks) {
		return nil, fmt.Errorf("deck %d not found (have %d decks)", n, len(decks))
	}
	return decks[n-1], nil
}

// BuildDeck resolves one deck entry against the catalog.
func BuildDeck(entry DeckEntry, catalog *Catalog) (*Deck, error) {
	dt := DeckStandard
	switch entry.Type {
	case "", "standard":
	case "casual":
		dt = DeckCasual
	default:
		return nil, fmt.Errorf("unknown deck type %q", entry.Type)
	}

	d, err := NewDeck(entry.Name, dt)
	if err != nil {
		return nil, err
	}

	for _, id := range entry.Characters {
		ch := catalog.Character(id)
		if ch == nil {
			return nil, fmt.Errorf("unknown character id %q", id)
		}
		if err := d.AddCharacter(ch); err != nil {
			return nil, err
		}
	}

	for _, ce := range entry.Cards {
		card := catalog.Card(ce.ID)
		if card == nil {
			return nil, fmt.Errorf("unknown card id %q", ce.ID)
		}
		count := ce.Count
		if count == 0 {
			count = 1
		}
		for i := 0; i < count; i++ {
			if err := d.AddCard(card); err != nil {
				return nil, err
			}
		}
	}

	return d, nil
}
