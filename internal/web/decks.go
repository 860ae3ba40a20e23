package web

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/peterkuimelis/magicwound/internal/game"
)

func parseDeckFileYAML(data []byte, catalog *game.Catalog) ([]*game.Deck, error) {
	var df game.DeckFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return nil, err
	}
	decks := make([]*game.Deck, 0, len(df.Decks))
	for _, entry := range df.Decks {
		d, err := game.BuildDeck(entry, catalog)
		if err != nil {
			return nil, fmt.Errorf("deck %q: %w", entry.Name, err)
		}
		decks = append(decks, d)
	}
	return decks, nil
}
