package game

// Catalog is the read-only lookup table of card and character definitions.
// It is constructed once at process start and passed by handle; nothing in
// the engine reaches for package-level state.
type Catalog struct {
	cards      map[string]*Card
	characters map[string]*Character

	cardOrder      []*Card
	characterOrder []*Character
}

// NewCatalog builds the catalog from the compiled-in definitions.
func NewCatalog() *Catalog {
	c := &Catalog{
		cards:      make(map[string]*Card),
		characters: make(map[string]*Character),
	}
	for _, card := range baseCards() {
		c.cards[card.ID] = card
		c.cardOrder = append(c.cardOrder, card)
	}
	for _, ch := range baseCharacters() {
		c.characters[ch.ID] = ch
		c.characterOrder = append(c.characterOrder, ch)
	}
	return c
}

// Card looks up a card definition by id, or nil.
func (c *Catalog) Card(id string) *Card {
	return c.cards[id]
}

// Character looks up a character definition by id, or nil.
func (c *Catalog) Character(id string) *Character {
	return c.characters[id]
}

// Cards returns all card definitions in catalog order.
func (c *Catalog) Cards() []*Card {
	return c.cardOrder
}

// Characters returns all character definitions in catalog order.
func (c *Catalog) Characters() []*Character {
	return c.characterOrder
}

// CardsByElement returns all cards carrying the given element.
func (c *Catalog) CardsByElement(e Element) []*Card {
	var result []*Card
	for _, card := range c.cardOrder {
		if card.HasElement(e) {
			result = append(result, card)
		}
	}
	return result
}

// CardsByRarity returns all cards of the given rarity.
func (c *Catalog) CardsByRarity(r Rarity) []*Card {
	var result []*Card
	for _, card := range c.cardOrder {
		if card.Rarity == r {
			result = append(result, card)
		}
	}
	return result
}

// CardsByType returns all cards of the given derived type.
func (c *Catalog) CardsByType(ct CardType) []*Card {
	var result []*Card
	for _, card := range c.cardOrder {
		if card.Type() == ct {
			result = append(result, card)
		}
	}
	return result
}

// LegalCards returns the cards playable in a deck of the given type.
// Standard decks exclude Funny-rarity cards.
func (c *Catalog) LegalCards(dt DeckType) []*Card {
	if dt == DeckCasual {
		return c.cardOrder
	}
	var result []*Card
	for _, card := range c.cardOrder {
		if card.Rarity != RarityFunny {
			result = append(result, card)
		}
	}
	return result
}

// CharactersByElement returns all characters carrying the given element.
func (c *Catalog) CharactersByElement(e Element) []*Character {
	var result []*Character
	for _, ch := range c.characterOrder {
		if ch.HasElement(e) {
			result = append(result, ch)
		}
	}
	return result
}

// --- Compiled-in definitions ---
//
// The ids are stable wire identifiers: they appear in deck-code tokens and
// PLAY messages, so they never change even when display text does.

func baseCards() []*Card {
	return []*Card{
		{
			ID: "madposion", Name: "Frenzy Potion",
			Elements: []Element{ElementWater}, Cost: 15, Rarity: RarityMythic,
			Description: "This turn, the target character casts three times; while out of energy it pays triple the cost in life instead.",
		},
		{
			ID: "organichemistry", Name: "Potioncraft Prodigy",
			Elements: []Element{ElementWater}, Cost: 9, Rarity: RarityMythic,
			Description: "For the rest of the battle your potions cost (2) less. Add 3 random potions to your hand.",
		},
		{
			ID: "slowdown", Name: "Sluggish Draught",
			Elements: []Element{ElementWater}, Cost: 5, Rarity: RarityRare,
			Description: "Until your next turn, your opponent's cards cost (2) more.",
		},
		{
			ID: "Timeelder", Name: "Chrono Limiter",
			Elements: []Element{ElementDark}, Cost: 5, Rarity: RarityRare,
			Description: "Until your next turn, your opponent cannot play more than 5 cards.",
		},
		{
			ID: "LGBTQ", Name: "Prismatic Potion",
			Elements: []Element{ElementWater}, Cost: 3, Rarity: RarityRare,
			Description: "This turn, your cards count as every element.",
		},
		{
			ID: "LazarusArise", Name: "Raise the Fallen",
			Elements: []Element{ElementDark}, Cost: 2, Rarity: RarityRare,
			Description: "Revive a character with 25% of its health (rounded down); destroy it at the end of your turn. A character destroyed this way cannot be revived again.",
		},
		{
			ID: "DontForgotMe", Name: "Bottled Memory",
			Elements: []Element{ElementWater}, Cost: 5, Rarity: RarityRare,
			Description: "This card is a potion. Shuffle 8 cards from the target player's deck into yours; they cost (2) less.",
		},
		{
			ID: "TheCardLetMeWin", Name: "Memory Veil",
			Elements: []Element{ElementWater}, Cost: 6, Rarity: RarityRare,
			Description: "Destroy the top 2 and bottom 2 cards of your opponent's deck.",
		},
		{
			ID: "TheCardLetYouLose", Name: "Memory Ruin",
			Elements: []Element{ElementWater}, Cost: 2, Rarity: RarityRare,
			Description: "Destroy the top 2 and bottom 2 cards of both decks. Then, if your deck is empty, you lose the game.",
		},
		{
			ID: "whAt", Name: "Say Again?",
			Elements: []Element{ElementWater}, Cost: 2, Rarity: RarityRare,
			Description: "Destroy 1 card in your opponent's deck, then destroy every copy of it, wherever it is.",
		},
		{
			ID: "balance", Name: "Balance",
			Elements: []Element{ElementLight, ElementDark}, Cost: 4, Rarity: RarityRare,
			Description: "Discard your hand. Draw that many cards.",
		},
		{
			ID: "TearAll", Name: "Elixir of Oblivion",
			Elements: []Element{ElementWater, ElementDark}, Cost: 18, Rarity: RarityRare,
			Description: "Destroy your opponent's deck. Shuffle 10 cards from their discard pile into their deck; those cards cost (2) more.",
		},
		{
			ID: "Wordle", Name: "Wordle",
			Elements: []Element{ElementPhysical}, Cost: 4, Rarity: RarityFunny,
			Description: "Your opponent's damage next turn is multiplied by today's Wordle clear rate.",
		},
		{
			ID: "IDontcar", Name: "I Don't Carrr",
			Elements: []Element{ElementPhysical}, Cost: 2, Rarity: RarityFunny,
			Description: "Your opponent's emotes are replaced with car horns. Honk honk!",
		},
	}
}

func baseCharacters() []*Character {
	return []*Character{
		{
			ID: "xxmlt", Name: "Aurelia",
			Elements: []Element{ElementWater}, Health: 25, Energy: 15,
			Ability:     "Mend",
			AbilityDesc: "Spend 5 energy: a friendly target recovers 5 health.",
			Passive:     "Deathward",
			PassiveDesc: "Once per battle, when a friendly character would take fatal damage, it stays at 1 health instead of leaving the field.",
		},
		{
			ID: "neko", Name: "Galewhisper",
			Elements: []Element{ElementWind}, Health: 20, Energy: 25,
			Ability:     "Gust",
			AbilityDesc: "Spend 10 energy, choose one: force an enemy target off the field, or dispel one effect.",
		},
		{
			ID: "soybeanmilk", Name: "Dawnbringer",
			Elements: []Element{ElementLight}, Health: 20, Energy: 20,
			Ability:     "Rewind",
			AbilityDesc: "Spend 10 energy: restore every other character on the field to its state at the end of last turn. (Unlocks on turn 2.)",
		},
	}
}
