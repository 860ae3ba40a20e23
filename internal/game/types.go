package game

// --- Enums ---

// Element is a card or character affinity. Ordinals match the deck-code wire
// format and must not be reordered.
type Element int

const (
	ElementPhysical Element = iota + 1
	ElementLight
	ElementDark
	ElementWater
	ElementFire
	ElementEarth
	ElementWind
)

func (e Element) String() string {
	switch e {
	case ElementPhysical:
		return "Physical"
	case ElementLight:
		return "Light"
	case ElementDark:
		return "Dark"
	case ElementWater:
		return "Water"
	case ElementFire:
		return "Fire"
	case ElementEarth:
		return "Earth"
	case ElementWind:
		return "Wind"
	default:
		return "Unknown"
	}
}

type Rarity int

const (
	RarityCommon Rarity = iota + 1
	RarityUncommon
	RarityRare
	RarityMythic
	RarityFunny
)

func (r Rarity) String() string {
	switch r {
	case RarityCommon:
		return "Common"
	case RarityUncommon:
		return "Uncommon"
	case RarityRare:
		return "Rare"
	case RarityMythic:
		return "Mythic"
	case RarityFunny:
		return "Funny"
	default:
		return "Unknown"
	}
}

type CardType int

const (
	CardTypeCreature CardType = iota + 1
	CardTypeSpell
)

func (ct CardType) String() string {
	if ct == CardTypeCreature {
		return "Creature"
	}
	return "Spell"
}

// DeckType distinguishes the two legal formats. Ordinals appear verbatim in
// deck-code tokens.
type DeckType int

const (
	DeckStandard DeckType = iota + 1
	DeckCasual
)

func (dt DeckType) String() string {
	if dt == DeckStandard {
		return "Standard"
	}
	return "Casual"
}

// --- Card definition (static, from the catalog) ---

type Card struct {
	ID          string
	Name        string
	Elements    []Element // non-empty
	Cost        int
	Rarity      Rarity
	Description string
	Attack      int
	Defense     int
	Health      int
}

func (c *Card) String() string {
	return c.Name
}

// Type derives the card type: a card with no combat stats is a spell.
func (c *Card) Type() CardType {
	if c.Attack == 0 && c.Defense == 0 && c.Health == 0 {
		return CardTypeSpell
	}
	return CardTypeCreature
}

// HasElement reports whether the card carries the given element.
func (c *Card) HasElement(e Element) bool {
	for _, el := range c.Elements {
		if el == e {
			return true
		}
	}
	return false
}

// IsPhysicalOnly reports whether the card's element set is exactly {Physical}.
// Non-mage characters may only play such cards. Cost and damage type hinge
// on Physical membership instead, so a mixed-element Physical card is still
// free and still deals physical damage.
func (c *Card) IsPhysicalOnly() bool {
	for _, el := range c.Elements {
		if el != ElementPhysical {
			return false
		}
	}
	return len(c.Elements) > 0
}

// SharesElement reports whether the card and character affinities overlap.
func (c *Card) SharesElement(ch *Character) bool {
	for _, el := range c.Elements {
		if ch.HasElement(el) {
			return true
		}
	}
	return false
}

// --- Character definition (static, from the catalog) ---

type Character struct {
	ID          string
	Name        string
	Elements    []Element
	Health      int
	Energy      int // max energy; 0 for non-casters
	Attack      int
	Defense     int
	Ability     string
	AbilityDesc string
	Passive     string
	PassiveDesc string
}

func (ch *Character) String() string {
	return ch.Name
}

// HasElement reports whether the character carries the given element.
func (ch *Character) HasElement(e Element) bool {
	for _, el := range ch.Elements {
		if el == e {
			return true
		}
	}
	return false
}

// IsMage reports whether the character can cast: any element besides pure
// Physical marks a caster.
func (ch *Character) IsMage() bool {
	for _, el := range ch.Elements {
		if el != ElementPhysical {
			return true
		}
	}
	return false
}
