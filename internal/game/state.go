package game

import "math/rand"

const (
	// BaseHealth is each side's starting base HP.
	BaseHealth = 50
	// BaseManaCap is both the starting and maximum base mana.
	BaseManaCap = 30
	// ManaRegen is the base mana gained at the start of each turn.
	ManaRegen = 5
	// EnergyRegen is the energy each mage gains at the start of its
	// owner's turn.
	EnergyRegen = 5
	// OpeningHandSize is how many cards each side draws at battle start.
	OpeningHandSize = 3
	// ActiveSlots is the number of front-line character positions.
	ActiveSlots = 2
	// ReserveSlot is the index of the held-back third character.
	ReserveSlot = 2
)

// CharacterState is one character's per-battle state, owned by exactly one
// PlayerState.
type CharacterState struct {
	Character *Character
	HP        int
	Energy    int
	Taunt     bool
	Confused  bool
}

// NewCharacterState creates battle state for a character. Characters enter
// the field with half their energy, rounded up.
func NewCharacterState(ch *Character) *CharacterState {
	return &CharacterState{
		Character: ch,
		HP:        ch.Health,
		Energy:    (ch.Energy + 1) / 2,
	}
}

// Alive reports whether the character is still standing.
func (cs *CharacterState) Alive() bool {
	return cs.HP > 0
}

// PlayerState is one side of a battle: base, characters, draw pile, hand
// and discard. Slots 0 and 1 are active; slot 2, if present, is the reserve.
// Exactly one producer mutates a PlayerState: local input or the network
// replay path, never both.
type PlayerState struct {
	Name      string
	BaseHP    int
	BaseMana  int
	BonusMana int // extra per-turn regen granted by effects
	Chars     []*CharacterState
	Deck      []*Card // top of deck is last element (pop from end)
	Hand      []*Card
	Discard   []*Card
}

// NewPlayerState builds a side from a deck's characters and card list.
// The card order is the deck's; the battle shuffles when it starts.
func NewPlayerState(name string, deck *Deck) *PlayerState {
	p := &PlayerState{
		Name:     name,
		BaseHP:   BaseHealth,
		BaseMana: BaseManaCap,
	}
	for _, ch := range deck.Characters {
		p.Chars = append(p.Chars, NewCharacterState(ch))
	}
	p.Deck = append(p.Deck, deck.Cards...)
	return p
}

// DrawCard pops the top of the draw pile into the hand. Returns nil on an
// empty pile; running dry is not an error.
func (p *PlayerState) DrawCard() *Card {
	if len(p.Deck) == 0 {
		return nil
	}
	card := p.Deck[len(p.Deck)-1]
	p.Deck = p.Deck[:len(p.Deck)-1]
	p.Hand = append(p.Hand, card)
	return card
}

// ShuffleDeck randomizes the draw pile.
func (p *PlayerState) ShuffleDeck(rng *rand.Rand) {
	rng.Shuffle(len(p.Deck), func(i, j int) {
		p.Deck[i], p.Deck[j] = p.Deck[j], p.Deck[i]
	})
}

// RemoveFromHand removes the card at the given index and returns it.
func (p *PlayerState) RemoveFromHand(i int) *Card {
	card := p.Hand[i]
	p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
	return card
}

// HandIndexOf returns the index of the first hand card with the given id,
// or -1.
func (p *PlayerState) HandIndexOf(cardID string) int {
	for i, c := range p.Hand {
		if c.ID == cardID {
			return i
		}
	}
	return -1
}

// StartTurn applies start-of-turn regeneration and the turn draw: base mana
// climbs by the regen rate plus any bonus (capped), every mage recovers
// energy (clamped to its max), and one card is drawn if any remain.
func (p *PlayerState) StartTurn() *Card {
	p.BaseMana = min(BaseManaCap, p.BaseMana+ManaRegen+p.BonusMana)
	for _, cs := range p.Chars {
		if cs.Character.IsMage() {
			cs.Energy = min(cs.Character.Energy, cs.Energy+EnergyRegen)
		}
	}
	return p.DrawCard()
}

// CanAfford reports whether actor energy plus base mana covers a cost
// without falling through to life payment. PayCost itself never fails;
// callers that consider death-as-payment undesirable pre-check with this.
func (p *PlayerState) CanAfford(cost int, actor *CharacterState) bool {
	available := p.BaseMana
	if actor.Character.IsMage() {
		available += actor.Energy
	}
	return available >= cost
}

// PayCost drains a card's cost from the actor's energy (mages first), then
// the base mana pool, and pays any remainder with the actor's life. The
// payment always completes; it can kill the actor. Returns how much was
// paid with life.
func (p *PlayerState) PayCost(cost int, actor *CharacterState) int {
	remaining := cost
	if actor.Character.IsMage() {
		fromEnergy := min(actor.Energy, remaining)
		actor.Energy -= fromEnergy
		remaining -= fromEnergy
	}
	fromMana := min(p.BaseMana, remaining)
	p.BaseMana -= fromMana
	remaining -= fromMana
	if remaining > 0 {
		actor.HP -= remaining
		if actor.HP < 0 {
			actor.HP = 0
		}
	}
	return remaining
}

// ApplyDamage deals damage to the character in the given slot. Magic damage
// against a mage is absorbed by its energy first; the rest comes off HP.
// Returns how much was absorbed and the overflow: the magnitude by which
// the blow exceeded the character's remaining HP.
func (p *PlayerState) ApplyDamage(slot, amount int, magic bool) (absorbed, overflow int) {
	cs := p.Chars[slot]
	if magic && cs.Character.IsMage() {
		absorbed = min(cs.Energy, amount)
		cs.Energy -= absorbed
		amount -= absorbed
	}
	cs.HP -= amount
	if cs.HP < 0 {
		overflow = -cs.HP
		cs.HP = 0
	}
	return absorbed, overflow
}

// ResolveDeath handles a character reaching 0 HP in an active slot. A live
// reserve is promoted into the emptied slot and the roster shrinks; with no
// reserve the corpse keeps its slot at 0 HP. Overflow damage, if any, is
// passed to the defender's base by the caller.
// Reports whether a promotion happened.
func (p *PlayerState) ResolveDeath(slot int) bool {
	if len(p.Chars) > ReserveSlot && p.Chars[ReserveSlot].Alive() && slot < ReserveSlot {
		p.Chars[slot] = p.Chars[ReserveSlot]
		p.Chars = p.Chars[:ReserveSlot]
		return true
	}
	return false
}

// AliveCount returns how many of this side's characters still stand.
func (p *PlayerState) AliveCount() int {
	n := 0
	for _, cs := range p.Chars {
		if cs.Alive() {
			n++
		}
	}
	return n
}

// --- Targeting ---

// Target designates either the opposing base or an opposing active slot.
type Target struct {
	Base bool
	Slot int
}

// TargetBase targets the opposing base.
func TargetBase() Target {
	return Target{Base: true}
}

// TargetSlot targets an opposing active character slot.
func TargetSlot(i int) Target {
	return Target{Slot: i}
}

// ValidTargets lists the legal targets on the opposing side. An alive
// taunting active character monopolizes targeting; otherwise every alive
// active character and the base are fair game.
func (p *PlayerState) ValidTargets() []Target {
	var taunters []Target
	for i := 0; i < ActiveSlots && i < len(p.Chars); i++ {
		if p.Chars[i].Alive() && p.Chars[i].Taunt {
			taunters = append(taunters, TargetSlot(i))
		}
	}
	if len(taunters) > 0 {
		return taunters
	}

	var targets []Target
	for i := 0; i < ActiveSlots && i < len(p.Chars); i++ {
		if p.Chars[i].Alive() {
			targets = append(targets, TargetSlot(i))
		}
	}
	targets = append(targets, TargetBase())
	return targets
}

// IsValidTarget reports whether the given target is currently legal against
// this side.
func (p *PlayerState) IsValidTarget(t Target) bool {
	for _, v := range p.ValidTargets() {
		if v == t {
			return true
		}
	}
	return false
}
