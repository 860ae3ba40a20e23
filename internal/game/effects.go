package game

// DamageTransform rewrites the damage of a card after the base computation.
// Transforms must be pure: they read the two sides but never mutate them.
type DamageTransform func(attacker, defender *PlayerState, damage int) int

// ResolutionHook runs once the damage step of a card has fully resolved.
// This is the seam for card text that manipulates decks, hands and discard
// piles rather than the damage number.
type ResolutionHook func(b *Battle, attacker, defender *PlayerState, card *Card)

// EffectRegistry maps card ids to their damage transforms and resolution
// hooks. Registration is additive and idempotent: re-registering an id
// replaces the prior entry. The registry is read-only once a battle starts.
type EffectRegistry struct {
	transforms map[string]DamageTransform
	hooks      map[string]ResolutionHook
}

// NewEffectRegistry creates an empty registry.
func NewEffectRegistry() *EffectRegistry {
	return &EffectRegistry{
		transforms: make(map[string]DamageTransform),
		hooks:      make(map[string]ResolutionHook),
	}
}

// Register binds a damage transform to a card id.
func (r *EffectRegistry) Register(cardID string, t DamageTransform) {
	r.transforms[cardID] = t
}

// RegisterHook binds a resolution hook to a card id.
func (r *EffectRegistry) RegisterHook(cardID string, h ResolutionHook) {
	r.hooks[cardID] = h
}

// Transform applies the registered transform for a card id, if any.
func (r *EffectRegistry) Transform(cardID string, attacker, defender *PlayerState, damage int) int {
	if t, ok := r.transforms[cardID]; ok {
		return t(attacker, defender, damage)
	}
	return damage
}

// Resolve invokes the registered resolution hook for a card id, if any.
func (r *EffectRegistry) Resolve(cardID string, b *Battle, attacker, defender *PlayerState, card *Card) {
	if h, ok := r.hooks[cardID]; ok {
		h(b, attacker, defender, card)
	}
}

// DefaultEffects returns the registry for the base card set.
func DefaultEffects() *EffectRegistry {
	r := NewEffectRegistry()

	r.Register("Wordle", func(attacker, defender *PlayerState, damage int) int {
		return damage * 2
	})
	r.Register("madposion", func(attacker, defender *PlayerState, damage int) int {
		return damage * 3
	})

	// Balance: discard your hand, draw that many.
	r.RegisterHook("balance", func(b *Battle, attacker, defender *PlayerState, card *Card) {
		n := len(attacker.Hand)
		attacker.Discard = append(attacker.Discard, attacker.Hand...)
		attacker.Hand = nil
		for i := 0; i < n; i++ {
			attacker.DrawCard()
		}
	})

	// Memory Veil: mill the top 2 and bottom 2 of the opponent's deck.
	r.RegisterHook("TheCardLetMeWin", func(b *Battle, attacker, defender *PlayerState, card *Card) {
		millTop(defender, 2)
		millBottom(defender, 2)
	})

	// Say Again?: destroy the top card of the opponent's deck.
	r.RegisterHook("whAt", func(b *Battle, attacker, defender *PlayerState, card *Card) {
		millTop(defender, 1)
	})

	return r
}

func millTop(p *PlayerState, n int) {
	for i := 0; i < n && len(p.Deck) > 0; i++ {
		top := p.Deck[len(p.Deck)-1]
		p.Deck = p.Deck[:len(p.Deck)-1]
		p.Discard = append(p.Discard, top)
	}
}

func millBottom(p *PlayerState, n int) {
	for i := 0; i < n && len(p.Deck) > 0; i++ {
		bottom := p.Deck[0]
		p.Deck = p.Deck[1:]
		p.Discard = append(p.Discard, bottom)
	}
}
