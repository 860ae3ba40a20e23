package game

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/peterkuimelis/magicwound/internal/log"
)

// Phase is the battle lifecycle state.
type Phase int

const (
	PhaseWaitingForPlayers Phase = iota
	PhaseInProgress
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseWaitingForPlayers:
		return "Waiting for players"
	case PhaseInProgress:
		return "In progress"
	case PhaseFinished:
		return "Finished"
	default:
		return "Unknown"
	}
}

var (
	ErrBattleOver     = errors.New("battle is finished")
	ErrNotStarted     = errors.New("battle has not started")
	ErrNotYourTurn    = errors.New("not this player's turn")
	ErrBadHandIndex   = errors.New("hand index out of range")
	ErrBadActorSlot   = errors.New("actor slot out of range")
	ErrActorDown      = errors.New("acting character is defeated")
	ErrWrongElement   = errors.New("non-mage characters can only play pure Physical cards")
	ErrBadTarget      = errors.New("target is not legal")
	ErrCannotAfford   = errors.New("not enough energy and mana to cover the cost")
	ErrUnplayableDeck = errors.New("deck has no cards or no characters")
)

// BattleConfig holds everything needed to construct a battle.
type BattleConfig struct {
	Deck0, Deck1 *Deck
	Name0, Name1 string
	Catalog      *Catalog
	Effects      *EffectRegistry
	Logger       log.EventLogger
	Seed         int64 // RNG seed (0 for random)
	NoShuffle    bool  // skip the deck shuffle (for deterministic tests)
}

// Battle is the turn controller: two player states, whose turn it is, and
// win detection. All mutation funnels through PlayCard and EndTurn; the
// network replay path uses the very same entry points as local input.
type Battle struct {
	Players    [2]*PlayerState
	Turn       int // 1-based turn counter
	TurnPlayer int // 0 or 1: whose turn it is
	Phase      Phase

	Winner int // 0, 1, or -1 (no winner yet, or draw once finished)
	Over   bool
	Result string

	Catalog *Catalog
	Effects *EffectRegistry
	Logger  log.EventLogger

	rng       *rand.Rand
	noShuffle bool
}

// NewBattle validates both decks and builds the two player states. The
// battle sits in PhaseWaitingForPlayers until Start.
func NewBattle(cfg BattleConfig) (*Battle, error) {
	for i, d := range []*Deck{cfg.Deck0, cfg.Deck1} {
		if d == nil || len(d.Cards) == 0 || len(d.Characters) == 0 {
			return nil, fmt.Errorf("player %d: %w", i, ErrUnplayableDeck)
		}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}
	effects := cfg.Effects
	if effects == nil {
		effects = DefaultEffects()
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	name0, name1 := cfg.Name0, cfg.Name1
	if name0 == "" {
		name0 = "Player 1"
	}
	if name1 == "" {
		name1 = "Player 2"
	}

	b := &Battle{
		Players: [2]*PlayerState{
			NewPlayerState(name0, cfg.Deck0),
			NewPlayerState(name1, cfg.Deck1),
		},
		Phase:     PhaseWaitingForPlayers,
		Winner:    -1,
		Catalog:   cfg.Catalog,
		Effects:   effects,
		Logger:    logger,
		rng:       rand.New(rand.NewSource(seed)),
		noShuffle: cfg.NoShuffle,
	}
	return b, nil
}

// Start shuffles both draw piles, deals the opening hands, and begins the
// first turn. Player 0 (the hosting side) moves first by convention.
func (b *Battle) Start() {
	if b.Phase != PhaseWaitingForPlayers {
		return
	}
	for p := 0; p < 2; p++ {
		if !b.noShuffle {
			b.Players[p].ShuffleDeck(b.rng)
			b.log(log.NewShuffleEvent(0, p))
		}
		for i := 0; i < OpeningHandSize; i++ {
			b.Players[p].DrawCard()
		}
	}
	b.Phase = PhaseInProgress
	b.TurnPlayer = 0
	b.beginTurn()
}

// Opponent returns the index of the other player.
func (b *Battle) Opponent(player int) int {
	return 1 - player
}

// CurrentPlayer returns the side whose turn it is.
func (b *Battle) CurrentPlayer() *PlayerState {
	return b.Players[b.TurnPlayer]
}

// OpponentPlayer returns the side not on turn.
func (b *Battle) OpponentPlayer() *PlayerState {
	return b.Players[b.Opponent(b.TurnPlayer)]
}

// beginTurn bumps the counter and runs start-of-turn regen and draw for the
// turn player.
func (b *Battle) beginTurn() {
	b.Turn++
	p := b.CurrentPlayer()
	b.log(log.NewTurnEvent(b.Turn, b.TurnPlayer, p.Name))
	if card := p.StartTurn(); card != nil {
		b.log(log.NewDrawEvent(b.Turn, b.TurnPlayer, card.Name))
	}
	b.log(log.NewRegenEvent(b.Turn, b.TurnPlayer, p.BaseMana))
}

// CardCost is the cost actually paid for a card: any card carrying the
// Physical element is free regardless of its listed cost.
func CardCost(card *Card) int {
	if card.HasElement(ElementPhysical) {
		return 0
	}
	return card.Cost
}

// ComputeDamage derives a card's damage before application: at least 1,
// doubled when a mage casts a card sharing one of its elements, then run
// through the effect registry transform for the card id.
func (b *Battle) ComputeDamage(card *Card, actor *CharacterState, attacker, defender *PlayerState) int {
	dmg := card.Cost
	if dmg < 1 {
		dmg = 1
	}
	if actor.Character.IsMage() && card.SharesElement(actor.Character) {
		dmg *= 2
	}
	return b.Effects.Transform(card.ID, attacker, defender, dmg)
}

// CanPlay validates a play without mutating anything, for callers that want
// to refuse life payment. Returns the same sentinel errors PlayCard would,
// plus ErrCannotAfford when the cost exceeds energy plus mana.
func (b *Battle) CanPlay(player, handIndex, actorSlot int) error {
	if err := b.validatePlay(player, handIndex, actorSlot); err != nil {
		return err
	}
	cur := b.Players[player]
	card := cur.Hand[handIndex]
	if !cur.CanAfford(CardCost(card), cur.Chars[actorSlot]) {
		return ErrCannotAfford
	}
	return nil
}

func (b *Battle) validatePlay(player, handIndex, actorSlot int) error {
	if b.Over {
		return ErrBattleOver
	}
	if b.Phase != PhaseInProgress {
		return ErrNotStarted
	}
	if player != b.TurnPlayer {
		return ErrNotYourTurn
	}
	cur := b.Players[player]
	if handIndex < 0 || handIndex >= len(cur.Hand) {
		return ErrBadHandIndex
	}
	if actorSlot < 0 || actorSlot >= ActiveSlots || actorSlot >= len(cur.Chars) {
		return ErrBadActorSlot
	}
	actor := cur.Chars[actorSlot]
	if !actor.Alive() {
		return ErrActorDown
	}
	card := cur.Hand[handIndex]
	if !actor.Character.IsMage() && !card.IsPhysicalOnly() {
		return ErrWrongElement
	}
	return nil
}

// PlayCard runs the full play pipeline for the given player: validation,
// cost payment (life fallback included), damage computation and application,
// death and overflow resolution, discard, resolution hook, win check.
// A validation error leaves all state untouched.
func (b *Battle) PlayCard(player, handIndex, actorSlot int, target Target) error {
	if err := b.validatePlay(player, handIndex, actorSlot); err != nil {
		return err
	}

	cur := b.Players[player]
	opp := b.Players[b.Opponent(player)]
	card := cur.Hand[handIndex]
	actor := cur.Chars[actorSlot]

	if !target.Base {
		if target.Slot < 0 || target.Slot >= ActiveSlots || target.Slot >= len(opp.Chars) {
			return ErrBadTarget
		}
	}
	if !opp.IsValidTarget(target) {
		return ErrBadTarget
	}

	cost := CardCost(card)
	lifePaid := cur.PayCost(cost, actor)
	b.log(log.NewPlayCardEvent(b.Turn, player, card.Name, actor.Character.Name, cost))
	if lifePaid > 0 {
		b.log(log.NewLifePaymentEvent(b.Turn, player, actor.Character.Name, lifePaid))
		if !actor.Alive() {
			// Paying with life can kill the caster. No overflow: the
			// payment stops at zero.
			b.log(log.NewDefeatEvent(b.Turn, player, actor.Character.Name))
			if cur.ResolveDeath(actorSlot) {
				b.log(log.NewPromoteEvent(b.Turn, player, cur.Chars[actorSlot].Character.Name, actorSlot))
			}
		}
	}

	dmg := b.ComputeDamage(card, actor, cur, opp)
	magic := !card.HasElement(ElementPhysical)

	if target.Base {
		opp.BaseHP -= dmg
		b.log(log.NewBaseDamageEvent(b.Turn, b.Opponent(player), dmg, opp.BaseHP))
	} else {
		victim := opp.Chars[target.Slot]
		absorbed, overflow := opp.ApplyDamage(target.Slot, dmg, magic)
		if absorbed > 0 {
			b.log(log.NewAbsorbEvent(b.Turn, b.Opponent(player), victim.Character.Name, absorbed))
		}
		b.log(log.NewDamageEvent(b.Turn, b.Opponent(player), victim.Character.Name, dmg, magic))
		if !victim.Alive() {
			b.log(log.NewDefeatEvent(b.Turn, b.Opponent(player), victim.Character.Name))
			if opp.ResolveDeath(target.Slot) {
				b.log(log.NewPromoteEvent(b.Turn, b.Opponent(player), opp.Chars[target.Slot].Character.Name, target.Slot))
			}
			if overflow > 0 {
				opp.BaseHP -= overflow
				b.log(log.NewOverflowEvent(b.Turn, b.Opponent(player), overflow))
				b.log(log.NewBaseDamageEvent(b.Turn, b.Opponent(player), overflow, opp.BaseHP))
			}
		}
	}

	cur.Discard = append(cur.Discard, cur.RemoveFromHand(handIndex))
	b.Effects.Resolve(card.ID, b, cur, opp, card)

	b.CheckWin()
	return nil
}

// EndTurn flips turn ownership and starts the other side's turn.
func (b *Battle) EndTurn(player int) error {
	if b.Over {
		return ErrBattleOver
	}
	if b.Phase != PhaseInProgress {
		return ErrNotStarted
	}
	if player != b.TurnPlayer {
		return ErrNotYourTurn
	}
	b.log(log.NewEndTurnEvent(b.Turn, player))
	b.TurnPlayer = b.Opponent(b.TurnPlayer)
	b.beginTurn()
	return nil
}

// CheckWin ends the battle the instant either base falls to 0. Both bases
// reaching 0 in the same resolution is a draw, surfaced distinctly rather
// than awarded to one side. Returns true if the battle is over.
func (b *Battle) CheckWin() bool {
	if b.Over {
		return true
	}
	p0Dead := b.Players[0].BaseHP <= 0
	p1Dead := b.Players[1].BaseHP <= 0

	switch {
	case p0Dead && p1Dead:
		b.finish(-1, "both bases destroyed in the same resolution")
		b.log(log.NewDrawGameEvent(b.Turn, b.Result))
	case p0Dead:
		b.finish(1, fmt.Sprintf("%s's base destroyed", b.Players[0].Name))
		b.log(log.NewWinEvent(b.Turn, 1, b.Result))
	case p1Dead:
		b.finish(0, fmt.Sprintf("%s's base destroyed", b.Players[1].Name))
		b.log(log.NewWinEvent(b.Turn, 0, b.Result))
	default:
		return false
	}
	return true
}

func (b *Battle) finish(winner int, reason string) {
	b.Over = true
	b.Phase = PhaseFinished
	b.Winner = winner
	b.Result = reason
}

func (b *Battle) log(event log.GameEvent) {
	b.Logger.Log(event)
}
