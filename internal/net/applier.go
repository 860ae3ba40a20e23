package net

import (
	"fmt"
	"strconv"

	"github.com/peterkuimelis/magicwound/internal/game"
	"github.com/peterkuimelis/magicwound/internal/log"
)

// Applier replays the remote side's messages into a battle. The remote
// player's moves go through the same Battle entry points as local input, so
// both peers converge on the same state as long as messages arrive in order.
type Applier struct {
	Battle  *game.Battle
	Session *Session

	// RemotePlayer is the battle index the peer controls.
	RemotePlayer int

	// OnEmote, if set, is called for each EMOJI line.
	OnEmote func(text string)
}

// NewApplier creates an applier for the given battle and peer link.
func NewApplier(b *game.Battle, s *Session, remotePlayer int) *Applier {
	return &Applier{Battle: b, Session: s, RemotePlayer: remotePlayer}
}

// Poll drains every message currently queued and applies it. Returns the
// first application error; transport-level oddities (short lines, unknown
// cards) are returned too so the caller can surface a desync instead of
// silently diverging.
func (a *Applier) Poll() error {
	for {
		msg, ok := a.Session.Next()
		if !ok {
			return nil
		}
		if err := a.Apply(msg); err != nil {
			return err
		}
	}
}

// Apply replays a single remote message.
func (a *Applier) Apply(msg Message) error {
	switch msg.Type {
	case MsgPlay:
		return a.applyPlay(msg.Args)
	case MsgEndTurn:
		if err := a.Battle.EndTurn(a.RemotePlayer); err != nil {
			return fmt.Errorf("remote end turn: %w", err)
		}
		return nil
	case MsgEmoji:
		text := ""
		if len(msg.Args) > 0 {
			text = msg.Args[0]
		}
		a.Battle.Logger.Log(log.NewEmoteEvent(a.Battle.Turn, a.RemotePlayer, text))
		if a.OnEmote != nil {
			a.OnEmote(text)
		}
		return nil
	case MsgName, MsgDeck, MsgStartBattle:
		// Pre-battle traffic arriving late is harmless.
		return nil
	default:
		return nil
	}
}

// applyPlay decodes PLAY;<card id>;<actor slot>;<target> and runs it. The
// card id is resolved against the remote player's current hand.
func (a *Applier) applyPlay(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("remote play: want 3 args, got %d", len(args))
	}
	cardID := args[0]
	actorSlot, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("remote play: bad actor slot %q: %w", args[1], err)
	}
	target, err := DecodeTarget(args[2])
	if err != nil {
		return fmt.Errorf("remote play: %w", err)
	}

	remote := a.Battle.Players[a.RemotePlayer]
	handIndex := remote.HandIndexOf(cardID)
	if handIndex < 0 {
		return fmt.Errorf("remote play: card %q not in remote hand", cardID)
	}
	if err := a.Battle.PlayCard(a.RemotePlayer, handIndex, actorSlot, target); err != nil {
		return fmt.Errorf("remote play %s: %w", cardID, err)
	}
	return nil
}

// SendPlay mirrors a local play to the peer.
func (a *Applier) SendPlay(cardID string, actorSlot int, target game.Target) error {
	return a.Session.Send(MsgPlay, cardID, strconv.Itoa(actorSlot), EncodeTarget(target))
}

// SendEndTurn mirrors a local end-of-turn to the peer.
func (a *Applier) SendEndTurn() error {
	return a.Session.Send(MsgEndTurn)
}

// SendEmote sends an emote line to the peer.
func (a *Applier) SendEmote(text string) error {
	return a.Session.Send(MsgEmoji, text)
}
