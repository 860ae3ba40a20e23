package mcp

import (
	"github.com/peterkuimelis/magicwound/internal/game"
)

// StateView is the battle state from one player's perspective, as JSON for
// the tool responses.
type StateView struct {
	You        PlayerView `json:"you"`
	Opponent   PlayerView `json:"opponent"`
	Turn       int        `json:"turn"`
	Phase      string     `json:"phase"`
	IsYourTurn bool       `json:"is_your_turn"`
}

// PlayerView shows one side of the board. The hand is listed only for the
// viewing player; the opponent gets a count.
type PlayerView struct {
	Name         string     `json:"name"`
	BaseHP       int        `json:"base_hp"`
	BaseMana     int        `json:"base_mana"`
	Hand         []CardView `json:"hand,omitempty"`
	HandCount    int        `json:"hand_count"`
	Characters   []CharView `json:"characters"`
	DeckCount    int        `json:"deck_count"`
	DiscardCount int        `json:"discard_count"`
}

// CardView describes one hand card.
type CardView struct {
	Index    int    `json:"index"`
	ID       string `json:"id"`
	Name     string `json:"name"`
	Cost     int    `json:"cost"`
	Elements string `json:"elements"`
	Type     string `json:"type"`
}

// CharView describes one character on the field. Slot 2 is the reserve.
type CharView struct {
	Slot    int    `json:"slot"`
	Name    string `json:"name"`
	HP      int    `json:"hp"`
	Energy  int    `json:"energy,omitempty"`
	Mage    bool   `json:"mage,omitempty"`
	Alive   bool   `json:"alive"`
	Reserve bool   `json:"reserve,omitempty"`
}

// BuildStateView renders the battle from the given player's perspective.
func BuildStateView(b *game.Battle, player int) *StateView {
	me := b.Players[player]
	opp := b.Players[b.Opponent(player)]

	sv := &StateView{
		Turn:       b.Turn,
		Phase:      b.Phase.String(),
		IsYourTurn: b.TurnPlayer == player,
	}
	sv.You = buildPlayerView(me, true)
	sv.Opponent = buildPlayerView(opp, false)
	return sv
}

func buildPlayerView(p *game.PlayerState, isOwner bool) PlayerView {
	pv := PlayerView{
		Name:         p.Name,
		BaseHP:       p.BaseHP,
		BaseMana:     p.BaseMana,
		HandCount:    len(p.Hand),
		DeckCount:    len(p.Deck),
		DiscardCount: len(p.Discard),
	}
	if isOwner {
		for i, c := range p.Hand {
			pv.Hand = append(pv.Hand, CardView{
				Index:    i,
				ID:       c.ID,
				Name:     c.Name,
				Cost:     c.Cost,
				Elements: elementList(c.Elements),
				Type:     c.Type().String(),
			})
		}
	}
	for i, cs := range p.Chars {
		cv := CharView{
			Slot:    i,
			Name:    cs.Character.Name,
			HP:      cs.HP,
			Alive:   cs.Alive(),
			Reserve: i == game.ReserveSlot,
		}
		if cs.Character.IsMage() {
			cv.Mage = true
			cv.Energy = cs.Energy
		}
		pv.Characters = append(pv.Characters, cv)
	}
	return pv
}

func elementList(elems []game.Element) string {
	s := ""
	for i, e := range elems {
		if i > 0 {
			s += "/"
		}
		s += e.String()
	}
	return s
}
