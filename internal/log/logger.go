package log

import (
	"fmt"
	"io"
	"strings"
)

// EventLogger is the interface for logging battle events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- Formatting ---

// playerName returns "P1" or "P2" for display.
func playerName(p int) string {
	return fmt.Sprintf("P%d", p+1)
}

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	return fmt.Sprintf("T%-3d %-11s | %s", e.Turn, e.Type, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewTurnEvent(turn, player int, name string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventNewTurn,
		Details: fmt.Sprintf("=== Turn %d (%s) ===", turn, name),
	}
}

func NewDrawEvent(turn, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventDraw,
		Card:    cardName,
		Details: fmt.Sprintf("%s draws a card", playerName(player)),
	}
}

func NewRegenEvent(turn, player, mana int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventRegen,
		Details: fmt.Sprintf("%s regenerates to %d base mana", playerName(player), mana),
	}
}

func NewShuffleEvent(turn, player int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventShuffle,
		Details: fmt.Sprintf("%s shuffled their deck", playerName(player)),
	}
}

func NewPlayCardEvent(turn, player int, cardName, actorName string, cost int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventPlayCard,
		Card:    cardName,
		Details: fmt.Sprintf("%s: %s casts %s (cost %d)", playerName(player), actorName, cardName, cost),
	}
}

func NewLifePaymentEvent(turn, player int, actorName string, amount int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventLifePayment,
		Details: fmt.Sprintf("%s pays %d of the cost with life", actorName, amount),
	}
}

func NewDamageEvent(turn, player int, targetName string, amount int, magic bool) GameEvent {
	kind := "physical"
	if magic {
		kind = "magic"
	}
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventDamage,
		Details: fmt.Sprintf("%s takes %d %s damage", targetName, amount, kind),
	}
}

func NewAbsorbEvent(turn, player int, targetName string, amount int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventAbsorb,
		Details: fmt.Sprintf("%s absorbs %d damage with energy", targetName, amount),
	}
}

func NewDefeatEvent(turn, player int, charName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventDefeat,
		Card:    charName,
		Details: fmt.Sprintf("%s's %s is defeated", playerName(player), charName),
	}
}

func NewPromoteEvent(turn, player int, charName string, slot int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventPromote,
		Card:    charName,
		Details: fmt.Sprintf("%s's reserve %s takes slot %d", playerName(player), charName, slot),
	}
}

func NewOverflowEvent(turn, player, amount int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventOverflow,
		Details: fmt.Sprintf("%d overflow damage spills to %s's base", amount, playerName(player)),
	}
}

func NewBaseDamageEvent(turn, player, amount, remaining int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventBaseDamage,
		Details: fmt.Sprintf("%s's base takes %d damage (%d left)", playerName(player), amount, remaining),
	}
}

func NewEndTurnEvent(turn, player int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventEndTurn,
		Details: fmt.Sprintf("%s ends the turn", playerName(player)),
	}
}

func NewWinEvent(turn, winner int, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  winner,
		Type:    EventWin,
		Details: fmt.Sprintf("%s wins! (%s)", playerName(winner), reason),
	}
}

func NewDrawGameEvent(turn int, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Type:    EventDrawGame,
		Details: fmt.Sprintf("Draw: %s", reason),
	}
}

func NewEmoteEvent(turn, player int, text string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventEmote,
		Details: fmt.Sprintf("%s emotes: %s", playerName(player), text),
	}
}
