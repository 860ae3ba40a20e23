package log

// EventType enumerates all observable battle events.
type EventType int

const (
	EventNewTurn EventType = iota
	EventDraw
	EventRegen
	EventPlayCard
	EventLifePayment
	EventDamage
	EventAbsorb
	EventDefeat
	EventPromote
	EventOverflow
	EventBaseDamage
	EventEndTurn
	EventWin
	EventDrawGame
	EventEmote
	EventShuffle
)

func (e EventType) String() string {
	switch e {
	case EventNewTurn:
		return "NewTurn"
	case EventDraw:
		return "Draw"
	case EventRegen:
		return "Regen"
	case EventPlayCard:
		return "PlayCard"
	case EventLifePayment:
		return "LifePayment"
	case EventDamage:
		return "Damage"
	case EventAbsorb:
		return "Absorb"
	case EventDefeat:
		return "Defeat"
	case EventPromote:
		return "Promote"
	case EventOverflow:
		return "Overflow"
	case EventBaseDamage:
		return "BaseDamage"
	case EventEndTurn:
		return "EndTurn"
	case EventWin:
		return "Win"
	case EventDrawGame:
		return "Draw(tie)"
	case EventEmote:
		return "Emote"
	case EventShuffle:
		return "Shuffle"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a battle.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Turn    int       // which turn (1-based)
	Player  int       // acting player (0 or 1)
	Type    EventType // event type
	Card    string    // card name (if applicable)
	Details string    // human-readable detail string
}
