package log

import (
	"strings"
	"testing"
)

func TestMemoryLoggerAssignsSequence(t *testing.T) {
	l := NewMemoryLogger()
	l.Log(NewTurnEvent(1, 0, "P1"))
	l.Log(NewEndTurnEvent(1, 0))
	l.Log(NewTurnEvent(2, 1, "P2"))

	events := l.Events()
	if len(events) != 3 {
		t.Fatalf("event count = %d, want 3", len(events))
	}
	for i, e := range events {
		if e.Seq != i+1 {
			t.Errorf("event %d seq = %d, want %d", i, e.Seq, i+1)
		}
	}
}

func TestEventsOfType(t *testing.T) {
	l := NewMemoryLogger()
	l.Log(NewTurnEvent(1, 0, "P1"))
	l.Log(NewDrawEvent(1, 0, "Water Bolt"))
	l.Log(NewDrawEvent(1, 0, "Punch"))

	draws := l.EventsOfType(EventDraw)
	if len(draws) != 2 {
		t.Fatalf("draw events = %d, want 2", len(draws))
	}
	if draws[0].Card != "Water Bolt" {
		t.Errorf("first draw card = %q", draws[0].Card)
	}
	if len(l.EventsOfType(EventWin)) != 0 {
		t.Error("no win events were logged")
	}
}

func TestLastEvent(t *testing.T) {
	l := NewMemoryLogger()
	if l.LastEvent().Type != EventNewTurn {
		// Zero event: type is the zero value, which happens to be NewTurn.
		// What matters is that it does not panic on an empty log.
		t.Error("empty log should return the zero event")
	}
	l.Log(NewWinEvent(7, 1, "base destroyed"))
	if l.LastEvent().Type != EventWin {
		t.Errorf("last event type = %v, want Win", l.LastEvent().Type)
	}
}

func TestTextLoggerWritesLines(t *testing.T) {
	var sb strings.Builder
	l := NewTextLogger(&sb)
	l.Log(NewDamageEvent(3, 1, "Pit Brawler", 6, false))
	l.Log(NewDamageEvent(3, 1, "Aurelia", 8, true))

	out := sb.String()
	if !strings.Contains(out, "physical damage") {
		t.Errorf("missing physical damage line in %q", out)
	}
	if !strings.Contains(out, "magic damage") {
		t.Errorf("missing magic damage line in %q", out)
	}
	if got := strings.Count(out, "\n"); got != 2 {
		t.Errorf("line count = %d, want 2", got)
	}
	// The text logger still accumulates for inspection.
	if len(l.Events()) != 2 {
		t.Errorf("stored events = %d, want 2", len(l.Events()))
	}
}

func TestFormatAll(t *testing.T) {
	events := []GameEvent{
		NewTurnEvent(1, 0, "P1"),
		NewEmoteEvent(1, 1, ":)"),
	}
	out := FormatAll(events)
	if got := strings.Count(out, "\n"); got != 2 {
		t.Errorf("line count = %d, want 2", got)
	}
	if !strings.Contains(out, "P2 emotes: :)") {
		t.Errorf("missing emote line in %q", out)
	}
}
