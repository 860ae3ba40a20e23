package net

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/peterkuimelis/magicwound/internal/game"
)

// Line-oriented message types for the peer protocol. Every message is one
// line: a type tag, then semicolon-separated arguments. Unknown tags are
// skipped by the reader so peers can add messages without breaking old
// builds.

// MsgType tags a protocol line.
type MsgType string

const (
	MsgName        MsgType = "NAME"        // NAME;<player name>
	MsgDeck        MsgType = "DECK"        // DECK;<deck name>;<deck code>
	MsgStartBattle MsgType = "STARTBATTLE" // STARTBATTLE;<shuffle seed>
	MsgPlay        MsgType = "PLAY"        // PLAY;<card id>;<actor slot>;<target>
	MsgEndTurn     MsgType = "ENDTURN"     // ENDTURN
	MsgEmoji       MsgType = "EMOJI"       // EMOJI;<text>
)

// Message is one decoded protocol line.
type Message struct {
	Type MsgType
	Args []string
}

// ParseLine decodes a protocol line. The second return value is false for
// blank lines and unknown tags; those are ignored, not errors.
func ParseLine(line string) (Message, bool) {
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return Message{}, false
	}
	parts := strings.Split(line, ";")
	t := MsgType(parts[0])
	switch t {
	case MsgName, MsgDeck, MsgStartBattle, MsgPlay, MsgEndTurn, MsgEmoji:
		return Message{Type: t, Args: parts[1:]}, true
	default:
		return Message{}, false
	}
}

// Encode renders a message back into its wire line, without the trailing
// newline.
func Encode(t MsgType, args ...string) string {
	if len(args) == 0 {
		return string(t)
	}
	return string(t) + ";" + strings.Join(args, ";")
}

// EncodeTarget renders a play target: "B" for the base, otherwise the
// active slot number.
func EncodeTarget(t game.Target) string {
	if t.Base {
		return "B"
	}
	return strconv.Itoa(t.Slot)
}

// DecodeTarget parses a play target from the wire.
func DecodeTarget(s string) (game.Target, error) {
	if s == "B" {
		return game.TargetBase(), nil
	}
	slot, err := strconv.Atoi(s)
	if err != nil {
		return game.Target{}, fmt.Errorf("bad target %q: %w", s, err)
	}
	return game.TargetSlot(slot), nil
}
