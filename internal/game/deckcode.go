package game

import (
	"encoding/base64"
	"errors"
	"fmt"
	"hash/crc32"
	"strconv"
	"strings"
)

// ErrBadDeckCode is returned when a token fails base64 decoding, its
// checksum, or carries a deck type ordinal that maps to no known type.
var ErrBadDeckCode = errors.New("invalid deck code")

// Deck codes serialize a deck into a short copy-pasteable token:
//
//	base64( "name;type;charId,charId,charId;cardId,...;limit;" + "|" + checksum )
//
// The checksum is the first 4 lowercase hex digits of the CRC32 of the
// payload. It is a typo detector, not a security control; tokens are not
// tamper-resistant and are not meant to be.

// checksum returns the 4-hex-digit CRC32 prefix for a payload.
func checksum(payload string) string {
	crc := crc32.ChecksumIEEE([]byte(payload))
	return fmt.Sprintf("%08x", crc)[:4]
}

// EncodeDeckCode wraps a raw payload with its checksum and base64-encodes it.
func EncodeDeckCode(payload string) string {
	combined := payload + "|" + checksum(payload)
	return base64.StdEncoding.EncodeToString([]byte(combined))
}

// DecodeDeckCode reverses EncodeDeckCode. It returns ok=false for malformed
// base64, a missing or doubled checksum separator, or a checksum mismatch.
func DecodeDeckCode(token string) (payload string, ok bool) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", false
	}
	parts := strings.Split(string(raw), "|")
	if len(parts) != 2 {
		return "", false
	}
	if checksum(parts[0]) != parts[1] {
		return "", false
	}
	return parts[0], true
}

// EncodeDeck renders a deck's current share token.
func EncodeDeck(d *Deck) string {
	return EncodeDeckCode(deckPayload(d))
}

// IsValidDeckCode reports whether a token decodes and passes its checksum.
func IsValidDeckCode(token string) bool {
	_, ok := DecodeDeckCode(token)
	return ok
}

// deckPayload renders the canonical semicolon-delimited payload for a deck.
// Deck names must not contain ';', ',' or '|'; the builder enforces this.
func deckPayload(d *Deck) string {
	charIDs := make([]string, 0, len(d.Characters))
	for _, ch := range d.Characters {
		charIDs = append(charIDs, ch.ID)
	}
	cardIDs := make([]string, 0, len(d.Cards))
	for _, c := range d.Cards {
		cardIDs = append(cardIDs, c.ID)
	}
	return fmt.Sprintf("%s;%d;%s;%s;%d;",
		d.Name, int(d.Type),
		strings.Join(charIDs, ","),
		strings.Join(cardIDs, ","),
		d.MaxCardLimit)
}

// DeckFromCode reconstructs a deck from a token using catalog lookups.
// Unknown card or character ids are dropped silently; an out-of-range deck
// type ordinal fails the whole decode.
func DeckFromCode(token string, catalog *Catalog) (*Deck, error) {
	payload, ok := DecodeDeckCode(token)
	if !ok {
		return nil, ErrBadDeckCode
	}

	parts := strings.Split(payload, ";")
	if len(parts) < 4 {
		return nil, ErrBadDeckCode
	}

	ordinal, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, ErrBadDeckCode
	}
	dt := DeckType(ordinal)
	if dt != DeckStandard && dt != DeckCasual {
		return nil, fmt.Errorf("%w: deck type ordinal %d", ErrBadDeckCode, ordinal)
	}

	d := &Deck{
		Name:         parts[0],
		Type:         dt,
		MaxCardLimit: DefaultMaxCardLimit,
	}

	for _, id := range strings.Split(parts[2], ",") {
		if id == "" {
			continue
		}
		if ch := catalog.Character(id); ch != nil {
			d.Characters = append(d.Characters, ch)
		}
	}
	for _, id := range strings.Split(parts[3], ",") {
		if id == "" {
			continue
		}
		if c := catalog.Card(id); c != nil {
			d.Cards = append(d.Cards, c)
		}
	}

	if len(parts) >= 5 {
		if limit, err := strconv.Atoi(parts[4]); err == nil {
			d.MaxCardLimit = limit
		}
	}

	d.refreshCode()
	return d, nil
}
