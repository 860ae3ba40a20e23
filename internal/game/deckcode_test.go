package game

import (
	"encoding/base64"
	"strings"
	"testing"
)

func buildSampleDeck(t *testing.T, catalog *Catalog) *Deck {
	t.Helper()
	d, err := NewDeck("Tide", DeckStandard)
	if err != nil {
		t.Fatalf("NewDeck: %v", err)
	}
	for _, id := range []string{"xxmlt", "neko", "soybeanmilk"} {
		if err := d.AddCharacter(catalog.Character(id)); err != nil {
			t.Fatalf("AddCharacter(%s): %v", id, err)
		}
	}
	for _, id := range []string{"madposion", "slowdown", "balance", "whAt"} {
		if err := d.AddCard(catalog.Card(id)); err != nil {
			t.Fatalf("AddCard(%s): %v", id, err)
		}
	}
	return d
}

func TestDeckCodeRoundTrip(t *testing.T) {
	catalog := NewCatalog()
	d := buildSampleDeck(t, catalog)

	got, err := DeckFromCode(d.Code, catalog)
	if err != nil {
		t.Fatalf("DeckFromCode: %v", err)
	}

	if got.Name != d.Name {
		t.Errorf("name = %q, want %q", got.Name, d.Name)
	}
	if got.Type != d.Type {
		t.Errorf("type = %v, want %v", got.Type, d.Type)
	}
	if len(got.Cards) != len(d.Cards) {
		t.Fatalf("card count = %d, want %d", len(got.Cards), len(d.Cards))
	}
	for i := range d.Cards {
		if got.Cards[i].ID != d.Cards[i].ID {
			t.Errorf("card %d = %s, want %s", i, got.Cards[i].ID, d.Cards[i].ID)
		}
	}
	if len(got.Characters) != 3 {
		t.Fatalf("character count = %d, want 3", len(got.Characters))
	}

	// The rebuilt deck re-encodes to the identical token.
	if got.Code != d.Code {
		t.Errorf("re-encoded code differs:\n got %s\nwant %s", got.Code, d.Code)
	}
}

func TestDeckCodeChecksumRejectsTampering(t *testing.T) {
	catalog := NewCatalog()
	d := buildSampleDeck(t, catalog)

	raw, err := base64.StdEncoding.DecodeString(d.Code)
	if err != nil {
		t.Fatalf("decode own code: %v", err)
	}

	// Flip one payload character and re-encode without fixing the checksum.
	tampered := strings.Replace(string(raw), "Tide", "Tidf", 1)
	badToken := base64.StdEncoding.EncodeToString([]byte(tampered))

	if IsValidDeckCode(badToken) {
		t.Error("tampered token passed the checksum")
	}
	if _, err := DeckFromCode(badToken, catalog); err == nil {
		t.Error("DeckFromCode accepted a tampered token")
	}
}

func TestDeckCodeRejectsGarbage(t *testing.T) {
	catalog := NewCatalog()
	for _, token := range []string{
		"",
		"not base64 at all!!!",
		base64.StdEncoding.EncodeToString([]byte("no separator here")),
		base64.StdEncoding.EncodeToString([]byte("too|many|separators")),
	} {
		if IsValidDeckCode(token) {
			t.Errorf("token %q passed validation", token)
		}
		if _, err := DeckFromCode(token, catalog); err == nil {
			t.Errorf("DeckFromCode accepted %q", token)
		}
	}
}

func TestDeckCodeRejectsBadTypeOrdinal(t *testing.T) {
	catalog := NewCatalog()
	token := EncodeDeckCode("Name;9;xxmlt;balance;20;")
	if _, err := DeckFromCode(token, catalog); err == nil {
		t.Error("accepted an out-of-range deck type ordinal")
	}
}

func TestDeckCodeDropsUnknownIDs(t *testing.T) {
	catalog := NewCatalog()
	token := EncodeDeckCode("Name;1;xxmlt,ghost;balance,phantom;20;")
	d, err := DeckFromCode(token, catalog)
	if err != nil {
		t.Fatalf("DeckFromCode: %v", err)
	}
	if len(d.Characters) != 1 || d.Characters[0].ID != "xxmlt" {
		t.Errorf("characters = %v, want only xxmlt", d.Characters)
	}
	if len(d.Cards) != 1 || d.Cards[0].ID != "balance" {
		t.Errorf("cards = %v, want only balance", d.Cards)
	}
}

func TestDeckCodeDefaultsLimit(t *testing.T) {
	catalog := NewCatalog()
	// Old four-part payloads carry no limit field.
	token := EncodeDeckCode("Name;1;xxmlt;balance")
	d, err := DeckFromCode(token, catalog)
	if err != nil {
		t.Fatalf("DeckFromCode: %v", err)
	}
	if d.MaxCardLimit != DefaultMaxCardLimit {
		t.Errorf("limit = %d, want default %d", d.MaxCardLimit, DefaultMaxCardLimit)
	}
}

func TestCodeRefreshesOnMutation(t *testing.T) {
	catalog := NewCatalog()
	d := buildSampleDeck(t, catalog)

	before := d.Code
	d.RemoveCard("balance")
	if d.Code == before {
		t.Error("code did not change after removing a card")
	}
	if !IsValidDeckCode(d.Code) {
		t.Error("refreshed code fails validation")
	}
}
