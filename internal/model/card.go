package model

import (
	"encoding/json"
	"fmt"
)

// Rank is a card rank from Two up to Ace. Ace is high, except that the
// evaluator treats A-2-3-4-5 as a five-high straight.
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

type Suit string

const (
	Hearts   Suit = "H"
	Diamonds Suit = "D"
	Clubs    Suit = "C"
	Spades   Suit = "S"
)

// Suits lists the suits in canonical deck-building order.
var Suits = []Suit{Hearts, Diamonds, Clubs, Spades}

// Ranks lists the ranks ascending.
var Ranks = []Rank{
	Two, Three, Four, Five, Six, Seven,
	Eight, Nine, Ten, Jack, Queen, King, Ace,
}

// Card is a rank/suit pair. The zero value is not a valid card.
type Card struct {
	Rank Rank
	Suit Suit
}

const rankChars = "23456789TJQKA"

// String renders the card in wire form, e.g. "AS" or "TD".
func (c Card) String() string {
	if c.Rank < Two || c.Rank > Ace {
		return "??"
	}
	return string(rankChars[c.Rank-Two]) + string(c.Suit)
}

// MarshalJSON writes the wire form, so []Card marshals as ["AS", "TD", ...].
func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Card) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseCard(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCard parses the wire form produced by Card.String.
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return Card{}, fmt.Errorf("invalid card %q", s)
	}
	rank := Rank(-1)
	for i := range rankChars {
		if rankChars[i] == s[0] {
			rank = Rank(i) + Two
			break
		}
	}
	if rank == -1 {
		return Card{}, fmt.Errorf("invalid card rank %q", s)
	}
	switch suit := Suit(s[1]); suit {
	case Hearts, Diamonds, Clubs, Spades:
		return Card{Rank: rank, Suit: suit}, nil
	default:
		return Card{}, fmt.Errorf("invalid card suit %q", s)
	}
}

// MustParseCards parses a list of wire-form cards, panicking on bad input.
// Intended for tests and fixtures.
func MustParseCards(ss ...string) []Card {
	cards := make([]Card, 0, len(ss))
	for _, s := range ss {
		c, err := ParseCard(s)
		if err != nil {
			panic(err)
		}
		cards = append(cards, c)
	}
	return cards
}
