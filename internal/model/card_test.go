package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardString(t *testing.T) {
	assert.Equal(t, "AS", Card{Rank: Ace, Suit: Spades}.String())
	assert.Equal(t, "TD", Card{Rank: Ten, Suit: Diamonds}.String())
	assert.Equal(t, "2H", Card{Rank: Two, Suit: Hearts}.String())
	assert.Equal(t, "??", Card{}.String())
}

func TestParseCardRoundTrip(t *testing.T) {
	for _, suit := range Suits {
		for _, rank := range Ranks {
			card := Card{Rank: rank, Suit: suit}
			parsed, err := ParseCard(card.String())
			require.NoError(t, err)
			assert.Equal(t, card, parsed)
		}
	}
}

func TestParseCardRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "A", "ASD", "1H", "AX", "XH"} {
		_, err := ParseCard(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestCardJSONUsesWireForm(t *testing.T) {
	data, err := json.Marshal(MustParseCards("AH", "TD"))
	require.NoError(t, err)
	assert.JSONEq(t, `["AH","TD"]`, string(data))

	var cards []Card
	require.NoError(t, json.Unmarshal(data, &cards))
	assert.Equal(t, MustParseCards("AH", "TD"), cards)
}

func TestMustParseCardsPanicsOnBadInput(t *testing.T) {
	assert.Panics(t, func() { MustParseCards("ZZ") })
}
