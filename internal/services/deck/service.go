// Package deck builds and shuffles 52-card decks.
package deck

import (
	"github.com/pokerhub/holdem-room/internal/dependencies/random"
	"github.com/pokerhub/holdem-room/internal/model"
)

// Service produces shuffled decks. Randomness is injected so tests can pin
// the permutation.
type Service struct {
	random random.Random
}

func New(random random.Random) *Service {
	return &Service{random: random}
}

// NewDeck returns the 52 cards in canonical order: hearts, diamonds, clubs,
// spades, each running Two up to Ace.
func (s *Service) NewDeck() []model.Card {
	deck := make([]model.Card, 0, 52)
	for _, suit := range model.Suits {
		for _, rank := range model.Ranks {
			deck = append(deck, model.Card{Rank: rank, Suit: suit})
		}
	}
	return deck
}

// Shuffle returns an unbiased Fisher-Yates permutation of deck. The input
// is not modified.
func (s *Service) Shuffle(deck []model.Card) []model.Card {
	shuffled := make([]model.Card, len(deck))
	copy(shuffled, deck)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := s.random.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}

// Fresh returns a newly shuffled full deck.
func (s *Service) Fresh() []model.Card {
	return s.Shuffle(s.NewDeck())
}
