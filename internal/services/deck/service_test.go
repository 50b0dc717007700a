package deck

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/pokerhub/holdem-room/internal/dependencies/mocks"
	"github.com/pokerhub/holdem-room/internal/dependencies/random"
	"github.com/pokerhub/holdem-room/internal/model"
)

type ServiceSuite struct {
	suite.Suite
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) TestNewDeckHas52UniqueCards() {
	service := New(random.New())
	deck := service.NewDeck()

	s.Len(deck, 52)
	seen := make(map[model.Card]struct{})
	for _, c := range deck {
		seen[c] = struct{}{}
	}
	s.Len(seen, 52)
}

func (s *ServiceSuite) TestShufflePreservesMultiset() {
	service := New(random.New())
	deck := service.NewDeck()
	shuffled := service.Shuffle(deck)

	s.Len(shuffled, 52)
	seen := make(map[model.Card]struct{})
	for _, c := range shuffled {
		seen[c] = struct{}{}
	}
	s.Len(seen, 52, "shuffle must be a permutation, not a resample")
}

func (s *ServiceSuite) TestShuffleDoesNotModifyInput() {
	service := New(random.New())
	deck := service.NewDeck()
	original := make([]model.Card, len(deck))
	copy(original, deck)

	service.Shuffle(deck)

	s.Equal(original, deck)
}

func (s *ServiceSuite) TestShuffleWithIdentityRandom() {
	// an exhausted MockRandom makes Fisher-Yates the identity permutation
	service := New(mocks.NewMockRandom())
	deck := service.NewDeck()

	s.Equal(deck, service.Shuffle(deck))
	s.Equal(deck, service.Fresh())
}

func (s *ServiceSuite) TestShuffleWithPinnedSwaps() {
	// deck of four, swaps pinned: i=3 j=0, i=2 j=1, i=1 j=1
	service := New(mocks.NewMockRandom(0, 1, 1))
	input := model.MustParseCards("2H", "3H", "4H", "5H")

	shuffled := service.Shuffle(input)

	s.Equal(model.MustParseCards("5H", "4H", "3H", "2H"), shuffled)
}
