package pot

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/pokerhub/holdem-room/internal/model"
	"github.com/pokerhub/holdem-room/internal/services/hand"
)

type ServiceSuite struct {
	suite.Suite
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.service = New()
}

func player(id string, committed int, folded bool) *model.Player {
	return &model.Player{
		ID:             model.PlayerID(id),
		Name:           id,
		TotalCommitted: committed,
		Folded:         folded,
	}
}

func (s *ServiceSuite) TestSinglePotEqualCommitments() {
	players := []*model.Player{
		player("a", 100, false),
		player("b", 100, false),
		player("c", 100, false),
	}

	layers, refunds := s.service.BuildSidePots(players)

	s.Require().Len(layers, 1)
	s.Equal(300, layers[0].Amount)
	s.Len(layers[0].Eligible, 3)
	s.Empty(refunds)
}

func (s *ServiceSuite) TestAllInLayering() {
	// stacks 50/100/200 all-in: main pot 150 for all three, side pot 100
	// for the two bigger stacks, and the top 100 is an uncalled stake
	// returned to its owner
	players := []*model.Player{
		player("short", 50, false),
		player("mid", 100, false),
		player("big", 200, false),
	}

	layers, refunds := s.service.BuildSidePots(players)

	s.Require().Len(layers, 2)
	s.Equal(150, layers[0].Amount)
	s.Len(layers[0].Eligible, 3)
	s.Equal(100, layers[1].Amount)
	s.Len(layers[1].Eligible, 2)
	s.Equal(map[model.PlayerID]int{"big": 100}, refunds)
}

func (s *ServiceSuite) TestLayersPlusRefundsConserveChips() {
	players := []*model.Player{
		player("a", 30, false),
		player("b", 75, true),
		player("c", 120, false),
		player("d", 120, false),
		player("e", 500, false),
	}

	layers, refunds := s.service.BuildSidePots(players)

	total := 0
	for _, l := range layers {
		total += l.Amount
	}
	for _, r := range refunds {
		total += r
	}
	s.Equal(30+75+120+120+500, total)
}

func (s *ServiceSuite) TestFoldedPlayerFundsButCannotWin() {
	players := []*model.Player{
		player("a", 100, false),
		player("b", 100, true),
		player("c", 100, false),
	}

	layers, _ := s.service.BuildSidePots(players)

	s.Require().Len(layers, 1)
	s.Equal(300, layers[0].Amount, "folded commitment stays in the pot")
	for _, p := range layers[0].Eligible {
		s.NotEqual(model.PlayerID("b"), p.ID)
	}
}

func (s *ServiceSuite) TestZeroCommitmentIgnored() {
	players := []*model.Player{
		player("a", 0, false),
		player("b", 60, false),
		player("c", 60, false),
	}

	layers, refunds := s.service.BuildSidePots(players)

	s.Require().Len(layers, 1)
	s.Equal(120, layers[0].Amount)
	s.Empty(refunds)
}

func (s *ServiceSuite) TestSettleBestHandTakesLayer() {
	a := player("a", 100, false)
	b := player("b", 100, false)
	layers := []Layer{{Amount: 200, Eligible: []*model.Player{a, b}}}
	scores := map[model.PlayerID]hand.Score{
		"a": {hand.Pair, 9, 14, 7, 3},
		"b": {hand.Flush, 14, 11, 9, 6, 2},
	}

	settlement := s.service.Settle(layers, scores)

	s.Equal(map[model.PlayerID]int{"b": 200}, settlement.Winnings)
	s.Require().Len(settlement.Winners, 1)
	s.Equal("flush", settlement.Winners[0].HandName)
}

func (s *ServiceSuite) TestSettleSplitsTiesWithFlooredShares() {
	a := player("a", 0, false)
	b := player("b", 0, false)
	c := player("c", 0, false)
	layers := []Layer{{Amount: 100, Eligible: []*model.Player{a, b, c}}}
	tie := hand.Score{hand.Straight, 9}
	scores := map[model.PlayerID]hand.Score{"a": tie, "b": tie, "c": tie}

	settlement := s.service.Settle(layers, scores)

	s.Equal(33, settlement.Winnings["a"])
	s.Equal(33, settlement.Winnings["b"])
	s.Equal(33, settlement.Winnings["c"])
	// the floored remainder of 1 is not distributed
}

func (s *ServiceSuite) TestSettleResolvesLayersIndependently() {
	short := player("short", 50, false)
	mid := player("mid", 100, false)
	big := player("big", 100, false)
	layers := []Layer{
		{Amount: 150, Eligible: []*model.Player{short, mid, big}},
		{Amount: 100, Eligible: []*model.Player{mid, big}},
	}
	scores := map[model.PlayerID]hand.Score{
		"short": {hand.FourOfAKind, 12, 7}, // best overall, only in main pot
		"mid":   {hand.Pair, 9, 14, 7, 3},
		"big":   {hand.TwoPair, 9, 4, 13},
	}

	settlement := s.service.Settle(layers, scores)

	s.Equal(150, settlement.Winnings["short"])
	s.Equal(100, settlement.Winnings["big"], "side pot goes to the best eligible hand")
	s.Zero(settlement.Winnings["mid"])

	s.Require().Len(settlement.Layers, 2)
	s.Equal(150, settlement.Layers[0].Amount)
	s.Equal(100, settlement.Layers[1].Amount)
}

func (s *ServiceSuite) TestSettleAggregatesWinnersAcrossLayers() {
	a := player("a", 0, false)
	b := player("b", 0, false)
	layers := []Layer{
		{Amount: 100, Eligible: []*model.Player{a, b}},
		{Amount: 60, Eligible: []*model.Player{a, b}},
	}
	scores := map[model.PlayerID]hand.Score{
		"a": {hand.Flush, 14, 11, 9, 6, 2},
		"b": {hand.Pair, 9, 14, 7, 3},
	}

	settlement := s.service.Settle(layers, scores)

	s.Require().Len(settlement.Winners, 1)
	s.Equal(model.PlayerID("a"), settlement.Winners[0].ID)
	s.Equal(160, settlement.Winners[0].Amount)
}

func (s *ServiceSuite) TestSettleSkipsLayerWithNoEligiblePlayers() {
	layers := []Layer{{Amount: 80, Eligible: nil}}

	settlement := s.service.Settle(layers, map[model.PlayerID]hand.Score{})

	s.Empty(settlement.Winnings)
	s.Empty(settlement.Layers)
}
