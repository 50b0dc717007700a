// Package pot layers total commitments into side pots and settles each
// layer against the showdown scores.
package pot

import (
	"sort"

	"github.com/pokerhub/holdem-room/internal/model"
	"github.com/pokerhub/holdem-room/internal/services/hand"
)

// Layer is one side-pot layer: an amount and the players eligible to win
// it. Folded players contribute to a layer's amount but are never eligible.
type Layer struct {
	Amount   int
	Eligible []*model.Player
}

// Service is stateless; it exists so callers can inject it like the other
// services.
type Service struct{}

func New() *Service {
	return &Service{}
}

// BuildSidePots slices the players' total commitments into layers, one per
// distinct commitment level, ascending. A level only its top committer
// reached is an uncalled stake: it forms no layer and is returned in
// refunds instead. The layer amounts plus the refunds always sum to the
// total committed.
func (s *Service) BuildSidePots(players []*model.Player) ([]Layer, map[model.PlayerID]int) {
	levels := make([]int, 0, len(players))
	seen := make(map[int]struct{})
	for _, p := range players {
		if p.TotalCommitted > 0 {
			if _, ok := seen[p.TotalCommitted]; !ok {
				seen[p.TotalCommitted] = struct{}{}
				levels = append(levels, p.TotalCommitted)
			}
		}
	}
	sort.Ints(levels)

	var layers []Layer
	refunds := make(map[model.PlayerID]int)
	prev := 0
	for _, level := range levels {
		var contributors []*model.Player
		for _, p := range players {
			if p.TotalCommitted >= level {
				contributors = append(contributors, p)
			}
		}
		amount := (level - prev) * len(contributors)
		prev = level
		if amount <= 0 {
			continue
		}
		if len(contributors) == 1 {
			refunds[contributors[0].ID] += amount
			continue
		}
		var eligible []*model.Player
		for _, p := range contributors {
			if !p.Folded {
				eligible = append(eligible, p)
			}
		}
		layers = append(layers, Layer{Amount: amount, Eligible: eligible})
	}
	return layers, refunds
}

// Settlement is the outcome of resolving every layer: per-player totals,
// the per-layer breakdown, and the aggregate winner list for display.
type Settlement struct {
	Winnings map[model.PlayerID]int
	Layers   []model.PotResult
	Winners  []model.PotWinner
}

// Settle resolves each layer independently: the best score among the
// layer's eligible players takes it, split evenly on an exact tie. Integer
// division floors each share; the remainder of an uneven split is not
// distributed. Settle computes winnings only, it does not move chips.
func (s *Service) Settle(layers []Layer, scores map[model.PlayerID]hand.Score) Settlement {
	settlement := Settlement{Winnings: make(map[model.PlayerID]int)}

	var order []model.PlayerID
	totals := make(map[model.PlayerID]int)
	names := make(map[model.PlayerID]string)

	for _, layer := range layers {
		if len(layer.Eligible) == 0 {
			continue
		}
		var best hand.Score
		for _, p := range layer.Eligible {
			if best == nil || hand.Compare(scores[p.ID], best) > 0 {
				best = scores[p.ID]
			}
		}
		var winners []*model.Player
		for _, p := range layer.Eligible {
			if hand.Compare(scores[p.ID], best) == 0 {
				winners = append(winners, p)
			}
		}

		share := layer.Amount / len(winners)
		result := model.PotResult{Amount: layer.Amount}
		for _, w := range winners {
			settlement.Winnings[w.ID] += share
			result.Winners = append(result.Winners, model.PotWinner{
				ID:       w.ID,
				Name:     w.Name,
				Amount:   share,
				HandName: scores[w.ID].Name(),
			})
			if _, ok := totals[w.ID]; !ok {
				order = append(order, w.ID)
				names[w.ID] = w.Name
			}
			totals[w.ID] += share
		}
		settlement.Layers = append(settlement.Layers, result)
	}

	for _, id := range order {
		settlement.Winners = append(settlement.Winners, model.PotWinner{
			ID:       id,
			Name:     names[id],
			Amount:   totals[id],
			HandName: scores[id].Name(),
		})
	}
	return settlement
}
