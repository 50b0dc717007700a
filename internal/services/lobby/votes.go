package lobby

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/pokerhub/holdem-room/internal/model"
	"github.com/pokerhub/holdem-room/internal/services/game"
)

// Vote thresholds are always evaluated against the population connected at
// the moment of the vote, never against the ledger alone: a stale toggle
// from someone who since left or disconnected cannot tip a decision.

// startEligible is the start-vote electorate: connected seated players who
// can actually be dealt in.
func (c *Controller) startEligible(r *model.Room) []*model.Player {
	return lo.Filter(r.Players, func(p *model.Player, _ int) bool {
		return p.Connected && p.Chips > 0
	})
}

// dissolveEligible is the dissolve electorate: every connected member,
// audience included, since dissolution wipes everyone's bank.
func (c *Controller) dissolveEligible(r *model.Room) []*model.Player {
	return lo.Filter(r.Members(), func(p *model.Player, _ int) bool {
		return p.Connected
	})
}

// kickEligible is the kick electorate: connected seated players, the
// target included in the count.
func (c *Controller) kickEligible(r *model.Room) []*model.Player {
	return lo.Filter(r.Players, func(p *model.Player, _ int) bool {
		return p.Connected
	})
}

func countVotes(votes map[model.PlayerID]struct{}, eligible []*model.Player) int {
	return lo.CountBy(eligible, func(p *model.Player) bool {
		_, ok := votes[p.ID]
		return ok
	})
}

// ToggleStartVote casts or withdraws a seated player's vote to start the
// next hand. Starting is unanimous: the hand deals the moment every
// eligible player (at least two of them) has a standing vote.
func (c *Controller) ToggleStartVote(r *model.Room, id model.PlayerID) (game.Outcome, error) {
	if r.Stage != model.StageWaiting {
		return game.OutcomeOngoing, model.ErrHandInProgress
	}
	p := r.Seated(id)
	if p == nil {
		return game.OutcomeOngoing, model.ErrNotSeated
	}

	if !r.Votes.ToggleStart(id) {
		c.sink.Broadcast(model.NewMessage("%s is no longer ready", p.Name))
		return game.OutcomeOngoing, nil
	}

	eligible := c.startEligible(r)
	votes := countVotes(r.Votes.Start, eligible)
	c.sink.Broadcast(model.NewMessage("%s is ready to play (%d/%d)", p.Name, votes, len(eligible)))

	if len(eligible) >= 2 && votes == len(eligible) {
		return c.StartHand(r)
	}
	return game.OutcomeOngoing, nil
}

// ToggleDissolveVote casts or withdraws a vote to dissolve the room. The
// room dissolves once at least half of the connected members (rounded
// down) have standing votes. Reports whether the room was dissolved.
func (c *Controller) ToggleDissolveVote(ctx context.Context, r *model.Room, id model.PlayerID) (bool, error) {
	p := r.Member(id)
	if p == nil {
		return false, model.ErrNotInRoom
	}

	if !r.Votes.ToggleDissolve(id) {
		c.sink.Broadcast(model.NewMessage("%s withdrew their dissolve vote", p.Name))
		return false, nil
	}

	eligible := c.dissolveEligible(r)
	needed := len(eligible) / 2
	votes := countVotes(r.Votes.Dissolve, eligible)
	c.sink.Broadcast(model.NewMessage("%s voted to dissolve the room (%d votes, %d needed)", p.Name, votes, needed))

	if needed > 0 && votes >= needed {
		c.Dissolve(ctx, r)
		return true, nil
	}
	return false, nil
}

// ToggleKickVote casts or withdraws voter's vote to send target back to the
// audience. The kick lands once at least half of the connected seated
// players (rounded down) have standing votes against the target; a player
// cannot vote against themselves. A mid-hand kick folds the target and
// defers the move, exactly like a mid-hand GiveSeat.
func (c *Controller) ToggleKickVote(r *model.Room, voterID, targetID model.PlayerID) (game.Outcome, error) {
	voter := r.Seated(voterID)
	if voter == nil {
		return game.OutcomeOngoing, model.ErrNotSeated
	}
	if targetID == voterID {
		return game.OutcomeOngoing, model.ErrInvalidKickTarget
	}
	target := r.Seated(targetID)
	if target == nil {
		return game.OutcomeOngoing, model.ErrInvalidKickTarget
	}

	if !r.Votes.ToggleKick(targetID, voterID) {
		c.sink.Broadcast(model.NewMessage("%s withdrew their vote to kick %s", voter.Name, target.Name))
		return game.OutcomeOngoing, nil
	}

	eligible := c.kickEligible(r)
	needed := len(eligible) / 2
	votes := countVotes(r.Votes.Kick[targetID], eligible)
	c.sink.Broadcast(model.NewMessage("%s voted to kick %s (%d votes, %d needed)", voter.Name, target.Name, votes, needed))

	if needed > 0 && votes >= needed {
		r.Votes.ClearKick(targetID)
		return c.unseat(r, targetID, fmt.Sprintf("%s was voted back to the audience", target.Name)), nil
	}
	return game.OutcomeOngoing, nil
}
