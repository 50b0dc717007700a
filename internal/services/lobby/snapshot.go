package lobby

import (
	"sort"

	"github.com/pokerhub/holdem-room/internal/model"
)

// StateFor builds the room snapshot addressed to one recipient. Everything
// in it is public except SelfHand, which carries only the recipient's own
// hole cards; other players' hands appear solely as a card count.
func (c *Controller) StateFor(r *model.Room, viewerID model.PlayerID) model.StateEvent {
	startEligible := c.startEligible(r)
	dissolveEligible := c.dissolveEligible(r)
	kickEligible := c.kickEligible(r)

	players := make([]model.PlayerPublic, 0, len(r.Players)+len(r.Audience))
	for i, p := range r.Players {
		pub := publicView(p, model.RoleSeated, r.Votes)
		pub.Dealer = i == r.DealerIndex && r.Stage != model.StageWaiting
		pub.SmallBlind = i == r.SmallBlindIndex && r.Stage != model.StageWaiting
		pub.BigBlind = i == r.BigBlindIndex && r.Stage != model.StageWaiting
		players = append(players, pub)
	}
	for _, p := range r.Audience {
		players = append(players, publicView(p, model.RoleAudience, r.Votes))
	}

	kickVotes := make([]model.KickStatus, 0, len(r.Votes.Kick))
	for targetID, voters := range r.Votes.Kick {
		target := r.Seated(targetID)
		if target == nil {
			continue
		}
		kickVotes = append(kickVotes, model.KickStatus{
			TargetID:   targetID,
			TargetName: target.Name,
			Votes:      countVotes(voters, kickEligible),
			Needed:     len(kickEligible) / 2,
		})
	}
	sort.Slice(kickVotes, func(i, j int) bool {
		return kickVotes[i].TargetID < kickVotes[j].TargetID
	})

	state := model.StateEvent{
		Type:          model.EventState,
		Stage:         r.Stage,
		Players:       players,
		Community:     append([]model.Card{}, r.Community...),
		Pot:           r.Pot,
		CurrentBet:    r.CurrentBet,
		SelfID:        viewerID,
		SelfRole:      model.RoleAudience,
		SelfHand:      []model.Card{},
		StartVotes:    countVotes(r.Votes.Start, startEligible),
		StartTotal:    len(startEligible),
		DissolveVotes: countVotes(r.Votes.Dissolve, dissolveEligible),
		DissolveTotal: len(dissolveEligible),
		KickVotes:     kickVotes,
	}

	if r.Stage.Betting() {
		if current := r.CurrentPlayer(); current != nil {
			state.CurrentPlayerID = current.ID
		}
	}
	if viewer := r.Seated(viewerID); viewer != nil {
		state.SelfRole = model.RoleSeated
		state.SelfHand = append([]model.Card{}, viewer.Hand...)
	}
	return state
}

func publicView(p *model.Player, role model.Role, votes model.VoteLedger) model.PlayerPublic {
	_, votedStart := votes.Start[p.ID]
	_, votedDissolve := votes.Dissolve[p.ID]
	return model.PlayerPublic{
		ID:            p.ID,
		Name:          p.Name,
		Role:          role,
		Chips:         p.Chips,
		Debt:          p.Debt,
		Bet:           p.Bet,
		Folded:        p.Folded,
		AllIn:         p.AllIn,
		Connected:     p.Connected,
		HandCardCount: len(p.Hand),
		VotedStart:    votedStart,
		VotedDissolve: votedDissolve,
		PendingLeave:  p.PendingLeave,
	}
}
