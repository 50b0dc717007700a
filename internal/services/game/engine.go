// Package game drives the betting state machine: dealing, blinds, turn
// order, street advancement and showdown.
package game

import (
	"fmt"
	"log/slog"

	"github.com/pokerhub/holdem-room/internal/model"
	"github.com/pokerhub/holdem-room/internal/notify"
	"github.com/pokerhub/holdem-room/internal/protocol"
	"github.com/pokerhub/holdem-room/internal/services/deck"
	"github.com/pokerhub/holdem-room/internal/services/hand"
	"github.com/pokerhub/holdem-room/internal/services/pot"
)

// Outcome tells the caller how a mutation left the hand.
type Outcome int

const (
	// OutcomeOngoing means the hand continues (or no hand was affected).
	OutcomeOngoing Outcome = iota
	// OutcomeHandEnded means the hand ended immediately because everyone
	// else folded; end-of-hand handling must run now.
	OutcomeHandEnded
	// OutcomeShowdown means showdown results were just broadcast;
	// end-of-hand handling must be scheduled after the showdown delay.
	OutcomeShowdown
)

// Engine mutates the room's betting state. It must only be invoked from the
// room runtime's serializer goroutine.
type Engine struct {
	deck   *deck.Service
	pots   *pot.Service
	sink   notify.Sink
	logger *slog.Logger

	smallBlind int
	bigBlind   int
}

func NewEngine(
	deckService *deck.Service,
	potService *pot.Service,
	sink notify.Sink,
	logger *slog.Logger,
	smallBlind int,
	bigBlind int,
) *Engine {
	return &Engine{
		deck:       deckService,
		pots:       potService,
		sink:       sink,
		logger:     logger,
		smallBlind: smallBlind,
		bigBlind:   bigBlind,
	}
}

// BeginHand deals a new hand: rotates the dealer button, posts blinds and
// hands the turn to the seat after the big blind. Validation happens before
// any mutation, so a failed start leaves the room untouched. When the
// blinds alone put every dealt player all-in, there is no one to act and
// the hand runs straight out to showdown.
func (e *Engine) BeginHand(r *model.Room) (Outcome, error) {
	if r.Stage != model.StageWaiting {
		return OutcomeOngoing, model.ErrHandInProgress
	}
	eligible := 0
	for _, p := range r.Players {
		if p.Connected && p.Chips > 0 {
			eligible++
		}
	}
	if eligible < 2 {
		return OutcomeOngoing, model.ErrTooFewPlayers
	}

	for _, p := range r.Players {
		p.ResetForHand()
	}
	r.Deck = e.deck.Fresh()
	r.Community = nil
	r.Pot = 0
	r.CurrentBet = 0
	r.Acted = make(map[model.PlayerID]struct{})
	r.LastRaiserIndex = -1

	n := len(r.Players)
	r.DealerIndex = (r.DealerIndex + 1) % n
	r.SmallBlindIndex = (r.DealerIndex + 1) % n
	r.BigBlindIndex = (r.DealerIndex + 2) % n

	for _, p := range r.Players {
		p.Hand = []model.Card{r.DrawCard(), r.DrawCard()}
	}

	e.postBlind(r, r.Players[r.SmallBlindIndex], e.smallBlind)
	e.postBlind(r, r.Players[r.BigBlindIndex], e.bigBlind)
	r.CurrentBet = e.bigBlind

	r.Stage = model.StagePreflop
	r.CurrentIndex = r.NextActionableIndex((r.BigBlindIndex + 1) % n)

	e.sink.Broadcast(model.NewMessage("new hand: %s deals, %s posts %d, %s posts %d",
		r.Players[r.DealerIndex].Name,
		r.Players[r.SmallBlindIndex].Name, e.smallBlind,
		r.Players[r.BigBlindIndex].Name, e.bigBlind))
	e.logger.Info("hand started",
		slog.Int("players", n),
		slog.String("dealer", string(r.Players[r.DealerIndex].ID)))

	if r.CurrentIndex == -1 {
		return e.advanceStage(r), nil
	}
	return OutcomeOngoing, nil
}

// postBlind commits a forced bet, capped at the player's stack. A short
// stack posting everything is all-in before the first action.
func (e *Engine) postBlind(r *model.Room, p *model.Player, blind int) {
	amount := min(blind, p.Chips)
	p.Chips -= amount
	p.Bet += amount
	p.TotalCommitted += amount
	r.Pot += amount
	if p.Chips == 0 {
		p.AllIn = true
	}
}

// ApplyAction validates and applies one voluntary action by the player
// whose turn it is. Any validation failure returns before the room is
// touched.
func (e *Engine) ApplyAction(r *model.Room, id model.PlayerID, action protocol.ActionType, amount int) (Outcome, error) {
	if !r.Stage.Betting() {
		return OutcomeOngoing, model.ErrNotBettingStage
	}
	idx := r.SeatIndex(id)
	if idx == -1 {
		return OutcomeOngoing, model.ErrNotSeated
	}
	if idx != r.CurrentIndex {
		return OutcomeOngoing, model.ErrNotYourTurn
	}
	p := r.Players[idx]
	if p.Folded || p.AllIn {
		return OutcomeOngoing, model.ErrCannotAct
	}

	switch action {
	case protocol.ActionFold:
		p.Folded = true
		r.Acted[id] = struct{}{}
		e.sink.Broadcast(model.NewMessage("%s folds", p.Name))

	case protocol.ActionCheck:
		if p.Bet < r.CurrentBet {
			return OutcomeOngoing, model.ErrCannotCheck
		}
		r.Acted[id] = struct{}{}
		e.sink.Broadcast(model.NewMessage("%s checks", p.Name))

	case protocol.ActionCall:
		owed := min(r.CurrentBet-p.Bet, p.Chips)
		p.Chips -= owed
		p.Bet += owed
		p.TotalCommitted += owed
		r.Pot += owed
		if p.Chips == 0 {
			p.AllIn = true
		}
		r.Acted[id] = struct{}{}
		e.sink.Broadcast(model.NewMessage("%s calls %d", p.Name, owed))

	case protocol.ActionRaise:
		// amount is the new total the raiser wants to stand at, and must
		// reach at least double the current bet.
		minimum := r.CurrentBet * 2
		if amount <= 0 || amount < minimum {
			return OutcomeOngoing, fmt.Errorf("%w: minimum is %d", model.ErrRaiseTooSmall, minimum)
		}
		total := min(amount, p.Chips+p.Bet)
		added := total - p.Bet
		p.Chips -= added
		p.Bet = total
		p.TotalCommitted += added
		r.Pot += added
		r.CurrentBet = total
		if p.Chips == 0 {
			p.AllIn = true
		}
		// a raise reopens the action for everyone else
		r.Acted = map[model.PlayerID]struct{}{id: {}}
		r.LastRaiserIndex = idx
		e.sink.Broadcast(model.NewMessage("%s raises to %d", p.Name, total))

	case protocol.ActionAllIn:
		pushed := p.Chips
		p.Chips = 0
		p.Bet += pushed
		p.TotalCommitted += pushed
		r.Pot += pushed
		p.AllIn = true
		if p.Bet > r.CurrentBet {
			r.CurrentBet = p.Bet
			r.Acted = map[model.PlayerID]struct{}{id: {}}
			r.LastRaiserIndex = idx
		} else {
			r.Acted[id] = struct{}{}
		}
		e.sink.Broadcast(model.NewMessage("%s is all-in for %d", p.Name, pushed))

	default:
		return OutcomeOngoing, model.ErrUnknownAction
	}

	return e.AdvanceTurn(r), nil
}

// AdvanceTurn moves the hand forward after a seat's state changed: awards
// the pot on a fold-out, finishes the street when betting is level, or
// passes the turn. Exported because removing the acting seat mid-hand also
// consumes the turn.
func (e *Engine) AdvanceTurn(r *model.Room) Outcome {
	contesting := r.NotFolded()
	if len(contesting) == 1 {
		winner := contesting[0]
		winner.Chips += r.Pot
		e.sink.Broadcast(model.NewMessage("%s wins %d, everyone else folded", winner.Name, r.Pot))
		e.logger.Info("hand ended by folds",
			slog.String("winner", string(winner.ID)),
			slog.Int("pot", r.Pot))
		r.Pot = 0
		return OutcomeHandEnded
	}

	if e.roundComplete(r) {
		return e.advanceStage(r)
	}

	next := r.NextActionableIndex((r.CurrentIndex + 1) % len(r.Players))
	if next == -1 {
		return e.advanceStage(r)
	}
	r.CurrentIndex = next
	return OutcomeOngoing
}

// roundComplete reports whether every player who can still act has acted
// since the last raise and is level with the current bet.
func (e *Engine) roundComplete(r *model.Room) bool {
	actionable := r.Actionable()
	if len(actionable) == 0 {
		return true
	}
	for _, p := range actionable {
		if _, acted := r.Acted[p.ID]; !acted || p.Bet != r.CurrentBet {
			return false
		}
	}
	return true
}

// advanceStage deals the next street and opens its betting round. When no
// one is left to act (everyone all-in), it keeps dealing street after
// street until the river resolves into a showdown; the loop is bounded by
// the number of remaining streets.
func (e *Engine) advanceStage(r *model.Room) Outcome {
	for {
		for _, p := range r.Players {
			p.Bet = 0
		}
		r.CurrentBet = 0
		r.Acted = make(map[model.PlayerID]struct{})
		r.LastRaiserIndex = -1

		switch r.Stage {
		case model.StagePreflop:
			r.Stage = model.StageFlop
			r.Community = append(r.Community, r.DrawCard(), r.DrawCard(), r.DrawCard())
			e.sink.Broadcast(model.NewMessage("flop: %s %s %s",
				r.Community[0], r.Community[1], r.Community[2]))
		case model.StageFlop:
			r.Stage = model.StageTurn
			r.Community = append(r.Community, r.DrawCard())
			e.sink.Broadcast(model.NewMessage("turn: %s", r.Community[3]))
		case model.StageTurn:
			r.Stage = model.StageRiver
			r.Community = append(r.Community, r.DrawCard())
			e.sink.Broadcast(model.NewMessage("river: %s", r.Community[4]))
		case model.StageRiver:
			return e.showdown(r)
		default:
			return OutcomeOngoing
		}

		if next := r.NextActionableIndex((r.DealerIndex + 1) % len(r.Players)); next != -1 {
			r.CurrentIndex = next
			return OutcomeOngoing
		}
	}
}

// showdown scores every contesting hand, refunds uncalled stakes, settles
// the side-pot layers and broadcasts the results. Chips move here; the
// membership transitions run later, after the showdown delay.
func (e *Engine) showdown(r *model.Room) Outcome {
	r.Stage = model.StageShowdown

	contesting := r.NotFolded()
	scores := make(map[model.PlayerID]hand.Score, len(contesting))
	for _, p := range contesting {
		cards := make([]model.Card, 0, len(p.Hand)+len(r.Community))
		cards = append(cards, p.Hand...)
		cards = append(cards, r.Community...)
		scores[p.ID] = hand.Best(cards)
	}

	layers, refunds := e.pots.BuildSidePots(r.Players)
	for _, p := range r.Players {
		if refund := refunds[p.ID]; refund > 0 {
			p.Chips += refund
			e.sink.Broadcast(model.NewMessage("uncalled %d returned to %s", refund, p.Name))
		}
	}

	settlement := e.pots.Settle(layers, scores)
	for _, p := range r.Players {
		if won := settlement.Winnings[p.ID]; won > 0 {
			p.Chips += won
		}
	}
	potTotal := r.Pot
	r.Pot = 0

	hands := make([]model.ShowdownHand, 0, len(contesting))
	for _, p := range contesting {
		hands = append(hands, model.ShowdownHand{
			ID:       p.ID,
			Name:     p.Name,
			Hand:     p.Hand,
			HandName: scores[p.ID].Name(),
		})
	}
	e.sink.Broadcast(model.ShowdownEvent{
		Type:      model.EventShowdown,
		Community: r.Community,
		Pot:       potTotal,
		Hands:     hands,
		Winners:   settlement.Winners,
		Pots:      settlement.Layers,
	})
	e.logger.Info("showdown",
		slog.Int("pot", potTotal),
		slog.Int("layers", len(layers)),
		slog.Int("contesting", len(contesting)))
	return OutcomeShowdown
}
