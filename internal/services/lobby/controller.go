// Package lobby manages who is seated versus spectating, and everything
// that happens around the betting itself: joins and reconnects, seat
// changes, votes, chip loans and the end-of-hand transitions.
package lobby

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/samber/lo"

	"github.com/pokerhub/holdem-room/internal/config"
	"github.com/pokerhub/holdem-room/internal/dependencies/clock"
	"github.com/pokerhub/holdem-room/internal/model"
	"github.com/pokerhub/holdem-room/internal/notify"
	"github.com/pokerhub/holdem-room/internal/services/game"
	"github.com/pokerhub/holdem-room/internal/storage"
)

type Controller struct {
	store  storage.Storage
	engine *game.Engine
	clock  clock.Clock
	sink   notify.Sink
	logger *slog.Logger
	cfg    config.Config

	// bank mirrors the persisted records so a returning identity gets its
	// chips and debt back without a storage round trip.
	bank map[model.PlayerID]model.BankRecord
}

func NewController(
	store storage.Storage,
	engine *game.Engine,
	clk clock.Clock,
	sink notify.Sink,
	logger *slog.Logger,
	cfg config.Config,
) *Controller {
	return &Controller{
		store:  store,
		engine: engine,
		clock:  clk,
		sink:   sink,
		logger: logger,
		cfg:    cfg,
		bank:   make(map[model.PlayerID]model.BankRecord),
	}
}

// LoadBank primes the in-memory bank from storage. Called once at startup,
// before the room runtime starts taking operations.
func (c *Controller) LoadBank(ctx context.Context) error {
	records, err := c.store.LoadBank(ctx)
	if err != nil {
		return err
	}
	c.bank = records
	c.logger.Info("bank loaded", slog.Int("records", len(records)))
	return nil
}

// Join admits a new identity into the audience, or reconnects an existing
// record. A returning identity keeps its chips, debt and seat; a brand new
// one starts in the audience with the initial stack, or with its persisted
// bank record if one survives from a previous process.
func (c *Controller) Join(r *model.Room, id model.PlayerID, name string) {
	now := c.clock.Now()
	if p := r.Member(id); p != nil {
		p.Connected = true
		p.LastSeen = now
		if name != "" && name != p.Name {
			c.sink.Broadcast(model.NewMessage("%s is now known as %s", p.Name, name))
			p.Name = name
		}
		where := "the audience"
		if r.Seated(id) != nil {
			where = "their seat"
		}
		c.sink.Broadcast(model.NewMessage("%s reconnected to %s", p.Name, where))
		return
	}

	chips := c.cfg.InitialChips
	debt := 0
	if rec, ok := c.bank[id]; ok {
		chips = rec.Chips
		debt = rec.Debt
		if name == "" {
			name = rec.Name
		}
	}
	if name == "" {
		name = fmt.Sprintf("guest-%d", len(r.Players)+len(r.Audience)+1)
	}

	p := &model.Player{
		ID:        id,
		Name:      name,
		Chips:     chips,
		Debt:      debt,
		Connected: true,
		LastSeen:  now,
	}
	r.Audience = append(r.Audience, p)
	c.sink.Broadcast(model.NewMessage("%s joined the audience with %d chips", p.Name, p.Chips))
}

// Disconnect marks the identity offline. The record stays for the
// disconnect-timeout window so the player can reconnect into the same
// state; mid-hand their seat plays on (and can be blinded off or folded by
// a kick).
func (c *Controller) Disconnect(r *model.Room, id model.PlayerID) {
	p := r.Member(id)
	if p == nil {
		return
	}
	p.Connected = false
	p.LastSeen = c.clock.Now()
	c.sink.Broadcast(model.NewMessage("%s disconnected", p.Name))
}

// TakeSeat promotes an audience member to a seat. Seats only change hands
// between hands; a seat taken while start votes are pending resets them,
// since the electorate just grew.
func (c *Controller) TakeSeat(r *model.Room, id model.PlayerID) error {
	if r.Seated(id) != nil {
		return model.ErrAlreadySeated
	}
	if r.Stage != model.StageWaiting {
		return model.ErrHandInProgress
	}
	p := r.Spectator(id)
	if p == nil {
		return model.ErrNotInRoom
	}
	if len(r.Players) >= c.cfg.MaxSeats {
		return model.ErrSeatsFull
	}

	r.Audience = lo.Without(r.Audience, p)
	r.Players = append(r.Players, p)

	if len(r.Votes.Start) > 0 {
		r.Votes.ClearStart()
		c.sink.Broadcast(model.NewMessage("start votes reset, a new player sat down"))
	}
	c.sink.Broadcast(model.NewMessage("%s took a seat", p.Name))
	return nil
}

// GiveSeat moves a seated player back to the audience. Between hands the
// move is immediate; mid-hand the player is folded and the move is deferred
// to the end of the hand.
func (c *Controller) GiveSeat(r *model.Room, id model.PlayerID) (game.Outcome, error) {
	p := r.Seated(id)
	if p == nil {
		return game.OutcomeOngoing, model.ErrNotSeated
	}
	return c.unseat(r, id, fmt.Sprintf("%s gave up their seat", p.Name)), nil
}

// unseat implements both voluntary and voted seat removal. Mid-hand the
// seat stays at the table (its chips are already in the pot) but is folded
// and marked to leave at hand end; if it held the turn, the turn moves on,
// which can end the hand.
func (c *Controller) unseat(r *model.Room, id model.PlayerID, reason string) game.Outcome {
	idx := r.SeatIndex(id)
	if idx == -1 {
		return game.OutcomeOngoing
	}
	p := r.Players[idx]

	if r.Stage != model.StageWaiting {
		if !p.Folded && !p.AllIn {
			p.Folded = true
			r.Acted[id] = struct{}{}
		}
		p.PendingLeave = true
		r.Votes.RemovePlayer(id)
		c.sink.Broadcast(model.NewMessage("%s, takes effect when the hand ends", reason))
		if idx == r.CurrentIndex {
			return c.engine.AdvanceTurn(r)
		}
		return game.OutcomeOngoing
	}

	r.Players = append(r.Players[:idx], r.Players[idx+1:]...)
	p.ResetForHand()
	r.Audience = append(r.Audience, p)
	r.Votes.RemovePlayer(id)
	c.sink.Broadcast(model.NewMessage("%s", reason))
	return game.OutcomeOngoing
}

// Borrow credits the configured loan amount against the debt ledger.
// Allowed for anyone in the room, but only between hands, and checkpointed
// immediately so a crash cannot forget a debt.
func (c *Controller) Borrow(ctx context.Context, r *model.Room, id model.PlayerID) error {
	if r.Stage != model.StageWaiting {
		return model.ErrNotWaitingStage
	}
	p := r.Member(id)
	if p == nil {
		return model.ErrNotInRoom
	}

	p.Chips += c.cfg.BorrowAmount
	p.Debt += c.cfg.BorrowAmount
	c.persistBank(ctx, r)
	c.sink.Broadcast(model.NewMessage("%s borrowed %d chips, debt is now %d", p.Name, c.cfg.BorrowAmount, p.Debt))
	return nil
}

// StartHand runs the pre-deal membership work and asks the engine to deal:
// any leftover deferred leavers are flushed, the vote ledger is wiped, and
// seats that are broke and disconnected are dropped. The engine's outcome
// passes through, since a hand of forced all-ins resolves immediately.
func (c *Controller) StartHand(r *model.Room) (game.Outcome, error) {
	c.flushPendingLeavers(r)

	eligible := lo.CountBy(r.Players, func(p *model.Player) bool {
		return p.Connected && p.Chips > 0
	})
	if eligible < 2 {
		return game.OutcomeOngoing, model.ErrTooFewPlayers
	}
	if r.Stage != model.StageWaiting {
		return game.OutcomeOngoing, model.ErrHandInProgress
	}

	r.Votes.ClearAll()
	r.Players = lo.Filter(r.Players, func(p *model.Player, _ int) bool {
		return p.Chips > 0 || p.Connected
	})
	return c.engine.BeginHand(r)
}

// EndHand runs the end-of-hand membership transitions: deferred leavers
// move to the audience, seats that are broke and disconnected are removed
// outright, the table resets to waiting and the bank is checkpointed.
func (c *Controller) EndHand(ctx context.Context, r *model.Room) {
	c.flushPendingLeavers(r)

	removed := 0
	r.Players = lo.Filter(r.Players, func(p *model.Player, _ int) bool {
		if p.Chips > 0 || p.Connected {
			return true
		}
		r.Votes.RemovePlayer(p.ID)
		removed++
		return false
	})
	if removed > 0 {
		c.logger.Info("broke disconnected seats removed", slog.Int("count", removed))
	}

	r.ResetTable()
	for _, p := range r.Members() {
		p.ResetForHand()
	}
	c.persistBank(ctx, r)
	c.sink.Broadcast(model.NewMessage("hand over, waiting for the next one"))
}

func (c *Controller) flushPendingLeavers(r *model.Room) {
	leavers := lo.Filter(r.Players, func(p *model.Player, _ int) bool {
		return p.PendingLeave
	})
	if len(leavers) == 0 {
		return
	}
	r.Players = lo.Filter(r.Players, func(p *model.Player, _ int) bool {
		return !p.PendingLeave
	})
	for _, p := range leavers {
		p.PendingLeave = false
		p.ResetForHand()
		r.Audience = append(r.Audience, p)
		c.sink.Broadcast(model.NewMessage("%s moved to the audience", p.Name))
	}
}

// Dissolve resets the room to factory state and wipes the persisted bank.
func (c *Controller) Dissolve(ctx context.Context, r *model.Room) {
	c.sink.Broadcast(model.NewDissolve("the room has been dissolved by majority vote"))

	r.Players = nil
	r.Audience = nil
	r.Votes.ClearAll()
	r.ResetTable()

	c.bank = make(map[model.PlayerID]model.BankRecord)
	if err := c.store.ClearBank(ctx); err != nil {
		c.logger.Warn("failed to clear persisted bank", slog.String("error", err.Error()))
	}
	c.logger.Info("room dissolved")
}

// CleanupStale drops records that have been disconnected longer than the
// timeout. Seats are only swept between hands; mid-hand a stale seat's
// chips are still in the pot, so it stays until the hand resolves. Pending
// leavers always wait for their hand-end transition.
func (c *Controller) CleanupStale(r *model.Room) int {
	now := c.clock.Now()
	stale := func(p *model.Player) bool {
		if p.Connected || p.PendingLeave {
			return false
		}
		return now.Sub(p.LastSeen) > c.cfg.DisconnectTimeout
	}

	removed := 0
	sweep := func(members []*model.Player) []*model.Player {
		return lo.Filter(members, func(p *model.Player, _ int) bool {
			if stale(p) {
				r.Votes.RemovePlayer(p.ID)
				removed++
				return false
			}
			return true
		})
	}

	if r.Stage == model.StageWaiting {
		r.Players = sweep(r.Players)
	}
	r.Audience = sweep(r.Audience)

	if removed > 0 {
		c.logger.Info("stale records removed", slog.Int("count", removed))
	}
	return removed
}

// persistBank checkpoints every known identity's chips, debt and name, and
// refreshes the in-memory mirror. Persistence failures are logged, never
// fatal: the game keeps running on the in-memory state.
func (c *Controller) persistBank(ctx context.Context, r *model.Room) {
	records := make(map[model.PlayerID]model.BankRecord)
	for _, p := range r.Members() {
		rec := model.BankRecord{Chips: p.Chips, Debt: p.Debt, Name: p.Name}
		c.bank[p.ID] = rec
		records[p.ID] = rec
	}
	if err := c.store.UpsertRecords(ctx, records); err != nil {
		c.logger.Warn("bank checkpoint failed", slog.String("error", err.Error()))
	}
}
