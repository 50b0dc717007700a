// Package room owns the table aggregate and serializes every mutation
// through a single FIFO queue consumed by one goroutine. Services never
// lock anything: if code runs inside an operation, it has exclusive access
// to the room.
package room

import (
	"context"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/pokerhub/holdem-room/internal/config"
	"github.com/pokerhub/holdem-room/internal/model"
	"github.com/pokerhub/holdem-room/internal/notify"
	"github.com/pokerhub/holdem-room/internal/protocol"
	"github.com/pokerhub/holdem-room/internal/services/game"
	"github.com/pokerhub/holdem-room/internal/services/lobby"
)

const opBuffer = 256

type op struct {
	name string
	fn   func()
}

// Runtime is the single writer for one room.
type Runtime struct {
	room   *model.Room
	lobby  *lobby.Controller
	engine *game.Engine
	sink   notify.Sink
	logger *slog.Logger
	cfg    config.Config

	ops chan op
}

func New(
	lobbyController *lobby.Controller,
	engine *game.Engine,
	sink notify.Sink,
	logger *slog.Logger,
	cfg config.Config,
) *Runtime {
	return &Runtime{
		room:   model.NewRoom(),
		lobby:  lobbyController,
		engine: engine,
		sink:   sink,
		logger: logger,
		cfg:    cfg,
		ops:    make(chan op, opBuffer),
	}
}

// Run consumes the operation queue until ctx is cancelled. It is the only
// goroutine that ever touches the room. A panic inside one operation is
// logged and isolated; the queue keeps draining.
func (rt *Runtime) Run(ctx context.Context) {
	sweep := time.NewTicker(rt.cfg.StaleSweepInterval)
	defer sweep.Stop()

	rt.logger.Info("room runtime started")
	for {
		select {
		case o := <-rt.ops:
			rt.exec(o)
		case <-sweep.C:
			rt.exec(op{name: "cleanup_stale", fn: func() {
				if rt.lobby.CleanupStale(rt.room) > 0 {
					rt.broadcastState()
				}
			}})
		case <-ctx.Done():
			rt.logger.Info("room runtime stopped")
			return
		}
	}
}

func (rt *Runtime) exec(o op) {
	defer func() {
		if r := recover(); r != nil {
			rt.logger.Error("room operation panicked",
				slog.String("op", o.name),
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())))
		}
	}()
	o.fn()
}

// Do enqueues one operation. Operations run in submission order; Do blocks
// only if the queue is full.
func (rt *Runtime) Do(name string, fn func()) {
	rt.ops <- op{name: name, fn: fn}
}

// Schedule enqueues fn after the delay. The timer fires on its own
// goroutine but the work re-enters the queue, so it still runs serialized,
// interleaved with whatever arrived in the meantime.
func (rt *Runtime) Schedule(d time.Duration, name string, fn func()) {
	time.AfterFunc(d, func() {
		rt.Do(name, fn)
	})
}

// HandleFrame decodes one inbound frame from the transport and dispatches
// it. Decode errors go back to the sender alone.
func (rt *Runtime) HandleFrame(id model.PlayerID, raw []byte) {
	rt.Do("frame", func() {
		cmd, err := protocol.Decode(raw)
		if err != nil {
			rt.sink.SendTo(id, model.NewError(err.Error()))
			return
		}
		rt.dispatch(id, cmd)
	})
}

// PlayerDisconnected is called by the transport when a connection drops.
func (rt *Runtime) PlayerDisconnected(id model.PlayerID) {
	rt.Do("disconnect", func() {
		rt.lobby.Disconnect(rt.room, id)
		rt.broadcastState()
	})
}

// dispatch routes one decoded command. Every path ends with a state
// broadcast so all clients see the result; a failed command instead sends
// the error back to its sender and changes nothing.
func (rt *Runtime) dispatch(id model.PlayerID, cmd protocol.Command) {
	ctx := context.Background()
	outcome := game.OutcomeOngoing
	var err error

	switch c := cmd.(type) {
	case protocol.Join:
		rt.lobby.Join(rt.room, id, c.Name)
	case protocol.TakeSeat:
		err = rt.lobby.TakeSeat(rt.room, id)
	case protocol.GiveSeat:
		outcome, err = rt.lobby.GiveSeat(rt.room, id)
	case protocol.StartGame:
		outcome, err = rt.lobby.ToggleStartVote(rt.room, id)
	case protocol.Action:
		outcome, err = rt.engine.ApplyAction(rt.room, id, c.Action, c.Amount)
	case protocol.Borrow:
		err = rt.lobby.Borrow(ctx, rt.room, id)
	case protocol.DissolveVote:
		_, err = rt.lobby.ToggleDissolveVote(ctx, rt.room, id)
	case protocol.KickVote:
		outcome, err = rt.lobby.ToggleKickVote(rt.room, id, c.TargetID)
	default:
		err = model.ErrUnknownCommand
	}

	if err != nil {
		rt.sink.SendTo(id, model.NewError(err.Error()))
		return
	}

	rt.settleOutcome(ctx, outcome)
	rt.broadcastState()
}

// settleOutcome runs or schedules the end-of-hand work an engine outcome
// calls for.
func (rt *Runtime) settleOutcome(ctx context.Context, outcome game.Outcome) {
	switch outcome {
	case game.OutcomeHandEnded:
		rt.lobby.EndHand(ctx, rt.room)
	case game.OutcomeShowdown:
		rt.Schedule(rt.cfg.ShowdownDelay, "finalize_hand", rt.finalizeHand)
	}
}

// finalizeHand runs after the showdown delay lets everyone see the result.
// The room may have been dissolved or otherwise moved on while the timer
// was pending, so it re-checks the stage before touching anything.
func (rt *Runtime) finalizeHand() {
	if rt.room.Stage != model.StageShowdown {
		return
	}
	rt.lobby.EndHand(context.Background(), rt.room)
	rt.broadcastState()
}

// broadcastState sends each member their own view of the room. Views are
// per-recipient because hole cards are private.
func (rt *Runtime) broadcastState() {
	for _, p := range rt.room.Members() {
		rt.sink.SendTo(p.ID, rt.lobby.StateFor(rt.room, p.ID))
	}
}

// StatusInfo is the summary served by the HTTP status endpoint.
type StatusInfo struct {
	Stage    model.Stage `json:"stage"`
	Seated   int         `json:"seated"`
	Audience int         `json:"audience"`
	Pot      int         `json:"pot"`
}

// Status reads a summary through the queue, so it observes a consistent
// room without taking any lock.
func (rt *Runtime) Status() StatusInfo {
	result := make(chan StatusInfo, 1)
	rt.Do("status", func() {
		result <- StatusInfo{
			Stage:    rt.room.Stage,
			Seated:   len(rt.room.Players),
			Audience: len(rt.room.Audience),
			Pot:      rt.room.Pot,
		}
	})
	return <-result
}
