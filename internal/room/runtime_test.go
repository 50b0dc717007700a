package room

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/pokerhub/holdem-room/internal/config"
	"github.com/pokerhub/holdem-room/internal/dependencies/mocks"
	"github.com/pokerhub/holdem-room/internal/model"
	"github.com/pokerhub/holdem-room/internal/notify"
	"github.com/pokerhub/holdem-room/internal/services/deck"
	"github.com/pokerhub/holdem-room/internal/services/game"
	"github.com/pokerhub/holdem-room/internal/services/lobby"
	"github.com/pokerhub/holdem-room/internal/services/pot"
	"github.com/pokerhub/holdem-room/internal/storage/memory"
	"github.com/pokerhub/holdem-room/internal/testutil"
)

type RuntimeSuite struct {
	suite.Suite
	runtime *Runtime
	sink    *notify.Recorder
	cancel  context.CancelFunc
}

func TestRuntimeSuite(t *testing.T) {
	suite.Run(t, new(RuntimeSuite))
}

func (s *RuntimeSuite) SetupTest() {
	s.sink = notify.NewRecorder()
	logger := testutil.NopLogger()
	cfg := config.Default()
	cfg.ShowdownDelay = 10 * time.Millisecond

	engine := game.NewEngine(deck.New(mocks.NewMockRandom()), pot.New(), s.sink, logger, cfg.SmallBlind, cfg.BigBlind)
	lobbyController := lobby.NewController(memory.New(), engine, mocks.NewMockClock(time.Now()), s.sink, logger, cfg)
	s.runtime = New(lobbyController, engine, s.sink, logger, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	go s.runtime.Run(ctx)
}

func (s *RuntimeSuite) TearDownTest() {
	s.cancel()
}

// sync waits for every previously queued operation to finish by riding the
// queue itself.
func (s *RuntimeSuite) sync() {
	s.runtime.Status()
}

func (s *RuntimeSuite) frame(id string, payload map[string]any) {
	raw, err := json.Marshal(payload)
	s.Require().NoError(err)
	s.runtime.HandleFrame(model.PlayerID(id), raw)
}

func (s *RuntimeSuite) TestOperationsRunInSubmissionOrder() {
	var order []int
	for i := 0; i < 50; i++ {
		i := i
		s.runtime.Do("append", func() {
			order = append(order, i)
		})
	}
	s.sync()

	s.Len(order, 50)
	for i, got := range order {
		s.Equal(i, got)
	}
}

func (s *RuntimeSuite) TestPanicInOneOperationDoesNotKillTheQueue() {
	ran := false
	s.runtime.Do("boom", func() {
		panic("kaboom")
	})
	s.runtime.Do("after", func() {
		ran = true
	})
	s.sync()

	s.True(ran, "queue must keep draining after a panic")
}

func (s *RuntimeSuite) TestJoinFrameAddsAudienceMember() {
	s.frame("alice", map[string]any{"type": "join", "name": "alice"})
	s.sync()

	status := s.runtime.Status()
	s.Equal(1, status.Audience)
	s.Zero(status.Seated)

	states := s.sink.Sent["alice"]
	s.Require().NotEmpty(states, "joiner receives a state snapshot")
	state, ok := states[len(states)-1].(model.StateEvent)
	s.Require().True(ok)
	s.Equal(model.PlayerID("alice"), state.SelfID)
}

func (s *RuntimeSuite) TestMalformedFrameAnswersSenderOnly() {
	s.frame("alice", map[string]any{"type": "join", "name": "alice"})
	s.runtime.HandleFrame("alice", []byte("not json"))
	s.sync()

	var sawError bool
	for _, ev := range s.sink.Sent["alice"] {
		if _, ok := ev.(model.ErrorEvent); ok {
			sawError = true
		}
	}
	s.True(sawError)
	s.Empty(s.sink.Broadcasts, "errors are never broadcast")
}

func (s *RuntimeSuite) TestRejectedCommandSendsErrorToSender() {
	s.frame("alice", map[string]any{"type": "join", "name": "alice"})
	s.frame("alice", map[string]any{"type": "start_game"})
	s.sync()

	var sawError bool
	for _, ev := range s.sink.Sent["alice"] {
		if errEv, ok := ev.(model.ErrorEvent); ok {
			sawError = true
			s.Contains(errEv.Message, "not seated")
		}
	}
	s.True(sawError, "voting to start from the audience is rejected")
}

func (s *RuntimeSuite) TestDisconnectMarksPlayerOffline() {
	s.frame("alice", map[string]any{"type": "join", "name": "alice"})
	s.runtime.PlayerDisconnected("alice")
	s.sync()

	status := s.runtime.Status()
	s.Equal(1, status.Audience, "the record survives the disconnect")
}

func (s *RuntimeSuite) TestScheduleRunsThroughTheQueue() {
	done := make(chan struct{})
	s.runtime.Schedule(5*time.Millisecond, "later", func() {
		close(done)
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		s.Fail("scheduled operation never ran")
	}
}

func (s *RuntimeSuite) TestFullHandThroughFrames() {
	for _, id := range []string{"alice", "bob"} {
		s.frame(id, map[string]any{"type": "join", "name": id})
		s.frame(id, map[string]any{"type": "take_seat"})
	}
	s.frame("alice", map[string]any{"type": "start_game"})
	s.frame("bob", map[string]any{"type": "start_game"})
	s.sync()

	s.Equal(model.StagePreflop, s.runtime.Status().Stage)

	// heads-up the seat after the big blind acts first: bob
	s.frame("bob", map[string]any{"type": "action", "action": "allin"})
	s.frame("alice", map[string]any{"type": "action", "action": "allin"})
	s.sync()
	s.Equal(model.StageShowdown, s.runtime.Status().Stage)

	// the showdown delay elapses and the table resets
	s.Eventually(func() bool {
		return s.runtime.Status().Stage == model.StageWaiting
	}, time.Second, 5*time.Millisecond)
}
