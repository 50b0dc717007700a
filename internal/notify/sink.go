// Package notify decouples game logic from the transport. Services emit
// events through a Sink; the websocket gateway is the production
// implementation.
package notify

import "github.com/pokerhub/holdem-room/internal/model"

// Sink delivers outbound events. Implementations must be fire-and-forget:
// they never block the caller and swallow delivery failures, so a slow or
// dead connection cannot stall the game.
type Sink interface {
	Broadcast(event any)
	SendTo(id model.PlayerID, event any)
}

// Discard is a Sink that drops everything.
type Discard struct{}

func (Discard) Broadcast(any)              {}
func (Discard) SendTo(model.PlayerID, any) {}

// Recorder is a Sink that captures events for test assertions. Not safe for
// concurrent use.
type Recorder struct {
	Broadcasts []any
	Sent       map[model.PlayerID][]any
}

func NewRecorder() *Recorder {
	return &Recorder{Sent: make(map[model.PlayerID][]any)}
}

func (r *Recorder) Broadcast(event any) {
	r.Broadcasts = append(r.Broadcasts, event)
}

func (r *Recorder) SendTo(id model.PlayerID, event any) {
	r.Sent[id] = append(r.Sent[id], event)
}

// Messages returns the text of every broadcast MessageEvent, in order.
func (r *Recorder) Messages() []string {
	var out []string
	for _, ev := range r.Broadcasts {
		if msg, ok := ev.(model.MessageEvent); ok {
			out = append(out, msg.Message)
		}
	}
	return out
}

// Reset clears everything recorded so far.
func (r *Recorder) Reset() {
	r.Broadcasts = nil
	r.Sent = make(map[model.PlayerID][]any)
}

var (
	_ Sink = Discard{}
	_ Sink = (*Recorder)(nil)
)
