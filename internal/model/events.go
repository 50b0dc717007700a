package model

import "fmt"

// Outbound event type tags.
const (
	EventState    = "state"
	EventMessage  = "message"
	EventShowdown = "showdown"
	EventError    = "error"
	EventDissolve = "dissolve"
)

// MessageEvent is a human-readable table log line, broadcast to everyone.
type MessageEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func NewMessage(format string, args ...any) MessageEvent {
	return MessageEvent{Type: EventMessage, Message: fmt.Sprintf(format, args...)}
}

// ErrorEvent reports a rejected command. Sent only to the player who issued
// the command.
type ErrorEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func NewError(message string) ErrorEvent {
	return ErrorEvent{Type: EventError, Message: message}
}

// DissolveEvent announces that the room has been dissolved.
type DissolveEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func NewDissolve(message string) DissolveEvent {
	return DissolveEvent{Type: EventDissolve, Message: message}
}

// PlayerPublic is the per-player public view in a state snapshot. Hole
// cards are deliberately absent; they only ever appear in the recipient's
// own SelfHand.
type PlayerPublic struct {
	ID            PlayerID `json:"id"`
	Name          string   `json:"name"`
	Role          Role     `json:"role"`
	Chips         int      `json:"chips"`
	Debt          int      `json:"debt"`
	Bet           int      `json:"bet"`
	Folded        bool     `json:"folded"`
	AllIn         bool     `json:"allIn"`
	Connected     bool     `json:"connected"`
	Dealer        bool     `json:"dealer"`
	SmallBlind    bool     `json:"smallBlind"`
	BigBlind      bool     `json:"bigBlind"`
	HandCardCount int      `json:"handCardCount"`
	VotedStart    bool     `json:"votedStart"`
	VotedDissolve bool     `json:"votedDissolve"`
	PendingLeave  bool     `json:"pendingLeave"`
}

// KickStatus reports progress of one in-flight kick vote.
type KickStatus struct {
	TargetID   PlayerID `json:"targetId"`
	TargetName string   `json:"targetName"`
	Votes      int      `json:"votes"`
	Needed     int      `json:"needed"`
}

// StateEvent is the full room snapshot addressed to a single recipient.
type StateEvent struct {
	Type            string         `json:"type"`
	Stage           Stage          `json:"stage"`
	Players         []PlayerPublic `json:"players"`
	Community       []Card         `json:"community"`
	Pot             int            `json:"pot"`
	CurrentBet      int            `json:"currentBet"`
	CurrentPlayerID PlayerID       `json:"currentPlayerId,omitempty"`

	SelfID   PlayerID `json:"selfId"`
	SelfRole Role     `json:"selfRole"`
	SelfHand []Card   `json:"selfHand"`

	StartVotes    int          `json:"startVotes"`
	StartTotal    int          `json:"startTotal"`
	DissolveVotes int          `json:"dissolveVotes"`
	DissolveTotal int          `json:"dissolveTotal"`
	KickVotes     []KickStatus `json:"kickVotes"`
}

// ShowdownHand is one revealed hand in a showdown event.
type ShowdownHand struct {
	ID       PlayerID `json:"id"`
	Name     string   `json:"name"`
	Hand     []Card   `json:"hand"`
	HandName string   `json:"handName"`
}

// PotWinner is one player's share of a pot layer.
type PotWinner struct {
	ID       PlayerID `json:"id"`
	Name     string   `json:"name"`
	Amount   int      `json:"amount"`
	HandName string   `json:"handName"`
}

// PotResult is the resolution of one pot layer.
type PotResult struct {
	Amount  int         `json:"amount"`
	Winners []PotWinner `json:"winners"`
}

// ShowdownEvent is broadcast when a hand reaches showdown. Winners
// aggregates each player's total take across all layers; Pots carries the
// per-layer breakdown.
type ShowdownEvent struct {
	Type      string         `json:"type"`
	Community []Card         `json:"community"`
	Pot       int            `json:"pot"`
	Hands     []ShowdownHand `json:"hands"`
	Winners   []PotWinner    `json:"winners"`
	Pots      []PotResult    `json:"pots"`
}
