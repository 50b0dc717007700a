package model

import "time"

type PlayerID string

// Role distinguishes seated players from spectators.
type Role string

const (
	RoleSeated   Role = "seated"
	RoleAudience Role = "audience"
)

// Player is one identity known to the room. A record is created on first
// contact and survives disconnects until the stale sweep or a dissolve
// removes it. Per-hand betting state lives here too and is cleared by
// ResetForHand.
type Player struct {
	ID    PlayerID
	Name  string
	Chips int
	Debt  int

	Hand           []Card
	Bet            int
	TotalCommitted int
	Folded         bool
	AllIn          bool

	Connected    bool
	LastSeen     time.Time
	PendingLeave bool
}

// ResetForHand clears the betting state carried within a single hand.
// Chips, debt and connection state are untouched.
func (p *Player) ResetForHand() {
	p.Hand = nil
	p.Bet = 0
	p.TotalCommitted = 0
	p.Folded = false
	p.AllIn = false
}

// CanAct reports whether the player may still take a voluntary action in
// the current hand.
func (p *Player) CanAct() bool {
	return !p.Folded && !p.AllIn && p.Chips > 0
}

// BankRecord is the persisted slice of a player: what must survive a
// process restart.
type BankRecord struct {
	Chips int    `json:"chips"`
	Debt  int    `json:"debt"`
	Name  string `json:"name"`
}
