package model

// Stage identifies the phase of the table.
type Stage string

const (
	StageWaiting  Stage = "waiting"
	StagePreflop  Stage = "preflop"
	StageFlop     Stage = "flop"
	StageTurn     Stage = "turn"
	StageRiver    Stage = "river"
	StageShowdown Stage = "showdown"
)

// Betting reports whether voluntary actions are accepted in this stage.
func (s Stage) Betting() bool {
	switch s {
	case StagePreflop, StageFlop, StageTurn, StageRiver:
		return true
	default:
		return false
	}
}

// Room is the single shared table aggregate. It is mutated exclusively from
// the room runtime's serializer goroutine and is not safe for concurrent
// use.
type Room struct {
	Stage     Stage
	Deck      []Card
	Community []Card
	Pot       int

	DealerIndex     int
	SmallBlindIndex int
	BigBlindIndex   int
	CurrentIndex    int

	CurrentBet      int
	Acted           map[PlayerID]struct{}
	LastRaiserIndex int

	// Players holds the seated players in seat order; Audience holds
	// spectators in join order.
	Players  []*Player
	Audience []*Player

	Votes VoteLedger
}

func NewRoom() *Room {
	return &Room{
		Stage:           StageWaiting,
		Acted:           make(map[PlayerID]struct{}),
		LastRaiserIndex: -1,
		CurrentIndex:    -1,
		DealerIndex:     -1,
		Votes:           NewVoteLedger(),
	}
}

// SeatIndex returns the seat index of the given player, or -1.
func (r *Room) SeatIndex(id PlayerID) int {
	for i, p := range r.Players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// Seated returns the seated player with the given id, or nil.
func (r *Room) Seated(id PlayerID) *Player {
	if i := r.SeatIndex(id); i != -1 {
		return r.Players[i]
	}
	return nil
}

// Spectator returns the audience member with the given id, or nil.
func (r *Room) Spectator(id PlayerID) *Player {
	for _, p := range r.Audience {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Member returns the seated or audience player with the given id, or nil.
func (r *Room) Member(id PlayerID) *Player {
	if p := r.Seated(id); p != nil {
		return p
	}
	return r.Spectator(id)
}

// Members returns every known identity, seated players first.
func (r *Room) Members() []*Player {
	members := make([]*Player, 0, len(r.Players)+len(r.Audience))
	members = append(members, r.Players...)
	return append(members, r.Audience...)
}

// CurrentPlayer returns the player whose turn it is, or nil when no turn is
// active.
func (r *Room) CurrentPlayer() *Player {
	if r.CurrentIndex < 0 || r.CurrentIndex >= len(r.Players) {
		return nil
	}
	return r.Players[r.CurrentIndex]
}

// DrawCard pops the top card of the deck. The deck must be non-empty.
func (r *Room) DrawCard() Card {
	c := r.Deck[len(r.Deck)-1]
	r.Deck = r.Deck[:len(r.Deck)-1]
	return c
}

// NotFolded returns the seated players still contesting the hand.
func (r *Room) NotFolded() []*Player {
	var out []*Player
	for _, p := range r.Players {
		if !p.Folded {
			out = append(out, p)
		}
	}
	return out
}

// Actionable returns the seated players who can still take a voluntary
// action.
func (r *Room) Actionable() []*Player {
	var out []*Player
	for _, p := range r.Players {
		if p.CanAct() {
			out = append(out, p)
		}
	}
	return out
}

// NextActionableIndex scans seats starting at start, wrapping once around
// the table, for a player who can act. Returns -1 if nobody can.
func (r *Room) NextActionableIndex(start int) int {
	n := len(r.Players)
	if n == 0 {
		return -1
	}
	for i := 0; i < n; i++ {
		idx := (start + i) % n
		if r.Players[idx].CanAct() {
			return idx
		}
	}
	return -1
}

// ResetTable returns the table itself to the waiting stage. Player records
// are left alone; callers reset those separately.
func (r *Room) ResetTable() {
	r.Stage = StageWaiting
	r.Deck = nil
	r.Community = nil
	r.Pot = 0
	r.CurrentBet = 0
	r.Acted = make(map[PlayerID]struct{})
	r.LastRaiserIndex = -1
	r.CurrentIndex = -1
}
