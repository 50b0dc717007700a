// Package protocol defines the inbound wire commands and decodes raw frames
// into a closed union of command types. Handlers switch over the concrete
// types; an unknown or malformed frame never reaches game logic.
package protocol

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pokerhub/holdem-room/internal/model"
)

// Command is one decoded inbound message.
type Command interface {
	isCommand()
}

// Join announces an identity to the room, entering the audience on first
// contact or reconnecting an existing record.
type Join struct {
	Name string
}

// TakeSeat asks to move from the audience to a seat.
type TakeSeat struct{}

// GiveSeat asks to move from a seat back to the audience.
type GiveSeat struct{}

// StartGame toggles the sender's vote to start the next hand.
type StartGame struct{}

// Action is a voluntary betting action. Amount is only meaningful for
// raises, where it is the new total bet the player wants to stand at.
type Action struct {
	Action ActionType
	Amount int
}

// Borrow asks for a chip loan against the debt ledger.
type Borrow struct{}

// DissolveVote toggles the sender's vote to dissolve the room.
type DissolveVote struct{}

// KickVote toggles the sender's vote to kick the target back to the
// audience.
type KickVote struct {
	TargetID model.PlayerID
}

func (Join) isCommand()         {}
func (TakeSeat) isCommand()     {}
func (GiveSeat) isCommand()     {}
func (StartGame) isCommand()    {}
func (Action) isCommand()       {}
func (Borrow) isCommand()       {}
func (DissolveVote) isCommand() {}
func (KickVote) isCommand()     {}

// ActionType is one of the five voluntary betting actions.
type ActionType string

const (
	ActionFold  ActionType = "fold"
	ActionCheck ActionType = "check"
	ActionCall  ActionType = "call"
	ActionRaise ActionType = "raise"
	ActionAllIn ActionType = "allin"
)

// envelope is the superset of fields any inbound frame may carry.
type envelope struct {
	Type     string         `json:"type"`
	Name     string         `json:"name"`
	Action   string         `json:"action"`
	Amount   int            `json:"amount"`
	TargetID model.PlayerID `json:"targetId"`
}

// Decode parses one raw frame into its command variant.
func Decode(raw []byte) (Command, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrMalformedCommand, err)
	}

	switch env.Type {
	case "join":
		return Join{Name: strings.TrimSpace(env.Name)}, nil
	case "take_seat":
		return TakeSeat{}, nil
	case "give_seat":
		return GiveSeat{}, nil
	case "start_game":
		return StartGame{}, nil
	case "action":
		action := ActionType(env.Action)
		switch action {
		case ActionFold, ActionCheck, ActionCall, ActionRaise, ActionAllIn:
		default:
			return nil, fmt.Errorf("%w: %q", model.ErrUnknownAction, env.Action)
		}
		return Action{Action: action, Amount: env.Amount}, nil
	case "borrow":
		return Borrow{}, nil
	case "dissolve_vote":
		return DissolveVote{}, nil
	case "kick_vote":
		if env.TargetID == "" {
			return nil, fmt.Errorf("%w: kick_vote requires targetId", model.ErrMalformedCommand)
		}
		return KickVote{TargetID: env.TargetID}, nil
	default:
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownCommand, env.Type)
	}
}
