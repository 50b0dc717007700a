package model

import "errors"

// Validation errors returned by the lobby and game services. Handlers match
// them with errors.Is; the room runtime reports them back to the acting
// player only, never to the whole table.
var (
	ErrAlreadySeated   = errors.New("already seated")
	ErrNotSeated       = errors.New("player is not seated")
	ErrNotInRoom       = errors.New("player is not in the room")
	ErrSeatsFull       = errors.New("all seats are taken")
	ErrHandInProgress  = errors.New("a hand is in progress")
	ErrNotWaitingStage = errors.New("only allowed between hands")

	ErrNotYourTurn       = errors.New("not this player's turn")
	ErrNotBettingStage   = errors.New("no betting round is active")
	ErrCannotAct         = errors.New("player has folded or is all-in")
	ErrCannotCheck       = errors.New("there is a bet to match")
	ErrRaiseTooSmall     = errors.New("raise below the minimum")
	ErrTooFewPlayers     = errors.New("need at least two connected players with chips")
	ErrInvalidKickTarget = errors.New("invalid kick target")

	ErrUnknownCommand   = errors.New("unknown command type")
	ErrUnknownAction    = errors.New("unknown action type")
	ErrMalformedCommand = errors.New("malformed command payload")
)
