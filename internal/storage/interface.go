// Package storage persists the player bank: the chips, debt and display
// name that must survive a process restart. The bank is written at hand
// end and on borrow, and cleared on dissolve.
package storage

import (
	"context"

	"github.com/pokerhub/holdem-room/internal/model"
)

type Storage interface {
	// LoadBank returns every persisted record. A missing bank is an empty
	// map, not an error.
	LoadBank(ctx context.Context) (map[model.PlayerID]model.BankRecord, error)

	// UpsertRecords writes the given records, leaving others untouched.
	UpsertRecords(ctx context.Context, records map[model.PlayerID]model.BankRecord) error

	// ClearBank removes every record.
	ClearBank(ctx context.Context) error
}
