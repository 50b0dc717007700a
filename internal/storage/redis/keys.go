package redis

import "github.com/pokerhub/holdem-room/internal/model"

// The bank lives in a single hash: field per player, JSON-encoded record.
const bankKey = "holdem:bank"

func bankField(id model.PlayerID) string {
	return string(id)
}
