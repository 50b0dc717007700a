package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokerhub/holdem-room/internal/model"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Command
	}{
		{"join", `{"type":"join","name":"alice"}`, Join{Name: "alice"}},
		{"join trims whitespace", `{"type":"join","name":"  alice  "}`, Join{Name: "alice"}},
		{"take seat", `{"type":"take_seat"}`, TakeSeat{}},
		{"give seat", `{"type":"give_seat"}`, GiveSeat{}},
		{"start game", `{"type":"start_game"}`, StartGame{}},
		{"fold", `{"type":"action","action":"fold"}`, Action{Action: ActionFold}},
		{"check", `{"type":"action","action":"check"}`, Action{Action: ActionCheck}},
		{"call", `{"type":"action","action":"call"}`, Action{Action: ActionCall}},
		{"raise with amount", `{"type":"action","action":"raise","amount":40}`, Action{Action: ActionRaise, Amount: 40}},
		{"allin", `{"type":"action","action":"allin"}`, Action{Action: ActionAllIn}},
		{"borrow", `{"type":"borrow"}`, Borrow{}},
		{"dissolve vote", `{"type":"dissolve_vote"}`, DissolveVote{}},
		{"kick vote", `{"type":"kick_vote","targetId":"bob"}`, KickVote{TargetID: "bob"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode([]byte(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{"not json", `nope`, model.ErrMalformedCommand},
		{"unknown type", `{"type":"teleport"}`, model.ErrUnknownCommand},
		{"empty type", `{}`, model.ErrUnknownCommand},
		{"unknown action", `{"type":"action","action":"bluff"}`, model.ErrUnknownAction},
		{"kick without target", `{"type":"kick_vote"}`, model.ErrMalformedCommand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode([]byte(tt.raw))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, got)
		})
	}
}

func TestDecodeIgnoresUnknownFields(t *testing.T) {
	got, err := Decode([]byte(`{"type":"borrow","extra":"field"}`))
	require.NoError(t, err)
	assert.Equal(t, Borrow{}, got)
}
