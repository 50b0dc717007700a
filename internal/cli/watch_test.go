package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebsocketURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"http://localhost:8080", "ws://localhost:8080/ws"},
		{"http://localhost:8080/", "ws://localhost:8080/ws"},
		{"https://holdem.example.com", "wss://holdem.example.com/ws"},
		{"ws://localhost:8080", "ws://localhost:8080/ws"},
	}
	for _, tt := range tests {
		got, err := websocketURL(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestWebsocketURLRejectsOddSchemes(t *testing.T) {
	_, err := websocketURL("ftp://example.com")
	assert.Error(t, err)
}

func TestPrintEventFormatsTableLog(t *testing.T) {
	var buf bytes.Buffer

	printEvent(&buf, []byte(`{"type":"message","message":"alice folds"}`), false)
	assert.Contains(t, buf.String(), "alice folds")

	buf.Reset()
	printEvent(&buf, []byte(`{"type":"state","stage":"flop","pot":120}`), false)
	assert.Contains(t, buf.String(), "stage=flop")
	assert.Contains(t, buf.String(), "pot=120")
}

func TestPrintEventRawJSON(t *testing.T) {
	var buf bytes.Buffer
	raw := `{"type":"state","stage":"flop","pot":120}`

	printEvent(&buf, []byte(raw), true)
	assert.JSONEq(t, raw, buf.String())
}

func TestPrintEventSwallowsGarbage(t *testing.T) {
	var buf bytes.Buffer
	printEvent(&buf, []byte("garbage"), false)
	assert.Empty(t, buf.String())
}
