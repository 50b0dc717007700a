package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	var name string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the table from the audience",
		Long: `Attach to the room's websocket as a spectator and print the table
log as it happens. Press Ctrl+C to disconnect.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return watchRoom(name, jsonOutput)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name to join with")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print raw event JSON lines")

	return cmd
}

func watchRoom(name string, jsonOutput bool) error {
	wsURL, err := websocketURL(serverURL)
	if err != nil {
		return err
	}

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", wsURL, err)
	}
	defer conn.Close()

	join := map[string]string{"type": "join", "name": name}
	if err := conn.WriteJSON(join); err != nil {
		return fmt.Errorf("joining room: %w", err)
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	frames := make(chan []byte)
	errs := make(chan error, 1)
	go func() {
		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				errs <- err
				return
			}
			frames <- raw
		}
	}()

	fmt.Fprintf(cmdOut(), "watching %s (Ctrl+C to quit)\n", wsURL)
	for {
		select {
		case raw := <-frames:
			printEvent(cmdOut(), raw, jsonOutput)
		case err := <-errs:
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) || err == io.EOF {
				return nil
			}
			return fmt.Errorf("connection lost: %w", err)
		case <-interrupt:
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return nil
		}
	}
}

func printEvent(w io.Writer, raw []byte, jsonOutput bool) {
	if jsonOutput {
		fmt.Fprintln(w, string(raw))
		return
	}

	var event struct {
		Type    string `json:"type"`
		Message string `json:"message"`
		Stage   string `json:"stage"`
		Pot     int    `json:"pot"`
	}
	if err := json.Unmarshal(raw, &event); err != nil {
		return
	}

	stamp := time.Now().Format("15:04:05")
	switch event.Type {
	case "message", "error", "dissolve":
		fmt.Fprintf(w, "[%s] %s\n", stamp, event.Message)
	case "state":
		fmt.Fprintf(w, "[%s] stage=%s pot=%d\n", stamp, event.Stage, event.Pot)
	case "showdown":
		fmt.Fprintf(w, "[%s] showdown: %s\n", stamp, string(raw))
	}
}

func websocketURL(server string) (string, error) {
	u, err := url.Parse(strings.TrimSuffix(server, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid server url %q: %w", server, err)
	}
	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	u.Path = "/ws"
	return u.String(), nil
}
