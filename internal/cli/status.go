package cli

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the room server's status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showStatus(jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output raw JSON")

	return cmd
}

type statusResponse struct {
	Status   string `json:"status"`
	Stage    string `json:"stage"`
	Seated   int    `json:"seated"`
	Audience int    `json:"audience"`
	Pot      int    `json:"pot"`
}

func showStatus(jsonOutput bool) error {
	client := &http.Client{Timeout: 10 * time.Second}
	url := strings.TrimSuffix(serverURL, "/") + "/status"

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("fetching status: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	var status statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return fmt.Errorf("decoding status: %w", err)
	}

	if jsonOutput {
		enc := json.NewEncoder(cmdOut())
		enc.SetIndent("", "  ")
		return enc.Encode(status)
	}

	fmt.Fprintf(cmdOut(), "status:   %s\n", status.Status)
	fmt.Fprintf(cmdOut(), "stage:    %s\n", status.Stage)
	fmt.Fprintf(cmdOut(), "seated:   %d\n", status.Seated)
	fmt.Fprintf(cmdOut(), "audience: %d\n", status.Audience)
	fmt.Fprintf(cmdOut(), "pot:      %d\n", status.Pot)
	return nil
}
