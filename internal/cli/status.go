package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/evcraddock/rentdesk/internal/client"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check the connection to the API server",
		Long:  "Tests the connection to the configured API server and reports whether it is healthy.",
		Args:  cobra.NoArgs,
		RunE:  runStatus,
	}
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	url := serverURL(cfg)

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()
	healthErr := client.New(url).Health(ctx)

	if isJSON() {
		out := map[string]any{"server": url, "healthy": healthErr == nil}
		if healthErr != nil {
			out["error"] = healthErr.Error()
		}
		return printJSON(cmd.OutOrStdout(), out)
	}

	w := cmd.OutOrStdout()
	if _, err := fmt.Fprintf(w, "Server:  %s\n", url); err != nil {
		return err
	}

	switch {
	case healthErr == nil:
		_, err = fmt.Fprintln(w, "Status:  ✓ connected")
	case client.StatusOf(healthErr) != 0:
		_, err = fmt.Fprintf(w, "Status:  ✗ unhealthy (%d)\n", client.StatusOf(healthErr))
	default:
		_, err = fmt.Fprintf(w, "Status:  ✗ cannot reach server (%v)\n", healthErr)
		if err == nil {
			_, err = fmt.Fprintln(w, "\nRun 'rd serve' to start a local server.")
		}
	}
	return err
}
