// Package cli defines the cobra command tree for rentdesk.
package cli

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/evcraddock/rentdesk/internal/client"
	"github.com/evcraddock/rentdesk/internal/dashboard"
	"github.com/evcraddock/rentdesk/internal/db"
	"github.com/evcraddock/rentdesk/internal/logging"
)

var (
	flagFormat string
	flagServer string
	flagDB     string
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "rd",
		Short:         "Manage rental properties",
		Long:          "A property management dashboard. Track properties, tenants, leases, payments and maintenance requests from the CLI, backed by the rentdesk API.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// A broken config file is reported by the command that loads it.
			cfg, _ := loadConfig()
			logging.Setup(cmd.ErrOrStderr(), cfg.Dev)
		},
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagServer, "server", "", "API base URL (default: server.url from config)")
	root.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite database path for serve (default: ~/.rentdesk/rentdesk.db)")

	root.AddCommand(
		newPropertiesCmd(),
		newTenantsCmd(),
		newLeasesCmd(),
		newPaymentsCmd(),
		newMaintenanceCmd(),
		newNotificationsCmd(),
		newSettingsCmd(),
		newDashboardCmd(),
		newConfigCmd(),
		newServeCmd(),
		newStatusCmd(),
		newVersionCmd(),
	)

	return root
}

// serverURL returns the --server flag or the configured API URL.
func serverURL(cfg Config) string {
	if flagServer != "" {
		return flagServer
	}
	return cfg.Server.URL
}

// newDashboard loads the config and returns a dashboard talking to the API.
// Reminder e-mails are only wired when SMTP is configured.
func newDashboard() (*dashboard.Dashboard, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	var mailer dashboard.Mailer
	if m := cfg.Mailer(); m.Config.IsConfigured() {
		mailer = m
	}
	return dashboard.New(client.New(serverURL(cfg)), mailer), nil
}

// runWithDashboard builds a dashboard and runs fn with the command context.
func runWithDashboard(cmd *cobra.Command, fn func(ctx context.Context, d *dashboard.Dashboard) error) error {
	d, err := newDashboard()
	if err != nil {
		return err
	}
	return fn(cmd.Context(), d)
}

// openDB opens the SQLite database using the --db flag, then the config.
// Used by the serve command to pass the DB to the web server.
func openDB(cfg Config) (*sql.DB, error) {
	path := flagDB
	if path == "" {
		path = cfg.DB.Path
	}
	return db.Open(path)
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}

// closeDB closes the database, logging any error to stderr.
func closeDB(database *sql.DB) {
	if err := database.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: closing database: %v\n", err)
	}
}
