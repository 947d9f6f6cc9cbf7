package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/evcraddock/rentdesk/internal/client"
	"github.com/evcraddock/rentdesk/internal/dashboard"
	"github.com/evcraddock/rentdesk/internal/store"
	"github.com/evcraddock/rentdesk/internal/web"
)

// reminderTimeout bounds one scheduled reminder run.
const reminderTimeout = 2 * time.Minute

type serveOptions struct {
	port      int
	seed      bool
	reminders string
	origins   []string
}

func newServeCmd() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start the rentdesk REST API backed by a local SQLite database. With --reminders, lease expiry reminders are posted on a cron schedule.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("port") {
				opts.port = cfg.Server.Port
			}
			if !cmd.Flags().Changed("reminders") {
				opts.reminders = cfg.Reminders.Schedule
			}
			return runServe(cmd.Context(), cfg, opts)
		},
	}

	cmd.Flags().IntVar(&opts.port, "port", 8080, "port to listen on (default: server.port from config)")
	cmd.Flags().BoolVar(&opts.seed, "seed", false, "load sample data into an empty database")
	cmd.Flags().StringVar(&opts.reminders, "reminders", "", `cron schedule for lease expiry reminders, e.g. "0 8 * * *"`)
	cmd.Flags().StringSliceVar(&opts.origins, "allow-origin", nil, "browser origins allowed by CORS (default: any)")

	return cmd
}

func runServe(ctx context.Context, cfg Config, opts serveOptions) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer closeDB(database)

	st := store.New(database)
	if opts.seed {
		if err := st.Seed(ctx, time.Now()); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
	}

	if opts.reminders != "" {
		c, err := scheduleReminders(cfg, opts)
		if err != nil {
			return err
		}
		c.Start()
		defer c.Stop()
	}

	srv := web.NewServer(st, web.Options{AllowedOrigins: opts.origins})
	return srv.ListenAndServe(ctx, opts.port)
}

// scheduleReminders returns a cron running RemindExpiring against the local
// API on schedule.
func scheduleReminders(cfg Config, opts serveOptions) (*cron.Cron, error) {
	var mailer dashboard.Mailer
	if m := cfg.Mailer(); m.Config.IsConfigured() {
		mailer = m
	}
	d := dashboard.New(client.New(fmt.Sprintf("http://localhost:%d/api", opts.port)), mailer)

	c := cron.New(cron.WithLocation(time.UTC))
	_, err := c.AddFunc(opts.reminders, func() {
		ctx, cancel := context.WithTimeout(context.Background(), reminderTimeout)
		defer cancel()

		ids, err := d.RemindExpiring(ctx)
		if err != nil {
			slog.Error("lease reminders failed", "error", err, "reminded", len(ids))
			return
		}
		slog.Info("lease reminders posted", "reminded", len(ids))
	})
	if err != nil {
		return nil, fmt.Errorf("invalid reminder schedule %q: %w", opts.reminders, err)
	}
	slog.Info("lease reminders scheduled", "schedule", opts.reminders)
	return c, nil
}
