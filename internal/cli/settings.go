package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/evcraddock/rentdesk/internal/dashboard"
)

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change dashboard settings",
		Long:  "Dashboard settings are stored on the server: currency, locale, theme, branding, contact details and notification channels.",
		Args:  cobra.NoArgs,
	}
	cmd.AddCommand(newSettingsShowCmd(), newSettingsSetCmd())
	return cmd
}

func newSettingsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithDashboard(cmd, func(ctx context.Context, d *dashboard.Dashboard) error {
				s, err := d.Settings(ctx)
				if err != nil {
					return err
				}
				return printResult(cmd, "Settings", s)
			})
		},
	}
}

func newSettingsSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "set <field=value>...",
		Short:   "Change settings",
		Example: "  rd settings set currency=USD locale=en-US emailEnabled=true contactEmail=me@example.com",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := parseSets(args)
			if err != nil {
				return err
			}
			return runWithDashboard(cmd, func(ctx context.Context, d *dashboard.Dashboard) error {
				s, err := d.UpdateSettings(ctx, patch)
				if err != nil {
					return err
				}
				return printResult(cmd, "Settings updated.", s)
			})
		},
	}
}
