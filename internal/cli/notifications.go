package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/rentdesk/internal/dashboard"
	"github.com/evcraddock/rentdesk/internal/export"
	"github.com/evcraddock/rentdesk/internal/listing"
	"github.com/evcraddock/rentdesk/internal/notification"
	"github.com/evcraddock/rentdesk/internal/resource"
)

func newNotificationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"notification"},
		Short:   "Read the notification feed",
		Args:    cobra.NoArgs,
	}
	cmd.AddCommand(
		newNotificationsListCmd(),
		newMarkReadCmd(true),
		newMarkReadCmd(false),
		newNotificationDeleteCmd(),
	)
	return cmd
}

func newNotificationsListCmd() *cobra.Command {
	var unread bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notifications, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithDashboard(cmd, func(ctx context.Context, d *dashboard.Dashboard) error {
				items, err := d.Notifications(ctx, unread)
				if err != nil {
					return err
				}
				if isJSON() {
					return printJSON(cmd.OutOrStdout(), items)
				}
				return printTable(cmd.OutOrStdout(), notificationTable(items, d.Formatter(ctx)), listing.Keys(items), "notifications")
			})
		},
	}
	cmd.Flags().BoolVar(&unread, "unread", false, "only unread notifications")
	return cmd
}

func notificationTable(items []notification.Notification, f export.Formatter) export.Table {
	rows := make([][]string, len(items))
	for i, n := range items {
		state := "unread"
		if n.Read {
			state = "read"
		}
		rows[i] = []string{f.DateTime(n.CreatedAt), string(n.Type), state, n.Title, n.Message}
	}
	return export.Table{
		Title: "Notifications",
		Columns: []export.Column{
			{Header: "Created"},
			{Header: "Type"},
			{Header: "State"},
			{Header: "Title"},
			{Header: "Message"},
		},
		Rows: rows,
	}
}

func newMarkReadCmd(read bool) *cobra.Command {
	use := "unread"
	if read {
		use = "read"
	}
	return &cobra.Command{
		Use:   use + " <id>...",
		Short: "Mark notifications as " + use,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			return runWithDashboard(cmd, func(ctx context.Context, d *dashboard.Dashboard) error {
				for _, id := range ids {
					if _, err := d.MarkRead(ctx, id, read); err != nil {
						return fmt.Errorf("notification %d: %w", id, err)
					}
				}
				if isJSON() {
					return printJSON(cmd.OutOrStdout(), map[string]any{"ids": ids, "read": read})
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "%d notifications marked as %s.\n", len(ids), use)
				return err
			})
		},
	}
}

func newNotificationDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a notification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return runWithDashboard(cmd, func(ctx context.Context, d *dashboard.Dashboard) error {
				if err := d.Delete(ctx, resource.Notifications, id); err != nil {
					return err
				}
				if isJSON() {
					return printJSON(cmd.OutOrStdout(), map[string]any{"id": id, "deleted": true})
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "Notification #%d deleted.\n", id)
				return err
			})
		},
	}
}
