package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/rentdesk/internal/dashboard"
	"github.com/evcraddock/rentdesk/internal/export"
)

func newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show portfolio metrics",
		Long:  "Show occupancy, monthly revenue and outstanding rent across live records, plus record counts per section.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithDashboard(cmd, func(ctx context.Context, d *dashboard.Dashboard) error {
				m, err := d.Metrics(ctx)
				if err != nil {
					return err
				}
				if isJSON() {
					return printJSON(cmd.OutOrStdout(), m)
				}
				return printLines(cmd.OutOrStdout(), metricLines(m, d.Formatter(ctx)))
			})
		},
	}
}

func metricLines(m dashboard.Metrics, f export.Formatter) []string {
	return []string{
		fmt.Sprintf("Properties:        %d", m.TotalProperties),
		fmt.Sprintf("Units:             %d occupied of %d (%.1f%%)", m.OccupiedUnits, m.TotalUnits, m.OccupancyRate*100),
		fmt.Sprintf("Monthly revenue:   %s", f.Money(m.MonthlyRevenue.InexactFloat64())),
		fmt.Sprintf("Outstanding rent:  %s", f.Money(m.OutstandingRent.InexactFloat64())),
		"",
		fmt.Sprintf("Tenants:      %d", m.Counts.Tenants),
		fmt.Sprintf("Leases:       %d", m.Counts.Leases),
		fmt.Sprintf("Payments:     %d", m.Counts.Payments),
		fmt.Sprintf("Maintenance:  %d", m.Counts.Maintenance),
	}
}
