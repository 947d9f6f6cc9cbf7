package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/evcraddock/rentdesk/internal/dashboard"
	"github.com/evcraddock/rentdesk/internal/listing"
	"github.com/evcraddock/rentdesk/internal/payment"
	"github.com/evcraddock/rentdesk/internal/resource"
)

func newPaymentsCmd() *cobra.Command {
	cmd := resourceCmd[payment.Payment]{
		use:      "payments",
		aliases:  []string{"payment"},
		short:    "Manage rent payments",
		singular: "Payment",
		noun:     "payments",
		handle:   payment.Resource,
		blank: func() payment.Payment {
			p := payment.New()
			p.Date = resource.FormatDate(time.Now())
			return p
		},
		lister:  func() lister { return &paymentLister{} },
		addHelp: `Fields: tenantId, leaseId, amount, date (YYYY-MM-DD), reference, method (M-Pesa|"Bank Transfer"|Cash|Card), status (Completed|Pending|Overdue).`,
	}.command()

	cmd.AddCommand(
		newMarkPaidCmd(),
		newReceiptCmd(),
		newPaymentStatsCmd(),
	)
	return cmd
}

type paymentLister struct {
	archive archiveFlags
	dates   dateRange
	search  string
	tenant  int64
	lease   int64
	method  string
	status  string
	sort    string
}

func (l *paymentLister) register(cmd *cobra.Command) {
	l.archive.register(cmd)
	l.dates.register(cmd)
	cmd.Flags().StringVar(&l.search, "search", "", "match tenant, property or reference")
	cmd.Flags().Int64Var(&l.tenant, "tenant", 0, "tenant ID")
	cmd.Flags().Int64Var(&l.lease, "lease", 0, "lease ID")
	cmd.Flags().StringVar(&l.method, "method", "", `M-Pesa|"Bank Transfer"|Cash|Card`)
	cmd.Flags().StringVar(&l.status, "status", "", "Completed|Pending|Overdue")
	cmd.Flags().StringVar(&l.sort, "sort", string(payment.SortDate), "date|amount|status")
}

func (l *paymentLister) filters() (payment.Filters, error) {
	sortBy, err := sortFlag(l.sort, payment.SortKey.Valid)
	if err != nil {
		return payment.Filters{}, err
	}
	method, err := enumFlag("method", l.method, payment.Method.Valid)
	if err != nil {
		return payment.Filters{}, err
	}
	status, err := enumFlag("status", l.status, payment.Status.Valid)
	if err != nil {
		return payment.Filters{}, err
	}
	from, to, err := l.dates.parse()
	if err != nil {
		return payment.Filters{}, err
	}
	return payment.Filters{
		Search:       l.search,
		TenantID:     idFlag(l.tenant),
		LeaseID:      idFlag(l.lease),
		Method:       method,
		Status:       status,
		From:         from,
		To:           to,
		ShowArchived: l.archive.all,
		OnlyArchived: l.archive.archived,
		SortBy:       sortBy,
	}, nil
}

func (l *paymentLister) load(ctx context.Context, d *dashboard.Dashboard) (view, error) {
	f, err := l.filters()
	if err != nil {
		return view{}, err
	}
	list, err := d.Payments(ctx, f)
	if err != nil {
		return view{}, err
	}
	return view{
		table: payment.Table(list.Items, list.Lookups, d.Formatter(ctx)),
		ids:   listing.Keys(list.Items),
		items: list.Items,
	}, nil
}

func newMarkPaidCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mark-paid <id>...",
		Short: "Mark payments as completed",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			return runWithDashboard(cmd, func(ctx context.Context, d *dashboard.Dashboard) error {
				if err := d.BulkMarkPaid(ctx, ids); err != nil {
					return err
				}
				if isJSON() {
					return printJSON(cmd.OutOrStdout(), map[string]any{"ids": ids, "status": payment.StatusCompleted})
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "%d payments marked as paid.\n", len(ids))
				return err
			})
		},
	}
}

func newReceiptCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "receipt <id>",
		Short: "Write a PDF receipt for a payment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if out == "" {
				out = fmt.Sprintf("receipt-%d.pdf", id)
			}
			return runWithDashboard(cmd, func(ctx context.Context, d *dashboard.Dashboard) error {
				data, err := d.Receipt(ctx, id)
				if err != nil {
					return err
				}
				return writeOutput(cmd, out, data)
			})
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "output file (default: receipt-<id>.pdf)")
	return cmd
}

func newPaymentStatsCmd() *cobra.Command {
	l := &paymentLister{}
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarise payments by status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := l.filters()
			if err != nil {
				return err
			}
			return runWithDashboard(cmd, func(ctx context.Context, d *dashboard.Dashboard) error {
				stats, err := d.PaymentStats(ctx, f)
				if err != nil {
					return err
				}
				if isJSON() {
					return printJSON(cmd.OutOrStdout(), stats)
				}
				fm := d.Formatter(ctx)
				return printLines(cmd.OutOrStdout(), []string{
					fmt.Sprintf("Payments:     %d", stats.Total),
					fmt.Sprintf("  Completed:  %d", stats.Completed),
					fmt.Sprintf("  Pending:    %d", stats.Pending),
					fmt.Sprintf("  Overdue:    %d", stats.Overdue),
					fmt.Sprintf("Total:        %s", fm.Money(stats.TotalAmount.InexactFloat64())),
					fmt.Sprintf("Outstanding:  %s", fm.Money(stats.Outstanding.InexactFloat64())),
				})
			})
		},
	}
	l.register(cmd)
	return cmd
}
