package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/evcraddock/rentdesk/internal/dashboard"
	"github.com/evcraddock/rentdesk/internal/document"
	"github.com/evcraddock/rentdesk/internal/export"
	"github.com/evcraddock/rentdesk/internal/lease"
	"github.com/evcraddock/rentdesk/internal/listing"
	"github.com/evcraddock/rentdesk/internal/resource"
)

func newLeasesCmd() *cobra.Command {
	cmd := resourceCmd[lease.Lease]{
		use:      "leases",
		aliases:  []string{"lease"},
		short:    "Manage leases",
		singular: "Lease",
		noun:     "leases",
		handle:   lease.Resource,
		blank: func() lease.Lease {
			today := time.Now()
			return lease.Lease{
				StartDate: resource.FormatDate(today),
				EndDate:   resource.FormatDate(today.Add(lease.RenewalTerm)),
				Status:    lease.StatusActive,
			}
		},
		lister:  func() lister { return &leaseLister{} },
		addHelp: "Fields: propertyId, tenantId, unit, startDate, endDate (YYYY-MM-DD), rentAmount, status (Active|Terminated|Pending).",
	}.command()

	cmd.AddCommand(
		newLeaseRenewCmd(),
		newLeaseRemindCmd(),
		newLeaseSheetCmd(),
		newLeaseDocsCmd(),
	)
	return cmd
}

type leaseLister struct {
	archive  archiveFlags
	search   string
	status   string
	property int64
	tenant   int64
	sort     string
}

func (l *leaseLister) register(cmd *cobra.Command) {
	l.archive.register(cmd)
	cmd.Flags().StringVar(&l.search, "search", "", "match property, tenant or unit")
	cmd.Flags().StringVar(&l.status, "status", "", `Active|Pending|"Pending Renewal"|Expired|Archived`)
	cmd.Flags().Int64Var(&l.property, "property", 0, "property ID")
	cmd.Flags().Int64Var(&l.tenant, "tenant", 0, "tenant ID")
	cmd.Flags().StringVar(&l.sort, "sort", string(lease.SortEnd), "end|start|rent")
}

func (l *leaseLister) load(ctx context.Context, d *dashboard.Dashboard) (view, error) {
	sortBy, err := sortFlag(l.sort, lease.SortKey.Valid)
	if err != nil {
		return view{}, err
	}
	status, err := enumFlag("status", l.status, lease.DisplayStatus.Valid)
	if err != nil {
		return view{}, err
	}
	list, err := d.Leases(ctx, lease.Filters{
		Search:       l.search,
		Status:       status,
		PropertyID:   idFlag(l.property),
		TenantID:     idFlag(l.tenant),
		ShowArchived: l.archive.all,
		OnlyArchived: l.archive.archived,
		SortBy:       sortBy,
	})
	if err != nil {
		return view{}, err
	}
	return view{
		table: lease.Table("Leases", list.Items, list.Lookups, d.Formatter(ctx), list.Now),
		ids:   listing.Keys(list.Items),
		items: list.Items,
	}, nil
}

func newLeaseRenewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "renew <id>",
		Short: "Create the follow-on lease for a lease",
		Long:  "Create a new active lease starting on the lease's end date and running one more year at the same rent.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return runWithDashboard(cmd, func(ctx context.Context, d *dashboard.Dashboard) error {
				next, err := d.RenewLease(ctx, id)
				if err != nil {
					return err
				}
				return printResult(cmd, fmt.Sprintf("Lease #%d renewed as lease #%d.", id, next.ID), next)
			})
		},
	}
}

func newLeaseRemindCmd() *cobra.Command {
	var expiring bool
	cmd := &cobra.Command{
		Use:   "remind [<id> | --expiring]",
		Short: "Post lease expiry reminders",
		Long:  "Post an expiry reminder notification for one lease, or for every lease due for renewal with --expiring. Leases with an unread reminder are skipped.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if expiring == (len(args) == 1) {
				return fmt.Errorf("pass either a lease ID or --expiring")
			}
			return runWithDashboard(cmd, func(ctx context.Context, d *dashboard.Dashboard) error {
				if expiring {
					ids, err := d.RemindExpiring(ctx)
					if err != nil {
						return err
					}
					return printReminded(cmd, ids)
				}

				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				ok, err := d.Remind(ctx, id)
				if err != nil {
					return err
				}
				var ids []int64
				if ok {
					ids = append(ids, id)
				}
				return printReminded(cmd, ids)
			})
		},
	}
	cmd.Flags().BoolVar(&expiring, "expiring", false, "remind every lease due for renewal")
	return cmd
}

func printReminded(cmd *cobra.Command, ids []int64) error {
	if isJSON() {
		if ids == nil {
			ids = []int64{}
		}
		return printJSON(cmd.OutOrStdout(), map[string]any{"reminded": ids})
	}
	w := cmd.OutOrStdout()
	if len(ids) == 0 {
		_, err := fmt.Fprintln(w, "No reminders posted.")
		return err
	}
	for _, id := range ids {
		if _, err := fmt.Fprintf(w, "Reminder posted for lease #%d\n", id); err != nil {
			return err
		}
	}
	return nil
}

func newLeaseSheetCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "sheet <id>",
		Short: "Write a one-page PDF summary of a lease",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if out == "" {
				out = fmt.Sprintf("lease-%d.pdf", id)
			}
			return runWithDashboard(cmd, func(ctx context.Context, d *dashboard.Dashboard) error {
				data, err := d.LeaseSheet(ctx, id)
				if err != nil {
					return err
				}
				return writeOutput(cmd, out, data)
			})
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "output file (default: lease-<id>.pdf)")
	return cmd
}

func newLeaseDocsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Manage documents attached to leases",
		Args:  cobra.NoArgs,
	}
	cmd.AddCommand(
		newDocsListCmd(),
		newDocsAttachCmd(),
		newDocsGetCmd(),
		newDocsRemoveCmd(),
	)
	return cmd
}

func newDocsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <lease-id>",
		Short: "List documents attached to a lease",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			leaseID, err := parseID(args[0])
			if err != nil {
				return err
			}
			return runWithDashboard(cmd, func(ctx context.Context, d *dashboard.Dashboard) error {
				docs, err := d.Documents(ctx, leaseID)
				if err != nil {
					return err
				}
				if isJSON() {
					return printJSON(cmd.OutOrStdout(), docs)
				}
				return printTable(cmd.OutOrStdout(), documentTable(docs), listing.Keys(docs), "documents")
			})
		},
	}
}

func documentTable(docs []document.Document) export.Table {
	rows := make([][]string, len(docs))
	for i, doc := range docs {
		rows[i] = []string{doc.Name, doc.MimeType, fmt.Sprintf("%d", doc.Size)}
	}
	return export.Table{
		Title:   "Documents",
		Columns: []export.Column{{Header: "Name"}, {Header: "Type"}, {Header: "Bytes"}},
		Rows:    rows,
	}
}

func newDocsAttachCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "attach <lease-id> <file>",
		Short: "Attach a file to a lease",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			leaseID, err := parseID(args[0])
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[1], err)
			}
			doc, err := document.FromFile(leaseID, args[1], data)
			if err != nil {
				return err
			}
			return runWithDashboard(cmd, func(ctx context.Context, d *dashboard.Dashboard) error {
				saved, err := d.Attach(ctx, doc)
				if err != nil {
					return err
				}
				return printResult(cmd, fmt.Sprintf("Document #%d attached to lease #%d.", saved.ID, leaseID), saved)
			})
		},
	}
}

func newDocsGetCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "get <document-id>",
		Short: "Download a lease document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return runWithDashboard(cmd, func(ctx context.Context, d *dashboard.Dashboard) error {
				doc, err := dashboard.Get(ctx, d, document.Resource, id)
				if err != nil {
					return err
				}
				data, err := doc.Bytes()
				if err != nil {
					return err
				}
				path := out
				if path == "" {
					path = doc.Name
				}
				return writeOutput(cmd, path, data)
			})
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "output file (default: the document name)")
	return cmd
}

func newDocsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <document-id>",
		Short: "Remove a lease document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return runWithDashboard(cmd, func(ctx context.Context, d *dashboard.Dashboard) error {
				if err := d.Delete(ctx, resource.LeaseDocuments, id); err != nil {
					return err
				}
				if isJSON() {
					return printJSON(cmd.OutOrStdout(), map[string]any{"id": id, "removed": true})
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "Document #%d removed.\n", id)
				return err
			})
		},
	}
}
