package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/evcraddock/rentdesk/internal/dashboard"
	"github.com/evcraddock/rentdesk/internal/listing"
	"github.com/evcraddock/rentdesk/internal/maintenance"
	"github.com/evcraddock/rentdesk/internal/resource"
)

func newMaintenanceCmd() *cobra.Command {
	return resourceCmd[maintenance.Request]{
		use:      "maintenance",
		aliases:  []string{"requests"},
		short:    "Manage maintenance requests",
		singular: "Request",
		noun:     "requests",
		handle:   maintenance.Resource,
		blank: func() maintenance.Request {
			r := maintenance.New()
			r.DateSubmitted = resource.FormatDate(time.Now())
			return r
		},
		lister:  func() lister { return &maintenanceLister{} },
		addHelp: `Fields: propertyId, tenantId, title, dateSubmitted (YYYY-MM-DD), estimatedCost, priority (Critical|High|Medium|Low), status (Open|Pending|"In Progress"|Completed).`,
	}.command()
}

type maintenanceLister struct {
	archive  archiveFlags
	dates    dateRange
	search   string
	property int64
	tenant   int64
	status   string
	priority string
	sort     string
}

func (l *maintenanceLister) register(cmd *cobra.Command) {
	l.archive.register(cmd)
	l.dates.register(cmd)
	cmd.Flags().StringVar(&l.search, "search", "", "match title, property or tenant")
	cmd.Flags().Int64Var(&l.property, "property", 0, "property ID")
	cmd.Flags().Int64Var(&l.tenant, "tenant", 0, "tenant ID")
	cmd.Flags().StringVar(&l.status, "status", "", `Open|Pending|"In Progress"|Completed`)
	cmd.Flags().StringVar(&l.priority, "priority", "", "Critical|High|Medium|Low")
	cmd.Flags().StringVar(&l.sort, "sort", string(maintenance.SortDate), "date|priority|status|cost")
}

func (l *maintenanceLister) load(ctx context.Context, d *dashboard.Dashboard) (view, error) {
	sortBy, err := sortFlag(l.sort, maintenance.SortKey.Valid)
	if err != nil {
		return view{}, err
	}
	status, err := enumFlag("status", l.status, maintenance.Status.Valid)
	if err != nil {
		return view{}, err
	}
	priority, err := enumFlag("priority", l.priority, maintenance.Priority.Valid)
	if err != nil {
		return view{}, err
	}
	from, to, err := l.dates.parse()
	if err != nil {
		return view{}, err
	}
	list, err := d.Maintenance(ctx, maintenance.Filters{
		Search:       l.search,
		PropertyID:   idFlag(l.property),
		TenantID:     idFlag(l.tenant),
		Status:       status,
		Priority:     priority,
		From:         from,
		To:           to,
		ShowArchived: l.archive.all,
		OnlyArchived: l.archive.archived,
		SortBy:       sortBy,
	})
	if err != nil {
		return view{}, err
	}
	return view{
		table: maintenance.Table(list.Items, list.Lookups, d.Formatter(ctx)),
		ids:   listing.Keys(list.Items),
		items: list.Items,
	}, nil
}
