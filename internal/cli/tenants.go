package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/evcraddock/rentdesk/internal/dashboard"
	"github.com/evcraddock/rentdesk/internal/listing"
	"github.com/evcraddock/rentdesk/internal/tenant"
)

func newTenantsCmd() *cobra.Command {
	return resourceCmd[tenant.Tenant]{
		use:      "tenants",
		aliases:  []string{"tenant"},
		short:    "Manage tenants",
		singular: "Tenant",
		noun:     "tenants",
		handle:   tenant.Resource,
		blank:    tenant.New,
		lister:   func() lister { return &tenantLister{} },
		addHelp:  "Fields: name, unit, phone, rentAmount, propertyId, status (Active|Inactive), paymentStatus (Paid|Pending|Overdue).",
	}.command()
}

type tenantLister struct {
	archive  archiveFlags
	search   string
	status   string
	property int64
	sort     string
}

func (l *tenantLister) register(cmd *cobra.Command) {
	l.archive.register(cmd)
	cmd.Flags().StringVar(&l.search, "search", "", "match name, unit, phone or property")
	cmd.Flags().StringVar(&l.status, "status", "", "Active|Inactive")
	cmd.Flags().Int64Var(&l.property, "property", 0, "property ID")
	cmd.Flags().StringVar(&l.sort, "sort", string(tenant.SortName), "name|rent|payment")
}

func (l *tenantLister) load(ctx context.Context, d *dashboard.Dashboard) (view, error) {
	sortBy, err := sortFlag(l.sort, tenant.SortKey.Valid)
	if err != nil {
		return view{}, err
	}
	status, err := enumFlag("status", l.status, tenant.Status.Valid)
	if err != nil {
		return view{}, err
	}
	list, err := d.Tenants(ctx, tenant.Filters{
		Search:       l.search,
		Status:       status,
		PropertyID:   idFlag(l.property),
		ShowArchived: l.archive.all,
		OnlyArchived: l.archive.archived,
		SortBy:       sortBy,
	})
	if err != nil {
		return view{}, err
	}
	return view{
		table: tenant.Table("Tenants", list.Items, list.Lookups, d.Formatter(ctx)),
		ids:   listing.Keys(list.Items),
		items: list.Items,
	}, nil
}
