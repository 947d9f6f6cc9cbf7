package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/evcraddock/rentdesk/internal/dashboard"
	"github.com/evcraddock/rentdesk/internal/listing"
	"github.com/evcraddock/rentdesk/internal/property"
)

func newPropertiesCmd() *cobra.Command {
	return resourceCmd[property.Property]{
		use:      "properties",
		aliases:  []string{"property"},
		short:    "Manage properties",
		singular: "Property",
		noun:     "properties",
		handle:   property.Resource,
		blank: func() property.Property {
			return property.Property{Status: property.StatusActive}
		},
		lister:  func() lister { return &propertyLister{} },
		addHelp: "Fields: name, location, totalUnits, occupiedUnits, monthlyRevenue, status (Active|Inactive).",
	}.command()
}

type propertyLister struct {
	archive archiveFlags
	search  string
	status  string
	sort    string
}

func (l *propertyLister) register(cmd *cobra.Command) {
	l.archive.register(cmd)
	cmd.Flags().StringVar(&l.search, "search", "", "match name or location")
	cmd.Flags().StringVar(&l.status, "status", "", "Active|Inactive")
	cmd.Flags().StringVar(&l.sort, "sort", string(property.SortName), "name|revenue|occupancy")
}

func (l *propertyLister) filters() (property.Filters, error) {
	sortBy, err := sortFlag(l.sort, property.SortKey.Valid)
	if err != nil {
		return property.Filters{}, err
	}
	status, err := enumFlag("status", l.status, property.Status.Valid)
	if err != nil {
		return property.Filters{}, err
	}
	return property.Filters{
		Search:       l.search,
		Status:       status,
		ShowArchived: l.archive.all,
		OnlyArchived: l.archive.archived,
		SortBy:       sortBy,
	}, nil
}

func (l *propertyLister) load(ctx context.Context, d *dashboard.Dashboard) (view, error) {
	f, err := l.filters()
	if err != nil {
		return view{}, err
	}
	list, err := d.Properties(ctx, f)
	if err != nil {
		return view{}, err
	}
	return view{
		table: property.Table(list.Items, d.Formatter(ctx)),
		ids:   listing.Keys(list.Items),
		items: list.Items,
	}, nil
}
