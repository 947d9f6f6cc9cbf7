package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evcraddock/rentdesk/internal/dashboard"
	"github.com/evcraddock/rentdesk/internal/export"
	"github.com/evcraddock/rentdesk/internal/resource"
)

// view is a filtered list ready for printing or export.
type view struct {
	table export.Table
	ids   []int64
	items any
}

// lister registers list filter flags and loads the matching view.
type lister interface {
	register(cmd *cobra.Command)
	load(ctx context.Context, d *dashboard.Dashboard) (view, error)
}

// archiveFlags are the archive visibility flags shared by every list.
type archiveFlags struct {
	all      bool
	archived bool
}

func (a *archiveFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&a.all, "all", false, "include archived records")
	cmd.Flags().BoolVar(&a.archived, "archived", false, "show only archived records")
	cmd.MarkFlagsMutuallyExclusive("all", "archived")
}

// resourceCmd describes the commands shared by every record type.
type resourceCmd[T resource.Entity] struct {
	use      string
	aliases  []string
	short    string
	singular string
	noun     string
	handle   resource.Handle[T]
	blank    func() T
	lister   func() lister
	addHelp  string
}

// command builds the resource group with list, show, add, update,
// archive, restore, delete and export subcommands.
func (r resourceCmd[T]) command() *cobra.Command {
	cmd := &cobra.Command{
		Use:     r.use,
		Aliases: r.aliases,
		Short:   r.short,
		Args:    cobra.NoArgs,
	}
	cmd.AddCommand(
		r.listCmd(),
		r.showCmd(),
		r.addCmd(),
		r.updateCmd(),
		r.archiveCmd(true),
		r.archiveCmd(false),
		r.deleteCmd(),
		r.exportCmd(),
	)
	return cmd
}

func (r resourceCmd[T]) listCmd() *cobra.Command {
	l := r.lister()
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List " + r.noun,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithDashboard(cmd, func(ctx context.Context, d *dashboard.Dashboard) error {
				v, err := l.load(ctx, d)
				if err != nil {
					return err
				}
				if isJSON() {
					return printJSON(cmd.OutOrStdout(), v.items)
				}
				return printTable(cmd.OutOrStdout(), v.table, v.ids, r.noun)
			})
		},
	}
	l.register(cmd)
	return cmd
}

func (r resourceCmd[T]) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return runWithDashboard(cmd, func(ctx context.Context, d *dashboard.Dashboard) error {
				v, err := dashboard.Get(ctx, d, r.handle, id)
				if err != nil {
					return err
				}
				return printResult(cmd, r.title(v), v)
			})
		},
	}
}

func (r resourceCmd[T]) addCmd() *cobra.Command {
	var sets []string
	cmd := &cobra.Command{
		Use:   "add --set field=value...",
		Short: "Add a record",
		Long:  "Add a record. Fields are given as --set field=value; values are parsed as JSON when possible.\n\n" + r.addHelp,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := parseSets(sets)
			if err != nil {
				return err
			}
			body, err := overlay(r.blank(), patch)
			if err != nil {
				return err
			}
			return runWithDashboard(cmd, func(ctx context.Context, d *dashboard.Dashboard) error {
				created, err := dashboard.Create(ctx, d, r.handle, body)
				if err != nil {
					return err
				}
				return printResult(cmd, r.title(created)+" added.", created)
			})
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "field=value (repeatable)")
	return cmd
}

func (r resourceCmd[T]) updateCmd() *cobra.Command {
	var sets []string
	cmd := &cobra.Command{
		Use:   "update <id> --set field=value...",
		Short: "Update fields of a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			patch, err := parseSets(sets)
			if err != nil {
				return err
			}
			if len(patch) == 0 {
				return fmt.Errorf("nothing to update, pass at least one --set")
			}
			return runWithDashboard(cmd, func(ctx context.Context, d *dashboard.Dashboard) error {
				updated, err := dashboard.Update(ctx, d, r.handle, id, patch)
				if err != nil {
					return err
				}
				return printResult(cmd, r.title(updated)+" updated.", updated)
			})
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "field=value (repeatable)")
	return cmd
}

func (r resourceCmd[T]) archiveCmd(archived bool) *cobra.Command {
	use, verb := "restore", "restored"
	if archived {
		use, verb = "archive", "archived"
	}
	return &cobra.Command{
		Use:   use + " <id>...",
		Short: strings.ToUpper(use[:1]) + use[1:] + " records",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			return runWithDashboard(cmd, func(ctx context.Context, d *dashboard.Dashboard) error {
				if err := d.BulkArchive(ctx, r.handle.Name(), ids, archived); err != nil {
					return err
				}
				if isJSON() {
					return printJSON(cmd.OutOrStdout(), map[string]any{"ids": ids, verb: true})
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "%d %s %s.\n", len(ids), r.noun, verb)
				return err
			})
		},
	}
}

func (r resourceCmd[T]) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Permanently delete a record and its dependents",
		Long:  "Permanently delete a record. Dependent records are deleted with it; archive instead to keep history.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return runWithDashboard(cmd, func(ctx context.Context, d *dashboard.Dashboard) error {
				ops, err := d.DeletePermanent(ctx, r.handle.Name(), id)
				if err != nil {
					return err
				}
				if isJSON() {
					return printJSON(cmd.OutOrStdout(), map[string]any{"deleted": ops})
				}
				w := cmd.OutOrStdout()
				for _, op := range ops {
					if _, err := fmt.Fprintf(w, "Deleted %s\n", op); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

func (r resourceCmd[T]) exportCmd() *cobra.Command {
	var format, out string
	l := r.lister()
	cmd := &cobra.Command{
		Use:   "export --type csv|pdf",
		Short: "Export the filtered list as CSV or PDF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := export.Format(format)
			if f != export.FormatCSV && f != export.FormatPDF {
				return fmt.Errorf("invalid export type %q (csv|pdf)", format)
			}
			if out == "" {
				out = r.use + "." + format
			}
			return runWithDashboard(cmd, func(ctx context.Context, d *dashboard.Dashboard) error {
				v, err := l.load(ctx, d)
				if err != nil {
					return err
				}
				data, err := export.Render(v.table, f)
				if err != nil {
					return err
				}
				return writeOutput(cmd, out, data)
			})
		},
	}
	cmd.Flags().StringVar(&format, "type", "csv", "export type (csv|pdf)")
	cmd.Flags().StringVar(&out, "out", "", "output file (default: <resource>.<type>)")
	l.register(cmd)
	return cmd
}

func (r resourceCmd[T]) title(v T) string {
	return fmt.Sprintf("%s #%d", r.singular, v.Key())
}

// printResult prints v as JSON or as a titled key/value list.
func printResult(cmd *cobra.Command, title string, v any) error {
	if isJSON() {
		return printJSON(cmd.OutOrStdout(), v)
	}
	return printRecord(cmd.OutOrStdout(), title, v)
}

// writeOutput writes data to path and reports it. A path of "-" writes to
// the command's output.
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if isJSON() {
		return printJSON(cmd.OutOrStdout(), map[string]any{"path": path, "bytes": len(data)})
	}
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", path, len(data))
	return err
}

// parseID parses a positive record ID.
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid ID: %s", s)
	}
	return id, nil
}

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, a := range args {
		id, err := parseID(a)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// parseSets turns field=value pairs into a patch. Values that parse as JSON
// keep their JSON type; anything else is a string. Quote a numeric-looking
// string as '"555"' to keep it a string.
func parseSets(sets []string) (map[string]any, error) {
	patch := make(map[string]any, len(sets))
	for _, s := range sets {
		k, raw, ok := strings.Cut(s, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --set %q, want field=value", s)
		}
		if k == "id" {
			return nil, fmt.Errorf("id cannot be set")
		}
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			v = raw
		}
		patch[k] = v
	}
	return patch, nil
}

// overlay applies patch over the JSON form of v.
func overlay[T any](v T, patch map[string]any) (T, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return v, fmt.Errorf("encoding record: %w", err)
	}
	fields := map[string]any{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return v, fmt.Errorf("decoding record: %w", err)
	}
	for k, val := range patch {
		fields[k] = val
	}
	data, err = json.Marshal(fields)
	if err != nil {
		return v, fmt.Errorf("encoding record: %w", err)
	}
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return v, fmt.Errorf("invalid field value: %w", err)
	}
	return out, nil
}
