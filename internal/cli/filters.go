package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/evcraddock/rentdesk/internal/resource"
)

// enumFlag parses an optional enum flag value. Empty disables the filter.
func enumFlag[T ~string](flag, value string, valid func(T) bool) (*T, error) {
	if value == "" {
		return nil, nil
	}
	v := T(value)
	if !valid(v) {
		return nil, fmt.Errorf("invalid --%s %q", flag, value)
	}
	return &v, nil
}

// sortFlag parses a --sort value.
func sortFlag[T ~string](value string, valid func(T) bool) (T, error) {
	if !valid(T(value)) {
		return "", fmt.Errorf("invalid --sort %q", value)
	}
	return T(value), nil
}

// idFlag returns nil for an unset (zero) id flag.
func idFlag(id int64) *int64 {
	if id <= 0 {
		return nil
	}
	return &id
}

// dateFlag parses an optional YYYY-MM-DD flag value.
func dateFlag(flag, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := resource.ParseDate(value)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s: %w", flag, err)
	}
	return &t, nil
}

// dateRange holds --from/--to flags.
type dateRange struct {
	from, to string
}

func (r *dateRange) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&r.from, "from", "", "earliest date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&r.to, "to", "", "latest date (YYYY-MM-DD)")
}

func (r *dateRange) parse() (from, to *time.Time, err error) {
	if from, err = dateFlag("from", r.from); err != nil {
		return nil, nil, err
	}
	if to, err = dateFlag("to", r.to); err != nil {
		return nil, nil, err
	}
	return from, to, nil
}
