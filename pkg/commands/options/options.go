// Package options defines shared flag helpers for CLI commands.
package options

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gntech/signage/pkg/dateutil"
)

// StoreOptions selects the on-disk document store.
type StoreOptions struct {
	Path string
}

// AddStoreArgs registers the --path flag.
func AddStoreArgs(cmd *cobra.Command, o *StoreOptions) {
	cmd.Flags().StringVar(&o.Path, "path", "",
		"Document store directory. Defaults to the configured store path.")
}

// DateOptions captures the --date flag shared by the daily-document editors.
type DateOptions struct {
	Date string
}

// AddDateArgs registers the --date flag.
func AddDateArgs(cmd *cobra.Command, o *DateOptions) {
	cmd.Flags().StringVar(&o.Date, "date", "",
		`Target date, example: --date="2026-09-01". Defaults to today.`)
}

// Key resolves the target date key, defaulting to today.
func (o *DateOptions) Key(now time.Time) (string, error) {
	if o.Date == "" {
		return dateutil.TodayKey(now), nil
	}
	if _, err := dateutil.ParseKey(o.Date); err != nil {
		return "", fmt.Errorf("invalid date %q: %w", o.Date, err)
	}
	return o.Date, nil
}
