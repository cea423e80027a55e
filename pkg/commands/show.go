package commands

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/gntech/signage/pkg/commands/options"
	"github.com/gntech/signage/pkg/content"
	"github.com/gntech/signage/pkg/dateutil"
)

func addShow(topLevel *cobra.Command) {
	so := &options.StoreOptions{}
	do := &options.DateOptions{}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the stored settings and one day's content.",
		Example: `
signage show
signage show --date 2026-09-04
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadStore(so)
			if err != nil {
				return err
			}
			date, err := do.Key(time.Now())
			if err != nil {
				return err
			}
			settings, err := loadSettingsOrEmpty(p)
			if err != nil {
				return err
			}
			daily, err := loadDailyOrEmpty(p, date)
			if err != nil {
				return err
			}
			printSettings(settings)
			printDaily(daily, time.Now())
			return nil
		},
	}

	options.AddStoreArgs(cmd, so)
	options.AddDateArgs(cmd, do)
	topLevel.AddCommand(cmd)
}

var (
	bold      = color.New(color.Bold).SprintFunc()
	underline = color.New(color.Underline).SprintFunc()
)

func printSettings(s *content.Settings) {
	fmt.Fprintln(color.Output, bold(underline("Settings")))

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold("School"), s.SchoolName)
	tbl.AddRow(bold("Class"), s.ClassName)
	fmt.Fprintln(color.Output, tbl)

	if len(s.Ads) > 0 {
		fmt.Fprintln(color.Output, bold(underline("\nAds")))
		tbl = uitable.New()
		tbl.Separator = "  "
		tbl.AddRow(bold("ID"), bold("URL"), bold("Duration"))
		for _, ad := range s.Ads {
			tbl.AddRow(ad.ID, ad.URL, fmt.Sprintf("%ds", ad.DurationSec))
		}
		fmt.Fprintln(color.Output, tbl)
	}

	if len(s.QuietHours) > 0 {
		fmt.Fprintln(color.Output, bold(underline("\nQuiet hours")))
		tbl = uitable.New()
		tbl.Separator = "  "
		for _, iv := range s.QuietHours {
			tbl.AddRow(iv.Start, "to", iv.End)
		}
		fmt.Fprintln(color.Output, tbl)
	}
}

func printDaily(d *content.DailyDoc, now time.Time) {
	fmt.Fprintln(color.Output, bold(underline("\n"+d.Date)))

	if len(d.Schedules) > 0 {
		tbl := uitable.New()
		tbl.Separator = "  "
		tbl.AddRow(bold("Time"), bold("Schedule"))
		for _, item := range d.Schedules {
			tbl.AddRow(item.Time, item.Content)
		}
		fmt.Fprintln(color.Output, tbl)
	}

	if len(d.Notices) > 0 {
		fmt.Fprintln(color.Output, bold("Notices"))
		for _, n := range d.Notices {
			marker := "•"
			if n.IsHighlight {
				marker = "!"
			}
			fmt.Fprintf(color.Output, "  %s %s\n", marker, n.Text)
		}
	}

	if len(d.Assignments) > 0 {
		fmt.Fprintln(color.Output, bold("Assignments"))
		tbl := uitable.New()
		tbl.Separator = "  "
		tbl.AddRow(bold("Due"), bold("Subject"), bold("Task"), bold("Left"))
		for _, a := range d.Assignments {
			left := "?"
			if days, err := dateutil.DaysLeft(a.Deadline, now); err == nil {
				left = fmt.Sprintf("%dd", days)
			}
			tbl.AddRow(a.Deadline, a.Subject, a.Task, left)
		}
		fmt.Fprintln(color.Output, tbl)
	}

	if len(d.Schedules) == 0 && len(d.Notices) == 0 && len(d.Assignments) == 0 {
		fmt.Fprintln(color.Output, "  (empty)")
	}
}
