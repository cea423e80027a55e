package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/gntech/signage/pkg/commands/options"
	"github.com/gntech/signage/pkg/content"
)

func addSchedule(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Edit a day's schedule.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addScheduleAdd(cmd)
	addScheduleClear(cmd)
	topLevel.AddCommand(cmd)
}

func addScheduleAdd(topLevel *cobra.Command) {
	so := &options.StoreOptions{}
	do := &options.DateOptions{}

	cmd := &cobra.Command{
		Use:   "add <time> <content>",
		Short: "Append a schedule entry.",
		Example: `
signage schedule add 09:00 "Math"
signage schedule add --date 2026-09-04 13:30 "Science lab"
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return errors.New("time and content required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadStore(so)
			if err != nil {
				return err
			}
			date, err := do.Key(time.Now())
			if err != nil {
				return err
			}
			d, err := loadDailyOrEmpty(p, date)
			if err != nil {
				return err
			}
			d.Schedules = append(d.Schedules, content.ScheduleItem{
				Time:    args[0],
				Content: strings.Join(args[1:], " "),
			})
			if err := p.SaveDaily(d); err != nil {
				return err
			}
			fmt.Printf("%s: %d schedule entries\n", date, len(d.Schedules))
			return nil
		},
	}

	options.AddStoreArgs(cmd, so)
	options.AddDateArgs(cmd, do)
	topLevel.AddCommand(cmd)
}

func addScheduleClear(topLevel *cobra.Command) {
	so := &options.StoreOptions{}
	do := &options.DateOptions{}

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all schedule entries for a day.",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadStore(so)
			if err != nil {
				return err
			}
			date, err := do.Key(time.Now())
			if err != nil {
				return err
			}
			d, err := loadDailyOrEmpty(p, date)
			if err != nil {
				return err
			}
			d.Schedules = nil
			if err := p.SaveDaily(d); err != nil {
				return err
			}
			fmt.Printf("%s: schedule cleared\n", date)
			return nil
		},
	}

	options.AddStoreArgs(cmd, so)
	options.AddDateArgs(cmd, do)
	topLevel.AddCommand(cmd)
}
