package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/gntech/signage/pkg/commands/options"
	"github.com/gntech/signage/pkg/content"
	"github.com/gntech/signage/pkg/dateutil"
)

func addAssignment(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "assignment",
		Short: "Edit a day's assignments.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addAssignmentAdd(cmd)
	addAssignmentClear(cmd)
	topLevel.AddCommand(cmd)
}

func addAssignmentAdd(topLevel *cobra.Command) {
	so := &options.StoreOptions{}
	do := &options.DateOptions{}
	due := ""

	cmd := &cobra.Command{
		Use:   "add <subject> <task>",
		Short: "Append an assignment with a deadline.",
		Example: `
signage assignment add --due 2026-09-10 Math "Worksheet p.34"
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return errors.New("subject and task required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if due == "" {
				return errors.New("--due is required")
			}
			if _, err := dateutil.ParseKey(due); err != nil {
				return fmt.Errorf("invalid due date %q: %w", due, err)
			}
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
			d.Assignments = append(d.Assignments, content.AssignmentItem{
				Deadline: due,
				Subject:  args[0],
				Task:     strings.Join(args[1:], " "),
			})
			if err := p.SaveDaily(d); err != nil {
				return err
			}
			fmt.Printf("%s: %d assignment(s)\n", date, len(d.Assignments))
			return nil
		},
	}

	cmd.Flags().StringVar(&due, "due", "", `Deadline date, example: --due="2026-09-10".`)
	options.AddStoreArgs(cmd, so)
	options.AddDateArgs(cmd, do)
	topLevel.AddCommand(cmd)
}

func addAssignmentClear(topLevel *cobra.Command) {
	so := &options.StoreOptions{}
	do := &options.DateOptions{}

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all assignments recorded on a day.",
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
			d.Assignments = nil
			if err := p.SaveDaily(d); err != nil {
				return err
			}
			fmt.Printf("%s: assignments cleared\n", date)
			return nil
		},
	}

	options.AddStoreArgs(cmd, so)
	options.AddDateArgs(cmd, do)
	topLevel.AddCommand(cmd)
}
