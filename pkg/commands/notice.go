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

func addNotice(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "notice",
		Short: "Edit a day's notices.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addNoticeAdd(cmd)
	addNoticeClear(cmd)
	topLevel.AddCommand(cmd)
}

func addNoticeAdd(topLevel *cobra.Command) {
	so := &options.StoreOptions{}
	do := &options.DateOptions{}
	highlight := false

	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Append a notice.",
		Example: `
signage notice add "Assembly at noon"
signage notice add --highlight "Fire drill at 14:00"
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("notice text required")
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
			d.Notices = append(d.Notices, content.NoticeItem{
				Text:        strings.Join(args, " "),
				IsHighlight: highlight,
			})
			if err := p.SaveDaily(d); err != nil {
				return err
			}
			fmt.Printf("%s: %d notice(s)\n", date, len(d.Notices))
			return nil
		},
	}

	cmd.Flags().BoolVar(&highlight, "highlight", false, "Mark the notice as a highlight.")
	options.AddStoreArgs(cmd, so)
	options.AddDateArgs(cmd, do)
	topLevel.AddCommand(cmd)
}

func addNoticeClear(topLevel *cobra.Command) {
	so := &options.StoreOptions{}
	do := &options.DateOptions{}

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all notices for a day.",
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
			d.Notices = nil
			if err := p.SaveDaily(d); err != nil {
				return err
			}
			fmt.Printf("%s: notices cleared\n", date)
			return nil
		},
	}

	options.AddStoreArgs(cmd, so)
	options.AddDateArgs(cmd, do)
	topLevel.AddCommand(cmd)
}
