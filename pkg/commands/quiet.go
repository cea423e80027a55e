package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gntech/signage/pkg/commands/options"
	"github.com/gntech/signage/pkg/content"
)

func addQuiet(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "quiet",
		Short: "Edit the quiet-hours intervals.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addQuietAdd(cmd)
	addQuietClear(cmd)
	topLevel.AddCommand(cmd)
}

func addQuietAdd(topLevel *cobra.Command) {
	so := &options.StoreOptions{}

	cmd := &cobra.Command{
		Use:   "add <start> <end>",
		Short: "Append a quiet interval (start inclusive, end exclusive).",
		Example: `
signage quiet add 09:00 12:00
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("start and end times required")
			}
			for _, arg := range args {
				if _, err := time.Parse("15:04", arg); err != nil {
					return fmt.Errorf("invalid time %q, want HH:MM", arg)
				}
			}
			if args[0] >= args[1] {
				return errors.New("start must be before end; overnight intervals are not supported")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadStore(so)
			if err != nil {
				return err
			}
			s, err := loadSettingsOrEmpty(p)
			if err != nil {
				return err
			}
			s.QuietHours = append(s.QuietHours, content.TimeInterval{Start: args[0], End: args[1]})
			if err := p.SaveSettings(s); err != nil {
				return err
			}
			fmt.Printf("%d quiet interval(s)\n", len(s.QuietHours))
			return nil
		},
	}

	options.AddStoreArgs(cmd, so)
	topLevel.AddCommand(cmd)
}

func addQuietClear(topLevel *cobra.Command) {
	so := &options.StoreOptions{}

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every quiet interval.",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadStore(so)
			if err != nil {
				return err
			}
			s, err := loadSettingsOrEmpty(p)
			if err != nil {
				return err
			}
			s.QuietHours = nil
			if err := p.SaveSettings(s); err != nil {
				return err
			}
			fmt.Println("quiet hours cleared")
			return nil
		},
	}

	options.AddStoreArgs(cmd, so)
	topLevel.AddCommand(cmd)
}
