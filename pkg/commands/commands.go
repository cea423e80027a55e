// Package commands wires the signage CLI.
package commands

import (
	"github.com/spf13/cobra"
)

// New builds the root command.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signage",
		Short: "Classroom signage display and its content editor.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

// AddCommands attaches every subcommand to topLevel.
func AddCommands(topLevel *cobra.Command) {
	addDisplay(topLevel)
	addShow(topLevel)
	addSet(topLevel)
	addNotice(topLevel)
	addSchedule(topLevel)
	addAssignment(topLevel)
	addAd(topLevel)
	addQuiet(topLevel)
	addVersion(topLevel)
}
