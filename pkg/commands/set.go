package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gntech/signage/pkg/commands/options"
)

func addSet(topLevel *cobra.Command) {
	so := &options.StoreOptions{}
	school := ""
	class := ""

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set the school and class names.",
		Example: `
signage set --school "Northside High" --class "3-B"
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadStore(so)
			if err != nil {
				return err
			}
			s, err := loadSettingsOrEmpty(p)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("school") {
				s.SchoolName = school
			}
			if cmd.Flags().Changed("class") {
				s.ClassName = class
			}
			if err := p.SaveSettings(s); err != nil {
				return err
			}
			fmt.Printf("school=%q class=%q\n", s.SchoolName, s.ClassName)
			return nil
		},
	}

	cmd.Flags().StringVar(&school, "school", "", "School name shown in the header.")
	cmd.Flags().StringVar(&class, "class", "", "Class name shown in the header.")
	options.AddStoreArgs(cmd, so)
	topLevel.AddCommand(cmd)
}
