package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gntech/signage/pkg/commands/options"
	"github.com/gntech/signage/pkg/content"
)

func addAd(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ad",
		Short: "Edit the rotating ad list.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addAdAdd(cmd)
	addAdClear(cmd)
	topLevel.AddCommand(cmd)
}

func addAdAdd(topLevel *cobra.Command) {
	so := &options.StoreOptions{}
	url := ""
	duration := 0

	cmd := &cobra.Command{
		Use:   "add <id>",
		Short: "Append an ad to the rotation.",
		Example: `
signage ad add sports-day --url https://example.org/sports.png --duration 8
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("exactly one ad id required")
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
			if len(s.Ads) >= content.MaxAds {
				return fmt.Errorf("ad list is full (%d max)", content.MaxAds)
			}
			s.Ads = append(s.Ads, content.AdItem{
				ID:          args[0],
				URL:         url,
				DurationSec: duration,
			})
			if err := p.SaveSettings(s); err != nil {
				return err
			}
			fmt.Printf("%d ad(s) in rotation\n", len(s.Ads))
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "Ad image or link URL.")
	cmd.Flags().IntVar(&duration, "duration", 0, "Display duration in seconds (0 uses the default).")
	options.AddStoreArgs(cmd, so)
	topLevel.AddCommand(cmd)
}

func addAdClear(topLevel *cobra.Command) {
	so := &options.StoreOptions{}

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every ad from the rotation.",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadStore(so)
			if err != nil {
				return err
			}
			s, err := loadSettingsOrEmpty(p)
			if err != nil {
				return err
			}
			s.Ads = nil
			if err := p.SaveSettings(s); err != nil {
				return err
			}
			fmt.Println("ads cleared")
			return nil
		},
	}

	options.AddStoreArgs(cmd, so)
	topLevel.AddCommand(cmd)
}
