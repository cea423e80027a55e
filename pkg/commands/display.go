package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/gntech/signage/pkg/api"
	"github.com/gntech/signage/pkg/commands/options"
	"github.com/gntech/signage/pkg/content"
	"github.com/gntech/signage/pkg/dateutil"
	"github.com/gntech/signage/pkg/notify"
	"github.com/gntech/signage/pkg/tui/display"
)

func addDisplay(topLevel *cobra.Command) {
	so := &options.StoreOptions{}
	kiosk := false
	listen := ""

	cmd := &cobra.Command{
		Use:   "display",
		Short: "Run the signage board.",
		Example: `
signage display
signage display --kiosk --listen :8080
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadStore(so)
			if err != nil {
				return err
			}

			var sound notify.Tone
			if chime, err := notify.NewChime(); err != nil {
				// The board degrades to visual-only notifications.
				fmt.Fprintf(os.Stderr, "signage: audio unavailable: %v\n", err)
			} else {
				sound = chime
			}

			published := api.NewState(*content.NewViewModel(dateutil.TodayKey(time.Now())))

			opts := display.Options{
				DB:        p,
				Kiosk:     kiosk,
				Sound:     sound,
				Published: published,
			}
			return display.RunWithProgram(opts, func(prog *tea.Program) {
				if listen == "" {
					return
				}
				refresh := func() { prog.Send(display.RefreshMsg{}) }
				router := api.NewRouter(published, refresh)
				go func() {
					if err := api.Serve(context.Background(), listen, router); err != nil {
						fmt.Fprintf(os.Stderr, "signage: api: %v\n", err)
					}
				}()
			})
		},
	}

	cmd.Flags().BoolVar(&kiosk, "kiosk", false,
		"Kiosk mode: skip the startup overlay and auto-hide the audio chip.")
	cmd.Flags().StringVar(&listen, "listen", "",
		`Serve the read-only HTTP API on this address, example: --listen=":8080".`)
	options.AddStoreArgs(cmd, so)

	topLevel.AddCommand(cmd)
}
