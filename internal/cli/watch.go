package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/reposel/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Re-print the navigation whenever its inputs change",
	Long: `Print the navigation for the route, then print it again each time the
workspace snapshot file or the persisted selection state changes.

Stop with Ctrl-C.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		path := pathArg(args)
		w := &watch.Watcher{
			Paths: a.watchPaths,
			OnChange: func(ctx context.Context) {
				view := a.svc.View(ctx, path)
				if jsonOutput {
					_ = outputJSON(cmd, view)
					return
				}
				printNav(view)
			},
			Logger: logger,
		}
		return w.Run(ctx)
	},
}
