package cli

import (
	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear all persisted selection state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		if err := a.svc.Clear(cmd.Context()); err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(cmd, a.svc.State(cmd.Context()))
		}

		PrintSuccess("Selection state cleared")
		return nil
	},
}
