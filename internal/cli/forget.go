package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var forgetCmd = &cobra.Command{
	Use:   "forget <repository:location>",
	Short: "Remove a repository from the persisted selection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := parseKeyArg(args[0])
		if err != nil {
			return err
		}

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		if err := a.svc.Forget(cmd.Context(), key); err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(cmd, a.svc.State(cmd.Context()))
		}

		PrintSuccess(fmt.Sprintf("Forgot repository: %s", key))
		return nil
	},
}
