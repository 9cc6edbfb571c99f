package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var selectCmd = &cobra.Command{
	Use:   "select <repository:location>",
	Short: "Select a repository for the navigation",
	Long: `Record an explicit selection of a repository.

The repository becomes the last selected repository and is added to the
selected list if it is not there yet. It must be known to the workspace.`,
	Args: cobra.ExactArgs(1),
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

		st, err := a.svc.Select(cmd.Context(), key)
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(cmd, st)
		}

		PrintSuccess(fmt.Sprintf("Selected repository: %s", key))
		return nil
	},
}
