package cli

import (
	"strconv"

	"github.com/spf13/cobra"
)

var reposCmd = &cobra.Command{
	Use:   "repos",
	Short: "List repositories known to the workspace",
	Long: `List every repository the workspace query returns, in server order.

The active repository for the dashboard root is marked with '*'.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		ctx := cmd.Context()
		known := a.svc.Known(ctx)

		if jsonOutput {
			return outputJSON(cmd, known)
		}

		if len(known) == 0 {
			PrintEmptyState("No repositories known to the workspace")
			return nil
		}

		active := a.svc.View(ctx, "/").Active.Key()
		rows := make([][]string, 0, len(known))
		for _, repo := range known {
			marker := ""
			if repo.Key() == active {
				marker = "*"
			}
			rows = append(rows, []string{marker, repo.Name, repo.Location, strconv.Itoa(len(repo.Jobs))})
		}
		PrintTable([]string{"", "REPOSITORY", "LOCATION", "JOBS"}, rows)
		return nil
	},
}
