package cli

import (
	"github.com/spf13/cobra"

	"github.com/danieljhkim/reposel/internal/selection"
)

var navCmd = &cobra.Command{
	Use:   "nav [path]",
	Short: "Print the navigation links for a route",
	Long:  `Resolve the active repository for the route and print one link per job.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		view := a.svc.View(cmd.Context(), pathArg(args))

		if jsonOutput {
			return outputJSON(cmd, view)
		}

		printNav(view)
		return nil
	},
}

func printNav(view *selection.View) {
	if !view.Active.Found() {
		PrintEmptyState("No repositories known to the workspace")
		return
	}

	PrintSection(view.Active.Key().String())
	if len(view.Links) == 0 {
		PrintEmptyState("No jobs")
		return
	}

	rows := make([][]string, 0, len(view.Links))
	for _, link := range view.Links {
		rows = append(rows, []string{link.Label, link.Path})
	}
	PrintTable([]string{"JOB", "PATH"}, rows)
}
