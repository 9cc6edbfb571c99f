package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/reposel/internal/selection"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [path]",
	Short: "Show the active repository for a route",
	Long: `Resolve which repository the navigation shows for the given route path.

A path of the form /locations/<repository>@<location>/... names the repository
directly. Otherwise the last selected repository, then the first known
selected repository, then the first repository in the workspace is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		view := a.svc.View(cmd.Context(), pathArg(args))

		if jsonOutput {
			return outputJSON(cmd, view.Active)
		}

		printActive(view)
		return nil
	},
}

// pathArg returns the route path argument, defaulting to the dashboard root.
func pathArg(args []string) string {
	if len(args) == 0 {
		return "/"
	}
	return args[0]
}

func printActive(view *selection.View) {
	if !view.Active.Found() {
		PrintEmptyState("No repositories known to the workspace")
		return
	}

	repo := view.Active.Repository
	PrintLabelValueWithColor("Repository", repo.Key().String(), successColor)
	PrintLabelValue("Reason", string(view.Active.Reason))
	PrintLabelValue("Jobs", PrintCount(len(repo.Jobs), "job", "jobs"))
	if view.Address != nil && view.Active.Reason != selection.ReasonURL {
		PrintWarning(fmt.Sprintf("Route names unknown repository %s", view.Address.Key()))
	}
}
