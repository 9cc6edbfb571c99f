package cli

import (
	"github.com/spf13/cobra"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Show the persisted selection state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		st := a.svc.State(cmd.Context())

		if jsonOutput {
			return outputJSON(cmd, st)
		}

		if st.IsEmpty() {
			PrintEmptyState("No repository selected yet")
			return nil
		}

		PrintSection("Selection")
		last := st.LastSelected.String()
		if last == "" {
			last = "(none)"
		}
		PrintLabelValue("Last selected", last)
		PrintLabelValue("Storage", a.cfg.Storage)

		if len(st.Selected) > 0 {
			PrintSubsection("Selected repositories:")
			items := make([]string, len(st.Selected))
			for i, k := range st.Selected {
				items[i] = k.String()
			}
			PrintNumberedList(items, 2)
		}
		return nil
	},
}
