package cli

import (
	"github.com/spf13/cobra"

	"github.com/alexshd/asymptote/internal/report"
	"github.com/alexshd/asymptote/internal/workload"
)

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List built-in workloads and their expected complexity",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			var rows [][3]string
			for _, w := range workload.All() {
				rows = append(rows, [3]string{w.Name, w.Expected.String(), w.Description})
			}
			report.NewConsole(cmd.OutOrStdout(), opts.noColor).Workloads(rows)
		},
	}
}
