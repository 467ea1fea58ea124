package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/alexshd/asymptote"
	"github.com/alexshd/asymptote/internal/report"
)

// series is a named set of samples pulled from a file.
type series struct {
	name string
	path string
}

func newAnalyzeCmd(opts *options) *cobra.Command {
	var (
		path       string
		components string
	)

	cmd := &cobra.Command{
		Use:   "analyze FILE",
		Short: "Re-fit saved or external samples offline",
		Long: `analyze ranks every component against samples read from FILE.

Without --path every run saved by "asymptote run --save" is analyzed. With
--path, samples are taken from any JSON document using a gjson path that
selects an array of {"size", "cost_ns"} objects or [size, cost_ns] pairs.`,
		Example: `  asymptote analyze runs.json.zst
  asymptote analyze bench.json --path 'results.#(name=="sort").points' --components nlogn`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var selected []asymptote.Component
			if components != "" {
				parsed, err := asymptote.ParseComponents(components)
				if err != nil {
					return err
				}
				selected = parsed
			}

			data, err := report.ReadFile(args[0])
			if err != nil {
				return err
			}

			targets := []series{{name: path, path: path}}
			if !cmd.Flags().Changed("path") {
				targets = savedRuns(data)
				if len(targets) == 0 {
					return fmt.Errorf("%s has no saved runs; use --path to select samples", args[0])
				}
			}

			console := report.NewConsole(cmd.OutOrStdout(), opts.noColor)
			out := cmd.OutOrStdout()
			for i, s := range targets {
				if i > 0 {
					fmt.Fprintln(out)
				}
				samples, err := report.Samples(data, s.path)
				if err != nil {
					return err
				}
				opts.logger.Debug("analyzing", "series", s.name, "samples", len(samples))

				fmt.Fprintf(out, "%s (%d samples)\n", s.name, len(samples))
				fits, err := asymptote.Rank(samples)
				if err != nil {
					return fmt.Errorf("%s: %w", s.name, err)
				}
				console.Ranking(fits)

				if selected != nil {
					res, err := asymptote.Analyze(selected, samples)
					if err != nil {
						return fmt.Errorf("%s: %w", s.name, err)
					}
					fmt.Fprintf(out, "fit: %s\n", report.Fit(res))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", report.DefaultSamplesPath, "gjson path selecting the samples array")
	cmd.Flags().StringVar(&components, "components", "", "Also fit these components together (e.g. n2,n)")

	return cmd
}

// savedRuns lists the runs of a saved document by name.
func savedRuns(data []byte) []series {
	var out []series
	gjson.GetBytes(data, "runs.#.name").ForEach(func(_, name gjson.Result) bool {
		out = append(out, series{name: name.String(), path: fmt.Sprintf("runs.%d.samples", len(out))})
		return true
	})
	return out
}
