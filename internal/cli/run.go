package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexshd/asymptote"
	"github.com/alexshd/asymptote/internal/config"
	"github.com/alexshd/asymptote/internal/report"
	"github.com/alexshd/asymptote/internal/workload"
)

type runOptions struct {
	configFile string
	components string
	all        bool
	save       string

	sampling    string
	stability   string
	tolerance   float64
	growth      float64
	collectGC   bool
	maxRepCount int
}

// job is one workload with its resolved components and config.
type job struct {
	workload   workload.Workload
	components []asymptote.Component
	cfg        asymptote.Config
}

func newRunCmd(opts *options) *cobra.Command {
	ro := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run [workload...]",
		Short: "Sample built-in workloads and fit their cost",
		Example: `  asymptote run sort --budget 10s
  asymptote run --all --save runs.json.zst
  asymptote run --config asymptote.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			jobs, err := ro.plan(cmd, args, opts)
			if err != nil {
				return err
			}
			return execute(cmd.Context(), cmd, jobs, ro.save, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&ro.configFile, "config", "c", "", "YAML or JSON run configuration")
	f.StringVar(&ro.components, "components", "", "Comma-separated components to fit (n, n2, logn, nlogn)")
	f.BoolVar(&ro.all, "all", false, "Run every built-in workload")
	f.StringVar(&ro.save, "save", "", "Write samples and fits to this file (.zst compresses)")
	f.StringVar(&ro.sampling, "budget", "", "Sampling budget per workload (e.g. 30s)")
	f.StringVar(&ro.stability, "stability", "", "Stability budget per input size (e.g. 10s)")
	f.Float64Var(&ro.tolerance, "tolerance", 0, "Relative deviation accepted as stable")
	f.Float64Var(&ro.growth, "growth", 0, "Input size multiplier between samples")
	f.BoolVar(&ro.collectGC, "gc", false, "Collect garbage before every timed batch")
	f.IntVar(&ro.maxRepCount, "max-reps", 0, "Cap on repetitions per batch (0 keeps the default)")

	return cmd
}

// flagSettings turns explicitly set flags into a settings overlay.
func (ro *runOptions) flagSettings(cmd *cobra.Command) config.Settings {
	var s config.Settings
	f := cmd.Flags()
	if f.Changed("budget") {
		s.SamplingBudget = ro.sampling
	}
	if f.Changed("stability") {
		s.StabilityBudget = ro.stability
	}
	if f.Changed("tolerance") {
		s.Tolerance = ro.tolerance
	}
	if f.Changed("growth") {
		s.SizeGrowth = ro.growth
	}
	if f.Changed("max-reps") {
		s.MaxRepetitions = &ro.maxRepCount
	}
	s.CollectGarbage = ro.collectGC
	return s
}

// plan resolves workloads, components and configs from args, the config
// file and flags. Flags override the file, which overrides defaults.
func (ro *runOptions) plan(cmd *cobra.Command, args []string, opts *options) ([]job, error) {
	base := asymptote.DefaultConfig()
	base.Logger = opts.logger

	file := &config.File{}
	if ro.configFile != "" {
		loaded, err := config.Load(ro.configFile)
		if err != nil {
			return nil, err
		}
		file = loaded
	}

	var flagComponents []asymptote.Component
	if ro.components != "" {
		parsed, err := asymptote.ParseComponents(ro.components)
		if err != nil {
			return nil, err
		}
		flagComponents = parsed
	}

	var entries []config.Workload
	switch {
	case ro.all && len(args) > 0:
		return nil, errors.New("--all cannot be combined with workload names")
	case ro.all:
		for _, name := range workload.Names() {
			entries = append(entries, config.Workload{Name: name})
		}
	case len(args) > 0:
		for _, name := range args {
			entries = append(entries, config.Workload{Name: name})
		}
	default:
		entries = file.Workloads
	}
	if len(entries) == 0 {
		return nil, errors.New("no workloads selected: name some, use --all, or list them in --config")
	}

	overlay := ro.flagSettings(cmd)
	jobs := make([]job, 0, len(entries))
	for _, e := range entries {
		w, err := workload.Lookup(e.Name)
		if err != nil {
			return nil, err
		}

		cfg, err := file.Config(base, e)
		if err != nil {
			return nil, err
		}
		cfg, err = overlay.Apply(cfg)
		if err != nil {
			return nil, fmt.Errorf("flags: %w", err)
		}

		comps := flagComponents
		if comps == nil {
			if comps, err = e.ComponentList(); err != nil {
				return nil, err
			}
		}
		jobs = append(jobs, job{workload: w, components: comps, cfg: cfg})
	}
	return jobs, nil
}

// execute runs jobs in order, streaming progress, and saves what finished.
func execute(ctx context.Context, cmd *cobra.Command, jobs []job, save string, opts *options) error {
	console := report.NewConsole(cmd.OutOrStdout(), opts.noColor)

	var (
		runs   []asymptote.Report
		failed int
		runErr error
	)
	for _, j := range jobs {
		opts.logger.Info("sampling", "workload", j.workload.Name,
			"components", j.components, "budget", j.cfg.SamplingBudget)

		rep, err := j.workload.Run(ctx, j.components, j.cfg, console.Progress)
		console.Finish(rep, j.workload.Expected, err)
		if len(rep.Samples) > 0 {
			runs = append(runs, rep)
		}
		if err != nil {
			failed++
			if ctxErr := ctx.Err(); ctxErr != nil {
				runErr = ctxErr
				break
			}
		}
	}

	if save != "" && len(runs) > 0 {
		if err := report.Save(save, runs); err != nil {
			return err
		}
		opts.logger.Info("saved runs", "path", save, "runs", len(runs))
	}

	if runErr != nil {
		return runErr
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d workloads failed", failed, len(jobs))
	}
	return nil
}
