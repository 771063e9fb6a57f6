package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/connectome/baseline"
	"github.com/katalvlaran/connectome/cohort"
	"github.com/katalvlaran/connectome/loader"
	"github.com/katalvlaran/connectome/matrix"
)

func (a *app) edgesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edges <matrix>...",
		Short: "Mean undirected edge count across subjects",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.RunE = a.wrap(func(cmd *cobra.Command, args []string) error {
		subjects, err := a.loadAll(args)
		if err != nil {
			return err
		}
		mean, err := cohort.MeanEdgeCount(subjects)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if a.jsonOut {
			return printJSON(w, map[string]any{"run_id": a.runID, "subjects": len(subjects), "mean_edges": mean})
		}
		_, err = fmt.Fprintf(w, "%g\n", mean)
		return err
	})

	return cmd
}

func (a *app) baselineCmd() *cobra.Command {
	var (
		vertices, edges, iterations, workers int
		seed                                 uint64
	)
	cmd := &cobra.Command{
		Use:   "baseline",
		Short: "Random-graph clustering and path length baselines",
		Long: `Average the mean clustering coefficient and characteristic path length of
random undirected graphs with the given number of vertices and edges.

Examples:
  connectome baseline --vertices 90 --edges 400
  connectome edges s01.csv s02.csv   # to pick --edges`,
		Args: cobra.NoArgs,
	}
	cmd.RunE = a.wrap(func(cmd *cobra.Command, _ []string) error {
		iters := a.cfg.Baseline.Iterations
		if cmd.Flags().Changed("iterations") {
			iters = iterations
		}
		opts := []baseline.Option{
			baseline.WithSeed(a.cfg.Detection.Seed),
			baseline.WithWorkers(a.cfg.Detection.Workers),
			baseline.WithLogger(a.logger.Named("baseline")),
		}
		if cmd.Flags().Changed("seed") {
			opts = append(opts, baseline.WithSeed(seed))
		}
		if workers > 0 {
			opts = append(opts, baseline.WithWorkers(workers))
		}
		m, err := baseline.RandomGraphMetrics(iters, vertices, edges, opts...)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if a.jsonOut {
			return printJSON(w, map[string]any{
				"run_id":           a.runID,
				"iterations":       iters,
				"mean_clustering":  m.MeanClustering,
				"mean_path_length": m.MeanPathLength,
			})
		}
		heading(w, "Random baseline")
		field(w, "iterations", iters)
		field(w, "mean clustering", fmt.Sprintf("%.6f", m.MeanClustering))
		field(w, "mean path length", fmt.Sprintf("%.6f", m.MeanPathLength))
		return nil
	})

	fl := cmd.Flags()
	fl.IntVar(&vertices, "vertices", 0, "number of nodes")
	fl.IntVar(&edges, "edges", 0, "number of undirected edges")
	fl.IntVarP(&iterations, "iterations", "n", 0, "random graphs to average (default from config)")
	fl.IntVarP(&workers, "workers", "w", 0, "concurrent iterations (0 = config)")
	fl.Uint64Var(&seed, "seed", 0, "base random seed")
	_ = cmd.MarkFlagRequired("vertices")
	_ = cmd.MarkFlagRequired("edges")

	return cmd
}

func (a *app) transformCmd() *cobra.Command {
	var meanPath, stdPath, out string
	var controls []string
	cmd := &cobra.Command{
		Use:   "transform <subject>",
		Short: "tanh z-transform of a subject against controls",
		Long: `Compute tanh((mean - x) / std) for every connection of a subject, where mean
and std describe a control population. Give either --mean and --std files or
a list of --control matrices.

Examples:
  connectome transform patient.csv --mean ctrl_mean.csv --std ctrl_std.csv
  connectome transform patient.csv --control c1.csv --control c2.csv -o z.csv`,
		Args: cobra.ExactArgs(1),
	}
	cmd.RunE = a.wrap(func(cmd *cobra.Command, args []string) error {
		subject, err := a.load(args[0])
		if err != nil {
			return err
		}
		var mean, std matrix.Matrix
		switch {
		case len(controls) > 0:
			ctrl, err := a.loadAll(controls)
			if err != nil {
				return err
			}
			if mean, std, err = controlDistribution(ctrl); err != nil {
				return err
			}
		case meanPath != "" && stdPath != "":
			if mean, err = a.load(meanPath); err != nil {
				return err
			}
			if std, err = a.load(stdPath); err != nil {
				return err
			}
		default:
			return fmt.Errorf("transform: need --mean and --std, or --control: %w", matrix.ErrInvalidParameter)
		}

		z, err := cohort.TanhTransform(subject, mean, std)
		if err != nil {
			return err
		}
		if out == "" {
			return loader.WriteCSV(cmd.OutOrStdout(), z)
		}
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create %s: %w", out, err)
		}
		if err = loader.WriteCSV(f, z); err != nil {
			_ = f.Close()
			return err
		}
		return f.Close()
	})

	fl := cmd.Flags()
	fl.StringVar(&meanPath, "mean", "", "control mean matrix")
	fl.StringVar(&stdPath, "std", "", "control standard deviation matrix")
	fl.StringSliceVar(&controls, "control", nil, "control subject matrices (repeatable)")
	fl.StringVarP(&out, "out", "o", "", "write the result to this CSV file")
	cmd.MarkFlagsMutuallyExclusive("control", "mean")
	cmd.MarkFlagsMutuallyExclusive("control", "std")

	return cmd
}

func controlDistribution(ctrl []matrix.Matrix) (matrix.Matrix, matrix.Matrix, error) {
	mean, std, err := cohort.ControlDistribution(ctrl)
	if err != nil {
		return nil, nil, err
	}
	return mean, std, nil
}

func (a *app) loadAll(paths []string) ([]matrix.Matrix, error) {
	out := make([]matrix.Matrix, len(paths))
	for i, p := range paths {
		m, err := a.load(p)
		if err != nil {
			return nil, err
		}
		out[i] = m
	}
	return out, nil
}
