package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/connectome/aggregate"
	"github.com/katalvlaran/connectome/loader"
	"github.com/katalvlaran/connectome/matrix"
	"github.com/katalvlaran/connectome/modules"
)

type aggregateReport struct {
	RunID   string      `json:"run_id"`
	Mode    string      `json:"mode"`
	Module1 []int       `json:"module1"`
	Module2 []int       `json:"module2"`
	Scalar  *float64    `json:"scalar,omitempty"`
	Values  []float64   `json:"values,omitempty"`
	Block   [][]float64 `json:"block,omitempty"`
	// Total is the strength of the whole matrix, for normalizing Scalar.
	Total float64 `json:"total"`
}

func (a *app) aggregateCmd() *cobra.Command {
	var (
		module1, module2 []int
		mode             string
		oneBased         bool
	)
	cmd := &cobra.Command{
		Use:   "aggregate <matrix>",
		Short: "Aggregate connectivity between two node sets",
		Long: `Compute a statistic over the block connectivity[module1, module2].

Modes:
  sum          total connection strength
  values       every entry of the block, row-major
  mean-length  total strength divided by |module1| + |module2|

Examples:
  connectome aggregate subject01.csv --module1 0,1 --module2 2,3
  connectome aggregate subject01.csv --module1 1,2 --module2 3 --one-based --mode values`,
		Args: cobra.ExactArgs(1),
	}
	cmd.RunE = a.wrap(func(cmd *cobra.Command, args []string) error {
		m, err := aggregate.ParseMode(mode)
		if err != nil {
			return err
		}
		m1, m2 := module1, module2
		if oneBased {
			if m1, err = aggregate.FromOneBased(m1); err != nil {
				return err
			}
			if m2, err = aggregate.FromOneBased(m2); err != nil {
				return err
			}
		}
		conn, err := a.load(args[0])
		if err != nil {
			return err
		}
		stat, err := aggregate.Aggregate(conn, m1, m2, m)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if a.jsonOut {
			rep := aggregateReport{RunID: a.runID, Mode: m.String(), Module1: m1, Module2: m2}
			if rep.Total, err = matrix.Total(conn); err != nil {
				return err
			}
			if m == aggregate.Values {
				rep.Values = stat.Values
				if len(m1) > 0 && len(m2) > 0 {
					block, err := aggregate.Block(conn, m1, m2)
					if err != nil {
						return err
					}
					if rep.Block, err = rows(block); err != nil {
						return err
					}
				}
			} else {
				rep.Scalar = &stat.Scalar
			}
			return printJSON(w, rep)
		}
		if m == aggregate.Values {
			_, err = fmt.Fprintln(w, joinFloats(stat.Values))
			return err
		}
		_, err = fmt.Fprintf(w, "%g\n", stat.Scalar)
		return err
	})

	fl := cmd.Flags()
	fl.IntSliceVar(&module1, "module1", nil, "row node indices, comma separated")
	fl.IntSliceVar(&module2, "module2", nil, "column node indices, comma separated")
	fl.StringVarP(&mode, "mode", "m", aggregate.Sum.String(), "sum, values or mean-length")
	fl.BoolVar(&oneBased, "one-based", false, "node indices start at 1")

	return cmd
}

func (a *app) betweenCmd() *cobra.Command {
	var mode string
	cmd := &cobra.Command{
		Use:   "between <matrix> <partition.csv>",
		Short: "Aggregate connectivity between every pair of modules",
		Long: `Build the module×module matrix of a statistic for a partition written by
"connectome modules --out". The result is printed as CSV.

Examples:
  connectome between subject01.csv partition.csv
  connectome between subject01.csv partition.csv --mode mean-length`,
		Args: cobra.ExactArgs(2),
	}
	cmd.RunE = a.wrap(func(cmd *cobra.Command, args []string) error {
		m, err := aggregate.ParseMode(mode)
		if err != nil {
			return err
		}
		conn, err := a.load(args[0])
		if err != nil {
			return err
		}
		labels, err := readPartitionFile(args[1])
		if err != nil {
			return err
		}
		if len(labels) != conn.Rows() {
			return fmt.Errorf("partition has %d nodes, matrix has %d: %w",
				len(labels), conn.Rows(), aggregate.ErrShapeMismatch)
		}
		out, err := aggregate.BetweenModules(conn, modules.Partition(labels).Modules(), m)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if a.jsonOut {
			data, err := rows(out)
			if err != nil {
				return err
			}
			return printJSON(w, map[string]any{"run_id": a.runID, "mode": m.String(), "matrix": data})
		}
		return loader.WriteCSV(w, out)
	})
	cmd.Flags().StringVarP(&mode, "mode", "m", aggregate.Sum.String(), "sum or mean-length")

	return cmd
}

// rows copies m into a slice of rows for JSON output.
func rows(m *matrix.Dense) ([][]float64, error) {
	out := make([][]float64, m.Rows())
	for i := range out {
		var err error
		if out[i], err = m.Row(i); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func readPartitionFile(path string) ([]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	labels, err := loader.ReadPartition(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return labels, nil
}
