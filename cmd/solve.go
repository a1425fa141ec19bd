package cmd

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/katalvlaran/christofides/graph"
	"github.com/katalvlaran/christofides/history"
	"github.com/katalvlaran/christofides/tsp"
)

type solverFlags struct {
	start    int
	matching string
	twoOpt   bool
	maxIters int
}

func (s *solverFlags) bind(fs *pflag.FlagSet) {
	fs.IntVarP(&s.start, "start", "s", 0, "start vertex")
	fs.StringVarP(&s.matching, "matching", "m", "greedy", "odd-vertex matching (greedy, exact)")
	fs.BoolVar(&s.twoOpt, "two-opt", false, "improve the tour with 2-opt")
	fs.IntVar(&s.maxIters, "two-opt-max-iters", 0, "bound on accepted 2-opt moves (0 = unbounded)")
}

// options merges explicitly set flags over the configured solver section.
func (s *solverFlags) options(fs *pflag.FlagSet, o *rootOptions) ([]tsp.Option, error) {
	sc := o.cfg.Solver
	if fs.Changed("start") {
		sc.Start = s.start
	}
	if fs.Changed("matching") {
		sc.Matching = s.matching
	}
	if fs.Changed("two-opt") {
		sc.TwoOpt = s.twoOpt
	}
	if fs.Changed("two-opt-max-iters") {
		sc.TwoOptMaxIters = s.maxIters
	}

	cfg := *o.cfg
	cfg.Solver = sc
	opts, err := cfg.SolveOptions()
	if err != nil {
		return nil, err
	}

	return append(opts, tsp.WithLogger(o.log)), nil
}

func newSolveCommand(o *rootOptions) *cobra.Command {
	var sf solverFlags
	cmd := &cobra.Command{
		Use:   "solve [matrix-file]",
		Short: "Solve a cost matrix given as text (N, then N rows of N costs); reads stdin without a file or with -",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := "-"
			if len(args) == 1 {
				source = args[0]
			}
			g, err := readGraph(cmd.InOrStdin(), source)
			if err != nil {
				return err
			}

			opts, err := sf.options(cmd.Flags(), o)
			if err != nil {
				return err
			}
			o.log.WithFields(logrus.Fields{"source": source, "vertices": g.N()}).Info("solving")

			res, err := withTimeout(cmd.Context(), o.cfg.Timeout, func() (*tsp.Result, error) {
				return tsp.Solve(g, opts...)
			})
			if err != nil {
				return err
			}

			if err = o.record(&history.Run{
				Kind:     history.KindSolve,
				Source:   source,
				Matching: matchingName(opts),
				Vertices: g.Vertices(),
				Result:   res,
			}); err != nil {
				return err
			}

			if o.output == formatText {
				writeResultText(cmd.OutOrStdout(), g.Vertices(), res)
				return nil
			}
			return encode(cmd.OutOrStdout(), o.output, res)
		},
	}
	sf.bind(cmd.Flags())

	return cmd
}

func readGraph(stdin io.Reader, source string) (*graph.Graph, error) {
	if source == "-" {
		return graph.Parse(stdin)
	}
	f, err := os.Open(source)
	if err != nil {
		return nil, errors.Wrap(err, "open matrix")
	}
	defer f.Close()

	return graph.Parse(f)
}

func matchingName(opts []tsp.Option) string {
	o := tsp.DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o.Matching.String()
}

// record saves run when history is enabled.
func (o *rootOptions) record(run *history.Run) error {
	store, err := o.openHistory(false)
	if err != nil || store == nil {
		return err
	}
	defer store.Close()

	if err = store.Save(run); err != nil {
		return err
	}
	o.log.WithField("id", run.ID).Info("run recorded")

	return nil
}
