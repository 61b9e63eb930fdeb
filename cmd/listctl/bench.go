package main

import (
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/joshuapare/listkit/list"
	"github.com/joshuapare/listkit/list/printer"
	"github.com/joshuapare/listkit/pkg/types"
)

var (
	benchSize  int
	benchSeed  uint64
	benchKinds []string
)

func init() {
	cmd := newBenchCmd()
	cmd.Flags().IntVarP(&benchSize, "size", "n", 10000, "Entries inserted and accessed per list")
	cmd.Flags().Uint64Var(&benchSeed, "seed", 1, "Seed for the random access pattern")
	cmd.Flags().StringSliceVar(&benchKinds, "kind", nil, "Store kinds to benchmark (default all)")
	rootCmd.AddCommand(cmd)
}

func newBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure insert and random-access throughput",
		Long: `The bench command fills one list of each selected store kind and then
reads the same number of entries back in random order, reporting the rate of
both phases and the memory each list holds.

Example:
  listctl bench
  listctl bench --size 50000 --kind indexed,associative
  listctl bench --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	return cmd
}

// benchResult is the outcome for one store kind.
type benchResult struct {
	Kind       string        `json:"kind" msgpack:"kind"`
	Entries    int           `json:"entries" msgpack:"entries"`
	Insert     time.Duration `json:"insert_ns" msgpack:"insert_ns"`
	Access     time.Duration `json:"access_ns" msgpack:"access_ns"`
	InsertRate float64       `json:"insert_per_sec" msgpack:"insert_per_sec"`
	AccessRate float64       `json:"access_per_sec" msgpack:"access_per_sec"`
	Memory     types.Usage   `json:"memory" msgpack:"memory"`
}

func parseKind(s string) (types.StoreKind, error) {
	for _, k := range types.StoreKinds {
		if strings.EqualFold(s, k.String()) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown store kind %q: %w", s, types.ErrInvalidArgument)
}

func runBench(out, errOut io.Writer) error {
	if benchSize <= 0 {
		return fmt.Errorf("--size must be positive, got %d: %w", benchSize, types.ErrInvalidArgument)
	}

	kinds := make([]types.StoreKind, 0, len(types.StoreKinds))
	if len(benchKinds) == 0 {
		kinds = append(kinds, types.StoreKinds[:]...)
	}
	for _, s := range benchKinds {
		k, err := parseKind(s)
		if err != nil {
			return err
		}
		kinds = append(kinds, k)
	}

	eng := newEngine(errOut)
	defer eng.FreeAll()

	rng := rand.New(rand.NewPCG(benchSeed, benchSeed^0x9e3779b97f4a7c15))
	order := make([]int, benchSize)
	for i := range order {
		order[i] = rng.IntN(benchSize)
	}
	printVerbose(out, "%s random indices created\n", humanize.Comma(int64(benchSize)))

	results := make([]benchResult, 0, len(kinds))
	for _, k := range kinds {
		printVerbose(out, "benchmarking %s list...\n", k)
		r, err := benchKind(eng, k, order)
		if err != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
		results = append(results, r)
	}

	if outFormat != printer.FormatText {
		return printer.Encode(out, outFormat, results)
	}
	printBenchTable(out, results)
	return nil
}

func benchKind(eng *list.Engine, kind types.StoreKind, order []int) (benchResult, error) {
	cfg := list.NewConfig(kind)
	cfg.Tag = "bench-" + kind.String()
	cfg.Engine = eng
	l, err := list.New[int](cfg)
	if err != nil {
		return benchResult{}, err
	}
	defer l.Free()

	n := len(order)
	var keys [][]byte
	if kind == types.Associative {
		keys = make([][]byte, n)
		for i := range keys {
			keys[i] = fmt.Appendf(nil, "key %d", i)
		}
	}

	start := time.Now()
	for i := range n {
		if keys != nil {
			err = l.InsertWithKey(keys[i], i)
		} else {
			_, err = l.Insert(i)
		}
		if err != nil {
			return benchResult{}, err
		}
	}
	insert := time.Since(start)

	start = time.Now()
	for _, i := range order {
		if keys != nil {
			_, err = l.GetByKey(keys[i])
		} else {
			_, err = l.Get(i)
		}
		if err != nil {
			return benchResult{}, err
		}
	}
	access := time.Since(start)

	return benchResult{
		Kind:       kind.String(),
		Entries:    n,
		Insert:     insert,
		Access:     access,
		InsertRate: rate(n, insert),
		AccessRate: rate(n, access),
		Memory:     l.Footprint().Usage,
	}, nil
}

func rate(n int, d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(n) / d.Seconds()
}

func printBenchTable(w io.Writer, results []benchResult) {
	fmt.Fprintf(w, " %-13s | %14s | %14s | %s\n", "list type", "insert", "access", "memory")
	for _, r := range results {
		fmt.Fprintf(w, " %-13s | %14s | %14s | %s\n",
			r.Kind,
			humanize.SIWithDigits(r.InsertRate, 2, "op/s"),
			humanize.SIWithDigits(r.AccessRate, 2, "op/s"),
			humanize.IBytes(r.Memory.Total))
	}
	if rss, ok := peakRSS(); ok {
		fmt.Fprintf(w, " peak rss: %s\n", humanize.IBytes(rss))
	}
}
