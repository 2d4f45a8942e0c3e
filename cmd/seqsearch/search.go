package main

import (
	"fmt"
	"io"

	"github.com/henderiw/sequence/pkg/sequence"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

type search struct {
	name  string
	short string
	fn    func(sequence.Adjacent[int64], int64) sequence.Adjacent[int64]
}

var searches = []search{
	{name: "match", short: "Find any element equal to the key", fn: sequence.Match[int64]},
	{name: "lower", short: "Find the first element equal to the key", fn: sequence.Lower[int64]},
	{name: "upper", short: "Find the last element equal to the key", fn: sequence.Upper[int64]},
	{name: "equal", short: "Find the run of elements equal to the key", fn: sequence.Equal[int64]},
}

func newSearchCmd(s search) *cobra.Command {
	return &cobra.Command{
		Use:   s.name + " [values...]",
		Short: s.short,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, args)
			if err != nil {
				return err
			}
			seq := sequence.Of(cfg.values)
			r := s.fn(seq, cfg.key)
			klog.V(2).InfoS("Searched", "algorithm", s.name, "category", seq.Category(), "result", r.String())
			printResult(cmd.OutOrStdout(), r)
			return nil
		},
	}
}

func newBoundsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bounds [values...]",
		Short: "Print the insertion points of the key",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, args)
			if err != nil {
				return err
			}
			seq := sequence.Of(cfg.values)
			fmt.Fprintf(cmd.OutOrStdout(), "lower=%d upper=%d\n",
				sequence.LowerBound(seq, cfg.key).Beg(),
				sequence.UpperBound(seq, cfg.key).Beg())
			return nil
		},
	}
}

func printResult(w io.Writer, r sequence.Adjacent[int64]) {
	if r.IsEmpty() {
		fmt.Fprintf(w, "not found %s\n", r)
		return
	}
	fmt.Fprint(w, r.String())
	for _, v := range r.All() {
		fmt.Fprintf(w, " %d", v)
	}
	fmt.Fprintln(w)
}
