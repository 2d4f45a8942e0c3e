package main

import (
	"flag"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"k8s.io/klog/v2"
)

const envPrefix = "SEQSEARCH"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "seqsearch",
		Short: "Binary search over a sorted list of integers",
		Long: `seqsearch runs one of the sequence search algorithms over a list of
integers sorted in ascending order. Values are taken from the arguments or
from --file. Every flag can also be set with a SEQSEARCH_<FLAG> environment
variable.

Negative values look like flags; put them after a "--" separator:

  seqsearch equal --key=-5 -- -9 -5 -5 0`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	fs := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(fs)
	root.PersistentFlags().AddGoFlagSet(fs)

	root.PersistentFlags().StringP("key", "k", "", "value to search for")
	root.PersistentFlags().StringP("file", "f", "", "read whitespace separated values from this file")
	root.PersistentFlags().Bool("check", false, "verify that the values are sorted before searching")

	for _, s := range searches {
		root.AddCommand(newSearchCmd(s))
	}
	root.AddCommand(newBoundsCmd())
	return root
}

type config struct {
	key    int64
	values []int64
}

// loadConfig resolves flags, falling back to the environment, and reads
// the values to search.
func loadConfig(cmd *cobra.Command, args []string) (*config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	if err := bindFlags(v, cmd.Flags(), "key", "file", "check"); err != nil {
		return nil, err
	}

	if !v.IsSet("key") {
		return nil, errors.Newf("key is required (--key or %s_KEY)", envPrefix)
	}
	key, err := strconv.ParseInt(v.GetString("key"), 10, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid key %q", v.GetString("key"))
	}

	fields := args
	if file := v.GetString("file"); file != "" {
		if len(args) > 0 {
			return nil, errors.New("values given both as arguments and in --file")
		}
		b, err := os.ReadFile(file)
		if err != nil {
			return nil, errors.Wrap(err, "read values")
		}
		fields = strings.Fields(string(b))
	}
	values, err := parseValues(fields)
	if err != nil {
		return nil, err
	}
	if v.GetBool("check") && !slices.IsSorted(values) {
		return nil, errors.New("values are not sorted")
	}

	klog.V(2).InfoS("Loaded config", "key", key, "values", len(values))
	return &config{key: key, values: values}, nil
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet, names ...string) error {
	for _, name := range names {
		if err := v.BindPFlag(name, flags.Lookup(name)); err != nil {
			return errors.Wrapf(err, "bind flag %s", name)
		}
	}
	return nil
}

func parseValues(fields []string) ([]int64, error) {
	values := make([]int64, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid value %q", f)
		}
		values = append(values, n)
	}
	return values, nil
}
