// Command baseline builds a bag-of-labels baseline from a graph database: every token on the line after a graph
// header becomes a feature, weighted by how often it occurs.
package main

import (
	"fmt"
	"io"

	"github.com/alexflint/go-arg"
	"github.com/hscells/svmgrid/cmd"
	"github.com/hscells/svmgrid/pairs"
)

var (
	name    = "baseline"
	version = "03.Jul.2014"
)

type args struct {
	Verbose bool   `help:"log debug information" arg:"-v"`
	Multi   bool   `help:"count repeated tokens of a graph instead of keeping each once" arg:"-m"`
	Dataset string `help:"graph database" arg:"required,positional"`
	Pairs   string `help:"file to write <graph> <token> pairs to" arg:"required,positional"`
	Output  string `help:"svm file to write" arg:"required,positional"`
}

func (args) Version() string {
	return version
}

func (args) Description() string {
	return fmt.Sprintf(`%s
# %s`, name, version)
}

func main() {
	var args args
	arg.MustParse(&args)
	logger := cmd.NewLogger(args.Verbose)

	err := cmd.Transform(args.Dataset, args.Pairs, func(r io.Reader, w io.Writer) error {
		return pairs.KeyValuePairs(r, w, !args.Multi)
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("could not extract pairs")
	}

	err = cmd.Transform(args.Pairs, args.Output, func(r io.Reader, w io.Writer) error {
		m, err := pairs.BuildWeightedMapping(r)
		if err != nil {
			return err
		}
		logger.Debug().Int("graphs", len(m)).Msg("built mapping")
		return m.WriteSVM(w)
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("could not write svm file")
	}
}
