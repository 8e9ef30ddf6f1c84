// Command selecttop keeps the given percentile of the features of a libSVM file with the highest chi-squared
// score against the labels.
package main

import (
	"fmt"
	"io"

	"github.com/alexflint/go-arg"
	"github.com/hscells/svmgrid/cmd"
	"github.com/hscells/svmgrid/libsvm"
	"github.com/hscells/svmgrid/selection"
)

var (
	name    = "selecttop"
	version = "12.Jun.2014"
)

type args struct {
	Verbose    bool    `help:"log debug information" arg:"-v"`
	Input      string  `help:"libSVM file" arg:"required,positional"`
	Output     string  `help:"libSVM file with the selected features" arg:"required,positional"`
	Percentile float64 `help:"percentage of features to keep" arg:"required,positional"`
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

	if args.Percentile < 0 || args.Percentile > 100 {
		logger.Fatal().Float64("percentile", args.Percentile).Msg("percentile must be within [0, 100]")
	}

	err := cmd.Transform(args.Input, args.Output, func(r io.Reader, w io.Writer) error {
		ds, err := libsvm.Read(r)
		if err != nil {
			return err
		}
		scores, _, err := selection.Chi2(ds)
		if err != nil {
			return err
		}
		keep := selection.SelectPercentile(scores, args.Percentile)
		logger.Debug().Int("features", len(scores)).Int("kept", len(keep)).Msg("selected features")
		return libsvm.Write(w, selection.Transform(ds, keep))
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("could not select features")
	}
}
