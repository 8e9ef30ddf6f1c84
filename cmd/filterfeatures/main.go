// Command filterfeatures keeps the lines of a pair file whose feature is listed in a set file.
package main

import (
	"fmt"
	"io"

	"github.com/alexflint/go-arg"
	"github.com/hscells/svmgrid/cmd"
	"github.com/hscells/svmgrid/pairs"
)

var (
	name    = "filterfeatures"
	version = "03.Jul.2014"
)

type args struct {
	Verbose bool   `help:"log debug information" arg:"-v"`
	Pairs   string `help:"file of <entity> <feature> pairs" arg:"required,positional"`
	Set     string `help:"file with one feature id per line" arg:"required,positional"`
	Output  string `help:"file to write the kept pairs to" arg:"required,positional"`
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

	var set pairs.Set
	err := cmd.Read(args.Set, func(r io.Reader) (err error) {
		set, err = pairs.LoadSet(r)
		return
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("could not load set")
	}
	logger.Debug().Int("features", len(set)).Msg("loaded set")

	err = cmd.Transform(args.Pairs, args.Output, func(r io.Reader, w io.Writer) error {
		return pairs.FilterBySet(r, set, w)
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("could not filter pairs")
	}
}
