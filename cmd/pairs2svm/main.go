// Command pairs2svm groups a pair file by entity and writes one libSVM line per entity, keyed by its id.
package main

import (
	"fmt"
	"io"

	"github.com/alexflint/go-arg"
	"github.com/hscells/svmgrid/cmd"
	"github.com/hscells/svmgrid/pairs"
)

var (
	name    = "pairs2svm"
	version = "03.Jul.2014"
)

type args struct {
	Verbose bool   `help:"log debug information" arg:"-v"`
	Pairs   string `help:"file of <entity> <feature> pairs" arg:"required,positional"`
	Output  string `help:"libSVM file to write" arg:"required,positional"`
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

	err := cmd.Transform(args.Pairs, args.Output, func(r io.Reader, w io.Writer) error {
		m, err := pairs.BuildMapping(r)
		if err != nil {
			return err
		}
		logger.Debug().Int("entities", len(m)).Msg("built mapping")
		return m.WriteSVM(w)
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("could not write svm file")
	}
}
