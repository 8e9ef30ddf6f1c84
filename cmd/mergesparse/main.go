// Command mergesparse merges two libSVM files column-wise. The features of the second file are renumbered to
// follow those of the first, and the labels of the first file are kept.
package main

import (
	"fmt"
	"io"

	"github.com/alexflint/go-arg"
	"github.com/hscells/svmgrid/cmd"
	"github.com/hscells/svmgrid/libsvm"
	"golang.org/x/sync/errgroup"
)

var (
	name    = "mergesparse"
	version = "12.Jun.2014"
)

type args struct {
	Verbose bool   `help:"log debug information" arg:"-v"`
	First   string `help:"libSVM file whose labels are kept" arg:"required,positional"`
	Second  string `help:"libSVM file appended to the first" arg:"required,positional"`
	Output  string `help:"merged libSVM file" arg:"required,positional"`
}

func (args) Version() string {
	return version
}

func (args) Description() string {
	return fmt.Sprintf(`%s
# %s`, name, version)
}

func load(path string, ds *libsvm.Dataset) func() error {
	return func() error {
		return cmd.Read(path, func(r io.Reader) (err error) {
			*ds, err = libsvm.Read(r)
			return
		})
	}
}

func main() {
	var args args
	arg.MustParse(&args)
	logger := cmd.NewLogger(args.Verbose)

	var a, b libsvm.Dataset
	var g errgroup.Group
	g.Go(load(args.First, &a))
	g.Go(load(args.Second, &b))
	if err := g.Wait(); err != nil {
		logger.Fatal().Err(err).Msg("could not load datasets")
	}
	logger.Debug().
		Int("rows", len(a)).
		Int("first", a.MaxFeature()).
		Int("second", b.MaxFeature()).
		Msg("loaded datasets")

	merged, err := libsvm.HStack(a, b)
	if err != nil {
		logger.Fatal().Err(err).Msg("could not merge datasets")
	}

	err = cmd.Write(args.Output, func(w io.Writer) error {
		return libsvm.Write(w, merged)
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("could not write merged dataset")
	}
}
