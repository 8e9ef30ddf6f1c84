// Command gridanalysis prints the k best hyper-parameter settings of a grid search from its .array file.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/hscells/svmgrid"
	"github.com/hscells/svmgrid/cmd"
	"github.com/hscells/svmgrid/grid"
	"github.com/hscells/svmgrid/output"
	"github.com/pkg/errors"
)

var (
	name    = "gridanalysis"
	version = "24.Jun.2014"
)

type args struct {
	Verbose bool   `help:"log debug information" arg:"-v"`
	Config  string `help:"TOML file with the grid configuration the array was computed with" arg:"-c"`
	Meta    string `help:"JSON result file of the run, used instead of a configuration" arg:"-m"`
	Format  string `help:"output format (tab, csv, json)" arg:"-f"`
	Array   string `help:"array file written by grid" arg:"required,positional"`
	K       int    `help:"number of settings to show" arg:"required,positional"`
	Type    string `help:"kernel of the grid (lin or rbf)" arg:"required,positional"`
}

func (args) Version() string {
	return version
}

func (args) Description() string {
	return fmt.Sprintf(`%s
# %s`, name, version)
}

var formatters = map[string]output.Formatter{
	"":     output.TabFormatter,
	"tab":  output.TabFormatter,
	"csv":  output.CsvFormatter,
	"json": output.JsonFormatter,
}

// ranges finds the grid the array was computed with and the name of its second parameter.
func ranges(args args) (c, w svmgrid.Range, scale svmgrid.Scale, param string, err error) {
	var config svmgrid.Config
	switch args.Type {
	case "lin":
		config, param = svmgrid.DefaultConfig(), "w"
	case "rbf":
		config, param = svmgrid.RBFConfig(), "gamma"
	default:
		err = errors.Errorf("unknown type %q, expected lin or rbf", args.Type)
		return
	}

	if args.Meta != "" {
		var a grid.Artifact
		a, err = grid.LoadArtifact(args.Meta)
		return a.Meta.C, a.Meta.W, a.Meta.Scale, param, err
	}
	if args.Config != "" {
		config, err = svmgrid.LoadConfig(args.Config, config)
	}
	return config.C, config.W, config.Scale, param, err
}

func main() {
	var args args
	arg.MustParse(&args)
	logger := cmd.NewLogger(args.Verbose)
	logger.Debug().Str("in", args.Array).Int("k", args.K).Str("type", args.Type).Msg("analysing")

	formatter, ok := formatters[args.Format]
	if !ok {
		logger.Fatal().Str("format", args.Format).Msg("unknown format")
	}

	c, w, scale, param, err := ranges(args)
	if err != nil {
		logger.Fatal().Err(err).Msg("could not determine grid")
	}

	array, err := grid.LoadArray(args.Array)
	if err != nil {
		logger.Fatal().Err(err).Msg("could not load array")
	}

	settings, err := grid.Settings(grid.TopK(array, args.K), c, w, scale)
	if err != nil {
		logger.Fatal().Err(err).Msg("array does not match the grid")
	}

	headers, rows := output.Settings(settings, param, "AUC")
	s, err := formatter(headers, rows)
	if err != nil {
		logger.Fatal().Err(err).Msg("could not format settings")
	}
	fmt.Fprintln(os.Stdout, strings.TrimRight(s, "\n"))
}
