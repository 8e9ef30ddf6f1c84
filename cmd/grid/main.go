// Command grid searches the hyper-parameters of an SVM on a libSVM dataset with a pool of local workers.
//
// Every (C, w) pair of the configured grid is cross-validated, either in-process with LIBSVM or by running a
// command template, and the AUC of each pair is saved to <dataset>-t <kernel>_aucResults.{dict,array,json}. The
// results are saved periodically while the search runs, so a long search can be inspected before it finishes.
package main

import (
	"fmt"
	"time"

	"github.com/alexflint/go-arg"
	"github.com/hscells/svmgrid"
	"github.com/hscells/svmgrid/cmd"
	"github.com/hscells/svmgrid/eval"
	"github.com/hscells/svmgrid/grid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gopkg.in/cheggaaa/pb.v1"
)

var (
	name    = "grid"
	version = "24.Jun.2014"
)

type args struct {
	Verbose     bool   `help:"log every evaluation" arg:"-v"`
	Config      string `help:"TOML file with the grid configuration" arg:"-c"`
	Kernel      string `help:"kernel to search for (linear or rbf)" arg:"-k"`
	Workers     int    `help:"number of workers" arg:"-n"`
	Folds       int    `help:"number of cross-validation folds" arg:"-f"`
	Command     string `help:"command template that evaluates one job and prints its rate"`
	Plotroc     bool   `help:"evaluate jobs with the plotroc script instead of in-process"`
	PassThrough string `help:"extra arguments for the command template"`
	Cache       string `help:"directory to cache evaluations in"`
	Output      string `help:"prefix of the result files" arg:"-o"`
	NoProgress  bool   `help:"do not show a progress bar"`
	Dataset     string `help:"libSVM dataset" arg:"required,positional"`
}

func (args) Version() string {
	return version
}

func (args) Description() string {
	return fmt.Sprintf(`%s
# %s`, name, version)
}

// load reads the config file, if any, over base.
func load(path string, base svmgrid.Config) (svmgrid.Config, error) {
	if path == "" {
		return base, nil
	}
	return svmgrid.LoadConfig(path, base)
}

// configure layers the config file and the flags over the defaults of the kernel. The kernel is taken from the
// flag, or else from the file.
func configure(args args) (svmgrid.Config, error) {
	config, err := load(args.Config, svmgrid.DefaultConfig())
	if err != nil {
		return config, err
	}
	if args.Kernel != "" {
		config.Kernel = args.Kernel
	}
	kernel, err := eval.ParseKernel(config.Kernel)
	if err != nil {
		return config, err
	}
	if kernel == eval.RBF {
		k := config.Kernel
		config, err = load(args.Config, svmgrid.RBFConfig())
		if err != nil {
			return config, err
		}
		config.Kernel = k
	}

	if args.Workers > 0 {
		config.Workers = args.Workers
	}
	if args.Folds > 0 {
		config.Folds = args.Folds
	}
	if args.Plotroc {
		config.Command = eval.DefaultCommand
	}
	if args.Command != "" {
		config.Command = args.Command
	}
	if args.PassThrough != "" {
		config.PassThrough = args.PassThrough
	}
	if args.Cache != "" {
		config.Cache.Dir = args.Cache
	}
	return config, config.Validate()
}

func evaluator(dataset string, kernel eval.Kernel, config svmgrid.Config) (eval.Evaluator, error) {
	var e eval.Evaluator
	if config.Command != "" {
		c, err := eval.NewCommand(config.Command, dataset, config.Folds, config.PassThrough)
		if err != nil {
			return nil, err
		}
		e = c
	} else {
		e = eval.NewSVM(dataset, config.Folds, kernel)
	}
	return eval.NewCache(e, config.Cache.Size, config.Cache.Dir)
}

func main() {
	var args args
	arg.MustParse(&args)
	logger := cmd.NewLogger(args.Verbose)

	config, err := configure(args)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}
	kernel, err := eval.ParseKernel(config.Kernel)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	e, err := evaluator(args.Dataset, kernel, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("could not create evaluator")
	}

	prefix := args.Output
	if prefix == "" {
		prefix = fmt.Sprintf("%s-t %d_aucResults", args.Dataset, kernel.Type())
	}

	jobs := grid.Jobs(config.C, config.W, config.Scale)
	meta := grid.NewMeta(args.Dataset, config)
	logger = logger.With().Str("run", meta.RunID).Logger()
	logger.Info().
		Str("evaluator", e.Name()).
		Int("jobs", len(jobs)).
		Int("workers", config.Workers).
		Str("out", prefix).
		Msg("starting grid search")

	workers := logger
	if !args.Verbose {
		workers = logger.Level(zerolog.WarnLevel)
	}
	options := []func(*grid.Pool){
		grid.Workers(config.Workers),
		grid.Logger(workers),
	}
	if !args.NoProgress {
		bar := pb.New(len(jobs))
		bar.Start()
		defer bar.Finish()
		options = append(options, grid.Progress(func(grid.Result) {
			bar.Increment()
		}))
	}

	save := func(results *grid.Results) {
		meta.Finished = time.Now()
		if err := grid.Save(prefix, results, meta); err != nil {
			logger.Error().Err(err).Msg("could not save results")
		}
	}

	results, err := grid.NewPool(e, options...).RunWithCheckpoint(jobs, config.Poll.Duration, save)
	if errors.Is(err, grid.ErrStarved) {
		logger.Fatal().Err(err).Int("done", results.Len()).Msg("grid search did not finish, partial results saved")
	} else if err != nil {
		logger.Fatal().Err(err).Msg("grid search failed")
	}
	logger.Info().Int("done", results.Len()).Dur("took", meta.Finished.Sub(meta.Started)).Msg("grid search finished")
}
