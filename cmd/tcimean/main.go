// Command tcimean summarises score files as TikZ bars: for every file, the geometric mean and geometric standard
// variation of the positive, negative and all scores are drawn at x = 0, 1, 2, ...
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/hscells/svmgrid/cmd"
	"github.com/hscells/svmgrid/stats"
)

var (
	name    = "tcimean"
	version = "18.Sep.2014"
)

type args struct {
	Verbose bool     `help:"log debug information" arg:"-v"`
	Files   []string `help:"score files" arg:"required,positional"`
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

	for i, path := range args.Files {
		var scores stats.Scores
		err := cmd.Read(path, func(r io.Reader) (err error) {
			scores, err = stats.ReadScores(r)
			return
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("could not read scores")
		}
		logger.Debug().
			Str("file", path).
			Int("positive", len(scores.Positive)).
			Int("negative", len(scores.Negative)).
			Msg("read scores")

		err = stats.WriteTikZ(os.Stdout, float64(i),
			stats.Summarise(scores.Positive),
			stats.Summarise(scores.Negative),
			stats.Summarise(scores.All()))
		if err != nil {
			logger.Fatal().Err(err).Msg("could not write bars")
		}
	}
}
