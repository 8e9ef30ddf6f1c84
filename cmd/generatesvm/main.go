// Command generatesvm turns the mined feature counts of a graph database into a labelled libSVM file.
//
// Given a prefix, it reads prefix.features (the frequent feature ids) and prefix.counts (graph/feature pairs),
// writes the frequent pairs to prefix.countsFrequent, and writes prefix.svmFile<mode> labelled by the activity
// classes of the database, remapped by the mode.
package main

import (
	"fmt"
	"io"

	"github.com/alexflint/go-arg"
	"github.com/hscells/svmgrid/cmd"
	"github.com/hscells/svmgrid/labels"
	"github.com/hscells/svmgrid/pairs"
)

var (
	name    = "generatesvm"
	version = "03.Jul.2014"
)

type args struct {
	Verbose  bool   `help:"log debug information" arg:"-v"`
	Prefix   string `help:"prefix of the .features and .counts files" arg:"required,positional"`
	Database string `help:"graph database containing the activity labels" arg:"required,positional"`
	Mode     string `help:"label mode (AvsI, AvsMI, AMvsI)" arg:"required,positional"`
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

	mode, err := labels.ParseMode(args.Mode)
	if err != nil {
		logger.Fatal().Err(err).Msgf("valid modes are %v", labels.Modes())
	}

	var ll labels.Labels
	err = cmd.Read(args.Database, func(r io.Reader) (err error) {
		ll, err = labels.Load(r)
		return
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("could not load labels")
	}
	if err := ll.Remap(mode); err != nil {
		logger.Fatal().Err(err).Msg("could not remap labels")
	}
	logger.Debug().Int("graphs", len(ll)).Str("mode", string(mode)).Msg("loaded labels")

	var features map[int]int
	err = cmd.Read(args.Prefix+".features", func(r io.Reader) (err error) {
		features, err = pairs.LoadMap(r)
		return
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("could not load features")
	}

	frequent := args.Prefix + ".countsFrequent"
	err = cmd.Transform(args.Prefix+".counts", frequent, func(r io.Reader, w io.Writer) error {
		return pairs.FilterByMap(r, features, w)
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("could not filter counts")
	}

	out := args.Prefix + ".svmFile" + string(mode)
	err = cmd.Transform(frequent, out, func(r io.Reader, w io.Writer) error {
		m, err := pairs.BuildMapping(r)
		if err != nil {
			return err
		}
		return m.WriteLabeledSVM(w, ll)
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("could not write svm file")
	}
	logger.Info().Str("out", out).Msg("done")
}
