package eval

import (
	"bytes"
	"math"
	"os/exec"
	"strconv"
	"strings"
	"text/template"

	"github.com/hscells/svmgrid/grid"
	"github.com/pkg/errors"
)

// DefaultCommand evaluates a job with the plotroc script.
const DefaultCommand = `python plotroc.py -v {{.Folds}} -c {{.C}} -w1 {{.W}} -t 0 {{.PassThrough}} {{.Dataset}}`

// CommandArgs are the values available to a command template.
type CommandArgs struct {
	C           float64
	W           float64
	Folds       int
	PassThrough string
	Dataset     string
}

// Command evaluates a job by running a shell command and reading the last number it prints.
type Command struct {
	tmpl        *template.Template
	source      string
	Folds       int
	PassThrough string
	Dataset     string
}

// NewCommand parses the command template.
func NewCommand(tmpl, dataset string, folds int, passThrough string) (*Command, error) {
	t, err := template.New("command").Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return nil, errors.Wrap(err, "parsing command")
	}
	return &Command{
		tmpl:        t,
		source:      tmpl,
		Folds:       folds,
		PassThrough: passThrough,
		Dataset:     dataset,
	}, nil
}

// Name identifies the command line, excluding the job.
func (c *Command) Name() string {
	return "command:" + c.source + ":" + strconv.Itoa(c.Folds) + ":" + c.PassThrough + ":" + c.Dataset
}

// CommandLine renders the command for a job.
func (c *Command) CommandLine(job grid.Job) (string, error) {
	var b bytes.Buffer
	err := c.tmpl.Execute(&b, CommandArgs{
		C:           job.C,
		W:           job.W,
		Folds:       c.Folds,
		PassThrough: c.PassThrough,
		Dataset:     c.Dataset,
	})
	return strings.TrimSpace(b.String()), err
}

// Evaluate runs the command through the shell.
func (c *Command) Evaluate(job grid.Job) (float64, error) {
	line, err := c.CommandLine(job)
	if err != nil {
		return 0, err
	}
	out, err := exec.Command("sh", "-c", line).Output()
	if err != nil {
		return 0, errors.Wrapf(err, "running %q", line)
	}
	return LastRate(out)
}

// LastRate returns the last token of out that parses as a number. A last number that is not finite is no rate.
func LastRate(out []byte) (float64, error) {
	fields := strings.Fields(string(out))
	for i := len(fields) - 1; i >= 0; i-- {
		if v, err := strconv.ParseFloat(strings.Trim(fields[i], "%,;()[]"), 64); err == nil {
			if math.IsInf(v, 0) || math.IsNaN(v) {
				return 0, grid.ErrNoRate
			}
			return v, nil
		}
	}
	return 0, grid.ErrNoRate
}
