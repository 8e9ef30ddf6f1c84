// Package eval contains the evaluators a grid search can run for each job: LIBSVM cross-validation, external
// commands, and a cache that sits in front of either.
package eval

import (
	"github.com/hscells/svmgrid/grid"
)

// Evaluator is a grid evaluator with a name that identifies everything, other than the job, its rate depends on.
type Evaluator interface {
	grid.Evaluator
	Name() string
}
