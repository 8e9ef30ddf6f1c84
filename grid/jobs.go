// Package grid runs an exhaustive search over a two dimensional grid of SVM hyper-parameters with a fixed pool
// of workers.
package grid

import (
	"fmt"

	"github.com/hscells/svmgrid"
)

// Key identifies a job by its hyper-parameter values.
type Key struct {
	C float64
	W float64
}

func (k Key) String() string {
	return fmt.Sprintf("c=%v w=%v", k.C, k.W)
}

// Job is a single point of the grid. Row and Col are the positions of the (unscaled) values in their ranges.
type Job struct {
	Row int
	Col int
	C   float64
	W   float64
}

// Key returns the hyper-parameters of the job.
func (j Job) Key() Key {
	return Key{C: j.C, W: j.W}
}

// Jobs computes the Cartesian product of c and w. C varies slowest.
func Jobs(c, w svmgrid.Range, scale svmgrid.Scale) []Job {
	cs, ws := c.Values(), w.Values()
	jobs := make([]Job, 0, len(cs)*len(ws))
	for i, cv := range cs {
		for j, wv := range ws {
			jobs = append(jobs, Job{
				Row: i,
				Col: j,
				C:   scale.Apply(cv),
				W:   scale.Apply(wv),
			})
		}
	}
	return jobs
}
