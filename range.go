// Package svmgrid contains the shared configuration for the sparse feature and SVM grid search tools.
package svmgrid

import (
	"fmt"
	"math"
)

// Range is an arithmetic progression of hyper-parameter values, like `range` but working on non-integers too.
// In TOML files all three values are written as floats (e.g. `step = 2.0`).
type Range struct {
	Begin float64 `toml:"begin"`
	End   float64 `toml:"end"`
	Step  float64 `toml:"step"`
}

// Validate reports a range that would never terminate.
func (r Range) Validate() error {
	if r.Step == 0 || math.IsNaN(r.Step) || math.IsInf(r.Step, 0) {
		return fmt.Errorf("invalid step %v in range [%v, %v]", r.Step, r.Begin, r.End)
	}
	return nil
}

// Values enumerates the range. Enumeration stops as soon as the next value would cross End in the direction
// opposite to Step, so End is included when it is reached exactly.
func (r Range) Values() []float64 {
	if r.Validate() != nil {
		return nil
	}
	var seq []float64
	// Values are computed from the index rather than accumulated to avoid drift on fractional steps.
	for i := 0; ; i++ {
		v := r.Begin + float64(i)*r.Step
		if r.Step > 0 && v > r.End {
			break
		}
		if r.Step < 0 && v < r.End {
			break
		}
		seq = append(seq, v)
	}
	return seq
}

// Len is the number of values in the range.
func (r Range) Len() int {
	return len(r.Values())
}

func (r Range) String() string {
	return fmt.Sprintf("%v:%v:%v", r.Begin, r.End, r.Step)
}
