// Package selection scores sparse features with the chi-squared statistic and keeps the highest scoring
// percentile of them.
package selection

import (
	"math"
	"sort"

	"github.com/hscells/svmgrid/libsvm"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Chi2 computes the chi-squared statistic and its p-value between every feature and the labels. Feature i of the
// dataset is scored at position i-1. Feature values must be non-negative (e.g. counts or indicators).
func Chi2(ds libsvm.Dataset) (scores, pvalues []float64, err error) {
	n := ds.MaxFeature()

	classes := make(map[float64]int)
	var order []float64
	for _, r := range ds {
		if _, ok := classes[r.Label]; !ok {
			classes[r.Label] = len(order)
			order = append(order, r.Label)
		}
	}

	observed := make([][]float64, len(order))
	for i := range observed {
		observed[i] = make([]float64, n)
	}
	prior := make([]float64, len(order))
	for _, r := range ds {
		c := classes[r.Label]
		prior[c]++
		for _, f := range r.Features {
			if f.Value < 0 {
				return nil, nil, errors.Errorf("feature %d has negative value %v", f.ID, f.Value)
			}
			if f.ID < 1 {
				return nil, nil, errors.Errorf("feature index %d is not positive", f.ID)
			}
			observed[c][f.ID-1] += f.Value
		}
	}
	if len(ds) > 0 {
		floats.Scale(1/float64(len(ds)), prior)
	}

	total := make([]float64, n)
	for _, o := range observed {
		floats.Add(total, o)
	}

	scores = make([]float64, n)
	for c, o := range observed {
		for f := range o {
			expected := prior[c] * total[f]
			if expected == 0 {
				continue
			}
			d := o[f] - expected
			scores[f] += d * d / expected
		}
	}

	pvalues = make([]float64, n)
	for f, s := range scores {
		if len(order) < 2 {
			pvalues[f] = math.NaN()
			continue
		}
		pvalues[f] = distuv.ChiSquared{K: float64(len(order) - 1)}.Survival(s)
	}
	return scores, pvalues, nil
}

// percentile is the q-th percentile of x with linear interpolation between closest ranks.
func percentile(x []float64, q float64) float64 {
	s := make([]float64, len(x))
	copy(s, x)
	sort.Float64s(s)
	pos := (float64(len(s)) - 1) * q / 100
	lo := math.Floor(pos)
	hi := math.Ceil(pos)
	if lo == hi {
		return s[int(lo)]
	}
	return s[int(lo)]*(hi-pos) + s[int(hi)]*(pos-lo)
}

// SelectPercentile returns, in ascending order, the positions of the highest scoring p percent of scores. When
// scores tie at the threshold, the earliest ones are kept until the percentage is reached. NaN scores rank lowest.
func SelectPercentile(scores []float64, p float64) []int {
	if len(scores) == 0 || p <= 0 {
		return []int{}
	}
	keep := make([]int, 0, len(scores))
	if p >= 100 {
		for i := range scores {
			keep = append(keep, i)
		}
		return keep
	}

	clean := make([]float64, len(scores))
	for i, s := range scores {
		if math.IsNaN(s) {
			s = -math.MaxFloat64
		}
		clean[i] = s
	}

	threshold := percentile(clean, 100-p)
	mask := make([]bool, len(clean))
	selected := 0
	for i, s := range clean {
		if s > threshold {
			mask[i] = true
			selected++
		}
	}
	max := int(float64(len(clean)) * p / 100)
	for i, s := range clean {
		if selected >= max {
			break
		}
		if s == threshold && !mask[i] {
			mask[i] = true
			selected++
		}
	}

	for i, m := range mask {
		if m {
			keep = append(keep, i)
		}
	}
	return keep
}

// Transform keeps the features at the given positions (as returned by SelectPercentile) and renumbers them from 1
// in their original order.
func Transform(ds libsvm.Dataset, keep []int) libsvm.Dataset {
	index := make(map[int]int, len(keep))
	for i, k := range keep {
		index[k+1] = i + 1
	}
	out := make(libsvm.Dataset, len(ds))
	for i, r := range ds {
		ff := make(libsvm.Features, 0, len(r.Features))
		for _, f := range r.Features {
			if id, ok := index[f.ID]; ok {
				ff = append(ff, libsvm.Feature{ID: id, Value: f.Value})
			}
		}
		out[i] = libsvm.Row{Label: r.Label, Features: ff}
	}
	return out
}
