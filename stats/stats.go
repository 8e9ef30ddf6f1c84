// Package stats summarises per-graph scores (such as the number of tree patterns of positive and negative graphs)
// by their geometric mean and geometric standard variation.
package stats

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

// GeometricMean is the geometric mean of xs.
func GeometricMean(xs []float64) float64 {
	return stat.GeometricMean(xs, nil)
}

// GeometricSV is the geometric standard variation of xs around their geometric mean gm.
func GeometricSV(gm float64, xs []float64) float64 {
	n := float64(len(xs))
	v := 0.0
	for _, x := range xs {
		u := math.Log(x / gm)
		v += u * u / n
	}
	return math.Exp(math.Sqrt(v))
}

// Summary is the geometric mean of a sample and its geometric standard variation.
type Summary struct {
	Mean float64
	SV   float64
}

// Summarise computes the summary of xs.
func Summarise(xs []float64) Summary {
	gm := GeometricMean(xs)
	return Summary{Mean: gm, SV: GeometricSV(gm, xs)}
}

// Upper is the upper end of the error bar.
func (s Summary) Upper() float64 {
	return s.Mean * math.Sqrt(s.SV)
}

// Lower is the lower end of the error bar.
func (s Summary) Lower() float64 {
	return s.Mean / math.Sqrt(s.SV)
}

// Scores holds the values of positive and negative graphs.
type Scores struct {
	Positive []float64
	Negative []float64
}

// All returns positive and negative values together.
func (s Scores) All() []float64 {
	all := make([]float64, 0, len(s.Positive)+len(s.Negative))
	all = append(all, s.Positive...)
	return append(all, s.Negative...)
}

// ReadScores reads lines starting with `+` (positive) or `-` (negative) and takes the fourth column as the value.
// All other lines are ignored.
func ReadScores(r io.Reader) (Scores, error) {
	var s Scores
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || (fields[0] != "+" && fields[0] != "-") {
			continue
		}
		if len(fields) < 4 {
			return s, errors.Errorf("line %d: expected at least four columns", n)
		}
		v, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return s, errors.Wrapf(err, "line %d", n)
		}
		if fields[0] == "+" {
			s.Positive = append(s.Positive, v)
		} else {
			s.Negative = append(s.Negative, v)
		}
	}
	return s, sc.Err()
}
