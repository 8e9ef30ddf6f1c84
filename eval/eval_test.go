package eval_test

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/hscells/svmgrid/eval"
	"github.com/hscells/svmgrid/grid"
	"github.com/hscells/svmgrid/libsvm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAUC(t *testing.T) {
	assert.Equal(t, 1.0, eval.AUC([]float64{0.1, 0.2, 0.8, 0.9}, []float64{-1, -1, 1, 1}))
	assert.Equal(t, 0.0, eval.AUC([]float64{0.9, 0.8, 0.2, 0.1}, []float64{-1, -1, 1, 1}))
	assert.Equal(t, 0.75, eval.AUC([]float64{0.1, 0.4, 0.35, 0.8}, []float64{-1, -1, 1, 1}))
	assert.Equal(t, 0.5, eval.AUC([]float64{1, 1, 1, 1}, []float64{-1, 1, -1, 1}))
	// Hard predictions reduce to balanced accuracy.
	assert.Equal(t, 0.75, eval.AUC([]float64{1, -1, 1, 1}, []float64{1, -1, -1, 1}))

	assert.True(t, math.IsNaN(eval.AUC([]float64{1, 2}, []float64{1, 1})))
	assert.True(t, math.IsNaN(eval.AUC([]float64{1, 2}, []float64{1})))
}

func TestParseKernel(t *testing.T) {
	for s, k := range map[string]eval.Kernel{"linear": eval.Linear, "0": eval.Linear, "lin": eval.Linear, "RBF": eval.RBF, "2": eval.RBF} {
		got, err := eval.ParseKernel(s)
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := eval.ParseKernel("sigmoid")
	assert.Error(t, err)

	assert.Equal(t, 0, eval.Linear.Type())
	assert.Equal(t, 2, eval.RBF.Type())
}

func TestSVMParameter(t *testing.T) {
	job := grid.Job{C: 4, W: 0.25}

	lin := eval.NewSVM("x.svm", 3, eval.Linear).Parameter(job)
	assert.Equal(t, 4.0, lin.C)
	assert.Equal(t, []int{1}, lin.WeightLabel)
	assert.Equal(t, []float64{0.25}, lin.Weight)

	rbf := eval.NewSVM("x.svm", 3, eval.RBF).Parameter(job)
	assert.Equal(t, 4.0, rbf.C)
	assert.Equal(t, 0.25, rbf.Gamma)

	assert.True(t, lin.QuietMode)
	assert.True(t, rbf.QuietMode)
}

func TestStratifiedFolds(t *testing.T) {
	ds := libsvm.Dataset{{Label: 1}, {Label: -1}, {Label: 1}, {Label: 1}, {Label: -1}, {Label: -1}, {Label: 1}}
	assert.Equal(t, [][]int{{0, 1, 3, 5}, {2, 4, 6}}, eval.StratifiedFolds(ds, 2))
}

// Every positive row is `1:1 2:1` and every negative row `1:-1 3:1`. A tiny C and positive weight push the
// predictions of held-out rows towards the negative class, but the decision values still rank every positive row
// above every negative one.
func TestSVMEvaluateRanksDecisionValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "identical.svm")
	f, err := os.Create(path)
	require.NoError(t, err)
	for i := 0; i < 30; i++ {
		if i%2 == 0 {
			fmt.Fprintln(f, "1 1:1 2:1")
		} else {
			fmt.Fprintln(f, "-1 1:-1 3:1")
		}
	}
	require.NoError(t, f.Close())

	rate, err := eval.NewSVM(path, 3, eval.Linear).Evaluate(grid.Job{C: 1.0 / 32, W: 1.0 / 32})
	require.NoError(t, err)
	assert.Equal(t, 1.0, rate)
}

func TestSVMEvaluate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "separable.svm")
	f, err := os.Create(path)
	require.NoError(t, err)
	for i := 0; i < 12; i++ {
		if i%2 == 0 {
			fmt.Fprintf(f, "1 1:%v 2:1\n", 1+float64(i)/10)
		} else {
			fmt.Fprintf(f, "-1 1:%v 3:1\n", -1-float64(i)/10)
		}
	}
	require.NoError(t, f.Close())

	rate, err := eval.NewSVM(path, 3, eval.Linear).Evaluate(grid.Job{C: 1, W: 1})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, rate, 0.5)
	assert.LessOrEqual(t, rate, 1.0)
}

func TestSVMMissingProblem(t *testing.T) {
	_, err := eval.NewSVM(filepath.Join(t.TempDir(), "missing"), 3, eval.RBF).Evaluate(grid.Job{C: 1, W: 1})
	assert.Error(t, err)
}

func TestCommand(t *testing.T) {
	c, err := eval.NewCommand(`echo training c={{.C}} w={{.W}} v={{.Folds}} {{.PassThrough}} {{.Dataset}}; echo AUC 0.875`, "data.svm", 3, "-q")
	require.NoError(t, err)

	line, err := c.CommandLine(grid.Job{C: 0.5, W: 8})
	require.NoError(t, err)
	assert.Equal(t, "echo training c=0.5 w=8 v=3 -q data.svm; echo AUC 0.875", line)

	rate, err := c.Evaluate(grid.Job{C: 0.5, W: 8})
	require.NoError(t, err)
	assert.Equal(t, 0.875, rate)
}

func TestCommandFailures(t *testing.T) {
	c, err := eval.NewCommand(`echo no rate here`, "data.svm", 3, "")
	require.NoError(t, err)
	_, err = c.Evaluate(grid.Job{})
	assert.True(t, errors.Is(err, grid.ErrNoRate))

	c, err = eval.NewCommand(`exit 3`, "data.svm", 3, "")
	require.NoError(t, err)
	_, err = c.Evaluate(grid.Job{})
	assert.Error(t, err)

	_, err = eval.NewCommand(`{{.C`, "data.svm", 3, "")
	assert.Error(t, err)
}

func TestLastRate(t *testing.T) {
	v, err := eval.LastRate([]byte("Cross Validation AUC = 0.91\n"))
	require.NoError(t, err)
	assert.Equal(t, 0.91, v)

	v, err = eval.LastRate([]byte("1 2 (0.5)\nend\n"))
	require.NoError(t, err)
	assert.Equal(t, 0.5, v)

	for _, out := range []string{"AUC = inf\n", "0.5 -Infinity\n", "AUC NaN\n", "no rate\n"} {
		_, err = eval.LastRate([]byte(out))
		assert.ErrorIs(t, err, grid.ErrNoRate, out)
	}
}

type counting struct {
	calls int32
}

func (c *counting) Name() string { return "counting" }

func (c *counting) Evaluate(job grid.Job) (float64, error) {
	atomic.AddInt32(&c.calls, 1)
	if job.C < 0 {
		return 0, errors.New("negative c")
	}
	return job.C + job.W, nil
}

func TestCache(t *testing.T) {
	dir := t.TempDir()
	inner := &counting{}
	c, err := eval.NewCache(inner, 2, dir)
	require.NoError(t, err)
	assert.Equal(t, "counting", c.Name())

	for i := 0; i < 3; i++ {
		rate, err := c.Evaluate(grid.Job{C: 1, W: 2})
		require.NoError(t, err)
		assert.Equal(t, 3.0, rate)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&inner.calls))

	_, err = c.Evaluate(grid.Job{C: -1})
	assert.Error(t, err)
	_, err = c.Evaluate(grid.Job{C: -1})
	assert.Error(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&inner.calls))

	// A new cache over the same directory reads the rate back from disk.
	fresh := &counting{}
	c, err = eval.NewCache(fresh, 2, dir)
	require.NoError(t, err)
	rate, err := c.Evaluate(grid.Job{C: 1, W: 2})
	require.NoError(t, err)
	assert.Equal(t, 3.0, rate)
	assert.Equal(t, int32(0), atomic.LoadInt32(&fresh.calls))
}

func TestCacheInPool(t *testing.T) {
	inner := &counting{}
	c, err := eval.NewCache(inner, 128, "")
	require.NoError(t, err)

	jobs := []grid.Job{{C: 1, W: 1}, {C: 2, W: 1}, {C: 1, W: 1}}
	results, err := grid.NewPool(c, grid.Workers(1)).Run(jobs)
	require.NoError(t, err)
	assert.Equal(t, 3, results.Len())
	assert.Equal(t, int32(2), atomic.LoadInt32(&inner.calls))
}
