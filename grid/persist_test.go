package grid_test

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/hscells/svmgrid"
	"github.com/hscells/svmgrid/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoad(t *testing.T) {
	config := svmgrid.DefaultConfig()
	config.C = svmgrid.Range{Begin: 0, End: 1, Step: 1}
	config.W = svmgrid.Range{Begin: 0, End: 2, Step: 1}
	jobs := grid.Jobs(config.C, config.W, config.Scale)

	results := grid.NewResults()
	for _, job := range jobs[:len(jobs)-1] {
		results.Add(grid.Result{Worker: "local-0", Job: job, Rate: float64(job.Row*10 + job.Col)})
	}

	meta := grid.NewMeta("data.svm", config)
	assert.NotEmpty(t, meta.RunID)

	prefix := filepath.Join(t.TempDir(), "data.svm-t 0_aucResults")
	require.NoError(t, grid.Save(prefix, results, meta))

	rates, err := grid.LoadRates(prefix + ".dict")
	require.NoError(t, err)
	assert.Equal(t, results.Rates(), rates)
	assert.Equal(t, 11.0, rates[grid.Key{C: 2, W: 2}])
	assert.NotContains(t, rates, grid.Key{C: 2, W: 4})

	array, err := grid.LoadArray(prefix + ".array")
	require.NoError(t, err)
	require.Len(t, array, 2)
	assert.Equal(t, []float64{0, 1, 2}, array[0])
	assert.Equal(t, []float64{10, 11}, array[1][:2])
	assert.True(t, math.IsNaN(array[1][2]))

	artifact, err := grid.LoadArtifact(prefix + ".json")
	require.NoError(t, err)
	assert.Equal(t, meta.RunID, artifact.Meta.RunID)
	assert.Equal(t, results.Records(), artifact.Records)
}
