package svmgrid_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hscells/svmgrid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
kernel = "rbf"
scale = "linear"
poll = "1m"

[w]
begin = 0.5
end = 0.1
step = -0.2

[cache]
dir = "/tmp/cache"
`), 0644))

	c, err := svmgrid.LoadConfig(path, svmgrid.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "rbf", c.Kernel)
	assert.Equal(t, svmgrid.Linear, c.Scale)
	assert.Equal(t, time.Minute, c.Poll.Duration)
	assert.Equal(t, svmgrid.Range{Begin: 0.5, End: 0.1, Step: -0.2}, c.W)
	assert.Equal(t, "/tmp/cache", c.Cache.Dir)
	// Untouched keys keep their defaults.
	assert.Equal(t, svmgrid.DefaultConfig().C, c.C)
	assert.Equal(t, 1024, c.Cache.Size)
	assert.Equal(t, 7, c.Workers)
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := svmgrid.LoadConfig(filepath.Join(dir, "missing.toml"), svmgrid.DefaultConfig())
	assert.Error(t, err)

	path := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[c]\nstep = 0.0\n"), 0644))
	_, err = svmgrid.LoadConfig(path, svmgrid.DefaultConfig())
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, svmgrid.DefaultConfig().Validate())
	assert.NoError(t, svmgrid.RBFConfig().Validate())

	c := svmgrid.DefaultConfig()
	c.Scale = "log"
	assert.Error(t, c.Validate())

	c = svmgrid.DefaultConfig()
	c.Workers = 0
	assert.Error(t, c.Validate())

	c = svmgrid.DefaultConfig()
	c.Folds = 1
	assert.Error(t, c.Validate())
}

func TestScale(t *testing.T) {
	assert.Equal(t, 8.0, svmgrid.Exp2.Apply(3))
	assert.Equal(t, 0.25, svmgrid.Exp2.Apply(-2))
	assert.Equal(t, 3.0, svmgrid.Linear.Apply(3))
}
