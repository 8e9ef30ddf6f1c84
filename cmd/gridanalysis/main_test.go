package main

import (
	"testing"

	"github.com/hscells/svmgrid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRanges(t *testing.T) {
	c, w, scale, param, err := ranges(args{Type: "lin"})
	require.NoError(t, err)
	assert.Equal(t, svmgrid.DefaultConfig().C, c)
	assert.Equal(t, svmgrid.DefaultConfig().W, w)
	assert.Equal(t, svmgrid.Exp2, scale)
	assert.Equal(t, "w", param)

	_, w, _, param, err = ranges(args{Type: "rbf"})
	require.NoError(t, err)
	assert.Equal(t, svmgrid.RBFConfig().W, w)
	assert.Equal(t, "gamma", param)

	_, _, _, _, err = ranges(args{Type: "poly"})
	assert.Error(t, err)
}
