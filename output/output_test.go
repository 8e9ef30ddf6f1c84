package output_test

import (
	"encoding/json"
	"testing"

	"github.com/hscells/svmgrid/grid"
	"github.com/hscells/svmgrid/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var settings = []grid.Setting{
	{Cell: grid.Cell{Value: 0.8}, C: 0.5, W: 2},
	{Cell: grid.Cell{Value: 0.91}, C: 8, W: 0.125},
}

func TestTabFormatter(t *testing.T) {
	h, rows := output.Settings(settings, "w", "AUC")
	s, err := output.TabFormatter(h, rows)
	require.NoError(t, err)
	assert.Equal(t, "Header: C\tw\tAUC\n0.5\t2\t0.8\n8\t0.125\t0.91\n", s)
}

func TestCsvFormatter(t *testing.T) {
	h, rows := output.Settings(settings, "gamma", "AUC")
	s, err := output.CsvFormatter(h, rows)
	require.NoError(t, err)
	assert.Equal(t, "C,gamma,AUC\n0.5,2,0.8\n8,0.125,0.91\n", s)
}

func TestJsonFormatter(t *testing.T) {
	h, rows := output.Settings(settings, "w", "AUC")
	s, err := output.JsonFormatter(h, rows)
	require.NoError(t, err)

	var got []map[string]float64
	require.NoError(t, json.Unmarshal([]byte(s), &got))
	assert.Equal(t, []map[string]float64{
		{"C": 0.5, "w": 2, "AUC": 0.8},
		{"C": 8, "w": 0.125, "AUC": 0.91},
	}, got)
}
