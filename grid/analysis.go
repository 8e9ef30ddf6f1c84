package grid

import (
	"math"
	"sort"

	"github.com/hscells/svmgrid"
	"github.com/pkg/errors"
)

// Cell is a position in a result array and its value.
type Cell struct {
	Row   int
	Col   int
	Value float64
}

// TopK returns the k highest cells of the array, lowest first. NaN cells are ignored.
func TopK(array [][]float64, k int) []Cell {
	var cells []Cell
	for i, row := range array {
		for j, v := range row {
			if !math.IsNaN(v) {
				cells = append(cells, Cell{Row: i, Col: j, Value: v})
			}
		}
	}
	sort.SliceStable(cells, func(i, j int) bool {
		return cells[i].Value < cells[j].Value
	})
	if k < 0 {
		k = 0
	}
	if k < len(cells) {
		cells = cells[len(cells)-k:]
	}
	return cells
}

// Setting is a cell together with the hyper-parameters it was computed for.
type Setting struct {
	Cell
	C float64
	W float64
}

// Settings translates cells back into hyper-parameters.
func Settings(cells []Cell, c, w svmgrid.Range, scale svmgrid.Scale) ([]Setting, error) {
	cs, ws := c.Values(), w.Values()
	settings := make([]Setting, len(cells))
	for i, cell := range cells {
		if cell.Row >= len(cs) || cell.Col >= len(ws) {
			return nil, errors.Errorf("cell (%d, %d) is outside the %dx%d grid", cell.Row, cell.Col, len(cs), len(ws))
		}
		settings[i] = Setting{
			Cell: cell,
			C:    scale.Apply(cs[cell.Row]),
			W:    scale.Apply(ws[cell.Col]),
		}
	}
	return settings, nil
}
