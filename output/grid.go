package output

import (
	"github.com/hscells/svmgrid/grid"
)

// Settings lays out grid settings as a table with the columns C, the second parameter, and the rate.
func Settings(settings []grid.Setting, param, rate string) (headers []string, rows [][]float64) {
	headers = []string{"C", param, rate}
	rows = make([][]float64, len(settings))
	for i, s := range settings {
		rows[i] = []float64{s.C, s.W, s.Value}
	}
	return
}
