package eval

import (
	"math"
	"sort"
)

// AUC computes the area under the ROC curve of scores against labels, where a label greater than zero is the
// positive class. Tied scores receive their average rank. AUC is NaN unless both classes are present.
func AUC(scores, labels []float64) float64 {
	n := len(scores)
	if n != len(labels) {
		return math.NaN()
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool {
		return scores[idx[i]] < scores[idx[j]]
	})

	var pos, neg, rankSum float64
	for i := 0; i < n; {
		j := i
		for j < n && scores[idx[j]] == scores[idx[i]] {
			j++
		}
		// Ranks are 1-based; the tie block [i, j) shares the mean rank.
		rank := float64(i+j+1) / 2
		for k := i; k < j; k++ {
			if labels[idx[k]] > 0 {
				pos++
				rankSum += rank
			} else {
				neg++
			}
		}
		i = j
	}

	if pos == 0 || neg == 0 {
		return math.NaN()
	}
	return (rankSum - pos*(pos+1)/2) / (pos * neg)
}
