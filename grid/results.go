package grid

import (
	"math"
	"sync"
)

// Result is the rate a worker measured for a job.
type Result struct {
	Worker string
	Job    Job
	Rate   float64
}

// Results collects the results of all workers. It is safe for concurrent use.
type Results struct {
	mu      sync.RWMutex
	records []Result
}

// NewResults creates an empty result collection.
func NewResults() *Results {
	return &Results{}
}

// Add records a result.
func (r *Results) Add(result Result) {
	r.mu.Lock()
	r.records = append(r.records, result)
	r.mu.Unlock()
}

// Len is the number of recorded results.
func (r *Results) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

// Records returns a copy of the recorded results in the order they were added.
func (r *Results) Records() []Result {
	r.mu.RLock()
	defer r.mu.RUnlock()
	records := make([]Result, len(r.records))
	copy(records, r.records)
	return records
}

// Rates maps the hyper-parameters of every job to its rate.
func (r *Results) Rates() map[Key]float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rates := make(map[Key]float64, len(r.records))
	for _, rec := range r.records {
		rates[rec.Job.Key()] = rec.Rate
	}
	return rates
}

// Grid lays the rates out by job position. Cells without a result are NaN.
func (r *Results) Grid(rows, cols int) [][]float64 {
	g := make([][]float64, rows)
	for i := range g {
		g[i] = make([]float64, cols)
		for j := range g[i] {
			g[i][j] = math.NaN()
		}
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rec := range r.records {
		if rec.Job.Row < rows && rec.Job.Col < cols {
			g[rec.Job.Row][rec.Job.Col] = rec.Rate
		}
	}
	return g
}
