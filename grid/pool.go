package grid

import (
	"fmt"
	"math"
	"runtime"
	"sync"
	"time"

	goerrors "github.com/go-errors/errors"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

var (
	// ErrNoRate is returned when an evaluation finished without producing a rate.
	ErrNoRate = errors.New("got no rate")
	// ErrStarved is returned when every worker quit while jobs were still queued.
	ErrStarved = errors.New("all workers quit before the queue was drained")
)

// Evaluator trains and evaluates a model for one job and returns its rate (e.g. AUC).
type Evaluator interface {
	Evaluate(job Job) (float64, error)
}

// EvaluatorFunc adapts a function to an Evaluator.
type EvaluatorFunc func(job Job) (float64, error)

// Evaluate calls f(job).
func (f EvaluatorFunc) Evaluate(job Job) (float64, error) {
	return f(job)
}

// Pool evaluates jobs with a fixed number of workers. A worker whose evaluation fails puts the job back at the
// front of the queue so a remaining worker picks it up next, and then quits. Workers are never restarted.
type Pool struct {
	evaluator Evaluator
	workers   int
	name      string
	logger    zerolog.Logger
	progress  func(Result)
}

// Workers sets the number of workers.
func Workers(n int) func(*Pool) {
	return func(p *Pool) {
		p.workers = n
	}
}

// Name sets the prefix of worker names.
func Name(name string) func(*Pool) {
	return func(p *Pool) {
		p.name = name
	}
}

// Logger sets the logger workers report to.
func Logger(logger zerolog.Logger) func(*Pool) {
	return func(p *Pool) {
		p.logger = logger
	}
}

// Progress sets a function that is called after every successful evaluation. It may be called concurrently.
func Progress(fn func(Result)) func(*Pool) {
	return func(p *Pool) {
		p.progress = fn
	}
}

// NewPool creates a pool with one worker per CPU unless configured otherwise.
func NewPool(evaluator Evaluator, options ...func(*Pool)) *Pool {
	p := &Pool{
		evaluator: evaluator,
		workers:   runtime.NumCPU(),
		name:      "local",
		logger:    zerolog.Nop(),
	}
	for _, option := range options {
		option(p)
	}
	return p
}

// Run evaluates every job and waits for all workers to exit.
func (p *Pool) Run(jobs []Job) (*Results, error) {
	return p.RunWithCheckpoint(jobs, 0, nil)
}

// RunWithCheckpoint is Run, additionally calling checkpoint with the results so far every interval and once
// more when all workers have exited. When the workers leave jobs behind, the partial results are returned along
// with ErrStarved.
func (p *Pool) RunWithCheckpoint(jobs []Job, interval time.Duration, checkpoint func(*Results)) (*Results, error) {
	if p.workers < 1 {
		return nil, fmt.Errorf("need at least one worker, got %d", p.workers)
	}

	queue := NewQueue()
	for _, job := range jobs {
		queue.PushBack(JobOf(job))
	}
	for i := 0; i < p.workers; i++ {
		queue.PushBack(Shutdown())
	}

	results := NewResults()
	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		w := worker{
			name:      fmt.Sprintf("%s-%d", p.name, i),
			queue:     queue,
			results:   results,
			evaluator: p.evaluator,
			progress:  p.progress,
		}
		w.logger = p.logger.With().Str("worker", w.name).Logger()
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.run()
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	if interval > 0 && checkpoint != nil {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
	wait:
		for {
			select {
			case <-ticker.C:
				checkpoint(results)
			case <-done:
				break wait
			}
		}
	} else {
		<-done
	}
	if checkpoint != nil {
		checkpoint(results)
	}

	if pending := queue.Pending(); len(pending) > 0 {
		p.logger.Error().Int("pending", len(pending)).Msg("no workers left to drain the queue")
		return results, errors.Wrapf(ErrStarved, "%d job(s) left", len(pending))
	}
	return results, nil
}

type worker struct {
	name      string
	queue     *Queue
	results   *Results
	evaluator Evaluator
	progress  func(Result)
	logger    zerolog.Logger
}

func (w worker) run() {
	for {
		item := w.queue.Pop()
		if item.Kind == ShutdownItem {
			// Leave the item for the workers that are still waiting.
			w.queue.PushBack(item)
			w.logger.Debug().Msg("worker stop")
			return
		}

		job := item.Job
		rate, err := w.evaluate(job)
		if err != nil {
			w.queue.PushFront(item)
			e := goerrors.Wrap(err, 0)
			w.logger.Error().
				Float64("c", job.C).
				Float64("w", job.W).
				Err(err).
				Str("stack", e.ErrorStack()).
				Msg("worker quit")
			return
		}

		r := Result{Worker: w.name, Job: job, Rate: rate}
		w.results.Add(r)
		w.logger.Info().Float64("c", job.C).Float64("w", job.W).Float64("rate", rate).Msg("evaluated")
		if w.progress != nil {
			w.progress(r)
		}
	}
}

// evaluate runs the evaluator, converting panics and missing or infinite rates into errors.
func (w worker) evaluate(job Job) (rate float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = goerrors.Wrap(r, 2)
		}
	}()
	rate, err = w.evaluator.Evaluate(job)
	if err == nil && (math.IsNaN(rate) || math.IsInf(rate, 0)) {
		err = ErrNoRate
	}
	return rate, err
}
