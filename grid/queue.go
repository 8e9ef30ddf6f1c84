package grid

import (
	"container/list"
	"sync"
)

// Kind tells a worker what to do with an Item.
type Kind int

const (
	// JobItem carries a job to evaluate.
	JobItem Kind = iota
	// ShutdownItem tells the worker that pops it to stop.
	ShutdownItem
)

// Item is an entry of the job queue.
type Item struct {
	Kind Kind
	Job  Job
}

// JobOf wraps a job in a queue item.
func JobOf(job Job) Item {
	return Item{Kind: JobItem, Job: job}
}

// Shutdown is the item that stops a worker.
func Shutdown() Item {
	return Item{Kind: ShutdownItem}
}

// Queue is an unbounded double ended queue that is safe for concurrent use. Pop blocks while it is empty.
type Queue struct {
	mu    sync.Mutex
	cond  *sync.Cond
	items *list.List
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	q := &Queue{items: list.New()}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// PushBack appends an item.
func (q *Queue) PushBack(item Item) {
	q.mu.Lock()
	q.items.PushBack(item)
	q.mu.Unlock()
	q.cond.Signal()
}

// PushFront inserts an item so that it is the next one popped.
func (q *Queue) PushFront(item Item) {
	q.mu.Lock()
	q.items.PushFront(item)
	q.mu.Unlock()
	q.cond.Signal()
}

// Pop removes the first item, waiting for one if the queue is empty.
func (q *Queue) Pop() Item {
	q.mu.Lock()
	defer q.mu.Unlock()
	for q.items.Len() == 0 {
		q.cond.Wait()
	}
	return q.items.Remove(q.items.Front()).(Item)
}

// Len is the number of queued items, shutdown items included.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.Len()
}

// Pending returns the jobs that are still queued, front first.
func (q *Queue) Pending() []Job {
	q.mu.Lock()
	defer q.mu.Unlock()
	var jobs []Job
	for e := q.items.Front(); e != nil; e = e.Next() {
		if item := e.Value.(Item); item.Kind == JobItem {
			jobs = append(jobs, item.Job)
		}
	}
	return jobs
}
