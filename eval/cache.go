package eval

import (
	"crypto/sha256"
	"fmt"
	"math"
	"strconv"

	"github.com/hashicorp/golang-lru"
	"github.com/hscells/svmgrid/grid"
	"github.com/peterbourgon/diskv"
	"github.com/pkg/errors"
)

// BlockTransform determines how diskv should partition folders.
func BlockTransform(blockSize int) func(string) []string {
	return func(s string) []string {
		var (
			sliceSize = len(s) / blockSize
			pathSlice = make([]string, sliceSize)
		)
		for i := 0; i < sliceSize; i++ {
			from, to := i*blockSize, (i*blockSize)+blockSize
			pathSlice[i] = s[from:to]
		}
		return pathSlice
	}
}

// Cache remembers the rate of every job an evaluator has successfully evaluated, in memory and optionally on
// disk, so that an interrupted grid search can be resumed. Failures are not cached.
type Cache struct {
	evaluator Evaluator
	mem       *lru.Cache
	disk      *diskv.Diskv
}

// NewCache wraps an evaluator. size bounds the in-memory tier; when dir is empty nothing is written to disk.
func NewCache(evaluator Evaluator, size int, dir string) (*Cache, error) {
	if size < 1 {
		size = 1
	}
	mem, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	c := &Cache{evaluator: evaluator, mem: mem}
	if dir != "" {
		c.disk = diskv.New(diskv.Options{
			BasePath:     dir,
			Transform:    BlockTransform(8),
			CacheSizeMax: 1024 * 1024,
			Compression:  diskv.NewGzipCompression(),
		})
	}
	return c, nil
}

// Name is the name of the wrapped evaluator.
func (c *Cache) Name() string {
	return c.evaluator.Name()
}

// Key is the cache key of a job.
func (c *Cache) Key(job grid.Job) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%v|%v", c.evaluator.Name(), job.C, job.W)
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Evaluate returns the cached rate of the job, evaluating it if it has not been seen before.
func (c *Cache) Evaluate(job grid.Job) (float64, error) {
	key := c.Key(job)
	if v, ok := c.mem.Get(key); ok {
		return v.(float64), nil
	}
	if c.disk != nil && c.disk.Has(key) {
		b, err := c.disk.Read(key)
		if err != nil {
			return 0, errors.Wrap(err, "reading cache")
		}
		rate, err := strconv.ParseFloat(string(b), 64)
		if err != nil {
			return 0, errors.Wrapf(err, "corrupt cache entry %s", key)
		}
		c.mem.Add(key, rate)
		return rate, nil
	}

	rate, err := c.evaluator.Evaluate(job)
	if err != nil || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return rate, err
	}
	c.mem.Add(key, rate)
	if c.disk != nil {
		if err := c.disk.Write(key, []byte(strconv.FormatFloat(rate, 'g', -1, 64))); err != nil {
			return rate, errors.Wrap(err, "writing cache")
		}
	}
	return rate, nil
}
