package testutil

import (
	"errors"
	"sync"

	"github.com/glide-ceylon/gidz-uni-path-sub001/pkg/platform/sentinel"
)

// ConcurrentResult counts outcomes of a RunConcurrent batch.
type ConcurrentResult struct {
	Successes int32
	Errors    int32
	Conflicts int32
	NotFounds int32
}

func (r *ConcurrentResult) Total() int32 {
	return r.Successes + r.Errors + r.Conflicts + r.NotFounds
}

// RunConcurrent starts n goroutines running fn and sorts each returned error
// into a bucket: nil, sentinel.ErrConflict, sentinel.ErrNotFound, or other.
func RunConcurrent(n int, fn func(idx int) error) *ConcurrentResult {
	errs := make([]error, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := range n {
		go func() {
			defer wg.Done()
			errs[i] = fn(i)
		}()
	}
	wg.Wait()

	res := &ConcurrentResult{}
	for _, err := range errs {
		switch {
		case err == nil:
			res.Successes++
		case errors.Is(err, sentinel.ErrConflict):
			res.Conflicts++
		case errors.Is(err, sentinel.ErrNotFound):
			res.NotFounds++
		default:
			res.Errors++
		}
	}
	return res
}
