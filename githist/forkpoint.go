package githist

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/go-git/go-git/v5/plumbing"
)

// ForkPointRequest asks where the branch merged by Merge split off the
// line of First. Second is the head of the merged branch.
type ForkPointRequest struct {
	Merge  plumbing.Hash
	First  plumbing.Hash
	Second plumbing.Hash
}

// ForkPointResult is the outcome of a fork point computation. Found is
// false when the branch shares no history with First, as with a grafted
// or root-import branch.
type ForkPointResult struct {
	Merge     plumbing.Hash
	First     plumbing.Hash
	ForkPoint plumbing.Hash
	Found     bool
}

type memoKey struct {
	merge plumbing.Hash
	first plumbing.Hash
}

type memoEntry struct {
	done   bool
	result ForkPointResult
}

// Resolver computes fork points on a bounded pool of workers. Results
// are memoized by request key for the life of the session, so repeated
// folds and unfolds of the same merge never recompute. Callers consume
// results from Results; delivery order is unrelated to request order.
type Resolver struct {
	src      Source
	logger   *log.Logger
	requests chan ForkPointRequest
	results  chan ForkPointResult
	quit     chan struct{}
	wg       sync.WaitGroup

	mu        sync.Mutex
	closed    bool
	memo      map[memoKey]*memoEntry
	onCompute func(ForkPointRequest)
}

// NewResolver starts a resolver with the given worker count; a count
// below one falls back to a small default.
func NewResolver(src Source, workers int) *Resolver {
	if workers < 1 {
		workers = 4
	}
	r := &Resolver{
		src:      src,
		logger:   log.Default(),
		requests: make(chan ForkPointRequest, 128),
		results:  make(chan ForkPointResult, 128),
		quit:     make(chan struct{}),
		memo:     map[memoKey]*memoEntry{},
	}
	r.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go r.worker()
	}
	return r
}

// SetLogger replaces the resolver's logger.
func (r *Resolver) SetLogger(l *log.Logger) { r.logger = l }

// SetComputeHook installs an instrumentation hook invoked once per
// actual computation, before the graph search runs. Memoized and
// coalesced requests do not trigger it.
func (r *Resolver) SetComputeHook(fn func(ForkPointRequest)) {
	r.mu.Lock()
	r.onCompute = fn
	r.mu.Unlock()
}

// Results delivers completed computations. The channel never closes;
// after Close no further results arrive.
func (r *Resolver) Results() <-chan ForkPointResult { return r.results }

// Request schedules a fork point computation. It never blocks the
// caller: a memoized result is re-delivered immediately, an in-flight
// duplicate is coalesced into the running computation.
func (r *Resolver) Request(req ForkPointRequest) {
	key := memoKey{merge: req.Merge, first: req.First}
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	m, ok := r.memo[key]
	if ok && m.done {
		res := m.result
		r.mu.Unlock()
		r.deliver(res)
		return
	}
	if ok {
		// Already computing; the single result serves every requester.
		r.mu.Unlock()
		return
	}
	r.memo[key] = &memoEntry{}
	r.mu.Unlock()

	select {
	case r.requests <- req:
	default:
		// Queue full; hand off without stalling the caller.
		go func() {
			select {
			case r.requests <- req:
			case <-r.quit:
			}
		}()
	}
}

// Close stops the workers and waits for in-flight computations to
// finish. Idempotent.
func (r *Resolver) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	r.mu.Unlock()
	close(r.quit)
	r.wg.Wait()
}

func (r *Resolver) worker() {
	defer r.wg.Done()
	for {
		var req ForkPointRequest
		select {
		case <-r.quit:
			return
		case req = <-r.requests:
		}

		r.mu.Lock()
		hook := r.onCompute
		r.mu.Unlock()
		if hook != nil {
			hook(req)
		}

		res, err := r.compute(req)

		key := memoKey{merge: req.Merge, first: req.First}
		r.mu.Lock()
		if err != nil {
			// A failed read is indeterminate, not "no fork point".
			// Forget the key so a later request retries; no result is
			// delivered and the entry stays unresolved.
			delete(r.memo, key)
			r.mu.Unlock()
			r.logger.Error("fork point computation failed",
				"merge", req.Merge.String()[:8], "err", err)
			continue
		}
		r.memo[key] = &memoEntry{done: true, result: res}
		r.mu.Unlock()
		r.deliver(res)
	}
}

// compute walks the merged branch's first-parent ancestry and returns
// the first commit that is also an ancestor of First. A source error
// aborts the walk without an answer.
func (r *Resolver) compute(req ForkPointRequest) (ForkPointResult, error) {
	res := ForkPointResult{Merge: req.Merge, First: req.First}
	w := NewWalker(r.src, req.Second)
	for {
		c, err := w.Next()
		if err != nil {
			return res, err
		}
		if c == nil {
			return res, nil
		}
		reachable, err := r.src.IsAncestor(c.ID, req.First)
		if err != nil {
			return res, err
		}
		if reachable {
			res.ForkPoint = c.ID
			res.Found = true
			return res, nil
		}
	}
}

func (r *Resolver) deliver(res ForkPointResult) {
	select {
	case r.results <- res:
	case <-r.quit:
	}
}
