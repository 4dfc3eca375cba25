package queue

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/letsgrowesports/blog-api/internal/api/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// ErrPoolClosed is returned by Do once the pool has been stopped.
var ErrPoolClosed = errors.New("queue: pool closed")

type job struct {
	fn   func()
	err  error
	done chan struct{}
}

// Pool runs CPU-bound jobs, such as password hashing, on a fixed set of
// workers so that concurrent requests cannot oversubscribe the CPU.
type Pool struct {
	jobs    chan *job
	workers int
	closed  chan struct{}
	wg      sync.WaitGroup
	log     zerolog.Logger
}

// NewPool creates a Pool with numWorkers workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewPool(numWorkers int, log zerolog.Logger) *Pool {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	return &Pool{
		jobs:    make(chan *job, channelBuffer),
		workers: numWorkers,
		closed:  make(chan struct{}),
		log:     log,
	}
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (p *Pool) Start(ctx context.Context) {
	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go p.runWorker(ctx, i)
	}
	go func() {
		<-ctx.Done()
		close(p.closed)
	}()
}

// Wait blocks until every worker has exited.
func (p *Pool) Wait() {
	p.wg.Wait()
}

// Do enqueues fn and waits for it to finish. If ctx ends first, Do returns
// ctx.Err() and the job's outcome is discarded; a job already running is not
// interrupted.
func (p *Pool) Do(ctx context.Context, fn func()) error {
	j := &job{fn: fn, done: make(chan struct{})}

	select {
	case p.jobs <- j:
		metrics.HashQueueDepth.Set(float64(len(p.jobs)))
	case <-p.closed:
		return ErrPoolClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-j.done:
		return j.err
	case <-p.closed:
		return ErrPoolClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Pool) runWorker(ctx context.Context, id int) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-p.jobs:
			metrics.HashQueueDepth.Set(float64(len(p.jobs)))
			p.execute(id, j)
		}
	}
}

func (p *Pool) execute(id int, j *job) {
	metrics.HashWorkersBusy.Inc()
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			j.err = fmt.Errorf("queue: job panicked: %v", r)
			p.log.Error().Int("worker_id", id).Interface("panic", r).Msg("pool job panicked")
		}
		metrics.HashWorkersBusy.Dec()
		metrics.HashJobDuration.WithLabelValues(strconv.Itoa(id)).Observe(time.Since(start).Seconds())
		close(j.done)
	}()
	j.fn()
}
