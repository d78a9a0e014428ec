package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/ShadowArmy_Go/internal/logger"
	"github.com/osse101/ShadowArmy_Go/internal/worker"
)

// LogMsgTickDropped is logged when the worker queue is full at tick time
const LogMsgTickDropped = "Scheduled job dropped, worker queue full"

type entry struct {
	name     string
	interval time.Duration
	job      worker.Job
}

// Scheduler enqueues registered jobs onto a worker pool at fixed intervals
type Scheduler struct {
	workerPool *worker.Pool
	entries    []entry
	quit       chan struct{}
	wg         sync.WaitGroup
	startOnce  sync.Once
	stopOnce   sync.Once
}

// New creates a new scheduler
func New(pool *worker.Pool) *Scheduler {
	return &Scheduler{
		workerPool: pool,
		quit:       make(chan struct{}),
	}
}

// Schedule registers a job to run at a fixed interval. Jobs registered after
// Start are ignored.
func (s *Scheduler) Schedule(name string, interval time.Duration, job worker.Job) {
	s.entries = append(s.entries, entry{name: name, interval: interval, job: job})
}

// Start launches one ticker goroutine per registered job
func (s *Scheduler) Start() {
	s.startOnce.Do(func() {
		for _, e := range s.entries {
			s.wg.Add(1)
			go s.loop(e)
		}
	})
}

func (s *Scheduler) loop(e entry) {
	defer s.wg.Done()
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if !s.workerPool.Enqueue(e.job) {
				logger.FromContext(context.Background()).Debug(LogMsgTickDropped, "job", e.name)
			}
		case <-s.quit:
			return
		}
	}
}

// Run starts the scheduler and blocks until ctx is cancelled, then stops it
func (s *Scheduler) Run(ctx context.Context) error {
	s.Start()
	<-ctx.Done()
	s.Stop()
	return nil
}

// Stop stops all scheduled jobs
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.quit)
	})
	s.wg.Wait()
}
