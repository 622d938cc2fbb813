package engine

import (
	"math/rand"
	"sync"
	"sync/atomic"
	"time"
)

// TaskID identifies a scheduled task for cancellation
type TaskID uint64

// Scheduler owns every periodic and deferred action the engine creates
// It is the single thing cancelled on teardown; individual components
// never hold raw timers
type Scheduler struct {
	mu      sync.Mutex
	tasks   map[TaskID]chan struct{}
	nextID  TaskID
	wg      sync.WaitGroup
	stopped atomic.Bool
}

// NewScheduler creates an empty scheduler
func NewScheduler() *Scheduler {
	return &Scheduler{
		tasks: make(map[TaskID]chan struct{}),
	}
}

// Every registers a periodic action
// Each firing waits interval plus a uniform random jitter, then runs fn
// with the given probability. Actions run on their own goroutine and
// must revalidate engine state themselves
func (s *Scheduler) Every(interval, jitter time.Duration, probability float64, fn func()) TaskID {
	id, stop := s.register()
	if id == 0 {
		return 0
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		timer := time.NewTimer(withJitter(interval, jitter))
		defer timer.Stop()

		for {
			select {
			case <-stop:
				return
			case <-timer.C:
				if probability >= 1.0 || rand.Float64() < probability {
					fn()
				}
				timer.Reset(withJitter(interval, jitter))
			}
		}
	}()
	return id
}

// After registers a one-shot deferred action
// d <= 0 runs fn synchronously before returning
func (s *Scheduler) After(d time.Duration, fn func()) TaskID {
	if d <= 0 {
		if !s.stopped.Load() {
			fn()
		}
		return 0
	}

	id, stop := s.register()
	if id == 0 {
		return 0
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		timer := time.NewTimer(d)
		defer timer.Stop()

		select {
		case <-stop:
			return
		case <-timer.C:
			s.unregister(id)
			fn()
		}
	}()
	return id
}

// Cancel stops a task without waiting for an in-flight action
// Unknown or already-finished ids are no-ops
func (s *Scheduler) Cancel(id TaskID) {
	s.mu.Lock()
	stop, ok := s.tasks[id]
	if ok {
		delete(s.tasks, id)
	}
	s.mu.Unlock()
	if ok {
		close(stop)
	}
}

// Pending returns the number of registered tasks
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Stop cancels every task and waits for in-flight actions to finish
// Must not be called while holding a lock the actions acquire
// Idempotent; the scheduler accepts no registrations afterward
func (s *Scheduler) Stop() {
	if !s.stopped.CompareAndSwap(false, true) {
		s.wg.Wait()
		return
	}

	s.mu.Lock()
	for id, stop := range s.tasks {
		delete(s.tasks, id)
		close(stop)
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *Scheduler) register() (TaskID, chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Re-checked under the lock so a concurrent Stop cannot strand a task
	if s.stopped.Load() {
		return 0, nil
	}
	s.nextID++
	id := s.nextID
	stop := make(chan struct{})
	s.tasks[id] = stop
	return id, stop
}

func (s *Scheduler) unregister(id TaskID) {
	s.mu.Lock()
	delete(s.tasks, id)
	s.mu.Unlock()
}

func withJitter(interval, jitter time.Duration) time.Duration {
	if jitter <= 0 {
		return interval
	}
	return interval + time.Duration(rand.Int63n(int64(jitter)))
}
