// Package queue runs background jobs (confirmation emails, low-stock
// notifications) off the request path.
//
//	type OrderConfirmationJob struct{ OrderID uint }
//	func (j *OrderConfirmationJob) Handle() error { ... }
//
//	queue.Register("*jobs.OrderConfirmationJob", func() queue.Job { return &OrderConfirmationJob{} })
//	queue.Dispatch(&OrderConfirmationJob{OrderID: 42})
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/hassanmehmood/medicart/pkg/logger"
	"github.com/hassanmehmood/medicart/pkg/metrics"
)

// Job is the unit of background work. Implementations must be JSON
// round-trippable so they survive the Redis driver.
type Job interface {
	Handle() error
}

// Driver is the queue storage backend.
type Driver interface {
	Push(payload []byte) error
	Pop(ctx context.Context) ([]byte, error)
}

type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// FailedJob is the in-memory record of a job that exhausted its retries.
type FailedJob struct {
	Type     string
	Payload  string
	Err      error
	Attempts int
	FailedAt time.Time
}

type Manager struct {
	mu       sync.RWMutex
	driver   Driver
	registry map[string]func() Job
	failed   []FailedJob
	maxRetry int
	backoff  time.Duration
}

var std = &Manager{
	driver:   NewMemoryDriver(),
	registry: map[string]func() Job{},
	maxRetry: 3,
	backoff:  time.Second,
}

// SetDriver swaps the backend. Call before StartWorkers.
func SetDriver(d Driver) {
	std.mu.Lock()
	defer std.mu.Unlock()
	std.driver = d
}

// SetMaxRetry sets how many attempts a job gets before it is recorded as
// failed.
func SetMaxRetry(n int) {
	std.mu.Lock()
	defer std.mu.Unlock()
	if n < 1 {
		n = 1
	}
	std.maxRetry = n
}

// SetBackoff sets the base delay between attempts (attempt N waits N×base).
func SetBackoff(d time.Duration) {
	std.mu.Lock()
	defer std.mu.Unlock()
	std.backoff = d
}

// Register binds a type name to a constructor so payloads popped off the
// queue can be rebuilt. Register every job type once at boot.
func Register(name string, factory func() Job) {
	std.mu.Lock()
	defer std.mu.Unlock()
	std.registry[name] = factory
}

// Dispatch serializes job and pushes it onto the queue.
func Dispatch(job Job) error {
	return std.push(job)
}

// DispatchAfter pushes job after delay. The Redis driver schedules it in a
// sorted set; the memory driver sleeps on a goroutine.
func DispatchAfter(job Job, delay time.Duration) {
	std.mu.RLock()
	d := std.driver
	std.mu.RUnlock()

	if rd, ok := d.(*RedisDriver); ok {
		env, err := std.encode(job)
		if err != nil {
			logger.Error("queue: delayed dispatch failed", "error", err)
			return
		}
		if err := rd.PushDelayed(env, delay); err != nil {
			logger.Error("queue: delayed dispatch failed", "error", err)
		}
		return
	}

	go func() {
		time.Sleep(delay)
		if err := Dispatch(job); err != nil {
			logger.Error("queue: delayed dispatch failed", "error", err)
		}
	}()
}

func (m *Manager) encode(job Job) ([]byte, error) {
	typeName := fmt.Sprintf("%T", job)

	payload, err := json.Marshal(job)
	if err != nil {
		return nil, fmt.Errorf("queue: marshal %s: %w", typeName, err)
	}
	return json.Marshal(envelope{Type: typeName, Payload: payload})
}

func (m *Manager) push(job Job) error {
	env, err := m.encode(job)
	if err != nil {
		return err
	}

	m.mu.RLock()
	d := m.driver
	m.mu.RUnlock()

	return d.Push(env)
}

// StartWorkers launches n workers that pop and run jobs until ctx is
// cancelled.
func StartWorkers(ctx context.Context, n int) {
	if n < 1 {
		n = 1
	}
	for i := 0; i < n; i++ {
		go std.work(ctx)
	}
	logger.Info("queue: workers started", "count", n)
}

func (m *Manager) work(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		m.mu.RLock()
		d := m.driver
		m.mu.RUnlock()

		raw, err := d.Pop(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			time.Sleep(500 * time.Millisecond)
			continue
		}
		if raw == nil {
			continue
		}

		m.process(raw)
	}
}

func (m *Manager) process(raw []byte) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		logger.Error("queue: bad envelope", "error", err)
		return
	}

	m.mu.RLock()
	factory, ok := m.registry[env.Type]
	m.mu.RUnlock()

	if !ok {
		logger.Warn("queue: unregistered job type", "type", env.Type)
		metrics.QueueJobs.WithLabelValues(env.Type, "unregistered").Inc()
		return
	}

	job := factory()
	if err := json.Unmarshal(env.Payload, job); err != nil {
		logger.Error("queue: unmarshal payload", "type", env.Type, "error", err)
		metrics.QueueJobs.WithLabelValues(env.Type, "corrupt").Inc()
		return
	}

	m.runWithRetry(job, env.Type, env.Payload)
}

func (m *Manager) runWithRetry(job Job, typeName string, payload []byte) {
	m.mu.RLock()
	maxRetry, backoff := m.maxRetry, m.backoff
	m.mu.RUnlock()

	var lastErr error
	for attempt := 1; attempt <= maxRetry; attempt++ {
		if err := safeHandle(job); err != nil {
			lastErr = err
			logger.Warn("queue: job failed",
				"type", typeName, "attempt", attempt, "error", err)
			time.Sleep(time.Duration(attempt) * backoff)
			continue
		}
		metrics.QueueJobs.WithLabelValues(typeName, "ok").Inc()
		logger.Info("queue: job processed", "type", typeName)
		return
	}

	metrics.QueueJobs.WithLabelValues(typeName, "failed").Inc()
	m.recordFailure(typeName, string(payload), lastErr, maxRetry)
	logger.Error("queue: job exhausted retries", "type", typeName, "error", lastErr)
}

func safeHandle(job Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("queue: job panicked: %v", r)
		}
	}()
	return job.Handle()
}

// FailedJobs returns a snapshot of jobs that exhausted their retries.
func FailedJobs() []FailedJob {
	std.mu.RLock()
	defer std.mu.RUnlock()
	out := make([]FailedJob, len(std.failed))
	copy(out, std.failed)
	return out
}
