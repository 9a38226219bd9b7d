// Package schedule runs recurring maintenance tasks (the low-stock sweep,
// cache warmers) on fixed intervals or at a daily wall-clock time.
//
//	schedule.Every(time.Hour).Do("cache:warm", warmCatalog)
//	schedule.DailyAt("03:00").Do("stock:sweep", sweepLowStock)
//	schedule.Start(ctx)
package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hassanmehmood/medicart/pkg/logger"
)

type Task func()

type entry struct {
	name     string
	interval time.Duration
	dailyAt  string // "HH:MM", empty for interval entries
	task     Task

	mu      sync.Mutex
	lastRun time.Time
	running bool
}

// Builder accumulates one entry before registration.
type Builder struct {
	e *entry
}

var (
	regMu   sync.Mutex
	entries []*entry
)

// Every schedules a task on a fixed interval. The first run fires on the
// first tick after Start.
func Every(d time.Duration) *Builder {
	if d < time.Second {
		d = time.Second
	}
	return &Builder{e: &entry{interval: d}}
}

// DailyAt schedules a task at a wall-clock time, "HH:MM" (server local time).
func DailyAt(at string) *Builder {
	return &Builder{e: &entry{dailyAt: at}}
}

// Do registers the entry under name.
func (b *Builder) Do(name string, task Task) {
	b.e.name = name
	b.e.task = task

	regMu.Lock()
	entries = append(entries, b.e)
	regMu.Unlock()
}

// Start runs the scheduler loop until ctx is cancelled. Ticks every second.
func Start(ctx context.Context) {
	go loop(ctx)
	logger.Info("schedule: started")
}

func loop(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("schedule: stopped")
			return
		case now := <-ticker.C:
			regMu.Lock()
			current := append([]*entry(nil), entries...)
			regMu.Unlock()

			for _, e := range current {
				if e.due(now) {
					e.dispatch(now)
				}
			}
		}
	}
}

func (e *entry) due(now time.Time) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.dailyAt != "" {
		if now.Format("15:04") != e.dailyAt {
			return false
		}
		// only once per day even though the match window is a full minute
		return e.lastRun.IsZero() || now.Sub(e.lastRun) > time.Minute
	}

	if e.lastRun.IsZero() {
		return true
	}
	return now.Sub(e.lastRun) >= e.interval
}

func (e *entry) dispatch(now time.Time) {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		logger.Warn("schedule: skipping overlapping run", "task", e.name)
		return
	}
	e.running = true
	e.lastRun = now
	e.mu.Unlock()

	go func() {
		defer func() {
			e.mu.Lock()
			e.running = false
			e.mu.Unlock()
			if r := recover(); r != nil {
				logger.Error("schedule: task panicked", "task", e.name, "panic", r)
			}
		}()

		logger.Info("schedule: running task", "task", e.name)
		e.task()
	}()
}

// List describes the registered entries for CLI display.
func List() []string {
	regMu.Lock()
	defer regMu.Unlock()

	out := make([]string, 0, len(entries))
	for _, e := range entries {
		freq := e.dailyAt
		if freq == "" {
			freq = "every " + e.interval.String()
		}
		out = append(out, fmt.Sprintf("%s  [%s]", e.name, freq))
	}
	return out
}
