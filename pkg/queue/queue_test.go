package queue_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hassanmehmood/medicart/pkg/queue"
)

var echoCalls atomic.Int32

type echoJob struct {
	Val string
}

func (j *echoJob) Handle() error {
	echoCalls.Add(1)
	return nil
}

var failAttempts atomic.Int32

type failJob struct{}

func (j *failJob) Handle() error {
	failAttempts.Add(1)
	return errors.New("always fails")
}

func init() {
	ctx, cancel := context.WithCancel(context.Background())
	_ = cancel
	queue.StartWorkers(ctx, 2)

	queue.Register("*queue_test.echoJob", func() queue.Job { return &echoJob{} })
	queue.Register("*queue_test.failJob", func() queue.Job { return &failJob{} })
}

func TestDispatchAndProcess(t *testing.T) {
	before := echoCalls.Load()

	if err := queue.Dispatch(&echoJob{Val: "hello"}); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for echoCalls.Load() == before {
		select {
		case <-deadline:
			t.Fatal("job never ran")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestFailedJobRetry(t *testing.T) {
	queue.SetMaxRetry(1)
	queue.SetBackoff(50 * time.Millisecond)
	defer queue.SetMaxRetry(3)
	defer queue.SetBackoff(time.Second)

	if err := queue.Dispatch(&failJob{}); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}

	time.Sleep(500 * time.Millisecond)

	if failAttempts.Load() == 0 {
		t.Error("expected the job to be attempted")
	}
	if len(queue.FailedJobs()) == 0 {
		t.Error("expected at least one failed job")
	}
}

func TestDispatchConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(20)
	for i := 0; i < 20; i++ {
		go func() {
			defer wg.Done()
			queue.Dispatch(&echoJob{Val: "c"}) //nolint:errcheck
		}()
	}
	wg.Wait()
}

func TestMemoryDriverPushPop(t *testing.T) {
	d := queue.NewMemoryDriver()

	if err := d.Push([]byte("one")); err != nil {
		t.Fatalf("push: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	got, err := d.Pop(ctx)
	if err != nil {
		t.Fatalf("pop: %v", err)
	}
	if string(got) != "one" {
		t.Errorf("expected %q, got %q", "one", got)
	}
}
