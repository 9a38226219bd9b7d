// Package event is a small in-process pub/sub bus. Listeners are registered
// at boot; Fire runs them synchronously, FireAsync on a goroutine tracked by
// Flush for clean shutdown.
package event

import (
	"sync"

	"github.com/hassanmehmood/medicart/pkg/logger"
)

type Listener func(payload interface{})

var (
	mu        sync.RWMutex
	listeners = make(map[string][]Listener)
	wg        sync.WaitGroup
)

// Listen registers a listener for the named event.
func Listen(name string, fn Listener) {
	mu.Lock()
	defer mu.Unlock()
	listeners[name] = append(listeners[name], fn)
}

// Fire runs all listeners for name in registration order. A panicking
// listener is recovered and logged; the rest still run.
func Fire(name string, payload interface{}) {
	mu.RLock()
	fns := append([]Listener(nil), listeners[name]...)
	mu.RUnlock()

	for _, fn := range fns {
		run(name, fn, payload)
	}
}

// FireAsync runs the listeners on a goroutine.
func FireAsync(name string, payload interface{}) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		Fire(name, payload)
	}()
}

// Flush waits for all FireAsync dispatches to finish.
func Flush() {
	wg.Wait()
}

func run(name string, fn Listener, payload interface{}) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("event listener panicked", "event", name, "panic", r)
		}
	}()
	fn(payload)
}
