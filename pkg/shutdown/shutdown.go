package shutdown

import (
	"context"
	"sync"

	"github.com/betbot/gorh/pkg/logger"
)

// Handler shutdown callback. It should return once ctx is done.
type Handler func(ctx context.Context) error

// Manager runs registered callbacks concurrently on shutdown.
type Manager struct {
	mu        sync.Mutex
	callbacks []namedHandler
}

type namedHandler struct {
	name string
	fn   Handler
}

func NewManager() *Manager {
	return &Manager{}
}

// OnShutdown registers handler under name, used in logs.
func (m *Manager) OnShutdown(name string, handler Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, namedHandler{name: name, fn: handler})
}

// Shutdown runs every callback and blocks until all return or ctx is done.
// It returns the number of callbacks that failed or did not finish.
func (m *Manager) Shutdown(ctx context.Context) int {
	m.mu.Lock()
	callbacks := append([]namedHandler(nil), m.callbacks...)
	m.mu.Unlock()

	if len(callbacks) == 0 {
		return 0
	}
	logger.Infof("shutting down %d components", len(callbacks))

	results := make(chan error, len(callbacks))
	for _, cb := range callbacks {
		go func(cb namedHandler) {
			err := cb.fn(ctx)
			if err != nil {
				logger.WithField("component", cb.name).WithError(err).Warn("shutdown failed")
			}
			results <- err
		}(cb)
	}

	failed := 0
	for pending := len(callbacks); pending > 0; pending-- {
		select {
		case err := <-results:
			if err != nil {
				failed++
			}
		case <-ctx.Done():
			logger.Warnf("shutdown timed out: %v", ctx.Err())
			return failed + pending
		}
	}
	return failed
}
