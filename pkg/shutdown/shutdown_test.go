package shutdown

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShutdownRunsAllCallbacks(t *testing.T) {
	m := NewManager()
	var calls atomic.Int32
	for i := 0; i < 3; i++ {
		m.OnShutdown("ok", func(context.Context) error {
			calls.Add(1)
			return nil
		})
	}
	m.OnShutdown("broken", func(context.Context) error { return errors.New("close failed") })

	failed := m.Shutdown(context.Background())
	assert.Equal(t, 1, failed)
	assert.Equal(t, int32(3), calls.Load())
}

func TestShutdownTimeout(t *testing.T) {
	m := NewManager()
	release := make(chan struct{})
	defer close(release)
	m.OnShutdown("stuck", func(context.Context) error {
		<-release
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.Equal(t, 1, m.Shutdown(ctx))
}

func TestShutdownWithoutCallbacks(t *testing.T) {
	assert.Equal(t, 0, NewManager().Shutdown(context.Background()))
}
