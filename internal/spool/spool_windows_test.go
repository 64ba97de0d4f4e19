//go:build windows

package spool

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A stuck Print Spooler service blocks inside the winspool calls without
// returning; submitRaw must bound the attempt itself, because callers
// hand it an unbounded context.
func TestSubmitRaw_BoundedWithoutCallerDeadline(t *testing.T) {
	origTimeout, origWriter := rawTimeout, rawWriter
	t.Cleanup(func() { rawTimeout, rawWriter = origTimeout, origWriter })

	rawTimeout = 50 * time.Millisecond
	blocked := make(chan struct{})
	t.Cleanup(func() { close(blocked) })
	rawWriter = func(printerName string, data []byte) error {
		<-blocked
		return nil
	}

	path := filepath.Join(t.TempDir(), "job.txt")
	require.NoError(t, os.WriteFile(path, []byte("chek"), 0o644))

	s := New(testLogger(), bogusQueue)
	start := time.Now()
	err := s.submitRaw(context.Background(), path)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestSubmitRaw_CallerCancellation(t *testing.T) {
	origWriter := rawWriter
	t.Cleanup(func() { rawWriter = origWriter })

	blocked := make(chan struct{})
	t.Cleanup(func() { close(blocked) })
	rawWriter = func(printerName string, data []byte) error {
		<-blocked
		return nil
	}

	path := filepath.Join(t.TempDir(), "job.txt")
	require.NoError(t, os.WriteFile(path, []byte("chek"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New(testLogger(), bogusQueue)
	err := s.submitRaw(ctx, path)
	assert.ErrorIs(t, err, context.Canceled)
}
