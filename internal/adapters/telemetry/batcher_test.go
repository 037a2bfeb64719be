package telemetry_test

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/dbridge/internal/adapters/telemetry"
)

type flushRecorder struct {
	mu     sync.Mutex
	chunks [][]byte
}

func (f *flushRecorder) onFlush(data []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.chunks = append(f.chunks, data)
}

func (f *flushRecorder) joined() []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return bytes.Join(f.chunks, nil)
}

func (f *flushRecorder) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.chunks)
}

func TestBatchProcessor_SizeLimit(t *testing.T) {
	rec := &flushRecorder{}
	bp := telemetry.NewBatchProcessor(8, time.Hour, rec.onFlush)
	defer func() { _ = bp.Close() }()

	_, err := bp.Write([]byte("1234"))
	require.NoError(t, err)
	assert.Equal(t, 0, rec.count())

	_, err = bp.Write([]byte("5678"))
	require.NoError(t, err)
	assert.Equal(t, 1, rec.count())
	assert.Equal(t, []byte("12345678"), rec.joined())
}

func TestBatchProcessor_TimeLimit(t *testing.T) {
	rec := &flushRecorder{}
	bp := telemetry.NewBatchProcessor(1<<20, 10*time.Millisecond, rec.onFlush)
	defer func() { _ = bp.Close() }()

	_, err := bp.Write([]byte("tick"))
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return rec.count() == 1 }, time.Second, 5*time.Millisecond)
}

func TestBatchProcessor_CloseFlushesRemainder(t *testing.T) {
	rec := &flushRecorder{}
	bp := telemetry.NewBatchProcessor(1<<20, time.Hour, rec.onFlush)

	_, _ = bp.Write([]byte("a"))
	_, _ = bp.Write([]byte("b"))
	require.NoError(t, bp.Close())
	require.NoError(t, bp.Close())

	assert.Equal(t, []byte("ab"), rec.joined())

	_, err := bp.Write([]byte("c"))
	assert.ErrorIs(t, err, telemetry.ErrBatcherClosed)
}

func TestBatchProcessor_PreservesOrder(t *testing.T) {
	rec := &flushRecorder{}
	bp := telemetry.NewBatchProcessor(3, time.Millisecond, rec.onFlush)

	var want bytes.Buffer
	for i := range 200 {
		b := []byte{byte('a' + i%26)}
		want.Write(b)
		_, _ = bp.Write(b)
	}
	require.NoError(t, bp.Close())

	assert.Equal(t, want.Bytes(), rec.joined())
}
