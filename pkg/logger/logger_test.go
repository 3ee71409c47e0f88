package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"syscall"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetReturnsSameInstance(t *testing.T) {
	l1 := Get(0)
	l2 := Get(-1)
	require.NotNil(t, l1)
	assert.Same(t, l1, l2)
}

func TestGetReturnsNoopWhenGlobalMissing(t *testing.T) {
	orig := globalLogrLogger
	globalLogrLogger = nil
	defer func() { globalLogrLogger = orig }()

	got := Get(0)
	assert.Same(t, &defaultNoopLogger, got)
}

func TestNewWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	lgr := New(&buf, 0)

	lgr.Info("widths adjusted", TableKey, "orders", "columns", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "widths adjusted", entry[MessageKey])
	assert.Equal(t, "orders", entry[TableKey])
	assert.EqualValues(t, 3, entry["columns"])
	assert.Contains(t, entry, TimeStampKey)
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	lgr := New(&buf, 0)
	lgr.V(1).Info("hidden")
	assert.Zero(t, buf.Len())

	debugLgr := New(&buf, -1)
	debugLgr.V(1).Info("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	lgr := logr.Discard()

	withLgr := WithLogger(ctx, &lgr)
	assert.Same(t, &lgr, FromContext(withLgr))
	assert.Equal(t, withLgr, WithLogger(withLgr, &lgr), "same logger keeps the context")

	other := logr.Discard()
	replaced := WithLogger(withLgr, &other)
	assert.Same(t, &other, FromContext(replaced))
}

func TestFromContextFallsBackToNoop(t *testing.T) {
	orig := globalLogrLogger
	globalLogrLogger = nil
	defer func() { globalLogrLogger = orig }()

	assert.Same(t, &defaultNoopLogger, FromContext(context.Background()))
}

func TestWithValuesReturnsNewLogger(t *testing.T) {
	lgr := logr.Discard()
	got := WithValues(&lgr, "k", "v")
	require.NotNil(t, got)
	assert.NotSame(t, &lgr, got)
}

func TestSyncWithoutLogger(t *testing.T) {
	orig := globalZapLogger
	globalZapLogger = nil
	defer func() { globalZapLogger = orig }()

	assert.NotPanics(t, Sync)
}

func TestIsIgnorableSyncError(t *testing.T) {
	assert.True(t, isIgnorableSyncError(syscall.ENOTTY))
	assert.True(t, isIgnorableSyncError(fmt.Errorf("sync /dev/stderr: %w", syscall.EINVAL)))
	assert.True(t, isIgnorableSyncError(fmt.Errorf("The handle is invalid.")))
	assert.False(t, isIgnorableSyncError(fmt.Errorf("disk full")))
}
