package number

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	at := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	got, err := Format(at, 1)
	require.NoError(t, err)
	assert.Equal(t, "INV-202603-0001", got)

	got, err = Format(at, 42)
	require.NoError(t, err)
	assert.Equal(t, "INV-202603-0042", got)

	// Sequence outgrows the pad rather than wrapping.
	got, err = Format(at, 12345)
	require.NoError(t, err)
	assert.Equal(t, "INV-202603-12345", got)

	_, err = Format(at, 0)
	assert.Error(t, err)
}

func TestNext(t *testing.T) {
	at := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	got, err := Next(at, "")
	require.NoError(t, err)
	assert.Equal(t, "INV-202603-0001", got)

	got, err = Next(at, "INV-202603-0007")
	require.NoError(t, err)
	assert.Equal(t, "INV-202603-0008", got)

	// A number from another month does not leak into this scope.
	got, err = Next(at, "INV-202602-0099")
	require.NoError(t, err)
	assert.Equal(t, "INV-202603-0001", got)
}

func TestSequence(t *testing.T) {
	prefix := MonthPrefix(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, int64(7), Sequence("INV-202603-0007", prefix))
	assert.Equal(t, int64(0), Sequence("", prefix))
	assert.Equal(t, int64(0), Sequence("INV-202603-garbage", prefix))
	assert.Equal(t, int64(0), Sequence("INV-202602-0007", prefix))
}
