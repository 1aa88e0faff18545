package pkg

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSpill_AppendAndRange(t *testing.T) {
	spill, err := NewFileSpill[string]()
	require.NoError(t, err)
	defer spill.Close()

	require.NoError(t, spill.Append("first"))
	require.NoError(t, spill.Append("second"))
	require.Equal(t, uint64(2), spill.Len())

	var seen []string
	err = spill.Range(func(_ uint64, item string) error {
		seen = append(seen, item)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, seen)
}

func TestFileSpill_RangePropagatesCallbackError(t *testing.T) {
	spill, err := NewFileSpill[int]()
	require.NoError(t, err)
	defer spill.Close()

	require.NoError(t, spill.Append(42))

	sentinel := errors.New("stop")
	err = spill.Range(func(_ uint64, _ int) error {
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
}

func TestFileSpill_EmptyRange(t *testing.T) {
	spill, err := NewFileSpill[int]()
	require.NoError(t, err)
	defer spill.Close()

	calls := 0
	err = spill.Range(func(_ uint64, _ int) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Zero(t, calls)
}

func TestFileSpill_CloseIsIdempotent(t *testing.T) {
	spill, err := NewFileSpill[int]()
	require.NoError(t, err)

	require.NoError(t, spill.Close())
	require.NoError(t, spill.Close())
}
