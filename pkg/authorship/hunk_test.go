package authorship

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccumulatorPairsAndSurplusDeleted(t *testing.T) {
	t.Parallel()

	acc := NewAccumulator()
	acc.PushRemoved("abc")
	acc.PushRemoved("de")
	acc.PushAdded("abd")

	delta := acc.Flush()

	// One pair (abc, abd) at distance 1, surplus deletion "de" of length 2.
	assert.Equal(t, 1, delta.Pairs)
	assert.Equal(t, 1, delta.ModifiedChars)
	assert.Equal(t, 0, delta.AddedChars)
	assert.Equal(t, 2, delta.DeletedChars)
	assert.Equal(t, 0, delta.SurplusAdded)
	assert.Equal(t, 1, delta.SurplusDeleted)
}

func TestAccumulatorSurplusAddedOnly(t *testing.T) {
	t.Parallel()

	acc := NewAccumulator()
	acc.PushAdded("xyz")
	acc.PushAdded("w")

	delta := acc.Flush()

	assert.Equal(t, 0, delta.Pairs)
	assert.Equal(t, 0, delta.ModifiedChars)
	assert.Equal(t, 4, delta.AddedChars)
	assert.Equal(t, 0, delta.DeletedChars)
	assert.Equal(t, 2, delta.SurplusAdded)
}

func TestAccumulatorEmptyFlushIsNoOp(t *testing.T) {
	t.Parallel()

	acc := NewAccumulator()

	delta := acc.Flush()

	assert.True(t, delta.IsZero())
	assert.True(t, acc.Empty())
}

func TestAccumulatorClearsAfterFlush(t *testing.T) {
	t.Parallel()

	acc := NewAccumulator()
	acc.PushRemoved("foo")
	acc.PushAdded("bar")

	first := acc.Flush()
	require.Equal(t, 3, first.ModifiedChars)
	require.True(t, acc.Empty())

	second := acc.Flush()
	assert.True(t, second.IsZero())
}

func TestAccumulatorPairingIsPositional(t *testing.T) {
	t.Parallel()

	// Reordered content pairs by position, not by best match: (aaa,bbb) and
	// (bbb,aaa) both cost 3, even though a best-match alignment would be 0.
	acc := NewAccumulator()
	acc.PushRemoved("aaa")
	acc.PushRemoved("bbb")
	acc.PushAdded("bbb")
	acc.PushAdded("aaa")

	delta := acc.Flush()

	assert.Equal(t, 2, delta.Pairs)
	assert.Equal(t, 6, delta.ModifiedChars)
}

func TestAccumulatorCountsRunesNotBytes(t *testing.T) {
	t.Parallel()

	acc := NewAccumulator()
	acc.PushAdded("äöü") // 6 bytes, 3 runes

	delta := acc.Flush()

	assert.Equal(t, 3, delta.AddedChars)
}
