//go:build unit

package errs_test

import (
	"errors"
	"testing"

	"hotel-booking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errSentinel = errs.New("sentinel")

func TestMark(t *testing.T) {
	t.Run("marked error matches both sentinel and cause", func(t *testing.T) {
		cause := errors.New("connection reset")
		marked := errs.Mark(cause, errSentinel)

		assert.ErrorIs(t, marked, errSentinel)
		assert.ErrorIs(t, marked, cause)
		assert.Contains(t, marked.Error(), "connection reset")
	})

	t.Run("nil error returns the mark itself", func(t *testing.T) {
		assert.Equal(t, errSentinel, errs.Mark(nil, errSentinel))
	})
}

func TestWrap(t *testing.T) {
	assert.NoError(t, errs.Wrap(nil, "ignored"))

	cause := errors.New("boom")
	wrapped := errs.Wrapf(cause, "booking %d", 7)
	require.Error(t, wrapped)
	assert.Equal(t, "booking 7: boom", wrapped.Error())
	assert.True(t, errs.Is(wrapped, cause))
}

func TestExtractStackLines(t *testing.T) {
	assert.Nil(t, errs.ExtractStackLines(nil, 3))

	lines := errs.ExtractStackLines(errs.New("with stack"), 2)
	assert.LessOrEqual(t, len(lines), 2)
	assert.Equal(t, "with stack", lines[0])
}
