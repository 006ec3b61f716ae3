//go:build unit

package errs_test

import (
	"errors"
	"testing"

	"resource-booking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

var errSentinel = errs.New("sentinel")

func TestMark(t *testing.T) {
	t.Run("marked error matches both the cause and the mark", func(t *testing.T) {
		cause := errors.New("connection refused")
		marked := errs.Mark(cause, errSentinel)

		assert.True(t, errs.Is(marked, errSentinel))
		assert.True(t, errs.Is(marked, cause))
		assert.Contains(t, marked.Error(), "connection refused")
	})

	t.Run("nil error returns the mark itself", func(t *testing.T) {
		assert.Equal(t, errSentinel, errs.Mark(nil, errSentinel))
	})
}

func TestWrap(t *testing.T) {
	assert.Nil(t, errs.Wrap(nil, "ignored"))

	wrapped := errs.Wrapf(errSentinel, "loading %s", "resource")
	assert.True(t, errors.Is(wrapped, errSentinel))
	assert.Equal(t, "loading resource: sentinel", wrapped.Error())
}

func TestExtractStackLines(t *testing.T) {
	assert.Nil(t, errs.ExtractStackLines(nil, 3))

	lines := errs.ExtractStackLines(errs.Wrap(errSentinel, "outer"), 2)
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "outer")
}
