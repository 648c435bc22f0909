package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	t.Run("direct error", func(t *testing.T) {
		err := Validationf("unknown sort field %q", "DROP TABLE")
		assert.Equal(t, Validation, CodeOf(err))
		assert.Equal(t, `unknown sort field "DROP TABLE"`, MessageOf(err))
	})

	t.Run("wrapped error", func(t *testing.T) {
		err := fmt.Errorf("load history: %w", New(NotFound, "voyage not found"))
		assert.Equal(t, NotFound, CodeOf(err))
		assert.True(t, Is(err, NotFound))
	})

	t.Run("plain error defaults to internal", func(t *testing.T) {
		err := errors.New("boom")
		assert.Equal(t, Internal, CodeOf(err))
		assert.Equal(t, "an internal server error occurred", MessageOf(err))
	})

	t.Run("nil is never a match", func(t *testing.T) {
		assert.False(t, Is(nil, Internal))
	})
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(Unavailable, "prediction service is unavailable", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "[UNAVAILABLE] prediction service is unavailable: connection refused", err.Error())
	assert.Equal(t, "[NOT_FOUND] missing", New(NotFound, "missing").Error())
}
