package survey

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvalidField(t *testing.T) {
	err := InvalidField("shutter.flight_speed", "must be > 0, got %g", 0.0)

	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.NotErrorIs(t, err, ErrIO)

	var fe *FieldError
	if assert.True(t, errors.As(err, &fe)) {
		assert.Equal(t, "shutter.flight_speed", fe.Field)
		assert.Equal(t, "must be > 0, got 0", fe.Reason)
	}
	assert.Contains(t, err.Error(), "shutter.flight_speed")
}

func TestIOError(t *testing.T) {
	err := IOError("write table", os.ErrPermission)

	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, os.ErrPermission)
	assert.Contains(t, err.Error(), "write table")
}
