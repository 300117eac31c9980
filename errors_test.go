package bookhound_test

import (
	"errors"
	"testing"

	"bookhound"

	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := bookhound.Errorf(bookhound.ENOTFOUND, "service %q not registered", "test")

	assert.Equal(t, bookhound.ENOTFOUND, bookhound.ErrorCode(err))
	assert.Equal(t, "service \"test\" not registered", bookhound.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, bookhound.ErrorCode(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, bookhound.EINTERNAL, bookhound.ErrorCode(errors.New("boom")))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, bookhound.ErrorMessage(nil))
}
