package bookhound_test

import (
	"testing"

	"bookhound"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLibrary_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		lib := &bookhound.Library{ID: "seoul-songpa:ME", Name: "송파글마루도서관"}
		require.NoError(t, lib.Validate())
	})

	t.Run("missing prefix", func(t *testing.T) {
		t.Parallel()

		lib := &bookhound.Library{ID: "ME", Name: "송파글마루도서관"}
		err := lib.Validate()
		require.Error(t, err)
		assert.Equal(t, bookhound.EINVALID, bookhound.ErrorCode(err))
	})

	t.Run("missing name", func(t *testing.T) {
		t.Parallel()

		lib := &bookhound.Library{ID: "seoul-songpa:ME"}
		err := lib.Validate()
		require.Error(t, err)
		assert.Equal(t, bookhound.EINVALID, bookhound.ErrorCode(err))
	})
}

func TestServiceName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "seoul-songpa", bookhound.ServiceName("seoul-songpa:ME"))
	assert.Equal(t, "gdlib", bookhound.ServiceName("gdlib:MA:extra"))
	assert.Empty(t, bookhound.ServiceName("no-colon"))
}

func TestHoldingStatus_Validate(t *testing.T) {
	t.Parallel()

	t.Run("exactly one tag", func(t *testing.T) {
		t.Parallel()

		s := &bookhound.HoldingStatus{Available: &bookhound.AvailableStatus{Detail: "비치중"}}
		require.NoError(t, s.Validate())
	})

	t.Run("no tag", func(t *testing.T) {
		t.Parallel()

		s := &bookhound.HoldingStatus{}
		require.Error(t, s.Validate())
	})

	t.Run("two tags", func(t *testing.T) {
		t.Parallel()

		s := &bookhound.HoldingStatus{
			Available: &bookhound.AvailableStatus{},
			OnLoan:    &bookhound.OnLoanStatus{},
		}
		require.Error(t, s.Validate())
	})
}
