package guard_test

import (
	"errors"
	"testing"

	"fulfillment/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	t.Run("creates_properly_constructed_guard", func(t *testing.T) {
		// When
		g := guard.NewConstructorGuard()

		// Then
		require.NoError(t, g.Validate(errors.New("pallet not constructed")))
		require.NoError(t, g.Validate(nil))
	})
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard
		expectedError := errors.New("lot not constructed")

		// When
		err := g.Validate(expectedError)

		// Then
		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard

		// When
		err := g.Validate(nil)

		// Then
		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

func TestConstructorGuardEmbeddedInValue(t *testing.T) {
	type boxCount struct {
		value int
		guard guard.ConstructorGuard
	}

	errBoxCountNotConstructed := errors.New("box count must be created via newBoxCount")

	newBoxCount := func(v int) (boxCount, error) {
		if v < 0 {
			return boxCount{}, errors.New("box count cannot be negative")
		}
		return boxCount{value: v, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructed_value_passes", func(t *testing.T) {
		bc, err := newBoxCount(12)

		require.NoError(t, err)
		require.NoError(t, bc.guard.Validate(errBoxCountNotConstructed))
		assert.Equal(t, 12, bc.value)
	})

	t.Run("zero_value_fails", func(t *testing.T) {
		var bc boxCount

		assert.Equal(t, errBoxCountNotConstructed, bc.guard.Validate(errBoxCountNotConstructed))
	})

	t.Run("constructor_rejects_negative", func(t *testing.T) {
		_, err := newBoxCount(-1)

		require.Error(t, err)
	})
}
