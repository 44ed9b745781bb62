package ids

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewULIDIsValid(t *testing.T) {
	value, err := NewULID()
	require.NoError(t, err)
	require.Len(t, value, 26)
	require.NoError(t, ValidateULID(value))
}

func TestNewULIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		value, err := NewULID()
		require.NoError(t, err)
		require.False(t, seen[value], "duplicate ULID %s", value)
		seen[value] = true
	}
}

func TestValidateULID(t *testing.T) {
	require.NoError(t, ValidateULID("01HQZX3Y4K6F7G8H9J0K1M2N3P"))
	require.NoError(t, ValidateULID("01hqzx3y4k6f7g8h9j0k1m2n3p"))
	require.NoError(t, ValidateULID("  01HQZX3Y4K6F7G8H9J0K1M2N3P  "))

	for _, value := range []string{"", "abc", "01HQZX3Y4K6F7G8H9J0K1M2N3", "01HQZX3Y4K6F7G8H9J0K1M2N3PX", "ILOU-not-crockford-base32!"} {
		require.ErrorIs(t, ValidateULID(value), ErrInvalidULID, "value %q", value)
	}
}
