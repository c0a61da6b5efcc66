package crypto

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeriveKeyDeterministic(t *testing.T) {
	first, err := DeriveKey("operator-secret", "theme-cookie", 32)
	require.NoError(t, err)
	require.Len(t, first, 32)

	second, err := DeriveKey("operator-secret", "theme-cookie", 32)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestDeriveKeySeparatesPurposes(t *testing.T) {
	theme, err := DeriveKey("operator-secret", "theme-cookie", 32)
	require.NoError(t, err)

	other, err := DeriveKey("operator-secret", "something-else", 32)
	require.NoError(t, err)
	require.NotEqual(t, theme, other)
}

func TestDeriveKeyValidatesInput(t *testing.T) {
	_, err := DeriveKey("   ", "theme-cookie", 32)
	require.Error(t, err)

	_, err = DeriveKey("secret", "", 32)
	require.Error(t, err)

	_, err = DeriveKey("secret", "theme-cookie", 20)
	require.Error(t, err)
}
