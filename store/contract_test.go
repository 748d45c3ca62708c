package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// runStoreContract checks the behaviour every backend must share.
func runStoreContract(t *testing.T, s Store) {
	t.Helper()

	_, found, err := s.Get("absent")
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, s.Set("retro_accessory_cart_v1", []byte(`[{"id":"a1"}]`)))
	data, found, err := s.Get("retro_accessory_cart_v1")
	require.NoError(t, err)
	require.True(t, found)
	require.JSONEq(t, `[{"id":"a1"}]`, string(data))

	// overwrite
	require.NoError(t, s.Set("retro_accessory_cart_v1", []byte(`[]`)))
	data, _, err = s.Get("retro_accessory_cart_v1")
	require.NoError(t, err)
	require.Equal(t, "[]", string(data))

	// keys are independent
	require.NoError(t, s.Set("retro_accessory_auth_v1", []byte(`{}`)))
	require.NoError(t, s.Delete("retro_accessory_auth_v1"))
	_, found, err = s.Get("retro_accessory_auth_v1")
	require.NoError(t, err)
	require.False(t, found)
	_, found, err = s.Get("retro_accessory_cart_v1")
	require.NoError(t, err)
	require.True(t, found)

	require.NoError(t, s.Delete("never-set"))
}
