package keystore_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bookhive/library-service/pkg/keystore"
)

func TestMemoryStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := keystore.NewMemoryStore()

	require.NoError(t, st.Set(ctx, "otp:user@example.com", "482913", time.Minute))

	v, err := st.Get(ctx, "otp:user@example.com")
	require.NoError(t, err)
	require.Equal(t, "482913", v)

	require.NoError(t, st.Del(ctx, "otp:user@example.com"))
	_, err = st.Get(ctx, "otp:user@example.com")
	require.ErrorIs(t, err, keystore.ErrNotFound)
}

func TestMemoryStore_ExpiryOnRead(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := keystore.NewMemoryStore()

	require.NoError(t, st.Set(ctx, "otp:late@example.com", "111111", time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	_, err := st.Get(ctx, "otp:late@example.com")
	require.ErrorIs(t, err, keystore.ErrNotFound)
}
