package store_test

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/alnvdl/wcf-truco/store"
	"github.com/alnvdl/wcf-truco/store/storetest"
)

func TestMemory(t *testing.T) {
	storetest.Run(t, store.NewMemory())
}

func TestMemory_ValuesAreCopied(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()

	v := []byte("abc")
	require.NoError(t, s.Put(ctx, "k", v))
	v[0] = 'X'

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "abc", string(got))
}

func TestMemory_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := store.NewMemory().Update(ctx, []string{"k"}, func(cur map[string][]byte) (map[string][]byte, error) {
		called = true
		return nil, nil
	})
	require.ErrorIs(t, err, context.Canceled)
	require.False(t, called)
}

// Set TRUCO_TEST_REDIS_URL (e.g. redis://localhost:6379/15) to run.
func TestRedis(t *testing.T) {
	url := os.Getenv("TRUCO_TEST_REDIS_URL")
	if url == "" {
		t.Skip("TRUCO_TEST_REDIS_URL not set")
	}

	// a fresh prefix per run keeps the database usable for other data
	prefix := "truco-test:" + uuid.NewString() + ":"
	s, err := store.NewRedis(context.Background(), url, prefix, 20)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	storetest.Run(t, s)
}

func TestNewRedis_BadURL(t *testing.T) {
	_, err := store.NewRedis(context.Background(), "not a url", "", 0)
	require.Error(t, err)
}
