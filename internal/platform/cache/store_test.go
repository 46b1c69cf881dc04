package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStore_GetOrLoad_SharesConcurrentLoads(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (int, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return 42, nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := Load(context.Background(), store, "standings:l1", loader)
			if err != nil {
				errCh <- err
				return
			}
			if v != 42 {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_EntriesExpireAfterTTL(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	store := NewStore(time.Minute)
	store.now = func() time.Time { return now }

	store.Set(context.Background(), "k", "v")
	_, ok := store.Get(context.Background(), "k")
	require.True(t, ok)

	now = now.Add(time.Minute)
	_, ok = store.Get(context.Background(), "k")
	require.False(t, ok)
	require.Zero(t, store.Len())
}

func TestStore_DeletePrefix(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(0)
	store.Set(ctx, "standings:l1", 1)
	store.Set(ctx, "standings:l10", 2)
	store.Set(ctx, "games:all", 3)

	require.Equal(t, 2, store.DeletePrefix(ctx, "standings:l1"))
	require.Equal(t, 1, store.Len())
	require.Zero(t, store.DeletePrefix(ctx, ""))
}

func TestStore_GetOrLoad_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	boom := errors.New("boom")
	var calls atomic.Int32
	loader := func(context.Context) (any, error) {
		calls.Add(1)
		return nil, boom
	}

	for i := 0; i < 2; i++ {
		_, err := store.GetOrLoad(context.Background(), "k", loader)
		require.ErrorIs(t, err, boom)
	}
	require.EqualValues(t, 2, calls.Load())
}

func TestLoad_ReloadsOnTypeMismatch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(time.Minute)
	store.Set(ctx, "k", "not an int")

	got, err := Load(ctx, store, "k", func(context.Context) (int, error) { return 7, nil })
	require.NoError(t, err)
	require.Equal(t, 7, got)
}

var errUnexpectedValue = errors.New("unexpected loaded value")

func TestStore_DeleteDuringLoadDropsStaleResult(t *testing.T) {
	t.Parallel()

	for name, invalidate := range map[string]func(*Store){
		"key":    func(s *Store) { s.Delete(context.Background(), "standings:l1") },
		"prefix": func(s *Store) { s.DeletePrefix(context.Background(), "standings:") },
	} {
		t.Run(name, func(t *testing.T) {
			store := NewStore(time.Minute)
			entered := make(chan struct{})
			release := make(chan struct{})

			done := make(chan int, 1)
			go func() {
				v, _ := Load(context.Background(), store, "standings:l1", func(context.Context) (int, error) {
					close(entered)
					<-release
					return 1, nil
				})
				done <- v
			}()

			<-entered
			invalidate(store)
			close(release)
			require.Equal(t, 1, <-done, "the in-flight caller still gets its own result")

			_, cached := store.Get(context.Background(), "standings:l1")
			require.False(t, cached, "a load that raced a delete must not be cached")

			v, err := Load(context.Background(), store, "standings:l1", func(context.Context) (int, error) {
				return 2, nil
			})
			require.NoError(t, err)
			require.Equal(t, 2, v)
		})
	}
}
