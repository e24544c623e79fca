package querycache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyHasPrefix(t *testing.T) {
	k := NewKey("notification-audit", "3")
	assert.True(t, k.HasPrefix(NewKey("notification-audit")))
	assert.True(t, k.HasPrefix(k))
	assert.False(t, k.HasPrefix(NewKey("notification")))
	assert.False(t, NewKey("a").HasPrefix(NewKey("a", "b")))
	assert.Equal(t, "notification-audit/3", k.String())
}

func TestFetch_DeduplicatesConcurrentCalls(t *testing.T) {
	c := New(time.Minute)
	var calls int32
	release := make(chan struct{})

	var wg sync.WaitGroup
	results := make([]int, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := Fetch(context.Background(), c, NewKey("ssl-info"), func(ctx context.Context) (int, error) {
				atomic.AddInt32(&calls, 1)
				<-release
				return 7, nil
			})
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}

	// 等所有 goroutine 進入 singleflight
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
	for _, v := range results {
		assert.Equal(t, 7, v)
	}
}

func TestFetch_ServesFromCacheUntilStale(t *testing.T) {
	c := New(10 * time.Second)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	calls := 0
	fn := func(ctx context.Context) (int, error) {
		calls++
		return calls, nil
	}

	v, err := Fetch(context.Background(), c, NewKey("cfg"), fn)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	now = now.Add(5 * time.Second)
	v, _ = Fetch(context.Background(), c, NewKey("cfg"), fn)
	assert.Equal(t, 1, v)

	now = now.Add(6 * time.Second)
	v, _ = Fetch(context.Background(), c, NewKey("cfg"), fn)
	assert.Equal(t, 2, v)
}

func TestFetchWith_StaleTimeOverride(t *testing.T) {
	c := New(time.Second)
	now := time.Now()
	c.now = func() time.Time { return now }

	calls := 0
	fn := func(ctx context.Context) (string, error) {
		calls++
		return "whois", nil
	}
	opts := Options{StaleTime: time.Hour}
	_, _ = FetchWith(context.Background(), c, NewKey("whois", "example.com"), opts, fn)
	now = now.Add(time.Minute)
	_, _ = FetchWith(context.Background(), c, NewKey("whois", "example.com"), opts, fn)
	assert.Equal(t, 1, calls)
}

func TestInvalidate_ByPrefix(t *testing.T) {
	c := New(time.Hour)
	ctx := context.Background()
	for _, k := range []Key{NewKey("audit", "1"), NewKey("audit", "2"), NewKey("config")} {
		_, err := Fetch(ctx, c, k, func(context.Context) (string, error) { return "v", nil })
		require.NoError(t, err)
	}

	c.Invalidate(NewKey("audit"))

	_, ok := c.Peek(NewKey("audit", "1"))
	assert.False(t, ok)
	_, ok = c.Peek(NewKey("audit", "2"))
	assert.False(t, ok)
	_, ok = c.Peek(NewKey("config"))
	assert.True(t, ok)
}

func TestInvalidate_DuringFetchMarksResultStale(t *testing.T) {
	c := New(time.Hour)
	ctx := context.Background()
	started := make(chan struct{})
	release := make(chan struct{})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = Fetch(ctx, c, NewKey("config"), func(context.Context) (int, error) {
			close(started)
			<-release
			return 1, nil
		})
	}()

	<-started
	c.Invalidate(NewKey("config"))
	close(release)
	<-done

	calls := 0
	v, err := Fetch(ctx, c, NewKey("config"), func(context.Context) (int, error) {
		calls++
		return 2, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, v)
}

func TestFetch_ErrorsAreNotCached(t *testing.T) {
	c := New(time.Hour)
	boom := errors.New("boom")
	_, err := Fetch(context.Background(), c, NewKey("k"), func(context.Context) (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)

	v, err := Fetch(context.Background(), c, NewKey("k"), func(context.Context) (int, error) { return 5, nil })
	require.NoError(t, err)
	assert.Equal(t, 5, v)
}

func TestFetch_CallerCancel(t *testing.T) {
	c := New(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Fetch(ctx, c, NewKey("k"), func(context.Context) (int, error) {
		time.Sleep(20 * time.Millisecond)
		return 1, nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestInvalidatePrefix_ReadAfterInvalidateDoesNotJoinOldFetch(t *testing.T) {
	c := New(time.Hour)
	ctx := context.Background()
	key := NewKey("notification-audit", "1", "10")
	started := make(chan struct{})
	release := make(chan struct{})

	done := make(chan struct{})
	go func() {
		defer close(done)
		v, err := Fetch(ctx, c, key, func(context.Context) (string, error) {
			close(started)
			<-release
			return "before-save", nil
		})
		assert.NoError(t, err)
		assert.Equal(t, "before-save", v)
	}()

	<-started
	c.Invalidate(NewKey("notification-audit"))

	v, err := Fetch(ctx, c, key, func(context.Context) (string, error) {
		return "after-save", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "after-save", v)

	close(release)
	<-done

	// 舊請求較晚完成也不會蓋掉新結果
	cached, ok := c.Peek(key)
	require.True(t, ok)
	assert.Equal(t, "after-save", cached)
}
