package crawl_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fwojciec/serplens"
	"github.com/fwojciec/serplens/crawl"
)

func TestFetchWithRetryDelays(t *testing.T) {
	t.Parallel()

	t.Run("returns immediately on success", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(ctx context.Context, url string) (string, error) {
			calls++
			return "html", nil
		}

		html, err := crawl.FetchWithRetryDelays(context.Background(), "https://a.com", fetch, nil, fastDelays())

		require.NoError(t, err)
		assert.Equal(t, "html", html)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries until a fetch succeeds", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(ctx context.Context, url string) (string, error) {
			calls++
			if calls < 3 {
				return "", serplens.Errorf(serplens.EUNAVAILABLE, "transient")
			}
			return "html", nil
		}
		delays := []time.Duration{time.Millisecond, time.Millisecond}

		html, err := crawl.FetchWithRetryDelays(context.Background(), "https://a.com", fetch, nil, delays)

		require.NoError(t, err)
		assert.Equal(t, "html", html)
		assert.Equal(t, 3, calls)
	})

	t.Run("returns the last error after exhausting retries", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(ctx context.Context, url string) (string, error) {
			calls++
			return "", serplens.Errorf(serplens.EUNAVAILABLE, "attempt %d", calls)
		}

		_, err := crawl.FetchWithRetryDelays(context.Background(), "https://a.com", fetch, nil, fastDelays())

		require.Error(t, err)
		assert.Equal(t, "attempt 2", serplens.ErrorMessage(err))
		assert.Equal(t, 2, calls)
	})

	t.Run("stops on context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		fetch := func(ctx context.Context, url string) (string, error) {
			cancel()
			return "", serplens.Errorf(serplens.EUNAVAILABLE, "transient")
		}

		_, err := crawl.FetchWithRetryDelays(ctx, "https://a.com", fetch, nil, crawl.DefaultRetryDelays())

		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("logs each retry", func(t *testing.T) {
		t.Parallel()

		var logged int
		logger := func(format string, args ...any) { logged++ }
		fetch := func(ctx context.Context, url string) (string, error) {
			return "", serplens.Errorf(serplens.EUNAVAILABLE, "transient")
		}
		delays := []time.Duration{time.Millisecond, time.Millisecond}

		_, err := crawl.FetchWithRetryDelays(context.Background(), "https://a.com", fetch, logger, delays)

		require.Error(t, err)
		assert.Equal(t, 2, logged)
	})
}
