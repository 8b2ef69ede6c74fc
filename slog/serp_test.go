package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fwojciec/serplens"
	"github.com/fwojciec/serplens/mock"
	serpslog "github.com/fwojciec/serplens/slog"
)

func TestLoggingSERPService_Search(t *testing.T) {
	t.Parallel()

	dallas := serplens.Locality{City: "Dallas"}

	t.Run("logs query and result count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.SERPService{
			SearchFn: func(ctx context.Context, query string, loc serplens.Locality, n int) ([]serplens.SERPResult, error) {
				return []serplens.SERPResult{{Position: 1}, {Position: 2}}, nil
			},
		}

		svc := serpslog.NewLoggingSERPService(inner, logger)
		results, err := svc.Search(context.Background(), "LASIK Dallas", dallas, 3)

		require.NoError(t, err)
		assert.Len(t, results, 2)
		output := buf.String()
		assert.Contains(t, output, "serp search")
		assert.Contains(t, output, `query="LASIK Dallas"`)
		assert.Contains(t, output, "locality=Dallas")
		assert.Contains(t, output, "results=2")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.SERPService{
			SearchFn: func(ctx context.Context, query string, loc serplens.Locality, n int) ([]serplens.SERPResult, error) {
				return nil, serplens.Errorf(serplens.EUNAVAILABLE, "quota exceeded")
			},
		}

		svc := serpslog.NewLoggingSERPService(inner, logger)
		_, err := svc.Search(context.Background(), "LASIK Dallas", dallas, 3)

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "level=ERROR")
		assert.Contains(t, output, "quota exceeded")
	})
}
