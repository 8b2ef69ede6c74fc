package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/serplens"
)

// Ensure LoggingSERPService implements serplens.SERPService.
var _ serplens.SERPService = (*LoggingSERPService)(nil)

// LoggingSERPService wraps a SERPService with structured logging of
// queries and result counts.
type LoggingSERPService struct {
	next   serplens.SERPService
	logger *slog.Logger
}

// NewLoggingSERPService creates a new LoggingSERPService.
func NewLoggingSERPService(next serplens.SERPService, logger *slog.Logger) *LoggingSERPService {
	return &LoggingSERPService{next: next, logger: logger}
}

// Search delegates to the wrapped service and logs the result.
func (s *LoggingSERPService) Search(ctx context.Context, query string, loc serplens.Locality, n int) ([]serplens.SERPResult, error) {
	begin := time.Now()
	results, err := s.next.Search(ctx, query, loc, n)
	if err != nil {
		s.logger.Error("serp search",
			"query", query,
			"locality", loc.Label(),
			"duration", time.Since(begin),
			"err", err,
		)
		return nil, err
	}
	s.logger.Info("serp search",
		"query", query,
		"locality", loc.Label(),
		"results", len(results),
		"duration", time.Since(begin),
	)
	return results, nil
}
