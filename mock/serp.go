package mock

import (
	"context"

	"github.com/fwojciec/serplens"
)

var _ serplens.SERPService = (*SERPService)(nil)

// SERPService is a mock implementation of serplens.SERPService.
type SERPService struct {
	SearchFn func(ctx context.Context, query string, loc serplens.Locality, n int) ([]serplens.SERPResult, error)
}

func (s *SERPService) Search(ctx context.Context, query string, loc serplens.Locality, n int) ([]serplens.SERPResult, error) {
	return s.SearchFn(ctx, query, loc, n)
}
