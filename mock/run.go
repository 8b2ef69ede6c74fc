package mock

import (
	"context"

	"github.com/fwojciec/serplens"
)

var _ serplens.RunService = (*RunService)(nil)

// RunService is a mock implementation of serplens.RunService.
type RunService struct {
	CreateRunFn   func(ctx context.Context, run *serplens.Run) error
	FindRunByIDFn func(ctx context.Context, id string) (*serplens.Run, error)
	FindRunsFn    func(ctx context.Context, filter serplens.RunFilter) ([]*serplens.Run, error)
	DeleteRunFn   func(ctx context.Context, id string) error
}

func (s *RunService) CreateRun(ctx context.Context, run *serplens.Run) error {
	return s.CreateRunFn(ctx, run)
}

func (s *RunService) FindRunByID(ctx context.Context, id string) (*serplens.Run, error) {
	return s.FindRunByIDFn(ctx, id)
}

func (s *RunService) FindRuns(ctx context.Context, filter serplens.RunFilter) ([]*serplens.Run, error) {
	return s.FindRunsFn(ctx, filter)
}

func (s *RunService) DeleteRun(ctx context.Context, id string) error {
	return s.DeleteRunFn(ctx, id)
}

var _ serplens.ReportWriter = (*ReportWriter)(nil)

// ReportWriter is a mock implementation of serplens.ReportWriter.
type ReportWriter struct {
	WriteFn func(run *serplens.Run, path string) error
}

func (w *ReportWriter) Write(run *serplens.Run, path string) error {
	return w.WriteFn(run, path)
}
