package main_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fwojciec/serplens"
	main "github.com/fwojciec/serplens/cmd/serplens"
	"github.com/fwojciec/serplens/mock"
)

func TestExportCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("writes the workbook to the given path", func(t *testing.T) {
		t.Parallel()

		runs := &mock.RunService{
			FindRunByIDFn: func(_ context.Context, id string) (*serplens.Run, error) {
				return &serplens.Run{ID: id, Procedure: "LASIK"}, nil
			},
		}

		var wrotePath string
		reports := &mock.ReportWriter{
			WriteFn: func(_ *serplens.Run, path string) error {
				wrotePath = path
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  stderr,
			Runs:    runs,
			Reports: reports,
		}

		cmd := &main.ExportCmd{ID: "run-1", Output: "report.xlsx"}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "report.xlsx", wrotePath)
		assert.Contains(t, stdout.String(), "Wrote report.xlsx")
	})

	t.Run("derives the filename from the run when no path is given", func(t *testing.T) {
		t.Parallel()

		runs := &mock.RunService{
			FindRunByIDFn: func(_ context.Context, id string) (*serplens.Run, error) {
				return &serplens.Run{
					ID:        id,
					Procedure: "LASIK",
					CreatedAt: time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
				}, nil
			},
		}

		var wrotePath string
		reports := &mock.ReportWriter{
			WriteFn: func(_ *serplens.Run, path string) error {
				wrotePath = path
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  stderr,
			Runs:    runs,
			Reports: reports,
		}

		cmd := &main.ExportCmd{ID: "run-1"}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "LASIK_competitive_analysis_2026-01-15_run-1.xlsx", wrotePath)
	})

	t.Run("returns error when run not found", func(t *testing.T) {
		t.Parallel()

		runs := &mock.RunService{
			FindRunByIDFn: func(_ context.Context, _ string) (*serplens.Run, error) {
				return nil, serplens.Errorf(serplens.ENOTFOUND, "run not found")
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			Runs:   runs,
		}

		cmd := &main.ExportCmd{ID: "missing"}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "not found")
	})

	t.Run("returns error when the writer fails", func(t *testing.T) {
		t.Parallel()

		runs := &mock.RunService{
			FindRunByIDFn: func(_ context.Context, id string) (*serplens.Run, error) {
				return &serplens.Run{ID: id, Procedure: "LASIK"}, nil
			},
		}

		reports := &mock.ReportWriter{
			WriteFn: func(_ *serplens.Run, _ string) error {
				return serplens.Errorf(serplens.EINTERNAL, "disk full")
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  stderr,
			Runs:    runs,
			Reports: reports,
		}

		cmd := &main.ExportCmd{ID: "run-1", Output: "report.xlsx"}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}
