package serplens_test

import (
	"testing"

	"github.com/fwojciec/serplens"
	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	t.Run("requires procedure", func(t *testing.T) {
		t.Parallel()

		cfg := serplens.Config{
			Localities: []serplens.Locality{{City: "Dallas"}},
		}

		err := cfg.Validate()

		assert.Equal(t, serplens.EINVALID, serplens.ErrorCode(err))
	})

	t.Run("requires at least one locality", func(t *testing.T) {
		t.Parallel()

		cfg := serplens.Config{Procedure: "LASIK"}

		err := cfg.Validate()

		assert.Equal(t, serplens.EINVALID, serplens.ErrorCode(err))
	})

	t.Run("requires locality city", func(t *testing.T) {
		t.Parallel()

		cfg := serplens.Config{
			Procedure:  "LASIK",
			Localities: []serplens.Locality{{State: "TX"}},
		}

		err := cfg.Validate()

		assert.Equal(t, serplens.EINVALID, serplens.ErrorCode(err))
	})

	t.Run("valid config passes", func(t *testing.T) {
		t.Parallel()

		cfg := serplens.Config{
			Procedure:  "LASIK",
			Localities: []serplens.Locality{{City: "Dallas"}},
		}

		assert.NoError(t, cfg.Validate())
	})
}

func TestConfigWithDefaults(t *testing.T) {
	t.Parallel()

	t.Run("fills optional fields", func(t *testing.T) {
		t.Parallel()

		cfg := serplens.Config{Procedure: "LASIK"}.WithDefaults()

		assert.Equal(t, serplens.DefaultNumResults, cfg.NumResults)
		assert.Equal(t, serplens.DefaultLocationFolderPatterns, cfg.LocationFolderPatterns)
		assert.Equal(t, serplens.DefaultGeoPageSignals, cfg.GeoPageSignals)
		assert.Equal(t, serplens.DefaultProcedureLocationSignals, cfg.ProcedureLocationSignals)
	})

	t.Run("keeps explicit values", func(t *testing.T) {
		t.Parallel()

		cfg := serplens.Config{
			NumResults:     5,
			GeoPageSignals: []string{"serving the metroplex"},
		}.WithDefaults()

		assert.Equal(t, 5, cfg.NumResults)
		assert.Equal(t, []string{"serving the metroplex"}, cfg.GeoPageSignals)
	})

	t.Run("empty but non-nil signal list disables the detector", func(t *testing.T) {
		t.Parallel()

		cfg := serplens.Config{GeoPageSignals: []string{}}.WithDefaults()

		assert.Empty(t, cfg.GeoPageSignals)
	})
}
