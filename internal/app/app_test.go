package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erjac77/f5-reconciler/internal/config"
	"github.com/erjac77/f5-reconciler/internal/core/domain"
	"github.com/erjac77/f5-reconciler/internal/errors"
)

func TestBuildRequest(t *testing.T) {
	app := &Application{Config: config.DefaultConfig()}

	t.Run("translate table remaps conflicting caller keys", func(t *testing.T) {
		req, err := app.buildRequest(config.ResourceConfig{
			Kind: "ltm/virtual",
			Params: map[string]any{
				"name":      "vs1",
				"partition": "Common",
				"vs_state":  "enabled",
			},
			Translate: map[string]any{"vs_state": "state"},
		})
		require.NoError(t, err)
		assert.Equal(t, "vs1", req.Identity.Name)
		assert.Equal(t, "Common", req.Identity.Partition)
		assert.Equal(t, domain.StatePresent, req.Desired.Target)
		assert.Equal(t, map[string]any{"state": "enabled"}, req.Desired.Fields)
	})

	t.Run("non-string translate value is a config error", func(t *testing.T) {
		_, err := app.buildRequest(config.ResourceConfig{
			Kind:      "ltm/virtual",
			Params:    map[string]any{"name": "vs1"},
			Translate: map[string]any{"vs_state": 1},
		})
		require.Error(t, err)
		assert.Equal(t, errors.CodeConfigValidation, errors.GetCode(err))
	})
}
