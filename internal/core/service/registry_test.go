package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erjac77/f5-reconciler/internal/core/domain"
	"github.com/erjac77/f5-reconciler/internal/core/service"
	"github.com/erjac77/f5-reconciler/internal/errors"
)

func TestBindingRegistry(t *testing.T) {
	t.Run("round-trips a named binding with its spec", func(t *testing.T) {
		registry := service.NewBindingRegistry()
		binding := &mockBinding{kind: kindPool}
		spec := domain.ResourceSpec{Kind: kindPool, RequiredForCreate: []string{"monitor"}}

		require.NoError(t, registry.RegisterNamed(binding, spec))

		got, gotSpec, err := registry.Named(kindPool)
		require.NoError(t, err)
		assert.Same(t, binding, got)
		assert.Equal(t, spec.RequiredForCreate, gotSpec.RequiredForCreate)
	})

	t.Run("rejects nil and empty-kind bindings", func(t *testing.T) {
		registry := service.NewBindingRegistry()
		assert.Error(t, registry.RegisterNamed(nil, domain.ResourceSpec{}))
		assert.Error(t, registry.RegisterNamed(&mockBinding{}, domain.ResourceSpec{}))
		assert.Error(t, registry.RegisterSingleton(nil, domain.ResourceSpec{}))
	})

	t.Run("rejects duplicate registration across both maps", func(t *testing.T) {
		registry := service.NewBindingRegistry()
		require.NoError(t, registry.RegisterNamed(&mockBinding{kind: "ltm/node"}, domain.ResourceSpec{}))
		assert.Error(t, registry.RegisterNamed(&mockBinding{kind: "ltm/node"}, domain.ResourceSpec{}))
		assert.Error(t, registry.RegisterSingleton(&mockSingleton{kind: "ltm/node"}, domain.ResourceSpec{}))
	})

	t.Run("unknown kind is a configuration error", func(t *testing.T) {
		registry := service.NewBindingRegistry()

		_, _, err := registry.Named("ltm/virtual")
		require.Error(t, err)
		assert.Equal(t, errors.CodeConfigValidation, errors.GetCode(err))

		_, _, err = registry.Singleton("sys/ntp")
		require.Error(t, err)
		assert.Equal(t, errors.CodeConfigValidation, errors.GetCode(err))
	})

	t.Run("named lookup of a singleton kind is unsupported", func(t *testing.T) {
		registry := service.NewBindingRegistry()
		require.NoError(t, registry.RegisterSingleton(&mockSingleton{kind: "sys/dns"}, domain.ResourceSpec{}))

		_, _, err := registry.Named("sys/dns")
		require.Error(t, err)
		assert.Equal(t, errors.CodeUnsupportedOperation, errors.GetCode(err))
	})
}
