package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KnowOneDotNinja/PassManPy-v2/internal/core/domain"
	"github.com/KnowOneDotNinja/PassManPy-v2/internal/core/ports/driving"
)

func TestSetupServices_BuildsVaultOnlyWhenNeeded(t *testing.T) {
	env := setupTestServices(t)
	vaultService = nil

	var built, closed int
	var gotBackend domain.StoreBackend
	Configure(&Wiring{
		Vault: func(_ context.Context, s *domain.AppSettings) (driving.VaultService, func() error, error) {
			built++
			gotBackend = s.Store.Backend
			return env.vault, func() error { closed++; return nil }, nil
		},
	})

	_, err := env.run("", "version")
	require.NoError(t, err)
	assert.Zero(t, built, "version does not open the store")

	out, err := env.run("", "group", "list", "--backend", "memory")
	require.NoError(t, err)
	assert.Contains(t, out, "Financial")
	assert.Equal(t, 1, built)
	assert.Equal(t, 1, closed)
	assert.Equal(t, domain.BackendMemory, gotBackend)
}

func TestSetupServices_WiringErrors(t *testing.T) {
	env := setupTestServices(t)
	vaultService = nil
	Configure(&Wiring{
		Vault: func(context.Context, *domain.AppSettings) (driving.VaultService, func() error, error) {
			return nil, nil, errors.New("dial failed")
		},
	})

	_, err := env.run("", "group", "list")

	assert.EqualError(t, err, "dial failed")
}

func TestSetupServices_SettingsFromWiring(t *testing.T) {
	env := setupTestServices(t)
	settingsService = nil

	var opts GlobalOptions
	Configure(&Wiring{
		Settings: func(o GlobalOptions) (driving.SettingsService, error) {
			opts = o
			return env.settings, nil
		},
	})

	_, err := env.run("", "settings", "--config", "/tmp/passman-test")

	require.NoError(t, err)
	assert.Equal(t, "/tmp/passman-test", opts.ConfigDir)
	assert.Equal(t, env.settings, settingsService)
}

func TestRequireVault(t *testing.T) {
	setupTestServices(t)

	v, err := requireVault()
	require.NoError(t, err)
	assert.NotNil(t, v)

	vaultService = nil
	_, err = requireVault()
	assert.Error(t, err)
}

func TestSetVersion(t *testing.T) {
	prev := version
	t.Cleanup(func() { version = prev })

	SetVersion("1.2.3")
	assert.Equal(t, "1.2.3", version)
}
