package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KnowOneDotNinja/PassManPy-v2/internal/adapters/driven/storage/memory"
	"github.com/KnowOneDotNinja/PassManPy-v2/internal/core/domain"
	"github.com/KnowOneDotNinja/PassManPy-v2/internal/core/ports/driving"
	"github.com/KnowOneDotNinja/PassManPy-v2/internal/core/services"
)

// newSeededServer returns a server over a memory vault holding the
// demonstration data.
func newSeededServer(t *testing.T) *Server {
	t.Helper()
	gw := services.NewGateway(memory.NewCredentialStore(), memory.NewGroupStore())
	vault := services.NewVault(gw)
	require.NoError(t, vault.Reset(context.Background()))

	server, err := NewServer(&Ports{Vault: vault})
	require.NoError(t, err)
	return server
}

// failingVault fails every read it implements.
type failingVault struct {
	driving.VaultService
	err error
}

func (f *failingVault) ListGroups(context.Context) ([]*domain.Group, error) {
	return nil, f.err
}

func (f *failingVault) GetGroup(context.Context, string) (*domain.Group, error) {
	return nil, f.err
}

func (f *failingVault) ListCredentials(context.Context) ([]*domain.Credential, error) {
	return nil, f.err
}
