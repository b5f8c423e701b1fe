package mcp

import (
	"github.com/KnowOneDotNinja/PassManPy-v2/internal/core/ports/driving"
)

// Ports aggregates the driving ports the MCP server reads from.
type Ports struct {
	// Vault provides the groups and credentials.
	Vault driving.VaultService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Vault == nil {
		return ErrMissingVaultService
	}
	return nil
}
