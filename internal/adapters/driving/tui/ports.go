// Package tui provides an interactive terminal browser for the vault.
// It is a read-only driving adapter: edits go through the menu or the web forms.
package tui

import (
	"github.com/KnowOneDotNinja/PassManPy-v2/internal/core/ports/driving"
)

// Ports aggregates the driving ports the TUI needs.
type Ports struct {
	// Vault serves groups and credentials.
	Vault driving.VaultService
}

// NewPorts creates a Ports aggregate around the vault.
func NewPorts(vault driving.VaultService) *Ports {
	return &Ports{Vault: vault}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Vault == nil {
		return ErrMissingVaultService
	}
	return nil
}
