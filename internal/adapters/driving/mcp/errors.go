// Package mcp exposes the vault to AI assistants over the Model Context
// Protocol. Every tool and resource is read-only and never returns a
// password.
package mcp

import "errors"

// ErrMissingVaultService is returned when the vault service is not provided.
var ErrMissingVaultService = errors.New("mcp: vault service is required")
