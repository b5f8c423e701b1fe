// Package domain defines the core business entities for passman.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Credential: One stored login, optionally carrying two-factor metadata
//   - Group: A named, security-levelled collection of credential references
//   - CredentialDocument, GroupDocument: The persisted shapes of both
//   - Snapshot: Everything loaded from the store at once
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
