// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - CredentialStore: The "credentials" document collection
//   - GroupStore: The "groups" document collection
//   - ConfigStore: Application configuration
//
// Every storage backend (memory, sqlite, bolt, mongo, datastore) provides
// both collections over one client.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
