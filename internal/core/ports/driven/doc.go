// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - ProjectSearcher: Answers a free-text query with project summaries
//   - ProjectDetailsFetcher: Returns the full attributes of one project
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
//   - ProjectCatalog: Local project storage. Only needed in local backend
//     mode, for `estatemap import` and for `estatemap serve`.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or driving package
package driven
