// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - SourceClient: fetches raw records from the WordPress REST API
//   - Destination: creates and publishes assets and entries in Contentful
//
// # Optional Interfaces
//
//   - RunLedger: persists per-run results for post-run inspection.
//     When nil, nothing is recorded and the run proceeds normally.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: any adapter or connector package
package driven
