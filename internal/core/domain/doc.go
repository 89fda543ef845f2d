// Package domain contains the core value types of the migration pipeline.
//
// The types here are plain data: raw records as fetched from the WordPress
// REST API, the normalised post representation that every later stage
// consumes, and the asset/content structures handed to the Contentful
// adapter. Domain types carry no behaviour beyond small derivations
// (file names, payload shapes) and never perform I/O.
//
// Import rules:
//   - Can Import: standard library only
//   - Cannot Import: any service, adapter, or connector package
package domain
