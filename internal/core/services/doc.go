// Package services implements the migration pipeline: normalising raw
// source posts, converting body content, publishing assets and entries,
// and orchestrating the stages in order. Services depend only on the
// domain package and the driven ports; all I/O goes through adapters.
package services
