// Package id generates identifiers for build runs.
//
// Run IDs are UUID v7 values: they sort by creation time, so log lines
// and manifests from successive builds order naturally.
package id
