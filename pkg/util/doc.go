// Package util provides file helpers for writing rendered pages:
//
//   - SafeFilePath: reject paths that escape the output directory
//   - Slug: turn rendered names into URL- and file-safe slugs
//   - WriteFileAtomic: write via temp file and rename
//   - TruncateBody: cap rendered content for debug logging
package util
