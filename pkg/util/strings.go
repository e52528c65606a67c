package util

import (
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxLogBodySize is the default maximum content size for logging (10KB).
const MaxLogBodySize = 10 * 1024

// TruncateBody truncates a string to maxSize bytes, appending "...(truncated)" if truncated.
// If maxSize <= 0, uses MaxLogBodySize.
func TruncateBody(data string, maxSize int) string {
	if maxSize <= 0 {
		maxSize = MaxLogBodySize
	}
	if len(data) > maxSize {
		return data[:maxSize] + "...(truncated)"
	}
	return data
}

// SafeFilePath cleans a relative path and reports whether it stays
// inside the current directory. Absolute paths, empty paths and paths
// still containing ".." after cleaning are rejected.
func SafeFilePath(p string) (string, bool) {
	if p == "" {
		return "", false
	}
	cleaned := filepath.Clean(p)
	if filepath.IsAbs(cleaned) || strings.Contains(cleaned, "..") {
		return "", false
	}
	return cleaned, true
}

var (
	lower      = cases.Lower(language.Und)
	stripMarks = runes.Remove(runes.In(unicode.Mn))
)

// Slug lowercases s, strips accents and replaces every run of
// characters other than letters and digits with a single dash. Slashes
// are kept so a slug may name a nested path ("fr/lyon/acme").
func Slug(s string) string {
	t := transform.Chain(norm.NFD, stripMarks, norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = lower.String(folded)

	var sb strings.Builder
	dash := false
	for _, r := range folded {
		switch {
		case r == '/':
			if sb.Len() > 0 && !strings.HasSuffix(sb.String(), "/") {
				sb.WriteRune('/')
			}
			dash = false
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if dash && sb.Len() > 0 && !strings.HasSuffix(sb.String(), "/") {
				sb.WriteRune('-')
			}
			sb.WriteRune(r)
			dash = false
		default:
			dash = true
		}
	}
	return strings.TrimSuffix(sb.String(), "/")
}
