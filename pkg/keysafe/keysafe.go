// Copyright (c) 2026 Eternize. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package keysafe sanitizes arbitrary Unicode file names into ASCII object
// storage keys.
//
// # Usage
//
// Uploaded media files arrive with user-provided names ("Vídeo da Vovó.mp4").
// Object keys must be stable, URL-safe and free of path tricks, so the base
// name is normalized, accents are stripped, and the extension is preserved.
package keysafe

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// nonAlphanumeric matches any sequence of non-alphanumeric, non-hyphen characters.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9-]+`)
	// multiHyphen collapses multiple consecutive hyphens into one.
	multiHyphen = regexp.MustCompile(`-{2,}`)
)

// FileName converts an arbitrary file name into a safe object key segment,
// keeping a lowercased extension when one is present.
//
// # Transformation Pipeline
//
// 1. Splits the extension from the base name.
// 2. Normalizes the base to NFD (decomposes accented chars: é → e + combining acute).
// 3. Removes combining marks (accents) and lowercases.
// 4. Replaces non-alphanumeric characters with hyphens, collapses and trims them.
func FileName(name string) string {
	base := filepath.Base(name)
	ext := strings.ToLower(filepath.Ext(base))
	base = strings.TrimSuffix(base, filepath.Ext(base))

	safe := sanitize(base)
	if safe == "" {
		safe = "file"
	}

	if ext != "" && sanitize(ext) != "" {
		return safe + "." + sanitize(ext)
	}
	return safe
}

// sanitize folds a Unicode string into a lowercase ASCII hyphenated token.
func sanitize(s string) string {
	// 1. Normalize and remove accents
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	result, _, _ := transform.String(t, s)

	// 2. Lowercase
	result = strings.ToLower(result)

	// 3. Replace whitespace and special chars with hyphens
	result = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '-'
	}, result)

	// 4. Clean up hyphenation
	result = nonAlphanumeric.ReplaceAllString(result, "-")
	result = multiHyphen.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")

	return result
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
