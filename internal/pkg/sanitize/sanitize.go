// Package sanitize derives storage-safe path components from untrusted input.
//
// Both the event identifier and the uploaded filename are attacker-controllable
// and feed directly into object storage keys, so everything outside a narrow
// allow-set is stripped or rewritten. Sanitization never fails: unusual input
// degrades to an empty or generic value instead of rejecting the submission.
package sanitize

import (
	"path"
	"strings"
)

// allowedExtensions is the allow-set of image file extensions. Anything else,
// including a missing extension, is rewritten to "jpg".
var allowedExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"gif":  true,
	"webp": true,
}

// FolderName strips every character outside [A-Za-z0-9_-] from a raw event
// identifier, producing a storage-safe folder name. The result may be empty.
func FolderName(raw string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '_' || r == '-':
			return r
		default:
			return -1
		}
	}, raw)
}

// FileExtension returns the lowercased extension of filename if it belongs to
// the image allow-set, and "jpg" otherwise.
func FileExtension(filename string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(filename), "."))
	if allowedExtensions[ext] {
		return ext
	}
	return "jpg"
}

// ContentTypeFor picks the MIME type for an upload: the declared type when the
// client provided one, otherwise a type derived from the sanitized extension.
func ContentTypeFor(declared, ext string) string {
	if declared != "" {
		return declared
	}
	if ext == "jpg" {
		return "image/jpeg"
	}
	return "image/" + ext
}
