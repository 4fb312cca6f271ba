// Package filex holds small filesystem helpers for local storage and media
// uploads.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnsureParentDir creates the directory that will hold path, owner-only.
// Paths without a directory component, and SQLite ":memory:"/"file:" DSNs,
// are left alone.
func EnsureParentDir(path string) error {
	if path == "" || strings.HasPrefix(path, ":memory:") || strings.HasPrefix(path, "file:") {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}

// mediaTypes covers the upload formats the backend accepts, so the content
// type does not depend on the host's mime tables.
var mediaTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".heic": "image/heic",
	".mp4":  "video/mp4",
	".m4v":  "video/x-m4v",
	".mov":  "video/quicktime",
	".webm": "video/webm",
	".3gp":  "video/3gpp",
}

// MediaType returns the content type for path by its extension, or "" when
// the extension is not a known media format.
func MediaType(path string) string {
	return mediaTypes[strings.ToLower(filepath.Ext(path))]
}

// IsVideo reports whether path names a video by its extension. Everything
// else is uploaded as an image.
func IsVideo(path string) bool {
	return strings.HasPrefix(MediaType(path), "video/")
}
