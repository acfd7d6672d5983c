package util

import "strings"

// ResolveAssetURL joins a stored relative path to the configured asset base.
// URLs that already carry an http(s) scheme pass through untouched; duplicate
// slashes at the join point are collapsed.
func ResolveAssetURL(base, path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
