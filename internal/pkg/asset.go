package pkg

import "strings"

// AssetURL turns a stored relative asset path into an absolute URL under base.
// Empty paths yield nil so resources render JSON null; absolute URLs are kept.
func AssetURL(base, path string) *string {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return &path
	}
	u := strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
	return &u
}
