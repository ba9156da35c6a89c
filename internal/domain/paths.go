package domain

import (
	"net/url"
	"path/filepath"
	"strings"
)

// ResolveProjectRoot makes path absolute against cwd and cleans it without
// touching the filesystem.
func ResolveProjectRoot(path, cwd string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(cwd, path)
}

// FileURIToPath converts a file URI to an absolute filesystem path.
func FileURIToPath(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", &InvalidURIError{URI: uri, Err: err}
	}
	if u.Scheme != "file" {
		return "", &UnsupportedSchemeError{URI: uri, Scheme: u.Scheme}
	}
	return fileURLPath(uri, u)
}

func fileURLPath(uri string, u *url.URL) (string, error) {
	if u.Host != "" && u.Host != "localhost" {
		return "", &InvalidURIError{URI: uri}
	}
	if u.Opaque != "" || !strings.HasPrefix(u.Path, "/") {
		return "", &InvalidURIError{URI: uri}
	}
	return filepath.Clean(filepath.FromSlash(u.Path)), nil
}

// Relativize converts a file URI to a path relative to root. When no
// relative form exists the absolute path is returned.
func Relativize(uri, root string) (string, error) {
	path, err := FileURIToPath(uri)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path, nil
	}
	return rel, nil
}

// InProject reports whether the document behind uri lives under root. URIs
// that do not map to a filesystem path count as in-project.
func InProject(uri, root string) bool {
	path, err := FileURIToPath(uri)
	if err != nil {
		return true
	}
	return IsWithin(path, root)
}

// IsWithin reports whether path equals dir or is one of its descendants,
// comparing whole path components.
func IsWithin(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
