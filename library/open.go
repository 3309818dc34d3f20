package library

import (
	"net/http"
	"net/url"
	"os"
	"time"
)

// DefaultTimeout bounds a single HTTP request of an HTTPSource made by
// OpenSource.
const DefaultTimeout = 30 * time.Second

// OpenSource returns an HTTPSource if root is a http(s) URL, and otherwise a
// DirSource over the directory root.
func OpenSource(root, manifestURL, assetURL string) (Source, error) {
	if u, err := url.Parse(root); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return NewHTTPSource(root, manifestURL, assetURL, &http.Client{Timeout: DefaultTimeout})
	}
	if root == "" {
		root = "."
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, &os.PathError{Op: "open", Path: root, Err: ErrNotDirectory}
	}
	return DirSource{FS: os.DirFS(root)}, nil
}
