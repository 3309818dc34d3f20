package library

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"

	"github.com/vsariola/strum"
	"github.com/vsariola/strum/decode"
	"gopkg.in/yaml.v3"
)

// ManifestFile is the optional file in a source directory that lists the
// samples explicitly, with per-string counts.
const ManifestFile = "manifest.yml"

var (
	ErrInvalidName  = errors.New("invalid source or file name")
	ErrNotDirectory = errors.New("not a directory")
)

// DirSource reads samples from a file system, one directory per source.
type DirSource struct {
	FS fs.FS
}

func (d DirSource) Manifest(ctx context.Context, source string) (strum.Manifest, error) {
	return ListManifest(d.FS, source)
}

func (d DirSource) Fetch(ctx context.Context, source, name string) ([]byte, error) {
	p, err := samplePath(source, name)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return fs.ReadFile(d.FS, p)
}

// ListManifest returns the manifest of a source directory. If the directory
// has a manifest.yml, that is used as is; otherwise every file with a
// supported audio extension is listed in lexical order.
func ListManifest(fsys fs.FS, source string) (strum.Manifest, error) {
	if !validSource(source) {
		return strum.Manifest{}, fmt.Errorf("%q: %w", source, ErrInvalidName)
	}
	data, err := fs.ReadFile(fsys, path.Join(source, ManifestFile))
	switch {
	case err == nil:
		var m strum.Manifest
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&m); err != nil {
			return strum.Manifest{}, fmt.Errorf("%s/%s: %w", source, ManifestFile, err)
		}
		return m, nil
	case !errors.Is(err, fs.ErrNotExist):
		return strum.Manifest{}, err
	}
	entries, err := fs.ReadDir(fsys, source)
	if err != nil {
		return strum.Manifest{}, err
	}
	m := strum.Manifest{Files: []string{}}
	for _, e := range entries {
		if e.Type().IsRegular() && decode.Supported(e.Name()) {
			m.Files = append(m.Files, e.Name())
		}
	}
	return m, nil
}

func samplePath(source, name string) (string, error) {
	if !validSource(source) || !validName(name) {
		return "", fmt.Errorf("%q/%q: %w", source, name, ErrInvalidName)
	}
	return path.Join(source, name), nil
}

// ManifestRoute is the first path element of the manifest endpoint of
// NewHandler; a source cannot have this name, since its files could not be
// served.
const ManifestRoute = "manifest"

func validSource(source string) bool {
	return validName(source) && source != ManifestRoute
}

// validName accepts a single path element.
func validName(name string) bool {
	return name != "" && name != "." && name != ".." && fs.ValidPath(name) && path.Base(name) == name
}
