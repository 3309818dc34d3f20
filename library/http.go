package library

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig"
	"github.com/vsariola/strum"
)

const (
	DefaultManifestURL = `{{ .Root | trimSuffix "/" }}/manifest/{{ .Source | pathEscape }}`
	DefaultAssetURL    = `{{ .Root | trimSuffix "/" }}/{{ .Source | pathEscape }}/{{ .File | pathEscape }}`

	maxManifestSize = 1 << 20
)

type (
	// HTTPSource fetches manifests and sample files over HTTP. The URLs are
	// built from text/templates that can use the sprig functions and
	// pathEscape, with the fields Root, Source and File.
	HTTPSource struct {
		Client      *http.Client
		Root        string
		manifestURL *template.Template
		assetURL    *template.Template
	}

	urlFields struct {
		Root, Source, File string
	}
)

// NewHTTPSource parses the URL templates. Empty templates fall back to
// DefaultManifestURL and DefaultAssetURL; a nil client means
// http.DefaultClient.
func NewHTTPSource(root, manifestURL, assetURL string, client *http.Client) (*HTTPSource, error) {
	if manifestURL == "" {
		manifestURL = DefaultManifestURL
	}
	if assetURL == "" {
		assetURL = DefaultAssetURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	funcs := sprig.TxtFuncMap()
	funcs["pathEscape"] = url.PathEscape
	m, err := template.New("manifest").Funcs(funcs).Parse(manifestURL)
	if err != nil {
		return nil, fmt.Errorf("invalid manifest url template: %w", err)
	}
	a, err := template.New("asset").Funcs(funcs).Parse(assetURL)
	if err != nil {
		return nil, fmt.Errorf("invalid asset url template: %w", err)
	}
	return &HTTPSource{Client: client, Root: root, manifestURL: m, assetURL: a}, nil
}

func (h *HTTPSource) ManifestURL(source string) (string, error) {
	return execute(h.manifestURL, urlFields{Root: h.Root, Source: source})
}

func (h *HTTPSource) AssetURL(source, name string) (string, error) {
	return execute(h.assetURL, urlFields{Root: h.Root, Source: source, File: name})
}

func (h *HTTPSource) Manifest(ctx context.Context, source string) (strum.Manifest, error) {
	u, err := h.ManifestURL(source)
	if err != nil {
		return strum.Manifest{}, err
	}
	body, err := h.get(ctx, u, maxManifestSize)
	if err != nil {
		return strum.Manifest{}, err
	}
	var m strum.Manifest
	if err := json.Unmarshal(body, &m); err != nil {
		return strum.Manifest{}, fmt.Errorf("malformed manifest from %s: %w", u, err)
	}
	return m, nil
}

func (h *HTTPSource) Fetch(ctx context.Context, source, name string) ([]byte, error) {
	u, err := h.AssetURL(source, name)
	if err != nil {
		return nil, err
	}
	return h.get(ctx, u, -1)
}

func (h *HTTPSource) get(ctx context.Context, u string, limit int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid url %s: %w", u, err)
	}
	resp, err := h.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("GET %s: %s", u, resp.Status)
	}
	var r io.Reader = resp.Body
	if limit > 0 {
		r = io.LimitReader(r, limit)
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", u, err)
	}
	return body, nil
}

func execute(t *template.Template, fields urlFields) (string, error) {
	var sb strings.Builder
	if err := t.Execute(&sb, fields); err != nil {
		return "", fmt.Errorf("building url: %w", err)
	}
	return sb.String(), nil
}
