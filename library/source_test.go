package library_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/vsariola/strum"
	"github.com/vsariola/strum/library"
	"go.uber.org/zap/zaptest"
)

func sampleFS() fstest.MapFS {
	return fstest.MapFS{
		"guitar/b.mp3":        {Data: []byte("bee")},
		"guitar/a.mp3":        {Data: []byte("ay")},
		"guitar/notes.txt":    {Data: []byte("ignored")},
		"guitar/c.wav":        {Data: []byte("sea")},
		"guitar/sub/d.mp3":    {Data: []byte("nested")},
		"bass/manifest.yml":   {Data: []byte("files: [e.ogg, a.ogg]\ncounts: [1, 1]\n")},
		"bass/e.ogg":          {Data: []byte("e")},
		"bass/a.ogg":          {Data: []byte("a")},
		"broken/manifest.yml": {Data: []byte("files: [x.ogg]\nunknown: 1\n")},
	}
}

func TestListManifestDirectory(t *testing.T) {
	m, err := library.ListManifest(sampleFS(), "guitar")
	if err != nil {
		t.Fatalf("ListManifest failed: %v", err)
	}
	if diff := cmp.Diff([]string{"a.mp3", "b.mp3", "c.wav"}, m.Files); diff != "" {
		t.Fatalf("files mismatch (-want +got):\n%s", diff)
	}
	if len(m.Counts) != 0 {
		t.Fatalf("expected no counts, got %v", m.Counts)
	}
}

func TestListManifestFile(t *testing.T) {
	m, err := library.ListManifest(sampleFS(), "bass")
	if err != nil {
		t.Fatalf("ListManifest failed: %v", err)
	}
	want := strum.Manifest{Files: []string{"e.ogg", "a.ogg"}, Counts: []int{1, 1}}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Fatalf("manifest mismatch (-want +got):\n%s", diff)
	}
	if _, err := library.ListManifest(sampleFS(), "broken"); err == nil {
		t.Fatal("expected an error for an unknown manifest field")
	}
}

func TestListManifestInvalidSource(t *testing.T) {
	for _, source := range []string{"", ".", "..", "../etc", "guitar/sub", "/abs", library.ManifestRoute} {
		if _, err := library.ListManifest(sampleFS(), source); !errors.Is(err, library.ErrInvalidName) {
			t.Errorf("source %q: expected ErrInvalidName, got %v", source, err)
		}
	}
}

func TestDirSourceFetch(t *testing.T) {
	src := library.DirSource{FS: sampleFS()}
	data, err := src.Fetch(context.Background(), "guitar", "b.mp3")
	if err != nil || string(data) != "bee" {
		t.Fatalf("Fetch = %q, %v", data, err)
	}
	if _, err := src.Fetch(context.Background(), "guitar", "../bass/e.ogg"); !errors.Is(err, library.ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName for a traversal, got %v", err)
	}
	if _, err := src.Fetch(context.Background(), "guitar", "missing.mp3"); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestHTTPSourceAgainstHandler(t *testing.T) {
	srv := httptest.NewServer(library.NewHandler(sampleFS(), zaptest.NewLogger(t)))
	defer srv.Close()
	src, err := library.NewHTTPSource(srv.URL+"/", "", "", srv.Client())
	if err != nil {
		t.Fatalf("NewHTTPSource failed: %v", err)
	}
	dir := library.DirSource{FS: sampleFS()}
	for _, source := range []string{"guitar", "bass"} {
		got, err := src.Manifest(context.Background(), source)
		if err != nil {
			t.Fatalf("%s: Manifest failed: %v", source, err)
		}
		want, _ := dir.Manifest(context.Background(), source)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("%s: manifest over http differs from directory (-want +got):\n%s", source, diff)
		}
		for _, f := range got.Files {
			data, err := src.Fetch(context.Background(), source, f)
			if err != nil {
				t.Fatalf("Fetch %s/%s failed: %v", source, f, err)
			}
			wantData, _ := dir.Fetch(context.Background(), source, f)
			if string(data) != string(wantData) {
				t.Fatalf("Fetch %s/%s = %q, expected %q", source, f, data, wantData)
			}
		}
	}
	if _, err := src.Fetch(context.Background(), "guitar", "missing.mp3"); err == nil || !strings.Contains(err.Error(), "404") {
		t.Fatalf("expected a 404 error, got %v", err)
	}
	if _, err := src.Manifest(context.Background(), "nowhere"); err == nil {
		t.Fatal("expected an error for an unknown source")
	}
}

func TestHandlerRejectsReservedSource(t *testing.T) {
	fsys := sampleFS()
	fsys["manifest/a.mp3"] = &fstest.MapFile{Data: []byte("ay")}
	src := library.DirSource{FS: fsys}
	if _, err := src.Fetch(context.Background(), library.ManifestRoute, "a.mp3"); !errors.Is(err, library.ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
	srv := httptest.NewServer(library.NewHandler(fsys, nil))
	defer srv.Close()
	resp, err := srv.Client().Get(srv.URL + "/manifest/manifest")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %v", resp.Status)
	}
}

func TestHandlerLegacyManifestForm(t *testing.T) {
	srv := httptest.NewServer(library.NewHandler(sampleFS(), nil))
	defer srv.Close()
	resp, err := srv.Client().Get(srv.URL + "/manifest/guitar")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if strings.TrimSpace(string(body)) != `["a.mp3","b.mp3","c.wav"]` {
		t.Fatalf("unexpected body %s", body)
	}
	if resp.Header.Get("Access-Control-Allow-Origin") != "*" {
		t.Fatal("missing CORS header")
	}
}

func TestHTTPSourceMalformedManifest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"files": 12}`))
	}))
	defer srv.Close()
	src, err := library.NewHTTPSource(srv.URL, "", "", srv.Client())
	if err != nil {
		t.Fatalf("NewHTTPSource failed: %v", err)
	}
	lib := library.New(src, fakeDecoder{}, nil)
	_, _, err = lib.Load(context.Background(), "guitar")
	var me *strum.ManifestError
	if !errors.As(err, &me) {
		t.Fatalf("expected a ManifestError, got %v", err)
	}
}

func TestHTTPSourceTemplates(t *testing.T) {
	src, err := library.NewHTTPSource("http://example.com/samples/", "{{ .Root }}php/load_sounds.php?dir={{ .Source | urlquery }}", `{{ .Root }}{{ .Source | lower }}/{{ .File | pathEscape }}`, nil)
	if err != nil {
		t.Fatalf("NewHTTPSource failed: %v", err)
	}
	m, _ := src.ManifestURL("acoustic guitar")
	if m != "http://example.com/samples/php/load_sounds.php?dir=acoustic+guitar" {
		t.Errorf("unexpected manifest url %s", m)
	}
	a, _ := src.AssetURL("Guitar", "open e.mp3")
	if a != "http://example.com/samples/guitar/open%20e.mp3" {
		t.Errorf("unexpected asset url %s", a)
	}
	if _, err := library.NewHTTPSource("", "{{ .Root", "", nil); err == nil {
		t.Error("expected a template parse error")
	}
}
