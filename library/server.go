package library

import (
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// NewHandler serves the sample directories of fsys:
//
//	GET /manifest/{source}  JSON manifest of the source
//	GET /{source}/{file}    bytes of a sample file
//
// DirSource and HTTPSource with the default templates agree on this layout,
// so an HTTPSource pointed at this handler sees the same samples as a
// DirSource over fsys.
func NewHandler(fsys fs.FS, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &server{fsys: fsys, logger: logger}
	router := mux.NewRouter()
	router.Use(s.logRequests, allowAnyOrigin)
	router.HandleFunc("/"+ManifestRoute+"/{source}", s.handleManifest).Methods(http.MethodGet, http.MethodHead)
	router.HandleFunc("/{source}/{file}", s.handleAsset).Methods(http.MethodGet, http.MethodHead)
	router.HandleFunc("/", handleRoot).Methods(http.MethodGet)
	return router
}

type server struct {
	fsys   fs.FS
	logger *zap.Logger
}

func (s *server) handleManifest(w http.ResponseWriter, r *http.Request) {
	source := mux.Vars(r)["source"]
	m, err := ListManifest(s.fsys, source)
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(m); err != nil {
		s.logger.Warn("writing manifest failed", zap.String("source", source), zap.Error(err))
	}
}

func (s *server) handleAsset(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	p, err := samplePath(vars["source"], vars["file"])
	if err != nil {
		s.fail(w, err)
		return
	}
	if _, err := fs.Stat(s.fsys, p); err != nil {
		s.fail(w, err)
		return
	}
	http.ServeFileFS(w, r, s.fsys, p)
}

func (s *server) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidName):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, fs.ErrNotExist):
		http.Error(w, "not found", http.StatusNotFound)
	default:
		s.logger.Error("serving samples failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request", zap.String("method", r.Method), zap.String("path", r.URL.Path), zap.Duration("took", time.Since(start)))
	})
}

func allowAnyOrigin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		next.ServeHTTP(w, r)
	})
}

func handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("strum sample server. GET /manifest/{source} lists the samples of a source.\n"))
}
