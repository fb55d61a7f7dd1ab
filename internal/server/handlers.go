package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mapcraft/geoedit/internal/edit"
	"github.com/mapcraft/geoedit/internal/geo"
	"github.com/mapcraft/geoedit/internal/store"
)

const etagCap = 64

// HandleMapsList serves the JSON configuration of available maps.
func (s *ServerContext) HandleMapsList(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	// Ignoring error as we cannot handle client disconnects
	_ = json.NewEncoder(w).Encode(s.Config.Maps)
}

// HandleFavicon serves the site favicon.
func (s *ServerContext) HandleFavicon(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/favicon.ico" {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(s.Favicon)
}

// HandleIndex serves the main HTML application.
func (s *ServerContext) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" && strings.Contains(r.URL.Path, ".") {
		http.NotFound(w, r)
		return
	}

	etag := fmt.Sprintf(`"%x"`, len(s.IndexHTML))

	if match := r.Header.Get("If-None-Match"); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, no-cache")
	_, _ = w.Write(s.IndexHTML)
}

// HandleMapAssets serves per-map resources: stored features and tiles.
//
// Paths:
//
//	GET    /maps/{map}/features.geojson
//	POST   /maps/{map}/features
//	DELETE /maps/{map}/features/{id}
//	GET    /maps/{map}/{layer}/{z}/{x}/{y}.webp
func (s *ServerContext) HandleMapAssets(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")

	if len(parts) < 3 {
		http.NotFound(w, r)
		return
	}

	requestedName := parts[1]
	realMapName, ok := s.MapNameResolver[requestedName]
	if !ok {
		http.NotFound(w, r)
		return
	}

	switch {
	case len(parts) == 3 && parts[2] == "features.geojson" && r.Method == http.MethodGet:
		s.serveFeatures(w, realMapName)

	case len(parts) == 3 && parts[2] == "features" && r.Method == http.MethodPost:
		s.storeFeature(w, r, realMapName)

	case len(parts) == 4 && parts[2] == "features" && r.Method == http.MethodDelete:
		s.deleteFeature(w, realMapName, parts[3])

	case len(parts) == 6 && r.Method == http.MethodGet:
		// parts: maps, mapName, layer, z, x, y.webp
		s.serveTile(w, r, realMapName, parts[2], parts[3], parts[4], parts[5])

	default:
		http.NotFound(w, r)
	}
}

// serveFeatures responds with the stored feature collection of a map.
func (s *ServerContext) serveFeatures(w http.ResponseWriter, mapName string) {
	fc, err := s.Store.List(mapName)
	if err != nil {
		http.Error(w, "failed to load features", http.StatusInternalServerError)
		return
	}

	writeGeoJSON(w, http.StatusOK, fc)
}

// storeFeature validates a posted GeoJSON feature against the edit engine
// and persists it.
func (s *ServerContext) storeFeature(w http.ResponseWriter, r *http.Request, mapName string) {
	world, _ := s.world(mapName)
	if world != nil && world.ReadOnly {
		http.Error(w, "map is read-only", http.StatusForbidden)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	var f geo.Feature
	if err := geo.Unmarshal(body, &f); err != nil {
		http.Error(w, "invalid GeoJSON feature", http.StatusBadRequest)
		return
	}

	sess, ok := s.session(mapName)
	if !ok {
		http.NotFound(w, r)
		return
	}

	sess.mu.Lock()
	_, err = edit.FromFeature(sess.m, f)
	sess.mu.Unlock()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id, err := s.Store.Put(mapName, f)
	if err != nil {
		http.Error(w, "failed to store feature", http.StatusInternalServerError)
		return
	}
	f.ID = id

	writeGeoJSON(w, http.StatusCreated, f)
}

// deleteFeature removes one stored feature by ID.
func (s *ServerContext) deleteFeature(w http.ResponseWriter, mapName, id string) {
	world, _ := s.world(mapName)
	if world != nil && world.ReadOnly {
		http.Error(w, "map is read-only", http.StatusForbidden)
		return
	}

	if err := s.Store.Delete(mapName, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "feature not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to delete feature", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeGeoJSON(w http.ResponseWriter, status int, v interface{}) {
	data, err := geo.Marshal(v)
	if err != nil {
		http.Error(w, "failed to encode GeoJSON", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// serveFile tries to serve a file from disk with ETag generation.
// It returns true if the file was found and served (or 304).
func (s *ServerContext) serveFile(w http.ResponseWriter, r *http.Request, path string, contentType string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if info.IsDir() {
		return false
	}

	buf := make([]byte, 0, etagCap)
	buf = append(buf, '"')
	buf = strconv.AppendInt(buf, info.Size(), 16)
	buf = append(buf, '-')
	buf = strconv.AppendInt(buf, info.ModTime().UnixNano(), 16)
	buf = append(buf, '"')
	etag := string(buf)

	// check If-None-Match (client sent ETag)
	if match := r.Header.Get("If-None-Match"); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return true
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, no-cache")

	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}

	http.ServeFile(w, r, path)
	return true
}

func (s *ServerContext) tilePath(mapName, layer, z, x, y string) string {
	return filepath.Join(s.TilesRoot, mapName, layer, z, x, y)
}
