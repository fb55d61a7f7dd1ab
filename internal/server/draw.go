package server

import (
	"io"
	"net/http"
	"strings"

	"github.com/mapcraft/geoedit/internal/edit"
	"github.com/mapcraft/geoedit/internal/geo"
)

// drawState is the JSON view of a map's drawing controller.
type drawState struct {
	Drawing   bool         `json:"drawing"`
	Kind      string       `json:"kind,omitempty"`
	Feature   *geo.Feature `json:"feature,omitempty"`
	Committed bool         `json:"committed,omitempty"`
}

// HandleDraw drives the drawing controller of one map.
//
// Paths under /api/maps/{map}/draw:
//
//	GET  .../draw            current controller state
//	POST .../draw/marker     start placing a marker (optional seed body)
//	POST .../draw/polyline   start drawing a polyline (optional seed body)
//	POST .../draw/polygon    start drawing a polygon (optional seed body)
//	POST .../draw/vertex     feed one vertex {"lat": .., "lng": ..}
//	POST .../draw/commit     finalize and persist the draw
//	POST .../draw/cancel     stop the draw
func (s *ServerContext) HandleDraw(w http.ResponseWriter, r *http.Request) {
	// Path: /api/maps/{map}/draw[/{action}]
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) < 4 || parts[3] != "draw" {
		http.NotFound(w, r)
		return
	}

	mapName, hasSession := s.MapNameResolver[parts[2]]
	if !hasSession {
		http.NotFound(w, r)
		return
	}
	sess, ok := s.session(mapName)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if len(parts) == 4 {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		sess.mu.Lock()
		state := currentState(sess.m.EditTools())
		sess.mu.Unlock()
		writeGeoJSON(w, http.StatusOK, state)
		return
	}

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if !sess.m.EditOptions().Editable {
		http.Error(w, "map is read-only", http.StatusForbidden)
		return
	}

	action := parts[4]
	switch action {
	case "marker", "polyline", "polygon":
		s.startDraw(w, r, sess, action)
	case "vertex":
		s.pushVertex(w, r, sess)
	case "commit":
		s.commitDraw(w, sess, mapName)
	case "cancel":
		sess.mu.Lock()
		sess.m.EditTools().StopDrawing()
		sess.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	default:
		http.NotFound(w, r)
	}
}

// startDraw begins a new draw, cancelling any in-progress one.
func (s *ServerContext) startDraw(w http.ResponseWriter, r *http.Request, sess *session, kind string) {
	seed, err := readSeed(r)
	if err != nil {
		http.Error(w, "invalid seed coordinate", http.StatusBadRequest)
		return
	}

	sess.mu.Lock()
	tools := sess.m.EditTools()
	switch kind {
	case "marker":
		tools.StartMarker(seed)
	case "polyline":
		tools.StartPolyline(seed)
	case "polygon":
		tools.StartPolygon(seed)
	}
	state := currentState(tools)
	sess.mu.Unlock()

	writeGeoJSON(w, http.StatusCreated, state)
}

// pushVertex feeds one pointer position into the active draw.
func (s *ServerContext) pushVertex(w http.ResponseWriter, r *http.Request, sess *session) {
	ll, err := readLatLng(r)
	if err != nil {
		http.Error(w, "invalid coordinate", http.StatusBadRequest)
		return
	}

	sess.mu.Lock()
	tools := sess.m.EditTools()
	pushed := tools.PushVertex(ll)
	state := currentState(tools)
	sess.mu.Unlock()

	if !pushed {
		http.Error(w, "no draw in progress", http.StatusConflict)
		return
	}

	writeGeoJSON(w, http.StatusOK, state)
}

// commitDraw finalizes the draw and persists the committed feature.
func (s *ServerContext) commitDraw(w http.ResponseWriter, sess *session, mapName string) {
	sess.mu.Lock()
	g, ok := sess.m.EditTools().CommitDrawing()
	sess.mu.Unlock()

	if !ok {
		writeGeoJSON(w, http.StatusOK, drawState{})
		return
	}

	f := g.Feature()
	id, err := s.Store.Put(mapName, f)
	if err != nil {
		http.Error(w, "failed to store feature", http.StatusInternalServerError)
		return
	}
	f.ID = id

	writeGeoJSON(w, http.StatusOK, drawState{
		Committed: true,
		Kind:      g.Kind().String(),
		Feature:   &f,
	})
}

func currentState(tools *edit.Tools) drawState {
	g := tools.InProgress()
	if g == nil {
		return drawState{}
	}

	f := g.Feature()

	return drawState{
		Drawing: true,
		Kind:    g.Kind().String(),
		Feature: &f,
	}
}

// readSeed parses an optional {"lat","lng"} body; an empty body is no seed.
func readSeed(r *http.Request) (*geo.LatLng, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 4096))
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, nil
	}

	var ll geo.LatLng
	if err := geo.Unmarshal(body, &ll); err != nil {
		return nil, err
	}

	return &ll, nil
}

func readLatLng(r *http.Request) (geo.LatLng, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 4096))
	if err != nil {
		return geo.LatLng{}, err
	}

	var ll geo.LatLng
	if err := geo.Unmarshal(body, &ll); err != nil {
		return geo.LatLng{}, err
	}

	return ll, nil
}
