package edit

import "github.com/mapcraft/geoedit/internal/geo"

// Minimum point counts below which vertex deletion is refused.
const (
	minPolylinePoints = 2
	minRingPoints     = 3
)

// pathTarget is the view a path editor needs over its geometry. Polylines
// expose a single open ring, polygons expose closed rings.
type pathTarget interface {
	ringCount() int
	ring(i int) []geo.LatLng
	setRing(i int, pts []geo.LatLng)
	closed() bool
	minPoints() int
}

// pathEditor carries the handle bookkeeping shared by polyline and
// polygon editors.
type pathEditor struct {
	m       *Map
	target  pathTarget
	enabled bool

	vertices [][]*VertexMarker
	middles  [][]*MiddleMarker
}

// Enable activates the editor and builds its handles. Idempotent.
func (e *pathEditor) Enable() {
	if e.enabled {
		return
	}
	e.enabled = true
	e.rebuild()
}

// Disable deactivates the editor and drops its handles. Idempotent.
func (e *pathEditor) Disable() {
	if !e.enabled {
		return
	}
	e.enabled = false
	e.vertices = nil
	e.middles = nil
}

// Enabled reports the editor state.
func (e *pathEditor) Enabled() bool { return e.enabled }

// Reset rebuilds vertex and middle handles from the current points. The
// enabled state is untouched; a disabled editor has no handles to rebuild.
func (e *pathEditor) Reset() {
	if e.enabled {
		e.rebuild()
	}
}

// Vertices returns the vertex handles of one ring.
func (e *pathEditor) Vertices(ring int) []*VertexMarker {
	if ring < 0 || ring >= len(e.vertices) {
		return nil
	}

	return e.vertices[ring]
}

// Middles returns the middle handles of one ring.
func (e *pathEditor) Middles(ring int) []*MiddleMarker {
	if ring < 0 || ring >= len(e.middles) {
		return nil
	}

	return e.middles[ring]
}

func (e *pathEditor) rebuild() {
	e.vertices = make([][]*VertexMarker, e.target.ringCount())
	e.middles = make([][]*MiddleMarker, e.target.ringCount())
	for i := range e.vertices {
		e.rebuildRing(i)
	}
}

func (e *pathEditor) rebuildRing(ring int) {
	pts := e.target.ring(ring)

	vs := make([]*VertexMarker, 0, len(pts))
	for i, ll := range pts {
		vs = append(vs, &VertexMarker{
			LatLng: ll,
			Class:  e.m.opts.VertexMarkerClass,
			editor: e,
			ring:   ring,
			index:  i,
		})
	}
	e.vertices[ring] = vs

	if e.m.opts.SkipMiddleMarkers {
		e.middles[ring] = nil
		return
	}

	// One middle per segment; closed rings get a wrapping segment.
	segments := len(pts) - 1
	if e.target.closed() && len(pts) >= minRingPoints {
		segments = len(pts)
	}
	if segments < 1 {
		e.middles[ring] = nil
		return
	}

	ms := make([]*MiddleMarker, 0, segments)
	for i := 0; i < segments; i++ {
		next := (i + 1) % len(pts)
		ms = append(ms, &MiddleMarker{
			LatLng: geo.Midpoint(pts[i], pts[next]),
			Class:  e.m.opts.MiddleMarkerClass,
			editor: e,
			ring:   ring,
			index:  i,
		})
	}
	e.middles[ring] = ms
}

// VertexMarker is a draggable handle over one existing point of a path.
type VertexMarker struct {
	LatLng geo.LatLng
	Class  string

	editor *pathEditor
	ring   int
	index  int
}

// Drag moves the underlying point and refreshes the handles of its ring.
func (v *VertexMarker) Drag(ll geo.LatLng) {
	if !v.editor.enabled {
		return
	}

	pts := v.editor.target.ring(v.ring)
	if v.index >= len(pts) {
		return
	}
	pts[v.index] = ll
	v.editor.target.setRing(v.ring, pts)
	v.LatLng = ll
	v.editor.rebuildRing(v.ring)
}

// Delete removes the underlying point. Refused when the path would drop
// below its minimum point count.
func (v *VertexMarker) Delete() bool {
	if !v.editor.enabled {
		return false
	}

	pts := v.editor.target.ring(v.ring)
	if len(pts) <= v.editor.target.minPoints() || v.index >= len(pts) {
		return false
	}

	pts = append(pts[:v.index], pts[v.index+1:]...)
	v.editor.target.setRing(v.ring, pts)
	v.editor.rebuildRing(v.ring)

	return true
}

// MiddleMarker is a candidate-vertex handle on the midpoint of a segment,
// between vertex index and index+1 of its ring.
type MiddleMarker struct {
	LatLng geo.LatLng
	Class  string

	editor *pathEditor
	ring   int
	index  int
}

// Activate promotes the middle marker to a real vertex at its midpoint
// position and returns the new vertex handle.
func (mm *MiddleMarker) Activate() *VertexMarker {
	if !mm.editor.enabled {
		return nil
	}

	pts := mm.editor.target.ring(mm.ring)
	at := mm.index + 1

	pts = append(pts, geo.LatLng{})
	copy(pts[at+1:], pts[at:])
	pts[at] = mm.LatLng
	mm.editor.target.setRing(mm.ring, pts)
	mm.editor.rebuildRing(mm.ring)

	return mm.editor.vertices[mm.ring][at]
}
