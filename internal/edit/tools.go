package edit

import "github.com/mapcraft/geoedit/internal/geo"

// Tools is the drawing controller of one map. It owns zero-or-one active
// draw; starting a new draw cancels the one in progress.
type Tools struct {
	m       *Map
	current drawing
}

// drawing is one in-flight draw operation.
type drawing interface {
	geometry() Geometry
	push(ll geo.LatLng)
	// commit finalizes the draw. ok is false when the result was
	// degenerate and has been discarded.
	commit() (g Geometry, ok bool)
	cancel()
}

// Drawing reports whether a draw is in progress.
func (t *Tools) Drawing() bool { return t.current != nil }

// InProgress returns the geometry under construction, nil when idle.
func (t *Tools) InProgress() Geometry {
	if t.current == nil {
		return nil
	}

	return t.current.geometry()
}

// StartMarker begins placing a marker, optionally at a seed position. The
// marker follows PushVertex calls until committed.
func (t *Tools) StartMarker(seed *geo.LatLng) *Marker {
	t.StopDrawing()

	var ll geo.LatLng
	if seed != nil {
		ll = *seed
	}
	mk := NewMarker(t.m, ll)
	t.m.edit.Add(mk)
	t.current = &markerDraw{marker: mk}

	return mk
}

// StartPolyline begins drawing a polyline, optionally seeded with a first
// vertex. Subsequent PushVertex calls append vertices.
func (t *Tools) StartPolyline(seed *geo.LatLng) *Polyline {
	t.StopDrawing()

	var pts []geo.LatLng
	if seed != nil {
		pts = []geo.LatLng{*seed}
	}
	pl := NewPolyline(t.m, pts)
	t.m.edit.Add(pl)
	t.current = &polylineDraw{line: pl, forward: true}

	return pl
}

// StartPolygon begins drawing a polygon outer ring, optionally seeded with
// a first vertex.
func (t *Tools) StartPolygon(seed *geo.LatLng) *Polygon {
	t.StopDrawing()

	var ring []geo.LatLng
	if seed != nil {
		ring = []geo.LatLng{*seed}
	}
	pg := NewPolygon(t.m, [][]geo.LatLng{ring})
	t.m.edit.Add(pg)
	t.current = &polygonDraw{polygon: pg}

	return pg
}

// PushVertex feeds one pointer interaction into the active draw: paths
// gain a vertex, a pending marker moves. Returns false when idle.
func (t *Tools) PushVertex(ll geo.LatLng) bool {
	if t.current == nil {
		return false
	}
	t.current.push(ll)

	return true
}

// StopDrawing cancels any in-progress draw regardless of kind. Idempotent.
func (t *Tools) StopDrawing() {
	if t.current == nil {
		return
	}
	t.current.cancel()
	t.current = nil
}

// CommitDrawing finalizes the in-progress draw into the features layer and
// returns the committed geometry. A no-op returning (nil, false) when idle
// or when the draw was degenerate.
func (t *Tools) CommitDrawing() (Geometry, bool) {
	if t.current == nil {
		return nil, false
	}

	g, ok := t.current.commit()
	t.current = nil
	if ok {
		t.m.fireCommit(g)
	}

	return g, ok
}

// resume replaces the active draw with one continuing an existing
// geometry, e.g. extending a polyline or drawing a polygon hole.
func (t *Tools) resume(d drawing) {
	t.StopDrawing()
	t.current = d
}

// markerDraw

type markerDraw struct {
	marker *Marker
}

func (d *markerDraw) geometry() Geometry { return d.marker }

func (d *markerDraw) push(ll geo.LatLng) {
	d.marker.LatLng = ll
}

func (d *markerDraw) commit() (Geometry, bool) {
	m := d.marker.m
	m.edit.Remove(d.marker)
	m.features.Add(d.marker)

	return d.marker, true
}

func (d *markerDraw) cancel() {
	d.marker.m.edit.Remove(d.marker)
}

// polylineDraw

type polylineDraw struct {
	line *Polyline
	// forward appends, otherwise vertices are prepended.
	forward bool
	// resumed draws extend a committed line and never discard it.
	resumed bool
}

func (d *polylineDraw) geometry() Geometry { return d.line }

func (d *polylineDraw) push(ll geo.LatLng) {
	if d.forward {
		d.line.points = append(d.line.points, ll)
	} else {
		d.line.points = append([]geo.LatLng{ll}, d.line.points...)
	}
	if d.line.editor != nil {
		d.line.editor.Reset()
	}
}

func (d *polylineDraw) commit() (Geometry, bool) {
	if d.resumed {
		return d.line, true
	}

	m := d.line.m
	m.edit.Remove(d.line)
	if len(d.line.points) < minPolylinePoints {
		return nil, false
	}
	m.features.Add(d.line)

	return d.line, true
}

func (d *polylineDraw) cancel() {
	if d.resumed {
		// Vertices already applied to the committed line stay.
		return
	}
	d.line.m.edit.Remove(d.line)
}

// polygonDraw

type polygonDraw struct {
	polygon *Polygon
	// ring being drawn; >0 when drawing a hole into a committed polygon.
	ring    int
	resumed bool
}

func (d *polygonDraw) geometry() Geometry { return d.polygon }

func (d *polygonDraw) push(ll geo.LatLng) {
	d.polygon.rings[d.ring] = append(d.polygon.rings[d.ring], ll)
	if d.polygon.editor != nil {
		d.polygon.editor.Reset()
	}
}

func (d *polygonDraw) commit() (Geometry, bool) {
	degenerate := len(d.polygon.rings[d.ring]) < minRingPoints

	if d.resumed {
		if degenerate {
			d.dropRing()
			return nil, false
		}
		return d.polygon, true
	}

	m := d.polygon.m
	m.edit.Remove(d.polygon)
	if degenerate {
		return nil, false
	}
	m.features.Add(d.polygon)

	return d.polygon, true
}

func (d *polygonDraw) cancel() {
	if d.resumed {
		d.dropRing()
		return
	}
	d.polygon.m.edit.Remove(d.polygon)
}

func (d *polygonDraw) dropRing() {
	if d.ring > 0 && d.ring < len(d.polygon.rings) {
		d.polygon.rings = append(d.polygon.rings[:d.ring], d.polygon.rings[d.ring+1:]...)
	}
	if d.polygon.editor != nil {
		d.polygon.editor.Reset()
	}
}
