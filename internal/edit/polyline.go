package edit

import "github.com/mapcraft/geoedit/internal/geo"

// Polyline is an ordered open path.
type Polyline struct {
	ID    string
	Props map[string]interface{}

	m      *Map
	points []geo.LatLng
	editor *PolylineEditor
}

// NewPolyline creates a polyline bound to a map. It is not added to any
// layer.
func NewPolyline(m *Map, points []geo.LatLng) *Polyline {
	return &Polyline{m: m, points: points}
}

// Kind returns KindPolyline.
func (pl *Polyline) Kind() Kind { return KindPolyline }

// Points returns the path in order.
func (pl *Polyline) Points() []geo.LatLng {
	out := make([]geo.LatLng, len(pl.points))
	copy(out, pl.points)

	return out
}

// SetPoints replaces the path. Call Reset on an enabled editor afterwards.
func (pl *Polyline) SetPoints(points []geo.LatLng) {
	pl.points = points
}

// Feature renders the polyline as a GeoJSON LineString feature.
func (pl *Polyline) Feature() geo.Feature {
	return feature(pl.ID, pl.Props, geo.NewLineString(pl.points))
}

// EnableEdit attaches an editor if none exists and activates it. Safe to
// call repeatedly; always returns the single attached editor.
func (pl *Polyline) EnableEdit() *PolylineEditor {
	if pl.editor == nil {
		pl.editor = pl.m.opts.NewPolylineEditor(pl)
	}
	pl.editor.Enable()

	return pl.editor
}

// DisableEdit deactivates and discards the attached editor, if any.
func (pl *Polyline) DisableEdit() {
	if pl.editor == nil {
		return
	}
	pl.editor.Disable()
	pl.editor = nil
}

// ToggleEdit flips between enabled and disabled editing.
func (pl *Polyline) ToggleEdit() {
	if pl.EditEnabled() {
		pl.DisableEdit()
	} else {
		pl.EnableEdit()
	}
}

// EditEnabled reports whether an editor is attached and active.
func (pl *Polyline) EditEnabled() bool {
	return pl.editor != nil && pl.editor.Enabled()
}

// Edit returns the attached editor, nil when none.
func (pl *Polyline) Edit() Editor {
	if pl.editor == nil {
		return nil
	}

	return pl.editor
}

// pathTarget

func (pl *Polyline) ringCount() int { return 1 }

func (pl *Polyline) ring(i int) []geo.LatLng {
	if i != 0 {
		return nil
	}

	return pl.points
}

func (pl *Polyline) setRing(i int, pts []geo.LatLng) {
	if i == 0 {
		pl.points = pts
	}
}

func (pl *Polyline) closed() bool { return false }

func (pl *Polyline) minPoints() int { return minPolylinePoints }

// PolylineEditor manages the vertex handles of a polyline and can re-enter
// drawing mode on either end of the line.
type PolylineEditor struct {
	pathEditor
	line *Polyline
}

// NewPolylineEditor is the default polyline editor factory.
func NewPolylineEditor(pl *Polyline) *PolylineEditor {
	e := &PolylineEditor{line: pl}
	e.pathEditor = pathEditor{m: pl.m, target: pl}

	return e
}

// ContinueForward re-enters drawing mode appending vertices to the end of
// the line. No-op while the editor is disabled.
func (e *PolylineEditor) ContinueForward() {
	e.continueDrawing(true)
}

// ContinueBackward re-enters drawing mode prepending vertices to the start
// of the line.
func (e *PolylineEditor) ContinueBackward() {
	e.continueDrawing(false)
}

func (e *PolylineEditor) continueDrawing(forward bool) {
	if !e.enabled {
		return
	}
	e.m.tools.resume(&polylineDraw{
		line:    e.line,
		forward: forward,
		resumed: true,
	})
}
