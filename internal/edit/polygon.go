package edit

import "github.com/mapcraft/geoedit/internal/geo"

// Polygon is a closed path with optional interior holes. Ring 0 is the
// outer boundary, following rings are holes. Rings are stored open, the
// closing point is added on GeoJSON encode.
type Polygon struct {
	ID    string
	Props map[string]interface{}

	m      *Map
	rings  [][]geo.LatLng
	editor *PolygonEditor
}

// NewPolygon creates a polygon bound to a map. It is not added to any
// layer.
func NewPolygon(m *Map, rings [][]geo.LatLng) *Polygon {
	return &Polygon{m: m, rings: rings}
}

// Kind returns KindPolygon.
func (pg *Polygon) Kind() Kind { return KindPolygon }

// Rings returns the rings, outer first.
func (pg *Polygon) Rings() [][]geo.LatLng {
	out := make([][]geo.LatLng, len(pg.rings))
	for i, ring := range pg.rings {
		out[i] = make([]geo.LatLng, len(ring))
		copy(out[i], ring)
	}

	return out
}

// SetRings replaces all rings. Call Reset on an enabled editor afterwards.
func (pg *Polygon) SetRings(rings [][]geo.LatLng) {
	pg.rings = rings
}

// Feature renders the polygon as a GeoJSON Polygon feature.
func (pg *Polygon) Feature() geo.Feature {
	return feature(pg.ID, pg.Props, geo.NewPolygon(pg.rings))
}

// EnableEdit attaches an editor if none exists and activates it. Safe to
// call repeatedly; always returns the single attached editor.
func (pg *Polygon) EnableEdit() *PolygonEditor {
	if pg.editor == nil {
		pg.editor = pg.m.opts.NewPolygonEditor(pg)
	}
	pg.editor.Enable()

	return pg.editor
}

// DisableEdit deactivates and discards the attached editor, if any.
func (pg *Polygon) DisableEdit() {
	if pg.editor == nil {
		return
	}
	pg.editor.Disable()
	pg.editor = nil
}

// ToggleEdit flips between enabled and disabled editing.
func (pg *Polygon) ToggleEdit() {
	if pg.EditEnabled() {
		pg.DisableEdit()
	} else {
		pg.EnableEdit()
	}
}

// EditEnabled reports whether an editor is attached and active.
func (pg *Polygon) EditEnabled() bool {
	return pg.editor != nil && pg.editor.Enabled()
}

// Edit returns the attached editor, nil when none.
func (pg *Polygon) Edit() Editor {
	if pg.editor == nil {
		return nil
	}

	return pg.editor
}

// pathTarget

func (pg *Polygon) ringCount() int { return len(pg.rings) }

func (pg *Polygon) ring(i int) []geo.LatLng {
	if i < 0 || i >= len(pg.rings) {
		return nil
	}

	return pg.rings[i]
}

func (pg *Polygon) setRing(i int, pts []geo.LatLng) {
	if i >= 0 && i < len(pg.rings) {
		pg.rings[i] = pts
	}
}

func (pg *Polygon) closed() bool { return true }

func (pg *Polygon) minPoints() int { return minRingPoints }

// PolygonEditor manages the vertex handles of all rings of a polygon and
// can start drawing new interior holes.
type PolygonEditor struct {
	pathEditor
	polygon *Polygon
}

// NewPolygonEditor is the default polygon editor factory.
func NewPolygonEditor(pg *Polygon) *PolygonEditor {
	e := &PolygonEditor{polygon: pg}
	e.pathEditor = pathEditor{m: pg.m, target: pg}

	return e
}

// NewHole begins drawing an interior ring, optionally seeded with a first
// vertex. The outer ring is untouched. Further vertices arrive through the
// drawing controller; committing with fewer than three points discards the
// ring again. No-op while the editor is disabled.
func (e *PolygonEditor) NewHole(seed *geo.LatLng) {
	if !e.enabled {
		return
	}

	var ring []geo.LatLng
	if seed != nil {
		ring = []geo.LatLng{*seed}
	}
	e.polygon.rings = append(e.polygon.rings, ring)
	e.Reset()

	e.m.tools.resume(&polygonDraw{
		polygon: e.polygon,
		ring:    len(e.polygon.rings) - 1,
		resumed: true,
	})
}
