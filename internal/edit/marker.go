package edit

import "github.com/mapcraft/geoedit/internal/geo"

// Marker is a single-point geometry.
type Marker struct {
	ID     string
	Props  map[string]interface{}
	LatLng geo.LatLng

	m      *Map
	editor *MarkerEditor
}

// NewMarker creates a marker bound to a map. It is not added to any layer.
func NewMarker(m *Map, ll geo.LatLng) *Marker {
	return &Marker{m: m, LatLng: ll}
}

// Kind returns KindMarker.
func (mk *Marker) Kind() Kind { return KindMarker }

// Feature renders the marker as a GeoJSON Point feature.
func (mk *Marker) Feature() geo.Feature {
	return feature(mk.ID, mk.Props, geo.NewPoint(mk.LatLng))
}

// EnableEdit attaches an editor if none exists and activates it. Safe to
// call repeatedly; always returns the single attached editor.
func (mk *Marker) EnableEdit() *MarkerEditor {
	if mk.editor == nil {
		mk.editor = mk.m.opts.NewMarkerEditor(mk)
	}
	mk.editor.Enable()

	return mk.editor
}

// DisableEdit deactivates and discards the attached editor, if any.
func (mk *Marker) DisableEdit() {
	if mk.editor == nil {
		return
	}
	mk.editor.Disable()
	mk.editor = nil
}

// ToggleEdit flips between enabled and disabled editing.
func (mk *Marker) ToggleEdit() {
	if mk.EditEnabled() {
		mk.DisableEdit()
	} else {
		mk.EnableEdit()
	}
}

// EditEnabled reports whether an editor is attached and active.
func (mk *Marker) EditEnabled() bool {
	return mk.editor != nil && mk.editor.Enabled()
}

// Edit returns the attached editor, nil when none.
func (mk *Marker) Edit() Editor {
	if mk.editor == nil {
		return nil
	}

	return mk.editor
}

// MarkerEditor lets a marker be dragged to a new position.
type MarkerEditor struct {
	marker  *Marker
	enabled bool
}

// NewMarkerEditor is the default marker editor factory.
func NewMarkerEditor(mk *Marker) *MarkerEditor {
	return &MarkerEditor{marker: mk}
}

// Enable activates the editor. Idempotent.
func (e *MarkerEditor) Enable() { e.enabled = true }

// Disable deactivates the editor. Idempotent.
func (e *MarkerEditor) Disable() { e.enabled = false }

// Enabled reports the editor state.
func (e *MarkerEditor) Enabled() bool { return e.enabled }

// Drag moves the marker while editing is enabled.
func (e *MarkerEditor) Drag(ll geo.LatLng) {
	if !e.enabled {
		return
	}
	e.marker.LatLng = ll
}
