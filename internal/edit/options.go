// Package edit implements editable map geometries: markers, polylines and
// polygons that can be drawn and reshaped through a per-map drawing
// controller and per-geometry editors.
package edit

// Default CSS classes handed to the front end for edit affordances.
const (
	DefaultDrawingClass      = "geoedit-drawing"
	DefaultVertexMarkerClass = "geoedit-vertex-icon"
	DefaultMiddleMarkerClass = "geoedit-middle-icon"
	DefaultFeaturesLayer     = "features"
	DefaultEditLayer         = "edit"
)

// Options configures editing for one map. The zero value is usable; NewMap
// fills in defaults. Treated as immutable once passed to NewMap.
type Options struct {
	// Editable enables the editing UI at map initialization.
	Editable bool

	// DrawingClass is the CSS class applied to the map element while a
	// draw is in progress.
	DrawingClass string

	// VertexMarkerClass and MiddleMarkerClass style the path handles.
	VertexMarkerClass string
	MiddleMarkerClass string

	// SkipMiddleMarkers suppresses midpoint handles on paths.
	SkipMiddleMarkers bool

	// LineGuide is passed through to the front end as styling for the
	// guide line shown while drawing.
	LineGuide map[string]interface{}

	// FeaturesLayer and EditLayer name the containers for finished
	// features and in-flight edit affordances.
	FeaturesLayer string
	EditLayer     string

	// Editor factories, substitutable for customized behavior.
	NewMarkerEditor   func(*Marker) *MarkerEditor
	NewPolylineEditor func(*Polyline) *PolylineEditor
	NewPolygonEditor  func(*Polygon) *PolygonEditor
}

func (o Options) withDefaults() Options {
	if o.DrawingClass == "" {
		o.DrawingClass = DefaultDrawingClass
	}
	if o.VertexMarkerClass == "" {
		o.VertexMarkerClass = DefaultVertexMarkerClass
	}
	if o.MiddleMarkerClass == "" {
		o.MiddleMarkerClass = DefaultMiddleMarkerClass
	}
	if o.FeaturesLayer == "" {
		o.FeaturesLayer = DefaultFeaturesLayer
	}
	if o.EditLayer == "" {
		o.EditLayer = DefaultEditLayer
	}
	if o.NewMarkerEditor == nil {
		o.NewMarkerEditor = NewMarkerEditor
	}
	if o.NewPolylineEditor == nil {
		o.NewPolylineEditor = NewPolylineEditor
	}
	if o.NewPolygonEditor == nil {
		o.NewPolygonEditor = NewPolygonEditor
	}

	return o
}
