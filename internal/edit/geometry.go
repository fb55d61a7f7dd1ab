package edit

import (
	"fmt"

	"github.com/mapcraft/geoedit/internal/geo"
)

// Kind discriminates the geometry variants.
type Kind int

const (
	KindMarker Kind = iota
	KindPolyline
	KindPolygon
)

func (k Kind) String() string {
	switch k {
	case KindMarker:
		return "marker"
	case KindPolyline:
		return "polyline"
	case KindPolygon:
		return "polygon"
	default:
		return "unknown"
	}
}

// Editor is the capability common to all geometry editors. Enable and
// Disable are idempotent.
type Editor interface {
	Enable()
	Disable()
	Enabled() bool
}

// PathEditor is implemented by polyline and polygon editors, which carry
// rebuildable vertex and middle handles.
type PathEditor interface {
	Editor

	// Reset rebuilds the handles from the current points without
	// changing the enabled state. Call it after mutating the underlying
	// geometry from outside the editor.
	Reset()
}

// Geometry is the tagged-variant view over *Marker, *Polyline and
// *Polygon. Each variant also has a concrete EnableEdit method returning
// its concrete editor.
type Geometry interface {
	Kind() Kind
	Feature() geo.Feature

	// Edit returns the attached editor, nil when none is attached.
	Edit() Editor
	EditEnabled() bool
	ToggleEdit()
	DisableEdit()
}

// FromFeature rebuilds a geometry from a GeoJSON feature and binds it to
// the given map. The feature is not added to any layer.
func FromFeature(m *Map, f geo.Feature) (Geometry, error) {
	switch f.Geometry.Type {
	case geo.TypePoint:
		ll, err := f.Geometry.Point()
		if err != nil {
			return nil, err
		}
		mk := NewMarker(m, ll)
		mk.ID = f.ID
		mk.Props = f.Properties
		return mk, nil

	case geo.TypeLineString:
		path, err := f.Geometry.LineString()
		if err != nil {
			return nil, err
		}
		pl := NewPolyline(m, path)
		pl.ID = f.ID
		pl.Props = f.Properties
		return pl, nil

	case geo.TypePolygon:
		rings, err := f.Geometry.Polygon()
		if err != nil {
			return nil, err
		}
		pg := NewPolygon(m, rings)
		pg.ID = f.ID
		pg.Props = f.Properties
		return pg, nil

	default:
		return nil, fmt.Errorf("unsupported geometry type %q", f.Geometry.Type)
	}
}

var (
	_ Geometry = (*Marker)(nil)
	_ Geometry = (*Polyline)(nil)
	_ Geometry = (*Polygon)(nil)

	_ Editor     = (*MarkerEditor)(nil)
	_ PathEditor = (*PolylineEditor)(nil)
	_ PathEditor = (*PolygonEditor)(nil)
)

func feature(id string, props map[string]interface{}, g geo.Geometry) geo.Feature {
	return geo.Feature{
		Type:       "Feature",
		ID:         id,
		Properties: props,
		Geometry:   g,
	}
}
