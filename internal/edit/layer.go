package edit

import "github.com/mapcraft/geoedit/internal/geo"

// Layer is an ordered container of geometries.
type Layer struct {
	name  string
	geoms []Geometry
}

// Name returns the layer name.
func (l *Layer) Name() string { return l.name }

// Add appends a geometry. Adding the same instance twice is a no-op.
func (l *Layer) Add(g Geometry) {
	if l.Has(g) {
		return
	}
	l.geoms = append(l.geoms, g)
}

// Remove drops a geometry, preserving the order of the rest.
func (l *Layer) Remove(g Geometry) {
	for i, have := range l.geoms {
		if have == g {
			l.geoms = append(l.geoms[:i], l.geoms[i+1:]...)
			return
		}
	}
}

// Has reports whether the geometry instance is in the layer.
func (l *Layer) Has(g Geometry) bool {
	for _, have := range l.geoms {
		if have == g {
			return true
		}
	}

	return false
}

// Len returns the number of geometries.
func (l *Layer) Len() int { return len(l.geoms) }

// Geometries returns the geometries in insertion order.
func (l *Layer) Geometries() []Geometry {
	out := make([]Geometry, len(l.geoms))
	copy(out, l.geoms)

	return out
}

// Collection renders the layer as a GeoJSON feature collection.
func (l *Layer) Collection() geo.FeatureCollection {
	fc := geo.NewFeatureCollection()
	for _, g := range l.geoms {
		fc.Features = append(fc.Features, g.Feature())
	}

	return fc
}
