// Package geo handles geographic data structures and coordinate conversions.
package geo

import (
	stdjson "encoding/json"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Geometry type names as defined by RFC 7946.
const (
	TypePoint      = "Point"
	TypeLineString = "LineString"
	TypePolygon    = "Polygon"
)

// LatLng is a geographic coordinate in degrees.
type LatLng struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// FeatureCollection represents a collection of geographic features.
// It follows the standard GeoJSON structure.
type FeatureCollection struct {
	Type     string    `json:"type" yaml:"type"`
	Features []Feature `json:"features" yaml:"features"`
}

// NewFeatureCollection returns an empty collection with the type field set.
func NewFeatureCollection() FeatureCollection {
	return FeatureCollection{Type: "FeatureCollection", Features: []Feature{}}
}

// Feature represents a single geographic feature with geometry and properties.
type Feature struct {
	Properties map[string]interface{} `json:"properties" yaml:"properties"`
	ID         string                 `json:"id,omitempty" yaml:"id,omitempty"`
	Type       string                 `json:"type" yaml:"type"`
	Geometry   Geometry               `json:"geometry" yaml:"geometry"`
}

// Geometry represents the geometry of a feature.
// Coordinates are kept raw because their nesting depth depends on Type:
// [lng, lat] for Point, [[lng, lat], ...] for LineString and
// [[[lng, lat], ...], ...] for Polygon rings.
type Geometry struct {
	Type        string             `json:"type" yaml:"type"`
	Coordinates stdjson.RawMessage `json:"coordinates" yaml:"coordinates"`
}

// NewPoint builds a Point geometry from a coordinate.
func NewPoint(ll LatLng) Geometry {
	raw, _ := json.Marshal([2]float64{ll.Lng, ll.Lat})
	return Geometry{Type: TypePoint, Coordinates: raw}
}

// NewLineString builds a LineString geometry from an ordered path.
func NewLineString(path []LatLng) Geometry {
	raw, _ := json.Marshal(positions(path))
	return Geometry{Type: TypeLineString, Coordinates: raw}
}

// NewPolygon builds a Polygon geometry. The first ring is the outer
// boundary, any following rings are holes. Rings are closed on encode when
// the source ring does not repeat its first point.
func NewPolygon(rings [][]LatLng) Geometry {
	out := make([][][2]float64, 0, len(rings))
	for _, ring := range rings {
		closed := positions(ring)
		if len(closed) > 0 && closed[0] != closed[len(closed)-1] {
			closed = append(closed, closed[0])
		}
		out = append(out, closed)
	}

	raw, _ := json.Marshal(out)
	return Geometry{Type: TypePolygon, Coordinates: raw}
}

// Point decodes the coordinate of a Point geometry.
func (g Geometry) Point() (LatLng, error) {
	if g.Type != TypePoint {
		return LatLng{}, fmt.Errorf("geometry is %q, not a point", g.Type)
	}

	var pos [2]float64
	if err := json.Unmarshal(g.Coordinates, &pos); err != nil {
		return LatLng{}, err
	}

	return LatLng{Lat: pos[1], Lng: pos[0]}, nil
}

// LineString decodes the path of a LineString geometry.
func (g Geometry) LineString() ([]LatLng, error) {
	if g.Type != TypeLineString {
		return nil, fmt.Errorf("geometry is %q, not a line string", g.Type)
	}

	var pos [][2]float64
	if err := json.Unmarshal(g.Coordinates, &pos); err != nil {
		return nil, err
	}

	return latLngs(pos), nil
}

// Polygon decodes the rings of a Polygon geometry. Closing points are
// stripped, so rings come back in the shape NewPolygon accepts.
func (g Geometry) Polygon() ([][]LatLng, error) {
	if g.Type != TypePolygon {
		return nil, fmt.Errorf("geometry is %q, not a polygon", g.Type)
	}

	var raw [][][2]float64
	if err := json.Unmarshal(g.Coordinates, &raw); err != nil {
		return nil, err
	}

	rings := make([][]LatLng, 0, len(raw))
	for _, ring := range raw {
		if len(ring) > 1 && ring[0] == ring[len(ring)-1] {
			ring = ring[:len(ring)-1]
		}
		rings = append(rings, latLngs(ring))
	}

	return rings, nil
}

func positions(path []LatLng) [][2]float64 {
	out := make([][2]float64, 0, len(path))
	for _, ll := range path {
		out = append(out, [2]float64{ll.Lng, ll.Lat})
	}

	return out
}

func latLngs(pos [][2]float64) []LatLng {
	out := make([]LatLng, 0, len(pos))
	for _, p := range pos {
		out = append(out, LatLng{Lat: p[1], Lng: p[0]})
	}

	return out
}

// Marshal encodes any GeoJSON value with the shared JSON configuration.
func Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshal decodes GeoJSON bytes with the shared JSON configuration.
func Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}
