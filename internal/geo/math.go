package geo

import "math"

// MaxLat is the Web Mercator latitude limit.
const MaxLat = 85.05112878

// ClampLat keeps a latitude inside the Web Mercator projection range.
func ClampLat(lat float64) float64 {
	if lat > MaxLat {
		return MaxLat
	}
	if lat < -MaxLat {
		return -MaxLat
	}

	return lat
}

// ImageToLatLng converts image coordinates (0..size, origin bottom-left) to
// WGS84 using a Mercator projection adapted for the image size.
//
// It maps the image plane (0 to size) to the longitude range [-180, 180]
// and applies an inverse Mercator projection for latitude. This is how
// square single-image maps are addressed by the Leaflet front end.
func ImageToLatLng(x, y, size float64) LatLng {
	// x: [0..size] -> lng: [-180..180]
	longitudeScale := 360.0 / size
	lng := x*longitudeScale - 180.0

	// y: [0..size] -> mercatorY: [-PI..PI]
	mercatorScale := (2.0 * math.Pi) / size
	mercatorY := y*mercatorScale - math.Pi

	// Inverse Mercator projection
	latRad := (2.0 * math.Atan(math.Exp(mercatorY))) - (math.Pi * 0.5)
	lat := ClampLat(latRad * (180.0 / math.Pi))

	return LatLng{Lat: lat, Lng: lng}
}

// LatLngToImage is the inverse of ImageToLatLng.
func LatLngToImage(ll LatLng, size float64) (x, y float64) {
	x = (ll.Lng + 180.0) * size / 360.0

	latRad := ClampLat(ll.Lat) * (math.Pi / 180.0)
	mercatorY := math.Log(math.Tan((math.Pi / 4.0) + (latRad / 2.0)))
	y = (mercatorY + math.Pi) * size / (2.0 * math.Pi)

	return x, y
}

// Midpoint returns the point halfway between two coordinates. Plane
// arithmetic is enough here: the result seeds a draggable middle handle,
// it is not used for measurement.
func Midpoint(a, b LatLng) LatLng {
	return LatLng{
		Lat: (a.Lat + b.Lat) / 2.0,
		Lng: (a.Lng + b.Lng) / 2.0,
	}
}
