package edit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mapcraft/geoedit/internal/geo"
)

func TestPathEditorBuildsHandles(t *testing.T) {
	m := testMap(t, Options{})
	pl := NewPolyline(m, []geo.LatLng{{Lat: 0}, {Lat: 1}, {Lat: 2}})

	ed := pl.EnableEdit()
	require.Len(t, ed.Vertices(0), 3)
	// Open path: one middle per segment.
	require.Len(t, ed.Middles(0), 2)

	assert.Equal(t, DefaultVertexMarkerClass, ed.Vertices(0)[0].Class)
	assert.Equal(t, DefaultMiddleMarkerClass, ed.Middles(0)[0].Class)
}

func TestClosedRingGetsWrappingMiddle(t *testing.T) {
	m := testMap(t, Options{})
	pg := NewPolygon(m, [][]geo.LatLng{{{Lat: 0}, {Lat: 1}, {Lng: 1}}})

	ed := pg.EnableEdit()
	require.Len(t, ed.Vertices(0), 3)
	// Closed ring: one middle per vertex, including last-first.
	assert.Len(t, ed.Middles(0), 3)
}

func TestSkipMiddleMarkers(t *testing.T) {
	m := testMap(t, Options{SkipMiddleMarkers: true})
	pl := NewPolyline(m, []geo.LatLng{{Lat: 0}, {Lat: 1}, {Lat: 2}})

	ed := pl.EnableEdit()
	assert.Len(t, ed.Vertices(0), 3)
	assert.Empty(t, ed.Middles(0))
}

func TestVertexDragMovesPoint(t *testing.T) {
	m := testMap(t, Options{})
	pl := NewPolyline(m, []geo.LatLng{{Lat: 0}, {Lat: 1}})

	ed := pl.EnableEdit()
	target := geo.LatLng{Lat: 5, Lng: 5}
	ed.Vertices(0)[1].Drag(target)

	assert.Equal(t, target, pl.Points()[1])
	// Middle handle follows.
	assert.Equal(t, geo.Midpoint(geo.LatLng{Lat: 0}, target), ed.Middles(0)[0].LatLng)
}

func TestMiddleMarkerActivateSplicesVertex(t *testing.T) {
	m := testMap(t, Options{})
	a := geo.LatLng{Lat: 0, Lng: 0}
	b := geo.LatLng{Lat: 2, Lng: 2}
	pl := NewPolyline(m, []geo.LatLng{a, b})

	ed := pl.EnableEdit()
	mid := ed.Middles(0)[0]
	v := mid.Activate()

	require.NotNil(t, v)
	assert.Equal(t, 1, v.index)
	assert.Equal(t, []geo.LatLng{a, geo.Midpoint(a, b), b}, pl.Points())
	assert.Len(t, ed.Vertices(0), 3)
	assert.Len(t, ed.Middles(0), 2)
}

func TestVertexDeleteRespectsMinimum(t *testing.T) {
	m := testMap(t, Options{})
	pl := NewPolyline(m, []geo.LatLng{{Lat: 0}, {Lat: 1}, {Lat: 2}})

	ed := pl.EnableEdit()
	require.True(t, ed.Vertices(0)[1].Delete())
	assert.Len(t, pl.Points(), 2)

	// A polyline keeps at least two points.
	assert.False(t, ed.Vertices(0)[0].Delete())
	assert.Len(t, pl.Points(), 2)
}

func TestPolygonRingDeleteMinimum(t *testing.T) {
	m := testMap(t, Options{})
	pg := NewPolygon(m, [][]geo.LatLng{{{Lat: 0}, {Lat: 1}, {Lng: 1}}})

	ed := pg.EnableEdit()
	// A ring keeps at least three points.
	assert.False(t, ed.Vertices(0)[0].Delete())
	assert.Len(t, pg.Rings()[0], 3)
}

func TestResetRebuildsAfterExternalMutation(t *testing.T) {
	m := testMap(t, Options{})
	pl := NewPolyline(m, []geo.LatLng{{Lat: 0}, {Lat: 1}})

	ed := pl.EnableEdit()
	require.Len(t, ed.Vertices(0), 2)

	pl.SetPoints([]geo.LatLng{{Lat: 0}, {Lat: 1}, {Lat: 2}, {Lat: 3}})
	ed.Reset()

	assert.True(t, ed.Enabled(), "reset must not change enabled state")
	assert.Len(t, ed.Vertices(0), 4)
	assert.Len(t, ed.Middles(0), 3)
}

func TestResetOnDisabledEditorIsNoop(t *testing.T) {
	m := testMap(t, Options{})
	pl := NewPolyline(m, []geo.LatLng{{Lat: 0}, {Lat: 1}})

	ed := pl.EnableEdit()
	ed.Disable()
	ed.Reset()

	assert.False(t, ed.Enabled())
	assert.Empty(t, ed.Vertices(0))
}

func TestDisabledHandlesIgnoreInput(t *testing.T) {
	m := testMap(t, Options{})
	pl := NewPolyline(m, []geo.LatLng{{Lat: 0}, {Lat: 1}})

	ed := pl.EnableEdit()
	v := ed.Vertices(0)[0]
	mid := ed.Middles(0)[0]
	ed.Disable()

	v.Drag(geo.LatLng{Lat: 9})
	assert.Equal(t, geo.LatLng{Lat: 0}, pl.Points()[0])
	assert.Nil(t, mid.Activate())
	assert.False(t, v.Delete())
}

func TestNewHoleSeedsRingAndKeepsOuter(t *testing.T) {
	m := testMap(t, Options{})
	outer := []geo.LatLng{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 10}, {Lat: 10, Lng: 10}, {Lat: 10, Lng: 0}}
	pg := NewPolygon(m, [][]geo.LatLng{outer})
	m.FeaturesLayer().Add(pg)

	ed := pg.EnableEdit()
	seed := geo.LatLng{Lat: 4, Lng: 4}
	ed.NewHole(&seed)

	rings := pg.Rings()
	require.Len(t, rings, 2)
	assert.Equal(t, outer, rings[0], "outer ring untouched")
	assert.Equal(t, []geo.LatLng{seed}, rings[1])

	tools := m.EditTools()
	require.True(t, tools.Drawing())
	tools.PushVertex(geo.LatLng{Lat: 4, Lng: 6})
	tools.PushVertex(geo.LatLng{Lat: 6, Lng: 5})

	g, ok := tools.CommitDrawing()
	require.True(t, ok)
	require.Same(t, pg, g)
	assert.Len(t, pg.Rings()[1], 3)
}

func TestDegenerateHoleDroppedOnCommit(t *testing.T) {
	m := testMap(t, Options{})
	outer := []geo.LatLng{{Lat: 0}, {Lng: 10}, {Lat: 10, Lng: 10}}
	pg := NewPolygon(m, [][]geo.LatLng{outer})
	m.FeaturesLayer().Add(pg)

	ed := pg.EnableEdit()
	ed.NewHole(&geo.LatLng{Lat: 1, Lng: 1})

	tools := m.EditTools()
	_, ok := tools.CommitDrawing()
	assert.False(t, ok)
	assert.Len(t, pg.Rings(), 1, "degenerate hole removed")
	assert.True(t, m.FeaturesLayer().Has(pg), "polygon itself survives")
}

func TestCancelledHoleRemoved(t *testing.T) {
	m := testMap(t, Options{})
	pg := NewPolygon(m, [][]geo.LatLng{{{Lat: 0}, {Lng: 10}, {Lat: 10, Lng: 10}}})
	m.FeaturesLayer().Add(pg)

	ed := pg.EnableEdit()
	ed.NewHole(nil)
	require.Len(t, pg.Rings(), 2)

	m.EditTools().StopDrawing()
	assert.Len(t, pg.Rings(), 1)
}

func TestNewHoleRequiresEnabledEditor(t *testing.T) {
	m := testMap(t, Options{})
	pg := NewPolygon(m, [][]geo.LatLng{{{Lat: 0}, {Lng: 10}, {Lat: 10, Lng: 10}}})

	ed := pg.EnableEdit()
	ed.Disable()
	ed.NewHole(nil)

	assert.Len(t, pg.Rings(), 1)
	assert.False(t, m.EditTools().Drawing())
}

func TestHoleHandlesTrackDrawing(t *testing.T) {
	m := testMap(t, Options{})
	pg := NewPolygon(m, [][]geo.LatLng{{{Lat: 0}, {Lng: 10}, {Lat: 10, Lng: 10}}})
	m.FeaturesLayer().Add(pg)

	ed := pg.EnableEdit()
	ed.NewHole(&geo.LatLng{Lat: 1, Lng: 1})

	tools := m.EditTools()
	tools.PushVertex(geo.LatLng{Lat: 1, Lng: 2})

	// Handles rebuilt live while the hole is drawn.
	assert.Len(t, ed.Vertices(1), 2)
}
