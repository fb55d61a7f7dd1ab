package edit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mapcraft/geoedit/internal/geo"
)

func TestStopDrawingIdleIsNoop(t *testing.T) {
	m := testMap(t, Options{})
	tools := m.EditTools()

	tools.StopDrawing()
	tools.StopDrawing()

	assert.False(t, tools.Drawing())
	assert.Nil(t, tools.InProgress())
	assert.Equal(t, 0, m.EditLayer().Len())
}

func TestCommitDrawingIdleIsNoop(t *testing.T) {
	m := testMap(t, Options{})

	g, ok := m.EditTools().CommitDrawing()
	assert.Nil(t, g)
	assert.False(t, ok)
	assert.Equal(t, 0, m.FeaturesLayer().Len())
}

func TestPolylineDrawCommitKeepsVertexOrder(t *testing.T) {
	m := testMap(t, Options{})
	tools := m.EditTools()

	pl := tools.StartPolyline(nil)
	require.True(t, tools.Drawing())
	require.True(t, m.EditLayer().Has(pl))

	a := geo.LatLng{Lat: 10, Lng: 20}
	b := geo.LatLng{Lat: 30, Lng: 40}
	require.True(t, tools.PushVertex(a))
	require.True(t, tools.PushVertex(b))

	g, ok := tools.CommitDrawing()
	require.True(t, ok)
	require.Same(t, pl, g)

	assert.False(t, tools.Drawing())
	assert.False(t, m.EditLayer().Has(pl))
	assert.True(t, m.FeaturesLayer().Has(pl))
	assert.Equal(t, []geo.LatLng{a, b}, pl.Points())
}

func TestPolylineSeededStart(t *testing.T) {
	m := testMap(t, Options{})
	seed := geo.LatLng{Lat: 1, Lng: 1}

	pl := m.EditTools().StartPolyline(&seed)
	assert.Equal(t, []geo.LatLng{seed}, pl.Points())
}

func TestDegeneratePolylineDiscardedOnCommit(t *testing.T) {
	m := testMap(t, Options{})
	tools := m.EditTools()

	tools.StartPolyline(nil)
	tools.PushVertex(geo.LatLng{Lat: 1})

	g, ok := tools.CommitDrawing()
	assert.Nil(t, g)
	assert.False(t, ok)
	assert.Equal(t, 0, m.FeaturesLayer().Len())
	assert.Equal(t, 0, m.EditLayer().Len())
}

func TestPolygonDrawCommit(t *testing.T) {
	m := testMap(t, Options{})
	tools := m.EditTools()

	pg := tools.StartPolygon(nil)
	tools.PushVertex(geo.LatLng{Lat: 0, Lng: 0})
	tools.PushVertex(geo.LatLng{Lat: 0, Lng: 1})
	tools.PushVertex(geo.LatLng{Lat: 1, Lng: 1})

	g, ok := tools.CommitDrawing()
	require.True(t, ok)
	require.Same(t, pg, g)
	require.Len(t, pg.Rings(), 1)
	assert.Len(t, pg.Rings()[0], 3)
	assert.True(t, m.FeaturesLayer().Has(pg))
}

func TestDegeneratePolygonDiscardedOnCommit(t *testing.T) {
	m := testMap(t, Options{})
	tools := m.EditTools()

	tools.StartPolygon(nil)
	tools.PushVertex(geo.LatLng{})
	tools.PushVertex(geo.LatLng{Lat: 1})

	_, ok := tools.CommitDrawing()
	assert.False(t, ok)
	assert.Equal(t, 0, m.FeaturesLayer().Len())
}

func TestMarkerDrawFollowsPushes(t *testing.T) {
	m := testMap(t, Options{})
	tools := m.EditTools()

	mk := tools.StartMarker(nil)
	tools.PushVertex(geo.LatLng{Lat: 1, Lng: 1})
	tools.PushVertex(geo.LatLng{Lat: 2, Lng: 2})
	assert.Equal(t, geo.LatLng{Lat: 2, Lng: 2}, mk.LatLng, "marker follows the pointer")

	g, ok := tools.CommitDrawing()
	require.True(t, ok)
	require.Same(t, mk, g)
	assert.True(t, m.FeaturesLayer().Has(mk))
	assert.False(t, m.EditLayer().Has(mk))
}

func TestStartWhileDrawingCancelsPrevious(t *testing.T) {
	m := testMap(t, Options{})
	tools := m.EditTools()

	pl := tools.StartPolyline(nil)
	tools.PushVertex(geo.LatLng{Lat: 1})
	tools.PushVertex(geo.LatLng{Lat: 2})

	mk := tools.StartMarker(nil)

	// The half-finished polyline is gone, never committed.
	assert.False(t, m.EditLayer().Has(pl))
	assert.False(t, m.FeaturesLayer().Has(pl))
	assert.Same(t, mk, tools.InProgress())
}

func TestStopDrawingDiscardsInProgress(t *testing.T) {
	m := testMap(t, Options{})
	tools := m.EditTools()

	pg := tools.StartPolygon(nil)
	tools.PushVertex(geo.LatLng{Lat: 1})
	tools.StopDrawing()

	assert.False(t, tools.Drawing())
	assert.False(t, m.EditLayer().Has(pg))
	assert.Equal(t, 0, m.FeaturesLayer().Len())
}

func TestPushVertexIdleReturnsFalse(t *testing.T) {
	m := testMap(t, Options{})
	assert.False(t, m.EditTools().PushVertex(geo.LatLng{Lat: 1}))
}

func TestOnCommitFires(t *testing.T) {
	m := testMap(t, Options{})

	var committed []Geometry
	m.OnCommit(func(g Geometry) { committed = append(committed, g) })

	tools := m.EditTools()
	mk := tools.StartMarker(nil)
	_, ok := tools.CommitDrawing()
	require.True(t, ok)
	require.Len(t, committed, 1)
	assert.Same(t, mk, committed[0])

	// Discarded draws do not fire.
	tools.StartPolyline(nil)
	tools.PushVertex(geo.LatLng{Lat: 1})
	_, ok = tools.CommitDrawing()
	require.False(t, ok)
	assert.Len(t, committed, 1)
}

func TestContinueForwardAppends(t *testing.T) {
	m := testMap(t, Options{})
	a := geo.LatLng{Lat: 1}
	b := geo.LatLng{Lat: 2}
	pl := NewPolyline(m, []geo.LatLng{a, b})
	m.FeaturesLayer().Add(pl)

	ed := pl.EnableEdit()
	ed.ContinueForward()

	tools := m.EditTools()
	require.True(t, tools.Drawing())
	c := geo.LatLng{Lat: 3}
	tools.PushVertex(c)

	g, ok := tools.CommitDrawing()
	require.True(t, ok)
	require.Same(t, pl, g)
	assert.Equal(t, []geo.LatLng{a, b, c}, pl.Points())
	assert.True(t, m.FeaturesLayer().Has(pl), "continued line stays committed")
}

func TestContinueBackwardPrepends(t *testing.T) {
	m := testMap(t, Options{})
	a := geo.LatLng{Lat: 1}
	b := geo.LatLng{Lat: 2}
	pl := NewPolyline(m, []geo.LatLng{a, b})
	m.FeaturesLayer().Add(pl)

	pl.EnableEdit().ContinueBackward()

	tools := m.EditTools()
	z := geo.LatLng{Lat: 0}
	tools.PushVertex(z)
	_, ok := tools.CommitDrawing()
	require.True(t, ok)

	assert.Equal(t, []geo.LatLng{z, a, b}, pl.Points())
}

func TestContinueRequiresEnabledEditor(t *testing.T) {
	m := testMap(t, Options{})
	pl := NewPolyline(m, []geo.LatLng{{Lat: 1}, {Lat: 2}})

	ed := pl.EnableEdit()
	ed.Disable()
	ed.ContinueForward()

	assert.False(t, m.EditTools().Drawing())
}

func TestCancelContinuedDrawKeepsLine(t *testing.T) {
	m := testMap(t, Options{})
	pl := NewPolyline(m, []geo.LatLng{{Lat: 1}, {Lat: 2}})
	m.FeaturesLayer().Add(pl)

	pl.EnableEdit().ContinueForward()
	m.EditTools().StopDrawing()

	assert.True(t, m.FeaturesLayer().Has(pl))
	assert.Len(t, pl.Points(), 2)
}
