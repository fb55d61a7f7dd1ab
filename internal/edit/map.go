package edit

// Map is the handle editing hangs off: it owns the resolved edit options,
// the drawing controller and the two geometry layers. One instance per
// rendered map; single-owner, no internal locking.
type Map struct {
	name     string
	opts     Options
	tools    *Tools
	features *Layer
	edit     *Layer
	onCommit []func(Geometry)
}

// NewMap creates a map handle with defaults applied to opts.
func NewMap(name string, opts Options) *Map {
	m := &Map{
		name: name,
		opts: opts.withDefaults(),
	}
	m.features = &Layer{name: m.opts.FeaturesLayer}
	m.edit = &Layer{name: m.opts.EditLayer}
	m.tools = &Tools{m: m}

	return m
}

// Name returns the map name.
func (m *Map) Name() string { return m.name }

// EditOptions returns the resolved edit configuration.
func (m *Map) EditOptions() Options { return m.opts }

// EditTools returns the live drawing controller.
func (m *Map) EditTools() *Tools { return m.tools }

// FeaturesLayer holds committed geometries.
func (m *Map) FeaturesLayer() *Layer { return m.features }

// EditLayer holds in-progress draws and edit affordances.
func (m *Map) EditLayer() *Layer { return m.edit }

// OnCommit registers a callback fired after a draw is committed.
func (m *Map) OnCommit(fn func(Geometry)) {
	m.onCommit = append(m.onCommit, fn)
}

func (m *Map) fireCommit(g Geometry) {
	for _, fn := range m.onCommit {
		fn(g)
	}
}
