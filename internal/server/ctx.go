// Package server handles HTTP requests and middleware.
package server

import (
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/mapcraft/geoedit/internal/assets"
	"github.com/mapcraft/geoedit/internal/config"
	"github.com/mapcraft/geoedit/internal/edit"
	"github.com/mapcraft/geoedit/internal/store"
)

// session binds one edit engine map to a lock. Handlers run on arbitrary
// goroutines while the engine is single-owner, so access is serialized
// per map.
type session struct {
	mu sync.Mutex
	m  *edit.Map
}

// ServerContext holds dependencies for request handlers.
type ServerContext struct {
	Config          *config.Config
	Store           *store.Store
	MapNameResolver map[string]string
	IndexHTML       []byte
	Favicon         []byte
	TransparentTile []byte

	TilesRoot string
	sessions  map[string]*session
}

// NewServerContext initializes the context and processes the map
// configuration. It filters out maps with missing tile layers, sets up the
// name resolver and creates an edit session per valid map.
func NewServerContext(cfg *config.Config, st *store.Store, bundle *assets.Bundle) *ServerContext {
	log.Info().Int("config_maps_count", len(cfg.Maps)).Msg("Initializing server context")

	ctx := &ServerContext{
		Config:          cfg,
		Store:           st,
		MapNameResolver: make(map[string]string),
		IndexHTML:       bundle.IndexHTML,
		Favicon:         bundle.Favicon,
		TransparentTile: bundle.TransparentTile,
		TilesRoot:       "maps",
		sessions:        make(map[string]*session),
	}

	validMaps := make([]config.Map, 0, len(cfg.Maps))

	for i := range cfg.Maps {
		world := &cfg.Maps[i]

		if world.ZoomLimit <= 0 {
			world.ZoomLimit = cfg.ZoomLimit
		}
		if world.Attribution == "" {
			world.Attribution = cfg.Attribution
		}

		mapBaseDir := filepath.Join(ctx.TilesRoot, world.Name)
		world.NoTopographic = !layerExists(world.Name, mapBaseDir, "topographic", world.Topographic)
		world.NoSatellite = !layerExists(world.Name, mapBaseDir, "satellite", world.Satellite)

		if world.NoTopographic && world.NoSatellite {
			log.Warn().
				Str("map", world.Name).
				Msg("Skipping map: no valid layers found (neither topographic nor satellite)")
			continue
		}

		ctx.MapNameResolver[world.Name] = world.Name
		for _, alias := range world.Aliases {
			ctx.MapNameResolver[alias] = world.Name
		}

		ctx.sessions[world.Name] = newSession(cfg, world)

		log.Debug().
			Str("map", world.Name).
			Bool("topo", !world.NoTopographic).
			Bool("sat", !world.NoSatellite).
			Bool("read_only", world.ReadOnly).
			Msg("Map validated and added to context")

		validMaps = append(validMaps, *world)
	}

	cfg.Maps = validMaps

	sort.Slice(cfg.Maps, func(i, j int) bool {
		idxI, idxJ := 999999, 999999
		if cfg.Maps[i].Index != nil {
			idxI = *cfg.Maps[i].Index
		}
		if cfg.Maps[j].Index != nil {
			idxJ = *cfg.Maps[j].Index
		}
		if idxI != idxJ {
			return idxI < idxJ
		}

		return cfg.Maps[i].Name < cfg.Maps[j].Name
	})

	log.Info().
		Int("valid_maps_count", len(cfg.Maps)).
		Msg("Server context initialized successfully")

	return ctx
}

// newSession builds the edit engine map for one configured world.
func newSession(cfg *config.Config, world *config.Map) *session {
	m := edit.NewMap(world.Name, edit.Options{
		Editable:          !cfg.Edit.Disabled && !world.ReadOnly,
		DrawingClass:      cfg.Edit.DrawingClass,
		VertexMarkerClass: cfg.Edit.VertexClass,
		MiddleMarkerClass: cfg.Edit.MiddleClass,
		SkipMiddleMarkers: cfg.Edit.SkipMiddleMarkers,
		LineGuide:         cfg.Edit.LineGuide,
	})

	m.OnCommit(func(g edit.Geometry) {
		log.Info().
			Str("map", world.Name).
			Str("kind", g.Kind().String()).
			Msg("Drawing committed")
	})

	return &session{m: m}
}

// layerExists checks whether a configured tile layer has a cache directory.
func layerExists(mapName, baseDir, layer, source string) bool {
	if source == "" {
		log.Trace().
			Str("map", mapName).
			Str("layer", layer).
			Msg("Layer skipped: no source in config")

		return false
	}

	dir := filepath.Join(baseDir, layer)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		log.Trace().
			Str("map", mapName).
			Str("layer", layer).
			Str("path", dir).
			Msg("Layer skipped: directory not found")

		return false
	}

	log.Trace().
		Str("map", mapName).
		Str("layer", layer).
		Msg("Layer found")

	return true
}

// session returns the edit session behind a map name or alias.
func (s *ServerContext) session(name string) (*session, bool) {
	real, ok := s.MapNameResolver[name]
	if !ok {
		return nil, false
	}
	sess, ok := s.sessions[real]

	return sess, ok
}

// world returns the config entry behind a resolved map name.
func (s *ServerContext) world(name string) (*config.Map, bool) {
	real, ok := s.MapNameResolver[name]
	if !ok {
		return nil, false
	}
	for i := range s.Config.Maps {
		if s.Config.Maps[i].Name == real {
			return &s.Config.Maps[i], true
		}
	}

	return nil, false
}
