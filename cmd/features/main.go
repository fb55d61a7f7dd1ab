// Command features imports and exports stored map features.
//
// Export writes a map's feature collection as GeoJSON or YAML to a file or
// stdout. Import reads a GeoJSON feature collection and stores every
// feature; point data in image pixel coordinates can be reprojected with
// --pixels and --size.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/mapcraft/geoedit/internal/geo"
	"github.com/mapcraft/geoedit/internal/logger"
	"github.com/mapcraft/geoedit/internal/store"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	Database string  `short:"d" long:"database" env:"DATABASE_FILE" description:"Path to feature database" default:"features.db"`
	Map      string  `short:"m" long:"map" description:"Map name" required:"true"`
	Input    string  `short:"i" long:"in" description:"GeoJSON file to import. Export mode if empty"`
	Output   string  `short:"o" long:"out" description:"Output file path. Writes to stdout if empty"`
	Format   string  `short:"f" long:"format" description:"Export format" choice:"json" choice:"yaml" default:"json"`
	Pixels   bool    `long:"pixels" description:"Treat imported coordinates as image pixels"`
	Size     float64 `short:"s" long:"size" description:"Image size in pixels, required with --pixels"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	if opts.Pixels && opts.Size <= 0 {
		log.Fatal().Msg("--pixels requires --size")
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open feature database")
	}
	defer func() { _ = st.Close() }()

	if opts.Input != "" {
		importFeatures(st, opts)
		return
	}

	exportFeatures(st, opts)
}

func exportFeatures(st *store.Store, opts Options) {
	fc, err := st.List(opts.Map)
	if err != nil {
		log.Fatal().Err(err).Str("map", opts.Map).Msg("Failed to list features")
	}

	data, err := geo.Marshal(fc)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to encode features")
	}

	if opts.Format == "yaml" {
		// Round-trip through a generic value so raw JSON coordinates
		// come out as YAML sequences, not binary blobs.
		var generic interface{}
		if err := geo.Unmarshal(data, &generic); err != nil {
			log.Fatal().Err(err).Msg("Failed to decode features")
		}
		if data, err = yaml.Marshal(generic); err != nil {
			log.Fatal().Err(err).Msg("Failed to encode YAML")
		}
	}

	out := io.Writer(os.Stdout)
	if opts.Output != "" {
		f, err := os.Create(opts.Output)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create output file")
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	if _, err := out.Write(append(data, '\n')); err != nil {
		log.Fatal().Err(err).Msg("Failed to write output")
	}

	log.Info().
		Str("map", opts.Map).
		Int("features", len(fc.Features)).
		Msg("Export finished")
}

func importFeatures(st *store.Store, opts Options) {
	data, err := os.ReadFile(opts.Input)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read input file")
	}

	var fc geo.FeatureCollection
	if err := geo.Unmarshal(data, &fc); err != nil {
		log.Fatal().Err(err).Msg("Failed to parse GeoJSON")
	}

	imported := 0
	for _, f := range fc.Features {
		if opts.Pixels {
			if f, err = reproject(f, opts.Size); err != nil {
				log.Error().Err(err).Msg("Skipping feature")
				continue
			}
		}

		if _, err := st.Put(opts.Map, f); err != nil {
			log.Fatal().Err(err).Msg("Failed to store feature")
		}
		imported++
	}

	log.Info().
		Str("map", opts.Map).
		Int("features", imported).
		Msg("Import finished")
}

// reproject converts pixel coordinates to WGS84 for any geometry kind.
func reproject(f geo.Feature, size float64) (geo.Feature, error) {
	switch f.Geometry.Type {
	case geo.TypePoint:
		ll, err := f.Geometry.Point()
		if err != nil {
			return f, err
		}
		f.Geometry = geo.NewPoint(pixelToLatLng(ll, size))

	case geo.TypeLineString:
		path, err := f.Geometry.LineString()
		if err != nil {
			return f, err
		}
		for i, ll := range path {
			path[i] = pixelToLatLng(ll, size)
		}
		f.Geometry = geo.NewLineString(path)

	case geo.TypePolygon:
		rings, err := f.Geometry.Polygon()
		if err != nil {
			return f, err
		}
		for _, ring := range rings {
			for i, ll := range ring {
				ring[i] = pixelToLatLng(ll, size)
			}
		}
		f.Geometry = geo.NewPolygon(rings)

	default:
		return f, fmt.Errorf("unsupported geometry type %q", f.Geometry.Type)
	}

	return f, nil
}

// pixelToLatLng reads the pixel position out of the lng/lat slots used by
// the GeoJSON encoding and projects it.
func pixelToLatLng(ll geo.LatLng, size float64) geo.LatLng {
	return geo.ImageToLatLng(ll.Lng, ll.Lat, size)
}
