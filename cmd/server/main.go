package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"

	"github.com/mapcraft/geoedit/internal/assets"
	"github.com/mapcraft/geoedit/internal/config"
	"github.com/mapcraft/geoedit/internal/logger"
	"github.com/mapcraft/geoedit/internal/server"
	"github.com/mapcraft/geoedit/internal/store"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string `short:"c" long:"config"     env:"CONFIG_FILE"    description:"Path to configuration file" default:"config.yaml"`
	Database   string `short:"d" long:"database"   env:"DATABASE_FILE"  description:"Path to feature database"   default:"features.db"`
	Addr       string `short:"a" long:"addr"       env:"LISTEN_ADDRESS" description:"Address to listen on"       default:"0.0.0.0"`
	Port       int    `short:"p" long:"port"       env:"LISTEN_PORT"    description:"Port to listen on"          default:"8080"`
	ZoomLimit  int    `short:"z" long:"zoom-limit" env:"ZOOM_LIMIT"     description:"Tiles zoom limit"           default:"6"`
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

	// Setup Logging
	opts.Logger.Setup()

	// Load Config
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if cfg.ZoomLimit <= 0 {
		if opts.ZoomLimit <= 0 {
			cfg.ZoomLimit = 6
		} else {
			cfg.ZoomLimit = opts.ZoomLimit
		}
	}

	// Build static assets
	bundle, err := assets.Build()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build assets")
	}

	// Open feature storage
	st, err := store.Open(opts.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open feature database")
	}
	defer func() { _ = st.Close() }()

	srvCtx := server.NewServerContext(cfg, st, bundle)

	// Routes
	mux := http.NewServeMux()
	mux.HandleFunc("/api/maps", srvCtx.HandleMapsList)
	mux.HandleFunc("/api/maps/", srvCtx.HandleDraw)
	mux.HandleFunc("/favicon.ico", srvCtx.HandleFavicon)
	mux.HandleFunc("/maps/", srvCtx.HandleMapAssets)
	mux.HandleFunc("/", srvCtx.HandleIndex)

	handler := server.RequestLogger(mux)

	listenAddr := fmt.Sprintf("%s:%d", opts.Addr, opts.Port)
	log.Info().
		Str("addr", listenAddr).
		Int("maps_loaded", len(cfg.Maps)).
		Int("default_zoom", cfg.ZoomLimit).
		Str("database", opts.Database).
		Msg("Web server started")

	if err := http.ListenAndServe(listenAddr, handler); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
