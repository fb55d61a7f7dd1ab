package server

import (
	"bytes"
	"image"
	"image/draw"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/chai2010/webp"
	"github.com/rs/zerolog/log"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // webp decoder for parent tile fallback
)

const tileSize = 256

// serveTile serves one map tile. Missing tiles fall back in order: the
// other layer, an upscaled quadrant of the parent zoom tile, and finally
// the cached transparent tile.
func (s *ServerContext) serveTile(w http.ResponseWriter, r *http.Request, mapName, layer, z, x, yFile string) {
	// allow only known layers to prevent path probing
	if layer != "topographic" && layer != "satellite" {
		http.NotFound(w, r)
		return
	}

	tryServe := func(l string) bool {
		return s.serveFile(w, r, s.tilePath(mapName, l, z, x, yFile), "")
	}

	// try requested layer
	if tryServe(layer) {
		return
	}

	// fallback to the other layer
	alt := "satellite"
	if layer == "satellite" {
		alt = "topographic"
	}
	if tryServe(alt) {
		return
	}

	// upscale the parent zoom tile when one exists
	if data, ok := s.upscaledParentTile(mapName, layer, alt, z, x, yFile); ok {
		w.Header().Set("Content-Type", "image/webp")
		w.Header().Set("Cache-Control", "public, max-age=600")
		_, _ = w.Write(data)
		return
	}

	// cache transparent tile
	w.Header().Set("Content-Type", "image/webp")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(s.TransparentTile)
}

// upscaledParentTile crops the quadrant of the z-1 tile covering the
// requested tile and scales it up to tile size.
func (s *ServerContext) upscaledParentTile(mapName, layer, alt, zs, xs, yFile string) ([]byte, bool) {
	z, errZ := strconv.Atoi(zs)
	x, errX := strconv.Atoi(xs)
	y, errY := strconv.Atoi(strings.TrimSuffix(yFile, ".webp"))
	if errZ != nil || errX != nil || errY != nil || z <= 0 {
		return nil, false
	}

	parentFile := strconv.Itoa(y/2) + ".webp"
	parent := s.tilePath(mapName, layer, strconv.Itoa(z-1), strconv.Itoa(x/2), parentFile)
	data, err := os.ReadFile(parent)
	if err != nil {
		parent = s.tilePath(mapName, alt, strconv.Itoa(z-1), strconv.Itoa(x/2), parentFile)
		if data, err = os.ReadFile(parent); err != nil {
			return nil, false
		}
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		log.Trace().Err(err).Str("path", parent).Msg("Failed to decode parent tile")
		return nil, false
	}

	half := tileSize / 2
	quadrant := image.Rect(
		src.Bounds().Min.X+(x%2)*half,
		src.Bounds().Min.Y+(y%2)*half,
		src.Bounds().Min.X+(x%2)*half+half,
		src.Bounds().Min.Y+(y%2)*half+half,
	)

	dst := image.NewRGBA(image.Rect(0, 0, tileSize, tileSize))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, quadrant, draw.Over, nil)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, dst, &webp.Options{Lossless: false, Quality: 80}); err != nil {
		log.Trace().Err(err).Msg("Failed to encode upscaled tile")
		return nil, false
	}

	return buf.Bytes(), true
}
