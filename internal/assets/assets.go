// Package assets builds the static payloads served by the web server: the
// minified single-page editor and the generated fallback images.
package assets

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"text/template"

	"github.com/chai2010/webp"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
	"github.com/tdewolff/minify/v2/svg"
)

//go:embed index.html.tpl style.css app.js marker.svg
var files embed.FS

const tileSize = 256

// Bundle holds the assets built once at startup.
type Bundle struct {
	IndexHTML       []byte
	Favicon         []byte
	TransparentTile []byte
}

type pageData struct {
	CSS string
	JS  string
	SVG string
}

// Build minifies and assembles the editor page and generates the fallback
// tile and favicon.
func Build() (*Bundle, error) {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", html.Minify)
	m.AddFunc("text/javascript", js.Minify)
	m.AddFunc("image/svg+xml", svg.Minify)

	cssMin, err := minifyFile(m, "text/css", "style.css")
	if err != nil {
		return nil, err
	}
	jsMin, err := minifyFile(m, "text/javascript", "app.js")
	if err != nil {
		return nil, err
	}
	svgMin, err := minifyFile(m, "image/svg+xml", "marker.svg")
	if err != nil {
		return nil, err
	}

	tplRaw, err := files.ReadFile("index.html.tpl")
	if err != nil {
		return nil, err
	}
	tpl, err := template.New("index").Parse(string(tplRaw))
	if err != nil {
		return nil, fmt.Errorf("parse index template: %w", err)
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, pageData{CSS: cssMin, JS: jsMin, SVG: svgMin}); err != nil {
		return nil, fmt.Errorf("execute index template: %w", err)
	}

	htmlMin, err := m.String("text/html", buf.String())
	if err != nil {
		return nil, fmt.Errorf("minify index: %w", err)
	}

	tile, err := transparentTile()
	if err != nil {
		return nil, err
	}

	icon, err := favicon()
	if err != nil {
		return nil, err
	}

	return &Bundle{
		IndexHTML:       []byte(htmlMin),
		Favicon:         icon,
		TransparentTile: tile,
	}, nil
}

func minifyFile(m *minify.M, mediatype, name string) (string, error) {
	raw, err := files.ReadFile(name)
	if err != nil {
		return "", err
	}

	out, err := m.String(mediatype, string(raw))
	if err != nil {
		return "", fmt.Errorf("minify %s: %w", name, err)
	}

	return out, nil
}

// transparentTile encodes an empty 256x256 webp served for missing tiles.
func transparentTile() ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, tileSize, tileSize))

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Lossless: true}); err != nil {
		return nil, fmt.Errorf("encode transparent tile: %w", err)
	}

	return buf.Bytes(), nil
}

// favicon draws a small solid pin square; browsers accept PNG favicons.
func favicon() ([]byte, error) {
	const size = 16
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	pin := color.RGBA{R: 0x2b, G: 0x82, B: 0xcb, A: 0xff}
	for y := 2; y < size-2; y++ {
		for x := 2; x < size-2; x++ {
			img.Set(x, y, pin)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode favicon: %w", err)
	}

	return buf.Bytes(), nil
}
