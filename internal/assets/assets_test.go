package assets

import (
	"bytes"
	"image"
	_ "image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "golang.org/x/image/webp"
)

func TestBuild(t *testing.T) {
	b, err := Build()
	require.NoError(t, err)

	html := string(b.IndexHTML)
	assert.Contains(t, html, "geoedit")
	assert.Contains(t, html, "map-select")
	// Template placeholders must be resolved.
	assert.NotContains(t, html, "{{")

	require.NotEmpty(t, b.TransparentTile)
	img, format, err := image.Decode(bytes.NewReader(b.TransparentTile))
	require.NoError(t, err)
	assert.Equal(t, "webp", format)
	assert.Equal(t, tileSize, img.Bounds().Dx())

	require.NotEmpty(t, b.Favicon)
	_, format, err = image.Decode(bytes.NewReader(b.Favicon))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
}
