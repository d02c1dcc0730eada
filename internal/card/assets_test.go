package card

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeTestPNG(t *testing.T, dir, name string, w, h int) {
	t.Helper()
	img := imaging.New(w, h, color.NRGBA{R: 0x80, A: 0xff})
	require.NoError(t, imaging.Save(img, filepath.Join(dir, name+".png")))
}

func TestAssetResolver(t *testing.T) {
	dir := t.TempDir()
	writeTestPNG(t, dir, AssetBackground, 32, 32)

	r := NewAssetResolver(dir, zap.NewNop())

	img, ok := r.Resolve(AssetBackground)
	assert.True(t, ok)
	assert.Equal(t, image.Rect(0, 0, 32, 32), img.Bounds())

	img, ok = r.Resolve(AssetSeparator)
	assert.False(t, ok, "missing file must not be found")
	assert.Nil(t, img)
}

func TestAssetResolver_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, AssetLogoSOL+".png"), []byte("not a png"), 0644))

	r := NewAssetResolver(dir, zap.NewNop())

	img, ok := r.Resolve(AssetLogoSOL)
	assert.False(t, ok, "decode failure must degrade, not propagate")
	assert.Nil(t, img)
}
