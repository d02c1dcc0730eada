package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// An empty font directory must degrade to the built-in bitmap face so that
// measurement and drawing stay total.
func TestLoadFonts_MissingFilesFallBack(t *testing.T) {
	fs := LoadFonts(t.TempDir(), zap.NewNop())

	regular := fs.Regular(32)
	bold := fs.Bold(64)
	assert.NotNil(t, regular)
	assert.NotNil(t, bold)
	assert.Positive(t, LineHeight(regular))
	assert.Positive(t, LineHeight(bold))
}

func TestMeasure(t *testing.T) {
	fs := LoadFonts(t.TempDir(), zap.NewNop())
	face := fs.Regular(32)

	short := Measure(face, "ab")
	long := Measure(face, "abcdef")
	assert.Positive(t, short)
	assert.Greater(t, long, short, "longer text must measure wider")

	// Deterministic for a fixed face/text pair.
	assert.Equal(t, short, Measure(face, "ab"))
	assert.Zero(t, Measure(face, ""))
}

// Faces are cached per size/weight, so repeated lookups return the same
// instance and measurement stays stable across renders.
func TestFontSet_FaceCache(t *testing.T) {
	fs := LoadFonts(t.TempDir(), zap.NewNop())

	a := fs.Bold(48)
	b := fs.Bold(48)
	assert.Equal(t, a, b)
}
