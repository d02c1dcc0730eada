// internal/card/fonts.go
package card

import (
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

// Font files looked up inside the font directory.
const (
	fontRegularFile = "regular.ttf"
	fontBoldFile    = "bold.ttf"
)

type faceKey struct {
	bold bool
	size float64
}

// FontSet holds the parsed card fonts and a cache of sized faces. Faces are
// immutable after creation, so one FontSet is safe to share across
// concurrent renders.
type FontSet struct {
	regular *opentype.Font
	bold    *opentype.Font
	logger  *zap.Logger

	mu    sync.Mutex
	faces map[faceKey]font.Face
}

// LoadFonts parses the card fonts from dir. A missing or unparsable font
// file degrades to the built-in bitmap face so that measurement and drawing
// stay total; it never fails.
func LoadFonts(dir string, logger *zap.Logger) *FontSet {
	fs := &FontSet{
		logger: logger.Named("fonts"),
		faces:  make(map[faceKey]font.Face),
	}
	fs.regular = fs.parseFont(filepath.Join(dir, fontRegularFile))
	fs.bold = fs.parseFont(filepath.Join(dir, fontBoldFile))
	return fs
}

func (fs *FontSet) parseFont(path string) *opentype.Font {
	data, err := os.ReadFile(path)
	if err != nil {
		fs.logger.Warn("Font file not found, using built-in face",
			zap.String("path", path))
		return nil
	}
	f, err := opentype.Parse(data)
	if err != nil {
		fs.logger.Warn("Failed to parse font, using built-in face",
			zap.String("path", path),
			zap.Error(err))
		return nil
	}
	return f
}

// Regular returns the regular face at the given pixel size.
func (fs *FontSet) Regular(size float64) font.Face {
	return fs.face(fs.regular, faceKey{bold: false, size: size})
}

// Bold returns the bold face at the given pixel size.
func (fs *FontSet) Bold(size float64) font.Face {
	return fs.face(fs.bold, faceKey{bold: true, size: size})
}

func (fs *FontSet) face(src *opentype.Font, key faceKey) font.Face {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if f, ok := fs.faces[key]; ok {
		return f
	}

	var f font.Face = basicfont.Face7x13
	if src != nil {
		nf, err := opentype.NewFace(src, &opentype.FaceOptions{
			Size:    key.size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			fs.logger.Warn("Failed to build face, using built-in face",
				zap.Float64("size", key.size),
				zap.Error(err))
		} else {
			f = nf
		}
	}

	fs.faces[key] = f
	return f
}

// Measure returns the rendered pixel width of text in the given face.
// Deterministic for a fixed face/text pair; the renderer relies on it to
// position elements that follow previously drawn text.
func Measure(face font.Face, text string) int {
	d := font.Drawer{Face: face}
	return d.MeasureString(text).Ceil()
}

// LineHeight returns the face's line height in pixels, used to square the
// SOL logo against the text it follows.
func LineHeight(face font.Face) int {
	return face.Metrics().Height.Ceil()
}
