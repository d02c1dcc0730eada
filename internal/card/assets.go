// internal/card/assets.go
package card

import (
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
)

// Logical asset names. Each maps to "<name>.png" inside the asset directory.
const (
	AssetBackground = "background"
	AssetLogoSOL    = "logo_sol"
	AssetLogoETH    = "logo_eth"
	AssetSeparator  = "separator"
)

// AssetResolver загружает именованные графические ресурсы карточки.
// Отсутствие или повреждение файла никогда не является фатальной ошибкой:
// каждый элемент карточки имеет собственный визуальный fallback.
type AssetResolver struct {
	dir    string
	logger *zap.Logger
}

// NewAssetResolver creates a resolver over the given asset directory.
func NewAssetResolver(dir string, logger *zap.Logger) *AssetResolver {
	return &AssetResolver{
		dir:    dir,
		logger: logger.Named("assets"),
	}
}

// Resolve loads the named asset. ok=false means the caller must use the
// element's documented fallback; the render continues either way.
func (r *AssetResolver) Resolve(name string) (image.Image, bool) {
	path := filepath.Join(r.dir, name+".png")

	if _, err := os.Stat(path); err != nil {
		r.logger.Warn("Asset not found, using fallback",
			zap.String("asset", name),
			zap.String("path", path))
		return nil, false
	}

	img, err := imaging.Open(path)
	if err != nil {
		r.logger.Warn("Failed to decode asset, using fallback",
			zap.String("asset", name),
			zap.Error(err))
		return nil, false
	}

	return img, true
}
