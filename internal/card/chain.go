// internal/card/chain.go
package card

import (
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
)

// Chain определяет экосистему токена, выбранную для карточки
type Chain string

const (
	// ChainSOL использует логотип Solana, масштабируемый в квадрат по высоте строки
	ChainSOL Chain = "SOL"
	// ChainETH использует логотип Ethereum с фиксированной шириной и сохранением пропорций
	ChainETH Chain = "ETH"
)

// ethLogoWidth is the fixed render width of the Ethereum logo in pixels.
const ethLogoWidth = 52

// ParseChain normalizes and validates a user-supplied chain name.
func ParseChain(s string) (Chain, error) {
	switch Chain(strings.ToUpper(strings.TrimSpace(s))) {
	case ChainSOL:
		return ChainSOL, nil
	case ChainETH:
		return ChainETH, nil
	default:
		return "", fmt.Errorf("unknown chain: %q", s)
	}
}

// LogoAsset returns the logical asset name of the chain's logo.
func (c Chain) LogoAsset() string {
	switch c {
	case ChainETH:
		return AssetLogoETH
	default:
		return AssetLogoSOL
	}
}

// LogoSizing scales a chain logo so it can sit beside a line of text.
type LogoSizing func(src image.Image, lineHeight int) image.Image

// Sizing returns the logo sizing policy associated with the chain.
// SOL is squared to the text line height; ETH keeps its aspect ratio at a
// fixed width. Adding a chain means adding a variant here, not branching
// inside the renderer.
func (c Chain) Sizing() LogoSizing {
	switch c {
	case ChainETH:
		return func(src image.Image, _ int) image.Image {
			return imaging.Resize(src, ethLogoWidth, 0, imaging.Lanczos)
		}
	default:
		return func(src image.Image, lineHeight int) image.Image {
			return imaging.Resize(src, lineHeight, lineHeight, imaging.Lanczos)
		}
	}
}
