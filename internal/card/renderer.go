// internal/card/renderer.go
package card

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/sync/errgroup"
)

// Card surface dimensions. Every render produces exactly this raster.
const (
	CardWidth  = 1600
	CardHeight = 1071
)

// Card palette.
var (
	fallbackFill = color.NRGBA{R: 0x10, G: 0x12, B: 0x18, A: 0xff}
	profitGreen  = color.NRGBA{R: 0x16, G: 0xc7, B: 0x84, A: 0xff}
	lossRed      = color.NRGBA{R: 0xff, G: 0x45, B: 0x5a, A: 0xff}
	textWhite    = color.NRGBA{R: 0xf5, G: 0xf6, B: 0xf8, A: 0xff}
	textMuted    = color.NRGBA{R: 0x8a, G: 0x91, B: 0x9e, A: 0xff}
	panelDark    = color.NRGBA{R: 0x17, G: 0x19, B: 0x20, A: 0xff}
	panelBorder  = color.NRGBA{R: 0x2c, G: 0x2f, B: 0x38, A: 0xff}
	boxFill      = color.NRGBA{R: 0x1d, G: 0x20, B: 0x28, A: 0xff}
)

// Layout anchors, in canvas pixels. Text anchors are baselines.
const (
	labelBoxX, labelBoxY = 1272, 56
	labelBoxW, labelBoxH = 272, 72

	tickerX, tickerY   = 96, 214
	sectionX, sectionY = 96, 320
	profitX, profitY   = 96, 452
	qtyX, qtyY         = 96, 566

	panelX, panelY = 96, 640
	panelW, panelH = 1408, 320
	dividerY       = 728
	dividerH       = 6

	labelRowY    = 706
	investedColX = 140
	soldColX     = 860
	amountRowY   = 845
	usdRowY      = 922

	logoMargin   = 18
	roiSuffixGap = 10

	separatorFallbackX = 760
	investedLogoFbX    = 560
	soldLogoFbX        = 1380
)

// Font sizes.
const (
	captionSize   = 30
	tickerSize    = 96
	sectionSize   = 40
	profitSize    = 112
	qtySize       = 56
	labelSize     = 34
	roiSuffixSize = 26
	amountSize    = 64
	usdSize       = 30
)

// separatorHeight is the render height of the separator asset; width
// follows from its aspect ratio.
const separatorHeight = 56

const (
	cardCaption     = "MUGSHOT"
	sectionHeader   = "PROFIT/LOSS"
	placeholderMark = "*"
	separatorGlyph  = ">"
)

// resolvedAssets holds the per-render asset lookups. Each element keeps its
// own found flag so every fallback degrades independently.
type resolvedAssets struct {
	background image.Image
	logo       image.Image
	separator  image.Image
	bgOK       bool
	logoOK     bool
	sepOK      bool
}

// Renderer композитит торговую карточку в растровый буфер фиксированного
// размера. Каждый вызов Render владеет собственной поверхностью; общие
// FontSet и AssetResolver после инициализации только читаются.
type Renderer struct {
	assets *AssetResolver
	fonts  *FontSet
	logger *zap.Logger
}

// NewRenderer creates a card renderer.
func NewRenderer(assets *AssetResolver, fonts *FontSet, logger *zap.Logger) *Renderer {
	return &Renderer{
		assets: assets,
		fonts:  fonts,
		logger: logger.Named("renderer"),
	}
}

// Render executes the fixed draw script over a fresh 1600x1071 surface and
// returns the PNG-encoded result. Missing assets degrade element by element;
// the returned buffer always has the full card dimensions.
func (r *Renderer) Render(ctx context.Context, in TradeInput) ([]byte, error) {
	m := ComputeMetrics(in)

	r.logger.Debug("Rendering card",
		zap.String("ticker", in.Ticker),
		zap.String("chain", string(in.Chain)),
		zap.Float64("profit_usd", m.ProfitUSD),
		zap.Bool("profitable", m.IsProfitable))

	assets := r.resolveAssets(ctx, in.Chain)

	// Surface starts as the documented fallback fill; the background asset
	// overwrites it when present.
	dst := imaging.New(CardWidth, CardHeight, fallbackFill)

	dst = r.drawBackground(dst, assets)
	r.drawLabelBox(dst)
	r.drawHeadline(dst, in, m)
	dst = r.drawQuantityRow(dst, in, m, assets)
	r.drawPanel(dst)
	r.drawLabelsRow(dst, m)
	dst, investedEnd := r.drawInvestedAmount(dst, in, assets)
	dst = r.drawSoldAmount(dst, in, m, assets, investedEnd)
	r.drawUSDRow(dst, m)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("failed to encode card: %w", err)
	}
	return buf.Bytes(), nil
}

// resolveAssets loads the three optional assets concurrently. Asset I/O is
// the only suspendable work in a render; drawing is synchronous once the
// lookups complete.
func (r *Renderer) resolveAssets(ctx context.Context, chain Chain) *resolvedAssets {
	out := &resolvedAssets{}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		out.background, out.bgOK = r.assets.Resolve(AssetBackground)
		return nil
	})
	g.Go(func() error {
		out.logo, out.logoOK = r.assets.Resolve(chain.LogoAsset())
		return nil
	})
	g.Go(func() error {
		out.separator, out.sepOK = r.assets.Resolve(AssetSeparator)
		return nil
	})
	_ = g.Wait()

	return out
}

// Step 1: background scaled to fill the surface, or the solid fallback fill.
func (r *Renderer) drawBackground(dst *image.NRGBA, assets *resolvedAssets) *image.NRGBA {
	if !assets.bgOK {
		return dst
	}
	bg := imaging.Resize(assets.background, CardWidth, CardHeight, imaging.Lanczos)
	return imaging.Paste(dst, bg, image.Pt(0, 0))
}

// Step 2: framed caption box in the top-right corner. Static geometry.
func (r *Renderer) drawLabelBox(dst *image.NRGBA) {
	box := image.Rect(labelBoxX, labelBoxY, labelBoxX+labelBoxW, labelBoxY+labelBoxH)
	fillRect(dst, box, boxFill)
	strokeRect(dst, box, panelBorder, 3)

	face := r.fonts.Bold(captionSize)
	w := Measure(face, cardCaption)
	x := labelBoxX + (labelBoxW-w)/2
	y := labelBoxY + (labelBoxH-LineHeight(face))/2 + face.Metrics().Ascent.Ceil()
	drawText(dst, cardCaption, x, y, face, textWhite)
}

// Steps 3-5: ticker headline, section header, signed profit amount.
func (r *Renderer) drawHeadline(dst *image.NRGBA, in TradeInput, m DerivedMetrics) {
	drawText(dst, "$"+in.Ticker, tickerX, tickerY, r.fonts.Bold(tickerSize), textWhite)
	drawText(dst, sectionHeader, sectionX, sectionY, r.fonts.Regular(sectionSize), textMuted)

	sign := "+"
	if !m.IsProfitable {
		sign = "-"
	}
	drawText(dst, FormatCurrency(math.Abs(m.ProfitUSD), sign),
		profitX, profitY, r.fonts.Bold(profitSize), profitColor(m))
}

// Step 6: profit quantity followed by the chain logo at a measured offset.
// The slot displays the raw token quantity; the sizing policy comes from
// the chain variant.
func (r *Renderer) drawQuantityRow(dst *image.NRGBA, in TradeInput, m DerivedMetrics, assets *resolvedAssets) *image.NRGBA {
	face := r.fonts.Bold(qtySize)
	w := drawText(dst, FormatQuantity(m.ProfitQuantity), qtyX, qtyY, face, textWhite)

	return r.placeLogo(dst, in.Chain, assets, face, qtyX+w+logoMargin, qtyY, qtyX+w+logoMargin)
}

// Step 7: investment panel and divider bar. Static geometry.
func (r *Renderer) drawPanel(dst *image.NRGBA) {
	panel := image.Rect(panelX, panelY, panelX+panelW, panelY+panelH)
	fillRect(dst, panel, panelDark)
	strokeRect(dst, panel, panelBorder, 3)
	fillRect(dst, image.Rect(panelX, dividerY, panelX+panelW, dividerY+dividerH), panelBorder)
}

// Step 8: INVESTED label and the two-part "SOLD {roi}" + "X ROI" label.
// The suffix trails the measured width of the bold part.
func (r *Renderer) drawLabelsRow(dst *image.NRGBA, m DerivedMetrics) {
	bold := r.fonts.Bold(labelSize)
	drawText(dst, "INVESTED", investedColX, labelRowY, bold, textMuted)

	sold := "SOLD " + FormatROI(m.ROI)
	w := drawText(dst, sold, soldColX, labelRowY, bold, textMuted)
	drawText(dst, "X ROI", soldColX+w+roiSuffixGap, labelRowY, r.fonts.Regular(roiSuffixSize), textMuted)
}

// Step 9: invested amount with its logo. Returns the x coordinate where the
// invested slot ends, which bounds the separator gap in step 10.
func (r *Renderer) drawInvestedAmount(dst *image.NRGBA, in TradeInput, assets *resolvedAssets) (*image.NRGBA, int) {
	face := r.fonts.Bold(amountSize)
	w := drawText(dst, FormatAmount(in.InitialInvestment), investedColX, amountRowY, face, textWhite)

	slotX := investedColX + w + logoMargin
	dst = r.placeLogo(dst, in.Chain, assets, face, slotX, amountRowY, investedLogoFbX)

	end := slotX
	if assets.logoOK {
		end += sizedLogoWidth(in.Chain, assets.logo, LineHeight(face))
	}
	return dst, end
}

// Step 10: separator centered in the gap, then the sold amount and its logo
// at the fixed mid-panel anchor.
func (r *Renderer) drawSoldAmount(dst *image.NRGBA, in TradeInput, m DerivedMetrics, assets *resolvedAssets, investedEnd int) *image.NRGBA {
	face := r.fonts.Bold(amountSize)

	if assets.sepOK {
		sep := imaging.Resize(assets.separator, 0, separatorHeight, imaging.Lanczos)
		x := investedEnd + (soldColX-investedEnd-sep.Bounds().Dx())/2
		if x < investedEnd {
			x = investedEnd
		}
		top := amountRowY - face.Metrics().Ascent.Ceil() + (LineHeight(face)-separatorHeight)/2
		dst = imaging.Overlay(dst, sep, image.Pt(x, top), 1.0)
	} else {
		// No gap-centering for the glyph fallback: fixed coordinate.
		drawText(dst, separatorGlyph, separatorFallbackX, amountRowY, face, textMuted)
	}

	w := drawText(dst, FormatAmount(in.FinalAmount), soldColX, amountRowY, face, profitColor(m))
	return r.placeLogo(dst, in.Chain, assets, face, soldColX+w+logoMargin, amountRowY, soldLogoFbX)
}

// Step 11: muted USD equivalents under both amounts.
func (r *Renderer) drawUSDRow(dst *image.NRGBA, m DerivedMetrics) {
	face := r.fonts.Regular(usdSize)
	drawText(dst, FormatCurrency(m.InitialUSD, ""), investedColX, usdRowY, face, textMuted)
	drawText(dst, FormatCurrency(m.FinalUSD, ""), soldColX, usdRowY, face, textMuted)
}

// placeLogo draws the chain logo sized by the chain's policy so its top
// aligns with the text line at baseline y. A missing logo never empties the
// slot: the placeholder glyph lands on fallbackX instead.
func (r *Renderer) placeLogo(dst *image.NRGBA, chain Chain, assets *resolvedAssets, face font.Face, x, baseline, fallbackX int) *image.NRGBA {
	if !assets.logoOK {
		drawText(dst, placeholderMark, fallbackX, baseline, face, textMuted)
		return dst
	}
	scaled := chain.Sizing()(assets.logo, LineHeight(face))
	top := baseline - face.Metrics().Ascent.Ceil() + (LineHeight(face)-scaled.Bounds().Dy())/2
	return imaging.Overlay(dst, scaled, image.Pt(x, top), 1.0)
}

// sizedLogoWidth reports how wide the logo will render without drawing it.
func sizedLogoWidth(chain Chain, logo image.Image, lineHeight int) int {
	return chain.Sizing()(logo, lineHeight).Bounds().Dx()
}

func profitColor(m DerivedMetrics) color.NRGBA {
	if m.IsProfitable {
		return profitGreen
	}
	return lossRed
}

// drawText draws text at the baseline anchor and returns its advance width
// in pixels, which positions elements that must follow the text.
func drawText(dst *image.NRGBA, text string, x, y int, face font.Face, col color.Color) int {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
	return (d.Dot.X - fixed.I(x)).Ceil()
}

func fillRect(dst *image.NRGBA, rect image.Rectangle, col color.Color) {
	draw.Draw(dst, rect, image.NewUniform(col), image.Point{}, draw.Over)
}

func strokeRect(dst *image.NRGBA, rect image.Rectangle, col color.Color, px int) {
	fillRect(dst, image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+px), col)
	fillRect(dst, image.Rect(rect.Min.X, rect.Max.Y-px, rect.Max.X, rect.Max.Y), col)
	fillRect(dst, image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+px, rect.Max.Y), col)
	fillRect(dst, image.Rect(rect.Max.X-px, rect.Min.Y, rect.Max.X, rect.Max.Y), col)
}
