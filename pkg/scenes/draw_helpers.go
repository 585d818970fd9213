package scenes

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/gonewx/sleighdash/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/gofont/goregular"
)

// 调色板：墨绿 + 强调红，浅色雪地背景
var (
	inkColor        color.Color = colornames.Darkgreen
	accentRed       color.Color = colornames.Crimson
	backgroundColor color.Color = colornames.Honeydew
	flashBlue       color.Color = color.RGBA{R: 0, G: 120, B: 255, A: 255}
	vignetteRedTint             = color.RGBA{R: 139, G: 0, B: 51, A: 255}
	bossBarBack     color.Color = color.RGBA{R: 0x33, G: 0, B: 0, A: 255}
	bossBarFrom                 = color.RGBA{R: 0xff, G: 0x33, B: 0x33, A: 255}
	bossBarTo                   = color.RGBA{R: 0xcc, G: 0, B: 0, A: 255}
	bossBody        color.Color = color.RGBA{R: 0x44, G: 0, B: 0, A: 255}
	coverColor      color.Color = color.RGBA{A: 160}
	scanlineColor   color.Color = color.RGBA{A: 13}
)

// rainbowStops 彩虹渐变色标（等距）
var rainbowStops = []color.RGBA{
	{R: 0xff, G: 0x00, B: 0x44, A: 0xff},
	{R: 0xff, G: 0xa5, B: 0x00, A: 0xff},
	{R: 0xff, G: 0xff, B: 0x00, A: 0xff},
	{R: 0x00, G: 0xff, B: 0x66, A: 0xff},
	{R: 0x00, G: 0xb3, B: 0xff, A: 0xff},
	{R: 0x8b, G: 0x00, B: 0xff, A: 0xff},
}

// rainbowBandCount 横向渐变的条带数
const rainbowBandCount = 30

// ImageSource 按槽位 ID 提供精灵图片，缺失时返回 nil
type ImageSource interface {
	GetImage(id string) *ebiten.Image
}

// withAlpha 按透明度缩放颜色（预乘 alpha）
func withAlpha(c color.Color, alpha float64) color.Color {
	alpha = utils.ClampF(alpha, 0, 1)
	r, g, b, a := c.RGBA()
	return color.RGBA64{
		R: uint16(float64(r) * alpha),
		G: uint16(float64(g) * alpha),
		B: uint16(float64(b) * alpha),
		A: uint16(float64(a) * alpha),
	}
}

// lerpColor 在两个不透明颜色之间线性插值
func lerpColor(a, b color.RGBA, t float64) color.RGBA {
	t = utils.ClampF(t, 0, 1)
	mix := func(x, y uint8) uint8 {
		return uint8(utils.Lerp(float64(x), float64(y), t) + 0.5)
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

// gradientAt 在等距色标上取 t ∈ [0,1] 处的颜色
func gradientAt(stops []color.RGBA, t float64) color.RGBA {
	if len(stops) == 0 {
		return color.RGBA{}
	}
	if len(stops) == 1 {
		return stops[0]
	}
	t = utils.ClampF(t, 0, 1)
	pos := t * float64(len(stops)-1)
	i := int(pos)
	if i >= len(stops)-1 {
		return stops[len(stops)-1]
	}
	return lerpColor(stops[i], stops[i+1], pos-float64(i))
}

// drawRainbowBands 用竖条近似从左到右的彩虹渐变
func drawRainbowBands(screen *ebiten.Image, x, y, w, h, alpha float64) {
	if w <= 0 || h <= 0 || alpha <= 0 {
		return
	}
	bw := w / rainbowBandCount
	for i := 0; i < rainbowBandCount; i++ {
		t := (float64(i) + 0.5) / rainbowBandCount
		clr := withAlpha(gradientAt(rainbowStops, t), alpha)
		vector.DrawFilledRect(screen, float32(x+float64(i)*bw), float32(y), float32(bw+1), float32(h), clr, false)
	}
}

// drawHorizontalGradient 绘制两色横向渐变矩形
func drawHorizontalGradient(screen *ebiten.Image, x, y, w, h float64, from, to color.RGBA, alpha float64) {
	if w <= 0 || h <= 0 {
		return
	}
	const bands = 16
	bw := w / bands
	for i := 0; i < bands; i++ {
		clr := withAlpha(lerpColor(from, to, (float64(i)+0.5)/bands), alpha)
		vector.DrawFilledRect(screen, float32(x+float64(i)*bw), float32(y), float32(bw+1), float32(h), clr, false)
	}
}

// newTextFace 创建 UI 字体
// 使用 x/image 内置的 Go Regular 字体，无需外部字体文件
//
// 参数:
//   - size: 字号（像素）
//
// 返回:
//   - *text.GoTextFace: 字体
//   - error: 字体解析失败时返回错误
func newTextFace(size float64) (*text.GoTextFace, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to load UI font: %w", err)
	}
	return &text.GoTextFace{Source: src, Size: size}, nil
}

// drawCenteredText 以 (x, y) 为底部中心绘制文字
// 字体不可用时回退到 DebugPrintAt
func drawCenteredText(screen *ebiten.Image, s string, face text.Face, x, y float64, clr color.Color) {
	if face == nil {
		ebitenutil.DebugPrintAt(screen, s, int(x)-len(s)*3, int(y)-16)
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignEnd
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, face, op)
}

// drawText 以 (x, y) 为左上角绘制文字
func drawText(screen *ebiten.Image, s string, face text.Face, x, y float64, clr color.Color) {
	if face == nil {
		ebitenutil.DebugPrintAt(screen, s, int(x), int(y))
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, face, op)
}

// drawImageRect 把图片拉伸绘制到目标矩形
func drawImageRect(screen, img *ebiten.Image, r utils.Rect, alpha float64) {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(r.W/float64(b.Dx()), r.H/float64(b.Dy()))
	op.GeoM.Translate(r.X, r.Y)
	if alpha < 1 {
		op.ColorScale.ScaleAlpha(float32(alpha))
	}
	screen.DrawImage(img, op)
}

// drawPlaceholder 缺失精灵时的占位方块：外框 + 内芯
func drawPlaceholder(screen *ebiten.Image, r utils.Rect, outer, inner color.Color) {
	vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), outer, false)
	iw := r.W - 6
	ih := r.H - 6
	if iw < 2 {
		iw = 2
	}
	if ih < 2 {
		ih = 2
	}
	vector.DrawFilledRect(screen, float32(r.X+3), float32(r.Y+3), float32(iw), float32(ih), inner, false)
}
