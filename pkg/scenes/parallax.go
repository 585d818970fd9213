package scenes

import (
	"math"

	"github.com/gonewx/sleighdash/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	// parallaxBaseSpeed 背景基础滚动速度（像素/秒）
	parallaxBaseSpeed = 90.0
	// parallaxInputGain 纵向输入对滚动速度的影响
	parallaxInputGain = 20.0
	// parallaxMinSpeedMul 背景滚动倍率下限
	parallaxMinSpeedMul = 0.5
	// tileScale 地砖相对原图的缩放
	tileScale = 0.125
)

// Parallax 滚动背景
//
// 背景向上滚动，速度随速度倍率增长；按住"上"会加快、按住"下"会减慢。
// 多张地砖时按世界格坐标哈希选择，屏幕内的格子选择保持稳定。
type Parallax struct {
	offsetY float64
	scale   float64
}

// NewParallax 创建滚动背景
func NewParallax(scale float64) *Parallax {
	p := &Parallax{}
	p.SetScale(scale)
	return p
}

// SetScale 设置尺寸缩放，下限 0.5
func (p *Parallax) SetScale(scale float64) {
	if scale < 0.5 || math.IsNaN(scale) {
		scale = 0.5
	}
	p.scale = scale
}

// Update 推进滚动偏移
//
// 参数:
//   - dt: 帧时间（秒）
//   - speedMul: 当前速度倍率（下限 0.5）
//   - inputY: 纵向输入 {-1, 0, 1}
func (p *Parallax) Update(dt, speedMul float64, inputY int) {
	if speedMul < parallaxMinSpeedMul {
		speedMul = parallaxMinSpeedMul
	}
	p.offsetY -= (parallaxBaseSpeed*speedMul - float64(inputY)*parallaxInputGain) * dt
}

// OffsetY 返回当前滚动偏移
func (p *Parallax) OffsetY() float64 {
	return p.offsetY
}

// Reset 回到初始偏移
func (p *Parallax) Reset() {
	p.offsetY = 0
}

// tileIndex 世界格坐标哈希到地砖索引 [0, n)
// 乘法按 32 位回绕
func tileIndex(cellX, cellY, n int) int {
	if n <= 0 {
		return 0
	}
	h := uint32(int64(cellX)*374761393) ^ uint32(int64(cellY)*668265263)
	return int(h % uint32(n))
}

// rowStart 首行的绘制 Y 坐标，保证覆盖画布顶端
func rowStart(offsetY, rowHeight float64) float64 {
	return -math.Mod(offsetY, rowHeight) - rowHeight
}

// Draw 绘制背景
//
// 参数:
//   - screen: 目标画布
//   - tiles: 已加载的地砖（可为空）
//   - cloud: 云朵精灵（可为 nil）
func (p *Parallax) Draw(screen *ebiten.Image, tiles []*ebiten.Image, cloud *ebiten.Image) {
	b := screen.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())

	if len(tiles) > 0 {
		p.drawTiles(screen, tiles, w, h)
		return
	}
	p.drawClouds(screen, cloud, w, h)
}

func (p *Parallax) drawTiles(screen *ebiten.Image, tiles []*ebiten.Image, w, h float64) {
	sb := tiles[0].Bounds()
	tw := math.Max(1, math.Floor(float64(sb.Dx())*p.scale*tileScale))
	th := math.Max(1, math.Floor(float64(sb.Dy())*p.scale*tileScale))

	for y := rowStart(p.offsetY, th); y < h+th; y += th {
		cellY := int(math.Floor((y + p.offsetY) / th))
		for x := 0.0; x < w+tw; x += tw {
			cellX := int(math.Floor(x / tw))
			img := tiles[tileIndex(cellX, cellY, len(tiles))]
			drawImageRect(screen, img, utils.Rect{X: x, Y: y, W: tw, H: th}, 1)
		}
	}
}

// drawClouds 无地砖时的云朵行
func (p *Parallax) drawClouds(screen *ebiten.Image, cloud *ebiten.Image, w, h float64) {
	s := p.scale
	rowH := math.Floor(80 * s)
	for y := rowStart(p.offsetY, rowH); y < h+rowH; y += rowH {
		for x := -60 * s; x < w+60*s; x += 120 * s {
			if cloud != nil {
				drawImageRect(screen, cloud, utils.Rect{X: x, Y: y, W: 96 * s, H: 32 * s}, 1)
				continue
			}
			drawCloudShape(screen, x+12*s, y+16*s, 1.2*s)
			drawCloudShape(screen, x+60*s, y+28*s, s)
		}
	}
}

// drawCloudShape 三块矩形拼成的像素云
func drawCloudShape(screen *ebiten.Image, x, y, s float64) {
	clr := withAlpha(inkColor, 0.25)
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(24*s), float32(8*s), clr, false)
	vector.DrawFilledRect(screen, float32(x+6*s), float32(y-6*s), float32(12*s), float32(6*s), clr, false)
	vector.DrawFilledRect(screen, float32(x+18*s), float32(y-3*s), float32(8*s), float32(5*s), clr, false)
}
