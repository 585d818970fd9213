package scenes

import (
	"fmt"
	"math"

	"github.com/gonewx/sleighdash/pkg/game"
	"github.com/gonewx/sleighdash/pkg/simulation"
	"github.com/gonewx/sleighdash/pkg/systems"
	"github.com/gonewx/sleighdash/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// HUD 布局（未缩放像素）
const (
	hudPadding    = 8.0
	hudPanelW     = 150.0
	hudLineHeight = 16.0
	gunBarHeight  = 6.0
	hudBorder     = 3.0
)

// HUD 分数、时间、树枪计时条、Boss 血条与暂停/结束遮罩
type HUD struct {
	face    text.Face
	bigFace text.Face
}

// NewHUD 创建 HUD；字体为 nil 时回退到调试字体
func NewHUD(face, bigFace text.Face) *HUD {
	return &HUD{face: face, bigFace: bigFace}
}

// gunBarPercent 树枪计时条百分比（向下取整）
func gunBarPercent(progress float64) int {
	if progress <= 0 || math.IsNaN(progress) {
		return 0
	}
	return int(math.Floor(utils.ClampF(progress, 0, 1) * 100))
}

// bossBarLayout Boss 血条外框
//
// 参数:
//   - viewWidth: 画布宽度
//   - scale: 尺寸缩放
//
// 返回:
//   - utils.Rect: 横跨画布（两侧留 pad），高度至少 6 像素
func bossBarLayout(viewWidth, scale float64) utils.Rect {
	pad := math.Floor(8 * scale)
	return utils.Rect{
		X: pad,
		Y: math.Floor(40 * scale),
		W: viewWidth - 2*pad,
		H: math.Max(6, math.Floor(10*scale)),
	}
}

// Draw 绘制 HUD
//
// 参数:
//   - screen: 目标画布
//   - sim: 模拟核心（只读）
//   - images: 精灵来源
//   - showPanel: 是否绘制分数面板（用户设置）
//   - hit: HUD 受击描边是否可见
func (h *HUD) Draw(screen *ebiten.Image, sim *simulation.Simulation, images ImageSource, showPanel, hit bool) {
	if showPanel {
		h.drawPanel(screen, sim, hit)
	}
	h.drawBossBar(screen, sim.Boss(), sim.Viewport().W, sim.Scale(), images)
	h.drawCover(screen, sim)
}

func (h *HUD) drawPanel(screen *ebiten.Image, sim *simulation.Simulation, hit bool) {
	x, y := hudPadding, hudPadding
	panelH := hudLineHeight*2 + gunBarHeight + hudPadding*2
	vector.DrawFilledRect(screen, float32(x-4), float32(y-4), float32(hudPanelW), float32(panelH),
		withAlpha(backgroundColor, 0.8), false)
	if hit {
		vector.StrokeRect(screen, float32(x-4), float32(y-4), float32(hudPanelW), float32(panelH),
			hudBorder, accentRed, false)
	}

	drawText(screen, fmt.Sprintf("Score: %d", sim.ScoreDisplay()), h.face, x, y, inkColor)
	drawText(screen, fmt.Sprintf("Time: %d", sim.TimeDisplay()), h.face, x, y+hudLineHeight, inkColor)

	barY := y + hudLineHeight*2 + 4
	barW := hudPanelW - 16
	vector.DrawFilledRect(screen, float32(x), float32(barY), float32(barW), gunBarHeight,
		withAlpha(inkColor, 0.2), false)
	if pct := gunBarPercent(sim.GunProgress()); pct > 0 {
		vector.DrawFilledRect(screen, float32(x), float32(barY), float32(barW*float64(pct)/100), gunBarHeight,
			inkColor, false)
	}
}

// drawBossBar Boss 出场时横跨顶部的血条
func (h *HUD) drawBossBar(screen *ebiten.Image, boss *systems.BossSystem, viewWidth, scale float64, images ImageSource) {
	if boss.State() != systems.BossActive {
		return
	}
	bar := bossBarLayout(viewWidth, scale)
	vector.DrawFilledRect(screen, float32(bar.X), float32(bar.Y), float32(bar.W), float32(bar.H),
		withAlpha(bossBarBack, 0.6), false)
	fill := math.Floor(bar.W * boss.HealthFraction())
	drawHorizontalGradient(screen, bar.X, bar.Y, fill, bar.H, bossBarFrom, bossBarTo, 0.9)
	if f := boss.HitFlash(); f > 0 {
		vector.DrawFilledRect(screen, float32(bar.X), float32(bar.Y), float32(bar.W), float32(bar.H),
			withAlpha(accentRed, 0.35*f), false)
	}

	if icon := images.GetImage(game.SlotHP); icon != nil {
		size := bar.H * 2
		drawImageRect(screen, icon, utils.Rect{X: bar.X, Y: bar.Y - size/4, W: size, H: size}, 1)
	}
}

// drawCover 暂停/结束遮罩
func (h *HUD) drawCover(screen *ebiten.Image, sim *simulation.Simulation) {
	var title, hint string
	switch sim.Phase() {
	case simulation.PhasePaused:
		title, hint = "Paused", "P: resume   R: restart"
	case simulation.PhaseGameOver:
		title, hint = "Time's up!", fmt.Sprintf("Score: %d   R: restart", sim.ScoreDisplay())
	default:
		return
	}

	b := screen.Bounds()
	w, hgt := float64(b.Dx()), float64(b.Dy())
	vector.DrawFilledRect(screen, 0, 0, float32(w), float32(hgt), coverColor, false)
	drawCenteredText(screen, title, h.bigFace, w/2, hgt/2, backgroundColor)
	drawCenteredText(screen, hint, h.face, w/2, hgt/2+2*hudLineHeight, backgroundColor)
}

// drawScanlines 复古扫描线
func drawScanlines(screen *ebiten.Image) {
	b := screen.Bounds()
	w := float32(b.Dx())
	for y := 0; y < b.Dy(); y += 3 {
		vector.DrawFilledRect(screen, 0, float32(y), w, 1, scanlineColor, false)
	}
}
