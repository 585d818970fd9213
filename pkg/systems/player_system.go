package systems

import (
	"math"

	"github.com/gonewx/sleighdash/pkg/components"
	"github.com/gonewx/sleighdash/pkg/config"
	"github.com/gonewx/sleighdash/pkg/utils"
)

// PlayerSystem 玩家移动与尺寸
type PlayerSystem struct {
	cfg   config.PlayerConfig
	scale float64
}

// NewPlayerSystem 创建玩家系统
func NewPlayerSystem(cfg config.PlayerConfig) *PlayerSystem {
	return &PlayerSystem{cfg: cfg, scale: 1}
}

// SetScale 设置尺寸缩放并更新玩家尺寸
func (s *PlayerSystem) SetScale(p *components.PlayerComponent, scale float64) {
	s.scale = ClampScale(scale)
	p.W = math.Floor(s.cfg.Width * s.scale)
	p.H = math.Floor(s.cfg.Height*s.scale) * s.cfg.Aspect
}

// Reset 恢复初始速度并放到底部中央
func (s *PlayerSystem) Reset(p *components.PlayerComponent, bounds utils.Rect) {
	p.Speed = s.cfg.Speed
	p.VX, p.VY = 0, 0
	p.X = math.Floor(bounds.X + (bounds.W-p.W)/2)
	p.Y = math.Floor(bounds.Y + bounds.H - p.H - s.cfg.BottomMargin)
}

// Move 按输入移动玩家，并限制在可见区域内
//
// 参数:
//   - p: 玩家
//   - in: 方向键向量与拖拽增量
//   - dt: 已经过减速修正的时间步长（秒）
//   - bounds: 可见区域
func (s *PlayerSystem) Move(p *components.PlayerComponent, in components.MovementInput, dt float64, bounds utils.Rect) {
	mx := clampAxis(in.MoveX)
	my := clampAxis(in.MoveY)

	p.X += float64(mx)*p.Speed*dt + in.PointerDX
	p.Y += float64(my)*p.Speed*dt + in.PointerDY

	p.X = utils.ClampF(p.X, bounds.X, math.Max(bounds.X, bounds.Right()-p.W))
	p.Y = utils.ClampF(p.Y, bounds.Y, math.Max(bounds.Y, bounds.Bottom()-p.H))
}

// Boost 道具加速，不超过上限
func (s *PlayerSystem) Boost(p *components.PlayerComponent) {
	p.Speed = math.Min(s.cfg.MaxSpeed, p.Speed+s.cfg.BoostStep)
}

func clampAxis(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
