package systems

import (
	"log"

	"github.com/gonewx/sleighdash/pkg/components"
	"github.com/gonewx/sleighdash/pkg/config"
	"github.com/gonewx/sleighdash/pkg/ecs"
	"github.com/gonewx/sleighdash/pkg/utils"
)

// GunState 树枪状态
type GunState int

const (
	GunInactive GunState = iota
	GunActive
)

// muzzleOffsetTable 按行数索引的枪口水平偏移（玩家宽度的比例）
// 仅影响外观，行数超出表长时使用最后一行
var muzzleOffsetTable = [...][]float64{
	1: {0},
	2: {-0.25, 0.25},
	3: {-0.4, 0, 0.4},
}

// GunSystem 树枪（子弹发射器）
//
// 状态机：
//   - Inactive → Active(stacks=1)：首次拾取圣诞树
//   - Active → Active(stacks+1)：生效期间再次拾取，总时长按叠加表重算，剩余时间刷新为新总时长
//   - Active → Inactive：剩余时间归零，或被雪人取消
type GunSystem struct {
	cfg   config.GunConfig
	scale float64

	state     GunState
	stacks    int
	remaining float64 // 剩余时间（秒）
	duration  float64 // 本次总时长（秒）
	fireTimer float64

	bullets *ecs.Pool[components.Bullet]
}

// NewGunSystem 创建树枪系统
func NewGunSystem(cfg config.GunConfig) *GunSystem {
	return &GunSystem{
		cfg:     cfg,
		scale:   1,
		bullets: ecs.NewPool[components.Bullet](),
	}
}

// SetScale 设置尺寸缩放
func (g *GunSystem) SetScale(scale float64) {
	g.scale = ClampScale(scale)
}

// ActivateTree 拾取圣诞树：激活或叠加
func (g *GunSystem) ActivateTree() {
	if g.state == GunActive {
		g.stacks++
		g.duration = g.cfg.GunDuration(g.stacks)
		g.remaining = g.duration
		g.fireTimer = 0
		log.Printf("[GunSystem] Stacked to %d (duration %.0fs)", g.stacks, g.duration)
		return
	}

	g.state = GunActive
	g.stacks = max(1, g.stacks)
	g.duration = g.cfg.GunDuration(g.stacks)
	g.remaining = g.duration
	g.fireTimer = 0
	g.bullets.Clear()
	log.Printf("[GunSystem] Activated (stacks %d, duration %.0fs)", g.stacks, g.duration)
}

// Cancel 取消树枪并清空子弹
func (g *GunSystem) Cancel() {
	if g.state == GunActive {
		log.Printf("[GunSystem] Cancelled at %.2fs remaining", g.remaining)
	}
	g.state = GunInactive
	g.stacks = 0
	g.remaining = 0
	g.fireTimer = 0
	g.bullets.Clear()
}

// Update 倒计时、按节奏齐射并移动子弹
//
// 参数:
//   - dt: 已经过减速修正的时间步长（秒）
//   - player: 玩家碰撞盒，用于定位枪口
func (g *GunSystem) Update(dt float64, player utils.Rect) {
	if g.state != GunActive {
		return
	}

	g.remaining -= dt
	if g.remaining <= 0 {
		g.remaining = 0
		g.Cancel()
		return
	}

	g.fireTimer -= dt
	if g.fireTimer <= 0 {
		g.fireTimer = g.cfg.FireInterval
		g.fireVolley(player)
	}

	g.bullets.Each(func(_ ecs.EntityID, b *components.Bullet) {
		b.Step(dt)
	})

	// 剔除已命中的子弹和越过顶边 CullAbove 的子弹
	limit := -g.cfg.CullAbove
	g.bullets.RemoveWhere(func(b *components.Bullet) bool {
		return b.Dead || b.Y <= limit
	})
}

// fireVolley 每行枪口发射一颗子弹
func (g *GunSystem) fireVolley(player utils.Rect) {
	emitter := g.EmitterRect(player)
	bw := g.cfg.BulletWidth * g.scale
	bh := g.cfg.BulletHeight * g.scale
	speed := g.cfg.BulletSpeed * g.scale

	for _, ox := range g.MuzzleOffsets(player.W) {
		g.bullets.CreateEntity(&components.Bullet{
			BodyComponent: components.BodyComponent{
				X:  emitter.X + emitter.W/2 + ox,
				Y:  emitter.Y,
				W:  bw,
				H:  bh,
				VX: 0,
				VY: -speed,
			},
		})
	}
}

// EmitterRect 返回枪身矩形（锚定在玩家右下角）
func (g *GunSystem) EmitterRect(player utils.Rect) utils.Rect {
	gw := g.cfg.EmitterWidth * g.scale
	gh := gw * g.cfg.EmitterAspect
	return utils.Rect{
		X: player.X + player.W - gw + 2,
		Y: player.Y + player.H - gh + 2,
		W: gw,
		H: gh,
	}
}

// Rows 当前枪口行数 min(maxRows, stacks)，至少 1
func (g *GunSystem) Rows() int {
	rows := min(g.cfg.MaxRows, max(1, g.stacks))
	return min(rows, len(muzzleOffsetTable)-1)
}

// MuzzleOffsets 返回各枪口相对枪身中心的水平偏移（像素）
func (g *GunSystem) MuzzleOffsets(playerWidth float64) []float64 {
	ratios := muzzleOffsetTable[g.Rows()]
	out := make([]float64, len(ratios))
	for i, r := range ratios {
		out[i] = r * playerWidth
	}
	return out
}

// Bullets 返回当前子弹快照
func (g *GunSystem) Bullets() []*components.Bullet {
	return g.bullets.Items()
}

// State 返回树枪状态
func (g *GunSystem) State() GunState {
	return g.state
}

// Active 是否生效中
func (g *GunSystem) Active() bool {
	return g.state == GunActive
}

// Stacks 返回叠加层数
func (g *GunSystem) Stacks() int {
	return g.stacks
}

// Remaining 返回剩余时间
func (g *GunSystem) Remaining() float64 {
	return g.remaining
}

// Duration 返回本次总时长
func (g *GunSystem) Duration() float64 {
	return g.duration
}

// Progress 返回计时条比例 [0, 1]
func (g *GunSystem) Progress() float64 {
	if g.duration <= 0 || g.remaining <= 0 {
		return 0
	}
	return utils.ClampF(g.remaining/g.duration, 0, 1)
}

// Reset 回到初始状态
func (g *GunSystem) Reset() {
	g.Cancel()
	g.duration = 0
}
