package systems

import (
	"log"
	"math"

	"github.com/gonewx/sleighdash/pkg/components"
	"github.com/gonewx/sleighdash/pkg/config"
	"github.com/gonewx/sleighdash/pkg/utils"
)

// BossState Boss 遭遇战状态
type BossState int

const (
	// BossInactive 未出现
	BossInactive BossState = iota
	// BossActive 战斗中
	BossActive
	// BossDefeated 已被击败，直到整局重置前不会再出现
	BossDefeated
)

// String 返回状态名称
func (s BossState) String() string {
	switch s {
	case BossInactive:
		return "inactive"
	case BossActive:
		return "active"
	case BossDefeated:
		return "defeated"
	default:
		return "unknown"
	}
}

// BossHit 一次子弹伤害结算结果
type BossHit struct {
	// Points 各命中子弹的位置
	Points [][2]float64
	// Died 本次结算中生命值归零
	Died bool
}

// BossSystem Boss（Krampus）遭遇战
//
// 出现后沿屏幕顶部左右往返，周期性向礼物池投掷伪装礼物；
// 被子弹命中 Health 次后进入 Defeated，通过 ClaimReward 一次性领取奖励。
type BossSystem struct {
	cfg   config.BossConfig
	scale float64
	rng   utils.RandomSource

	state         BossState
	body          components.BodyComponent
	health        components.HealthComponent
	throwCooldown float64
	hitFlash      float64
	// respawnCooldown 击败后的再生冷却（秒）
	respawnCooldown float64
	rewarded        bool
}

// NewBossSystem 创建 Boss 系统
func NewBossSystem(cfg config.BossConfig, rng utils.RandomSource) *BossSystem {
	b := &BossSystem{cfg: cfg, rng: rng}
	b.SetScale(1)
	b.body.VX = cfg.HoverSpeed
	return b
}

// SetScale 设置尺寸缩放
func (b *BossSystem) SetScale(scale float64) {
	b.scale = ClampScale(scale)
	size := math.Floor(b.cfg.Size * b.scale)
	b.body.W = size
	b.body.H = size
}

// CanSpawn 未在场、未被击败且冷却结束
func (b *BossSystem) CanSpawn() bool {
	return b.state == BossInactive && b.respawnCooldown == 0
}

// ShouldSpawn 外部出现条件：时间银行与本局时长均达到阈值，且 CanSpawn
func (b *BossSystem) ShouldSpawn(timeBank, elapsed float64) bool {
	return b.CanSpawn() &&
		timeBank >= b.cfg.SpawnTimeBank &&
		elapsed >= b.cfg.SpawnMinElapsed
}

// TickCooldown 再生冷却倒计时（真实时间）
func (b *BossSystem) TickCooldown(dt float64) {
	if b.respawnCooldown > 0 {
		b.respawnCooldown = math.Max(0, b.respawnCooldown-dt)
	}
}

// Spawn 在屏幕顶部中央出现
func (b *BossSystem) Spawn(viewWidth float64) {
	b.state = BossActive
	b.body.X = math.Floor(viewWidth/2 - b.body.W/2)
	b.body.Y = math.Floor(b.body.H * 0.5)
	if b.body.VX == 0 {
		b.body.VX = b.cfg.HoverSpeed
	}
	b.health = components.NewHealth(b.cfg.Health)
	b.throwCooldown = 0
	b.hitFlash = 0
	b.rewarded = false
	log.Printf("[BossSystem] Spawned at (%.0f, %.0f) with %d HP", b.body.X, b.body.Y, b.health.CurrentHealth)
}

// Update 悬停移动并周期性投掷伪装礼物
//
// 参数:
//   - dt: 已经过减速修正的时间步长（秒）
//   - viewWidth: 可见区域宽度，用于边缘反弹
//   - target: 接收投掷物的礼物池
func (b *BossSystem) Update(dt, viewWidth float64, target CollectibleInjector) {
	if b.state != BossActive {
		return
	}

	if b.hitFlash > 0 {
		b.hitFlash = math.Max(0, b.hitFlash-dt)
	}

	// 左右往返：接触边缘时夹紧位置并反向
	b.body.X += b.body.VX * dt
	left, right := 0.0, viewWidth-b.body.W
	if b.body.X <= left {
		b.body.X = left
		b.body.VX = math.Abs(b.body.VX)
	}
	if b.body.X >= right {
		b.body.X = right
		b.body.VX = -math.Abs(b.body.VX)
	}

	b.throwCooldown -= dt
	if b.throwCooldown <= 0 {
		b.throwCooldown = b.cfg.ThrowPeriod
		if target != nil {
			target.Inject(b.throwMimic())
		}
	}
}

// throwMimic 在 Boss 下方生成一个伪装礼物
func (b *BossSystem) throwMimic() *components.Collectible {
	size := spawnSize(b.rng, b.cfg.ThrowSizeBase, b.cfg.ThrowSizeJitter, b.scale)
	return &components.Collectible{
		BodyComponent: components.BodyComponent{
			X:  b.body.X + b.body.W/2 - size/2,
			Y:  b.body.Y + b.body.H,
			W:  size,
			H:  size,
			VX: utils.Jitter(b.rng, b.cfg.ThrowDrift),
			VY: b.cfg.ThrowSpeed,
		},
		Polarity: components.PolarityBad,
		Sprite:   components.SpriteMissing,
		Health:   components.NewHealth(b.cfg.ThrowHealth),
	}
}

// DamageByBullets 结算子弹伤害
//
// 每颗与 Boss 相交的存活子弹标记 Dead 并造成 1 点伤害，同时开始受击闪红。
// 生命值归零时进入 Defeated；非战斗状态下不做任何处理。
func (b *BossSystem) DamageByBullets(bullets []*components.Bullet) BossHit {
	var hit BossHit
	if b.state != BossActive {
		return hit
	}

	box := b.body.Bounds()
	for _, bullet := range bullets {
		if bullet.Dead || b.health.IsDead() {
			continue
		}
		if !bullet.Bounds().Intersects(box) {
			continue
		}
		bullet.Dead = true
		b.health.Damage(1)
		b.hitFlash = b.cfg.HitFlash
		hit.Points = append(hit.Points, [2]float64{bullet.X, bullet.Y})
	}

	if b.health.IsDead() {
		hit.Died = true
		b.state = BossDefeated
		log.Printf("[BossSystem] Defeated")
	}
	return hit
}

// ClaimReward 领取一次性击败奖励
//
// 仅在 Defeated 且尚未领取时返回 true，同时开始再生冷却；之后的调用均返回 false。
func (b *BossSystem) ClaimReward() bool {
	if b.state != BossDefeated || b.rewarded {
		return false
	}
	b.rewarded = true
	b.respawnCooldown = b.cfg.RespawnCooldown
	return true
}

// State 返回当前状态
func (b *BossSystem) State() BossState {
	return b.state
}

// Bounds 返回 Boss 碰撞盒
func (b *BossSystem) Bounds() utils.Rect {
	return b.body.Bounds()
}

// Body 返回 Boss 刚体副本
func (b *BossSystem) Body() components.BodyComponent {
	return b.body
}

// Health 返回当前生命值
func (b *BossSystem) Health() int {
	return b.health.CurrentHealth
}

// HealthFraction 返回剩余生命比例
func (b *BossSystem) HealthFraction() float64 {
	return b.health.Fraction()
}

// HitFlash 返回受击闪红剩余比例 [0, 1]
func (b *BossSystem) HitFlash() float64 {
	if b.cfg.HitFlash <= 0 {
		return 0
	}
	return b.hitFlash / b.cfg.HitFlash
}

// Rewarded 是否已领取奖励
func (b *BossSystem) Rewarded() bool {
	return b.rewarded
}

// RespawnCooldown 返回再生冷却剩余时间
func (b *BossSystem) RespawnCooldown() float64 {
	return b.respawnCooldown
}

// Reset 整局重置：回到 Inactive 并清除冷却
func (b *BossSystem) Reset() {
	b.state = BossInactive
	b.health = components.HealthComponent{}
	b.throwCooldown = 0
	b.hitFlash = 0
	b.respawnCooldown = 0
	b.rewarded = false
	b.body.VX = b.cfg.HoverSpeed
	b.body.X, b.body.Y = 0, 0
}
