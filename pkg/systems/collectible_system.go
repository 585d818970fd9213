package systems

import (
	"fmt"

	"github.com/gonewx/sleighdash/pkg/components"
	"github.com/gonewx/sleighdash/pkg/config"
	"github.com/gonewx/sleighdash/pkg/utils"
)

// CollectibleInjector 接收外部注入的礼物（Boss 投掷、伪装礼物掉落）
type CollectibleInjector interface {
	Inject(item *components.Collectible)
}

// MimicHit 一次子弹命中伪装礼物
type MimicHit struct {
	Mimic  *components.Collectible
	Bullet *components.Bullet
}

// CollectibleSystem 礼物族（普通礼物 / 伪装礼物）
type CollectibleSystem struct {
	*EntityPool[components.Collectible]
	cfg   config.CollectibleConfig
	scale float64
	rng   utils.RandomSource

	// 各极性的精灵变体数量，0 表示缺失
	goodVariants int
	badVariants  int
}

// NewCollectibleSystem 创建礼物系统
func NewCollectibleSystem(cfg config.CollectibleConfig, minSpeedMul float64, rng utils.RandomSource) (*CollectibleSystem, error) {
	clock, err := NewSpawnClock(cfg.IntervalMin, cfg.IntervalMax)
	if err != nil {
		return nil, fmt.Errorf("collectibles: %w", err)
	}

	s := &CollectibleSystem{cfg: cfg, scale: 1, rng: rng}
	s.EntityPool = NewEntityPool(clock,
		func(c *components.Collectible) *components.BodyComponent { return &c.BodyComponent },
		s.spawn,
		cfg.CullMargin, minSpeedMul, rng)
	s.onStep = func(c *components.Collectible, dt float64) {
		if c.IsMimic() {
			c.AnimPhase += dt
		}
	}
	return s, nil
}

// SetScale 设置尺寸缩放
func (s *CollectibleSystem) SetScale(scale float64) {
	s.scale = ClampScale(scale)
}

// SetSpriteVariants 设置各极性可用的精灵变体数量（纯外观）
func (s *CollectibleSystem) SetSpriteVariants(good, bad int) {
	s.goodVariants = max(good, 0)
	s.badVariants = max(bad, 0)
}

// PickSprite 随机挑选精灵变体
//
// 无论精灵是否存在都会消耗一次随机数，保证模拟结果不受资源加载情况影响。
func (s *CollectibleSystem) PickSprite(p components.Polarity) components.SpriteSlot {
	roll := s.rng.Float64()
	n := s.goodVariants
	if p == components.PolarityBad {
		n = s.badVariants
	}
	if n <= 0 {
		return components.SpriteMissing
	}
	return components.SpriteSlot(int(roll * float64(n)))
}

func (s *CollectibleSystem) spawn(bounds utils.Rect, speedMul float64) *components.Collectible {
	size := spawnSize(s.rng, s.cfg.SizeBase, s.cfg.SizeJitter, s.scale)
	body := spawnBody(s.rng, bounds, size, s.cfg.Drift, s.cfg.FallSpeedMin, s.cfg.FallSpeedMax, speedMul)

	polarity := components.PolarityGood
	if s.rng.Float64() < s.cfg.MimicChance {
		polarity = components.PolarityBad
	}

	c := &components.Collectible{
		BodyComponent: body,
		Polarity:      polarity,
		Sprite:        s.PickSprite(polarity),
	}
	if polarity == components.PolarityBad {
		c.Health = components.NewHealth(s.cfg.MimicHealth)
	}
	return c
}

// DamageByBullets 用子弹伤害伪装礼物
//
// 每个伪装礼物每次调用最多被一颗存活子弹命中：命中的子弹标记 Dead，
// 伪装礼物生命值减 1。生命值归零的伪装礼物从池中删除并通过 died 返回，
// 调用方据此生成掉落物（不扣分）。
//
// 返回:
//   - hits: 本次全部命中（按礼物加入顺序）
//   - died: 本次被击杀的伪装礼物
func (s *CollectibleSystem) DamageByBullets(bullets []*components.Bullet) (hits []MimicHit, died []*components.Collectible) {
	for _, c := range s.Items() {
		if !c.IsMimic() || c.Health.IsDead() {
			continue
		}
		box := c.Bounds()
		for _, b := range bullets {
			if b.Dead || !b.Bounds().Intersects(box) {
				continue
			}
			b.Dead = true
			c.Health.Damage(1)
			hits = append(hits, MimicHit{Mimic: c, Bullet: b})
			break
		}
	}

	died = s.RemoveWhere(func(c *components.Collectible) bool {
		return c.IsMimic() && c.Health.IsDead()
	})
	return hits, died
}
