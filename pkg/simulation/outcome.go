package simulation

import (
	"fmt"
	"log"
	"math"

	"github.com/gonewx/sleighdash/pkg/components"
	"github.com/gonewx/sleighdash/pkg/config"
	"github.com/gonewx/sleighdash/pkg/game"
	"github.com/gonewx/sleighdash/pkg/systems"
	"github.com/gonewx/sleighdash/pkg/utils"
)

// bossHitVignette Boss 非致命受击时的红色暗角时长（秒）
const bossHitVignette = 0.25

// 伪装礼物死亡掉落物类型，按 [0, dropKinds) 均匀抽选
const (
	dropTree = iota
	dropSnowman
	dropGift
	dropKinds
)

// MimicPenalty 计算拾取存活伪装礼物的惩罚
//
// penalty = round(base + range·max(speedProgress, min(elapsed/horizon, 1)))
// 默认参数下范围为 [20, 100]，对加速进度和本局时长均单调不减。
//
// 参数:
//   - cfg: 经济参数
//   - speedProgress: 加速进度 [0, 1]
//   - elapsed: 本局已经过时间（秒）
func MimicPenalty(cfg config.EconomyConfig, speedProgress, elapsed float64) float64 {
	timeProgress := math.Min(math.Max(elapsed, 0)/cfg.MimicTimeHorizon, 1)
	progress := utils.ClampF(math.Max(speedProgress, timeProgress), 0, 1)
	return math.Round(cfg.MimicPenaltyBase + cfg.MimicPenaltyRange*progress)
}

// applyCollectible 结算一个被拾取的礼物
//
// speedMul 为本帧开始时的加速倍率；同一批拾取中的好礼物不影响之后伪装礼物的惩罚。
func (s *Simulation) applyCollectible(c *components.Collectible, speedMul float64) {
	cx, cy := c.Center()
	eco := s.cfg.Economy

	if c.IsMimic() {
		penalty := MimicPenalty(eco, s.modifiers.ProgressAt(speedMul), s.ledger.Elapsed())
		s.ledger.Penalize(penalty, penalty)
		s.emit(components.EffectRequest{Kind: components.EffectBurstBad, X: cx, Y: cy})
		s.emit(components.EffectRequest{
			Kind: components.EffectFloatText, X: cx, Y: c.Y,
			Text: fmt.Sprintf("-%.0f -%.0fs", penalty, penalty),
			Tone: components.ToneBad,
		})
		s.emit(components.EffectRequest{
			Kind: components.EffectScreenFlash, Flash: components.FlashVignetteRed, Duration: 0.7,
		})
		return
	}

	s.ledger.AddScore(eco.GoodScore)
	s.ledger.AddTime(eco.GoodTime)
	s.modifiers.IncrementSpeed()
	s.emit(components.EffectRequest{Kind: components.EffectPulseGood, X: cx, Y: cy})
	s.emit(components.EffectRequest{
		Kind: components.EffectFloatText, X: cx, Y: c.Y,
		Text: fmt.Sprintf("+%.0f +%.0fs", eco.GoodScore, eco.GoodTime),
		Tone: components.ToneGood,
	})
}

// applyPowerUp 结算一个被拾取的道具
func (s *Simulation) applyPowerUp(p *components.PowerUp) {
	cx, cy := p.Center()
	s.ledger.AddTime(s.cfg.Economy.PowerUpTime)
	s.playerSystem.Boost(&s.player)
	s.emit(components.EffectRequest{Kind: components.EffectPulseGood, X: cx, Y: cy})
	s.emit(components.EffectRequest{
		Kind: components.EffectFloatText, X: cx, Y: p.Y,
		Text: fmt.Sprintf("+%.0fs Power!", s.cfg.Economy.PowerUpTime),
		Tone: components.ToneGood,
	})

	switch p.Kind {
	case components.PowerUpSnowman:
		s.emit(components.EffectRequest{
			Kind: components.EffectScreenFlash, Flash: components.FlashBlue, Duration: 0.8,
		})
		s.gun.Cancel()
		if err := s.modifiers.PushSlow(s.cfg.Modifiers.SnowmanSlowDuration); err != nil {
			log.Printf("[Simulation] Warning: failed to push slow stack: %v", err)
		}
	case components.PowerUpTree:
		s.emit(components.EffectRequest{
			Kind: components.EffectScreenFlash, Flash: components.FlashRainbow, Duration: 1.2,
		})
		s.gun.ActivateTree()
		s.modifiers.ClearSlow()
		s.emit(components.EffectRequest{
			Kind: components.EffectFloatText, X: cx, Y: p.Y - 10,
			Text: "TREE STACK!", Tone: components.ToneGood,
		})
	}
}

// applyBossHit 结算 Boss 受击与一次性奖励
//
// 非致命受击请求一次短暂的红色暗角，击败时在 Boss 中心爆发好效果。
func (s *Simulation) applyBossHit(hit systems.BossHit) {
	body := s.boss.Body()
	cx, cy := body.Center()
	switch {
	case hit.Died:
		s.emit(components.EffectRequest{Kind: components.EffectBurstGood, X: cx, Y: cy})
	case len(hit.Points) > 0:
		s.emit(components.EffectRequest{
			Kind: components.EffectScreenFlash, Flash: components.FlashVignetteRed, Duration: bossHitVignette,
		})
	}

	if s.boss.State() != systems.BossDefeated || !s.boss.ClaimReward() {
		return
	}

	reward := s.cfg.Boss.Reward
	s.ledger.AddScore(reward)
	s.emit(components.EffectRequest{
		Kind: components.EffectFloatText, X: cx, Y: cy,
		Text: fmt.Sprintf("+%.0f KRAMPUS!", reward), Tone: components.ToneGood,
	})
	s.emit(components.EffectRequest{
		Kind: components.EffectPopupImage, X: cx, Y: cy, Image: game.SlotReward, Duration: 1.8,
	})
	log.Printf("[Simulation] Boss reward +%.0f granted", reward)
}

// applyMimicHits 结算子弹命中伪装礼物，以及被击杀后的掉落
func (s *Simulation) applyMimicHits(hits []systems.MimicHit, died []*components.Collectible) {
	for _, h := range hits {
		cx, cy := h.Mimic.Center()
		s.emit(components.EffectRequest{Kind: components.EffectBurstBad, X: cx, Y: cy})
		s.emit(components.EffectRequest{
			Kind: components.EffectFloatText, X: cx, Y: h.Mimic.Y,
			Text: "-1", Tone: components.ToneBad,
		})
		s.emit(components.EffectRequest{
			Kind: components.EffectScreenFlash, Flash: components.FlashVignetteRed, Duration: 0.4,
		})
	}

	for _, d := range died {
		s.dropFrom(d)
	}
}

// dropFrom 在被击杀的伪装礼物位置生成一个掉落物
func (s *Simulation) dropFrom(d *components.Collectible) {
	drops := s.cfg.Drops
	var label string

	choice := utils.IntN(s.rng, dropKinds)
	switch choice {
	case dropTree, dropSnowman:
		kind := components.PowerUpTree
		label = "DROP: TREE"
		if choice == dropSnowman {
			kind = components.PowerUpSnowman
			label = "DROP: SNOW"
		}
		size := math.Floor(float64(drops.PowerUpSize) * s.scale)
		s.powerUps.Inject(&components.PowerUp{
			BodyComponent: components.BodyComponent{
				X: d.X, Y: d.Y, W: size, H: size,
				VX: utils.Jitter(s.rng, drops.PowerUpDrift),
				VY: drops.FallSpeed,
			},
			Kind: kind,
		})
	default:
		size := math.Floor(float64(drops.GiftSizeBase+utils.IntN(s.rng, drops.GiftSizeJitter)) * s.scale)
		s.collectibles.Inject(&components.Collectible{
			BodyComponent: components.BodyComponent{
				X: d.X, Y: d.Y, W: size, H: size,
				VX: utils.Jitter(s.rng, drops.GiftDrift),
				VY: drops.FallSpeed,
			},
			Polarity: components.PolarityGood,
			Sprite:   s.collectibles.PickSprite(components.PolarityGood),
		})
		label = "DROP: GIFT"
	}

	s.emit(components.EffectRequest{
		Kind: components.EffectFloatText, X: d.X + d.W/2, Y: d.Y,
		Text: label, Tone: components.ToneGood,
	})
}

// applyHazards 结算障碍碰撞：逐个累加惩罚，并开始无敌时间
func (s *Simulation) applyHazards(collided []*components.Hazard) {
	if len(collided) == 0 {
		return
	}

	var scorePenalty, timePenalty int
	for _, h := range collided {
		sp, tp := h.Penalty()
		scorePenalty += sp
		timePenalty += tp
		cx, cy := h.Center()
		s.emit(components.EffectRequest{Kind: components.EffectBurstBad, X: cx, Y: cy})
		s.emit(components.EffectRequest{
			Kind: components.EffectFloatText, X: cx, Y: h.Y,
			Text: fmt.Sprintf("-%d -%ds", sp, tp), Tone: components.ToneBad,
		})
	}

	s.ledger.Penalize(float64(scorePenalty), float64(timePenalty))
	s.emit(components.EffectRequest{Kind: components.EffectHUDHit})
	s.invulnerable = s.cfg.Economy.HitInvulnerability
}
