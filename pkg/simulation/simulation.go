// Package simulation 实现雪橇躲避游戏的模拟核心
//
// Simulation 是唯一的可变状态记录：所有实体池、修正层、树枪、Boss 与账本
// 都由它独占，每帧通过 Tick 顺序推进。渲染层只读取状态，并通过
// DrainEffects 消费效果请求；模拟核心从不绘制像素，也不依赖精灵是否加载。
package simulation

import (
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/gonewx/sleighdash/pkg/components"
	"github.com/gonewx/sleighdash/pkg/config"
	"github.com/gonewx/sleighdash/pkg/game"
	"github.com/gonewx/sleighdash/pkg/systems"
	"github.com/gonewx/sleighdash/pkg/utils"
)

// ErrScaleAlreadySet 尺寸缩放只允许设置一次
var ErrScaleAlreadySet = errors.New("scale already set")

// Phase 运行阶段
type Phase int

const (
	// PhaseRunning 正常推进
	PhaseRunning Phase = iota
	// PhasePaused 暂停：Tick 不推进世界，渲染照常
	PhasePaused
	// PhaseGameOver 时间银行耗尽，等待 Reset
	PhaseGameOver
)

// String 返回阶段名称
func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// maxPendingEffects 未被消费的效果请求上限，超出时丢弃最旧的请求
const maxPendingEffects = 512

// Simulation 模拟状态记录
type Simulation struct {
	cfg *config.GameplayConfig
	rng utils.RandomSource

	view     utils.Rect
	scale    float64
	scaleSet bool

	ledger       *game.EconomyLedger
	modifiers    *systems.ModifierStack
	playerSystem *systems.PlayerSystem
	player       components.PlayerComponent
	hazards      *systems.HazardSystem
	collectibles *systems.CollectibleSystem
	powerUps     *systems.PowerUpSystem
	gun          *systems.GunSystem
	boss         *systems.BossSystem

	// invulnerable 障碍碰撞后的剩余无敌时间（真实时间）
	invulnerable float64
	phase        Phase
	effects      []components.EffectRequest

	// 最近一帧的输出，供背景视差等表现层使用
	lastScaledDt float64
	lastInput    components.MovementInput
}

// New 创建模拟
//
// 参数:
//   - cfg: 玩法参数，会先经过 Validate
//   - rng: 随机数源，所有生成、漂移和掉落抽选都从这里取数
//
// 返回:
//   - *Simulation: 处于开局状态的模拟，视口为配置中的窗口尺寸
//   - error: 配置非法时返回包装 config.ErrInvalidConfig 的错误
func New(cfg *config.GameplayConfig, rng utils.RandomSource) (*Simulation, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", config.ErrInvalidConfig)
	}
	if rng == nil {
		return nil, errors.New("simulation: random source is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	minMul := cfg.Modifiers.MinSpeedMultiplier
	hazards, err := systems.NewHazardSystem(cfg.Hazards, minMul, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to create simulation: %w", err)
	}
	collectibles, err := systems.NewCollectibleSystem(cfg.Collectibles, minMul, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to create simulation: %w", err)
	}
	powerUps, err := systems.NewPowerUpSystem(cfg.PowerUps, minMul, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to create simulation: %w", err)
	}

	s := &Simulation{
		cfg:          cfg,
		rng:          rng,
		view:         utils.Rect{W: float64(cfg.Window.Width), H: float64(cfg.Window.Height)},
		scale:        1,
		ledger:       game.NewEconomyLedger(cfg.Economy.StartTime),
		modifiers:    systems.NewModifierStack(cfg.Modifiers),
		playerSystem: systems.NewPlayerSystem(cfg.Player),
		hazards:      hazards,
		collectibles: collectibles,
		powerUps:     powerUps,
		gun:          systems.NewGunSystem(cfg.Gun),
		boss:         systems.NewBossSystem(cfg.Boss, rng),
	}
	s.playerSystem.SetScale(&s.player, 1)
	s.Reset()
	return s, nil
}

// SetViewport 设置可见区域尺寸，玩家会被夹回区域内
func (s *Simulation) SetViewport(width, height float64) {
	s.view = utils.Rect{W: math.Max(1, width), H: math.Max(1, height)}
	s.playerSystem.Move(&s.player, components.MovementInput{}, 0, s.view)
}

// SetScale 统一设置所有实体的尺寸缩放
//
// 只能调用一次：之后生成的实体与已存在的实体尺寸不一致会破坏碰撞手感，
// 再次调用返回 ErrScaleAlreadySet。小于 0.5 的缩放按 0.5 处理。
// 调用后玩家复位到底部中央。
func (s *Simulation) SetScale(factor float64) error {
	if s.scaleSet {
		return ErrScaleAlreadySet
	}
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return fmt.Errorf("scale must be a positive finite number, got %v", factor)
	}

	s.scale = systems.ClampScale(factor)
	s.scaleSet = true
	s.hazards.SetScale(factor)
	s.collectibles.SetScale(factor)
	s.powerUps.SetScale(factor)
	s.gun.SetScale(factor)
	s.boss.SetScale(factor)
	s.playerSystem.SetScale(&s.player, factor)
	s.playerSystem.Reset(&s.player, s.view)
	log.Printf("[Simulation] Scale set to %.2f (requested %.2f)", s.scale, factor)
	return nil
}

// SetSpriteVariants 设置礼物各极性可用的精灵变体数量（纯外观）
func (s *Simulation) SetSpriteVariants(good, bad int) {
	s.collectibles.SetSpriteVariants(good, bad)
}

// Reset 整局重置
//
// 所有实体池、计时器、修正层、树枪、Boss 与账本回到开局状态，
// 玩家回到底部中央。随机数源不会被重置。
func (s *Simulation) Reset() {
	s.ledger.Reset(s.cfg.Economy.StartTime)
	s.modifiers.Reset()
	s.hazards.Reset()
	s.collectibles.Reset()
	s.powerUps.Reset()
	s.gun.Reset()
	s.boss.Reset()
	s.playerSystem.Reset(&s.player, s.view)
	s.invulnerable = 0
	s.phase = PhaseRunning
	s.effects = s.effects[:0]
	s.lastScaledDt = 0
	s.lastInput = components.MovementInput{}
	log.Printf("[Simulation] Reset (time bank %.0fs)", s.ledger.TimeBank())
}

// Pause 暂停
func (s *Simulation) Pause() {
	if s.phase == PhaseRunning {
		s.phase = PhasePaused
	}
}

// Resume 从暂停恢复
func (s *Simulation) Resume() {
	if s.phase == PhasePaused {
		s.phase = PhaseRunning
	}
}

// TogglePause 切换暂停；游戏结束状态不受影响
func (s *Simulation) TogglePause() {
	switch s.phase {
	case PhaseRunning:
		s.phase = PhasePaused
	case PhasePaused:
		s.phase = PhaseRunning
	}
}

// Tick 推进一帧
//
// dt 会被夹紧到 [0, clock.maxDeltaTime]。暂停或游戏结束时直接返回。
// 时间银行、减速层倒计时、Boss 冷却与无敌时间使用真实 dt；
// 实体运动、树枪与 Boss 使用经减速修正的 sdt。
func (s *Simulation) Tick(dt float64, in components.MovementInput) {
	if s.phase != PhaseRunning {
		return
	}
	if math.IsNaN(dt) || dt < 0 {
		dt = 0
	}
	dt = math.Min(dt, s.cfg.Clock.MaxDeltaTime)

	if s.ledger.Advance(dt) {
		s.phase = PhaseGameOver
		log.Printf("[Simulation] Game over (score %d)", s.ledger.ScoreDisplay())
	}

	s.modifiers.Tick(dt)
	sdt := s.modifiers.EffectiveDt(dt)
	speedMul := s.modifiers.SpeedMultiplier()
	s.lastScaledDt = sdt
	s.lastInput = in

	s.playerSystem.Move(&s.player, in, sdt, s.view)

	s.collectibles.Update(sdt, s.view, speedMul)

	s.boss.TickCooldown(dt)
	if s.boss.ShouldSpawn(s.ledger.TimeBank(), s.ledger.Elapsed()) {
		s.boss.Spawn(s.view.W)
		s.emit(components.EffectRequest{
			Kind:     components.EffectScreenFlash,
			Flash:    components.FlashVignetteBlack,
			Duration: s.cfg.Boss.SpawnVignette,
		})
	}

	playerBox := s.player.Bounds()
	for _, c := range s.collectibles.Collect(playerBox) {
		s.applyCollectible(c, speedMul)
	}

	s.powerUps.Update(sdt, s.view, speedMul)
	for _, p := range s.powerUps.Collect(playerBox) {
		s.applyPowerUp(p)
	}

	s.hazards.Update(sdt, s.view, speedMul)

	s.gun.Update(sdt, playerBox)

	s.boss.Update(sdt, s.view.W, s.collectibles)
	s.applyBossHit(s.boss.DamageByBullets(s.gun.Bullets()))

	hits, died := s.collectibles.DamageByBullets(s.gun.Bullets())
	s.applyMimicHits(hits, died)

	if s.invulnerable > 0 {
		s.invulnerable = math.Max(0, s.invulnerable-dt)
	}
	if s.invulnerable == 0 {
		s.applyHazards(s.hazards.Collect(playerBox))
	}

	s.ledger.AddScore(dt * s.cfg.Economy.PassiveScoreRate)
}

// emit 追加效果请求
func (s *Simulation) emit(req components.EffectRequest) {
	if len(s.effects) >= maxPendingEffects {
		s.effects = append(s.effects[:0], s.effects[1:]...)
	}
	s.effects = append(s.effects, req)
}

// DrainEffects 取出并清空待处理的效果请求（按产生顺序）
func (s *Simulation) DrainEffects() []components.EffectRequest {
	if len(s.effects) == 0 {
		return nil
	}
	out := make([]components.EffectRequest, len(s.effects))
	copy(out, s.effects)
	s.effects = s.effects[:0]
	return out
}

// Phase 返回运行阶段
func (s *Simulation) Phase() Phase {
	return s.phase
}

// Paused 是否暂停
func (s *Simulation) Paused() bool {
	return s.phase == PhasePaused
}

// GameOver 时间银行是否已耗尽
func (s *Simulation) GameOver() bool {
	return s.phase == PhaseGameOver
}

// ScoreDisplay 显示用分数（向下取整）
func (s *Simulation) ScoreDisplay() int {
	return s.ledger.ScoreDisplay()
}

// TimeDisplay 显示用剩余秒数（向上取整）
func (s *Simulation) TimeDisplay() int {
	return s.ledger.TimeDisplay()
}

// GunProgress 树枪计时条比例 [0, 1]
func (s *Simulation) GunProgress() float64 {
	return s.gun.Progress()
}

// Viewport 返回可见区域
func (s *Simulation) Viewport() utils.Rect {
	return s.view
}

// Scale 返回当前尺寸缩放
func (s *Simulation) Scale() float64 {
	return s.scale
}

// Player 返回玩家副本
func (s *Simulation) Player() components.PlayerComponent {
	return s.player
}

// Ledger 返回账本（只读使用）
func (s *Simulation) Ledger() *game.EconomyLedger {
	return s.ledger
}

// Modifiers 返回修正层（只读使用）
func (s *Simulation) Modifiers() *systems.ModifierStack {
	return s.modifiers
}

// Gun 返回树枪（只读使用）
func (s *Simulation) Gun() *systems.GunSystem {
	return s.gun
}

// Boss 返回 Boss（只读使用）
func (s *Simulation) Boss() *systems.BossSystem {
	return s.boss
}

// Hazards 返回障碍物快照
func (s *Simulation) Hazards() []*components.Hazard {
	return s.hazards.Items()
}

// Collectibles 返回礼物快照
func (s *Simulation) Collectibles() []*components.Collectible {
	return s.collectibles.Items()
}

// PowerUps 返回道具快照
func (s *Simulation) PowerUps() []*components.PowerUp {
	return s.powerUps.Items()
}

// Bullets 返回子弹快照
func (s *Simulation) Bullets() []*components.Bullet {
	return s.gun.Bullets()
}

// Invulnerable 剩余无敌时间（秒）
func (s *Simulation) Invulnerable() float64 {
	return s.invulnerable
}

// LastScaledDt 最近一帧经减速修正的步长
func (s *Simulation) LastScaledDt() float64 {
	return s.lastScaledDt
}

// LastInput 最近一帧的输入
func (s *Simulation) LastInput() components.MovementInput {
	return s.lastInput
}
