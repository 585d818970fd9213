package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig 配置校验失败
var ErrInvalidConfig = errors.New("invalid gameplay config")

// GameplayConfig 玩法参数配置
//
// 包含模拟核心的全部可调参数：时钟、经济、修正层、玩家、三类下落实体、
// 掉落物、树枪和 Boss。未在 YAML 中出现的字段保留默认值。
//
// 配置文件位置: data/gameplay.yaml
type GameplayConfig struct {
	Window       WindowConfig      `yaml:"window"`
	Clock        ClockConfig       `yaml:"clock"`
	Economy      EconomyConfig     `yaml:"economy"`
	Modifiers    ModifierConfig    `yaml:"modifiers"`
	Player       PlayerConfig      `yaml:"player"`
	Hazards      FamilyConfig      `yaml:"hazards"`
	Collectibles CollectibleConfig `yaml:"collectibles"`
	PowerUps     PowerUpConfig     `yaml:"powerUps"`
	Drops        DropConfig        `yaml:"drops"`
	Gun          GunConfig         `yaml:"gun"`
	Boss         BossConfig        `yaml:"boss"`
}

// WindowConfig 窗口与逻辑画布
type WindowConfig struct {
	Width  int    `yaml:"width"`  // 逻辑画布宽度（像素）
	Height int    `yaml:"height"` // 逻辑画布高度（像素）
	Title  string `yaml:"title"`
	// Scale 启动时统一应用的尺寸缩放
	Scale float64 `yaml:"scale"`
}

// ClockConfig 模拟时钟
type ClockConfig struct {
	// MaxDeltaTime 单帧最大步长（秒），卡顿后防止高速实体穿透玩家碰撞盒
	MaxDeltaTime float64 `yaml:"maxDeltaTime"`
}

// EconomyConfig 分数与时间银行
type EconomyConfig struct {
	StartTime          float64 `yaml:"startTime"`          // 开局时间银行（秒）
	PassiveScoreRate   float64 `yaml:"passiveScoreRate"`   // 被动得分（分/秒）
	GoodScore          float64 `yaml:"goodScore"`          // 普通礼物得分
	GoodTime           float64 `yaml:"goodTime"`           // 普通礼物加时（秒）
	MimicPenaltyBase   float64 `yaml:"mimicPenaltyBase"`   // 伪装礼物惩罚下限
	MimicPenaltyRange  float64 `yaml:"mimicPenaltyRange"`  // 伪装礼物惩罚增量上限
	MimicTimeHorizon   float64 `yaml:"mimicTimeHorizon"`   // 惩罚随时间增长到满额所需秒数
	PowerUpTime        float64 `yaml:"powerUpTime"`        // 道具加时（秒）
	HitInvulnerability float64 `yaml:"hitInvulnerability"` // 障碍碰撞后的无敌时间（秒）
}

// ModifierConfig 减速层与加速层
type ModifierConfig struct {
	SlowPerStack        float64 `yaml:"slowPerStack"`        // 每层减速系数，倍率 = 1/(1+k·n)
	SpeedPerStack       float64 `yaml:"speedPerStack"`       // 每层加速，倍率 = 1+k·n
	SpeedCap            float64 `yaml:"speedCap"`            // 加速倍率上限
	SnowmanSlowDuration float64 `yaml:"snowmanSlowDuration"` // 雪人减速层持续时间（秒）
	MinSpeedMultiplier  float64 `yaml:"minSpeedMultiplier"`  // 实体池使用的倍率下限
}

// PlayerConfig 玩家雪橇
type PlayerConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Aspect       float64 `yaml:"aspect"` // 纵向拉伸倍数
	Speed        float64 `yaml:"speed"`
	BoostStep    float64 `yaml:"boostStep"`    // 每个道具增加的移动速度
	MaxSpeed     float64 `yaml:"maxSpeed"`     // 移动速度上限
	BottomMargin float64 `yaml:"bottomMargin"` // 复位时距底边距离
}

// FamilyConfig 下落实体族的生成参数
type FamilyConfig struct {
	IntervalMin  float64 `yaml:"intervalMin"`  // 生成间隔下限（秒，未除以速度倍率）
	IntervalMax  float64 `yaml:"intervalMax"`  // 生成间隔上限
	SizeBase     int     `yaml:"sizeBase"`     // 基础尺寸（未缩放）
	SizeJitter   int     `yaml:"sizeJitter"`   // 尺寸随机增量 [0, jitter)
	Drift        float64 `yaml:"drift"`        // 水平漂移总跨度
	FallSpeedMin float64 `yaml:"fallSpeedMin"` // 下落速度下限（未乘速度倍率）
	FallSpeedMax float64 `yaml:"fallSpeedMax"`
	CullMargin   float64 `yaml:"cullMargin"` // 可见区域外的保留边距
}

// CollectibleConfig 礼物族
type CollectibleConfig struct {
	FamilyConfig `yaml:",inline"`
	MimicChance  float64 `yaml:"mimicChance"` // 生成伪装礼物的概率
	MimicHealth  int     `yaml:"mimicHealth"` // 伪装礼物需要的子弹命中数
}

// PowerUpConfig 道具族
type PowerUpConfig struct {
	FamilyConfig `yaml:",inline"`
	TreeChance   float64 `yaml:"treeChance"` // 生成圣诞树的概率，其余为雪人
}

// DropConfig 伪装礼物死亡掉落物
type DropConfig struct {
	FallSpeed      float64 `yaml:"fallSpeed"`
	PowerUpSize    int     `yaml:"powerUpSize"`
	PowerUpDrift   float64 `yaml:"powerUpDrift"`
	GiftSizeBase   int     `yaml:"giftSizeBase"`
	GiftSizeJitter int     `yaml:"giftSizeJitter"`
	GiftDrift      float64 `yaml:"giftDrift"`
}

// GunConfig 树枪
type GunConfig struct {
	FireInterval float64 `yaml:"fireInterval"` // 齐射间隔（秒）
	BulletSpeed  float64 `yaml:"bulletSpeed"`  // 子弹速度（未缩放）
	BulletWidth  float64 `yaml:"bulletWidth"`
	BulletHeight float64 `yaml:"bulletHeight"`
	EmitterWidth float64 `yaml:"emitterWidth"` // 枪身宽度（未缩放）
	// EmitterAspect 枪身高宽比
	EmitterAspect float64 `yaml:"emitterAspect"`
	CullAbove     float64 `yaml:"cullAbove"` // 子弹越过顶边多少像素后剔除
	// Durations 前几层的总时长表（秒），之后每层增加 ExtraPerStack
	Durations     []float64 `yaml:"durations"`
	ExtraPerStack float64   `yaml:"extraPerStack"`
	MaxDuration   float64   `yaml:"maxDuration"` // 总时长硬上限
	MaxRows       int       `yaml:"maxRows"`
}

// BossConfig Boss 遭遇战
type BossConfig struct {
	Health          int     `yaml:"health"`
	Size            float64 `yaml:"size"` // 未缩放边长
	HoverSpeed      float64 `yaml:"hoverSpeed"`
	ThrowPeriod     float64 `yaml:"throwPeriod"`     // 投掷伪装礼物周期（秒）
	SpawnTimeBank   float64 `yaml:"spawnTimeBank"`   // 时间银行达到该值才会出现
	SpawnMinElapsed float64 `yaml:"spawnMinElapsed"` // 本局至少经过的秒数
	RespawnCooldown float64 `yaml:"respawnCooldown"` // 被击败后的再生冷却（秒）
	HitFlash        float64 `yaml:"hitFlash"`        // 受击闪红时间（秒）
	Reward          float64 `yaml:"reward"`          // 一次性击败奖励
	SpawnVignette   float64 `yaml:"spawnVignette"`   // 出场黑色暗角持续时间
	ThrowSizeBase   int     `yaml:"throwSizeBase"`
	ThrowSizeJitter int     `yaml:"throwSizeJitter"`
	ThrowDrift      float64 `yaml:"throwDrift"`
	ThrowSpeed      float64 `yaml:"throwSpeed"`
	ThrowHealth     int     `yaml:"throwHealth"`
}

// DefaultGameplayConfig 返回默认玩法参数
// 与 data/gameplay.yaml 保持一致
func DefaultGameplayConfig() *GameplayConfig {
	return &GameplayConfig{
		Window: WindowConfig{Width: 540, Height: 900, Title: "Sleigh Dash", Scale: 1.6},
		Clock:  ClockConfig{MaxDeltaTime: 0.05},
		Economy: EconomyConfig{
			StartTime:          60,
			PassiveScoreRate:   2,
			GoodScore:          10,
			GoodTime:           5,
			MimicPenaltyBase:   20,
			MimicPenaltyRange:  80,
			MimicTimeHorizon:   120,
			PowerUpTime:        8,
			HitInvulnerability: 0.6,
		},
		Modifiers: ModifierConfig{
			SlowPerStack:        0.5,
			SpeedPerStack:       0.06,
			SpeedCap:            2.5,
			SnowmanSlowDuration: 4,
			MinSpeedMultiplier:  0.5,
		},
		Player: PlayerConfig{
			Width: 24, Height: 14, Aspect: 5,
			Speed: 220, BoostStep: 60, MaxSpeed: 340,
			BottomMargin: 24,
		},
		Hazards: FamilyConfig{
			IntervalMin: 0.5, IntervalMax: 1.1,
			SizeBase: 12, SizeJitter: 18,
			Drift:        60,
			FallSpeedMin: 120, FallSpeedMax: 300,
			CullMargin: 40,
		},
		Collectibles: CollectibleConfig{
			FamilyConfig: FamilyConfig{
				IntervalMin: 0.9, IntervalMax: 1.7,
				SizeBase: 14, SizeJitter: 10,
				Drift:        40,
				FallSpeedMin: 80, FallSpeedMax: 200,
				CullMargin: 40,
			},
			MimicChance: 0.45,
			MimicHealth: 3,
		},
		PowerUps: PowerUpConfig{
			FamilyConfig: FamilyConfig{
				IntervalMin: 2.5, IntervalMax: 4.5,
				SizeBase: 22, SizeJitter: 0,
				Drift:        30,
				FallSpeedMin: 90, FallSpeedMax: 200,
				CullMargin: 40,
			},
			TreeChance: 0.5,
		},
		Drops: DropConfig{
			FallSpeed:    120,
			PowerUpSize:  22,
			PowerUpDrift: 30,
			GiftSizeBase: 14, GiftSizeJitter: 10,
			GiftDrift: 40,
		},
		Gun: GunConfig{
			FireInterval:  0.12,
			BulletSpeed:   380,
			BulletWidth:   6,
			BulletHeight:  12,
			EmitterWidth:  14,
			EmitterAspect: 3,
			CullAbove:     100,
			Durations:     []float64{3, 6, 8},
			ExtraPerStack: 1,
			MaxDuration:   60,
			MaxRows:       3,
		},
		Boss: BossConfig{
			Health:          200,
			Size:            64,
			HoverSpeed:      120,
			ThrowPeriod:     1.8,
			SpawnTimeBank:   500,
			SpawnMinElapsed: 0,
			RespawnCooldown: 200,
			HitFlash:        0.2,
			Reward:          500,
			SpawnVignette:   6,
			ThrowSizeBase:   18,
			ThrowSizeJitter: 8,
			ThrowDrift:      50,
			ThrowSpeed:      160,
			ThrowHealth:     3,
		},
	}
}

// LoadGameplayConfig 加载玩法参数配置
//
// 参数:
//   - path: 配置文件路径（如 "data/gameplay.yaml"）
//
// 返回:
//   - *GameplayConfig: 加载并校验后的配置
//   - error: 读取、解析或校验失败时返回错误
func LoadGameplayConfig(path string) (*GameplayConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read gameplay config: %w", err)
	}
	return ParseGameplayConfig(data)
}

// ParseGameplayConfig 从 YAML 数据解析玩法参数
// 以默认配置为底，YAML 中出现的字段覆盖默认值
func ParseGameplayConfig(data []byte) (*GameplayConfig, error) {
	cfg := DefaultGameplayConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse gameplay config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate 验证配置有效性
//
// 拒绝负的时长、零尺寸和倒置的区间，避免运行时出现 NaN 或负数状态。
//
// 返回:
//   - error: 包装 ErrInvalidConfig 的错误，成功返回 nil
func (c *GameplayConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0, "window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	check(c.Window.Scale > 0, "window.scale must be positive, got %.2f", c.Window.Scale)
	check(c.Clock.MaxDeltaTime > 0, "clock.maxDeltaTime must be positive, got %.3f", c.Clock.MaxDeltaTime)

	e := c.Economy
	check(e.StartTime >= 0, "economy.startTime must be >= 0, got %.1f", e.StartTime)
	check(e.PassiveScoreRate >= 0, "economy.passiveScoreRate must be >= 0")
	check(e.GoodScore >= 0 && e.GoodTime >= 0, "economy good rewards must be >= 0")
	check(e.MimicPenaltyBase >= 0 && e.MimicPenaltyRange >= 0, "economy mimic penalty must be >= 0")
	check(e.MimicTimeHorizon > 0, "economy.mimicTimeHorizon must be positive")
	check(e.PowerUpTime >= 0, "economy.powerUpTime must be >= 0")
	check(e.HitInvulnerability >= 0, "economy.hitInvulnerability must be >= 0")

	m := c.Modifiers
	check(m.SlowPerStack >= 0, "modifiers.slowPerStack must be >= 0")
	check(m.SpeedPerStack >= 0, "modifiers.speedPerStack must be >= 0")
	check(m.SpeedCap >= 1, "modifiers.speedCap must be >= 1, got %.2f", m.SpeedCap)
	check(m.SnowmanSlowDuration > 0, "modifiers.snowmanSlowDuration must be positive")
	check(m.MinSpeedMultiplier > 0, "modifiers.minSpeedMultiplier must be positive")

	p := c.Player
	check(p.Width > 0 && p.Height > 0 && p.Aspect > 0, "player size must be positive")
	check(p.Speed >= 0 && p.MaxSpeed >= p.Speed, "player speed range invalid: speed(%.1f) maxSpeed(%.1f)", p.Speed, p.MaxSpeed)
	check(p.BoostStep >= 0, "player.boostStep must be >= 0")

	errs = append(errs, c.Hazards.validate("hazards")...)
	errs = append(errs, c.Collectibles.validate("collectibles")...)
	errs = append(errs, c.PowerUps.validate("powerUps")...)
	check(c.Collectibles.MimicChance >= 0 && c.Collectibles.MimicChance <= 1, "collectibles.mimicChance must be in [0,1]")
	check(c.Collectibles.MimicHealth > 0, "collectibles.mimicHealth must be positive")
	check(c.PowerUps.TreeChance >= 0 && c.PowerUps.TreeChance <= 1, "powerUps.treeChance must be in [0,1]")

	d := c.Drops
	check(d.FallSpeed >= 0, "drops.fallSpeed must be >= 0")
	check(d.PowerUpSize > 0 && d.GiftSizeBase > 0, "drop sizes must be positive")
	check(d.GiftSizeJitter >= 0, "drops.giftSizeJitter must be >= 0")

	g := c.Gun
	check(g.FireInterval > 0, "gun.fireInterval must be positive")
	check(g.BulletSpeed > 0, "gun.bulletSpeed must be positive")
	check(g.BulletWidth > 0 && g.BulletHeight > 0, "gun bullet size must be positive")
	check(g.EmitterWidth > 0 && g.EmitterAspect > 0, "gun emitter size must be positive")
	check(g.CullAbove >= 0, "gun.cullAbove must be >= 0")
	check(len(g.Durations) > 0, "gun.durations cannot be empty")
	for i, dur := range g.Durations {
		check(dur > 0, "gun.durations[%d] must be positive, got %.2f", i, dur)
	}
	check(g.ExtraPerStack >= 0, "gun.extraPerStack must be >= 0")
	check(g.MaxDuration > 0, "gun.maxDuration must be positive")
	check(g.MaxRows > 0, "gun.maxRows must be positive")

	b := c.Boss
	check(b.Health > 0, "boss.health must be positive")
	check(b.Size > 0, "boss.size must be positive")
	check(b.HoverSpeed >= 0, "boss.hoverSpeed must be >= 0")
	check(b.ThrowPeriod > 0, "boss.throwPeriod must be positive")
	check(b.SpawnMinElapsed >= 0 && b.RespawnCooldown >= 0, "boss spawn timing must be >= 0")
	check(b.HitFlash >= 0 && b.SpawnVignette >= 0, "boss effect durations must be >= 0")
	check(b.Reward >= 0, "boss.reward must be >= 0")
	check(b.ThrowSizeBase > 0 && b.ThrowSizeJitter >= 0, "boss throw size invalid")
	check(b.ThrowHealth > 0, "boss.throwHealth must be positive")

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// validate 校验实体族参数
func (f FamilyConfig) validate(name string) []error {
	var errs []error
	if f.IntervalMin <= 0 || f.IntervalMin > f.IntervalMax {
		errs = append(errs, fmt.Errorf("%s interval invalid: min(%.2f) max(%.2f)", name, f.IntervalMin, f.IntervalMax))
	}
	if f.SizeBase <= 0 || f.SizeJitter < 0 {
		errs = append(errs, fmt.Errorf("%s size invalid: base(%d) jitter(%d)", name, f.SizeBase, f.SizeJitter))
	}
	if f.Drift < 0 {
		errs = append(errs, fmt.Errorf("%s drift must be >= 0", name))
	}
	if f.FallSpeedMin < 0 || f.FallSpeedMin > f.FallSpeedMax {
		errs = append(errs, fmt.Errorf("%s fall speed invalid: min(%.1f) max(%.1f)", name, f.FallSpeedMin, f.FallSpeedMax))
	}
	if f.CullMargin < 0 {
		errs = append(errs, fmt.Errorf("%s cull margin must be >= 0", name))
	}
	return errs
}

// GunDuration 按叠加层数返回树枪总时长（秒）
//
// 1 层 3s，2 层 6s，3 层 8s，之后每层 +1s，最高 60s；层数 <= 0 时返回 0
func (g GunConfig) GunDuration(stacks int) float64 {
	if stacks <= 0 || len(g.Durations) == 0 {
		return 0
	}
	var total float64
	if stacks <= len(g.Durations) {
		total = g.Durations[stacks-1]
	} else {
		total = g.Durations[len(g.Durations)-1] + float64(stacks-len(g.Durations))*g.ExtraPerStack
	}
	if total > g.MaxDuration {
		total = g.MaxDuration
	}
	return total
}
