package systems

import (
	"fmt"

	"github.com/gonewx/sleighdash/pkg/components"
	"github.com/gonewx/sleighdash/pkg/config"
	"github.com/gonewx/sleighdash/pkg/utils"
)

// PowerUpSystem 道具族（圣诞树 / 雪人）
type PowerUpSystem struct {
	*EntityPool[components.PowerUp]
	cfg   config.PowerUpConfig
	scale float64
	rng   utils.RandomSource
}

// NewPowerUpSystem 创建道具系统
func NewPowerUpSystem(cfg config.PowerUpConfig, minSpeedMul float64, rng utils.RandomSource) (*PowerUpSystem, error) {
	clock, err := NewSpawnClock(cfg.IntervalMin, cfg.IntervalMax)
	if err != nil {
		return nil, fmt.Errorf("powerUps: %w", err)
	}

	s := &PowerUpSystem{cfg: cfg, scale: 1, rng: rng}
	s.EntityPool = NewEntityPool(clock,
		func(p *components.PowerUp) *components.BodyComponent { return &p.BodyComponent },
		s.spawn,
		cfg.CullMargin, minSpeedMul, rng)
	return s, nil
}

// SetScale 设置尺寸缩放
func (s *PowerUpSystem) SetScale(scale float64) {
	s.scale = ClampScale(scale)
}

func (s *PowerUpSystem) spawn(bounds utils.Rect, speedMul float64) *components.PowerUp {
	kind := components.PowerUpSnowman
	if s.rng.Float64() < s.cfg.TreeChance {
		kind = components.PowerUpTree
	}
	size := spawnSize(s.rng, s.cfg.SizeBase, s.cfg.SizeJitter, s.scale)
	return &components.PowerUp{
		BodyComponent: spawnBody(s.rng, bounds, size, s.cfg.Drift, s.cfg.FallSpeedMin, s.cfg.FallSpeedMax, speedMul),
		Kind:          kind,
	}
}
