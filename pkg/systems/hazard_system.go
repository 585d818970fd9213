package systems

import (
	"fmt"

	"github.com/gonewx/sleighdash/pkg/components"
	"github.com/gonewx/sleighdash/pkg/config"
	"github.com/gonewx/sleighdash/pkg/utils"
)

// HazardSystem 障碍物族
type HazardSystem struct {
	*EntityPool[components.Hazard]
	cfg   config.FamilyConfig
	scale float64
	rng   utils.RandomSource
}

// NewHazardSystem 创建障碍物系统
func NewHazardSystem(cfg config.FamilyConfig, minSpeedMul float64, rng utils.RandomSource) (*HazardSystem, error) {
	clock, err := NewSpawnClock(cfg.IntervalMin, cfg.IntervalMax)
	if err != nil {
		return nil, fmt.Errorf("hazards: %w", err)
	}

	s := &HazardSystem{cfg: cfg, scale: 1, rng: rng}
	s.EntityPool = NewEntityPool(clock,
		func(h *components.Hazard) *components.BodyComponent { return &h.BodyComponent },
		s.spawn,
		cfg.CullMargin, minSpeedMul, rng)
	return s, nil
}

// SetScale 设置尺寸缩放
func (s *HazardSystem) SetScale(scale float64) {
	s.scale = ClampScale(scale)
}

func (s *HazardSystem) spawn(bounds utils.Rect, speedMul float64) *components.Hazard {
	size := spawnSize(s.rng, s.cfg.SizeBase, s.cfg.SizeJitter, s.scale)
	return &components.Hazard{
		BodyComponent: spawnBody(s.rng, bounds, size, s.cfg.Drift, s.cfg.FallSpeedMin, s.cfg.FallSpeedMax, speedMul),
	}
}
