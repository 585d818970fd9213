package systems

import (
	"fmt"

	"github.com/gonewx/sleighdash/pkg/utils"
)

// SpawnClock 带随机抖动的生成节奏计时器
// 所有下落实体族共用
type SpawnClock struct {
	minInterval float64
	maxInterval float64
	timer       float64 // 距离下一次生成的剩余时间（秒）
}

// NewSpawnClock 创建生成计时器
//
// 参数:
//   - minInterval, maxInterval: 生成间隔区间（秒），要求 0 < min <= max
//
// 返回:
//   - *SpawnClock: 计时器实例，初始剩余时间为 0（首帧即生成）
//   - error: 区间非法时返回错误
func NewSpawnClock(minInterval, maxInterval float64) (*SpawnClock, error) {
	if minInterval <= 0 || minInterval > maxInterval {
		return nil, fmt.Errorf("spawn interval invalid: min(%.2f) max(%.2f)", minInterval, maxInterval)
	}
	return &SpawnClock{minInterval: minInterval, maxInterval: maxInterval}, nil
}

// Tick 推进计时器，到期时重置并返回 true
//
// 计时器按 dt·speedMul 消耗，新间隔为 uniform(min,max)/speedMul，
// 因此加速层同时缩短间隔并加快消耗。每次调用最多触发一次生成。
func (c *SpawnClock) Tick(dt, speedMul float64, rng utils.RandomSource) bool {
	c.timer -= dt * speedMul
	if c.timer > 0 {
		return false
	}
	c.timer = utils.Uniform(rng, c.minInterval, c.maxInterval) / speedMul
	return true
}

// Remaining 返回距离下一次生成的剩余时间
func (c *SpawnClock) Remaining() float64 {
	return c.timer
}

// Reset 重置计时器，下一次 Tick 立即生成
func (c *SpawnClock) Reset() {
	c.timer = 0
}
