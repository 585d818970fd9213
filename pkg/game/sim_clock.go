package game

import (
	"math"
	"time"
)

// TimeProvider 提供当前时间
type TimeProvider interface {
	Now() time.Time
}

// SystemTimeProvider 使用系统单调时钟
type SystemTimeProvider struct{}

// Now returns the current time with monotonic clock reading
func (SystemTimeProvider) Now() time.Time {
	return time.Now()
}

// SimulationClock 帧时钟
//
// 每帧测量真实间隔并夹紧到 [0, maxDelta]，保证卡顿后单帧位移有上界，
// 高速实体不会穿过玩家碰撞盒。
type SimulationClock struct {
	provider TimeProvider
	maxDelta float64
	last     time.Time
	started  bool
}

// NewSimulationClock 创建帧时钟
//
// 参数:
//   - provider: 时间来源，nil 时使用系统时钟
//   - maxDelta: 单帧最大步长（秒）
func NewSimulationClock(provider TimeProvider, maxDelta float64) *SimulationClock {
	if provider == nil {
		provider = SystemTimeProvider{}
	}
	return &SimulationClock{provider: provider, maxDelta: maxDelta}
}

// Next 返回自上一帧以来经过并夹紧后的时间（秒）
// 第一帧返回 0
func (c *SimulationClock) Next() float64 {
	now := c.provider.Now()
	if !c.started {
		c.started = true
		c.last = now
		return 0
	}
	dt := now.Sub(c.last).Seconds()
	c.last = now
	return c.Clamp(dt)
}

// Clamp 将任意步长夹紧到 [0, maxDelta]
func (c *SimulationClock) Clamp(dt float64) float64 {
	if math.IsNaN(dt) || dt < 0 {
		return 0
	}
	return math.Min(dt, c.maxDelta)
}

// Restart 丢弃上一帧时间戳，下一次 Next 返回 0
func (c *SimulationClock) Restart() {
	c.started = false
}
