package systems

import (
	"fmt"

	"github.com/gonewx/sleighdash/pkg/config"
	"github.com/gonewx/sleighdash/pkg/utils"
)

// ModifierStack 时间修正层
//
// 维护两类相互独立的修正：
//   - 减速层：每层独立倒计时，倍率 1/(1+k·n) 作用于模拟步长
//   - 加速层：本局内只增不减的计数，倍率 min(cap, 1+k·n) 作用于生成节奏与下落速度
type ModifierStack struct {
	cfg         config.ModifierConfig
	slowStacks  []float64 // 每个减速层的剩余时间（秒）
	speedStacks int
}

// NewModifierStack 创建修正层
func NewModifierStack(cfg config.ModifierConfig) *ModifierStack {
	return &ModifierStack{
		cfg:        cfg,
		slowStacks: make([]float64, 0),
	}
}

// PushSlow 追加一个独立倒计时的减速层
func (m *ModifierStack) PushSlow(duration float64) error {
	if duration <= 0 {
		return fmt.Errorf("slow duration must be positive, got %.2f", duration)
	}
	m.slowStacks = append(m.slowStacks, duration)
	return nil
}

// Tick 所有减速层倒计时，并删除已到期的层
// dt 为真实时间步长（不受减速影响）
func (m *ModifierStack) Tick(dt float64) {
	if len(m.slowStacks) == 0 {
		return
	}
	kept := m.slowStacks[:0]
	for _, remaining := range m.slowStacks {
		remaining -= dt
		if remaining > 0 {
			kept = append(kept, remaining)
		}
	}
	m.slowStacks = kept
}

// ClearSlow 清除全部减速层
func (m *ModifierStack) ClearSlow() {
	m.slowStacks = m.slowStacks[:0]
}

// IncrementSpeed 增加一层加速
func (m *ModifierStack) IncrementSpeed() {
	m.speedStacks++
}

// SlowCount 当前生效的减速层数
func (m *ModifierStack) SlowCount() int {
	return len(m.slowStacks)
}

// SlowRemaining 返回各减速层剩余时间的副本
func (m *ModifierStack) SlowRemaining() []float64 {
	out := make([]float64, len(m.slowStacks))
	copy(out, m.slowStacks)
	return out
}

// SpeedStacks 当前加速层数
func (m *ModifierStack) SpeedStacks() int {
	return m.speedStacks
}

// SlowMultiplier 减速倍率 1/(1+k·n)
func (m *ModifierStack) SlowMultiplier() float64 {
	return 1 / (1 + m.cfg.SlowPerStack*float64(len(m.slowStacks)))
}

// EffectiveDt 返回经减速修正的步长
func (m *ModifierStack) EffectiveDt(dt float64) float64 {
	return dt * m.SlowMultiplier()
}

// SpeedMultiplier 加速倍率 min(cap, 1+k·n)
func (m *ModifierStack) SpeedMultiplier() float64 {
	mul := 1 + m.cfg.SpeedPerStack*float64(m.speedStacks)
	if mul > m.cfg.SpeedCap {
		return m.cfg.SpeedCap
	}
	return mul
}

// SpeedProgress 加速进度 (mul-1)/(cap-1)，范围 [0, 1]
func (m *ModifierStack) SpeedProgress() float64 {
	return m.ProgressAt(m.SpeedMultiplier())
}

// ProgressAt 把给定的加速倍率换算为加速进度，用于按帧初的倍率结算
func (m *ModifierStack) ProgressAt(mul float64) float64 {
	if m.cfg.SpeedCap <= 1 {
		return 0
	}
	return utils.ClampF((mul-1)/(m.cfg.SpeedCap-1), 0, 1)
}

// Reset 清空所有修正
func (m *ModifierStack) Reset() {
	m.slowStacks = m.slowStacks[:0]
	m.speedStacks = 0
}
