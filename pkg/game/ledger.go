package game

import "math"

// EconomyLedger 分数与时间银行
//
// 只由碰撞结果和被动计时修改，所有数值下限为 0。
type EconomyLedger struct {
	score    float64 // 当前分数
	timeBank float64 // 剩余时间（秒）
	elapsed  float64 // 本局已经过的真实时间（秒）
}

// NewEconomyLedger 创建账本
//
// 参数:
//   - startTime: 开局时间银行（秒）
func NewEconomyLedger(startTime float64) *EconomyLedger {
	l := &EconomyLedger{}
	l.Reset(startTime)
	return l
}

// Reset 回到开局状态
func (l *EconomyLedger) Reset(startTime float64) {
	l.score = 0
	l.timeBank = math.Max(0, startTime)
	l.elapsed = 0
}

// Advance 时间流逝：消耗时间银行并累计本局时长
//
// 返回:
//   - bool: 本次调用后时间银行是否耗尽
func (l *EconomyLedger) Advance(dt float64) bool {
	l.timeBank = math.Max(0, l.timeBank-dt)
	l.elapsed += dt
	return l.timeBank <= 0
}

// AddScore 增加分数（负数按扣分处理，下限为 0）
func (l *EconomyLedger) AddScore(amount float64) {
	l.score = math.Max(0, l.score+amount)
}

// AddTime 增加时间银行（负数按扣时处理，下限为 0）
func (l *EconomyLedger) AddTime(seconds float64) {
	l.timeBank = math.Max(0, l.timeBank+seconds)
}

// Penalize 同时扣减分数与时间，各自下限为 0
func (l *EconomyLedger) Penalize(score, seconds float64) {
	l.AddScore(-score)
	l.AddTime(-seconds)
}

// Score 返回精确分数
func (l *EconomyLedger) Score() float64 {
	return l.score
}

// TimeBank 返回剩余时间（秒）
func (l *EconomyLedger) TimeBank() float64 {
	return l.timeBank
}

// Elapsed 返回本局已经过时间（秒）
func (l *EconomyLedger) Elapsed() float64 {
	return l.elapsed
}

// ScoreDisplay 返回用于显示的分数（向下取整）
func (l *EconomyLedger) ScoreDisplay() int {
	return int(math.Floor(l.score))
}

// TimeDisplay 返回用于显示的剩余秒数（向上取整）
func (l *EconomyLedger) TimeDisplay() int {
	return int(math.Ceil(l.timeBank))
}
