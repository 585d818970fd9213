package utils

import "math/rand/v2"

// RandomSource 模拟使用的随机数源
//
// *rand.Rand 天然满足该接口。所有生成节奏、掉落选择、漂移速度都从这里取值，
// 固定种子即可复现同一局的行为。
type RandomSource interface {
	Float64() float64
	IntN(n int) int
}

// NewSeededRandom 使用固定种子创建可复现的随机数源
func NewSeededRandom(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Uniform 返回 [min, max) 区间的均匀随机数
func Uniform(r RandomSource, min, max float64) float64 {
	return min + r.Float64()*(max-min)
}

// Jitter 返回以 0 为中心、总跨度为 span 的对称随机偏移
// 即 (rand - 0.5) * span
func Jitter(r RandomSource, span float64) float64 {
	return (r.Float64() - 0.5) * span
}

// IntN 返回 [0, n) 的随机整数；n <= 0 时返回 0
func IntN(r RandomSource, n int) int {
	if n <= 0 {
		return 0
	}
	return r.IntN(n)
}
