package components

import "github.com/gonewx/sleighdash/pkg/utils"

// BodyComponent 运动刚体
// 轴对齐包围盒 + 速度，原点在左上角，Y 轴向下
type BodyComponent struct {
	X, Y   float64 // 左上角位置（像素）
	W, H   float64 // 尺寸（像素），始终 > 0
	VX, VY float64 // 速度（像素/秒）
}

// Bounds 返回碰撞盒
func (b *BodyComponent) Bounds() utils.Rect {
	return utils.Rect{X: b.X, Y: b.Y, W: b.W, H: b.H}
}

// Step 按速度推进位置
func (b *BodyComponent) Step(dt float64) {
	b.X += b.VX * dt
	b.Y += b.VY * dt
}

// Center 返回中心点
func (b *BodyComponent) Center() (float64, float64) {
	return b.X + b.W/2, b.Y + b.H/2
}
