package utils

// Rect 轴对齐矩形（AABB）
// 原点在左上角，Y 轴向下
type Rect struct {
	X, Y float64 // 左上角坐标
	W, H float64 // 宽高
}

// Right 返回右边界 X 坐标
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom 返回下边界 Y 坐标
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Center 返回矩形中心点
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Intersects 检查两个矩形是否相交
//
// 任一轴上的区间不相交即判定为不碰撞；边缘恰好接触视为相交（闭区间）。
// 所有碰撞判定（玩家与障碍/礼物/道具、子弹与伪装礼物/Boss）以及越界剔除共用此函数。
//
// 参数:
//   - other: 另一个矩形
//
// 返回:
//   - bool: 相交（含边缘接触）返回 true
func (r Rect) Intersects(other Rect) bool {
	return !(r.Right() < other.X ||
		r.X > other.Right() ||
		r.Bottom() < other.Y ||
		r.Y > other.Bottom())
}

// Expand 向四周各扩展 margin，返回新矩形
func (r Rect) Expand(margin float64) Rect {
	return Rect{
		X: r.X - margin,
		Y: r.Y - margin,
		W: r.W + 2*margin,
		H: r.H + 2*margin,
	}
}

// ClampF 将 val 限制在 [min, max] 区间内
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
