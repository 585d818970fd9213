package components

// Hazard 下落障碍物
// 与玩家碰撞后（扣分之后）销毁，或离开可见区域后被剔除
type Hazard struct {
	BodyComponent
}

// Penalty 按障碍物宽度计算碰撞惩罚
//
// 返回:
//   - score: 分数惩罚 max(3, floor(w/2))
//   - seconds: 时间惩罚 max(1, floor(w/20))
func (h *Hazard) Penalty() (score, seconds int) {
	score = int(h.W / 2)
	if score < 3 {
		score = 3
	}
	seconds = int(h.W / 20)
	if seconds < 1 {
		seconds = 1
	}
	return score, seconds
}
