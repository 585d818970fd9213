package components

// PlayerComponent 玩家（雪橇）
type PlayerComponent struct {
	BodyComponent
	// Speed 键盘移动速度（像素/秒）
	Speed float64
}
