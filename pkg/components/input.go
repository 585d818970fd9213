package components

// MovementInput 一帧内已解码的移动输入
type MovementInput struct {
	// MoveX, MoveY 方向键向量，各分量取值 {-1, 0, 1}
	MoveX, MoveY int
	// PointerDX, PointerDY 拖拽增量（像素），直接加到玩家位置
	PointerDX, PointerDY float64
}
