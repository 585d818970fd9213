// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// 方向键映射：方向键与 WASD 等价
var (
	leftKeys  = []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}
	rightKeys = []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}
	upKeys    = []ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW}
	downKeys  = []ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS}
)

// AxisFromKeys 由四个方向的按下状态合成轴向量
// 相反方向同时按下时相互抵消
func AxisFromKeys(left, right, up, down bool) (x, y int) {
	if left {
		x--
	}
	if right {
		x++
	}
	if up {
		y--
	}
	if down {
		y++
	}
	return x, y
}

// KeyAxis 读取当前帧的方向键状态
//
// 返回:
//   - x, y: 各分量取值 {-1, 0, 1}，Y 轴向下为正
func KeyAxis() (x, y int) {
	return AxisFromKeys(
		anyPressed(leftKeys),
		anyPressed(rightKeys),
		anyPressed(upKeys),
		anyPressed(downKeys),
	)
}

func anyPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

// IsAnyKeyJustPressed 任一按键在本帧刚按下
func IsAnyKeyJustPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

// ============================================================================
// 拖拽状态管理器 - 触摸/鼠标拖动雪橇
// ============================================================================

// DragState 拖拽状态
type DragState int

const (
	// DragStateNone 无拖拽
	DragStateNone DragState = iota
	// DragStateStarted 拖拽开始（刚按下）
	DragStateStarted
	// DragStateDragging 拖拽中（按住移动）
	DragStateDragging
	// DragStateEnded 拖拽结束（释放）
	DragStateEnded
)

// DragInfo 拖拽信息
type DragInfo struct {
	// State 当前拖拽状态
	State DragState
	// StartX, StartY 拖拽起始位置（屏幕坐标）
	StartX, StartY int
	// CurrentX, CurrentY 当前位置（屏幕坐标）
	CurrentX, CurrentY int
	// LastX, LastY 上一帧位置，用于计算帧增量
	LastX, LastY int
	// TouchID 当前跟踪的触摸ID（-1 表示鼠标）
	TouchID ebiten.TouchID
	// IsTouchInput 是否为触摸输入（区分触摸和鼠标）
	IsTouchInput bool
}

// PointerSample 一帧的指针采样
type PointerSample struct {
	// JustPressed 本帧刚按下
	JustPressed bool
	// Pressed 当前仍按住
	Pressed bool
	X, Y    int
	TouchID ebiten.TouchID
	IsTouch bool
}

// DragManager 拖拽管理器
// 跟踪触摸/鼠标的拖拽状态，并按帧输出指针位移
type DragManager struct {
	info DragInfo
}

// NewDragManager 创建拖拽管理器
func NewDragManager() *DragManager {
	return &DragManager{info: DragInfo{State: DragStateNone, TouchID: -1}}
}

// Update 采样当前输入并推进拖拽状态（每帧调用一次）
func (dm *DragManager) Update() {
	dm.Advance(samplePointer(dm.info))
}

// samplePointer 读取 ebiten 指针状态；正在跟踪的触摸优先
func samplePointer(info DragInfo) PointerSample {
	touchIDs := ebiten.AppendTouchIDs(nil)
	if info.IsTouchInput && info.State != DragStateNone {
		for _, id := range touchIDs {
			if id == info.TouchID {
				x, y := ebiten.TouchPosition(id)
				return PointerSample{Pressed: true, X: x, Y: y, TouchID: id, IsTouch: true}
			}
		}
		return PointerSample{TouchID: info.TouchID, IsTouch: true}
	}

	if justPressed := inpututil.AppendJustPressedTouchIDs(nil); len(justPressed) > 0 {
		x, y := ebiten.TouchPosition(justPressed[0])
		return PointerSample{JustPressed: true, Pressed: true, X: x, Y: y, TouchID: justPressed[0], IsTouch: true}
	}

	x, y := ebiten.CursorPosition()
	return PointerSample{
		JustPressed: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		Pressed:     ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		X:           x,
		Y:           y,
		TouchID:     -1,
	}
}

// Advance 用一帧采样推进状态机
// 与 ebiten 输入解耦，便于测试
func (dm *DragManager) Advance(s PointerSample) {
	switch dm.info.State {
	case DragStateNone, DragStateEnded:
		if s.JustPressed {
			dm.info = DragInfo{
				State:        DragStateStarted,
				StartX:       s.X,
				StartY:       s.Y,
				CurrentX:     s.X,
				CurrentY:     s.Y,
				LastX:        s.X,
				LastY:        s.Y,
				TouchID:      s.TouchID,
				IsTouchInput: s.IsTouch,
			}
			return
		}
		dm.Reset()

	case DragStateStarted, DragStateDragging:
		if !s.Pressed {
			dm.info.State = DragStateEnded
			dm.info.LastX, dm.info.LastY = dm.info.CurrentX, dm.info.CurrentY
			return
		}
		dm.info.State = DragStateDragging
		dm.info.LastX, dm.info.LastY = dm.info.CurrentX, dm.info.CurrentY
		dm.info.CurrentX, dm.info.CurrentY = s.X, s.Y
	}
}

// Reset 重置拖拽状态
func (dm *DragManager) Reset() {
	dm.info = DragInfo{
		State:   DragStateNone,
		TouchID: -1,
	}
}

// GetState 获取当前拖拽状态
func (dm *DragManager) GetState() DragState {
	return dm.info.State
}

// GetInfo 获取完整拖拽信息
func (dm *DragManager) GetInfo() DragInfo {
	return dm.info
}

// IsDragging 是否正在拖拽
func (dm *DragManager) IsDragging() bool {
	return dm.info.State == DragStateDragging
}

// JustStarted 是否刚开始拖拽（本帧）
func (dm *DragManager) JustStarted() bool {
	return dm.info.State == DragStateStarted
}

// JustEnded 是否刚结束拖拽（本帧）
func (dm *DragManager) JustEnded() bool {
	return dm.info.State == DragStateEnded
}

// GetDragDistance 获取拖拽距离（从起点到当前位置）
func (dm *DragManager) GetDragDistance() (dx, dy int) {
	return dm.info.CurrentX - dm.info.StartX, dm.info.CurrentY - dm.info.StartY
}

// FrameDelta 返回本帧的指针位移（仅拖拽中非零）
func (dm *DragManager) FrameDelta() (dx, dy int) {
	if dm.info.State != DragStateDragging {
		return 0, 0
	}
	return dm.info.CurrentX - dm.info.LastX, dm.info.CurrentY - dm.info.LastY
}

// IsTouchDrag 是否为触摸拖拽
func (dm *DragManager) IsTouchDrag() bool {
	return dm.info.IsTouchInput
}
