package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene 可由 SceneManager 驱动的场景
type Scene interface {
	// Update 推进一帧，deltaTime 为已夹紧的帧间隔（秒）
	Update(deltaTime float64)

	// Draw 绘制到逻辑画布；暂停时也会被调用
	Draw(screen *ebiten.Image)
}

// SceneEnterer 可选接口：场景被切换为当前场景时收到通知
type SceneEnterer interface {
	OnEnter()
}

// SceneExiter 可选接口：场景被切走时收到通知
type SceneExiter interface {
	OnExit()
}
