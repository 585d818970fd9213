package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneManager 持有当前场景，只驱动这一个场景的 Update 和 Draw
type SceneManager struct {
	current Scene
}

// NewSceneManager 创建没有活动场景的管理器，使用 SwitchTo 设置初始场景
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SwitchTo 切换当前场景
//
// 旧场景实现 SceneExiter 时先调用 OnExit，新场景实现 SceneEnterer 时再调用 OnEnter。
// 切换到同一个场景不会重复触发回调。
func (sm *SceneManager) SwitchTo(scene Scene) {
	if scene == sm.current {
		return
	}
	if exiter, ok := sm.current.(SceneExiter); ok {
		exiter.OnExit()
	}
	sm.current = scene
	if enterer, ok := scene.(SceneEnterer); ok {
		enterer.OnEnter()
	}
	log.Printf("[SceneManager] Switched to %T", scene)
}

// GetCurrentScene 返回当前活动的场景，没有活动场景时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.current
}

// Update 推进当前场景；没有场景时什么也不做
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.current != nil {
		sm.current.Update(deltaTime)
	}
}

// Draw 绘制当前场景；没有场景时什么也不做
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.current != nil {
		sm.current.Draw(screen)
	}
}
