package scenes

import (
	"log"

	"github.com/gonewx/sleighdash/pkg/components"
	"github.com/gonewx/sleighdash/pkg/game"
	"github.com/gonewx/sleighdash/pkg/simulation"
	"github.com/gonewx/sleighdash/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// 字号（像素，未缩放）
const (
	uiFontSize    = 14.0
	titleFontSize = 32.0
)

var (
	_ game.Scene        = (*GameScene)(nil)
	_ game.SceneEnterer = (*GameScene)(nil)
)

// effectsSeedSalt 外观随机数种子偏移，与模拟随机数错开
const effectsSeedSalt = 0x5eed

// sceneCommands 一帧内解码出的场景级命令
type sceneCommands struct {
	togglePause bool
	restart     bool
}

// GameScene 游戏主场景
//
// 每帧：读取键盘/拖拽输入 → 推进模拟 → 把效果请求交给效果层 →
// 推进背景滚动。绘制顺序：背景 → 实体 → Boss 血条 → 效果 → HUD → 扫描线。
type GameScene struct {
	sim      *simulation.Simulation
	images   ImageSource
	settings *game.SettingsManager

	drag     *utils.DragManager
	parallax *Parallax
	effects  *EffectsLayer
	entities *EntityRenderer
	hud      *HUD

	tiles       []*ebiten.Image
	tilesLoaded bool
}

// NewGameScene 创建游戏场景
//
// 参数:
//   - sim: 已完成缩放设置的模拟核心
//   - rm: 精灵槽位表（缺失的槽位绘制占位图形）
//   - settings: 用户设置，可为 nil（使用默认设置）
//   - seed: 外观随机数种子
//
// 返回:
//   - *GameScene: 场景实例
func NewGameScene(sim *simulation.Simulation, rm *game.ResourceManager, settings *game.SettingsManager, seed uint64) *GameScene {
	scale := sim.Scale()

	var face, bigFace text.Face
	if f, err := newTextFace(uiFontSize * scale); err != nil {
		log.Printf("[GameScene] Warning: %v, falling back to debug font", err)
	} else {
		face = f
		bigFace = &text.GoTextFace{Source: f.Source, Size: titleFontSize * scale}
	}

	return &GameScene{
		sim:      sim,
		images:   rm,
		settings: settings,
		drag:     utils.NewDragManager(),
		parallax: NewParallax(scale),
		effects:  NewEffectsLayer(utils.NewSeededRandom(seed^effectsSeedSalt), scale),
		entities: NewEntityRenderer(rm, rm.BuildSpritePools()),
		hud:      NewHUD(face, bigFace),
	}
}

// OnEnter 场景成为当前场景时丢弃残留的拖拽状态
func (s *GameScene) OnEnter() {
	s.drag.Reset()
	log.Printf("[GameScene] Entered (phase %s)", s.sim.Phase())
}

// Update 读取输入并推进一帧
func (s *GameScene) Update(deltaTime float64) {
	cmds := sceneCommands{
		togglePause: utils.IsAnyKeyJustPressed(ebiten.KeyP, ebiten.KeyEscape),
		restart:     utils.IsAnyKeyJustPressed(ebiten.KeyR),
	}

	s.drag.Update()
	mx, my := utils.KeyAxis()
	dx, dy := s.drag.FrameDelta()
	in := components.MovementInput{
		MoveX:     mx,
		MoveY:     my,
		PointerDX: float64(dx),
		PointerDY: float64(dy),
	}

	s.step(deltaTime, cmds, in)
}

// step 执行命令并推进模拟与表现层（与 ebiten 输入解耦）
func (s *GameScene) step(dt float64, cmds sceneCommands, in components.MovementInput) {
	if cmds.restart {
		s.Restart()
	}
	if cmds.togglePause {
		s.sim.TogglePause()
		log.Printf("[GameScene] Phase: %s", s.sim.Phase())
	}

	if s.sim.Phase() != simulation.PhaseRunning {
		return
	}

	s.sim.Tick(dt, in)
	s.effects.Apply(s.sim.DrainEffects())

	sdt := s.sim.LastScaledDt()
	s.effects.Update(dt)
	s.entities.Update(sdt)
	s.parallax.Update(sdt, s.sim.Modifiers().SpeedMultiplier(), in.MoveY)
}

// Restart 开始新的一局
func (s *GameScene) Restart() {
	s.sim.Reset()
	s.effects.Reset()
	s.parallax.Reset()
	s.drag.Reset()
	log.Printf("[GameScene] Restarted")
}

// Draw 绘制场景
func (s *GameScene) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	if !s.tilesLoaded {
		s.tiles = s.loadTiles()
		s.tilesLoaded = true
	}
	s.parallax.Draw(screen, s.tiles, s.images.GetImage(game.SlotCloud))
	s.entities.Draw(screen, s.sim)
	s.effects.Draw(screen, s.images, s.hud.face)
	s.hud.Draw(screen, s.sim, s.images, s.showHUD(), s.effects.HUDHitActive())
	drawScanlines(screen)
}

// loadTiles 收集已加载的地砖
func (s *GameScene) loadTiles() []*ebiten.Image {
	var tiles []*ebiten.Image
	for _, id := range game.TileSlots {
		if img := s.images.GetImage(id); img != nil {
			tiles = append(tiles, img)
		}
	}
	return tiles
}

func (s *GameScene) showHUD() bool {
	if s.settings == nil {
		return true
	}
	return s.settings.GetSettings().ShowHUD
}

// Simulation 返回模拟核心
func (s *GameScene) Simulation() *simulation.Simulation {
	return s.sim
}
