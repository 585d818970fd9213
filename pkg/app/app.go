// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/gonewx/sleighdash/pkg/config"
	"github.com/gonewx/sleighdash/pkg/embedded"
	"github.com/gonewx/sleighdash/pkg/game"
	"github.com/gonewx/sleighdash/pkg/scenes"
	"github.com/gonewx/sleighdash/pkg/simulation"
	"github.com/gonewx/sleighdash/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// 配置文件路径（嵌入的 data/ 文件系统）
const (
	GameplayConfigPath = "data/gameplay.yaml"
	ResourceConfigPath = "data/resources.yaml"
)

// appName gdata 存储目录名
const appName = "sleighdash"

// zoomStep 每次按键调整的窗口缩放量
const zoomStep = 0.25

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Seed 模拟随机数种子，相同种子 + 相同输入复现同一局
	Seed uint64
	// Fullscreen 启动时强制全屏（覆盖用户设置）
	Fullscreen bool
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	scene        *scenes.GameScene
	settings     *game.SettingsManager
	clock        *game.SimulationClock

	width, height int
	title         string
	verbose       bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// LoadGameplayConfig 从嵌入文件系统读取玩法参数
func LoadGameplayConfig() (*config.GameplayConfig, error) {
	data, err := embedded.ReadFile(GameplayConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", GameplayConfigPath, err)
	}
	return config.ParseGameplayConfig(data)
}

// NewSimulation 按玩法参数创建模拟核心并应用统一缩放
//
// 参数:
//   - cfg: 玩法参数
//   - seed: 随机数种子
//   - pools: 已加载的礼物变体（只使用数量）
func NewSimulation(cfg *config.GameplayConfig, seed uint64, pools game.SpritePools) (*simulation.Simulation, error) {
	sim, err := simulation.New(cfg, utils.NewSeededRandom(seed))
	if err != nil {
		return nil, fmt.Errorf("failed to create simulation: %w", err)
	}
	if err := sim.SetScale(cfg.Window.Scale); err != nil {
		return nil, fmt.Errorf("failed to apply scale: %w", err)
	}
	sim.SetSpriteVariants(len(pools.Good), len(pools.Bad))
	return sim, nil
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	gameplay, err := LoadGameplayConfig()
	if err != nil {
		return nil, fmt.Errorf("玩法配置加载失败: %w", err)
	}
	log.Printf("[Config] Loaded %s (window %dx%d, scale %.2f)",
		GameplayConfigPath, gameplay.Window.Width, gameplay.Window.Height, gameplay.Window.Scale)

	// 创建资源管理器；缺失的精灵只影响外观
	resourceManager := game.NewResourceManager()
	if err := resourceManager.LoadResourceConfig(ResourceConfigPath); err != nil {
		return nil, fmt.Errorf("资源配置加载失败: %w", err)
	}
	if _, err := resourceManager.LoadAll(); err != nil {
		return nil, fmt.Errorf("精灵加载失败: %w", err)
	}
	pools := resourceManager.BuildSpritePools()

	sim, err := NewSimulation(gameplay, cfg.Seed, pools)
	if err != nil {
		return nil, err
	}
	log.Printf("[App] Simulation ready (seed %d, gift variants %d/%d)", cfg.Seed, len(pools.Good), len(pools.Bad))

	settings, err := game.NewSettingsManager(openStorage())
	if err != nil {
		return nil, fmt.Errorf("设置加载失败: %w", err)
	}
	if cfg.Fullscreen {
		settings.SetFullscreen(true)
	}

	// 创建场景管理器
	sceneManager := game.NewSceneManager()
	gameScene := scenes.NewGameScene(sim, resourceManager, settings, cfg.Seed)
	sceneManager.SwitchTo(gameScene)

	return &App{
		sceneManager: sceneManager,
		scene:        gameScene,
		settings:     settings,
		clock:        game.NewSimulationClock(nil, gameplay.Clock.MaxDeltaTime),
		width:        gameplay.Window.Width,
		height:       gameplay.Window.Height,
		title:        gameplay.Window.Title,
		verbose:      cfg.Verbose,
	}, nil
}

// openStorage 打开 gdata 存储；失败时返回 nil，设置降级为仅内存
func openStorage() *gdata.Manager {
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[App] Warning: storage dir unavailable: %v", err)
	}
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[App] Warning: gdata unavailable, settings will not persist: %v", err)
		return nil
	}
	if p := utils.GetStoragePath(); p != "" {
		log.Printf("[App] Settings storage: %s", p)
	}
	return manager
}

// ApplyWindowSettings 按用户设置配置窗口
// 应在 ebiten.RunGame 之前调用
func (a *App) ApplyWindowSettings() {
	s := a.settings.GetSettings()
	w, h := a.WindowSize()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(a.title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if s.Fullscreen && !utils.IsMobile() {
		ebiten.SetFullscreen(true)
	}
}

// WindowSize 返回按缩放设置计算的窗口尺寸
func (a *App) WindowSize() (int, int) {
	zoom := a.settings.GetSettings().WindowZoom
	return int(float64(a.width) * zoom), int(float64(a.height) * zoom)
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			w, h := a.WindowSize()
			ebiten.SetWindowSize(w, h)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", w, h)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) && !utils.IsMobile() {
		a.toggleFullscreen()
	}

	// H 切换 HUD 面板
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		s := a.settings.GetSettings()
		a.settings.SetShowHUD(!s.ShowHUD)
		a.saveSettings()
	}

	// +/- 调整窗口缩放
	if !utils.IsMobile() && !ebiten.IsFullscreen() {
		switch {
		case utils.IsAnyKeyJustPressed(ebiten.KeyEqual, ebiten.KeyNumpadAdd):
			a.stepZoom(zoomStep)
		case utils.IsAnyKeyJustPressed(ebiten.KeyMinus, ebiten.KeyNumpadSubtract):
			a.stepZoom(-zoomStep)
		}
	}

	a.sceneManager.Update(a.clock.Next())
	return nil
}

func (a *App) toggleFullscreen() {
	if ebiten.IsFullscreen() {
		// 退出全屏
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		a.settings.SetFullscreen(false)
	} else {
		ebiten.SetFullscreen(true)
		a.settings.SetFullscreen(true)
	}
	a.saveSettings()
}

// stepZoom 调整窗口缩放并立即应用到窗口尺寸
func (a *App) stepZoom(delta float64) {
	zoom := a.settings.GetSettings().WindowZoom
	a.settings.SetWindowZoom(zoom + delta)
	w, h := a.WindowSize()
	ebiten.SetWindowSize(w, h)
	log.Printf("[App] Window zoom %.2f -> %.2f (%dx%d)", zoom, a.settings.GetSettings().WindowZoom, w, h)
	a.saveSettings()
}

func (a *App) saveSettings() {
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: failed to save settings: %v", err)
	}
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	// 先填充黑色背景（全屏时左右两边为黑色）
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.width, a.height
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// Simulation 返回当前局的模拟核心
func (a *App) Simulation() *simulation.Simulation {
	return a.scene.Simulation()
}

// Settings 返回用户设置管理器
func (a *App) Settings() *game.SettingsManager {
	return a.settings
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
