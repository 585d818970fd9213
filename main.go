package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/gonewx/sleighdash/pkg/app"
	"github.com/gonewx/sleighdash/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verbose    = flag.Bool("verbose", false, "Enable verbose logging (default off)")
	seed       = flag.Uint64("seed", 0, "Simulation seed (0 = derive from clock)")
	assetsRoot = flag.String("assets", ".", "Directory containing assets/png")
	fullscreen = flag.Bool("fullscreen", false, "Start in fullscreen mode")
)

func main() {
	flag.Parse()

	// 配置嵌入在二进制中，精灵从磁盘读取
	embedded.Init(os.DirFS(*assetsRoot), dataFS)

	runSeed := *seed
	if runSeed == 0 {
		runSeed = uint64(time.Now().UnixNano())
	}

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		Seed:       runSeed,
		Fullscreen: *fullscreen,
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}
	log.Printf("[Main] Seed %d", runSeed)

	gameApp.ApplyWindowSettings()

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
