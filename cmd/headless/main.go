// headless 在无窗口环境下按固定种子与脚本化输入运行一局模拟，并打印账本
//
// 用法:
//
//	go run ./cmd/headless -seed 42 -seconds 90 -script weave -record run.rec
//	go run ./cmd/headless -replay run.rec
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"time"

	"github.com/gonewx/sleighdash/pkg/components"
	"github.com/gonewx/sleighdash/pkg/config"
	"github.com/gonewx/sleighdash/pkg/game"
	"github.com/gonewx/sleighdash/pkg/replay"
	"github.com/gonewx/sleighdash/pkg/simulation"
	"github.com/gonewx/sleighdash/pkg/utils"
)

var (
	configPath = flag.String("config", "data/gameplay.yaml", "玩法参数文件")
	seed       = flag.Uint64("seed", 1, "随机数种子")
	seconds    = flag.Float64("seconds", 60, "最长模拟时长（秒）")
	fps        = flag.Int("fps", 60, "固定帧率")
	script     = flag.String("script", "weave", "输入脚本: idle | weave | left | right")
	recordPath = flag.String("record", "", "把本局输入写入录像文件")
	replayPath = flag.String("replay", "", "回放录像文件并校验结果")
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
)

// scriptedInput 根据脚本名和模拟时间给出当帧输入
//
// weave 每 1.5 秒换一次方向，左右来回穿梭。
func scriptedInput(name string, t float64) (components.MovementInput, error) {
	switch name {
	case "idle":
		return components.MovementInput{}, nil
	case "left":
		return components.MovementInput{MoveX: -1}, nil
	case "right":
		return components.MovementInput{MoveX: 1}, nil
	case "weave":
		if int(math.Floor(t/1.5))%2 == 0 {
			return components.MovementInput{MoveX: 1}, nil
		}
		return components.MovementInput{MoveX: -1}, nil
	default:
		return components.MovementInput{}, fmt.Errorf("unknown script %q", name)
	}
}

// steppedTime 每次读取前进固定间隔的假时钟
type steppedTime struct {
	now  time.Time
	step time.Duration
}

func (s *steppedTime) Now() time.Time {
	s.now = s.now.Add(s.step)
	return s.now
}

// run 以固定帧率推进模拟，直到时间用尽或到达时长上限
//
// 帧间隔经过 SimulationClock 夹紧，帧率过低时单帧步长不超过 maxDelta。
func run(sim *simulation.Simulation, rec *replay.Recorder, scriptName string, duration float64, frameRate int, maxDelta float64) (*replay.Recording, error) {
	if frameRate <= 0 {
		return nil, fmt.Errorf("invalid fps %d", frameRate)
	}
	frame := time.Second / time.Duration(frameRate)
	clock := game.NewSimulationClock(&steppedTime{step: frame}, maxDelta)

	for t := 0.0; t < duration && !sim.GameOver(); t += frame.Seconds() {
		in, err := scriptedInput(scriptName, t)
		if err != nil {
			return nil, err
		}
		rec.Step(sim, clock.Next(), in)
	}
	return rec.Finish(sim), nil
}

func newSimulation(cfg *config.GameplayConfig, runSeed uint64, scale float64) (*simulation.Simulation, error) {
	sim, err := simulation.New(cfg, utils.NewSeededRandom(runSeed))
	if err != nil {
		return nil, err
	}
	if err := sim.SetScale(scale); err != nil {
		return nil, err
	}
	return sim, nil
}

func printSummary(title string, id string, s replay.Summary) {
	fmt.Printf("=== %s ===\n", title)
	fmt.Printf("run:         %s\n", id)
	fmt.Printf("frames:      %d (%.2fs elapsed)\n", s.Frames, s.Elapsed)
	fmt.Printf("phase:       %s\n", s.Phase)
	fmt.Printf("score:       %d\n", s.Score)
	fmt.Printf("time left:   %d\n", s.TimeLeft)
	fmt.Printf("boss:        %s\n", s.Boss)
	fmt.Printf("gun stacks:  %d\n", s.GunStacks)
	fmt.Printf("speed:       %d stacks\n", s.SpeedStacks)
	fmt.Printf("on screen:   %d hazards, %d collectibles, %d power-ups\n", s.Hazards, s.Collectibles, s.PowerUps)
	fmt.Printf("effects:     %d requests\n", s.Effects)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "❌ %v\n", err)
	os.Exit(1)
}

func main() {
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.LoadGameplayConfig(*configPath)
	if err != nil {
		fail(err)
	}

	if *replayPath != "" {
		rec, err := replay.Load(*replayPath)
		if err != nil {
			fail(err)
		}
		sim, err := newSimulation(cfg, rec.Seed, rec.Scale)
		if err != nil {
			fail(err)
		}
		summary, err := replay.Play(sim, rec)
		if err != nil {
			fail(err)
		}
		printSummary("Replay verified", rec.RunID, summary)
		return
	}

	sim, err := newSimulation(cfg, *seed, cfg.Window.Scale)
	if err != nil {
		fail(err)
	}
	rec, err := run(sim, replay.NewRecorder(*seed, cfg.Window.Scale), *script, *seconds, *fps, cfg.Clock.MaxDeltaTime)
	if err != nil {
		fail(err)
	}

	fmt.Printf("seed:        %d\n", *seed)
	fmt.Printf("script:      %s\n", *script)
	printSummary("Headless run", rec.RunID, rec.Final)

	if *recordPath != "" {
		if err := replay.Save(*recordPath, rec); err != nil {
			fail(err)
		}
		fmt.Printf("✅ Recording saved to %s\n", *recordPath)
	}
}
