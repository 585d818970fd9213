package scenes

import (
	"math"
	"testing"

	"github.com/gonewx/sleighdash/pkg/components"
	"github.com/gonewx/sleighdash/pkg/config"
	"github.com/gonewx/sleighdash/pkg/game"
	"github.com/gonewx/sleighdash/pkg/simulation"
	"github.com/gonewx/sleighdash/pkg/utils"
)

func newTestScene(t *testing.T) *GameScene {
	t.Helper()
	sim, err := simulation.New(config.DefaultGameplayConfig(), utils.NewSeededRandom(42))
	if err != nil {
		t.Fatalf("simulation.New() error = %v", err)
	}
	return NewGameScene(sim, game.NewResourceManager(), nil, 42)
}

// TestGameSceneImplementsSceneInterface verifies that GameScene satisfies game.Scene.
func TestGameSceneImplementsSceneInterface(t *testing.T) {
	var _ game.Scene = newTestScene(t)
}

func TestGameSceneStepAdvancesWorld(t *testing.T) {
	s := newTestScene(t)

	s.step(0.016, sceneCommands{}, components.MovementInput{})

	if got := s.sim.Ledger().TimeBank(); math.Abs(got-(60-0.016)) > 1e-9 {
		t.Errorf("TimeBank() = %v, want %v", got, 60-0.016)
	}
	if got := s.parallax.OffsetY(); math.Abs(got-(-90*0.016)) > 1e-9 {
		t.Errorf("parallax OffsetY() = %v, want %v", got, -90*0.016)
	}
}

func TestGameSceneTogglePause(t *testing.T) {
	s := newTestScene(t)

	s.step(0.016, sceneCommands{togglePause: true}, components.MovementInput{})
	if s.sim.Phase() != simulation.PhasePaused {
		t.Fatalf("Phase() = %v, want paused", s.sim.Phase())
	}

	bank := s.sim.Ledger().TimeBank()
	offset := s.parallax.OffsetY()
	s.step(0.05, sceneCommands{}, components.MovementInput{MoveX: 1})
	if s.sim.Ledger().TimeBank() != bank {
		t.Error("paused step should not advance the time bank")
	}
	if s.parallax.OffsetY() != offset {
		t.Error("paused step should not scroll the background")
	}

	s.step(0.016, sceneCommands{togglePause: true}, components.MovementInput{})
	if s.sim.Phase() != simulation.PhaseRunning {
		t.Errorf("Phase() = %v, want running", s.sim.Phase())
	}
}

func TestGameSceneRestart(t *testing.T) {
	s := newTestScene(t)
	for i := 0; i < 60; i++ {
		s.step(0.05, sceneCommands{}, components.MovementInput{MoveX: -1})
	}
	s.effects.Apply([]components.EffectRequest{{Kind: components.EffectHUDHit}})

	s.step(0.016, sceneCommands{restart: true, togglePause: true}, components.MovementInput{})

	// 重开后同一帧的暂停命令仍然生效
	if s.sim.Phase() != simulation.PhasePaused {
		t.Errorf("Phase() = %v, want paused", s.sim.Phase())
	}
	if got := s.sim.Ledger().TimeBank(); got != 60 {
		t.Errorf("TimeBank() after restart = %v, want 60", got)
	}
	if s.parallax.OffsetY() != 0 {
		t.Errorf("parallax OffsetY() after restart = %v, want 0", s.parallax.OffsetY())
	}
	if s.effects.HUDHitActive() {
		t.Error("restart should clear effects")
	}
}

func TestGameSceneShowHUD(t *testing.T) {
	s := newTestScene(t)
	if !s.showHUD() {
		t.Error("showHUD() without settings should default to true")
	}

	sm, err := game.NewSettingsManager(nil)
	if err != nil {
		t.Fatalf("NewSettingsManager(nil) error = %v", err)
	}
	sm.SetShowHUD(false)
	s.settings = sm
	if s.showHUD() {
		t.Error("showHUD() should follow settings")
	}
}
