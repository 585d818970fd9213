package systems

import (
	"testing"

	"github.com/gonewx/sleighdash/pkg/utils"
)

func TestNewSpawnClockRejectsInvalidRange(t *testing.T) {
	tests := []struct {
		name     string
		min, max float64
	}{
		{"下限为零", 0, 1},
		{"负数", -1, 1},
		{"上下限颠倒", 2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewSpawnClock(tt.min, tt.max); err == nil {
				t.Errorf("NewSpawnClock(%v, %v) should fail", tt.min, tt.max)
			}
		})
	}
}

func TestSpawnClockFirstTickSpawns(t *testing.T) {
	c, err := NewSpawnClock(1, 2)
	if err != nil {
		t.Fatalf("NewSpawnClock() error: %v", err)
	}
	rng := utils.NewSeededRandom(1)
	if !c.Tick(0, 1, rng) {
		t.Fatal("first Tick() should spawn")
	}
	if r := c.Remaining(); r < 1 || r > 2 {
		t.Errorf("Remaining() = %v, want within [1,2]", r)
	}
}

func TestSpawnClockCadenceScalesWithSpeed(t *testing.T) {
	rng := utils.NewSeededRandom(3)
	c, _ := NewSpawnClock(1, 1)
	c.Tick(0, 2, rng)

	// 间隔 1/2 秒，按 dt·2 消耗：0.25 秒后到期
	if c.Tick(0.2, 2, rng) {
		t.Error("should not spawn after 0.2s at speed 2")
	}
	if !c.Tick(0.05, 2, rng) {
		t.Error("should spawn after 0.25s at speed 2")
	}
}

func TestSpawnClockReset(t *testing.T) {
	rng := utils.NewSeededRandom(3)
	c, _ := NewSpawnClock(5, 5)
	c.Tick(0, 1, rng)
	c.Reset()
	if c.Remaining() != 0 {
		t.Errorf("Remaining() after Reset = %v, want 0", c.Remaining())
	}
}
