package scenes

import (
	"math"
	"testing"

	"github.com/gonewx/sleighdash/pkg/utils"
)

func TestGunBarPercent(t *testing.T) {
	tests := []struct {
		progress float64
		want     int
	}{
		{0, 0},
		{-1, 0},
		{math.NaN(), 0},
		{0.5, 50},
		{0.999, 99},
		{1, 100},
		{1.5, 100},
	}

	for _, tt := range tests {
		if got := gunBarPercent(tt.progress); got != tt.want {
			t.Errorf("gunBarPercent(%v) = %d, want %d", tt.progress, got, tt.want)
		}
	}
}

func TestBossBarLayout(t *testing.T) {
	tests := []struct {
		name  string
		width float64
		scale float64
		want  utils.Rect
	}{
		{"默认缩放 1.6", 540, 1.6, utils.Rect{X: 12, Y: 64, W: 516, H: 16}},
		{"缩放 1", 540, 1, utils.Rect{X: 8, Y: 40, W: 524, H: 10}},
		{"最小高度 6", 540, 0.5, utils.Rect{X: 4, Y: 20, W: 532, H: 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bossBarLayout(tt.width, tt.scale); got != tt.want {
				t.Errorf("bossBarLayout() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
