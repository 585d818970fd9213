package utils

import (
	"math"
	"testing"
)

// TestEaseOutCubic 测试三次方缓出函数
func TestEaseOutCubic(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"起点", 0.0, 0.0},
		{"终点", 1.0, 1.0},
		{"中点", 0.5, 0.875}, // 1 - (1-0.5)^3
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EaseOutCubic(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("EaseOutCubic(%v) = %v, 期望 %v", tt.input, result, tt.expected)
			}
		})
	}

	t.Run("不落后于线性", func(t *testing.T) {
		for p := 0.0; p <= 1.0; p += 0.1 {
			if eased := EaseOutCubic(p); eased < p-0.001 {
				t.Errorf("EaseOutCubic(%v) = %v 不应该落后于线性值", p, eased)
			}
		}
	})
}

// TestLerp 测试线性插值
func TestLerp(t *testing.T) {
	tests := []struct {
		name     string
		a, b, t  float64
		expected float64
	}{
		{"起点", 0.6, 1.6, 0, 0.6},
		{"终点", 0.6, 1.6, 1, 1.6},
		{"中点", 0, 200, 0.5, 100},
		{"反向", 10, 0, 0.25, 7.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Lerp(tt.a, tt.b, tt.t); math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Lerp(%v, %v, %v) = %v, 期望 %v", tt.a, tt.b, tt.t, got, tt.expected)
			}
		})
	}
}
