package utils

import "testing"

func TestRectIntersects(t *testing.T) {
	base := Rect{X: 10, Y: 10, W: 20, H: 20}

	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"部分重叠", Rect{X: 15, Y: 15, W: 5, H: 5}, true},
		{"完全包含", Rect{X: 0, Y: 0, W: 100, H: 100}, true},
		{"接触右边", Rect{X: 30, Y: 10, W: 5, H: 5}, true},
		{"接触下边", Rect{X: 10, Y: 30, W: 5, H: 5}, true},
		{"接触角点", Rect{X: 30, Y: 30, W: 5, H: 5}, true},
		{"X 方向分离", Rect{X: 30.01, Y: 10, W: 5, H: 5}, false},
		{"Y 方向分离", Rect{X: 10, Y: -5.5, W: 5, H: 5}, false},
		{"位于左侧", Rect{X: 0, Y: 10, W: 9.9, H: 5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Intersects(tt.other); got != tt.want {
				t.Errorf("Intersects() = %v, want %v", got, tt.want)
			}
			// 相交判定必须对称
			if got := tt.other.Intersects(base); got != tt.want {
				t.Errorf("symmetric Intersects() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectExpand(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 100, H: 50}.Expand(40)
	if r.X != -40 || r.Y != -40 || r.W != 180 || r.H != 130 {
		t.Errorf("Expand(40) = %+v", r)
	}
	cx, cy := r.Center()
	if cx != 50 || cy != 25 {
		t.Errorf("Center() = (%v, %v), want (50, 25)", cx, cy)
	}
}

func TestJitterRange(t *testing.T) {
	r := NewSeededRandom(7)
	for i := 0; i < 1000; i++ {
		v := Jitter(r, 60)
		if v < -30 || v >= 30 {
			t.Fatalf("Jitter(60) = %v out of [-30, 30)", v)
		}
		u := Uniform(r, 0.5, 1.1)
		if u < 0.5 || u >= 1.1 {
			t.Fatalf("Uniform(0.5, 1.1) = %v out of range", u)
		}
	}
	if IntN(r, 0) != 0 {
		t.Error("IntN(0) should return 0")
	}
}

func TestSeededRandomReproducible(t *testing.T) {
	a := NewSeededRandom(42)
	b := NewSeededRandom(42)
	for i := 0; i < 100; i++ {
		if a.Float64() != b.Float64() {
			t.Fatal("same seed produced different sequences")
		}
	}
}
