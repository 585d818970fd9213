package simulation

import (
	"errors"
	"math"
	"testing"

	"github.com/gonewx/sleighdash/pkg/components"
	"github.com/gonewx/sleighdash/pkg/config"
	"github.com/gonewx/sleighdash/pkg/systems"
	"github.com/gonewx/sleighdash/pkg/utils"
)

// quietConfig 返回生成间隔极长的配置，首帧之后不会再自然生成实体
func quietConfig() *config.GameplayConfig {
	cfg := config.DefaultGameplayConfig()
	for _, f := range []*config.FamilyConfig{&cfg.Hazards, &cfg.Collectibles.FamilyConfig, &cfg.PowerUps.FamilyConfig} {
		f.IntervalMin = 1000
		f.IntervalMax = 1000
	}
	return cfg
}

// newQuietSimulation 创建模拟并清空首帧生成的实体
func newQuietSimulation(t *testing.T) *Simulation {
	t.Helper()
	s, err := New(quietConfig(), utils.NewSeededRandom(42))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	s.Tick(0, components.MovementInput{})
	clearPools(s)
	s.DrainEffects()
	return s
}

func clearPools(s *Simulation) {
	s.hazards.RemoveWhere(func(*components.Hazard) bool { return true })
	s.collectibles.RemoveWhere(func(*components.Collectible) bool { return true })
	s.powerUps.RemoveWhere(func(*components.PowerUp) bool { return true })
}

// atPlayer 返回与玩家碰撞盒左上角重合的刚体
func atPlayer(s *Simulation, w, h float64) components.BodyComponent {
	p := s.Player()
	return components.BodyComponent{X: p.X, Y: p.Y, W: w, H: h}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultGameplayConfig()
	cfg.Gun.FireInterval = -1
	if _, err := New(cfg, utils.NewSeededRandom(1)); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("New() error = %v, want ErrInvalidConfig", err)
	}
	if _, err := New(nil, utils.NewSeededRandom(1)); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("New(nil) error = %v, want ErrInvalidConfig", err)
	}
	if _, err := New(config.DefaultGameplayConfig(), nil); err == nil {
		t.Error("New() without random source should fail")
	}
}

func TestInitialState(t *testing.T) {
	s, err := New(config.DefaultGameplayConfig(), utils.NewSeededRandom(1))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if s.ScoreDisplay() != 0 || s.TimeDisplay() != 60 {
		t.Errorf("initial display = %d / %d, want 0 / 60", s.ScoreDisplay(), s.TimeDisplay())
	}
	p := s.Player()
	if p.W != 24 || p.H != 70 {
		t.Errorf("player size = %vx%v, want 24x70", p.W, p.H)
	}
	if p.X != 258 || p.Y != 806 {
		t.Errorf("player position = (%v, %v), want (258, 806)", p.X, p.Y)
	}
	if s.Phase() != PhaseRunning {
		t.Errorf("Phase() = %v, want running", s.Phase())
	}
}

// 运动性质：position_after = position_before + v·dt/(1+0.5·n)
func TestMovementFollowsEffectiveDt(t *testing.T) {
	tests := []struct {
		name  string
		dt    float64
		slows int
	}{
		{"零步长", 0, 0},
		{"一帧无减速", 0.016, 0},
		{"最大步长无减速", 0.05, 0},
		{"一层减速", 0.016, 1},
		{"三层减速", 0.05, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newQuietSimulation(t)
			for i := 0; i < tt.slows; i++ {
				if err := s.modifiers.PushSlow(10); err != nil {
					t.Fatalf("PushSlow() error: %v", err)
				}
			}
			h := &components.Hazard{BodyComponent: components.BodyComponent{
				X: 100, Y: 100, W: 20, H: 20, VX: 10, VY: 50,
			}}
			s.hazards.Inject(h)

			s.Tick(tt.dt, components.MovementInput{})

			edt := tt.dt / (1 + 0.5*float64(tt.slows))
			wantX := 100 + 10*edt
			wantY := 100 + 50*edt
			if math.Abs(h.X-wantX) > 1e-9 || math.Abs(h.Y-wantY) > 1e-9 {
				t.Errorf("position = (%v, %v), want (%v, %v)", h.X, h.Y, wantX, wantY)
			}
		})
	}
}

func TestTickClampsDeltaTime(t *testing.T) {
	s := newQuietSimulation(t)
	h := &components.Hazard{BodyComponent: components.BodyComponent{X: 100, Y: 100, W: 20, H: 20, VY: 100}}
	s.hazards.Inject(h)

	s.Tick(2.0, components.MovementInput{})

	if math.Abs(h.Y-105) > 1e-9 {
		t.Errorf("Y after stalled frame = %v, want 105", h.Y)
	}
	if math.Abs(s.Ledger().Elapsed()-0.05) > 1e-9 {
		t.Errorf("Elapsed() = %v, want 0.05", s.Ledger().Elapsed())
	}
}

func TestGoodCollectiblePickup(t *testing.T) {
	s := newQuietSimulation(t)
	s.collectibles.Inject(&components.Collectible{
		BodyComponent: atPlayer(s, 10, 10),
		Polarity:      components.PolarityGood,
	})

	s.Tick(0, components.MovementInput{})

	if s.Ledger().Score() != 10 {
		t.Errorf("Score() = %v, want 10", s.Ledger().Score())
	}
	if s.Ledger().TimeBank() != 65 {
		t.Errorf("TimeBank() = %v, want 65", s.Ledger().TimeBank())
	}
	if s.Modifiers().SpeedStacks() != 1 {
		t.Errorf("SpeedStacks() = %d, want 1", s.Modifiers().SpeedStacks())
	}
	if s.collectibles.Len() != 0 {
		t.Errorf("collectible should be consumed, %d left", s.collectibles.Len())
	}
}

func TestMimicPickupPenalty(t *testing.T) {
	s := newQuietSimulation(t)
	s.Ledger().AddScore(200)
	s.collectibles.Inject(&components.Collectible{
		BodyComponent: atPlayer(s, 10, 10),
		Polarity:      components.PolarityBad,
		Health:        components.NewHealth(3),
	})

	s.Tick(0, components.MovementInput{})

	// 开局：加速进度与时间进度均为 0，惩罚为下限 20
	if s.Ledger().Score() != 180 {
		t.Errorf("Score() = %v, want 180", s.Ledger().Score())
	}
	if s.Ledger().TimeBank() != 40 {
		t.Errorf("TimeBank() = %v, want 40", s.Ledger().TimeBank())
	}
	if s.Modifiers().SpeedStacks() != 0 {
		t.Errorf("mimic must not add speed stacks, got %d", s.Modifiers().SpeedStacks())
	}
}

func TestMimicPenaltyUsesFrameStartSpeed(t *testing.T) {
	s := newQuietSimulation(t)
	for i := 0; i < 5; i++ {
		s.modifiers.IncrementSpeed()
	}
	s.Ledger().AddScore(200)
	want := MimicPenalty(s.cfg.Economy, s.modifiers.SpeedProgress(), 0)

	// 三个好礼物排在伪装礼物之前，同一帧内被拾取
	for i := 0; i < 3; i++ {
		s.collectibles.Inject(&components.Collectible{
			BodyComponent: atPlayer(s, 10, 10),
			Polarity:      components.PolarityGood,
		})
	}
	s.collectibles.Inject(&components.Collectible{
		BodyComponent: atPlayer(s, 10, 10),
		Polarity:      components.PolarityBad,
		Health:        components.NewHealth(3),
	})

	s.Tick(0, components.MovementInput{})

	if want != 36 {
		t.Fatalf("frame-start penalty = %v, want 36", want)
	}
	if got := s.Ledger().Score(); got != 200+30-want {
		t.Errorf("Score() = %v, want %v", got, 200+30-want)
	}
	if got := s.Ledger().TimeBank(); got != 60+15-want {
		t.Errorf("TimeBank() = %v, want %v", got, 60+15-want)
	}
	if s.Modifiers().SpeedStacks() != 8 {
		t.Errorf("SpeedStacks() = %d, want 8", s.Modifiers().SpeedStacks())
	}
}

func TestMimicPenaltyMonotonicAndBounded(t *testing.T) {
	eco := config.DefaultGameplayConfig().Economy

	prev := -1.0
	for _, elapsed := range []float64{0, 10, 30, 60, 119, 120, 500} {
		p := MimicPenalty(eco, 0, elapsed)
		if p < prev {
			t.Errorf("penalty decreased with elapsed=%v: %v < %v", elapsed, p, prev)
		}
		if p < 20 || p > 100 {
			t.Errorf("penalty(elapsed=%v) = %v, out of [20,100]", elapsed, p)
		}
		prev = p
	}

	mods := systems.NewModifierStack(config.DefaultGameplayConfig().Modifiers)
	prev = -1.0
	for i := 0; i < 40; i++ {
		p := MimicPenalty(eco, mods.SpeedProgress(), 5)
		if p < prev {
			t.Errorf("penalty decreased at %d speed stacks: %v < %v", i, p, prev)
		}
		if p < 20 || p > 100 {
			t.Errorf("penalty(stacks=%d) = %v, out of [20,100]", i, p)
		}
		prev = p
		mods.IncrementSpeed()
	}

	if got := MimicPenalty(eco, 0, 0); got != 20 {
		t.Errorf("MimicPenalty(0,0) = %v, want 20", got)
	}
	if got := MimicPenalty(eco, 1, 0); got != 100 {
		t.Errorf("MimicPenalty(1,0) = %v, want 100", got)
	}
	if got := MimicPenalty(eco, 0, 60); got != 60 {
		t.Errorf("MimicPenalty(0,60) = %v, want 60", got)
	}
}

func TestHazardCollisionWithInvulnerability(t *testing.T) {
	s := newQuietSimulation(t)
	s.Ledger().AddScore(100)
	s.hazards.Inject(&components.Hazard{BodyComponent: atPlayer(s, 40, 40)})

	s.Tick(0, components.MovementInput{})

	if s.Ledger().Score() != 80 {
		t.Errorf("Score() = %v, want 80", s.Ledger().Score())
	}
	if s.Ledger().TimeBank() != 58 {
		t.Errorf("TimeBank() = %v, want 58", s.Ledger().TimeBank())
	}
	if s.hazards.Len() != 0 {
		t.Errorf("hazard should be destroyed, %d left", s.hazards.Len())
	}
	if s.Invulnerable() != 0.6 {
		t.Errorf("Invulnerable() = %v, want 0.6", s.Invulnerable())
	}

	// 无敌时间内第二个障碍不再扣分
	second := &components.Hazard{BodyComponent: atPlayer(s, 40, 40)}
	s.hazards.Inject(second)
	s.Tick(0.016, components.MovementInput{})

	if s.Ledger().Score() < 80 {
		t.Errorf("Score() = %v, second hazard should not penalize", s.Ledger().Score())
	}
	if s.hazards.Len() != 1 {
		t.Errorf("second hazard should remain, got %d hazards", s.hazards.Len())
	}
}

func TestHazardPenaltiesAccumulate(t *testing.T) {
	s := newQuietSimulation(t)
	s.Ledger().AddScore(100)
	s.hazards.Inject(&components.Hazard{BodyComponent: atPlayer(s, 40, 40)})
	s.hazards.Inject(&components.Hazard{BodyComponent: atPlayer(s, 4, 4)})

	s.Tick(0, components.MovementInput{})

	// 40 → 20 分 2 秒；4 → 下限 3 分 1 秒
	if s.Ledger().Score() != 77 {
		t.Errorf("Score() = %v, want 77", s.Ledger().Score())
	}
	if s.Ledger().TimeBank() != 57 {
		t.Errorf("TimeBank() = %v, want 57", s.Ledger().TimeBank())
	}
}

func TestSnowmanCancelsGun(t *testing.T) {
	s := newQuietSimulation(t)
	s.gun.ActivateTree()
	s.powerUps.Inject(&components.PowerUp{
		BodyComponent: atPlayer(s, 22, 22),
		Kind:          components.PowerUpSnowman,
	})

	s.Tick(0, components.MovementInput{})

	if s.Gun().State() != systems.GunInactive {
		t.Errorf("gun state = %v, want inactive", s.Gun().State())
	}
	if s.Gun().Remaining() != 0 {
		t.Errorf("gun remaining = %v, want 0", s.Gun().Remaining())
	}
	if s.Modifiers().SlowCount() != 1 {
		t.Fatalf("SlowCount() = %d, want 1", s.Modifiers().SlowCount())
	}
	if got := s.Modifiers().SlowRemaining()[0]; got != 4 {
		t.Errorf("slow remaining = %v, want 4", got)
	}
	if s.Ledger().TimeBank() != 68 {
		t.Errorf("TimeBank() = %v, want 68", s.Ledger().TimeBank())
	}
	if s.Player().Speed != 280 {
		t.Errorf("player speed = %v, want 280", s.Player().Speed)
	}
}

func TestTreeStacksGunAndClearsSlow(t *testing.T) {
	s := newQuietSimulation(t)
	if err := s.modifiers.PushSlow(4); err != nil {
		t.Fatalf("PushSlow() error: %v", err)
	}

	wantDurations := []float64{3, 6, 8, 9}
	for i, want := range wantDurations {
		s.powerUps.Inject(&components.PowerUp{
			BodyComponent: atPlayer(s, 22, 22),
			Kind:          components.PowerUpTree,
		})
		s.Tick(0, components.MovementInput{})

		if s.Gun().Stacks() != i+1 {
			t.Errorf("pickup %d: Stacks() = %d, want %d", i+1, s.Gun().Stacks(), i+1)
		}
		if s.Gun().Duration() != want {
			t.Errorf("pickup %d: Duration() = %v, want %v", i+1, s.Gun().Duration(), want)
		}
	}
	if s.Modifiers().SlowCount() != 0 {
		t.Errorf("tree should clear slow stacks, got %d", s.Modifiers().SlowCount())
	}
	if s.Player().Speed != 340 {
		t.Errorf("player speed = %v, want capped 340", s.Player().Speed)
	}
}

func TestMimicDiesAfterThreeHitsWithOneDrop(t *testing.T) {
	s := newQuietSimulation(t)
	mimic := &components.Collectible{
		BodyComponent: components.BodyComponent{X: 270, Y: 300, W: 20, H: 20},
		Polarity:      components.PolarityBad,
		Health:        components.NewHealth(3),
	}
	s.collectibles.Inject(mimic)
	s.gun.ActivateTree()

	hits := 0
	alive := true
	for i := 0; i < 60 && alive; i++ {
		s.Tick(0.05, components.MovementInput{})
		for _, e := range s.DrainEffects() {
			if e.Kind == components.EffectFloatText && e.Text == "-1" {
				hits++
			}
		}
		alive = false
		for _, c := range s.Collectibles() {
			if c == mimic {
				alive = true
			}
		}
		if alive && mimic.Health.CurrentHealth != 3-hits {
			t.Fatalf("health = %d after %d hits", mimic.Health.CurrentHealth, hits)
		}
	}

	if alive {
		t.Fatal("mimic survived the gun")
	}
	if hits != 3 {
		t.Errorf("mimic died after %d hits, want 3", hits)
	}
	drops := s.collectibles.Len() + s.powerUps.Len()
	if drops != 1 {
		t.Fatalf("got %d drops, want exactly 1", drops)
	}
	if s.Ledger().Score() > 10 {
		t.Errorf("bullet kill must not change score beyond passive, got %v", s.Ledger().Score())
	}

	var x, y float64
	if s.collectibles.Len() == 1 {
		d := s.Collectibles()[0]
		if d.IsMimic() {
			t.Error("dropped gift must be good")
		}
		x, y = d.X, d.Y
	} else {
		d := s.PowerUps()[0]
		x, y = d.X, d.Y
	}
	if x != 270 || y != 300 {
		t.Errorf("drop at (%v, %v), want (270, 300)", x, y)
	}
}

func TestBossRewardGrantedOnce(t *testing.T) {
	s := newQuietSimulation(t)
	s.boss.Spawn(s.view.W)

	box := s.boss.Bounds()
	bullet := func() *components.Bullet {
		return &components.Bullet{BodyComponent: components.BodyComponent{X: box.X + 1, Y: box.Y + 1, W: 6, H: 12}}
	}

	for i := 0; i < 199; i++ {
		s.applyBossHit(s.boss.DamageByBullets([]*components.Bullet{bullet()}))
	}
	if s.boss.State() != systems.BossActive {
		t.Fatalf("boss state after 199 hits = %v, want active", s.boss.State())
	}
	if s.Ledger().Score() != 0 {
		t.Fatalf("no reward before defeat, score = %v", s.Ledger().Score())
	}

	s.applyBossHit(s.boss.DamageByBullets([]*components.Bullet{bullet()}))
	if s.boss.State() != systems.BossDefeated {
		t.Fatalf("boss state after 200 hits = %v, want defeated", s.boss.State())
	}
	if s.Ledger().Score() != 500 {
		t.Errorf("Score() = %v, want 500", s.Ledger().Score())
	}

	for i := 0; i < 3; i++ {
		s.applyBossHit(s.boss.DamageByBullets([]*components.Bullet{bullet()}))
	}
	if s.Ledger().Score() != 500 {
		t.Errorf("reward granted again, Score() = %v", s.Ledger().Score())
	}
}

func TestBossHitEffects(t *testing.T) {
	s := newQuietSimulation(t)
	s.boss.Spawn(s.view.W)

	box := s.boss.Bounds()
	bullet := func() *components.Bullet {
		return &components.Bullet{BodyComponent: components.BodyComponent{X: box.X + 1, Y: box.Y + 1, W: 6, H: 12}}
	}
	count := func(effects []components.EffectRequest, kind components.EffectKind) int {
		n := 0
		for _, e := range effects {
			if e.Kind == kind {
				n++
			}
		}
		return n
	}

	s.applyBossHit(s.boss.DamageByBullets([]*components.Bullet{bullet()}))
	effects := s.DrainEffects()
	if len(effects) != 1 || effects[0].Kind != components.EffectScreenFlash ||
		effects[0].Flash != components.FlashVignetteRed || effects[0].Duration != 0.25 {
		t.Fatalf("non-lethal hit effects = %+v, want one 0.25s red vignette", effects)
	}

	for i := 0; i < 198; i++ {
		s.applyBossHit(s.boss.DamageByBullets([]*components.Bullet{bullet()}))
	}
	s.DrainEffects()

	s.applyBossHit(s.boss.DamageByBullets([]*components.Bullet{bullet()}))
	effects = s.DrainEffects()
	if count(effects, components.EffectBurstGood) != 1 {
		t.Errorf("lethal hit should burst once, got %+v", effects)
	}
	if count(effects, components.EffectBurstBad) != 0 {
		t.Errorf("boss hits should not request bad bursts, got %+v", effects)
	}
	body := s.boss.Body()
	cx, cy := body.Center()
	for _, e := range effects {
		if e.Kind == components.EffectBurstGood && (e.X != cx || e.Y != cy) {
			t.Errorf("burst at (%v, %v), want boss center (%v, %v)", e.X, e.Y, cx, cy)
		}
	}
}

func TestBossSpawnsWhenTimeBankIsHigh(t *testing.T) {
	s := newQuietSimulation(t)
	s.Ledger().AddTime(500)

	s.Tick(0.01, components.MovementInput{})

	if s.Boss().State() != systems.BossActive {
		t.Fatalf("boss state = %v, want active", s.Boss().State())
	}
	found := false
	for _, e := range s.DrainEffects() {
		if e.Kind == components.EffectScreenFlash && e.Flash == components.FlashVignetteBlack && e.Duration == 6 {
			found = true
		}
	}
	if !found {
		t.Error("boss spawn should request a black vignette")
	}
	// 出场首帧立即投掷一个伪装礼物
	if s.collectibles.Len() != 1 || !s.Collectibles()[0].IsMimic() {
		t.Errorf("boss should throw a mimic immediately, pool has %d", s.collectibles.Len())
	}
}

func TestGameOverStopsTicking(t *testing.T) {
	s := newQuietSimulation(t)
	s.Ledger().Penalize(0, 59.99)

	s.Tick(0.05, components.MovementInput{})
	if !s.GameOver() {
		t.Fatal("expected game over")
	}
	elapsed := s.Ledger().Elapsed()

	s.Tick(0.05, components.MovementInput{})
	if s.Ledger().Elapsed() != elapsed {
		t.Error("game over must skip ticks")
	}
	if s.TimeDisplay() != 0 {
		t.Errorf("TimeDisplay() = %d, want 0", s.TimeDisplay())
	}

	s.TogglePause()
	if s.Phase() != PhaseGameOver {
		t.Errorf("TogglePause must not leave game over, got %v", s.Phase())
	}
}

func TestPauseSkipsTicks(t *testing.T) {
	s := newQuietSimulation(t)
	s.Pause()
	s.Tick(0.05, components.MovementInput{MoveX: 1})
	if s.Ledger().Elapsed() != 0 {
		t.Errorf("paused tick advanced time: %v", s.Ledger().Elapsed())
	}
	s.Resume()
	s.Tick(0.05, components.MovementInput{})
	if s.Ledger().Elapsed() == 0 {
		t.Error("resumed tick should advance time")
	}
}

func TestPlayerMovementClampedToViewport(t *testing.T) {
	s := newQuietSimulation(t)
	s.Tick(0.05, components.MovementInput{MoveX: 1})
	if got := s.Player().X; math.Abs(got-(258+220*0.05)) > 1e-9 {
		t.Errorf("player X = %v, want %v", got, 258+220*0.05)
	}

	s.Tick(0.05, components.MovementInput{PointerDX: 10000, PointerDY: 10000})
	p := s.Player()
	if p.X != 540-p.W || p.Y != 900-p.H {
		t.Errorf("player not clamped: (%v, %v)", p.X, p.Y)
	}
}

func TestSetScaleOnlyOnce(t *testing.T) {
	s, err := New(config.DefaultGameplayConfig(), utils.NewSeededRandom(1))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if err := s.SetScale(0); err == nil {
		t.Error("SetScale(0) should fail")
	}
	if err := s.SetScale(1.6); err != nil {
		t.Fatalf("SetScale(1.6) error: %v", err)
	}
	if err := s.SetScale(2); !errors.Is(err, ErrScaleAlreadySet) {
		t.Errorf("second SetScale() error = %v, want ErrScaleAlreadySet", err)
	}

	p := s.Player()
	if p.W != 38 || p.H != 110 {
		t.Errorf("scaled player = %vx%v, want 38x110", p.W, p.H)
	}
	if s.Boss().Bounds().W != 102 {
		t.Errorf("scaled boss width = %v, want 102", s.Boss().Bounds().W)
	}
}

func TestSetScaleBelowFloor(t *testing.T) {
	tests := []struct {
		name   string
		factor float64
	}{
		{"极小缩放", 0.01},
		{"略低于下限", 0.49},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(config.DefaultGameplayConfig(), utils.NewSeededRandom(3))
			if err != nil {
				t.Fatalf("New() error: %v", err)
			}
			if err := s.SetScale(tt.factor); err != nil {
				t.Fatalf("SetScale(%v) error: %v", tt.factor, err)
			}
			if s.Scale() != 0.5 {
				t.Errorf("Scale() = %v, want floor 0.5", s.Scale())
			}

			if p := s.Player(); p.W <= 0 || p.H <= 0 {
				t.Errorf("player size %vx%v", p.W, p.H)
			}
			if b := s.Boss().Bounds(); b.W <= 0 || b.H <= 0 {
				t.Errorf("boss size %vx%v", b.W, b.H)
			}

			// 首帧三类实体各生成一个
			s.Tick(0, components.MovementInput{})
			for _, h := range s.Hazards() {
				if h.W <= 0 || h.H <= 0 {
					t.Errorf("hazard size %vx%v", h.W, h.H)
				}
			}

			mimic := &components.Collectible{BodyComponent: components.BodyComponent{X: 100, Y: 100, W: 10, H: 10}}
			for i := 0; i < 12; i++ {
				s.dropFrom(mimic)
			}
			for _, c := range s.Collectibles() {
				if c.W <= 0 || c.H <= 0 {
					t.Errorf("collectible size %vx%v", c.W, c.H)
				}
			}
			for _, p := range s.PowerUps() {
				if p.W <= 0 || p.H <= 0 {
					t.Errorf("power-up size %vx%v", p.W, p.H)
				}
			}
		})
	}
}

func TestResetIsIdempotent(t *testing.T) {
	s, err := New(config.DefaultGameplayConfig(), utils.NewSeededRandom(7))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	// 制造一个复杂的中局状态
	s.Ledger().AddTime(500)
	s.gun.ActivateTree()
	_ = s.modifiers.PushSlow(3)
	s.modifiers.IncrementSpeed()
	for i := 0; i < 40; i++ {
		s.Tick(0.05, components.MovementInput{MoveX: 1, MoveY: -1})
	}
	s.hazards.Inject(&components.Hazard{BodyComponent: atPlayer(s, 40, 40)})
	s.Tick(0.01, components.MovementInput{})
	s.Pause()

	for round := 0; round < 2; round++ {
		s.Reset()
		assertInitialState(t, s)
	}
}

func assertInitialState(t *testing.T, s *Simulation) {
	t.Helper()
	l := s.Ledger()
	if l.Score() != 0 || l.TimeBank() != 60 || l.Elapsed() != 0 {
		t.Errorf("ledger = %v/%v/%v, want 0/60/0", l.Score(), l.TimeBank(), l.Elapsed())
	}
	if s.hazards.Len()+s.collectibles.Len()+s.powerUps.Len() != 0 {
		t.Errorf("pools not empty: %d/%d/%d", s.hazards.Len(), s.collectibles.Len(), s.powerUps.Len())
	}
	if s.hazards.SpawnTimer() != 0 || s.collectibles.SpawnTimer() != 0 || s.powerUps.SpawnTimer() != 0 {
		t.Error("spawn timers not reset")
	}
	if s.Gun().State() != systems.GunInactive || s.Gun().Stacks() != 0 || len(s.Bullets()) != 0 {
		t.Error("gun not reset")
	}
	if s.Boss().State() != systems.BossInactive || s.Boss().RespawnCooldown() != 0 || s.Boss().Rewarded() {
		t.Error("boss not reset")
	}
	if s.Modifiers().SlowCount() != 0 || s.Modifiers().SpeedStacks() != 0 {
		t.Error("modifiers not reset")
	}
	if s.Invulnerable() != 0 {
		t.Errorf("Invulnerable() = %v, want 0", s.Invulnerable())
	}
	if s.Phase() != PhaseRunning {
		t.Errorf("Phase() = %v, want running", s.Phase())
	}
	if len(s.DrainEffects()) != 0 {
		t.Error("effects not cleared")
	}
	p := s.Player()
	if p.X != 258 || p.Y != 806 || p.Speed != 220 {
		t.Errorf("player = (%v, %v) speed %v, want (258, 806) speed 220", p.X, p.Y, p.Speed)
	}
}

func TestSameSeedSameRun(t *testing.T) {
	run := func() (int, int, int) {
		s, err := New(config.DefaultGameplayConfig(), utils.NewSeededRandom(99))
		if err != nil {
			t.Fatalf("New() error: %v", err)
		}
		for i := 0; i < 400; i++ {
			s.Tick(0.016, components.MovementInput{MoveX: (i / 50 % 3) - 1})
		}
		return s.ScoreDisplay(), s.TimeDisplay(), s.hazards.Len()
	}

	s1, t1, h1 := run()
	s2, t2, h2 := run()
	if s1 != s2 || t1 != t2 || h1 != h2 {
		t.Errorf("runs diverged: (%d,%d,%d) vs (%d,%d,%d)", s1, t1, h1, s2, t2, h2)
	}
}

func TestDrainEffectsEmptiesQueue(t *testing.T) {
	s := newQuietSimulation(t)
	s.collectibles.Inject(&components.Collectible{
		BodyComponent: atPlayer(s, 10, 10),
		Polarity:      components.PolarityGood,
	})
	s.Tick(0, components.MovementInput{})

	effects := s.DrainEffects()
	if len(effects) != 2 {
		t.Fatalf("got %d effects, want pulse + float text", len(effects))
	}
	if effects[0].Kind != components.EffectPulseGood || effects[1].Text != "+10 +5s" {
		t.Errorf("unexpected effects: %+v", effects)
	}
	if s.DrainEffects() != nil {
		t.Error("second drain should be empty")
	}
}
