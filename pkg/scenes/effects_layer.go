package scenes

import (
	"image"
	"image/color"
	"math"

	"github.com/gonewx/sleighdash/pkg/components"
	"github.com/gonewx/sleighdash/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 表现层默认时长（秒），效果请求 Duration 为 0 时使用
const (
	burstBadLife        = 0.6
	burstGoodLife       = 0.7
	ringLife            = 0.5
	floatTextLife       = 0.8
	defaultFlashTime    = 2.0
	defaultVignetteTime = 0.6
	defaultPopupTime    = 1.6
	hudHitTime          = 0.12

	particleFade  = 1.6 // 粒子/光环每秒透明度衰减
	floatTextFade = 1.4

	popupScaleFrom = 0.6
	popupScaleTo   = 1.6
)

type particle struct {
	x, y, vx, vy float64
	size         float64
	alpha        float64
	life         float64
	clr          color.Color
}

type ring struct {
	x, y, r, dr float64
	alpha       float64
	life        float64
}

type floatingText struct {
	x, y, vy float64
	alpha    float64
	life     float64
	text     string
	tone     components.TextTone
}

type popup struct {
	image    string
	x, y     float64
	t, dur   float64
	from, to float64
}

// screenOverlay 全屏闪烁/暗角，同一时刻只保留最新的一个
type screenOverlay struct {
	flash  components.FlashType
	t, dur float64
}

// EffectsLayer 效果请求的消费者
//
// 模拟核心只产生 EffectRequest；这里把请求展开成粒子、光环、上浮文字、
// 弹出图片和全屏叠加，并按帧衰减。外观随机数与模拟随机数相互独立，
// 不影响同种子复现。
type EffectsLayer struct {
	rng   utils.RandomSource
	scale float64

	particles []particle
	rings     []ring
	texts     []floatingText
	popups    []popup
	overlay   *screenOverlay
	hudHit    float64

	vignettes map[components.FlashType]*ebiten.Image
}

// NewEffectsLayer 创建效果层
//
// 参数:
//   - rng: 外观随机数源（粒子方向、速度、颜色）
//   - scale: 尺寸缩放，下限 0.5
func NewEffectsLayer(rng utils.RandomSource, scale float64) *EffectsLayer {
	e := &EffectsLayer{rng: rng}
	e.SetScale(scale)
	return e
}

// SetScale 设置尺寸缩放
func (e *EffectsLayer) SetScale(scale float64) {
	if scale < 0.5 || math.IsNaN(scale) {
		scale = 0.5
	}
	e.scale = scale
}

// Apply 展开一批效果请求
func (e *EffectsLayer) Apply(reqs []components.EffectRequest) {
	for _, req := range reqs {
		e.apply(req)
	}
}

func (e *EffectsLayer) apply(req components.EffectRequest) {
	switch req.Kind {
	case components.EffectBurstBad:
		e.burst(req.X, req.Y, 18, 40, 120, burstBadLife, true)
	case components.EffectBurstGood:
		e.burst(req.X, req.Y, 24, 60, 140, burstGoodLife, false)
	case components.EffectPulseGood:
		e.rings = append(e.rings, ring{
			x: req.X, y: req.Y,
			r: 2 * e.scale, dr: 120 * e.scale,
			alpha: 0.8, life: ringLife,
		})
	case components.EffectFloatText:
		e.texts = append(e.texts, floatingText{
			x: req.X, y: req.Y,
			vy:    -30 * e.scale,
			alpha: 1, life: floatTextLife,
			text: req.Text, tone: req.Tone,
		})
	case components.EffectScreenFlash:
		dur := req.Duration
		if dur <= 0 {
			dur = defaultFlashTime
			if req.Flash == components.FlashVignetteRed {
				dur = defaultVignetteTime
			}
		}
		e.overlay = &screenOverlay{flash: req.Flash, dur: dur}
	case components.EffectPopupImage:
		dur := req.Duration
		if dur <= 0 {
			dur = defaultPopupTime
		}
		e.popups = append(e.popups, popup{
			image: req.Image, x: req.X, y: req.Y,
			dur: dur, from: popupScaleFrom, to: popupScaleTo,
		})
	case components.EffectHUDHit:
		e.hudHit = hudHitTime
	}
}

// burst 径向粒子爆发
// bad 为 true 时 60% 粒子为红色，其余为墨绿
func (e *EffectsLayer) burst(x, y float64, baseCount int, speedMin, speedRange, life float64, bad bool) {
	count := int(float64(baseCount) * e.scale)
	for i := 0; i < count; i++ {
		ang := e.rng.Float64() * 2 * math.Pi
		spd := (speedMin + e.rng.Float64()*speedRange) * e.scale
		size := 2 + e.rng.Float64()*3*e.scale
		clr := inkColor
		if bad && e.rng.Float64() < 0.6 {
			clr = accentRed
		}
		e.particles = append(e.particles, particle{
			x: x, y: y,
			vx: math.Cos(ang) * spd, vy: math.Sin(ang) * spd,
			size: size, alpha: 1, life: life, clr: clr,
		})
	}
}

// Update 推进所有效果并移除已过期的条目
func (e *EffectsLayer) Update(dt float64) {
	if dt <= 0 {
		return
	}

	particles := e.particles[:0]
	for _, p := range e.particles {
		p.x += p.vx * dt
		p.y += p.vy * dt
		p.alpha -= dt * particleFade
		p.life -= dt
		if p.life > 0 && p.alpha > 0 {
			particles = append(particles, p)
		}
	}
	e.particles = particles

	rings := e.rings[:0]
	for _, r := range e.rings {
		r.r += r.dr * dt
		r.alpha -= dt * particleFade
		r.life -= dt
		if r.life > 0 && r.alpha > 0 {
			rings = append(rings, r)
		}
	}
	e.rings = rings

	texts := e.texts[:0]
	for _, t := range e.texts {
		t.y += t.vy * dt
		t.alpha -= dt * floatTextFade
		t.life -= dt
		if t.life > 0 && t.alpha > 0 {
			texts = append(texts, t)
		}
	}
	e.texts = texts

	popups := e.popups[:0]
	for _, p := range e.popups {
		p.t += dt
		if p.t < p.dur {
			popups = append(popups, p)
		}
	}
	e.popups = popups

	if e.overlay != nil {
		e.overlay.t += dt
		if e.overlay.t >= e.overlay.dur {
			e.overlay = nil
		}
	}

	if e.hudHit > 0 {
		e.hudHit = math.Max(0, e.hudHit-dt)
	}
}

// Reset 清空所有效果
func (e *EffectsLayer) Reset() {
	e.particles = e.particles[:0]
	e.rings = e.rings[:0]
	e.texts = e.texts[:0]
	e.popups = e.popups[:0]
	e.overlay = nil
	e.hudHit = 0
}

// HUDHitActive HUD 受击描边是否可见
func (e *EffectsLayer) HUDHitActive() bool {
	return e.hudHit > 0
}

// Overlay 返回当前全屏叠加类型
func (e *EffectsLayer) Overlay() (components.FlashType, bool) {
	if e.overlay == nil {
		return 0, false
	}
	return e.overlay.flash, true
}

// flashAlpha 闪烁透明度 0.25 + 0.25·sin(20t)
func flashAlpha(t float64) float64 {
	return 0.25 + 0.25*math.Sin(t*20)
}

// blackVignetteStrength 黑色暗角边缘透明度，随 sin(2t) 缓慢闪烁
func blackVignetteStrength(t float64) float64 {
	flicker := 0.15 * (0.5 + 0.5*math.Sin(t*2))
	return math.Min(1, 0.2+flicker)
}

// popupFrame 弹出图片在进度 t/dur 处的缩放与透明度
func popupFrame(p popup) (scale, alpha float64) {
	prog := utils.ClampF(p.t/p.dur, 0, 1)
	scale = utils.Lerp(p.from, p.to, utils.EaseOutCubic(prog))
	alpha = math.Max(0, 1-prog)
	return scale, alpha
}

// Draw 绘制所有效果
//
// 参数:
//   - screen: 目标画布
//   - images: 弹出图片的来源（按槽位 ID 查找）
//   - face: 上浮文字字体
func (e *EffectsLayer) Draw(screen *ebiten.Image, images ImageSource, face text.Face) {
	for _, p := range e.particles {
		vector.DrawFilledRect(screen,
			float32(p.x-p.size/2), float32(p.y-p.size/2),
			float32(p.size), float32(p.size),
			withAlpha(p.clr, p.alpha), false)
	}

	stroke := float32(math.Max(1, 2*e.scale))
	for _, r := range e.rings {
		vector.StrokeCircle(screen, float32(r.x), float32(r.y), float32(r.r), stroke,
			withAlpha(inkColor, r.alpha), true)
	}

	for _, t := range e.texts {
		clr := inkColor
		if t.tone == components.ToneBad {
			clr = accentRed
		}
		drawCenteredText(screen, t.text, face, t.x, t.y, withAlpha(clr, t.alpha))
	}

	for _, p := range e.popups {
		e.drawPopup(screen, images, p)
	}

	e.drawOverlay(screen)
}

func (e *EffectsLayer) drawPopup(screen *ebiten.Image, images ImageSource, p popup) {
	scale, alpha := popupFrame(p)
	w, h := 64.0, 64.0
	img := images.GetImage(p.image)
	if img != nil {
		b := img.Bounds()
		w, h = float64(b.Dx()), float64(b.Dy())
	}
	dw, dh := w*scale, h*scale
	x, y := p.x-dw/2, p.y-dh/2

	if img != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(x, y)
		op.ColorScale.ScaleAlpha(float32(alpha))
		screen.DrawImage(img, op)
	}

	// 彩虹闪烁：竖条带近似线性渐变
	flick := 0.3 + 0.3*math.Sin(p.t*10)
	drawRainbowBands(screen, x, y, dw, dh, 0.6*flick)
}

func (e *EffectsLayer) drawOverlay(screen *ebiten.Image) {
	if e.overlay == nil {
		return
	}
	b := screen.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())

	switch e.overlay.flash {
	case components.FlashBlue:
		vector.DrawFilledRect(screen, 0, 0, float32(w), float32(h),
			withAlpha(flashBlue, flashAlpha(e.overlay.t)), false)
	case components.FlashRainbow:
		drawRainbowBands(screen, 0, 0, w, h, flashAlpha(e.overlay.t))
	case components.FlashVignetteRed:
		e.drawVignette(screen, components.FlashVignetteRed, 1)
	case components.FlashVignetteBlack:
		e.drawVignette(screen, components.FlashVignetteBlack, blackVignetteStrength(e.overlay.t))
	}
}

// drawVignette 拉伸预生成的径向暗角纹理铺满画布
func (e *EffectsLayer) drawVignette(screen *ebiten.Image, kind components.FlashType, alpha float64) {
	img := e.vignette(kind)
	b := screen.Bounds()
	vb := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(b.Dx())/float64(vb.Dx()), float64(b.Dy())/float64(vb.Dy()))
	op.ColorScale.ScaleAlpha(float32(alpha))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}

func (e *EffectsLayer) vignette(kind components.FlashType) *ebiten.Image {
	if img, ok := e.vignettes[kind]; ok {
		return img
	}
	if e.vignettes == nil {
		e.vignettes = make(map[components.FlashType]*ebiten.Image)
	}
	tint, mid, edge := vignetteRedTint, 0.35, 0.6
	if kind == components.FlashVignetteBlack {
		// 整体强度在绘制时按闪烁缩放
		tint, mid, edge = color.RGBA{}, 0.5, 1
	}
	img := ebiten.NewImageFromImage(buildVignette(vignetteTexW, vignetteTexH, tint, mid, edge))
	e.vignettes[kind] = img
	return img
}

// 暗角纹理分辨率，绘制时线性拉伸
const (
	vignetteTexW = 96
	vignetteTexH = 160
)

// vignetteAlpha 径向渐变透明度
//
// d 为到中心的归一化距离（0 中心，1 角落）。0.35 以内透明，
// 渐变区间 60% 处为 mid，角落为 edge。
func vignetteAlpha(d, mid, edge float64) float64 {
	const inner = 0.35
	if d <= inner {
		return 0
	}
	u := math.Min(1, (d-inner)/(1-inner))
	if u <= 0.6 {
		return mid * u / 0.6
	}
	return mid + (edge-mid)*(u-0.6)/0.4
}

func buildVignette(w, h int, tint color.RGBA, mid, edge float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	cx, cy := float64(w)/2, float64(h)/2
	maxR := math.Hypot(cx, cy)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy) / maxR
			a := vignetteAlpha(d, mid, edge)
			// 预乘 alpha
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(float64(tint.R) * a),
				G: uint8(float64(tint.G) * a),
				B: uint8(float64(tint.B) * a),
				A: uint8(255 * a),
			})
		}
	}
	return img
}
