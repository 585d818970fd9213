package scenes

import (
	"math"

	"github.com/gonewx/sleighdash/pkg/components"
	"github.com/gonewx/sleighdash/pkg/game"
	"github.com/gonewx/sleighdash/pkg/simulation"
	"github.com/gonewx/sleighdash/pkg/systems"
	"github.com/gonewx/sleighdash/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	// mimicPulseSpeed 伪装礼物缩放动画角速度
	mimicPulseSpeed = 4.0
	mimicPulseMin   = 1.0
	mimicPulseMax   = 2.0
	// treeGunPulse 枪身呼吸幅度
	treeGunPulse = 0.08
)

// EntityRenderer 按精灵槽位绘制模拟实体
// 槽位缺失时绘制占位方块，所有实体族都可见
type EntityRenderer struct {
	images ImageSource
	pools  game.SpritePools
	time   float64
}

// NewEntityRenderer 创建实体渲染器
//
// 参数:
//   - images: 精灵来源
//   - pools: 已加载的礼物变体，索引与模拟层的 SpriteSlot 对应
func NewEntityRenderer(images ImageSource, pools game.SpritePools) *EntityRenderer {
	return &EntityRenderer{images: images, pools: pools}
}

// Update 推进纯外观动画（枪身呼吸）
func (r *EntityRenderer) Update(dt float64) {
	r.time += dt
}

// mimicPulseScale 伪装礼物在动画相位处的绘制倍率 [1, 2]
func mimicPulseScale(phase float64) float64 {
	k := math.Sin(phase*mimicPulseSpeed)*0.5 + 0.5
	return mimicPulseMin + k*(mimicPulseMax-mimicPulseMin)
}

// scaleAroundCenter 以中心为锚点缩放矩形
func scaleAroundCenter(r utils.Rect, k float64) utils.Rect {
	cx, cy := r.Center()
	w, h := r.W*k, r.H*k
	return utils.Rect{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}

// spriteFor 按极性与变体索引查找礼物图片
func (r *EntityRenderer) spriteFor(c *components.Collectible) *ebiten.Image {
	pool := r.pools.Good
	if c.IsMimic() {
		pool = r.pools.Bad
	}
	i := int(c.Sprite)
	if i < 0 || i >= len(pool) {
		return nil
	}
	return r.images.GetImage(pool[i])
}

// Draw 按层次绘制全部实体：玩家 → 障碍 → 礼物 → 道具 → Boss → 树枪
func (r *EntityRenderer) Draw(screen *ebiten.Image, sim *simulation.Simulation) {
	scale := sim.Scale()
	player := sim.Player()

	r.drawPlayer(screen, player, scale, sim.Invulnerable() > 0)

	obstacle := r.images.GetImage(game.SlotObstacle)
	for _, h := range sim.Hazards() {
		box := h.Bounds()
		if obstacle != nil {
			drawImageRect(screen, obstacle, box, 1)
			continue
		}
		drawPlaceholder(screen, box, inkColor, withAlpha(inkColor, 0.5))
	}

	for _, c := range sim.Collectibles() {
		r.drawCollectible(screen, c)
	}

	for _, p := range sim.PowerUps() {
		id := game.SlotTree
		if p.Kind == components.PowerUpSnowman {
			id = game.SlotSnowman
		}
		box := p.Bounds()
		if img := r.images.GetImage(id); img != nil {
			drawImageRect(screen, img, box, 1)
			continue
		}
		inner := inkColor
		if p.Kind == components.PowerUpSnowman {
			inner = flashBlue
		}
		drawPlaceholder(screen, box, backgroundColor, inner)
	}

	r.drawBoss(screen, sim.Boss())
	r.drawGun(screen, sim.Gun(), player.Bounds())
}

// drawPlayer 雪橇；无敌时间内半透明
func (r *EntityRenderer) drawPlayer(screen *ebiten.Image, p components.PlayerComponent, s float64, blink bool) {
	alpha := 1.0
	if blink {
		alpha = 0.6
	}
	if img := r.images.GetImage(game.SlotSanta); img != nil {
		// 精灵比碰撞盒略大
		box := utils.Rect{X: p.X - 4*s, Y: p.Y - 6*s, W: p.W + 8*s, H: p.H + 12*s}
		drawImageRect(screen, img, box, alpha)
		return
	}

	// 像素雪橇 + 圣诞老人
	ink := withAlpha(inkColor, alpha)
	red := withAlpha(accentRed, alpha)
	body := p.H - 6*s
	vector.DrawFilledRect(screen, float32(p.X), float32(p.Y+6*s), float32(p.W), float32(body), ink, false)
	vector.DrawFilledRect(screen, float32(p.X+3*s), float32(p.Y+2*s), float32(p.W-6*s), float32(body*0.8), ink, false)
	vector.DrawFilledRect(screen, float32(p.X+6*s), float32(p.Y), float32(6*s), float32(p.H*0.4), red, false)
}

func (r *EntityRenderer) drawCollectible(screen *ebiten.Image, c *components.Collectible) {
	box := c.Bounds()
	img := r.spriteFor(c)
	if img == nil {
		drawPlaceholder(screen, box, accentRed, inkColor)
		return
	}
	if c.IsMimic() {
		box = scaleAroundCenter(box, mimicPulseScale(c.AnimPhase))
	}
	drawImageRect(screen, img, box, 1)
}

// drawBoss Krampus 及受击闪红
func (r *EntityRenderer) drawBoss(screen *ebiten.Image, boss *systems.BossSystem) {
	if boss.State() != systems.BossActive {
		return
	}
	box := boss.Bounds()
	img := r.images.GetImage(game.SlotKrampus)
	if img == nil {
		vector.DrawFilledRect(screen, float32(box.X), float32(box.Y), float32(box.W), float32(box.H), bossBody, false)
		return
	}
	drawImageRect(screen, img, box, 1)
	if f := boss.HitFlash(); f > 0 {
		vector.DrawFilledRect(screen, float32(box.X), float32(box.Y), float32(box.W), float32(box.H),
			withAlpha(accentRed, 0.35*f), false)
	}
}

// drawGun 枪身（每行一个）与子弹
func (r *EntityRenderer) drawGun(screen *ebiten.Image, gun *systems.GunSystem, player utils.Rect) {
	if gun.Active() {
		pulse := 1 + math.Sin(r.time*12)*treeGunPulse
		emitter := gun.EmitterRect(player)
		gw, gh := emitter.W*pulse, emitter.H*pulse
		baseX := player.Right() - gw + 2
		gy := player.Bottom() - gh + 2
		img := r.images.GetImage(game.SlotTreeGun)
		for _, ox := range gun.MuzzleOffsets(player.W) {
			box := utils.Rect{X: baseX + ox, Y: gy, W: gw, H: gh}
			if img != nil {
				drawImageRect(screen, img, box, 1)
				continue
			}
			drawPlaceholder(screen, box, inkColor, accentRed)
		}
	}

	bullet := r.images.GetImage(game.SlotBullet)
	for _, b := range gun.Bullets() {
		box := b.Bounds()
		if bullet != nil {
			drawImageRect(screen, bullet, box, 1)
			continue
		}
		vector.DrawFilledRect(screen, float32(box.X), float32(box.Y), float32(box.W), float32(box.H), inkColor, false)
	}
}
