package components

// Polarity 礼物极性
type Polarity int

const (
	// PolarityGood 普通礼物：拾取奖励
	PolarityGood Polarity = iota
	// PolarityBad 伪装礼物（mimic）：拾取惩罚，或被子弹击杀后掉落奖励
	PolarityBad
)

// String 返回极性名称
func (p Polarity) String() string {
	if p == PolarityBad {
		return "mimic"
	}
	return "good"
}

// SpriteSlot 精灵变体索引
// SpriteMissing 表示没有可用精灵，渲染层绘制占位图形
type SpriteSlot int

// SpriteMissing 缺失精灵哨兵值
const SpriteMissing SpriteSlot = -1

// Collectible 下落礼物
type Collectible struct {
	BodyComponent
	Polarity Polarity
	// Sprite 所属极性精灵池中的变体索引（纯外观）
	Sprite SpriteSlot
	// Health 仅伪装礼物使用
	Health HealthComponent
	// AnimPhase 伪装礼物缩放动画已经过的时间（秒）
	AnimPhase float64
}

// IsMimic 是否为伪装礼物
func (c *Collectible) IsMimic() bool {
	return c.Polarity == PolarityBad
}
