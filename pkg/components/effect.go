package components

// EffectKind 表现层效果请求类型
type EffectKind int

const (
	// EffectBurstGood 绿色粒子爆发
	EffectBurstGood EffectKind = iota
	// EffectBurstBad 红色粒子爆发
	EffectBurstBad
	// EffectPulseGood 扩散光环
	EffectPulseGood
	// EffectFloatText 上浮文字
	EffectFloatText
	// EffectScreenFlash 全屏闪烁/暗角
	EffectScreenFlash
	// EffectPopupImage 弹出图片（如 Boss 奖励 "500"）
	EffectPopupImage
	// EffectHUDHit HUD 受击描边
	EffectHUDHit
)

// FlashType 全屏闪烁类型
type FlashType int

const (
	FlashBlue FlashType = iota
	FlashRainbow
	FlashVignetteRed
	FlashVignetteBlack
)

// TextTone 上浮文字色调
type TextTone int

const (
	ToneGood TextTone = iota
	ToneBad
)

// EffectRequest 模拟核心发给表现层的效果请求
// 模拟核心从不直接绘制像素
type EffectRequest struct {
	Kind EffectKind
	X, Y float64

	// EffectFloatText
	Text string
	Tone TextTone

	// EffectScreenFlash
	Flash FlashType

	// EffectPopupImage
	Image string

	// Duration 持续时间（秒），0 表示使用表现层默认值
	Duration float64
}
