package components

// HealthComponent 存储可被子弹击中的实体的生命值
// 用于伪装礼物和 Boss
type HealthComponent struct {
	CurrentHealth int // 当前生命值，永不为负
	MaxHealth     int // 最大生命值
}

// NewHealth 创建满血的生命值组件
func NewHealth(max int) HealthComponent {
	if max < 0 {
		max = 0
	}
	return HealthComponent{CurrentHealth: max, MaxHealth: max}
}

// Damage 扣减生命值（下限为 0），返回扣减后是否死亡
func (h *HealthComponent) Damage(amount int) bool {
	h.CurrentHealth -= amount
	if h.CurrentHealth < 0 {
		h.CurrentHealth = 0
	}
	return h.CurrentHealth == 0
}

// IsDead 生命值是否已归零
func (h *HealthComponent) IsDead() bool {
	return h.CurrentHealth <= 0
}

// Fraction 返回剩余生命比例 [0, 1]
func (h *HealthComponent) Fraction() float64 {
	if h.MaxHealth <= 0 {
		return 0
	}
	f := float64(h.CurrentHealth) / float64(h.MaxHealth)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
