package components

// PowerUpKind 道具类型
type PowerUpKind int

const (
	// PowerUpTree 圣诞树：激活/叠加树枪，并清除全部减速层
	PowerUpTree PowerUpKind = iota
	// PowerUpSnowman 雪人：取消树枪，并增加一层减速
	PowerUpSnowman
)

// String 返回道具名称
func (k PowerUpKind) String() string {
	switch k {
	case PowerUpTree:
		return "tree"
	case PowerUpSnowman:
		return "snowman"
	default:
		return "unknown"
	}
}

// PowerUp 下落道具
type PowerUp struct {
	BodyComponent
	Kind PowerUpKind
}
