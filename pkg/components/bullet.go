package components

// Bullet 树枪子弹
// 以固定速度向上飞行，第一次命中后标记 Dead
type Bullet struct {
	BodyComponent
	Dead bool
}
