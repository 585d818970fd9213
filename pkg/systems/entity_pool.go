package systems

import (
	"github.com/gonewx/sleighdash/pkg/components"
	"github.com/gonewx/sleighdash/pkg/ecs"
	"github.com/gonewx/sleighdash/pkg/utils"
)

// SpawnFunc 在可见区域上方创建一个新的族成员
type SpawnFunc[T any] func(bounds utils.Rect, speedMul float64) *T

// EntityPool 单个下落实体族的通用池
//
// 负责生成节奏、运动、越界剔除与拾取检测。池只修改自身成员，
// 奖励或惩罚由调用方根据返回的成员决定。
type EntityPool[T any] struct {
	entities    *ecs.Pool[T]
	clock       *SpawnClock
	body        func(*T) *components.BodyComponent
	spawn       SpawnFunc[T]
	onStep      func(item *T, dt float64)
	cullMargin  float64
	minSpeedMul float64
	rng         utils.RandomSource
}

// NewEntityPool 创建实体池
//
// 参数:
//   - clock: 生成节奏计时器
//   - body: 从成员取出刚体的访问函数
//   - spawn: 生成函数
//   - cullMargin: 可见区域外的保留边距
//   - minSpeedMul: 速度倍率下限
//   - rng: 随机数源
func NewEntityPool[T any](
	clock *SpawnClock,
	body func(*T) *components.BodyComponent,
	spawn SpawnFunc[T],
	cullMargin, minSpeedMul float64,
	rng utils.RandomSource,
) *EntityPool[T] {
	return &EntityPool[T]{
		entities:    ecs.NewPool[T](),
		clock:       clock,
		body:        body,
		spawn:       spawn,
		cullMargin:  cullMargin,
		minSpeedMul: minSpeedMul,
		rng:         rng,
	}
}

// Update 生成、移动并剔除成员
//
// 参数:
//   - dt: 已经过减速修正的时间步长（秒）
//   - bounds: 可见区域
//   - speedMul: 加速层倍率
func (p *EntityPool[T]) Update(dt float64, bounds utils.Rect, speedMul float64) {
	if speedMul < p.minSpeedMul {
		speedMul = p.minSpeedMul
	}

	if p.clock.Tick(dt, speedMul, p.rng) {
		p.entities.CreateEntity(p.spawn(bounds, speedMul))
	}

	p.entities.Each(func(_ ecs.EntityID, item *T) {
		p.body(item).Step(dt)
		if p.onStep != nil {
			p.onStep(item, dt)
		}
	})

	// 成员与扩展后的可见区域不再相交（闭区间）即剔除
	keep := bounds.Expand(p.cullMargin)
	p.entities.RemoveWhere(func(item *T) bool {
		return !p.body(item).Bounds().Intersects(keep)
	})
}

// Collect 删除并返回所有与 player 相交的成员
func (p *EntityPool[T]) Collect(player utils.Rect) []*T {
	return p.entities.RemoveWhere(func(item *T) bool {
		return p.body(item).Bounds().Intersects(player)
	})
}

// Overlapping 返回所有与 player 相交的成员（不删除）
func (p *EntityPool[T]) Overlapping(player utils.Rect) []*T {
	result := make([]*T, 0)
	p.entities.Each(func(_ ecs.EntityID, item *T) {
		if p.body(item).Bounds().Intersects(player) {
			result = append(result, item)
		}
	})
	return result
}

// Destroy 删除指定成员
func (p *EntityPool[T]) Destroy(items []*T) {
	if len(items) == 0 {
		return
	}
	set := make(map[*T]struct{}, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}
	p.entities.RemoveWhere(func(item *T) bool {
		_, ok := set[item]
		return ok
	})
}

// RemoveWhere 删除满足条件的成员并返回
func (p *EntityPool[T]) RemoveWhere(pred func(item *T) bool) []*T {
	return p.entities.RemoveWhere(pred)
}

// Inject 直接加入成员（掉落物、Boss 投掷物）
func (p *EntityPool[T]) Inject(item *T) {
	p.entities.CreateEntity(item)
}

// Items 返回当前成员快照（按加入顺序）
func (p *EntityPool[T]) Items() []*T {
	return p.entities.Items()
}

// Len 返回成员数量
func (p *EntityPool[T]) Len() int {
	return p.entities.Len()
}

// Reset 清空成员并重置生成节奏
func (p *EntityPool[T]) Reset() {
	p.entities.Clear()
	p.clock.Reset()
}

// SpawnTimer 返回距离下一次生成的剩余时间
func (p *EntityPool[T]) SpawnTimer() float64 {
	return p.clock.Remaining()
}

// spawnSize 计算缩放后的整数尺寸 floor((base + rand[0,jitter)) · scale)
func spawnSize(rng utils.RandomSource, base, jitter int, scale float64) float64 {
	return float64(int(float64(base+utils.IntN(rng, jitter)) * scale))
}

// spawnBody 在可见区域顶边上方创建下落刚体
func spawnBody(rng utils.RandomSource, bounds utils.Rect, size, drift, vyMin, vyMax, speedMul float64) components.BodyComponent {
	x := bounds.X + rng.Float64()*(bounds.W-size)
	vx := utils.Jitter(rng, drift)
	vy := utils.Uniform(rng, vyMin, vyMax) * speedMul
	return components.BodyComponent{
		X: x, Y: bounds.Y - size,
		W: size, H: size,
		VX: vx, VY: vy,
	}
}

// ClampScale 统一的缩放下限，所有实体尺寸都以此保证为正
func ClampScale(s float64) float64 {
	if s < 0.5 {
		return 0.5
	}
	return s
}
