// Package ecs 提供按实体族分组的实体存储
package ecs

// EntityID 是实体的唯一标识符
type EntityID uint64

type entry[T any] struct {
	id   EntityID
	item *T
}

// Pool 管理同一类型实体的集合
//
// 与按组件查询的实体管理器不同，Pool 使用切片保存实体，
// 遍历顺序恒为创建顺序，因此在固定随机种子下结果可复现。
// 删除分两步：DestroyEntity 标记，RemoveMarkedEntities 统一清理。
type Pool[T any] struct {
	nextID uint64
	// 按创建顺序排列的实体
	entries []entry[T]
	// 待删除的实体ID集合
	entitiesToDestroy map[EntityID]struct{}
}

// NewPool 创建一个新的空 Pool
func NewPool[T any]() *Pool[T] {
	return &Pool[T]{
		nextID:            1, // ID从1开始,0保留为无效ID
		entries:           make([]entry[T], 0),
		entitiesToDestroy: make(map[EntityID]struct{}),
	}
}

// CreateEntity 加入新实体并返回唯一ID
func (p *Pool[T]) CreateEntity(item *T) EntityID {
	id := EntityID(p.nextID)
	p.nextID++
	p.entries = append(p.entries, entry[T]{id: id, item: item})
	return id
}

// DestroyEntity 标记实体待删除(不立即删除)
func (p *Pool[T]) DestroyEntity(id EntityID) {
	p.entitiesToDestroy[id] = struct{}{}
}

// IsMarked 检查实体是否已被标记删除
func (p *Pool[T]) IsMarked(id EntityID) bool {
	_, marked := p.entitiesToDestroy[id]
	return marked
}

// RemoveMarkedEntities 清理所有标记删除的实体
func (p *Pool[T]) RemoveMarkedEntities() {
	if len(p.entitiesToDestroy) == 0 {
		return
	}
	kept := p.entries[:0]
	for _, e := range p.entries {
		if _, marked := p.entitiesToDestroy[e.id]; !marked {
			kept = append(kept, e)
		}
	}
	// 清除尾部引用，避免已删除实体无法回收
	for i := len(kept); i < len(p.entries); i++ {
		p.entries[i] = entry[T]{}
	}
	p.entries = kept
	clear(p.entitiesToDestroy)
}

// Get 按ID获取实体
func (p *Pool[T]) Get(id EntityID) (*T, bool) {
	for _, e := range p.entries {
		if e.id == id {
			return e.item, true
		}
	}
	return nil, false
}

// Each 按创建顺序遍历所有实体（包括已标记但尚未清理的实体）
func (p *Pool[T]) Each(fn func(id EntityID, item *T)) {
	for _, e := range p.entries {
		fn(e.id, e.item)
	}
}

// RemoveWhere 立即删除所有满足条件的实体，并按创建顺序返回被删除的实体
func (p *Pool[T]) RemoveWhere(pred func(item *T) bool) []*T {
	removed := make([]*T, 0)
	p.Each(func(id EntityID, item *T) {
		if pred(item) {
			p.DestroyEntity(id)
			removed = append(removed, item)
		}
	})
	p.RemoveMarkedEntities()
	return removed
}

// Items 返回当前所有实体的快照
func (p *Pool[T]) Items() []*T {
	items := make([]*T, 0, len(p.entries))
	for _, e := range p.entries {
		items = append(items, e.item)
	}
	return items
}

// Len 返回实体数量
func (p *Pool[T]) Len() int {
	return len(p.entries)
}

// Clear 删除全部实体并重置ID计数
func (p *Pool[T]) Clear() {
	p.nextID = 1
	p.entries = p.entries[:0]
	clear(p.entitiesToDestroy)
}
