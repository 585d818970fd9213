package ecs

import "testing"

// 测试实体类型定义
type testBody struct {
	X, Y float64
}

func TestCreateEntity(t *testing.T) {
	p := NewPool[testBody]()
	id1 := p.CreateEntity(&testBody{})
	id2 := p.CreateEntity(&testBody{})

	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}
	if id2 != 2 {
		t.Errorf("Second entity ID should be 2, got %d", id2)
	}
	if p.Len() != 2 {
		t.Errorf("Len() = %d, want 2", p.Len())
	}
}

func TestDestroyEntityDeferred(t *testing.T) {
	p := NewPool[testBody]()
	id := p.CreateEntity(&testBody{X: 1})
	p.CreateEntity(&testBody{X: 2})

	p.DestroyEntity(id)

	// 标记后实体仍然存在，直到统一清理
	if p.Len() != 2 {
		t.Errorf("Entity should not be removed before RemoveMarkedEntities, Len() = %d", p.Len())
	}
	if !p.IsMarked(id) {
		t.Error("Entity should be marked")
	}

	p.RemoveMarkedEntities()

	if p.Len() != 1 {
		t.Errorf("Len() after cleanup = %d, want 1", p.Len())
	}
	if _, ok := p.Get(id); ok {
		t.Error("Destroyed entity should not be found")
	}
	if p.IsMarked(id) {
		t.Error("Mark set should be cleared after cleanup")
	}
}

func TestEachPreservesCreationOrder(t *testing.T) {
	p := NewPool[testBody]()
	for i := 0; i < 10; i++ {
		p.CreateEntity(&testBody{X: float64(i)})
	}
	p.RemoveWhere(func(b *testBody) bool { return int(b.X)%3 == 0 })

	prev := -1.0
	count := 0
	p.Each(func(id EntityID, b *testBody) {
		if b.X <= prev {
			t.Errorf("order broken: %v after %v", b.X, prev)
		}
		prev = b.X
		count++
	})
	if count != 6 {
		t.Errorf("expected 6 entities after RemoveWhere, got %d", count)
	}
}

func TestRemoveWhereReturnsRemoved(t *testing.T) {
	p := NewPool[testBody]()
	p.CreateEntity(&testBody{Y: 5})
	p.CreateEntity(&testBody{Y: 50})
	p.CreateEntity(&testBody{Y: 500})

	removed := p.RemoveWhere(func(b *testBody) bool { return b.Y > 10 })
	if len(removed) != 2 {
		t.Fatalf("expected 2 removed, got %d", len(removed))
	}
	if removed[0].Y != 50 || removed[1].Y != 500 {
		t.Errorf("removed in wrong order: %v, %v", removed[0].Y, removed[1].Y)
	}
	if p.Len() != 1 {
		t.Errorf("Len() = %d, want 1", p.Len())
	}
}

func TestClear(t *testing.T) {
	p := NewPool[testBody]()
	id := p.CreateEntity(&testBody{})
	p.DestroyEntity(id)
	p.CreateEntity(&testBody{})

	p.Clear()

	if p.Len() != 0 {
		t.Errorf("Len() after Clear = %d", p.Len())
	}
	if p.IsMarked(id) {
		t.Error("Clear should drop pending marks")
	}
	if next := p.CreateEntity(&testBody{}); next != 1 {
		t.Errorf("ID counter should restart at 1, got %d", next)
	}
}
