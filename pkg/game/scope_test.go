package game

import (
	"reflect"
	"testing"
)

func TestScopeDisposeReverseOnce(t *testing.T) {
	sc := NewScope()
	var order []int
	for i := 1; i <= 3; i++ {
		i := i
		sc.Add(func() { order = append(order, i) })
	}

	sc.Dispose()
	sc.Dispose()

	if !reflect.DeepEqual(order, []int{3, 2, 1}) {
		t.Errorf("dispose order = %v, want [3 2 1]", order)
	}
	if !sc.Disposed() || sc.Len() != 0 {
		t.Error("scope should be disposed and empty")
	}
}

func TestScopeAddAfterDispose(t *testing.T) {
	sc := NewScope()
	sc.Dispose()

	ran := false
	sc.Add(func() { ran = true })
	if !ran {
		t.Error("Add on a disposed scope should run the disposer immediately")
	}
}

func TestScopeCancelsTimers(t *testing.T) {
	sched := NewScheduler()
	sc := NewScope()
	fired := 0

	sc.After(sched, 0.1, func() { fired++ })
	sc.Every(sched, 0.05, func() { fired++ })
	if sched.Pending() != 2 {
		t.Fatalf("expected 2 pending timers, got %d", sched.Pending())
	}

	sc.Dispose()
	sched.Tick(1)
	if fired != 0 || sched.Pending() != 0 {
		t.Errorf("timers survived dispose: fired=%d pending=%d", fired, sched.Pending())
	}
}

func TestEventBusUnsubscribe(t *testing.T) {
	bus := NewEventBus()
	var a, b int
	offA := bus.OnPointer(func(PointerEvent) { a++ })
	bus.OnPointer(func(PointerEvent) { b++ })
	offR := bus.OnResize(func(ResizeEvent) {})

	bus.PublishPointer(PointerEvent{Kind: PointerMove})
	offA()
	offA() // 重复取消无副作用
	bus.PublishPointer(PointerEvent{Kind: PointerMove})

	if a != 1 || b != 2 {
		t.Errorf("a=%d b=%d, want 1 2", a, b)
	}
	offR()
	if bus.SubscriberCount() != 1 {
		t.Errorf("SubscriberCount() = %d, want 1", bus.SubscriberCount())
	}
}

func TestEventBusUnsubscribeDuringPublish(t *testing.T) {
	bus := NewEventBus()
	calls := 0
	var off Disposer
	off = bus.OnResize(func(ResizeEvent) {
		calls++
		off()
	})
	bus.OnResize(func(ResizeEvent) { calls++ })

	bus.PublishResize(ResizeEvent{Width: 10, Height: 10})
	bus.PublishResize(ResizeEvent{Width: 10, Height: 10})
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}
