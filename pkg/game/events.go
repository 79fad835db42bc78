package game

// PointerKind 指针事件类型
type PointerKind int

const (
	PointerMove PointerKind = iota
	PointerDown
	PointerUp
	// PointerLeave 指针离开窗口
	PointerLeave
)

// PointerEvent 指针事件，坐标为逻辑像素
type PointerEvent struct {
	Kind PointerKind
	X, Y float64
}

// ResizeEvent 视口尺寸变化
type ResizeEvent struct {
	Width, Height float64
	// DeviceScale 设备像素比
	DeviceScale float64
}

// EventBus 同步事件总线
//
// 订阅返回 Disposer，调用后取消订阅。发布按订阅顺序同步调用处理函数；
// 处理函数中取消订阅是安全的，本次发布仍使用发布开始时的订阅快照。
type EventBus struct {
	nextID  int
	pointer []pointerSub
	resize  []resizeSub
}

type pointerSub struct {
	id int
	fn func(PointerEvent)
}

type resizeSub struct {
	id int
	fn func(ResizeEvent)
}

// NewEventBus 创建事件总线
func NewEventBus() *EventBus {
	return &EventBus{}
}

// OnPointer 订阅指针事件
func (b *EventBus) OnPointer(fn func(PointerEvent)) Disposer {
	b.nextID++
	id := b.nextID
	b.pointer = append(b.pointer, pointerSub{id: id, fn: fn})
	return func() {
		for i, s := range b.pointer {
			if s.id == id {
				b.pointer = append(b.pointer[:i:i], b.pointer[i+1:]...)
				return
			}
		}
	}
}

// OnResize 订阅尺寸变化
func (b *EventBus) OnResize(fn func(ResizeEvent)) Disposer {
	b.nextID++
	id := b.nextID
	b.resize = append(b.resize, resizeSub{id: id, fn: fn})
	return func() {
		for i, s := range b.resize {
			if s.id == id {
				b.resize = append(b.resize[:i:i], b.resize[i+1:]...)
				return
			}
		}
	}
}

// PublishPointer 发布指针事件
func (b *EventBus) PublishPointer(e PointerEvent) {
	for _, s := range b.pointer {
		s.fn(e)
	}
}

// PublishResize 发布尺寸变化
func (b *EventBus) PublishResize(e ResizeEvent) {
	for _, s := range b.resize {
		s.fn(e)
	}
}

// SubscriberCount 当前订阅总数
func (b *EventBus) SubscriberCount() int {
	return len(b.pointer) + len(b.resize)
}
