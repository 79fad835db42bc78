package game

// Disposer 释放一项资源（取消订阅、取消定时器、取消帧回调）
type Disposer func()

// Scope 按注册的逆序统一释放资源
//
// Dispose 只执行一次；已释放的 Scope 再 Add 会立即执行传入的 Disposer，
// 因此在释放之后才创建的定时器也不会泄漏。
type Scope struct {
	disposers []Disposer
	disposed  bool
}

// NewScope 创建空的 Scope
func NewScope() *Scope {
	return &Scope{}
}

// Add 登记一个 Disposer
func (s *Scope) Add(d Disposer) {
	if d == nil {
		return
	}
	if s.disposed {
		d()
		return
	}
	s.disposers = append(s.disposers, d)
}

// After 在调度器上注册一次性定时器，并随 Scope 释放
func (s *Scope) After(sched *Scheduler, delay float64, fn func()) TimerID {
	id := sched.After(delay, fn)
	s.Add(func() { sched.Cancel(id) })
	return id
}

// Every 在调度器上注册周期定时器，并随 Scope 释放
func (s *Scope) Every(sched *Scheduler, interval float64, fn func()) TimerID {
	id := sched.Every(interval, fn)
	s.Add(func() { sched.Cancel(id) })
	return id
}

// Dispose 逆序执行所有 Disposer
func (s *Scope) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	for i := len(s.disposers) - 1; i >= 0; i-- {
		s.disposers[i]()
	}
	s.disposers = nil
}

// Disposed 是否已释放
func (s *Scope) Disposed() bool {
	return s.disposed
}

// Len 尚未释放的 Disposer 数量
func (s *Scope) Len() int {
	return len(s.disposers)
}
