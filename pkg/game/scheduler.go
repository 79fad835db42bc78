package game

// TimerID 定时器句柄，0 表示无效
type TimerID uint64

// FrameID 帧回调句柄，0 表示无效
type FrameID uint64

type timer struct {
	id       TimerID
	due      float64
	interval float64 // 0 表示一次性
	fn       func()
}

type frameRequest struct {
	id FrameID
	fn func(dt float64)
}

// Scheduler 由游戏循环驱动的单线程调度器
//
// 所有回调都在 Tick 中同步执行，不存在并发；
// 时间单位为秒，来自 Update 的 deltaTime 累加。
//
// 帧回调是一次性的：回调内需要再次调用 RequestFrame 才能在下一帧继续执行。
type Scheduler struct {
	now    float64
	nextID uint64

	timers  []*timer
	frames  []frameRequest
	running []frameRequest // 本次 Tick 正在执行的帧回调
}

// NewScheduler 创建调度器
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now 返回调度器累计时间（秒）
func (s *Scheduler) Now() float64 {
	return s.now
}

func (s *Scheduler) allocID() uint64 {
	s.nextID++
	return s.nextID
}

// After 在 delay 秒后执行一次 fn
func (s *Scheduler) After(delay float64, fn func()) TimerID {
	if delay < 0 {
		delay = 0
	}
	t := &timer{id: TimerID(s.allocID()), due: s.now + delay, fn: fn}
	s.timers = append(s.timers, t)
	return t.id
}

// Every 每隔 interval 秒执行一次 fn，直到被 Cancel
func (s *Scheduler) Every(interval float64, fn func()) TimerID {
	if interval <= 0 {
		// 非正间隔会导致 Tick 死循环
		interval = 1.0 / 60
	}
	t := &timer{id: TimerID(s.allocID()), due: s.now + interval, interval: interval, fn: fn}
	s.timers = append(s.timers, t)
	return t.id
}

// Cancel 取消定时器，返回是否找到
func (s *Scheduler) Cancel(id TimerID) bool {
	for i, t := range s.timers {
		if t.id == id {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return true
		}
	}
	return false
}

// RequestFrame 注册下一次 Tick 要执行的帧回调
func (s *Scheduler) RequestFrame(fn func(dt float64)) FrameID {
	id := FrameID(s.allocID())
	s.frames = append(s.frames, frameRequest{id: id, fn: fn})
	return id
}

// CancelFrame 取消尚未执行的帧回调
//
// 在 Tick 的帧回调阶段内取消同一批次中尚未执行的回调同样有效。
func (s *Scheduler) CancelFrame(id FrameID) bool {
	for i, f := range s.frames {
		if f.id == id {
			s.frames = append(s.frames[:i], s.frames[i+1:]...)
			return true
		}
	}
	for i := range s.running {
		if s.running[i].id == id && s.running[i].fn != nil {
			s.running[i].fn = nil
			return true
		}
	}
	return false
}

// Pending 返回待执行的定时器数量
func (s *Scheduler) Pending() int {
	return len(s.timers)
}

// ActiveFrames 返回已注册、尚未执行的帧回调数量
func (s *Scheduler) ActiveFrames() int {
	return len(s.frames)
}

// Tick 推进时间并执行到期的定时器，然后执行本帧的帧回调
//
// 到期定时器按 (到期时间, 注册顺序) 依次执行；
// 回调中新注册的帧回调会在下一次 Tick 执行。
func (s *Scheduler) Tick(dt float64) {
	if dt > 0 {
		s.now += dt
	}

	for {
		next := s.nextDue()
		if next < 0 {
			break
		}
		t := s.timers[next]
		if t.interval > 0 {
			t.due += t.interval
		} else {
			s.timers = append(s.timers[:next], s.timers[next+1:]...)
		}
		t.fn()
	}

	s.running = s.frames
	s.frames = nil
	for i := range s.running {
		if fn := s.running[i].fn; fn != nil {
			s.running[i].fn = nil
			fn(dt)
		}
	}
	s.running = nil
}

// nextDue 返回最早到期的定时器下标，没有到期的返回 -1
func (s *Scheduler) nextDue() int {
	best := -1
	for i, t := range s.timers {
		if t.due > s.now {
			continue
		}
		if best < 0 || t.due < s.timers[best].due || (t.due == s.timers[best].due && t.id < s.timers[best].id) {
			best = i
		}
	}
	return best
}
