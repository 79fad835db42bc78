package utils

// Tween 按缓动曲线在 From 与 To 之间插值
//
// Yoyo 为 true 时到达终点后反向播放，并无限往返（对应 repeat: -1）。
type Tween struct {
	From, To float64
	Duration float64
	Ease     func(float64) float64
	Yoyo     bool

	elapsed float64
	// repeats 往返补间的单程次数，0 表示无限
	repeats int
}

// NewTween 创建一次性补间
func NewTween(from, to, duration float64, ease func(float64) float64) *Tween {
	if ease == nil {
		ease = EaseLinear
	}
	return &Tween{From: from, To: to, Duration: duration, Ease: ease}
}

// NewYoyo 创建无限往返补间
func NewYoyo(from, to, halfPeriod float64, ease func(float64) float64) *Tween {
	t := NewTween(from, to, halfPeriod, ease)
	t.Yoyo = true
	return t
}

// Update 推进 dt 秒并返回当前值
func (t *Tween) Update(dt float64) float64 {
	t.elapsed += dt
	return t.Value()
}

// Value 当前值
func (t *Tween) Value() float64 {
	if t.Duration <= 0 {
		return t.To
	}
	p := t.elapsed / t.Duration
	if t.Yoyo && t.repeats > 0 && p >= float64(t.repeats) {
		if t.repeats%2 == 0 {
			return t.From
		}
		return t.To
	}
	if t.Yoyo {
		cycle := int(p)
		p -= float64(cycle)
		if cycle%2 == 1 {
			p = 1 - p
		}
	} else if p > 1 {
		p = 1
	}
	return Lerp(t.From, t.To, t.Ease(p))
}

// Done 补间是否已结束（无限往返的补间永不结束）
func (t *Tween) Done() bool {
	if t.Yoyo {
		return t.repeats > 0 && t.elapsed >= t.Duration*float64(t.repeats)
	}
	return t.elapsed >= t.Duration
}

// Animated 可以随时改变目标的动画值
//
// 没有进行中的补间时保持上一个值。
type Animated struct {
	value float64
	tween *Tween
	delay float64
}

// NewAnimated 以初始值 v 创建
func NewAnimated(v float64) *Animated {
	return &Animated{value: v}
}

// Set 立即设为 v，取消进行中的补间
func (a *Animated) Set(v float64) {
	a.value = v
	a.tween = nil
	a.delay = 0
}

// To 从当前值补间到 target
func (a *Animated) To(target, duration float64, ease func(float64) float64) {
	a.tween = NewTween(a.value, target, duration, ease)
	a.delay = 0
}

// FromTo 先跳到 from 再补间到 to
func (a *Animated) FromTo(from, to, duration float64, ease func(float64) float64) {
	a.value = from
	a.To(to, duration, ease)
}

// Yoyo 在当前值与 peak 之间往返 repeats 个单程后停在起点
func (a *Animated) Yoyo(peak, halfPeriod float64, repeats int, ease func(float64) float64) {
	a.tween = NewYoyo(a.value, peak, halfPeriod, ease)
	a.tween.repeats = repeats
	a.delay = 0
}

// After 延迟 delay 秒后再开始已设定的补间
func (a *Animated) After(delay float64) *Animated {
	a.delay = delay
	return a
}

// Update 推进 dt 秒并返回当前值
func (a *Animated) Update(dt float64) float64 {
	if a.tween == nil {
		return a.value
	}
	if a.delay > 0 {
		a.delay -= dt
		if a.delay > 0 {
			return a.value
		}
		dt = -a.delay
		a.delay = 0
	}
	a.value = a.tween.Update(dt)
	if a.tween.Done() {
		a.tween = nil
	}
	return a.value
}

// Value 当前值
func (a *Animated) Value() float64 {
	return a.value
}

// Animating 是否有进行中的补间
func (a *Animated) Animating() bool {
	return a.tween != nil
}
