package systems

import (
	"log"
	"math"

	"github.com/decker502/afraica/pkg/config"
	"github.com/decker502/afraica/pkg/game"
	"github.com/decker502/afraica/pkg/utils"
)

// SequenceState 加载序列状态
type SequenceState int

const (
	SequenceIdle SequenceState = iota
	SequenceRunning
	// SequenceTransitioning 正在淡出，淡出结束后导航到主场景
	SequenceTransitioning
	SequenceDone
)

func (s SequenceState) String() string {
	switch s {
	case SequenceIdle:
		return "idle"
	case SequenceRunning:
		return "running"
	case SequenceTransitioning:
		return "transitioning"
	case SequenceDone:
		return "done"
	}
	return "unknown"
}

const (
	// transitionScale / transitionScaleSkipped 淡出结束时加载层的放大倍数
	transitionScale        = 1.1
	transitionScaleSkipped = 1.05
)

// SeenMarker 持久化"已看过开场"标记
type SeenMarker interface {
	MarkSeen() error
}

// SequenceAction 阶段进入时执行的动作
type SequenceAction func()

// LoadingSequenceSystem 开场加载序列编排器
//
// 状态机 Idle → Running(阶段 k) → Transitioning → Done。
// 运行期间的帧回调和定时器（进度轮询、消息轮播）都登记在序列 Scope 中，
// 跳过时整体释放；淡出定时器登记在独立的过渡 Scope 中。
type LoadingSequenceSystem struct {
	cfg    *config.LoadingSequence
	sched  *game.Scheduler
	marker SeenMarker

	actions map[string]SequenceAction

	scope      *game.Scope
	transition *game.Scope
	frame      game.FrameID

	state     SequenceState
	phase     int
	startedAt float64
	elapsed   float64

	skipped bool
	seen    bool

	progress *ProgressBarSystem
	messages *MessageCycler

	fade  *utils.Tween
	scale *utils.Tween

	onComplete func(skipped bool)
}

// NewLoadingSequenceSystem 创建编排器
//
// 参数：
//   - cfg: 已校验的序列配置
//   - sched: 调度器
//   - marker: "已看过"标记存储，可为 nil
//
// 内置动作 completeLoading 会持久化标记。
func NewLoadingSequenceSystem(cfg *config.LoadingSequence, sched *game.Scheduler, marker SeenMarker) *LoadingSequenceSystem {
	s := &LoadingSequenceSystem{
		cfg:        cfg,
		sched:      sched,
		marker:     marker,
		actions:    make(map[string]SequenceAction),
		scope:      game.NewScope(),
		transition: game.NewScope(),
		phase:      -1,
		progress:   NewProgressBarSystem(60),
		messages:   NewMessageCycler(len(cfg.Messages), cfg.MessageCycle.Crossfade),
	}
	s.RegisterAction("completeLoading", s.MarkSeen)
	return s
}

// RegisterAction 按名称注册阶段动作，同名注册会覆盖
func (s *LoadingSequenceSystem) RegisterAction(name string, fn SequenceAction) {
	s.actions[name] = fn
}

// OnComplete 设置淡出结束后的回调（导航）
func (s *LoadingSequenceSystem) OnComplete(fn func(skipped bool)) {
	s.onComplete = fn
}

// Start 开始序列：进入第一阶段，启动进度轮询和消息轮播
func (s *LoadingSequenceSystem) Start() {
	if s.state != SequenceIdle {
		return
	}
	s.state = SequenceRunning
	s.startedAt = s.sched.Now()
	log.Printf("[LoadingSequence] 开始加载序列 (%.1fs, %d 个阶段)", s.cfg.TotalDuration, len(s.cfg.Phases))

	s.scope.Add(func() { s.sched.CancelFrame(s.frame) })
	s.scope.Every(s.sched, s.cfg.PollInterval, s.poll)
	s.scope.Every(s.sched, s.cfg.MessageCycle.Hold, s.messages.Next)

	s.Tick(0)
	s.requestFrame()
}

func (s *LoadingSequenceSystem) requestFrame() {
	s.frame = s.sched.RequestFrame(func(float64) {
		if s.state != SequenceRunning {
			return
		}
		s.Tick(s.sched.Now() - s.startedAt)
		s.requestFrame()
	})
}

// Tick 以序列开始后经过的秒数推进阶段
//
// 阶段 k+1 仅在 elapsed 不小于前 k+1 个阶段时长之和时进入；
// 一次 Tick 跨过多个边界时按顺序逐个进入。
func (s *LoadingSequenceSystem) Tick(elapsed float64) {
	if s.state != SequenceRunning {
		return
	}
	s.elapsed = elapsed
	for s.phase+1 < len(s.cfg.Phases) && elapsed >= s.cfg.PhaseStart(s.phase+1) {
		s.enterPhase(s.phase + 1)
	}
}

func (s *LoadingSequenceSystem) enterPhase(index int) {
	s.phase = index
	p := s.cfg.Phases[index]
	log.Printf("[LoadingSequence] 阶段 %d: %s (t=%.2fs)", index+1, p.Name, s.elapsed)

	s.messages.Force(p.Message)
	for _, name := range p.Actions {
		fn, ok := s.actions[name]
		if !ok {
			log.Printf("[LoadingSequence] Warning: 未注册的动作 %q (阶段 %s)", name, p.Name)
			continue
		}
		fn()
	}
}

// poll 进度轮询：更新进度条目标，到达总时长后开始过渡
func (s *LoadingSequenceSystem) poll() {
	elapsed := s.sched.Now() - s.startedAt
	s.Tick(elapsed)
	s.progress.SetTarget(math.Min(elapsed/s.cfg.TotalDuration, 1))
	if elapsed >= s.cfg.TotalDuration {
		s.beginTransition(false)
	}
}

// Skip 立即结束序列：释放所有定时器和帧回调，持久化标记，快速淡出
//
// 返回：是否实际执行了跳过（已在过渡中或已结束时返回 false）
func (s *LoadingSequenceSystem) Skip() bool {
	if s.state == SequenceTransitioning || s.state == SequenceDone {
		return false
	}
	log.Printf("[LoadingSequence] 跳过加载序列 (t=%.2fs)", s.Elapsed())
	s.beginTransition(true)
	return true
}

func (s *LoadingSequenceSystem) beginTransition(skipped bool) {
	if s.state == SequenceTransitioning || s.state == SequenceDone {
		return
	}
	s.state = SequenceTransitioning
	s.skipped = skipped
	s.scope.Dispose()
	s.MarkSeen()

	duration, scale := s.cfg.FadeOut, transitionScale
	if skipped {
		duration, scale = s.cfg.FadeOutSkipped, transitionScaleSkipped
	}
	s.fade = utils.NewTween(1, 0, duration, utils.EaseInOutQuad)
	s.scale = utils.NewTween(1, scale, duration, utils.EaseInOutQuad)
	s.transition.After(s.sched, duration, s.finish)
}

func (s *LoadingSequenceSystem) finish() {
	s.state = SequenceDone
	log.Printf("[LoadingSequence] 过渡完成 (skipped=%v)", s.skipped)
	if s.onComplete != nil {
		s.onComplete(s.skipped)
	}
}

// MarkSeen 持久化"已看过开场"，同一序列内只写一次
func (s *LoadingSequenceSystem) MarkSeen() {
	if s.seen {
		return
	}
	s.seen = true
	if s.marker == nil {
		return
	}
	if err := s.marker.MarkSeen(); err != nil {
		log.Printf("[LoadingSequence] Warning: 无法保存开场标记: %v", err)
	}
}

// Update 推进逐帧插值（进度条弹簧、消息淡入淡出、过渡淡出）
func (s *LoadingSequenceSystem) Update(dt float64) {
	s.progress.Update()
	s.messages.Update(dt)
	if s.fade != nil {
		s.fade.Update(dt)
		s.scale.Update(dt)
	}
}

// Dispose 释放序列持有的全部定时器和帧回调
func (s *LoadingSequenceSystem) Dispose() {
	s.scope.Dispose()
	s.transition.Dispose()
}

// State 当前状态
func (s *LoadingSequenceSystem) State() SequenceState {
	return s.state
}

// Phase 当前阶段下标，尚未开始时为 -1
func (s *LoadingSequenceSystem) Phase() int {
	return s.phase
}

// Elapsed 最近一次 Tick 时的经过时间
func (s *LoadingSequenceSystem) Elapsed() float64 {
	return s.elapsed
}

// Skipped 是否经由跳过结束
func (s *LoadingSequenceSystem) Skipped() bool {
	return s.skipped
}

// Progress 进度条
func (s *LoadingSequenceSystem) Progress() *ProgressBarSystem {
	return s.progress
}

// Messages 消息轮播
func (s *LoadingSequenceSystem) Messages() *MessageCycler {
	return s.messages
}

// Opacity 加载层整体不透明度
func (s *LoadingSequenceSystem) Opacity() float64 {
	switch {
	case s.state == SequenceDone:
		return 0
	case s.fade != nil:
		return s.fade.Value()
	}
	return 1
}

// Scale 加载层整体缩放
func (s *LoadingSequenceSystem) Scale() float64 {
	if s.scale != nil {
		return s.scale.Value()
	}
	return 1
}

// MessageCycler 消息轮播：旧消息淡出后新消息淡入
type MessageCycler struct {
	count     int
	crossfade float64

	current int
	pending int
	fading  bool
	t       float64
}

// NewMessageCycler 创建轮播，count 为消息条数
func NewMessageCycler(count int, crossfade float64) *MessageCycler {
	return &MessageCycler{count: count, crossfade: crossfade, pending: -1}
}

// Next 开始切换到下一条消息
func (m *MessageCycler) Next() {
	if m.count == 0 {
		return
	}
	m.show((m.current + 1) % m.count)
}

func (m *MessageCycler) show(index int) {
	if m.crossfade <= 0 {
		m.current = index
		return
	}
	m.pending = index
	m.fading = true
	m.t = 0
}

// Force 立即显示第 index 条消息，中断进行中的切换
func (m *MessageCycler) Force(index int) {
	if index < 0 || index >= m.count {
		return
	}
	m.current = index
	m.pending = -1
	m.fading = false
}

// Update 推进淡入淡出
func (m *MessageCycler) Update(dt float64) {
	if m.pending < 0 && !m.fading {
		return
	}
	m.t += dt
	if m.fading && m.t >= m.crossfade {
		// 淡出结束，换上新消息开始淡入
		m.current = m.pending
		m.pending = -1
		m.t -= m.crossfade
	}
	if !m.fading || m.pending >= 0 {
		return
	}
	if m.t >= m.crossfade {
		m.fading = false
	}
}

// Current 当前显示的消息下标与不透明度
func (m *MessageCycler) Current() (index int, alpha float64) {
	if !m.fading {
		return m.current, 1
	}
	p := math.Min(m.t/m.crossfade, 1)
	if m.pending >= 0 {
		return m.current, 1 - p
	}
	return m.current, p
}
