package scenes

import (
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/afraica/internal/textraster"
	"github.com/decker502/afraica/pkg/components"
	"github.com/decker502/afraica/pkg/config"
	"github.com/decker502/afraica/pkg/ecs"
	"github.com/decker502/afraica/pkg/entities"
	"github.com/decker502/afraica/pkg/game"
	"github.com/decker502/afraica/pkg/systems"
	"github.com/decker502/afraica/pkg/utils"
)

// ErrAlreadyAttached 同一个 BallLayer 重复 Attach
var ErrAlreadyAttached = errors.New("ball layer: already attached")

// BallLayer 粒子球图层
//
// 一个图层持有一组粒子、背景星空和（增强变体的）装饰层，
// 逐帧逻辑跑在 Scheduler 的帧回调中，回调末尾重新请求下一帧。
// 所有订阅、帧回调与定时器都登记在 Attach 创建的 Scope 中。
type BallLayer struct {
	variant *config.BallVariant
	sched   *game.Scheduler
	bus     *game.EventBus
	rng     *rand.Rand
	raster  *textraster.Raster

	em        *ecs.EntityManager
	physics   *systems.BallPhysicsSystem
	eruptions *systems.EruptionSystem
	starfield *systems.StarfieldSystem
	ornaments *systems.OrnamentSystem
	renderer  *systems.BallRenderSystem

	particles     []components.BallParticle
	width, height float64

	rotation systems.RotationState
	parallax systems.ParallaxState
	breath   *systems.BreathState

	rigidity      float64
	rigidityTween *utils.Tween

	pointerX, pointerY float64
	pointerActive      bool
	dragging           bool
	lastX, lastY       float64

	// 开场时间线
	introStart float64
	spinning   bool

	time   float64
	frames int

	scope    *game.Scope
	frame    game.FrameID
	attached bool
}

// NewBallLayer 创建粒子球图层
//
// 参数：
//   - v: 变体参数
//   - sched: 驱动帧回调与定时器的调度器
//   - bus: 指针与尺寸事件来源
//   - rng: 随机源
//
// 返回：
//   - 文字取色贴图生成失败时返回包装了 entities.ErrNoTextRaster 的错误
func NewBallLayer(v *config.BallVariant, sched *game.Scheduler, bus *game.EventBus, rng *rand.Rand) (*BallLayer, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: nil variant", config.ErrInvalidVariant)
	}
	raster, err := textraster.Render(v.Label, config.TextRasterWidth, config.TextRasterHeight)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", entities.ErrNoTextRaster, v.Name, err)
	}

	em := ecs.NewEntityManager()
	l := &BallLayer{
		variant:   v,
		sched:     sched,
		bus:       bus,
		rng:       rng,
		raster:    raster,
		em:        em,
		physics:   systems.NewBallPhysicsSystem(v),
		eruptions: systems.NewEruptionSystem(sched, nil, rng),
		starfield: systems.NewStarfieldSystem(em, v, rng),
		renderer:  systems.NewBallRenderSystem(v),
		rigidity:  v.Rigidity,
	}
	if v.Ornaments {
		l.ornaments = systems.NewOrnamentSystem(em, rng)
		l.ornaments.SetHologram(v.Hologram)
	}
	if v.Breathing {
		l.breath = systems.NewBreathState()
	}
	return l, nil
}

// Attach 生成粒子与星空，订阅事件并开始逐帧更新
//
// 返回的 Disposer 取消订阅、帧回调和图层创建的全部定时器，可重复调用。
func (l *BallLayer) Attach(width, height float64) (game.Disposer, error) {
	if l.attached {
		return nil, ErrAlreadyAttached
	}
	if err := l.regenerate(width, height); err != nil {
		return nil, err
	}

	l.scope = game.NewScope()
	l.eruptions = systems.NewEruptionSystem(l.sched, l.scope, l.rng)
	l.scope.Add(l.bus.OnPointer(l.handlePointer))
	l.scope.Add(l.bus.OnResize(func(e game.ResizeEvent) {
		if err := l.Resize(e.Width, e.Height); err != nil {
			log.Printf("[BallLayer] Warning: resize to %.0fx%.0f failed: %v", e.Width, e.Height, err)
		}
	}))
	l.scope.Add(func() {
		l.sched.CancelFrame(l.frame)
		l.frame = 0
		l.attached = false
	})

	if l.variant.Intro.Enabled {
		l.startIntro()
	}

	l.attached = true
	l.requestFrame()
	log.Printf("[BallLayer] Attached %s: %d particles, %.0fx%.0f", l.variant.Name, len(l.particles), width, height)

	return l.scope.Dispose, nil
}

// Resize 按新尺寸重建粒子与星空
//
// 先取消当前帧回调再重建，重建后重新请求帧，避免新旧两条帧链同时运行。
// 最终爆炸追加的粒子在重建时被丢弃。
func (l *BallLayer) Resize(width, height float64) error {
	if l.attached {
		l.sched.CancelFrame(l.frame)
		l.frame = 0
		defer l.requestFrame()
	}
	return l.regenerate(width, height)
}

func (l *BallLayer) regenerate(width, height float64) error {
	particles, err := entities.GenerateBallParticles(l.variant, width, height, l.raster, l.rng)
	if err != nil {
		return fmt.Errorf("failed to generate %s particles: %w", l.variant.Name, err)
	}
	l.particles = particles
	l.width, l.height = width, height
	l.starfield.Reset(width, height)
	if l.ornaments != nil {
		l.ornaments.Reset()
	}
	return nil
}

func (l *BallLayer) requestFrame() {
	l.frame = l.sched.RequestFrame(l.step)
}

// startIntro 开场：刚性锁定旋转 SpinEnd 秒，之后释放并启用喷发，FinalExplosionAt 秒时最终爆炸
func (l *BallLayer) startIntro() {
	intro := l.variant.Intro
	l.introStart = l.sched.Now()
	l.spinning = true
	l.rigidity = 1
	l.scope.After(l.sched, intro.SpinEnd, l.releaseIntro)
	l.scope.After(l.sched, intro.FinalExplosionAt, l.TriggerFinalExplosion)
}

func (l *BallLayer) releaseIntro() {
	l.spinning = false
	l.SetRigidity(0)
	l.EnableEruptions()
	l.TriggerImmediateExplosion()
	log.Printf("[BallLayer] Intro released at %.2fs: rigidity off, eruptions on", l.sched.Now()-l.introStart)
}

// step 帧回调
func (l *BallLayer) step(dt float64) {
	if !l.attached {
		return
	}
	l.frames++
	l.time += dt

	if l.rigidityTween != nil {
		l.rigidity = l.rigidityTween.Update(dt)
		if l.rigidityTween.Done() {
			l.rigidityTween = nil
		}
	}
	if l.spinning {
		l.rigidity = 1
		if !l.dragging {
			p := math.Min((l.sched.Now()-l.introStart)/l.variant.Intro.SpinEnd, 1)
			l.rotation.Spin(l.variant.Intro.InitialSpinSpeed * (1 - p) * (1 - p))
		}
	}

	cx, cy, scale := entities.BallCenter(l.variant, l.width, l.height)
	breath := 1.0
	if l.breath != nil {
		breath = l.breath.Update(dt)
	}

	l.starfield.Update()
	l.parallax.Update()
	if l.ornaments != nil {
		l.ornaments.Update(cx, cy, dt)
	}

	l.rotation.Update(!l.dragging && !l.spinning)
	l.physics.Step(l.particles, systems.PhysicsInput{
		Width:         l.width,
		Height:        l.height,
		PointerX:      l.pointerX,
		PointerY:      l.pointerY,
		PointerActive: l.pointerActive,
		Rigidity:      l.rigidity,
		RotationX:     l.rotation.X,
		RotationY:     l.rotation.Y,
		Breath:        breath,
		Time:          l.time,
	})

	if l.variant.Eruptions {
		l.eruptions.Spawn(cx, cy, scale*breath)
	}
	l.eruptions.Apply(l.particles)
	systems.DepthSort(l.particles)

	l.requestFrame()
}

func (l *BallLayer) handlePointer(e game.PointerEvent) {
	switch e.Kind {
	case game.PointerMove:
		l.pointerX, l.pointerY, l.pointerActive = e.X, e.Y, true
		l.parallax.Aim(e.X, e.Y, l.width, l.height, l.variant.ParallaxStrength)
		if l.dragging {
			l.rotation.Drag(e.X-l.lastX, e.Y-l.lastY)
		}
		l.lastX, l.lastY = e.X, e.Y
	case game.PointerDown:
		l.dragging = true
		l.lastX, l.lastY = e.X, e.Y
	case game.PointerUp:
		l.dragging = false
	case game.PointerLeave:
		l.pointerActive = false
		l.dragging = false
		l.parallax.Reset()
	}
}

// Draw 绘制星空、装饰层与粒子
func (l *BallLayer) Draw(screen *ebiten.Image) {
	l.starfield.Draw(screen, &l.parallax)
	if l.ornaments != nil {
		cx, cy, _ := entities.BallCenter(l.variant, l.width, l.height)
		breath := 1.0
		if l.breath != nil {
			breath = l.breath.Value
		}
		l.ornaments.Draw(screen, cx, cy, breath)
	}
	l.renderer.Draw(screen, l.particles, l.ornaments)
}

// SetRigidity 立即设置刚性并取消进行中的刚性渐变
func (l *BallLayer) SetRigidity(v float64) {
	l.rigidityTween = nil
	l.rigidity = math.Max(0, math.Min(1, v))
}

// TweenRigidity 在 duration 秒内把刚性渐变到 target
func (l *BallLayer) TweenRigidity(target, duration float64) {
	target = math.Max(0, math.Min(1, target))
	l.rigidityTween = utils.NewTween(l.rigidity, target, duration, utils.EaseOutQuad)
}

// AddSpin 给目标角度追加一次旋转
func (l *BallLayer) AddSpin(delta float64) {
	l.rotation.Spin(delta)
}

// EnableEruptions 启用随机喷发
func (l *BallLayer) EnableEruptions() {
	l.eruptions.Enable()
}

// TriggerImmediateExplosion 在球心触发一次即时爆炸
func (l *BallLayer) TriggerImmediateExplosion() {
	cx, cy, _ := entities.BallCenter(l.variant, l.width, l.height)
	l.eruptions.TriggerImmediateExplosion(cx, cy)
}

// TriggerFinalExplosion 触发最终爆炸，只生效一次
func (l *BallLayer) TriggerFinalExplosion() {
	cx, cy, _ := entities.BallCenter(l.variant, l.width, l.height)
	l.particles, _ = l.eruptions.TriggerFinalExplosion(l.particles, cx, cy, l.width/2, l.height/2)
}

// SetHologram 开关全息叠加；没有装饰层的变体忽略
func (l *BallLayer) SetHologram(on bool) {
	if l.ornaments == nil {
		log.Printf("[BallLayer] Warning: %s has no ornament layer, hologram ignored", l.variant.Name)
		return
	}
	l.ornaments.SetHologram(on)
}

// Variant 图层使用的变体
func (l *BallLayer) Variant() *config.BallVariant {
	return l.variant
}

// Particles 当前粒子（已按深度排序）
func (l *BallLayer) Particles() []components.BallParticle {
	return l.particles
}

// Rigidity 当前刚性
func (l *BallLayer) Rigidity() float64 {
	return l.rigidity
}

// Rotation 当前旋转状态
func (l *BallLayer) Rotation() systems.RotationState {
	return l.rotation
}

// Eruptions 喷发系统
func (l *BallLayer) Eruptions() *systems.EruptionSystem {
	return l.eruptions
}

// Spinning 是否处于开场旋转阶段
func (l *BallLayer) Spinning() bool {
	return l.spinning
}

// Attached 是否已挂载
func (l *BallLayer) Attached() bool {
	return l.attached
}

// Frames 已执行的帧回调次数
func (l *BallLayer) Frames() int {
	return l.frames
}

// Size 当前视口尺寸
func (l *BallLayer) Size() (width, height float64) {
	return l.width, l.height
}
