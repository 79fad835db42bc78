package scenes

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/afraica/pkg/game"
	"github.com/decker502/afraica/pkg/systems"
	"github.com/decker502/afraica/pkg/utils"
)

// 加载场景布局（相对视口的比例）
const (
	loadingLogoY      = 0.14
	loadingLogoScale  = 6.0
	loadingBarY       = 0.84
	loadingBarWidth   = 0.4
	loadingBarMaxW    = 420.0
	loadingBarHeight  = 4.0
	loadingMessageY   = 0.9
	loadingSkipMargin = 24.0
	skipHintText      = "Skip intro [Esc]"
	skipHintScale     = 1.5
)

// 三个合成图层，对应背景粒子、体积光与粒子球
const (
	layerBackground = iota
	layerLights
	layerBall
	layerCount
)

// demonstrateSpin Intelligence 阶段额外施加的旋转
const demonstrateSpin = 0.5

// sceneBackground 场景底色
var sceneBackground = color.RGBA{R: 5, G: 6, B: 12, A: 255}

// layerFX 单个图层的不透明度与亮度
type layerFX struct {
	opacity    *utils.Animated
	brightness *utils.Animated
	image      *ebiten.Image
}

// LoadingScene 首次访问的完整开场加载场景
//
// 五个阶段由 LoadingSequenceSystem 驱动，本场景只负责为序列中的动作名
// 提供实现，并把各图层合成到一张画布上，画布整体随退场动画淡出放大。
type LoadingScene struct {
	svc *Services
	seq *systems.LoadingSequenceSystem

	ball        *BallLayer
	ballDispose game.Disposer
	ambient     *ambientLayer
	scope       *game.Scope

	width, height float64

	layers      [layerCount]layerFX
	loaderAlpha *utils.Animated
	logoScale   *utils.Animated
	logoAlpha   *utils.Animated
	logoPulse   *utils.Animated
	aiGlow      *utils.Animated
	progressMin *utils.Animated

	canvas   *ebiten.Image
	disposed bool
}

// NewLoadingScene 创建并启动开场加载场景
//
// 参数：
//   - svc: 场景共享服务
//   - width, height: 初始视口尺寸
//
// 返回：
//   - 粒子球图层创建或挂载失败时返回错误，调用方应改用 StaticBackdrop
func NewLoadingScene(svc *Services, width, height float64) (*LoadingScene, error) {
	variant, err := svc.Variants.Get(svc.LoaderVariant)
	if err != nil {
		return nil, fmt.Errorf("loading scene: %w", err)
	}
	ball, err := NewBallLayer(variant, svc.Scheduler, svc.Events, svc.Rand)
	if err != nil {
		return nil, fmt.Errorf("loading scene: %w", err)
	}
	ballDispose, err := ball.Attach(width, height)
	if err != nil {
		return nil, fmt.Errorf("loading scene: %w", err)
	}

	s := &LoadingScene{
		svc:         svc,
		ball:        ball,
		ballDispose: ballDispose,
		ambient:     newAmbientLayer(svc.Events, svc.Rand, width, height),
		scope:       game.NewScope(),
		width:       width,
		height:      height,
		loaderAlpha: utils.NewAnimated(0),
		logoScale:   utils.NewAnimated(0.8),
		logoAlpha:   utils.NewAnimated(0),
		logoPulse:   utils.NewAnimated(1),
		aiGlow:      utils.NewAnimated(0),
		progressMin: utils.NewAnimated(0),
	}
	for i := range s.layers {
		s.layers[i] = layerFX{opacity: utils.NewAnimated(0), brightness: utils.NewAnimated(1)}
	}
	s.layers[layerBall].opacity.Set(1)

	s.scope.Add(svc.Events.OnResize(func(e game.ResizeEvent) {
		s.width, s.height = e.Width, e.Height
	}))

	s.seq = systems.NewLoadingSequenceSystem(svc.Sequence, svc.Scheduler, svc.seenMarker())
	s.registerActions()
	s.seq.OnComplete(func(skipped bool) {
		log.Printf("[LoadingScene] Sequence complete (skipped=%v)", skipped)
		svc.navigate(SceneMain)
	})
	s.seq.Start()

	log.Printf("[LoadingScene] Started with variant %q at %.0fx%.0f", variant.Name, width, height)
	return s, nil
}

// registerActions 为序列中的每个动作名提供实现
func (s *LoadingScene) registerActions() {
	actions := map[string]systems.SequenceAction{
		"emergence": func() {
			s.loaderAlpha.FromTo(0, 1, 2, utils.EaseOutQuad)
			s.logoScale.FromTo(0.8, 1, 2.5, utils.EaseOutBack)
			s.logoAlpha.FromTo(0, 1, 2.5, utils.EaseOutQuad)
		},
		"fadeInComponents": func() {
			s.layers[layerBackground].opacity.To(1, 2, utils.EaseOutQuad)
			s.layers[layerLights].opacity.To(0.7, 2.5, utils.EaseOutQuad)
		},
		"startProgressBar": func() {
			s.progressMin.To(0.2, 2.5, utils.EaseOutQuad)
		},
		"logoBuilding": func() {
			s.aiGlow.Yoyo(1, 1.5, 2, utils.EaseInOutQuad)
		},
		"intensifyParticles": s.ambient.Intensify,
		"enhanceLighting": func() {
			s.ambient.LightsTo(0.8, 2)
		},
		"demonstrateIntelligence": func() {
			s.ball.AddSpin(demonstrateSpin)
		},
		"activateDataStreams": func() {
			log.Printf("[LoadingScene] Data streams active")
		},
		"showHologram": func() {
			s.ball.SetHologram(true)
		},
		"optimizeRigidity": func() {
			s.ball.TweenRigidity(0.4, 1.5)
		},
		"synchronizeElements": func() {
			for i := range s.layers {
				b := s.layers[i].brightness
				b.To(1.1, 1, utils.EaseOutQuad)
				b.After(float64(i) * 0.2)
			}
		},
		"buildToClimax": func() {
			s.ambient.LightsTo(1.0, 0)
		},
		"finalTransformation": func() {
			s.logoPulse.Yoyo(1.05, 1, 2, utils.EaseInOutQuad)
		},
		"prepareTransition": func() {
			log.Printf("[LoadingScene] Preparing transition to %s", SceneMain)
		},
	}
	for name, fn := range actions {
		s.seq.RegisterAction(name, fn)
	}
}

// Skip 跳过开场，返回是否生效
func (s *LoadingScene) Skip() bool {
	if !s.seq.Skip() {
		return false
	}
	log.Printf("[LoadingScene] Skipped at %.2fs", s.seq.Elapsed())
	return true
}

// skipRect 跳过提示的点击区域
func (s *LoadingScene) skipRect() image.Rectangle {
	w := textWidth(skipHintText, skipHintScale)
	h := uiFace.Metrics().HAscent * skipHintScale * 2
	x1 := s.width - loadingSkipMargin
	y1 := s.height - loadingSkipMargin
	return image.Rect(int(x1-w-8), int(y1-h), int(x1), int(y1))
}

// Update 处理跳过输入并推进所有动画值
func (s *LoadingScene) Update(deltaTime float64) {
	if s.disposed {
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		s.Skip()
	}
	if clicked, x, y := utils.IsJustTouchedOrClicked(); clicked && image.Pt(x, y).In(s.skipRect()) {
		s.Skip()
	}

	s.advance(deltaTime)
}

// advance 推进动画值，与输入无关
func (s *LoadingScene) advance(dt float64) {
	s.loaderAlpha.Update(dt)
	s.logoScale.Update(dt)
	s.logoAlpha.Update(dt)
	s.logoPulse.Update(dt)
	s.aiGlow.Update(dt)
	s.progressMin.Update(dt)
	for i := range s.layers {
		s.layers[i].opacity.Update(dt)
		s.layers[i].brightness.Update(dt)
	}

	bar := s.seq.Progress()
	if floor := s.progressMin.Value(); floor > bar.Target() {
		bar.SetTarget(floor)
	}
	s.seq.Update(dt)
	s.ambient.Update(dt)
}

// Draw 合成所有图层后按退场动画整体绘制
func (s *LoadingScene) Draw(screen *ebiten.Image) {
	screen.Fill(sceneBackground)
	if s.disposed {
		return
	}

	bounds := screen.Bounds()
	s.canvas = ensureImage(s.canvas, bounds)
	s.canvas.Clear()

	for i := range s.layers {
		fx := &s.layers[i]
		fx.image = ensureImage(fx.image, bounds)
		fx.image.Clear()
		switch i {
		case layerBackground:
			s.ambient.DrawConstellation(fx.image)
		case layerLights:
			s.ambient.DrawLights(fx.image, 1)
		case layerBall:
			s.ball.Draw(fx.image)
		}
		compositeLayer(s.canvas, fx.image, fx.opacity.Value(), fx.brightness.Value())
	}

	s.drawOverlay(s.canvas)

	w, h := float64(bounds.Dx()), float64(bounds.Dy())
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-w/2, -h/2)
	op.GeoM.Scale(s.seq.Scale(), s.seq.Scale())
	op.GeoM.Translate(w/2, h/2)
	op.ColorScale.ScaleAlpha(float32(s.seq.Opacity() * s.loaderAlpha.Value()))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(s.canvas, op)
}

// drawOverlay 绘制标志、进度条、提示语与跳过按钮
func (s *LoadingScene) drawOverlay(dst *ebiten.Image) {
	w, h := s.width, s.height

	logoScale := loadingLogoScale * s.logoScale.Value() * s.logoPulse.Value()
	drawSegments(dst, logoSegments, w/2, h*loadingLogoY, logoScale, s.logoAlpha.Value(), 1, s.aiGlow.Value())

	barW := math.Min(w*loadingBarWidth, loadingBarMaxW)
	s.seq.Progress().Draw(dst, (w-barW)/2, h*loadingBarY, barW, loadingBarHeight, 1)

	if msgs := s.svc.Sequence.Messages; len(msgs) > 0 {
		index, alpha := s.seq.Messages().Current()
		if index >= 0 && index < len(msgs) {
			drawText(dst, msgs[index], w/2, h*loadingMessageY, 2, colorMuted, alpha)
		}
	}

	r := s.skipRect()
	alpha := 0.6
	if x, y := ebiten.CursorPosition(); image.Pt(x, y).In(r) {
		alpha = 1
	}
	cx := float64(r.Min.X+r.Max.X) / 2
	cy := float64(r.Min.Y+r.Max.Y) / 2
	drawText(dst, skipHintText, cx, cy, skipHintScale, colorWhite, alpha)
}

// Sequence 返回驱动本场景的加载序列
func (s *LoadingScene) Sequence() *systems.LoadingSequenceSystem {
	return s.seq
}

// Ball 返回粒子球图层
func (s *LoadingScene) Ball() *BallLayer {
	return s.ball
}

// Dispose 释放序列、粒子球、背景图层与离屏画布
func (s *LoadingScene) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	s.seq.Dispose()
	s.ballDispose()
	s.ambient.Dispose()
	s.scope.Dispose()

	if s.canvas != nil {
		s.canvas.Deallocate()
	}
	for i := range s.layers {
		if s.layers[i].image != nil {
			s.layers[i].image.Deallocate()
		}
	}
	log.Printf("[LoadingScene] Disposed")
}

// ensureImage 返回与 bounds 同尺寸的离屏图像，尺寸变化时重建
func ensureImage(img *ebiten.Image, bounds image.Rectangle) *ebiten.Image {
	if img != nil && img.Bounds().Size() == bounds.Size() {
		return img
	}
	if img != nil {
		img.Deallocate()
	}
	return ebiten.NewImage(bounds.Dx(), bounds.Dy())
}

// compositeLayer 把图层按不透明度与亮度合成到 dst
func compositeLayer(dst, layer *ebiten.Image, opacity, brightness float64) {
	if opacity <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	b := float32(brightness)
	op.ColorScale.Scale(b, b, b, 1)
	op.ColorScale.ScaleAlpha(float32(opacity))
	dst.DrawImage(layer, op)
}
