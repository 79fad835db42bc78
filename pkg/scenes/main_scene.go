package scenes

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/afraica/pkg/game"
)

// mainLightOpacity 主场景体积光层的不透明度
const mainLightOpacity = 0.7

// MainScene 主页面：增强粒子球叠加星座背景与体积光
type MainScene struct {
	svc *Services

	ball        *BallLayer
	ballDispose game.Disposer
	ambient     *ambientLayer
	scope       *game.Scope

	width, height float64
	hologram      bool
	disposed      bool
}

// NewMainScene 创建主场景
//
// 返回：
//   - 粒子球图层失败时返回错误，调用方应改用 StaticBackdrop
func NewMainScene(svc *Services, width, height float64) (*MainScene, error) {
	variant, err := svc.Variants.Get(svc.MainVariant)
	if err != nil {
		return nil, fmt.Errorf("main scene: %w", err)
	}
	ball, err := NewBallLayer(variant, svc.Scheduler, svc.Events, svc.Rand)
	if err != nil {
		return nil, fmt.Errorf("main scene: %w", err)
	}
	dispose, err := ball.Attach(width, height)
	if err != nil {
		return nil, fmt.Errorf("main scene: %w", err)
	}

	s := &MainScene{
		svc:         svc,
		ball:        ball,
		ballDispose: dispose,
		ambient:     newAmbientLayer(svc.Events, svc.Rand, width, height),
		scope:       game.NewScope(),
		width:       width,
		height:      height,
	}
	s.scope.Add(svc.Events.OnResize(func(e game.ResizeEvent) {
		s.width, s.height = e.Width, e.Height
	}))
	if variant.Hologram {
		s.ToggleHologram()
	}

	log.Printf("[MainScene] Started with variant %q", variant.Name)
	return s, nil
}

// ToggleHologram 切换全息叠加层
func (s *MainScene) ToggleHologram() {
	s.hologram = !s.hologram
	s.ball.SetHologram(s.hologram)
}

// Update 处理快捷键并推进背景图层（粒子球由帧回调驱动）
func (s *MainScene) Update(deltaTime float64) {
	if s.disposed {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		s.ToggleHologram()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := s.ball.Resize(s.width, s.height); err != nil {
			log.Printf("[MainScene] Warning: regenerate failed: %v", err)
		}
	}
	s.advance(deltaTime)
}

func (s *MainScene) advance(dt float64) {
	s.ambient.Update(dt)
}

// Draw 依次绘制星座、体积光与粒子球
func (s *MainScene) Draw(screen *ebiten.Image) {
	screen.Fill(sceneBackground)
	if s.disposed {
		return
	}
	s.ambient.DrawConstellation(screen)
	s.ambient.DrawLights(screen, mainLightOpacity)
	s.ball.Draw(screen)
}

// Ball 返回粒子球图层
func (s *MainScene) Ball() *BallLayer {
	return s.ball
}

// Dispose 释放粒子球与背景图层
func (s *MainScene) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	s.ballDispose()
	s.ambient.Dispose()
	s.scope.Dispose()
}
