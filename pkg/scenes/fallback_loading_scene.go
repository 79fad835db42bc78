package scenes

import (
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/afraica/pkg/config"
	"github.com/decker502/afraica/pkg/game"
	"github.com/decker502/afraica/pkg/systems"
	"github.com/decker502/afraica/pkg/utils"
)

// FallbackLoadingScene 本次会话已看过开场时的简短加载画面
//
// 标志的三个词依次上浮淡入，进度条在短暂延迟后走满，
// 随后整个画面淡出并进入主场景。
type FallbackLoadingScene struct {
	svc *Services
	cfg config.FallbackConfig

	words    []*utils.Animated
	progress *utils.Animated
	visible  *utils.Animated
	bar      *systems.ProgressBarSystem

	scope         *game.Scope
	width, height float64
	hiding        bool
	finished      bool
}

// NewFallbackLoadingScene 创建并启动简短加载画面
func NewFallbackLoadingScene(svc *Services, width, height float64) *FallbackLoadingScene {
	cfg := svc.Sequence.Fallback
	s := &FallbackLoadingScene{
		svc:      svc,
		cfg:      cfg,
		words:    make([]*utils.Animated, len(logoSegments)),
		progress: utils.NewAnimated(0),
		visible:  utils.NewAnimated(1),
		bar:      systems.NewProgressBarSystem(ebiten.TPS()),
		scope:    game.NewScope(),
		width:    width,
		height:   height,
	}

	for i := range s.words {
		word := utils.NewAnimated(0)
		s.words[i] = word
		s.scope.After(svc.Scheduler, float64(i)*cfg.WordStagger, func() {
			word.To(1, cfg.WordFade, utils.EaseOutQuad)
		})
	}
	s.scope.After(svc.Scheduler, cfg.ProgressDelay, func() {
		s.progress.To(1, cfg.ProgressDuration, utils.EaseOutCubic)
	})
	s.scope.After(svc.Scheduler, cfg.HideAfter, func() {
		s.hiding = true
		s.visible.To(0, cfg.HideFade, utils.EaseInOutQuad)
	})
	s.scope.After(svc.Scheduler, cfg.HideAfter+cfg.HideFade, s.finish)

	s.scope.Add(svc.Events.OnResize(func(e game.ResizeEvent) {
		s.width, s.height = e.Width, e.Height
	}))

	log.Printf("[FallbackLoadingScene] Started (hide after %.1fs)", cfg.HideAfter)
	return s
}

func (s *FallbackLoadingScene) finish() {
	if s.finished {
		return
	}
	s.finished = true
	s.svc.navigate(SceneMain)
}

// Update 推进淡入、进度与淡出
func (s *FallbackLoadingScene) Update(deltaTime float64) {
	for _, w := range s.words {
		w.Update(deltaTime)
	}
	s.progress.Update(deltaTime)
	s.visible.Update(deltaTime)
	s.bar.Snap(s.progress.Value())
}

// Draw 绘制标志与进度条
func (s *FallbackLoadingScene) Draw(screen *ebiten.Image) {
	screen.Fill(sceneBackground)
	visible := s.visible.Value()
	if visible <= 0 {
		return
	}

	w, h := s.width, s.height
	scale := loadingLogoScale
	total := 0.0
	for _, seg := range logoSegments {
		total += textWidth(seg.Text, scale)
	}
	left := w/2 - total/2
	for i, seg := range logoSegments {
		sw := textWidth(seg.Text, scale)
		alpha := s.words[i].Value()
		rise := s.cfg.WordRise * (1 - alpha)
		drawText(screen, seg.Text, left+sw/2, h*0.45+rise, scale, seg.Color.RGB, alpha*visible)
		left += sw
	}

	barW := math.Min(w*loadingBarWidth, loadingBarMaxW)
	s.bar.Draw(screen, (w-barW)/2, h*0.55, barW, loadingBarHeight, visible)
}

// Progress 当前进度条位置
func (s *FallbackLoadingScene) Progress() float64 {
	return s.progress.Value()
}

// WordAlpha 第 i 个词的不透明度
func (s *FallbackLoadingScene) WordAlpha(i int) float64 {
	return s.words[i].Value()
}

// Hiding 是否已开始淡出
func (s *FallbackLoadingScene) Hiding() bool {
	return s.hiding
}

// Dispose 取消所有定时器
func (s *FallbackLoadingScene) Dispose() {
	s.scope.Dispose()
}
