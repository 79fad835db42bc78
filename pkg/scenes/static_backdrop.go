package scenes

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/afraica/pkg/config"
	"github.com/decker502/afraica/pkg/game"
)

// StaticBackdrop 粒子球无法初始化时的静态画面
//
// 显示 "afrAIca / Loading..."，经过完整序列时长后仍然标记已看过并跳转到 next。
// next 为空时停留在本画面。
type StaticBackdrop struct {
	svc   *Services
	next  string
	image *ebiten.Image
	scope *game.Scope

	width, height float64
	redirected    bool
}

// NewStaticBackdrop 创建静态画面
//
// 参数：
//   - next: 超时后跳转的场景名，空字符串表示不跳转
//   - cause: 导致降级的错误，仅用于日志
func NewStaticBackdrop(svc *Services, width, height float64, next string, cause error) *StaticBackdrop {
	log.Printf("[StaticBackdrop] Showing static view: %v", cause)
	s := &StaticBackdrop{
		svc:    svc,
		next:   next,
		scope:  game.NewScope(),
		width:  width,
		height: height,
	}

	if svc.Resources != nil {
		img, err := svc.Resources.LoadImage(config.BackdropImagePath)
		if err != nil {
			log.Printf("[StaticBackdrop] Warning: backdrop image unavailable, using solid background: %v", err)
		} else {
			s.image = img
		}
	}

	if next != "" {
		s.scope.After(svc.Scheduler, svc.Sequence.TotalDuration, s.redirect)
	}
	s.scope.Add(svc.Events.OnResize(func(e game.ResizeEvent) {
		s.width, s.height = e.Width, e.Height
	}))
	return s
}

func (s *StaticBackdrop) redirect() {
	if s.redirected {
		return
	}
	s.redirected = true
	if s.svc.Intro != nil {
		if err := s.svc.Intro.MarkSeen(); err != nil {
			log.Printf("[StaticBackdrop] Warning: failed to persist intro flag: %v", err)
		}
	}
	s.svc.navigate(s.next)
}

// Redirected 是否已经触发跳转
func (s *StaticBackdrop) Redirected() bool {
	return s.redirected
}

func (s *StaticBackdrop) Update(deltaTime float64) {}

// Draw 绘制背景图（或纯色）与文字
func (s *StaticBackdrop) Draw(screen *ebiten.Image) {
	screen.Fill(sceneBackground)
	if s.image != nil {
		b := s.image.Bounds()
		sx := s.width / float64(b.Dx())
		sy := s.height / float64(b.Dy())
		scale := max(sx, sy)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(s.width/2, s.height/2)
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(s.image, op)
	}

	drawSegments(screen, logoSegments, s.width/2, s.height*0.45, loadingLogoScale, 1, -1, 0)
	if s.next != "" {
		drawText(screen, "Loading...", s.width/2, s.height*0.55, 2, colorMuted, 1)
	}
}

// Dispose 取消跳转定时器与订阅
func (s *StaticBackdrop) Dispose() {
	s.scope.Dispose()
}
