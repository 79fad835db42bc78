package systems

import (
	"github.com/charmbracelet/harmonica"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/decker502/afraica/pkg/config"
)

const (
	// progressSpringFrequency / progressSpringDamping 进度条显示宽度的弹簧参数
	// 临界阻尼，不会越过目标值
	progressSpringFrequency = 6.0
	progressSpringDamping   = 1.0

	// progressSettle 与目标差距小于该值时直接吸附
	progressSettle = 1e-4

	// progressGradientSlices 渐变填充的分段数
	progressGradientSlices = 48
)

var (
	progressFrom  = colorful.Color{R: float64(config.OrnamentRed.R) / 255, G: float64(config.OrnamentRed.G) / 255, B: float64(config.OrnamentRed.B) / 255}
	progressTo    = colorful.Color{R: float64(config.OrnamentBlue.R) / 255, G: float64(config.OrnamentBlue.G) / 255, B: float64(config.OrnamentBlue.B) / 255}
	progressTrack = config.RGB{R: 255, G: 255, B: 255}
)

// ProgressBarSystem 加载进度条
//
// 目标进度由编排器按轮询间隔写入，显示宽度每帧沿弹簧追赶目标，
// 因此 50ms 一次的阶梯式更新在屏幕上是连续的。
type ProgressBarSystem struct {
	spring harmonica.Spring

	target    float64
	displayed float64
	velocity  float64
}

// NewProgressBarSystem 创建进度条，fps 为更新频率
func NewProgressBarSystem(fps int) *ProgressBarSystem {
	if fps <= 0 {
		fps = 60
	}
	return &ProgressBarSystem{
		spring: harmonica.NewSpring(harmonica.FPS(fps), progressSpringFrequency, progressSpringDamping),
	}
}

// SetTarget 设置目标进度，取值裁剪到 [0, 1]
func (s *ProgressBarSystem) SetTarget(p float64) {
	s.target = clamp01(p)
}

// Snap 立即把显示进度设为 p（不经过弹簧）
func (s *ProgressBarSystem) Snap(p float64) {
	s.target = clamp01(p)
	s.displayed = s.target
	s.velocity = 0
}

// Target 目标进度
func (s *ProgressBarSystem) Target() float64 {
	return s.target
}

// Displayed 当前显示进度
func (s *ProgressBarSystem) Displayed() float64 {
	return s.displayed
}

// Update 推进一帧
func (s *ProgressBarSystem) Update() {
	s.displayed, s.velocity = s.spring.Update(s.displayed, s.velocity, s.target)
	if d := s.target - s.displayed; d < progressSettle && d > -progressSettle {
		s.displayed = s.target
		s.velocity = 0
	}
	s.displayed = clamp01(s.displayed)
}

// Draw 在 (x, y) 处绘制宽 w 高 h 的进度条
//
// 轨道为半透明白色，填充部分为红到蓝的渐变（Lab 空间插值）。
func (s *ProgressBarSystem) Draw(screen *ebiten.Image, x, y, w, h, opacity float64) {
	if opacity <= 0 || w <= 0 {
		return
	}
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), rgba(progressTrack, 0.1*opacity), false)

	filled := w * s.displayed
	if filled <= 0 {
		return
	}
	slice := w / progressGradientSlices
	for i := 0; i < progressGradientSlices; i++ {
		sx := float64(i) * slice
		if sx >= filled {
			break
		}
		sw := slice
		if sx+sw > filled {
			sw = filled - sx
		}
		r, g, b := progressFrom.BlendLab(progressTo, (sx+sw/2)/w).Clamped().RGB255()
		vector.DrawFilledRect(screen, float32(x+sx), float32(y), float32(sw), float32(h), rgba(config.RGB{R: r, G: g, B: b}, opacity), false)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
