package systems

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/afraica/pkg/components"
	"github.com/decker502/afraica/pkg/config"
)

const (
	// hologramRadius / hologramAlpha 全息叠加相对主粒子的尺寸与不透明度
	hologramRadius = 0.8
	hologramAlpha  = 0.3

	// glowAlpha 辉光相对粒子的不透明度
	glowAlpha = 0.15
)

// DepthSort 按深度升序（由远到近）稳定排序，后绘制的粒子遮挡先绘制的
func DepthSort(particles []components.BallParticle) {
	sort.SliceStable(particles, func(i, j int) bool {
		return particles[i].Z < particles[j].Z
	})
}

// BallRenderSystem 绘制粒子球
//
// 粒子以预栅格化的圆点贴图绘制；亮色粒子（R 或 G 超过阈值）以及被强力喷发点亮的粒子
// 额外在辉光层上绘制径向渐变，辉光层以 BlendLighter 叠加到屏幕。
type BallRenderSystem struct {
	variant   *config.BallVariant
	glowLayer *ebiten.Image
}

// NewBallRenderSystem 创建粒子球渲染系统
func NewBallRenderSystem(v *config.BallVariant) *BallRenderSystem {
	return &BallRenderSystem{variant: v}
}

// NeedsGlow 粒子是否绘制辉光
func (s *BallRenderSystem) NeedsGlow(p *components.BallParticle) bool {
	return p.Glowing || p.Color.IsBright(s.variant.GlowThreshold)
}

// GlowRadius 粒子辉光的半径
func (s *BallRenderSystem) GlowRadius(p *components.BallParticle) float64 {
	blur := s.variant.GlowBlur
	if s.variant.GlowVariance {
		blur *= p.GlowIntensity
	}
	return p.Radius + blur
}

// Draw 绘制已按深度排序的粒子
//
// 参数：
//   - screen: 目标图像
//   - particles: 已排序的粒子
//   - ornaments: 全息叠加来源，可为 nil
func (s *BallRenderSystem) Draw(screen *ebiten.Image, particles []components.BallParticle, ornaments *OrnamentSystem) {
	dot, glow := sprites()
	s.ensureGlowLayer(screen)
	s.glowLayer.Clear()

	for i := range particles {
		p := &particles[i]
		if s.NeedsGlow(p) {
			drawSprite(s.glowLayer, glow, p.X, p.Y, s.GlowRadius(p), p.Color.R, p.Color.G, p.Color.B, p.Alpha*glowAlpha, ebiten.BlendSourceOver)
		}
	}
	screen.DrawImage(s.glowLayer, &ebiten.DrawImageOptions{Blend: ebiten.BlendLighter})

	holo := 0.0
	if ornaments != nil {
		holo = ornaments.HologramIntensity()
	}
	h := config.HologramColor

	for i := range particles {
		p := &particles[i]
		if holo > 0 && p.IsText {
			drawSprite(screen, dot, p.X+ornaments.HologramOffset(i), p.Y, p.Radius*hologramRadius,
				h.R, h.G, h.B, p.Alpha*holo*hologramAlpha, ebiten.BlendLighter)
		}
		drawSprite(screen, dot, p.X, p.Y, p.Radius, p.Color.R, p.Color.G, p.Color.B, p.Alpha, ebiten.BlendSourceOver)
	}
}

func (s *BallRenderSystem) ensureGlowLayer(screen *ebiten.Image) {
	b := screen.Bounds()
	if s.glowLayer != nil {
		lb := s.glowLayer.Bounds()
		if lb.Dx() == b.Dx() && lb.Dy() == b.Dy() {
			return
		}
		s.glowLayer.Deallocate()
	}
	s.glowLayer = ebiten.NewImage(b.Dx(), b.Dy())
}
