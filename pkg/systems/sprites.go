package systems

import (
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	// dotSpriteSize 粒子圆点贴图边长（像素），绘制时按半径缩放
	dotSpriteSize = 32
	// glowSpriteSize 辉光贴图边长
	glowSpriteSize = 64
)

// NewDotImage 生成白色实心圆贴图，边缘一像素抗锯齿
func NewDotImage(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	r := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := math.Hypot(float64(x)+0.5-r, float64(y)+0.5-r)
			a := math.Max(0, math.Min(1, r-d))
			v := uint8(a * 255)
			img.SetRGBA(x, y, color.RGBA{v, v, v, v})
		}
	}
	return img
}

// NewGlowImage 生成白色径向渐变贴图，中心不透明，边缘完全透明
//
// 衰减曲线为 (1-d)^2，近似 canvas 的 shadowBlur。
func NewGlowImage(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	r := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := math.Hypot(float64(x)+0.5-r, float64(y)+0.5-r) / r
			a := 0.0
			if d < 1 {
				a = (1 - d) * (1 - d)
			}
			v := uint8(a * 255)
			img.SetRGBA(x, y, color.RGBA{v, v, v, v})
		}
	}
	return img
}

var (
	spriteOnce sync.Once
	dotSprite  *ebiten.Image
	glowSprite *ebiten.Image
)

// sprites 首次绘制时创建共享贴图
func sprites() (dot, glow *ebiten.Image) {
	spriteOnce.Do(func() {
		dotSprite = ebiten.NewImageFromImage(NewDotImage(dotSpriteSize))
		glowSprite = ebiten.NewImageFromImage(NewGlowImage(glowSpriteSize))
	})
	return dotSprite, glowSprite
}

// drawSprite 以 (x, y) 为中心、radius 为半径绘制贴图
//
// 颜色以预乘 alpha 形式写入 ColorScale。
func drawSprite(dst, sprite *ebiten.Image, x, y, radius float64, r, g, b uint8, alpha float64, blend ebiten.Blend) {
	if radius <= 0 || alpha <= 0 {
		return
	}
	size := float64(sprite.Bounds().Dx())
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(radius*2/size, radius*2/size)
	op.GeoM.Translate(x-radius, y-radius)
	a := float32(math.Min(alpha, 1))
	op.ColorScale.Scale(float32(r)/255*a, float32(g)/255*a, float32(b)/255*a, a)
	op.Blend = blend
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(sprite, op)
}
