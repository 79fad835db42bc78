// Package textraster 将品牌标签渲染为离屏 RGBA 贴图，供粒子生成时按经纬度取色。
//
// 字形来自 basicfont.Face7x13，先以原生尺寸绘制，再用最近邻缩放放大，
// 保证 alpha 通道只有 0 和 255 两种取值，取色结果与平台无关。
package textraster

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/decker502/afraica/pkg/config"
)

var (
	// ErrEmptyLabel 标签没有可绘制的文字
	ErrEmptyLabel = errors.New("textraster: empty label")

	// ErrInvalidSize 贴图尺寸非正
	ErrInvalidSize = errors.New("textraster: invalid raster size")
)

// maxWidthRatio 放大后文字宽度占贴图宽度的上限
const maxWidthRatio = 0.95

// Raster 文字取色贴图
type Raster struct {
	img    *image.RGBA
	Width  int
	Height int
}

// Render 将分段标签居中绘制到 width×height 的贴图中
//
// 参数：
//   - segments: 按顺序排列的文字片段，每段有自己的颜色
//   - width, height: 贴图尺寸，通常为 config.TextRasterWidth / TextRasterHeight
//
// 返回：
//   - *Raster: 绘制结果
//   - error: 尺寸非法或标签为空
func Render(segments []config.TextSegment, width, height int) (*Raster, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}

	face := basicfont.Face7x13
	total := fixed.Int26_6(0)
	for _, seg := range segments {
		total += font.MeasureString(face, seg.Text)
	}
	nativeW := total.Ceil()
	if nativeW == 0 {
		return nil, ErrEmptyLabel
	}
	metrics := face.Metrics()
	nativeH := (metrics.Ascent + metrics.Descent).Ceil()

	// 原生尺寸绘制
	native := image.NewRGBA(image.Rect(0, 0, nativeW, nativeH))
	d := &font.Drawer{
		Dst:  native,
		Face: face,
		Dot:  fixed.P(0, metrics.Ascent.Ceil()),
	}
	for _, seg := range segments {
		d.Src = image.NewUniform(color.RGBA{R: seg.Color.R, G: seg.Color.G, B: seg.Color.B, A: 255})
		d.DrawString(seg.Text)
	}

	// 按高度比例放大，宽度超限时按宽度收缩
	scale := float64(height) * config.TextRasterFontScale / float64(nativeH)
	if maxW := float64(width) * maxWidthRatio; float64(nativeW)*scale > maxW {
		scale = maxW / float64(nativeW)
	}
	dstW := int(float64(nativeW) * scale)
	dstH := int(float64(nativeH) * scale)
	if dstW < 1 {
		dstW = 1
	}
	if dstH < 1 {
		dstH = 1
	}
	x0 := (width - dstW) / 2
	y0 := (height - dstH) / 2

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.NearestNeighbor.Scale(img, image.Rect(x0, y0, x0+dstW, y0+dstH), native, native.Bounds(), draw.Over, nil)

	return &Raster{img: img, Width: width, Height: height}, nil
}

// At 返回 (x, y) 处像素的红色通道与 alpha，坐标越界时夹取到边缘
func (r *Raster) At(x, y int) (red, alpha uint8) {
	x = clamp(x, 0, r.Width-1)
	y = clamp(y, 0, r.Height-1)
	c := r.img.RGBAAt(x, y)
	return c.R, c.A
}

// Image 返回底层贴图（只读使用）
func (r *Raster) Image() *image.RGBA {
	return r.img
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
