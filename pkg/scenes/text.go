package scenes

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/decker502/afraica/pkg/config"
)

// uiFace 场景文字使用的位图字体，按需缩放
var uiFace = text.NewGoXFace(basicfont.Face7x13)

var (
	colorWhite  = config.RGB{R: 255, G: 255, B: 255}
	colorCherry = config.RGB{R: 200, G: 16, B: 46}
	colorMuted  = config.RGB{R: 156, G: 163, B: 175}
)

// logoSegments "afrAIca" 标志，AI 为樱桃红
var logoSegments = []config.TextSegment{
	{Text: "afr", Color: config.HexColor{RGB: colorWhite}},
	{Text: "AI", Color: config.HexColor{RGB: colorCherry}},
	{Text: "ca", Color: config.HexColor{RGB: colorWhite}},
}

// textWidth 文字在 scale 倍缩放下的宽度
func textWidth(s string, scale float64) float64 {
	return text.Advance(s, uiFace) * scale
}

// drawText 以 (x, y) 为中心绘制一行文字
func drawText(screen *ebiten.Image, s string, x, y, scale float64, c config.RGB, alpha float64) {
	if alpha <= 0 || s == "" {
		return
	}
	h := uiFace.Metrics().HAscent + uiFace.Metrics().HDescent
	op := &text.DrawOptions{}
	op.GeoM.Translate(-text.Advance(s, uiFace)/2, -h/2)
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(rgbColor(c))
	op.ColorScale.ScaleAlpha(float32(alpha))
	op.Filter = ebiten.FilterLinear
	text.Draw(screen, s, uiFace, op)
}

// drawSegments 以 (x, y) 为中心绘制多色文字
//
// glow > 0 时在 highlight 段下方叠加一层放大的同色文字。
func drawSegments(screen *ebiten.Image, segments []config.TextSegment, x, y, scale, alpha float64, highlight int, glow float64) {
	total := 0.0
	for _, seg := range segments {
		total += textWidth(seg.Text, scale)
	}
	left := x - total/2
	for i, seg := range segments {
		w := textWidth(seg.Text, scale)
		if i == highlight && glow > 0 {
			drawText(screen, seg.Text, left+w/2, y, scale*1.08, seg.Color.RGB, alpha*glow*0.5)
		}
		drawText(screen, seg.Text, left+w/2, y, scale, seg.Color.RGB, alpha)
		left += w
	}
}

func rgbColor(c config.RGB) color.Color {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}
