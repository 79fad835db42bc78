// Package termview 把粒子球模拟渲染到终端
//
// 每个字符格代表视口中的一块区域，格内最靠近观察者的粒子决定字符与颜色：
// 粒子越亮字符越"重"。最后一行保留给状态栏。
package termview

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/decker502/afraica/pkg/components"
)

// shades 按亮度从低到高排列
var shades = []rune(" .:-=+*#%@")

// Renderer 终端渲染器
type Renderer struct {
	screen tcell.Screen
	status tcell.Style
}

// NewRenderer 创建渲染器，screen 需已 Init
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		status: tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite),
	}
}

// Shade 返回 alpha 对应的字符
func Shade(alpha float64) rune {
	if alpha <= 0 {
		return shades[0]
	}
	i := int(alpha * float64(len(shades)-1))
	if i >= len(shades) {
		i = len(shades) - 1
	}
	if i < 1 {
		i = 1
	}
	return shades[i]
}

// Cell 把视口坐标映射到字符格，超出范围时 ok 为 false
func Cell(x, y, width, height float64, cols, rows int) (col, row int, ok bool) {
	if width <= 0 || height <= 0 || x < 0 || y < 0 || x >= width || y >= height {
		return 0, 0, false
	}
	return int(x / width * float64(cols)), int(y / height * float64(rows)), true
}

// Draw 绘制一帧
//
// 参数：
//   - particles: 已按深度升序排序的粒子
//   - width, height: 模拟视口尺寸
//   - status: 状态栏文字，超出宽度时截断
func (r *Renderer) Draw(particles []components.BallParticle, width, height float64, status string) {
	r.screen.Clear()
	cols, rows := r.screen.Size()
	if cols <= 0 || rows <= 1 {
		r.screen.Show()
		return
	}
	field := rows - 1

	for i := range particles {
		p := &particles[i]
		col, row, ok := Cell(p.X, p.Y, width, height, cols, field)
		if !ok {
			continue
		}
		c := tcell.NewRGBColor(int32(p.Color.R), int32(p.Color.G), int32(p.Color.B))
		r.screen.SetContent(col, row, Shade(p.Alpha), nil, tcell.StyleDefault.Foreground(c))
	}

	r.drawStatus(cols, field, status)
	r.screen.Show()
}

// drawStatus 在 row 行居中绘制状态栏，按显示宽度处理宽字符
func (r *Renderer) drawStatus(cols, row int, status string) {
	for x := 0; x < cols; x++ {
		r.screen.SetContent(x, row, ' ', nil, r.status)
	}
	text := runewidth.Truncate(status, cols, "…")
	x := (cols - runewidth.StringWidth(text)) / 2
	for _, ch := range text {
		r.screen.SetContent(x, row, ch, nil, r.status)
		x += runewidth.RuneWidth(ch)
	}
}
