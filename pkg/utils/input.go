// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/afraica/pkg/game"
)

// IsJustTouchedOrClicked 检查是否刚刚发生点击或触摸
// 返回是否点击以及点击位置
func IsJustTouchedOrClicked() (bool, int, int) {
	// 检查触摸
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}

	// 检查鼠标
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}

	return false, 0, 0
}

// GetPointerState 获取指针的完整状态
// 返回：是否按下、X坐标、Y坐标、是否有触摸
func GetPointerState() (pressed bool, x, y int, touching bool) {
	// 检查触摸
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y = ebiten.TouchPosition(touchIDs[0])
		return true, x, y, true
	}

	// 检查鼠标
	x, y = ebiten.CursorPosition()
	pressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	return pressed, x, y, false
}

// PointerSample 一次指针采样
type PointerSample struct {
	X, Y    float64
	Pressed bool
	// Inside 指针是否在窗口内
	Inside bool
}

// PointerSource 指针采样来源
type PointerSource interface {
	Sample() PointerSample
}

// EbitenPointerSource 从 Ebitengine 采样鼠标/触摸
//
// 光标位于 [0,Width)x[0,Height) 之外时视为离开窗口；
// 触摸抬起后也视为离开，以便球体的拖拽和视差复位。
type EbitenPointerSource struct {
	Width, Height float64
}

// Sample 实现 PointerSource
func (s *EbitenPointerSource) Sample() PointerSample {
	pressed, x, y, touching := GetPointerState()
	fx, fy := float64(x), float64(y)
	inside := fx >= 0 && fy >= 0 && fx < s.Width && fy < s.Height
	if IsMobile() && !touching {
		inside = false
	}
	return PointerSample{X: fx, Y: fy, Pressed: pressed, Inside: inside}
}

// PointerTracker 比较相邻两帧的采样，转换为离散的指针事件
type PointerTracker struct {
	source PointerSource
	last   PointerSample
}

// NewPointerTracker 创建指针跟踪器
func NewPointerTracker(source PointerSource) *PointerTracker {
	return &PointerTracker{source: source}
}

// Poll 采样一次并向 bus 发布变化
//
// 发布顺序：Move（位置变化或重新进入）→ Down / Up；离开窗口时只发布 Leave。
func (t *PointerTracker) Poll(bus *game.EventBus) {
	s := t.source.Sample()
	prev := t.last
	t.last = s

	if !s.Inside {
		if prev.Inside {
			bus.PublishPointer(game.PointerEvent{Kind: game.PointerLeave, X: prev.X, Y: prev.Y})
		}
		t.last.Pressed = false
		return
	}

	if !prev.Inside || s.X != prev.X || s.Y != prev.Y {
		bus.PublishPointer(game.PointerEvent{Kind: game.PointerMove, X: s.X, Y: s.Y})
	}
	switch {
	case s.Pressed && !prev.Pressed:
		bus.PublishPointer(game.PointerEvent{Kind: game.PointerDown, X: s.X, Y: s.Y})
	case !s.Pressed && prev.Pressed:
		bus.PublishPointer(game.PointerEvent{Kind: game.PointerUp, X: s.X, Y: s.Y})
	}
}
