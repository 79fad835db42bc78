package utils

import (
	"reflect"
	"testing"

	"github.com/decker502/afraica/pkg/game"
)

// scriptedSource 按顺序返回预设采样
type scriptedSource struct {
	samples []PointerSample
	i       int
}

func (s *scriptedSource) Sample() PointerSample {
	if s.i >= len(s.samples) {
		return s.samples[len(s.samples)-1]
	}
	v := s.samples[s.i]
	s.i++
	return v
}

func TestPointerTrackerEvents(t *testing.T) {
	src := &scriptedSource{samples: []PointerSample{
		{X: 10, Y: 10, Inside: true},                // 进入 -> Move
		{X: 10, Y: 10, Inside: true},                // 无变化
		{X: 10, Y: 10, Inside: true, Pressed: true}, // Down
		{X: 20, Y: 15, Inside: true, Pressed: true}, // Move
		{X: 20, Y: 15, Inside: true},                // Up
		{X: -5, Y: 15},                              // Leave
		{X: -6, Y: 15},                              // 仍在外面
	}}
	bus := game.NewEventBus()
	var kinds []game.PointerKind
	bus.OnPointer(func(e game.PointerEvent) { kinds = append(kinds, e.Kind) })

	tr := NewPointerTracker(src)
	for range src.samples {
		tr.Poll(bus)
	}

	want := []game.PointerKind{
		game.PointerMove,
		game.PointerDown,
		game.PointerMove,
		game.PointerUp,
		game.PointerLeave,
	}
	if !reflect.DeepEqual(kinds, want) {
		t.Errorf("events = %v, want %v", kinds, want)
	}
}

func TestPointerTrackerReenterWhilePressed(t *testing.T) {
	src := &scriptedSource{samples: []PointerSample{
		{X: 5, Y: 5, Inside: true, Pressed: true},
		{X: 900, Y: 5, Pressed: true},
		{X: 6, Y: 5, Inside: true, Pressed: true},
	}}
	bus := game.NewEventBus()
	var kinds []game.PointerKind
	bus.OnPointer(func(e game.PointerEvent) { kinds = append(kinds, e.Kind) })

	tr := NewPointerTracker(src)
	for range src.samples {
		tr.Poll(bus)
	}

	// 离开窗口会结束按压，重新进入时再次产生 Down
	want := []game.PointerKind{
		game.PointerMove, game.PointerDown,
		game.PointerLeave,
		game.PointerMove, game.PointerDown,
	}
	if !reflect.DeepEqual(kinds, want) {
		t.Errorf("events = %v, want %v", kinds, want)
	}
}
