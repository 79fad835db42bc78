package utils

import (
	"math"
	"testing"
)

// TestTween 测试一次性补间与往返补间
func TestTween(t *testing.T) {
	tests := []struct {
		name     string
		tween    *Tween
		elapsed  float64
		expected float64
		done     bool
	}{
		{"线性中点", NewTween(0, 10, 2, nil), 1, 5, false},
		{"超出时长停在终点", NewTween(0, 10, 2, nil), 5, 10, true},
		{"零时长直接到终点", NewTween(3, 7, 0, nil), 0, 7, true},
		{"往返第二程", NewYoyo(0, 1, 1, EaseLinear), 1.25, 0.75, false},
		{"往返回到起点", NewYoyo(0, 1, 1, EaseLinear), 2, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.tween.Update(tt.elapsed)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Update(%v) = %v, 期望 %v", tt.elapsed, got, tt.expected)
			}
			if tt.tween.Done() != tt.done {
				t.Errorf("Done() = %v, 期望 %v", tt.tween.Done(), tt.done)
			}
		})
	}
}

// TestAnimated 测试可重定向的动画值
func TestAnimated(t *testing.T) {
	t.Run("补间结束后保持终值", func(t *testing.T) {
		a := NewAnimated(0)
		a.To(1, 1, EaseLinear)
		a.Update(0.5)
		if math.Abs(a.Value()-0.5) > 1e-9 {
			t.Errorf("中点 = %v, 期望 0.5", a.Value())
		}
		a.Update(1)
		if a.Value() != 1 || a.Animating() {
			t.Errorf("结束后 = %v (animating=%v), 期望 1", a.Value(), a.Animating())
		}
		a.Update(1)
		if a.Value() != 1 {
			t.Errorf("无补间时值不应变化, 得到 %v", a.Value())
		}
	})

	t.Run("延迟开始", func(t *testing.T) {
		a := NewAnimated(0)
		a.FromTo(0, 1, 1, EaseLinear)
		a.After(0.3)
		a.Update(0.2)
		if a.Value() != 0 {
			t.Errorf("延迟期间 = %v, 期望 0", a.Value())
		}
		a.Update(0.6)
		if math.Abs(a.Value()-0.5) > 1e-9 {
			t.Errorf("延迟后 0.5s = %v, 期望 0.5", a.Value())
		}
	})

	t.Run("有限次往返", func(t *testing.T) {
		a := NewAnimated(1)
		a.Yoyo(1.05, 1, 2, EaseLinear)
		a.Update(1)
		if math.Abs(a.Value()-1.05) > 1e-9 {
			t.Errorf("第一程结束 = %v, 期望 1.05", a.Value())
		}
		a.Update(1.5)
		if a.Value() != 1 || a.Animating() {
			t.Errorf("往返结束 = %v (animating=%v), 期望 1", a.Value(), a.Animating())
		}
	})

	t.Run("Set 取消补间", func(t *testing.T) {
		a := NewAnimated(0)
		a.To(1, 1, nil)
		a.Set(0.3)
		a.Update(1)
		if a.Value() != 0.3 {
			t.Errorf("Set 后 = %v, 期望 0.3", a.Value())
		}
	})
}
