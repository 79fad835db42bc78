package game

import (
	"reflect"
	"testing"
)

const tick = 1.0 / 60

func TestSchedulerAfterOrder(t *testing.T) {
	s := NewScheduler()
	var got []string

	s.After(0.2, func() { got = append(got, "c") })
	s.After(0.1, func() { got = append(got, "a") })
	s.After(0.1, func() { got = append(got, "b") })

	s.Tick(0.05)
	if len(got) != 0 {
		t.Fatalf("nothing should fire before 0.1s, got %v", got)
	}
	s.Tick(0.2)
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("fire order = %v, want %v", got, want)
	}
	if s.Pending() != 0 {
		t.Errorf("one-shot timers should be removed, %d pending", s.Pending())
	}
}

func TestSchedulerEveryAndCancel(t *testing.T) {
	s := NewScheduler()
	count := 0
	id := s.Every(0.05, func() { count++ })

	for i := 0; i < 20; i++ {
		s.Tick(0.05)
	}
	// 1 秒内 50ms 间隔触发 20 次
	if count != 20 {
		t.Errorf("expected 20 ticks in one second, got %d", count)
	}

	if !s.Cancel(id) {
		t.Fatal("Cancel should find the timer")
	}
	s.Tick(1)
	if count != 20 {
		t.Errorf("cancelled timer fired again, count=%d", count)
	}
	if s.Cancel(id) {
		t.Error("second Cancel should report not found")
	}
}

func TestSchedulerCancelInsideCallback(t *testing.T) {
	s := NewScheduler()
	fired := 0
	var id TimerID
	id = s.Every(0.01, func() {
		fired++
		s.Cancel(id)
	})
	s.Tick(0.1)
	if fired != 1 {
		t.Errorf("self-cancelling timer fired %d times", fired)
	}
}

func TestSchedulerFramesAreOneShot(t *testing.T) {
	s := NewScheduler()
	frames := 0
	var loop func(dt float64)
	loop = func(dt float64) {
		frames++
		if frames < 3 {
			s.RequestFrame(loop)
		}
	}
	s.RequestFrame(loop)

	for i := 0; i < 10; i++ {
		s.Tick(tick)
	}
	if frames != 3 {
		t.Errorf("expected 3 frames, got %d", frames)
	}
	if s.ActiveFrames() != 0 {
		t.Errorf("expected no active frames, got %d", s.ActiveFrames())
	}
}

func TestSchedulerCancelFrame(t *testing.T) {
	s := NewScheduler()
	called := false
	id := s.RequestFrame(func(float64) { called = true })
	if !s.CancelFrame(id) {
		t.Fatal("CancelFrame should find the request")
	}
	s.Tick(tick)
	if called {
		t.Error("cancelled frame callback ran")
	}
}

func TestSchedulerCancelFrameDuringTick(t *testing.T) {
	s := NewScheduler()
	var second FrameID
	secondRan := false
	s.RequestFrame(func(float64) {
		if !s.CancelFrame(second) {
			t.Error("CancelFrame should find a request from the same batch")
		}
	})
	second = s.RequestFrame(func(float64) { secondRan = true })

	s.Tick(tick)
	if secondRan {
		t.Error("frame cancelled earlier in the same tick still ran")
	}
	if s.CancelFrame(second) {
		t.Error("CancelFrame after the tick should report not found")
	}
}

func TestSchedulerNow(t *testing.T) {
	s := NewScheduler()
	s.Tick(0.5)
	s.Tick(-1) // 负值忽略
	s.Tick(0.25)
	if s.Now() != 0.75 {
		t.Errorf("Now() = %v, want 0.75", s.Now())
	}
}
