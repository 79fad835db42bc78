package systems

import (
	"errors"
	"math"
	"testing"

	"github.com/decker502/afraica/pkg/config"
	"github.com/decker502/afraica/pkg/game"
)

type countingMarker struct {
	calls int
	err   error
}

func (m *countingMarker) MarkSeen() error {
	m.calls++
	return m.err
}

const sequenceStep = 0.01

// advance 以 10ms 步长推进调度器
func advance(sched *game.Scheduler, seconds float64) {
	n := int(math.Round(seconds / sequenceStep))
	for i := 0; i < n; i++ {
		sched.Tick(sequenceStep)
	}
}

func TestLoadingSequence_PhasesNeverStartEarly(t *testing.T) {
	cfg := config.DefaultLoadingSequence()
	sched := game.NewScheduler()
	seq := NewLoadingSequenceSystem(cfg, sched, nil)

	var entered []float64
	for _, p := range cfg.Phases {
		seq.RegisterAction(p.Actions[0], func() {
			entered = append(entered, sched.Now())
		})
	}

	seq.Start()
	advance(sched, 14)

	if len(entered) != len(cfg.Phases) {
		t.Fatalf("entered %d phases, want %d", len(entered), len(cfg.Phases))
	}
	for k, at := range entered {
		start := cfg.PhaseStart(k)
		if at < start-1e-9 {
			t.Errorf("phase %d entered at %.3fs, before its start %.3fs", k, at, start)
		}
		if at > start+sequenceStep+1e-9 {
			t.Errorf("phase %d entered at %.3fs, more than one tick after %.3fs", k, at, start)
		}
	}
	if seq.Phase() != len(cfg.Phases)-1 {
		t.Errorf("Phase() = %d, want %d", seq.Phase(), len(cfg.Phases)-1)
	}
}

func TestLoadingSequence_PhaseEntryForcesMessage(t *testing.T) {
	cfg := config.DefaultLoadingSequence()
	sched := game.NewScheduler()
	seq := NewLoadingSequenceSystem(cfg, sched, nil)
	seq.Start()

	if idx, alpha := seq.Messages().Current(); idx != 0 || alpha != 1 {
		t.Fatalf("initial message = (%d, %f), want (0, 1)", idx, alpha)
	}

	advance(sched, cfg.PhaseStart(2)+sequenceStep)
	if idx, _ := seq.Messages().Current(); idx != cfg.Phases[2].Message {
		t.Errorf("message after entering phase 2 = %d, want %d", idx, cfg.Phases[2].Message)
	}
}

func TestLoadingSequence_CompletesAndNavigates(t *testing.T) {
	cfg := config.DefaultLoadingSequence()
	sched := game.NewScheduler()
	marker := &countingMarker{}
	seq := NewLoadingSequenceSystem(cfg, sched, marker)

	completed := 0
	var skipped bool
	seq.OnComplete(func(s bool) {
		completed++
		skipped = s
	})
	seq.Start()

	advance(sched, cfg.TotalDuration-0.1)
	if seq.State() != SequenceRunning {
		t.Fatalf("state before total duration = %v, want running", seq.State())
	}

	advance(sched, 0.2)
	if seq.State() != SequenceTransitioning {
		t.Fatalf("state after total duration = %v, want transitioning", seq.State())
	}
	if seq.Progress().Target() != 1 {
		t.Errorf("progress target = %f, want 1", seq.Progress().Target())
	}

	advance(sched, cfg.FadeOut+0.1)
	if seq.State() != SequenceDone {
		t.Fatalf("state after fade = %v, want done", seq.State())
	}
	if completed != 1 || skipped {
		t.Errorf("OnComplete called %d times (skipped=%v), want once unskipped", completed, skipped)
	}
	// completeLoading 动作与过渡各请求一次，只写入一次
	if marker.calls != 1 {
		t.Errorf("MarkSeen called %d times, want 1", marker.calls)
	}
	if sched.Pending() != 0 || sched.ActiveFrames() != 0 {
		t.Errorf("leaked timers=%d frames=%d", sched.Pending(), sched.ActiveFrames())
	}
}

func TestLoadingSequence_ProgressPoll(t *testing.T) {
	cfg := config.DefaultLoadingSequence()
	sched := game.NewScheduler()
	seq := NewLoadingSequenceSystem(cfg, sched, nil)
	seq.Start()

	advance(sched, 3.0)
	want := 3.0 / cfg.TotalDuration
	if got := seq.Progress().Target(); math.Abs(got-want) > cfg.PollInterval/cfg.TotalDuration+1e-9 {
		t.Errorf("progress target at 3s = %f, want ~%f", got, want)
	}
}

func TestLoadingSequence_SkipCancelsEverything(t *testing.T) {
	cfg := config.DefaultLoadingSequence()
	sched := game.NewScheduler()
	marker := &countingMarker{}
	seq := NewLoadingSequenceSystem(cfg, sched, marker)

	entries := 0
	for _, p := range cfg.Phases {
		seq.RegisterAction(p.Actions[0], func() { entries++ })
	}
	var skipped bool
	seq.OnComplete(func(s bool) { skipped = s })

	seq.Start()
	advance(sched, 2.0)
	target := seq.Progress().Target()

	if !seq.Skip() {
		t.Fatal("Skip() should succeed while running")
	}
	// 只剩下淡出定时器
	if sched.Pending() != 1 {
		t.Errorf("pending timers after skip = %d, want 1", sched.Pending())
	}
	if sched.ActiveFrames() != 0 {
		t.Errorf("frame handles after skip = %d, want 0", sched.ActiveFrames())
	}
	if marker.calls != 1 {
		t.Errorf("MarkSeen called %d times at skip, want 1", marker.calls)
	}
	if seq.Skip() {
		t.Error("second Skip() should be ignored")
	}

	advance(sched, cfg.FadeOutSkipped+0.1)
	if seq.State() != SequenceDone || !skipped {
		t.Errorf("state = %v skipped = %v, want done via skip", seq.State(), skipped)
	}

	advance(sched, cfg.TotalDuration)
	if entries != 1 {
		t.Errorf("phases entered after skip: total %d, want 1", entries)
	}
	if seq.Progress().Target() != target {
		t.Errorf("progress changed after skip: %f -> %f", target, seq.Progress().Target())
	}
	if marker.calls != 1 {
		t.Errorf("MarkSeen called %d times, want exactly 1", marker.calls)
	}
	if sched.Pending() != 0 || sched.ActiveFrames() != 0 {
		t.Errorf("leaked timers=%d frames=%d", sched.Pending(), sched.ActiveFrames())
	}
}

func TestLoadingSequence_TransitionFade(t *testing.T) {
	tests := []struct {
		name      string
		skip      bool
		duration  float64
		wantScale float64
	}{
		{"自然结束", false, 1.2, transitionScale},
		{"跳过", true, 0.6, transitionScaleSkipped},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultLoadingSequence()
			sched := game.NewScheduler()
			seq := NewLoadingSequenceSystem(cfg, sched, nil)
			seq.Start()
			if tt.skip {
				seq.Skip()
			} else {
				advance(sched, cfg.TotalDuration+2*cfg.PollInterval)
			}
			if seq.Opacity() != 1 {
				t.Fatalf("opacity at transition start = %f, want 1", seq.Opacity())
			}

			seq.Update(tt.duration / 2)
			if o := seq.Opacity(); math.Abs(o-0.5) > 1e-9 {
				t.Errorf("opacity at half fade = %f, want 0.5", o)
			}
			seq.Update(tt.duration / 2)
			if o := seq.Opacity(); o > 1e-9 {
				t.Errorf("opacity at end of fade = %f, want 0", o)
			}
			if s := seq.Scale(); math.Abs(s-tt.wantScale) > 1e-9 {
				t.Errorf("scale at end of fade = %f, want %f", s, tt.wantScale)
			}
		})
	}
}

func TestLoadingSequence_UnknownActionAndMarkerError(t *testing.T) {
	cfg := config.DefaultLoadingSequence()
	cfg.Phases[0].Actions = []string{"noSuchAction"}
	sched := game.NewScheduler()
	marker := &countingMarker{err: errors.New("disk full")}
	seq := NewLoadingSequenceSystem(cfg, sched, marker)

	seq.Start()
	if seq.Phase() != 0 {
		t.Fatalf("Phase() = %d, want 0", seq.Phase())
	}
	seq.Skip()
	advance(sched, 1)
	if seq.State() != SequenceDone {
		t.Errorf("marker failure should not block the transition, state = %v", seq.State())
	}
}

func TestMessageCycler(t *testing.T) {
	m := NewMessageCycler(3, 0.4)

	m.Next()
	m.Update(0.2)
	if idx, alpha := m.Current(); idx != 0 || math.Abs(alpha-0.5) > 1e-9 {
		t.Errorf("mid fade-out = (%d, %f), want (0, 0.5)", idx, alpha)
	}
	m.Update(0.3)
	if idx, alpha := m.Current(); idx != 1 || math.Abs(alpha-0.25) > 1e-9 {
		t.Errorf("mid fade-in = (%d, %f), want (1, 0.25)", idx, alpha)
	}
	m.Update(0.4)
	if idx, alpha := m.Current(); idx != 1 || alpha != 1 {
		t.Errorf("after crossfade = (%d, %f), want (1, 1)", idx, alpha)
	}

	m.Next()
	m.Next()
	m.Update(0.5)
	m.Update(0.5)
	if idx, _ := m.Current(); idx != 2 {
		t.Errorf("restarting a fade keeps the target relative to the current message, got %d", idx)
	}

	m.Next()
	m.Force(1)
	if idx, alpha := m.Current(); idx != 1 || alpha != 1 {
		t.Errorf("Force = (%d, %f), want (1, 1)", idx, alpha)
	}

	m.Force(7)
	if idx, _ := m.Current(); idx != 1 {
		t.Errorf("out-of-range Force should be ignored, got %d", idx)
	}
}
