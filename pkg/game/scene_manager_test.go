package game

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// MockScene 记录 Update/Draw 调用
type MockScene struct {
	updates   int
	draws     int
	deltaTime float64
}

func (m *MockScene) Update(deltaTime float64) {
	m.updates++
	m.deltaTime = deltaTime
}

func (m *MockScene) Draw(screen *ebiten.Image) {
	m.draws++
}

// TestSceneManagerForwardsToCurrent 只有当前场景收到 Update/Draw
func TestSceneManagerForwardsToCurrent(t *testing.T) {
	sm := NewSceneManager()
	screen := ebiten.NewImage(64, 64)

	// 没有场景时不应 panic
	sm.Update(0.016)
	sm.Draw(screen)
	if sm.GetCurrentScene() != nil {
		t.Fatal("new manager should have no scene")
	}

	first, second := &MockScene{}, &MockScene{}
	sm.SwitchTo(first)
	sm.Update(0.016)
	sm.SwitchTo(second)
	sm.Update(0.032)
	sm.Draw(screen)

	if first.updates != 1 || first.draws != 0 {
		t.Errorf("first scene: updates=%d draws=%d, want 1/0", first.updates, first.draws)
	}
	if second.updates != 1 || second.draws != 1 || second.deltaTime != 0.032 {
		t.Errorf("second scene: updates=%d draws=%d dt=%v", second.updates, second.draws, second.deltaTime)
	}
}

// TestSceneManagerNavigateFactoryError 工厂失败时保留当前场景
func TestSceneManagerNavigateFactoryError(t *testing.T) {
	sm := NewSceneManager()
	current := &disposableScene{}
	sm.SwitchTo(current)

	boom := errors.New("boom")
	sm.SetSceneFactory(func(name string) (Scene, error) { return nil, boom })
	if err := sm.Navigate("main"); !errors.Is(err, boom) {
		t.Fatalf("Navigate error = %v, want boom", err)
	}
	if sm.GetCurrentScene() != current || current.disposed != 0 {
		t.Error("failed navigation must keep the current scene alive")
	}
}

// disposableScene 记录是否被释放
type disposableScene struct {
	MockScene
	disposed int
}

func (d *disposableScene) Dispose() { d.disposed++ }

// TestSceneManagerSwitchDisposesPrevious 切换场景时释放旧场景
func TestSceneManagerSwitchDisposesPrevious(t *testing.T) {
	sm := NewSceneManager()
	old := &disposableScene{}
	sm.SwitchTo(old)

	// 切换到同一场景不释放
	sm.SwitchTo(old)
	if old.disposed != 0 {
		t.Fatal("switching to the same scene should not dispose it")
	}

	sm.SwitchTo(&MockScene{})
	if old.disposed != 1 {
		t.Errorf("expected previous scene disposed once, got %d", old.disposed)
	}
}

// TestSceneManagerNavigate 通过工厂切换场景
func TestSceneManagerNavigate(t *testing.T) {
	sm := NewSceneManager()
	if err := sm.Navigate("main"); err != ErrNoSceneFactory {
		t.Fatalf("expected ErrNoSceneFactory, got %v", err)
	}

	target := &MockScene{}
	sm.SetSceneFactory(func(name string) (Scene, error) {
		if name != "main" {
			t.Errorf("unexpected scene name %q", name)
		}
		return target, nil
	})
	if err := sm.Navigate("main"); err != nil {
		t.Fatalf("Navigate failed: %v", err)
	}
	if sm.GetCurrentScene() != target {
		t.Error("Navigate did not switch to the created scene")
	}
}
