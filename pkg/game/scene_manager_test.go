package game

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// MockScene is a mock implementation of the Scene interface for testing.
type MockScene struct {
	updateCalled bool
	drawCalled   bool
	exitCalls    int
	deltaTime    float64
}

func (m *MockScene) Update(deltaTime float64) {
	m.updateCalled = true
	m.deltaTime = deltaTime
}

func (m *MockScene) Draw(screen *ebiten.Image) {
	m.drawCalled = true
}

func (m *MockScene) OnExit() {
	m.exitCalls++
}

func TestNewSceneManager(t *testing.T) {
	sm := NewSceneManager()
	if sm == nil {
		t.Fatal("NewSceneManager() returned nil")
	}
	if sm.GetCurrentScene() != nil {
		t.Error("Expected currentScene to be nil initially")
	}
}

func TestSceneManagerSwitchTo(t *testing.T) {
	sm := NewSceneManager()
	first := &MockScene{}
	second := &MockScene{}

	sm.SwitchTo(first)
	if sm.GetCurrentScene() != first {
		t.Fatal("SwitchTo did not set the current scene correctly")
	}

	sm.SwitchTo(first)
	if first.exitCalls != 0 {
		t.Errorf("switching to the same scene should not exit it, got %d calls", first.exitCalls)
	}

	sm.SwitchTo(second)
	if first.exitCalls != 1 {
		t.Errorf("previous scene OnExit calls: got %d, want 1", first.exitCalls)
	}
	if sm.GetCurrentScene() != second {
		t.Error("SwitchTo did not replace the current scene")
	}
}

func TestSceneManagerUpdateAndDraw(t *testing.T) {
	sm := NewSceneManager()

	// 没有场景时不应崩溃
	sm.Update(1.0 / 60)
	sm.Draw(nil)

	mockScene := &MockScene{}
	sm.SwitchTo(mockScene)

	sm.Update(0.016)
	if !mockScene.updateCalled {
		t.Error("Scene's Update method was not called")
	}
	if mockScene.deltaTime != 0.016 {
		t.Errorf("deltaTime: got %v, want 0.016", mockScene.deltaTime)
	}

	sm.Draw(nil)
	if !mockScene.drawCalled {
		t.Error("Scene's Draw method was not called")
	}
}

func TestSceneManagerLoad(t *testing.T) {
	sm := NewSceneManager()
	if sm.Load("stage") {
		t.Error("Load without factory should fail")
	}

	stage := &MockScene{}
	sm.SetSceneFactory(func(name string) Scene {
		if name == "stage" {
			return stage
		}
		return nil
	})

	if sm.Load("unknown") {
		t.Error("Load of unknown scene should fail")
	}
	if !sm.Load("stage") {
		t.Fatal("Load(stage) failed")
	}
	if sm.GetCurrentScene() != stage {
		t.Error("Load did not switch to the created scene")
	}

	sm.Shutdown()
	if stage.exitCalls != 1 {
		t.Errorf("Shutdown OnExit calls: got %d, want 1", stage.exitCalls)
	}
}
