package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a viewer scene (the paperdoll stage, an empty placeholder, ...).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update advances the scene by one frame.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Exiter 是一个可选接口，场景在被替换或程序退出时收到通知
//
// 实现此接口的场景会在以下时机被调用 OnExit()：
//   - SceneManager 切换到其他场景
//   - 窗口关闭
type Exiter interface {
	OnExit()
}
