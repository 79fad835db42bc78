package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a top-level screen (loading sequence, main view, static backdrop).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Disposable 是一个可选接口，场景被替换时释放定时器、订阅和帧回调
type Disposable interface {
	Dispose()
}
