package scenes

import (
	"log"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/afraica/pkg/config"
	"github.com/decker502/afraica/pkg/ecs"
	"github.com/decker502/afraica/pkg/entities"
	"github.com/decker502/afraica/pkg/game"
	"github.com/decker502/afraica/pkg/systems"
)

// ambientLayer 星座背景与体积光两个可选图层
//
// 任一图层初始化失败只记录警告，场景在没有它的情况下继续运行。
type ambientLayer struct {
	em            *ecs.EntityManager
	constellation *systems.ConstellationSystem
	lights        *systems.LightRaySystem

	scope *game.Scope
}

func newAmbientLayer(bus *game.EventBus, rng *rand.Rand, width, height float64) *ambientLayer {
	a := &ambientLayer{em: ecs.NewEntityManager(), scope: game.NewScope()}
	if width <= 0 || height <= 0 {
		log.Printf("[AmbientLayer] Warning: background layers disabled: %v", entities.ErrEmptySurface)
		return a
	}

	a.constellation = systems.NewConstellationSystem(a.em, rng)
	a.constellation.Reset(width, height)
	a.lights = systems.NewLightRaySystem(a.em, rng)
	a.lights.Reset(width, height)

	a.scope.Add(bus.OnPointer(func(e game.PointerEvent) {
		a.constellation.SetPointer(e.X, e.Y, e.Kind != game.PointerLeave)
	}))
	a.scope.Add(bus.OnResize(func(e game.ResizeEvent) {
		if e.Width <= 0 || e.Height <= 0 {
			return
		}
		a.constellation.Reset(e.Width, e.Height)
		a.lights.Reset(e.Width, e.Height)
	}))
	return a
}

// Update 推进一帧
func (a *ambientLayer) Update(dt float64) {
	if a.constellation != nil {
		a.constellation.Update()
	}
	if a.lights != nil {
		a.lights.Update(dt)
	}
}

// DrawConstellation 绘制星座背景
func (a *ambientLayer) DrawConstellation(screen *ebiten.Image) {
	if a.constellation != nil {
		a.constellation.Draw(screen)
	}
}

// DrawLights 以 opacity 绘制体积光
func (a *ambientLayer) DrawLights(screen *ebiten.Image, opacity float64) {
	if a.lights != nil {
		a.lights.Draw(screen, opacity)
	}
}

// Intensify 星座节点加速
func (a *ambientLayer) Intensify() {
	if a.constellation != nil {
		a.constellation.Intensify(config.ConstellationIntensify)
	}
}

// LightsTo 渐变方向光强度；duration 为 0 时立即设置
func (a *ambientLayer) LightsTo(target, duration float64) {
	if a.lights == nil {
		return
	}
	if duration <= 0 {
		a.lights.SetIntensity(target)
		return
	}
	a.lights.IntensityTo(target, duration)
}

func (a *ambientLayer) Dispose() {
	a.scope.Dispose()
	a.em.Clear()
}
