package entities

import (
	"math"
	"math/rand"

	"github.com/decker502/afraica/pkg/components"
	"github.com/decker502/afraica/pkg/config"
	"github.com/decker502/afraica/pkg/ecs"
)

// CreateLightMotes 在圆柱形光柱内随机放置 count 个光尘
// 颜色从纯红渐变到偏白的粉红
func CreateLightMotes(em *ecs.EntityManager, count int, rng *rand.Rand) {
	for i := 0; i < count; i++ {
		radius := rng.Float64() * config.LightMoteRadius
		angle := rng.Float64() * 2 * math.Pi
		ci := rng.Float64()

		id := em.CreateEntity()
		em.AddComponent(id, &components.LightMoteComponent{
			X3:        math.Cos(angle) * radius,
			Y3:        rng.Float64()*config.LightMoteHeight - config.LightMoteHeight/2,
			Z3:        math.Sin(angle) * radius,
			Size:      rng.Float64()*2 + 1,
			Color:     config.RGB{R: 255, G: uint8(ci * 0.2 * 255), B: uint8(ci * 0.3 * 255)},
			NoiseSeed: rng.Float64() * 1000,
		})
	}
}

// CreateAtmosphericLights 创建环绕场景的点光源
func CreateAtmosphericLights(em *ecs.EntityManager, rng *rand.Rand) {
	for i := 0; i < config.AtmosphericLightCount; i++ {
		id := em.CreateEntity()
		em.AddComponent(id, &components.AtmosphericLightComponent{
			Index:     i,
			Color:     config.AtmosphericLightColors[i%len(config.AtmosphericLightColors)],
			Phi:       math.Pi*0.5 + (rng.Float64()-0.5)*0.5,
			Intensity: 0.2,
		})
	}
}
