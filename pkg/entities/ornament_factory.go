package entities

import (
	"math"
	"math/rand"

	"github.com/decker502/afraica/pkg/components"
	"github.com/decker502/afraica/pkg/config"
	"github.com/decker502/afraica/pkg/ecs"
)

// CreateElectromagneticField 创建电磁场节点
func CreateElectromagneticField(em *ecs.EntityManager, rng *rand.Rand) {
	for i := 0; i < config.FieldNodeCount; i++ {
		radius := config.FieldBaseRadius + math.Sin(float64(i)*0.5)*config.FieldRadiusVariation
		c := config.OrnamentBlue
		if rng.Float64() < config.FieldRedChance {
			c = config.OrnamentRed
		}

		id := em.CreateEntity()
		em.AddComponent(id, &components.FieldNodeComponent{
			Index:      i,
			Angle:      float64(i) / config.FieldNodeCount * 2 * math.Pi,
			Radius:     radius,
			BaseRadius: radius,
			Intensity:  0.3 + rng.Float64()*0.4,
			Speed:      config.FieldSpeedMin + rng.Float64()*config.FieldSpeedRange,
			Color:      c,
		})
	}
}

// CreateDataStreams 创建数据流发射器，红蓝交替
func CreateDataStreams(em *ecs.EntityManager, rng *rand.Rand) {
	for i := 0; i < config.DataStreamCount; i++ {
		c := config.OrnamentBlue
		if i%2 == 0 {
			c = config.OrnamentRed
		}
		id := em.CreateEntity()
		em.AddComponent(id, &components.DataStreamComponent{
			Index: i,
			Color: c,
			Speed: 2 + rng.Float64()*3,
		})
	}
}

// NewDataMoteEntity 在发射器所在方向的起始半径处创建一个数据光点
func NewDataMoteEntity(em *ecs.EntityManager, stream *components.DataStreamComponent, cx, cy float64, rng *rand.Rand) ecs.EntityID {
	angle := float64(stream.Index) / config.DataStreamCount * 2 * math.Pi

	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{
		X: cx + math.Cos(angle)*config.DataStreamStartRadius,
		Y: cy + math.Sin(angle)*config.DataStreamStartRadius,
	})
	em.AddComponent(id, &components.DataMoteComponent{
		Stream:  stream.Index,
		TargetX: cx,
		TargetY: cy,
		Life:    1.0,
		Size:    rng.Float64()*3 + 1,
	})
	return id
}
