package entities

import (
	"math"
	"math/rand"

	"github.com/decker502/afraica/pkg/components"
	"github.com/decker502/afraica/pkg/config"
	"github.com/decker502/afraica/pkg/ecs"
)

// NewStarEntity 创建一颗背景星
// 参数:
//   - em: EntityManager 实例
//   - v: 变体参数（数量由调用方控制）
//   - width, height: 视口尺寸
//   - rng: 随机源
//
// 返回: 创建的实体ID
func NewStarEntity(em *ecs.EntityManager, v *config.BallVariant, width, height float64, rng *rand.Rand) ecs.EntityID {
	id := em.CreateEntity()

	em.AddComponent(id, &components.PositionComponent{
		X: rng.Float64() * width,
		Y: rng.Float64() * height,
	})
	em.AddComponent(id, &components.VelocityComponent{
		VX: (rng.Float64()*2 - 1) * v.StarDrift,
		VY: (rng.Float64()*2 - 1) * v.StarDrift,
	})

	star := &components.StarComponent{
		Radius: v.StarMinRadius + rng.Float64()*(v.StarMaxRadius-v.StarMinRadius),
		Alpha:  v.StarAlphaMin + rng.Float64()*(1-v.StarAlphaMin),
	}
	if v.StarTwinkle {
		star.TwinkleSpeed = config.StarTwinkleSpeedMin + rng.Float64()*config.StarTwinkleSpeedRange
	}
	em.AddComponent(id, star)

	return id
}

// CreateStarfield 按变体创建全部背景星
func CreateStarfield(em *ecs.EntityManager, v *config.BallVariant, width, height float64, rng *rand.Rand) {
	for i := 0; i < v.StarCount; i++ {
		NewStarEntity(em, v, width, height, rng)
	}
}

// NewShootingStarEntity 创建一颗流星
//
// 一半从左边缘斜向右下（或右上）划过，另一半从上边缘向下划过。
func NewShootingStarEntity(em *ecs.EntityManager, width, height float64, rng *rand.Rand) ecs.EntityID {
	fromLeft := rng.Float64() > 0.5
	fromTop := rng.Float64() > 0.5
	speed := rng.Float64()*config.ShootingStarSpeedRange + config.ShootingStarSpeedMin

	pos := &components.PositionComponent{}
	vel := &components.VelocityComponent{}
	if fromLeft {
		pos.Y = rng.Float64() * height
		vel.VX = speed
		vel.VY = speed * math.Sin(math.Pi*0.25)
		if !fromTop {
			vel.VY = -vel.VY
		}
	} else {
		pos.X = rng.Float64() * width
		vel.VX = speed * math.Cos(math.Pi*1.25)
		vel.VY = speed
	}

	id := em.CreateEntity()
	em.AddComponent(id, pos)
	em.AddComponent(id, vel)
	em.AddComponent(id, &components.ShootingStarComponent{
		Life:        config.ShootingStarLife,
		InitialLife: config.ShootingStarLife,
		TailLength:  config.ShootingStarTail,
	})
	return id
}
