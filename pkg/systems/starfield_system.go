package systems

import (
	"math"
	"math/rand"

	"github.com/decker502/afraica/pkg/components"
	"github.com/decker502/afraica/pkg/config"
	"github.com/decker502/afraica/pkg/ecs"
	"github.com/decker502/afraica/pkg/entities"
)

// twinkleTimeStep 闪烁时间每帧的增量
const twinkleTimeStep = 0.016

// StarfieldSystem 背景星与流星
//
// 背景星匀速漂移，越过视口边缘后从对侧回绕；
// 流星以 ShootingStarChance 的概率生成，直线飞行并随寿命淡出。
type StarfieldSystem struct {
	em      *ecs.EntityManager
	variant *config.BallVariant
	rng     *rand.Rand

	width, height float64
	time          float64
}

// NewStarfieldSystem 创建星空系统
func NewStarfieldSystem(em *ecs.EntityManager, v *config.BallVariant, rng *rand.Rand) *StarfieldSystem {
	return &StarfieldSystem{em: em, variant: v, rng: rng}
}

// Reset 按新的视口尺寸重建全部背景星，流星一并清空
func (s *StarfieldSystem) Reset(width, height float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.StarComponent](s.em) {
		s.em.DestroyEntity(id)
	}
	for _, id := range ecs.GetEntitiesWith1[*components.ShootingStarComponent](s.em) {
		s.em.DestroyEntity(id)
	}
	s.em.RemoveMarkedEntities()

	s.width, s.height = width, height
	entities.CreateStarfield(s.em, s.variant, width, height, s.rng)
}

// Update 推进一帧
func (s *StarfieldSystem) Update() {
	s.time += twinkleTimeStep
	s.updateStars()
	if s.variant.ShootingStars {
		s.updateShootingStars()
	}
}

func (s *StarfieldSystem) updateStars() {
	ids := ecs.GetEntitiesWith3[*components.StarComponent, *components.PositionComponent, *components.VelocityComponent](s.em)
	for _, id := range ids {
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.em, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](s.em, id)

		pos.X += vel.VX
		pos.Y += vel.VY
		if pos.X < 0 {
			pos.X = s.width
		} else if pos.X > s.width {
			pos.X = 0
		}
		if pos.Y < 0 {
			pos.Y = s.height
		} else if pos.Y > s.height {
			pos.Y = 0
		}
	}
}

func (s *StarfieldSystem) updateShootingStars() {
	ids := ecs.GetEntitiesWith1[*components.ShootingStarComponent](s.em)
	if len(ids) < config.ShootingStarMaxAlive && s.rng.Float64() < config.ShootingStarChance {
		entities.NewShootingStarEntity(s.em, s.width, s.height, s.rng)
		ids = ecs.GetEntitiesWith1[*components.ShootingStarComponent](s.em)
	}

	for _, id := range ids {
		star, _ := ecs.GetComponent[*components.ShootingStarComponent](s.em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.em, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](s.em, id)

		pos.X += vel.VX
		pos.Y += vel.VY
		star.Life--

		if star.Life <= 0 ||
			pos.X >= s.width*config.ShootingStarBounds ||
			pos.Y >= s.height*config.ShootingStarBounds {
			s.em.DestroyEntity(id)
		}
	}
	s.em.RemoveMarkedEntities()
}

// Twinkle 背景星的闪烁系数，未启用闪烁时为 1
func (s *StarfieldSystem) Twinkle(star *components.StarComponent, x float64) float64 {
	if star.TwinkleSpeed == 0 {
		return 1
	}
	return math.Sin(s.time*star.TwinkleSpeed+x*0.01)*0.3 + 0.7
}

// ShootingStarCount 当前流星数量
func (s *StarfieldSystem) ShootingStarCount() int {
	return len(ecs.GetEntitiesWith1[*components.ShootingStarComponent](s.em))
}

// StarCount 当前背景星数量
func (s *StarfieldSystem) StarCount() int {
	return len(ecs.GetEntitiesWith1[*components.StarComponent](s.em))
}
