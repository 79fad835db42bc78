package systems

import (
	"log"
	"math"
	"math/rand"

	"github.com/decker502/afraica/pkg/components"
	"github.com/decker502/afraica/pkg/config"
	"github.com/decker502/afraica/pkg/ecs"
	"github.com/decker502/afraica/pkg/entities"
)

// ConstellationLink 两个相近节点之间的连线
type ConstellationLink struct {
	X1, Y1, X2, Y2 float64
	Opacity        float64
	Color          config.RGB
}

// ConstellationSystem 背景星座网络
//
// 三级节点（executive / data / network）在视口内匀速运动并在边缘反弹，
// 指针附近的节点被推开；距离小于 ConstellationLinkDistance 的节点之间连线，
// 连线颜色取两端中层级较高者。
type ConstellationSystem struct {
	em  *ecs.EntityManager
	rng *rand.Rand

	width, height float64
	time          float64

	pointerX, pointerY float64
	pointerActive      bool

	links []ConstellationLink
}

// NewConstellationSystem 创建星座系统
func NewConstellationSystem(em *ecs.EntityManager, rng *rand.Rand) *ConstellationSystem {
	return &ConstellationSystem{em: em, rng: rng}
}

// Reset 按视口尺寸重建全部节点
func (s *ConstellationSystem) Reset(width, height float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.ConstellationNodeComponent](s.em) {
		s.em.DestroyEntity(id)
	}
	s.em.RemoveMarkedEntities()

	s.width, s.height = width, height
	n := entities.CreateConstellation(s.em, width, height, s.rng)
	log.Printf("[ConstellationSystem] Created %d nodes for %.0fx%.0f", n, width, height)
}

// SetPointer 更新指针位置；active 为 false 表示指针离开
func (s *ConstellationSystem) SetPointer(x, y float64, active bool) {
	s.pointerX, s.pointerY, s.pointerActive = x, y, active
}

// Intensify 所有节点速度乘以 factor
func (s *ConstellationSystem) Intensify(factor float64) {
	for _, id := range ecs.GetEntitiesWith2[*components.ConstellationNodeComponent, *components.VelocityComponent](s.em) {
		vel, _ := ecs.GetComponent[*components.VelocityComponent](s.em, id)
		vel.VX *= factor
		vel.VY *= factor
	}
	log.Printf("[ConstellationSystem] Intensified by %.2f", factor)
}

// Update 推进一帧并重新计算连线
func (s *ConstellationSystem) Update() {
	s.time += twinkleTimeStep

	ids := ecs.GetEntitiesWith3[*components.ConstellationNodeComponent, *components.PositionComponent, *components.VelocityComponent](s.em)
	for _, id := range ids {
		node, _ := ecs.GetComponent[*components.ConstellationNodeComponent](s.em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.em, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](s.em, id)

		pos.X += vel.VX
		pos.Y += vel.VY

		if pos.X <= 0 || pos.X >= s.width {
			vel.VX = -vel.VX
			pos.X = math.Max(0, math.Min(s.width, pos.X))
		}
		if pos.Y <= 0 || pos.Y >= s.height {
			vel.VY = -vel.VY
			pos.Y = math.Max(0, math.Min(s.height, pos.Y))
		}

		if s.pointerActive {
			dx := s.pointerX - pos.X
			dy := s.pointerY - pos.Y
			d := math.Hypot(dx, dy)
			if d > 0 && d < config.ConstellationPointerRadius {
				force := (config.ConstellationPointerRadius - d) / config.ConstellationPointerRadius
				vel.VX -= dx / d * force * config.ConstellationPointerStrength
				vel.VY -= dy / d * force * config.ConstellationPointerStrength
			}
		}

		if node.Rank == components.NodeExecutive {
			node.Radius = node.BaseRadius + math.Sin(s.time*2+node.PulseOffset)
		}
		node.Opacity = 0.7 + math.Sin(s.time*3+node.PulseOffset)*0.3
	}

	s.computeLinks(ids)
}

func (s *ConstellationSystem) computeLinks(ids []ecs.EntityID) {
	s.links = s.links[:0]

	type endpoint struct {
		x, y float64
		rank components.NodeRank
	}
	points := make([]endpoint, 0, len(ids))
	for _, id := range ids {
		node, _ := ecs.GetComponent[*components.ConstellationNodeComponent](s.em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.em, id)
		points = append(points, endpoint{pos.X, pos.Y, node.Rank})
	}

	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			a, b := points[i], points[j]
			d := math.Hypot(a.x-b.x, a.y-b.y)
			if d >= config.ConstellationLinkDistance {
				continue
			}
			rank := a.rank
			if b.rank > rank {
				rank = b.rank
			}
			s.links = append(s.links, ConstellationLink{
				X1: a.x, Y1: a.y, X2: b.x, Y2: b.y,
				Opacity: (config.ConstellationLinkDistance - d) / config.ConstellationLinkDistance * config.ConstellationLinkOpacity,
				Color:   linkColor(rank),
			})
		}
	}
}

func linkColor(rank components.NodeRank) config.RGB {
	switch rank {
	case components.NodeExecutive:
		return config.ConstellationExecutive.Color
	case components.NodeData:
		return config.ConstellationData.Color
	default:
		return config.ConstellationNetwork.Color
	}
}

// Links 本帧的连线
func (s *ConstellationSystem) Links() []ConstellationLink {
	return s.links
}

// NodeCount 节点数量
func (s *ConstellationSystem) NodeCount() int {
	return len(ecs.GetEntitiesWith1[*components.ConstellationNodeComponent](s.em))
}
