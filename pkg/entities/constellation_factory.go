package entities

import (
	"math"
	"math/rand"

	"github.com/decker502/afraica/pkg/components"
	"github.com/decker502/afraica/pkg/config"
	"github.com/decker502/afraica/pkg/ecs"
)

// constellationTiers 层级与配置的对应关系（创建顺序）
var constellationTiers = []struct {
	rank components.NodeRank
	tier config.ConstellationTier
}{
	{components.NodeExecutive, config.ConstellationExecutive},
	{components.NodeData, config.ConstellationData},
	{components.NodeNetwork, config.ConstellationNetwork},
}

// NewConstellationNodeEntity 创建一个星座节点
func NewConstellationNodeEntity(em *ecs.EntityManager, rank components.NodeRank, tier config.ConstellationTier, width, height float64, rng *rand.Rand) ecs.EntityID {
	id := em.CreateEntity()
	radius := rng.Float64()*(tier.RadiusMax-tier.RadiusMin) + tier.RadiusMin

	em.AddComponent(id, &components.PositionComponent{
		X: rng.Float64() * width,
		Y: rng.Float64() * height,
	})
	em.AddComponent(id, &components.VelocityComponent{
		VX: (rng.Float64() - 0.5) * tier.Speed,
		VY: (rng.Float64() - 0.5) * tier.Speed,
	})
	em.AddComponent(id, &components.ConstellationNodeComponent{
		Rank:        rank,
		Color:       tier.Color,
		Radius:      radius,
		BaseRadius:  radius,
		PulseOffset: rng.Float64() * 2 * math.Pi,
		Opacity:     rng.Float64()*0.5 + 0.5,
	})
	return id
}

// CreateConstellation 创建全部三级节点，返回节点总数
func CreateConstellation(em *ecs.EntityManager, width, height float64, rng *rand.Rand) int {
	total := 0
	for _, t := range constellationTiers {
		for i := 0; i < t.tier.Count; i++ {
			NewConstellationNodeEntity(em, t.rank, t.tier, width, height, rng)
			total++
		}
	}
	return total
}
