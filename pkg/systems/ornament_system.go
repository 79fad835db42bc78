package systems

import (
	"math"
	"math/rand"

	"github.com/decker502/afraica/pkg/components"
	"github.com/decker502/afraica/pkg/config"
	"github.com/decker502/afraica/pkg/ecs"
	"github.com/decker502/afraica/pkg/entities"
	"github.com/decker502/afraica/pkg/utils"
)

// OrnamentSystem 增强变体的装饰层：电磁场、数据流与全息叠加
type OrnamentSystem struct {
	em  *ecs.EntityManager
	rng *rand.Rand

	time float64

	hologram          *utils.Tween
	hologramIntensity float64
}

// NewOrnamentSystem 创建装饰系统
func NewOrnamentSystem(em *ecs.EntityManager, rng *rand.Rand) *OrnamentSystem {
	return &OrnamentSystem{em: em, rng: rng}
}

// Reset 首次调用时创建电磁场节点和数据流发射器，并清空在途的数据光点
func (s *OrnamentSystem) Reset() {
	if len(ecs.GetEntitiesWith1[*components.FieldNodeComponent](s.em)) == 0 {
		entities.CreateElectromagneticField(s.em, s.rng)
		entities.CreateDataStreams(s.em, s.rng)
	}
	for _, id := range ecs.GetEntitiesWith1[*components.DataMoteComponent](s.em) {
		s.em.DestroyEntity(id)
	}
	s.em.RemoveMarkedEntities()
}

// SetHologram 开启或关闭全息叠加；开启后强度在 0 与 1 之间往返
func (s *OrnamentSystem) SetHologram(on bool) {
	if !on {
		s.hologram = nil
		s.hologramIntensity = 0
		return
	}
	if s.hologram == nil {
		s.hologram = utils.NewYoyo(0, 1, config.HologramPeriod, utils.EaseInOutQuad)
	}
}

// HologramIntensity 当前全息强度 [0, 1]
func (s *OrnamentSystem) HologramIntensity() float64 {
	return s.hologramIntensity
}

// HologramOffset 第 index 个粒子的全息水平抖动
func (s *OrnamentSystem) HologramOffset(index int) float64 {
	return math.Sin(s.time*5+float64(index)*0.1) * 2
}

// Update 推进一帧
//
// 参数：
//   - cx, cy: 球心
//   - dt: 帧时长（秒），驱动全息往返
func (s *OrnamentSystem) Update(cx, cy, dt float64) {
	s.time += twinkleTimeStep
	if s.hologram != nil {
		s.hologramIntensity = s.hologram.Update(dt)
	}

	for _, id := range ecs.GetEntitiesWith1[*components.FieldNodeComponent](s.em) {
		node, _ := ecs.GetComponent[*components.FieldNodeComponent](s.em, id)
		node.Angle += node.Speed
		node.Radius = node.BaseRadius + math.Sin(s.time*2+float64(node.Index))*config.FieldWobble
	}

	for _, id := range ecs.GetEntitiesWith1[*components.DataStreamComponent](s.em) {
		stream, _ := ecs.GetComponent[*components.DataStreamComponent](s.em, id)
		if s.time-stream.LastSpawn > config.DataStreamInterval {
			entities.NewDataMoteEntity(s.em, stream, cx, cy, s.rng)
			stream.LastSpawn = s.time
		}
	}

	for _, id := range ecs.GetEntitiesWith2[*components.DataMoteComponent, *components.PositionComponent](s.em) {
		mote, _ := ecs.GetComponent[*components.DataMoteComponent](s.em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.em, id)
		pos.X += (mote.TargetX - pos.X) * config.DataStreamEase
		pos.Y += (mote.TargetY - pos.Y) * config.DataStreamEase
		mote.Life -= config.DataStreamFade
		if mote.Life <= 0 {
			s.em.DestroyEntity(id)
		}
	}
	s.em.RemoveMarkedEntities()
}

// FieldNodePosition 电磁场节点的屏幕坐标（随呼吸缩放）
func FieldNodePosition(node *components.FieldNodeComponent, cx, cy, breath float64) (x, y float64) {
	return cx + math.Cos(node.Angle)*node.Radius*breath,
		cy + math.Sin(node.Angle)*node.Radius*breath
}
