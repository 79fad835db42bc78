package entities

import (
	"math/rand"
	"testing"

	"github.com/decker502/afraica/pkg/components"
	"github.com/decker502/afraica/pkg/config"
	"github.com/decker502/afraica/pkg/ecs"
)

func TestCreateStarfield(t *testing.T) {
	em := ecs.NewEntityManager()
	v := config.DefaultBallVariant()
	CreateStarfield(em, v, 800, 600, rand.New(rand.NewSource(1)))

	ids := ecs.GetEntitiesWith3[*components.StarComponent, *components.PositionComponent, *components.VelocityComponent](em)
	if len(ids) != v.StarCount {
		t.Fatalf("expected %d stars, got %d", v.StarCount, len(ids))
	}
	for _, id := range ids {
		star, _ := ecs.GetComponent[*components.StarComponent](em, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](em, id)
		if star.Radius < 0 || star.Radius > v.StarMaxRadius {
			t.Errorf("star radius %v out of range", star.Radius)
		}
		if star.Alpha < 0.5 || star.Alpha > 1 {
			t.Errorf("star alpha %v out of range", star.Alpha)
		}
		if vel.VX < -v.StarDrift || vel.VX > v.StarDrift {
			t.Errorf("star drift %v out of range", vel.VX)
		}
		if star.TwinkleSpeed != 0 {
			t.Error("loader stars should not twinkle")
		}
	}
}

func TestCreateConstellation(t *testing.T) {
	em := ecs.NewEntityManager()
	total := CreateConstellation(em, 1280, 800, rand.New(rand.NewSource(2)))
	if total != 135 {
		t.Fatalf("expected 135 nodes, got %d", total)
	}

	counts := map[components.NodeRank]int{}
	for _, id := range ecs.GetEntitiesWith1[*components.ConstellationNodeComponent](em) {
		node, _ := ecs.GetComponent[*components.ConstellationNodeComponent](em, id)
		counts[node.Rank]++
	}
	if counts[components.NodeExecutive] != 15 || counts[components.NodeData] != 40 || counts[components.NodeNetwork] != 80 {
		t.Errorf("unexpected tier counts %v", counts)
	}
}

func TestCreateOrnaments(t *testing.T) {
	em := ecs.NewEntityManager()
	rng := rand.New(rand.NewSource(3))
	CreateElectromagneticField(em, rng)
	CreateDataStreams(em, rng)

	if n := len(ecs.GetEntitiesWith1[*components.FieldNodeComponent](em)); n != 24 {
		t.Errorf("expected 24 field nodes, got %d", n)
	}
	streams := ecs.GetEntitiesWith1[*components.DataStreamComponent](em)
	if len(streams) != 8 {
		t.Fatalf("expected 8 data streams, got %d", len(streams))
	}

	s, _ := ecs.GetComponent[*components.DataStreamComponent](em, streams[0])
	id := NewDataMoteEntity(em, s, 400, 300, rng)
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	// 第 0 条数据流的角度为 0，光点从球心右侧 250 像素处出发
	if pos.X != 650 || pos.Y != 300 {
		t.Errorf("mote spawned at (%v,%v), want (650,300)", pos.X, pos.Y)
	}
}
