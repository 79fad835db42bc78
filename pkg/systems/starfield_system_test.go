package systems

import (
	"math/rand"
	"testing"

	"github.com/decker502/afraica/pkg/components"
	"github.com/decker502/afraica/pkg/config"
	"github.com/decker502/afraica/pkg/ecs"
)

func TestStarfield_ResetCreatesStars(t *testing.T) {
	em := ecs.NewEntityManager()
	v := config.DefaultBallVariant()
	s := NewStarfieldSystem(em, v, rand.New(rand.NewSource(1)))

	s.Reset(800, 600)
	if got := s.StarCount(); got != v.StarCount {
		t.Fatalf("StarCount() = %d, want %d", got, v.StarCount)
	}

	// 重建不累积
	s.Reset(1024, 768)
	if got := s.StarCount(); got != v.StarCount {
		t.Errorf("after second Reset StarCount() = %d, want %d", got, v.StarCount)
	}
}

func TestStarfield_Wraparound(t *testing.T) {
	tests := []struct {
		name         string
		x, y, vx, vy float64
		wantX, wantY float64
	}{
		{"左出右进", 0.01, 100, -0.05, 0, 800, 100},
		{"右出左进", 799.99, 100, 0.05, 0, 0, 100},
		{"上出下进", 100, 0.01, 0, -0.05, 100, 600},
		{"下出上进", 100, 599.99, 0, 0.05, 100, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			em := ecs.NewEntityManager()
			v := config.DefaultBallVariant()
			v.StarCount = 0
			v.ShootingStars = false
			s := NewStarfieldSystem(em, v, rand.New(rand.NewSource(1)))
			s.Reset(800, 600)

			id := em.CreateEntity()
			pos := &components.PositionComponent{X: tt.x, Y: tt.y}
			em.AddComponent(id, pos)
			em.AddComponent(id, &components.VelocityComponent{VX: tt.vx, VY: tt.vy})
			em.AddComponent(id, &components.StarComponent{Radius: 1, Alpha: 1})

			s.Update()
			if pos.X != tt.wantX || pos.Y != tt.wantY {
				t.Errorf("position = (%f,%f), want (%f,%f)", pos.X, pos.Y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestStarfield_ShootingStarLifecycle(t *testing.T) {
	em := ecs.NewEntityManager()
	v := config.DefaultBallVariant()
	v.StarCount = 0
	s := NewStarfieldSystem(em, v, rand.New(rand.NewSource(42)))
	s.Reset(800, 600)

	maxAlive := 0
	for i := 0; i < 20000; i++ {
		s.Update()
		n := s.ShootingStarCount()
		if n > config.ShootingStarMaxAlive {
			t.Fatalf("tick %d: %d shooting stars alive, cap is %d", i, n, config.ShootingStarMaxAlive)
		}
		if n > maxAlive {
			maxAlive = n
		}
		for _, id := range ecs.GetEntitiesWith1[*components.ShootingStarComponent](em) {
			star, _ := ecs.GetComponent[*components.ShootingStarComponent](em, id)
			if star.Life <= 0 {
				t.Fatalf("tick %d: shooting star with life %f not removed", i, star.Life)
			}
			if op := star.Opacity(); op <= 0 || op > 1 {
				t.Fatalf("opacity %f out of range", op)
			}
		}
	}
	if maxAlive == 0 {
		t.Error("no shooting star spawned in 20000 ticks")
	}
}

func TestStarfield_ShootingStarRemovedOffscreen(t *testing.T) {
	em := ecs.NewEntityManager()
	v := config.DefaultBallVariant()
	v.StarCount = 0
	s := NewStarfieldSystem(em, v, rand.New(rand.NewSource(1)))
	s.Reset(800, 600)

	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{X: 955, Y: 100})
	em.AddComponent(id, &components.VelocityComponent{VX: 8, VY: 0})
	em.AddComponent(id, &components.ShootingStarComponent{Life: 90, InitialLife: 100, TailLength: 20})

	s.updateShootingStars()
	if ecs.HasComponent[*components.ShootingStarComponent](em, id) {
		t.Error("shooting star beyond 1.2x viewport width should be removed")
	}
}

func TestStarfield_Twinkle(t *testing.T) {
	s := NewStarfieldSystem(ecs.NewEntityManager(), config.DefaultBallVariant(), rand.New(rand.NewSource(1)))
	if got := s.Twinkle(&components.StarComponent{}, 10); got != 1 {
		t.Errorf("non-twinkling star factor = %f, want 1", got)
	}
	star := &components.StarComponent{TwinkleSpeed: 0.02}
	for i := 0; i < 1000; i++ {
		s.Update()
		f := s.Twinkle(star, float64(i))
		if f < 0.4-1e-9 || f > 1+1e-9 {
			t.Fatalf("twinkle factor %f outside [0.4, 1]", f)
		}
	}
}
