package entities

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/decker502/afraica/internal/textraster"
	"github.com/decker502/afraica/pkg/config"
)

func testRaster(t *testing.T) *textraster.Raster {
	t.Helper()
	r, err := textraster.Render(config.DefaultBallVariant().Label, config.TextRasterWidth, config.TextRasterHeight)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	return r
}

func smallVariant(n int) *config.BallVariant {
	v := config.DefaultBallVariant()
	v.ParticleCount = n
	return v
}

func TestGenerateBallParticles_Count(t *testing.T) {
	raster := testRaster(t)
	for _, n := range []int{1, 2, 100, 2000} {
		ps, err := GenerateBallParticles(smallVariant(n), 800, 600, raster, rand.New(rand.NewSource(1)))
		if err != nil {
			t.Fatalf("N=%d: unexpected error %v", n, err)
		}
		if len(ps) != n {
			t.Errorf("N=%d: got %d particles", n, len(ps))
		}
	}
}

func TestGenerateBallParticles_UnitSphere(t *testing.T) {
	ps, err := GenerateBallParticles(smallVariant(3000), 1280, 800, testRaster(t), rand.New(rand.NewSource(2)))
	if err != nil {
		t.Fatal(err)
	}
	for i, p := range ps {
		norm := math.Sqrt(p.BaseX3D*p.BaseX3D + p.BaseY3D*p.BaseY3D + p.BaseZ3D*p.BaseZ3D)
		if math.Abs(norm-1) > 1e-9 {
			t.Fatalf("particle %d not on unit sphere: |p| = %v", i, norm)
		}
		if p.Density < 10 || p.Density >= 30 {
			t.Errorf("particle %d density %v out of [10,30)", i, p.Density)
		}
	}
}

func TestGenerateBallParticles_InitialPlacement(t *testing.T) {
	v := smallVariant(500)
	w, h := 1000.0, 600.0
	ps, err := GenerateBallParticles(v, w, h, testRaster(t), rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatal(err)
	}
	cx, cy, scale := BallCenter(v, w, h)
	if scale != 600*0.18 || cy != 300+38 || cx != 500 {
		t.Fatalf("unexpected centre (%v,%v) scale %v", cx, cy, scale)
	}
	for i, p := range ps {
		if math.Abs(p.X-(p.BaseX3D*scale+cx)) > 1e-9 || math.Abs(p.Y-(p.BaseY3D*scale+cy)) > 1e-9 {
			t.Fatalf("particle %d initial position mismatch", i)
		}
		if p.VX != 0 || p.VY != 0 {
			t.Fatalf("particle %d should start at rest", i)
		}
	}
}

// TestGenerateBallParticles_TextColors 文字粒子的颜色只取决于贴图，与随机源无关
func TestGenerateBallParticles_TextColors(t *testing.T) {
	raster := testRaster(t)
	v := smallVariant(15000)

	a, err := GenerateBallParticles(v, 800, 600, raster, rand.New(rand.NewSource(10)))
	if err != nil {
		t.Fatal(err)
	}
	b, err := GenerateBallParticles(v, 800, 600, raster, rand.New(rand.NewSource(99)))
	if err != nil {
		t.Fatal(err)
	}

	textCount, accentText := 0, 0
	for i := range a {
		if a[i].IsText != b[i].IsText {
			t.Fatalf("particle %d text flag depends on rng", i)
		}
		if !a[i].IsText {
			if a[i].Color != v.Palette.Accent.RGB && a[i].Color != v.Palette.Neutral.RGB {
				t.Fatalf("background particle %d has colour %+v", i, a[i].Color)
			}
			continue
		}
		textCount++
		if a[i].Color != b[i].Color {
			t.Fatalf("text particle %d colour depends on rng", i)
		}
		if a[i].Color == v.Palette.Accent.RGB {
			accentText++
		} else if a[i].Color != v.Palette.Primary.RGB {
			t.Fatalf("text particle %d has colour %+v", i, a[i].Color)
		}
	}

	if textCount == 0 {
		t.Fatal("expected some text particles")
	}
	if accentText == 0 || accentText == textCount {
		t.Errorf("expected the red segment to cover part of the text, got %d/%d", accentText, textCount)
	}
}

func TestGenerateBallParticles_Errors(t *testing.T) {
	raster := testRaster(t)
	tests := []struct {
		name   string
		w, h   float64
		raster *textraster.Raster
		want   error
	}{
		{"零宽度", 0, 600, raster, ErrEmptySurface},
		{"零高度", 800, 0, raster, ErrEmptySurface},
		{"缺少贴图", 800, 600, nil, ErrNoTextRaster},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateBallParticles(smallVariant(10), tt.w, tt.h, tt.raster, rand.New(rand.NewSource(1)))
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestCreateExplosionParticles(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	base, err := GenerateBallParticles(smallVariant(100), 800, 600, testRaster(t), rng)
	if err != nil {
		t.Fatal(err)
	}

	out := CreateExplosionParticles(base, 400, 338, len(base)*config.FinalExplosionParticleFactor, rng)
	if len(out) != 1100 {
		t.Fatalf("expected 1100 particles, got %d", len(out))
	}
	for i, p := range out[100:] {
		if !p.IsExplosion {
			t.Fatalf("explosion particle %d not marked", i)
		}
		d := math.Hypot(math.Hypot(p.X-400, p.Y-338), p.BaseZ3D*100)
		if d < 50-1e-6 || d >= 150+1e-6 {
			t.Errorf("explosion particle %d at shell radius %v", i, d)
		}
		if p.Radius < 0.5 || p.Radius >= 2.5 {
			t.Errorf("explosion particle %d radius %v", i, p.Radius)
		}
	}
	for i, p := range out[:100] {
		if p.IsExplosion {
			t.Fatalf("ball particle %d wrongly marked as explosion", i)
		}
	}
}
