package textraster

import (
	"errors"
	"testing"

	"github.com/decker502/afraica/pkg/config"
)

func brandLabel() []config.TextSegment {
	return config.DefaultBallVariant().Label
}

func TestRenderErrors(t *testing.T) {
	tests := []struct {
		name     string
		segments []config.TextSegment
		w, h     int
		want     error
	}{
		{"零宽度", brandLabel(), 0, 256, ErrInvalidSize},
		{"负高度", brandLabel(), 1024, -1, ErrInvalidSize},
		{"空标签", nil, 1024, 256, ErrEmptyLabel},
		{"空文字片段", []config.TextSegment{{Text: ""}}, 1024, 256, ErrEmptyLabel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Render(tt.segments, tt.w, tt.h); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestRenderBrandLabel(t *testing.T) {
	r, err := Render(brandLabel(), config.TextRasterWidth, config.TextRasterHeight)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if r.Width != 1024 || r.Height != 256 {
		t.Fatalf("unexpected size %dx%d", r.Width, r.Height)
	}

	var opaque, red, transparentOrFull int
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			rc, a := r.At(x, y)
			if a > 128 {
				opaque++
				if rc > 128 {
					red++
				}
			}
			if a == 0 || a == 255 {
				transparentOrFull++
			}
		}
	}

	if opaque == 0 {
		t.Fatal("expected some opaque label pixels")
	}
	// 只有 "AI" 一段是红色
	if red == 0 || red >= opaque {
		t.Errorf("expected a strict subset of red pixels, got red=%d opaque=%d", red, opaque)
	}
	// 最近邻缩放不产生半透明像素
	if transparentOrFull != r.Width*r.Height {
		t.Errorf("found %d partially transparent pixels", r.Width*r.Height-transparentOrFull)
	}

	// 四角是透明背景
	for _, p := range [][2]int{{0, 0}, {1023, 0}, {0, 255}, {1023, 255}} {
		if _, a := r.At(p[0], p[1]); a != 0 {
			t.Errorf("corner %v should be transparent, alpha=%d", p, a)
		}
	}
}

func TestRenderDeterministic(t *testing.T) {
	a, err := Render(brandLabel(), 512, 128)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Render(brandLabel(), 512, 128)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Image().Pix {
		if a.Image().Pix[i] != b.Image().Pix[i] {
			t.Fatalf("rasters differ at byte %d", i)
		}
	}
}

func TestAtClamps(t *testing.T) {
	r, err := Render(brandLabel(), 64, 16)
	if err != nil {
		t.Fatal(err)
	}
	r0, a0 := r.At(-10, -10)
	r1, a1 := r.At(0, 0)
	if r0 != r1 || a0 != a1 {
		t.Error("negative coordinates should clamp to (0,0)")
	}
	r2, a2 := r.At(1000, 1000)
	r3, a3 := r.At(63, 15)
	if r2 != r3 || a2 != a3 {
		t.Error("large coordinates should clamp to the last pixel")
	}
}
