package config

import (
	"errors"
	"os"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestParseBallVariants(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr error
		check   func(t *testing.T, set *BallVariantSet)
	}{
		{
			name: "覆盖默认值",
			yaml: `
variants:
  custom:
    particleCount: 500
    rigidity: 0.5
    palette:
      accent: "#C8102E"
`,
			check: func(t *testing.T, set *BallVariantSet) {
				v, err := set.Get("custom")
				if err != nil {
					t.Fatalf("Get failed: %v", err)
				}
				if v.Name != "custom" {
					t.Errorf("Name = %q, want custom", v.Name)
				}
				if v.ParticleCount != 500 {
					t.Errorf("ParticleCount = %d, want 500", v.ParticleCount)
				}
				if v.Rigidity != 0.5 {
					t.Errorf("Rigidity = %v, want 0.5", v.Rigidity)
				}
				if v.Palette.Accent.RGB != (RGB{200, 16, 46}) {
					t.Errorf("Accent = %+v, want {200 16 46}", v.Palette.Accent.RGB)
				}
				// 未写出的字段保持默认
				if v.Friction != 0.95 {
					t.Errorf("Friction = %v, want default 0.95", v.Friction)
				}
				if v.Palette.Neutral.RGB != (RGB{75, 85, 99}) {
					t.Errorf("Neutral = %+v, want default slate", v.Palette.Neutral.RGB)
				}
			},
		},
		{
			name:    "刚性越界",
			yaml:    "variants:\n  bad:\n    rigidity: 1.5\n",
			wantErr: ErrInvalidVariant,
		},
		{
			name:    "粒子数为零",
			yaml:    "variants:\n  bad:\n    particleCount: 0\n",
			wantErr: ErrInvalidVariant,
		},
		{
			name:    "无变体",
			yaml:    "variants: {}\n",
			wantErr: ErrInvalidVariant,
		},
		{
			name:    "开场时间线倒置",
			yaml:    "variants:\n  bad:\n    intro: {enabled: true, spinEnd: 5, finalExplosionAt: 2}\n",
			wantErr: ErrInvalidVariant,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := ParseBallVariants([]byte(tt.yaml))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.check != nil {
				tt.check(t, set)
			}
		})
	}
}

func TestParseBallVariants_BadColor(t *testing.T) {
	_, err := ParseBallVariants([]byte("variants:\n  bad:\n    palette:\n      accent: \"not-a-color\"\n"))
	if err == nil {
		t.Fatal("expected error for malformed hex color")
	}
}

func TestBallVariantSet_GetUnknown(t *testing.T) {
	set := &BallVariantSet{Variants: map[string]*BallVariant{"loader": DefaultBallVariant()}}

	if _, err := set.Get("missing"); !errors.Is(err, ErrUnknownVariant) {
		t.Errorf("expected ErrUnknownVariant, got %v", err)
	}
}

func TestHexColorRoundTrip(t *testing.T) {
	c := HexColor{RGB{222, 49, 99}}
	out, err := yaml.Marshal(c)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var back HexColor
	if err := yaml.Unmarshal(out, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if back != c {
		t.Errorf("round trip = %+v, want %+v", back, c)
	}
}

func TestRGBIsBright(t *testing.T) {
	tests := []struct {
		c    RGB
		want bool
	}{
		{RGB{255, 255, 255}, true},
		{RGB{222, 49, 99}, true},
		{RGB{75, 85, 99}, false},
		{RGB{0, 0, 255}, false},
	}
	for _, tt := range tests {
		if got := tt.c.IsBright(100); got != tt.want {
			t.Errorf("%+v.IsBright(100) = %v, want %v", tt.c, got, tt.want)
		}
	}
}

// TestShippedBallVariants 校验随程序发布的变体文件
func TestShippedBallVariants(t *testing.T) {
	data, err := os.ReadFile("../../data/ball_variants.yaml")
	if err != nil {
		t.Skipf("data file not available: %v", err)
	}

	set, err := ParseBallVariants(data)
	if err != nil {
		t.Fatalf("shipped variants invalid: %v", err)
	}

	for _, name := range []string{"enhanced", "loader", "stress"} {
		if _, err := set.Get(name); err != nil {
			t.Errorf("missing variant %q", name)
		}
	}
	if names := set.Names(); len(names) != 3 || names[0] != "enhanced" {
		t.Errorf("Names() = %v, want sorted three variants", names)
	}

	loader, _ := set.Get("loader")
	if !loader.Intro.Enabled || !loader.Eruptions {
		t.Error("loader should have intro and eruptions enabled")
	}
	if loader.LabelText() != "afrAIca" {
		t.Errorf("LabelText() = %q, want afrAIca", loader.LabelText())
	}

	stress, _ := set.Get("stress")
	if stress.Intro.Enabled || stress.Eruptions {
		t.Error("stress ball should not erupt or run the intro")
	}

	enhanced, _ := set.Get("enhanced")
	if enhanced.MouseRadius != 120 || enhanced.ScaleFactor != 0.22 || !enhanced.Breathing {
		t.Errorf("enhanced variant mismatch: %+v", enhanced)
	}
}
