package config

import (
	"errors"
	"fmt"
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/decker502/afraica/pkg/embedded"
)

// BallVariantsPath 粒子球变体配置文件（嵌入资源路径）
const BallVariantsPath = "data/ball_variants.yaml"

var (
	// ErrInvalidVariant 变体配置校验失败
	ErrInvalidVariant = errors.New("invalid ball variant")

	// ErrUnknownVariant 请求的变体名称不存在
	ErrUnknownVariant = errors.New("unknown ball variant")
)

// RGB 粒子颜色（0-255 通道）
type RGB struct {
	R, G, B uint8
}

// IsBright 判断颜色是否需要叠加辉光（红或绿通道超过阈值）
func (c RGB) IsBright(threshold uint8) bool {
	return c.R > threshold || c.G > threshold
}

// HexColor 以 "#RRGGBB" 形式书写的 YAML 颜色
type HexColor struct {
	RGB
}

// UnmarshalYAML 解析十六进制颜色字符串
func (h *HexColor) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return fmt.Errorf("color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	h.RGB = RGB{R: r, G: g, B: b}
	return nil
}

// MarshalYAML 输出十六进制颜色字符串
func (h HexColor) MarshalYAML() (any, error) {
	return colorful.Color{
		R: float64(h.R) / 255,
		G: float64(h.G) / 255,
		B: float64(h.B) / 255,
	}.Hex(), nil
}

// Palette 粒子球调色板
type Palette struct {
	// Primary 文字带内非强调像素的颜色（白色）
	Primary HexColor `yaml:"primary"`
	// Accent 强调色（樱桃红），文字带内红色像素和 15% 的背景粒子
	Accent HexColor `yaml:"accent"`
	// Neutral 其余背景粒子颜色（石板灰）
	Neutral HexColor `yaml:"neutral"`
}

// TextSegment 文字贴图中的一段文字及其颜色
type TextSegment struct {
	Text  string   `yaml:"text"`
	Color HexColor `yaml:"color"`
}

// IntroConfig 开场旋转/爆发时间线（仅 loader 变体启用）
type IntroConfig struct {
	Enabled bool `yaml:"enabled"`
	// SpinEnd 旋转阶段结束时间（秒），之后刚性归零并启用喷发
	SpinEnd float64 `yaml:"spinEnd"`
	// InitialSpinSpeed 初始每帧旋转增量，随进度二次衰减
	InitialSpinSpeed float64 `yaml:"initialSpinSpeed"`
	// FinalExplosionAt 最终爆炸触发时间（秒）
	FinalExplosionAt float64 `yaml:"finalExplosionAt"`
}

// BallVariant 一个粒子球视觉变体的全部可调参数
//
// 三个变体（loader / stress / enhanced）共享同一套生成、物理与渲染代码，
// 仅通过本结构体区分。
type BallVariant struct {
	Name string `yaml:"name"`

	ParticleCount int           `yaml:"particleCount"`
	Palette       Palette       `yaml:"palette"`
	Label         []TextSegment `yaml:"label"`

	// 力学参数
	MouseRadius       float64 `yaml:"mouseRadius"`
	RepulsionStrength float64 `yaml:"repulsionStrength"`
	Rigidity          float64 `yaml:"rigidity"`
	Friction          float64 `yaml:"friction"`
	SpringFactor      float64 `yaml:"springFactor"`

	// 布局参数
	ScaleFactor   float64 `yaml:"scaleFactor"`
	CenterOffsetY float64 `yaml:"centerOffsetY"`

	// 取色参数
	TextBandHeight float64 `yaml:"textBandHeight"`
	AccentChance   float64 `yaml:"accentChance"`

	// 绘制参数
	RadiusScale   float64 `yaml:"radiusScale"`
	RadiusBias    float64 `yaml:"radiusBias"`
	GlowBlur      float64 `yaml:"glowBlur"`
	GlowThreshold uint8   `yaml:"glowThreshold"`
	// GlowVariance 辉光半径乘以每个粒子的 GlowIntensity
	GlowVariance  bool    `yaml:"glowVariance"`
	Pulse         bool    `yaml:"pulse"`
	Breathing     bool    `yaml:"breathing"`
	Hologram      bool    `yaml:"hologram"`
	Ornaments     bool    `yaml:"ornaments"`

	// 背景星空
	StarCount        int     `yaml:"starCount"`
	StarMaxRadius    float64 `yaml:"starMaxRadius"`
	StarMinRadius    float64 `yaml:"starMinRadius"`
	StarDrift        float64 `yaml:"starDrift"`
	StarAlphaMin     float64 `yaml:"starAlphaMin"`
	StarAlphaScale   float64 `yaml:"starAlphaScale"`
	StarTwinkle      bool    `yaml:"starTwinkle"`
	ShootingStars    bool    `yaml:"shootingStars"`
	ParallaxStrength float64 `yaml:"parallaxStrength"`

	// 喷发与开场
	Eruptions bool        `yaml:"eruptions"`
	Intro     IntroConfig `yaml:"intro"`
}

// Validate 验证变体配置有效性
func (v *BallVariant) Validate() error {
	if v.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidVariant)
	}
	if v.ParticleCount <= 0 {
		return fmt.Errorf("%w: %s: particleCount must be > 0, got %d", ErrInvalidVariant, v.Name, v.ParticleCount)
	}
	if v.Rigidity < 0 || v.Rigidity > 1 {
		return fmt.Errorf("%w: %s: rigidity must be in [0,1], got %.2f", ErrInvalidVariant, v.Name, v.Rigidity)
	}
	if v.Friction <= 0 || v.Friction > 1 {
		return fmt.Errorf("%w: %s: friction must be in (0,1], got %.2f", ErrInvalidVariant, v.Name, v.Friction)
	}
	if v.MouseRadius <= 0 {
		return fmt.Errorf("%w: %s: mouseRadius must be > 0", ErrInvalidVariant, v.Name)
	}
	if v.ScaleFactor <= 0 {
		return fmt.Errorf("%w: %s: scaleFactor must be > 0", ErrInvalidVariant, v.Name)
	}
	if v.TextBandHeight <= 0 || v.TextBandHeight > 1 {
		return fmt.Errorf("%w: %s: textBandHeight must be in (0,1], got %.2f", ErrInvalidVariant, v.Name, v.TextBandHeight)
	}
	if v.AccentChance < 0 || v.AccentChance > 1 {
		return fmt.Errorf("%w: %s: accentChance must be in [0,1]", ErrInvalidVariant, v.Name)
	}
	if len(v.Label) == 0 {
		return fmt.Errorf("%w: %s: label must have at least one segment", ErrInvalidVariant, v.Name)
	}
	if v.Intro.Enabled && v.Intro.FinalExplosionAt < v.Intro.SpinEnd {
		return fmt.Errorf("%w: %s: finalExplosionAt(%.1f) before spinEnd(%.1f)",
			ErrInvalidVariant, v.Name, v.Intro.FinalExplosionAt, v.Intro.SpinEnd)
	}
	return nil
}

// LabelText 返回完整的标签文字
func (v *BallVariant) LabelText() string {
	s := ""
	for _, seg := range v.Label {
		s += seg.Text
	}
	return s
}

// BallVariantSet 按名称索引的变体集合
type BallVariantSet struct {
	Variants map[string]*BallVariant `yaml:"variants"`
}

// Get 按名称获取变体
func (s *BallVariantSet) Get(name string) (*BallVariant, error) {
	v, ok := s.Variants[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
	}
	return v, nil
}

// Names 返回排序后的变体名称
func (s *BallVariantSet) Names() []string {
	names := make([]string, 0, len(s.Variants))
	for name := range s.Variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseBallVariants 解析变体 YAML
//
// 每个变体先以 DefaultBallVariant 作为底，再叠加 YAML 中给出的字段，
// 因此 YAML 只需写出与默认值不同的部分。
func ParseBallVariants(data []byte) (*BallVariantSet, error) {
	var raw struct {
		Variants map[string]yaml.Node `yaml:"variants"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse ball variants: %w", err)
	}
	if len(raw.Variants) == 0 {
		return nil, fmt.Errorf("%w: no variants defined", ErrInvalidVariant)
	}

	set := &BallVariantSet{Variants: make(map[string]*BallVariant, len(raw.Variants))}
	for name, node := range raw.Variants {
		v := DefaultBallVariant()
		v.Name = name
		if err := node.Decode(v); err != nil {
			return nil, fmt.Errorf("failed to decode variant %q: %w", name, err)
		}
		v.Name = name
		if err := v.Validate(); err != nil {
			return nil, err
		}
		set.Variants[name] = v
	}
	return set, nil
}

// LoadBallVariants 从嵌入资源加载变体配置
func LoadBallVariants(path string) (*BallVariantSet, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ball variants: %w", err)
	}
	return ParseBallVariants(data)
}

// DefaultBallVariant 返回 loader 变体的默认参数
func DefaultBallVariant() *BallVariant {
	return &BallVariant{
		Name:          "loader",
		ParticleCount: 15000,
		Palette: Palette{
			Primary: HexColor{RGB{255, 255, 255}},
			Accent:  HexColor{RGB{222, 49, 99}},
			Neutral: HexColor{RGB{75, 85, 99}},
		},
		Label: []TextSegment{
			{Text: "afr", Color: HexColor{RGB{0, 0, 255}}},
			{Text: "AI", Color: HexColor{RGB{255, 0, 0}}},
			{Text: "ca", Color: HexColor{RGB{0, 128, 0}}},
		},
		MouseRadius:       100,
		RepulsionStrength: 5,
		Rigidity:          0.25,
		Friction:          0.95,
		SpringFactor:      0.4,
		ScaleFactor:       0.18,
		CenterOffsetY:     38,
		TextBandHeight:    0.4,
		AccentChance:      0.15,
		RadiusScale:       2,
		RadiusBias:        0.5,
		GlowBlur:          15,
		GlowThreshold:     100,
		StarCount:         200,
		StarMaxRadius:     1.2,
		StarDrift:         0.05,
		StarAlphaMin:      0.5,
		StarAlphaScale:    0.5,
		ShootingStars:     true,
		ParallaxStrength:  0.01,
	}
}
