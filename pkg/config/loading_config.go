package config

import (
	"errors"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/decker502/afraica/pkg/embedded"
)

// LoadingSequencePath 开场加载序列配置文件（嵌入资源路径）
const LoadingSequencePath = "data/loading_sequence.yaml"

// BackdropImagePath 静态背景图（可选资源，缺失时使用纯色背景）
const BackdropImagePath = "data/backdrop.png"

// ErrInvalidSequence 加载序列配置校验失败
var ErrInvalidSequence = errors.New("invalid loading sequence")

// sequenceTolerance 阶段时长之和与总时长比较时允许的浮点误差
const sequenceTolerance = 1e-6

// PhaseConfig 加载序列中的一个阶段
type PhaseConfig struct {
	Name     string  `yaml:"name"`
	Duration float64 `yaml:"duration"` // 秒
	Message  int     `yaml:"message"`  // 进入阶段时强制显示的消息索引
	// Actions 进入阶段时按顺序执行的动作名称
	Actions []string `yaml:"actions"`
}

// MessageCycleConfig 消息轮播时序
type MessageCycleConfig struct {
	Hold      float64 `yaml:"hold"`
	Crossfade float64 `yaml:"crossfade"`
}

// FallbackConfig 已看过开场时的简短加载路径时序
type FallbackConfig struct {
	WordStagger      float64 `yaml:"wordStagger"`
	WordFade         float64 `yaml:"wordFade"`
	WordRise         float64 `yaml:"wordRise"`
	ProgressDelay    float64 `yaml:"progressDelay"`
	ProgressDuration float64 `yaml:"progressDuration"`
	HideAfter        float64 `yaml:"hideAfter"`
	HideFade         float64 `yaml:"hideFade"`
}

// LoadingSequence 开场加载序列配置
type LoadingSequence struct {
	TotalDuration  float64            `yaml:"totalDuration"`
	PollInterval   float64            `yaml:"pollInterval"`
	FadeOut        float64            `yaml:"fadeOut"`
	FadeOutSkipped float64            `yaml:"fadeOutSkipped"`
	Messages       []string           `yaml:"messages"`
	MessageCycle   MessageCycleConfig `yaml:"messageCycle"`
	Phases         []PhaseConfig      `yaml:"phases"`
	Fallback       FallbackConfig     `yaml:"fallback"`
}

// Validate 验证序列配置
//
// 阶段时长必须为正，且之和等于 TotalDuration；
// 阶段引用的消息索引必须存在。
func (s *LoadingSequence) Validate() error {
	if s.TotalDuration <= 0 {
		return fmt.Errorf("%w: totalDuration must be > 0, got %.2f", ErrInvalidSequence, s.TotalDuration)
	}
	if s.PollInterval <= 0 {
		return fmt.Errorf("%w: pollInterval must be > 0", ErrInvalidSequence)
	}
	if s.FadeOut < 0 || s.FadeOutSkipped < 0 {
		return fmt.Errorf("%w: fade durations must be >= 0", ErrInvalidSequence)
	}
	if len(s.Phases) == 0 {
		return fmt.Errorf("%w: no phases defined", ErrInvalidSequence)
	}

	sum := 0.0
	for i, p := range s.Phases {
		if p.Duration <= 0 {
			return fmt.Errorf("%w: phase %d (%s) duration must be > 0, got %.2f", ErrInvalidSequence, i, p.Name, p.Duration)
		}
		if p.Message < 0 || p.Message >= len(s.Messages) {
			return fmt.Errorf("%w: phase %d (%s) message index %d out of range [0,%d)",
				ErrInvalidSequence, i, p.Name, p.Message, len(s.Messages))
		}
		sum += p.Duration
	}
	if math.Abs(sum-s.TotalDuration) > sequenceTolerance {
		return fmt.Errorf("%w: phase durations sum to %.2f, expected %.2f", ErrInvalidSequence, sum, s.TotalDuration)
	}

	if s.MessageCycle.Hold <= 0 || s.MessageCycle.Crossfade < 0 {
		return fmt.Errorf("%w: invalid message cycle timing", ErrInvalidSequence)
	}
	return nil
}

// PhaseStart 返回第 index 个阶段的开始时间（前面阶段时长之和）
func (s *LoadingSequence) PhaseStart(index int) float64 {
	start := 0.0
	for i := 0; i < index && i < len(s.Phases); i++ {
		start += s.Phases[i].Duration
	}
	return start
}

// ParseLoadingSequence 解析并校验序列 YAML
func ParseLoadingSequence(data []byte) (*LoadingSequence, error) {
	var seq LoadingSequence
	if err := yaml.Unmarshal(data, &seq); err != nil {
		return nil, fmt.Errorf("failed to parse loading sequence: %w", err)
	}
	if err := seq.Validate(); err != nil {
		return nil, err
	}
	return &seq, nil
}

// LoadLoadingSequence 从嵌入资源加载序列配置
func LoadLoadingSequence(path string) (*LoadingSequence, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read loading sequence: %w", err)
	}
	return ParseLoadingSequence(data)
}

// DefaultLoadingSequence 返回内置的 15 秒序列
// 当配置文件缺失时使用，保持与 data/loading_sequence.yaml 一致
func DefaultLoadingSequence() *LoadingSequence {
	return &LoadingSequence{
		TotalDuration:  15.0,
		PollInterval:   0.05,
		FadeOut:        1.2,
		FadeOutSkipped: 0.6,
		Messages: []string{
			"Awakening intelligence",
			"Recognizing patterns across a continent",
			"Connecting data, people and ideas",
			"Optimizing for impact",
			"Welcome to afrAIca",
		},
		MessageCycle: MessageCycleConfig{Hold: 3.0, Crossfade: 0.4},
		Phases: []PhaseConfig{
			{Name: "Emergence", Duration: 3.0, Message: 0, Actions: []string{"emergence", "fadeInComponents", "startProgressBar"}},
			{Name: "Recognition", Duration: 2.5, Message: 1, Actions: []string{"logoBuilding", "intensifyParticles", "enhanceLighting"}},
			{Name: "Intelligence", Duration: 4.0, Message: 2, Actions: []string{"demonstrateIntelligence", "activateDataStreams", "showHologram"}},
			{Name: "Optimization", Duration: 3.5, Message: 3, Actions: []string{"optimizeRigidity", "synchronizeElements", "buildToClimax"}},
			{Name: "Transformation", Duration: 2.0, Message: 4, Actions: []string{"finalTransformation", "prepareTransition", "completeLoading"}},
		},
		Fallback: FallbackConfig{
			WordStagger:      0.2,
			WordFade:         0.6,
			WordRise:         20,
			ProgressDelay:    0.3,
			ProgressDuration: 1.2,
			HideAfter:        1.5,
			HideFade:         0.5,
		},
	}
}
