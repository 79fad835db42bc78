package components

import "github.com/decker502/afraica/pkg/config"

// EruptionType 喷发档位
type EruptionType int

const (
	EruptionGentle EruptionType = iota
	EruptionMediumType
	EruptionStrongType
	// EruptionCompanion 伴随主喷发出现的较小喷发
	EruptionCompanion
	// EruptionScripted 立即爆炸与最终爆炸
	EruptionScripted
)

// String 日志用名称
func (t EruptionType) String() string {
	switch t {
	case EruptionGentle:
		return "gentle"
	case EruptionMediumType:
		return "medium"
	case EruptionStrongType:
		return "strong"
	case EruptionCompanion:
		return "companion"
	case EruptionScripted:
		return "scripted"
	default:
		return "unknown"
	}
}

// EruptionState 喷发生命周期状态
type EruptionState int

const (
	// EruptionActive life > threshold，正在施力
	EruptionActive EruptionState = iota
	// EruptionFading 0 < life <= threshold，不再施力
	EruptionFading
	// EruptionExpired life <= 0，同一帧内移除
	EruptionExpired
)

// Eruption 一个正在进行的径向力脉冲
type Eruption struct {
	X, Y     float64 // 屏幕坐标
	Radius   float64
	Strength float64
	Life     float64 // 剩余寿命（帧）
	MaxLife  float64

	Type    EruptionType
	Profile config.EruptionTier
}

// State 根据剩余寿命计算状态
func (e *Eruption) State() EruptionState {
	switch {
	case e.Life <= 0:
		return EruptionExpired
	case e.Life > e.Profile.Threshold:
		return EruptionActive
	default:
		return EruptionFading
	}
}

// Pulse 当前脉冲强度，非 Active 状态为 0
func (e *Eruption) Pulse() float64 {
	if e.State() != EruptionActive {
		return 0
	}
	return (e.Life - e.Profile.Threshold) / e.Profile.Denominator
}
