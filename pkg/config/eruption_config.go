package config

// 喷发（Eruption）配置常量
// 所有寿命单位为帧（60 TPS 下每帧一次递减）

// EruptionTier 喷发强度档位的随机区间与脉冲曲线
//
// 脉冲强度 pulse = (life - Threshold) / Denominator（life > Threshold 时），
// 否则为 0。各档位的 Threshold/Denominator 决定了视觉节奏，不可合并为统一衰减。
type EruptionTier struct {
	// Chance 累计概率上界（随机数小于该值时选中此档）
	Chance float64

	StrengthMin, StrengthRange float64
	SizeMin, SizeRange         float64 // 乘以球体缩放
	LifeMin, LifeRange         float64

	Threshold   float64
	Denominator float64
	Growth      float64
}

// 随机喷发档位（按累计概率排列）
var (
	// EruptionGentlePuff 小型轻喷（40%）
	EruptionGentlePuff = EruptionTier{
		Chance:        0.4,
		StrengthMin:   8,
		StrengthRange: 12,
		SizeMin:       0.08,
		SizeRange:     0.07,
		LifeMin:       30,
		LifeRange:     20,
		Threshold:     25,
		Denominator:   5,
		Growth:        1.5,
	}

	// EruptionMedium 中型喷发（30%）
	EruptionMedium = EruptionTier{
		Chance:        0.7,
		StrengthMin:   20,
		StrengthRange: 15,
		SizeMin:       0.12,
		SizeRange:     0.08,
		LifeMin:       45,
		LifeRange:     25,
		Threshold:     35,
		Denominator:   8,
		Growth:        2.2,
	}

	// EruptionStrong 强力爆发（30%）
	EruptionStrong = EruptionTier{
		Chance:        1.0,
		StrengthMin:   35,
		StrengthRange: 20,
		SizeMin:       0.18,
		SizeRange:     0.12,
		LifeMin:       60,
		LifeRange:     30,
		Threshold:     50,
		Denominator:   12,
		Growth:        3.5,
	}

	// EruptionFinal 脚本化爆炸（立即爆炸与最终爆炸）只使用脉冲曲线
	EruptionFinal = EruptionTier{
		Threshold:   80,
		Denominator: 20,
		Growth:      6.0,
	}
)

const (
	// EruptionSpawnInterval 随机喷发检查间隔（帧）
	EruptionSpawnInterval = 15

	// EruptionSpawnChance 每次检查触发喷发的概率
	EruptionSpawnChance = 0.95

	// EruptionCompanionChance 伴随喷发概率
	EruptionCompanionChance = 0.4

	// EruptionCompanionOffset 伴随喷发相对主喷发的最大偏移（总跨度，像素）
	EruptionCompanionOffset = 80.0

	// EruptionCompanionSize / Life / Strength 伴随喷发相对主喷发的比例
	EruptionCompanionSize     = 0.7
	EruptionCompanionLife     = 0.8
	EruptionCompanionStrength = 0.6

	// EruptionJitter 喷发中心随机抖动（总跨度，像素）
	EruptionJitter = 30.0

	// EruptionForceDistance 力的距离系数：force = strength*pulse/(d*EruptionForceDistance)
	EruptionForceDistance = 0.3

	// EruptionGrowthPulse 粒子开始变大的脉冲阈值
	EruptionGrowthPulse = 0.5

	// EruptionMaxParticleRadius 喷发导致的粒子半径上限
	EruptionMaxParticleRadius = 8.0
)

// ExplosionPoint 脚本化爆炸点（相对球心的比例坐标）
type ExplosionPoint struct {
	X, Y     float64
	Strength float64
}

// 立即爆炸（释放时刻）参数
const (
	ImmediateExplosionSpread = 150.0
	ImmediateExplosionRadius = 120.0
	ImmediateExplosionLife   = 80.0
)

// ImmediateExplosionPoints 释放时刻围绕球心的 5 个固定爆炸点
var ImmediateExplosionPoints = []ExplosionPoint{
	{X: 0, Y: 0, Strength: 40},
	{X: -0.2, Y: -0.15, Strength: 35},
	{X: 0.2, Y: -0.15, Strength: 35},
	{X: -0.25, Y: 0.2, Strength: 30},
	{X: 0.25, Y: 0.2, Strength: 30},
}

// 最终爆炸参数
const (
	FinalExplosionSpread         = 300.0
	FinalExplosionRadius         = 1000.0
	FinalExplosionLife           = 300.0
	FinalExplosionStrengthScale  = 0.15
	FinalExplosionStagger        = 0.2 // 秒
	FinalExplosionParticleFactor = 10
)

// FinalExplosionPoints 最终爆炸的 11 个交错注入点
var FinalExplosionPoints = []ExplosionPoint{
	{X: 0, Y: 0, Strength: 400},
	{X: -0.2, Y: -0.15, Strength: 300},
	{X: 0.2, Y: -0.15, Strength: 300},
	{X: -0.3, Y: 0.2, Strength: 250},
	{X: 0.3, Y: 0.2, Strength: 250},
	{X: 0, Y: -0.3, Strength: 275},
	{X: 0, Y: 0.3, Strength: 275},
	{X: -0.1, Y: 0.1, Strength: 350},
	{X: 0.1, Y: -0.1, Strength: 350},
	{X: -0.4, Y: 0, Strength: 200},
	{X: 0.4, Y: 0, Strength: 200},
}

// 最终爆炸粒子的颜色分布
var (
	ExplosionWhite = RGB{255, 255, 255}
	// ExplosionRed 品牌 "AI" 红，强力喷发会点亮该颜色的粒子
	ExplosionRed = RGB{200, 16, 46}
)

const (
	ExplosionWhiteChance = 0.3
	ExplosionRedChance   = 0.6 // 累计概率，其余为橙色火花
)
