package config

// 背景氛围层配置：星空、星座、体积光、电磁场

// 流星
const (
	ShootingStarChance   = 0.005
	ShootingStarMaxAlive = 3
	ShootingStarLife     = 100.0
	ShootingStarTail     = 20.0
	// ShootingStarBounds 超出视口该倍数即移除
	ShootingStarBounds = 1.2
	// ShootingStarSpeedMin / Range 初速度（像素/帧）
	ShootingStarSpeedMin   = 4.0
	ShootingStarSpeedRange = 4.0
)

// ParallaxSmoothing 视差平滑系数
const ParallaxSmoothing = 0.05

// StarTwinkleSpeedMin / Range 闪烁角速度
const (
	StarTwinkleSpeedMin   = 0.01
	StarTwinkleSpeedRange = 0.02
)

// ConstellationTier 一类星座节点
type ConstellationTier struct {
	Count     int
	Color     RGB
	RadiusMin float64
	RadiusMax float64
	Speed     float64
	// GlowBlur 辉光半径，0 表示无辉光
	GlowBlur float64
}

// 星座节点（按层级从高到低）
var (
	ConstellationExecutive = ConstellationTier{Count: 15, Color: RGB{200, 16, 46}, RadiusMin: 3, RadiusMax: 6, Speed: 0.3, GlowBlur: 15}
	ConstellationData      = ConstellationTier{Count: 40, Color: RGB{79, 175, 255}, RadiusMin: 2, RadiusMax: 4, Speed: 0.5, GlowBlur: 8}
	ConstellationNetwork   = ConstellationTier{Count: 80, Color: RGB{255, 255, 255}, RadiusMin: 1, RadiusMax: 2, Speed: 0.8}
)

const (
	ConstellationPointerRadius   = 150.0
	ConstellationPointerStrength = 0.05
	ConstellationLinkDistance    = 120.0
	ConstellationLinkOpacity     = 0.3
	// ConstellationIntensify Recognition 阶段的速度倍数
	ConstellationIntensify = 1.2
)

// 体积光
var (
	LightKeyColor  = RGB{200, 16, 46}
	LightFillColor = RGB{79, 175, 255}
	LightRimColor  = RGB{255, 255, 255}

	// AtmosphericLightColors 八个点光源循环使用的颜色
	AtmosphericLightColors = []RGB{{200, 16, 46}, {79, 175, 255}, {255, 107, 107}, {255, 255, 255}}
)

const (
	LightDefaultIntensity = 0.6
	LightAmbientIntensity = 0.2
	LightFillRatio        = 0.3
	LightRimRatio         = 0.5

	LightMoteCount      = 1000
	LightMoteRadius     = 5.0
	LightMoteHeight     = 10.0
	LightMoteOpacity    = 0.6
	LightSpinPerTick    = 0.001
	LightNoiseAmplitude = 0.15

	AtmosphericLightCount  = 8
	AtmosphericLightOrbit  = 8.0
	AtmosphericLightRadius = 220.0 // 屏幕上的光晕半径（像素）

	// LightCameraDistance / LightFOV 投影相机参数
	LightCameraDistance = 5.0
	LightFOV            = 60.0
)

// 电磁场与数据流（增强球）
var (
	OrnamentRed  = RGB{200, 16, 46}
	OrnamentBlue = RGB{79, 175, 255}
	// HologramColor 文字粒子的全息叠影颜色
	HologramColor = RGB{0, 255, 255}
)

const (
	FieldNodeCount       = 24
	FieldBaseRadius      = 180.0
	FieldRadiusVariation = 20.0
	FieldWobble          = 10.0
	FieldSpeedMin        = 0.01
	FieldSpeedRange      = 0.02
	FieldRedChance       = 0.3

	DataStreamCount       = 8
	DataStreamInterval    = 0.5
	DataStreamStartRadius = 250.0
	DataStreamEase        = 0.05
	DataStreamFade        = 0.02

	// HologramPeriod 全息强度 0->1 的单程时长（秒）
	HologramPeriod = 4.0
	// BreathingPeriod 呼吸缩放单程时长（秒）
	BreathingPeriod = 3.0
	BreathingPeak   = 1.04
	BreathingEase   = 0.02
)
