package components

import "github.com/decker502/afraica/pkg/config"

// BallParticle 粒子球中的单个粒子
//
// 粒子球包含上万个粒子，逐帧排序和遍历，因此不作为 ECS 实体存储，
// 而是由 BallLayer 持有的切片直接管理。
type BallParticle struct {
	// 屏幕坐标与速度（像素，像素/帧）
	X, Y   float64
	VX, VY float64

	// BaseX/BaseY 本帧旋转后的目标屏幕坐标
	BaseX, BaseY float64

	// 单位球面上的基准坐标（不随帧变化）
	BaseX3D, BaseY3D, BaseZ3D float64

	// Z 本帧旋转后的深度，[-1, 1]，越大越靠近观察者
	Z float64

	Radius float64
	Alpha  float64
	Color  config.RGB

	// Density 排斥力倍数
	Density       float64
	GlowIntensity float64
	PulseOffset   float64

	// IsText 粒子颜色来自文字贴图
	IsText bool
	// IsExplosion 最终爆炸追加的粒子，重新生成时被丢弃
	IsExplosion bool
	// Glowing 被强力喷发点亮
	Glowing bool
}
