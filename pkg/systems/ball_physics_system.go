package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/decker502/afraica/pkg/components"
	"github.com/decker502/afraica/pkg/config"
	"github.com/decker502/afraica/pkg/entities"
	"github.com/decker502/afraica/pkg/utils"
)

const (
	// rotationEase 旋转向目标角度的指数平滑系数
	rotationEase = 0.05
	// rotationDecay 松手后目标角度每帧衰减
	rotationDecay = 0.95
	// dragSensitivity 拖拽像素到弧度的换算
	dragSensitivity = 0.01

	// pulseFrequency / pulseAmplitude 粒子半径脉动
	pulseFrequency = 3.0
	pulseAmplitude = 0.3
)

// PhysicsInput 一次积分步所需的外部状态
type PhysicsInput struct {
	Width, Height float64

	// 指针位置，PointerActive 为 false 时忽略（指针离开画布）
	PointerX, PointerY float64
	PointerActive      bool

	// Rigidity 当前刚性 [0, 1]，由开场时间线或编排器调整
	Rigidity float64

	RotationX, RotationY float64

	// Breath 呼吸缩放倍数，未启用时为 1
	Breath float64

	// Time 动画时间（秒），用于脉动
	Time float64
}

// RotationState 粒子球的旋转角度及其目标
type RotationState struct {
	X, Y             float64
	TargetX, TargetY float64
}

// Update 向目标平滑一帧；release 为 true 时目标向 0 衰减
func (r *RotationState) Update(release bool) {
	r.Y += (r.TargetY - r.Y) * rotationEase
	r.X += (r.TargetX - r.X) * rotationEase
	if release {
		r.TargetY *= rotationDecay
		r.TargetX *= rotationDecay
	}
}

// Drag 按下指针时的移动量转换为目标角度
func (r *RotationState) Drag(dx, dy float64) {
	r.TargetY += dx * dragSensitivity
	r.TargetX -= dy * dragSensitivity
}

// Spin 开场旋转，直接累加到目标 Y
func (r *RotationState) Spin(delta float64) {
	r.TargetY += delta
}

// ParallaxState 星空视差偏移
type ParallaxState struct {
	X, Y             float64
	TargetX, TargetY float64
}

// Aim 根据指针相对视口中心的偏移设置目标
func (p *ParallaxState) Aim(pointerX, pointerY, width, height, strength float64) {
	p.TargetX = (pointerX - width/2) * strength
	p.TargetY = (pointerY - height/2) * strength
}

// Reset 指针离开时回到原点
func (p *ParallaxState) Reset() {
	p.TargetX, p.TargetY = 0, 0
}

// Update 平滑一帧
func (p *ParallaxState) Update() {
	p.X += (p.TargetX - p.X) * config.ParallaxSmoothing
	p.Y += (p.TargetY - p.Y) * config.ParallaxSmoothing
}

// BreathState 增强变体的呼吸缩放
//
// 目标值在 1.0 与 BreathingPeak 之间往返，实际值再以 BreathingEase 追赶目标。
type BreathState struct {
	Value  float64
	target *utils.Tween
}

// NewBreathState 创建呼吸状态
func NewBreathState() *BreathState {
	return &BreathState{
		Value:  1,
		target: utils.NewYoyo(1, config.BreathingPeak, config.BreathingPeriod, utils.EaseInOutQuad),
	}
}

// Update 推进 dt 秒
func (b *BreathState) Update(dt float64) float64 {
	target := b.target.Update(dt)
	b.Value += (target - b.Value) * config.BreathingEase
	return b.Value
}

// BallPhysicsSystem 粒子球的旋转投影与力学积分
type BallPhysicsSystem struct {
	variant *config.BallVariant
}

// NewBallPhysicsSystem 创建物理系统
func NewBallPhysicsSystem(v *config.BallVariant) *BallPhysicsSystem {
	return &BallPhysicsSystem{variant: v}
}

// RotationMatrix 先绕 Y 再绕 X 的组合旋转
func RotationMatrix(rotX, rotY float64) mgl64.Mat3 {
	return mgl64.Rotate3DX(rotX).Mul3(mgl64.Rotate3DY(-rotY))
}

// Step 对全部粒子执行一帧
//
// 每个粒子：旋转基准坐标得到本帧目标位置与深度；刚性为 1 时直接吸附，
// 否则依次施加指针排斥或弹簧回复、摩擦，再积分速度。没有边界碰撞。
// 最后根据深度更新不透明度与半径。
func (s *BallPhysicsSystem) Step(particles []components.BallParticle, in PhysicsInput) {
	v := s.variant
	cx, cy, scale := entities.BallCenter(v, in.Width, in.Height)
	if in.Breath > 0 {
		scale *= in.Breath
	}
	rot := RotationMatrix(in.RotationX, in.RotationY)
	spring := in.Rigidity * v.SpringFactor

	for i := range particles {
		p := &particles[i]
		r := rot.Mul3x1(mgl64.Vec3{p.BaseX3D, p.BaseY3D, p.BaseZ3D})
		p.Z = r[2]
		p.BaseX = r[0]*scale + cx
		p.BaseY = r[1]*scale + cy

		if in.Rigidity >= 1 {
			p.X, p.Y = p.BaseX, p.BaseY
			p.VX, p.VY = 0, 0
		} else {
			repelled := false
			if in.PointerActive {
				dx := in.PointerX - p.X
				dy := in.PointerY - p.Y
				d := math.Hypot(dx, dy)
				if d > 0 && d < v.MouseRadius {
					force := (v.MouseRadius - d) / v.MouseRadius
					p.VX -= dx / d * force * v.RepulsionStrength * p.Density
					p.VY -= dy / d * force * v.RepulsionStrength * p.Density
					repelled = true
				}
			}
			if !repelled && in.Rigidity > 0 {
				p.VX += (p.BaseX - p.X) * spring
				p.VY += (p.BaseY - p.Y) * spring
			}
			p.VX *= v.Friction
			p.VY *= v.Friction
			p.X += p.VX
			p.Y += p.VY
		}

		p.Alpha = DepthAlpha(p.Z)
		p.Radius = ((p.Z+1.5)/2.5)*v.RadiusScale + v.RadiusBias
		if v.Pulse {
			p.Radius *= math.Sin(in.Time*pulseFrequency+p.PulseOffset)*pulseAmplitude + 1
		}
	}
}

// DepthAlpha 深度 [-1, 1] 映射到不透明度 [0.4, 1]
func DepthAlpha(z float64) float64 {
	return 0.4 + ((z+1)/2)*0.6
}
