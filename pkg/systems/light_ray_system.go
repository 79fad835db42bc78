package systems

import (
	"log"
	"math"
	"math/rand"

	perlin "github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/decker502/afraica/pkg/components"
	"github.com/decker502/afraica/pkg/config"
	"github.com/decker502/afraica/pkg/ecs"
	"github.com/decker502/afraica/pkg/entities"
	"github.com/decker502/afraica/pkg/utils"
)

const (
	lightNear = 0.1
	lightFar  = 1000.0

	// lightPointSize 光尘在世界空间中的尺寸
	lightPointSize = 0.1
)

// 三盏方向光的方向（指向光源）
var (
	keyLightDir  = mgl64.Vec3{2, 3, 5}
	fillLightDir = mgl64.Vec3{-2, 1, 3}
	rimLightDir  = mgl64.Vec3{0, -2, -3}
)

// ProjectedMote 投影到屏幕的光尘
type ProjectedMote struct {
	X, Y   float64
	Radius float64
	Alpha  float64
	Color  config.RGB
}

// ProjectedLight 投影到屏幕的光晕（点光源或方向光的泛光）
type ProjectedLight struct {
	X, Y      float64
	Radius    float64
	Intensity float64
	Color     config.RGB
}

// LightRaySystem 体积光场景
//
// 一千个光尘组成的圆柱形光柱缓慢自转，并在 Perlin 噪声驱动下轻微漂移；
// 8 个点光源在半径 8 的球面上公转并呼吸；key/fill/rim 三盏方向光的强度
// 由 SetIntensity / IntensityTo 控制。摄像机在 z = 5 处轻微晃动并始终看向原点。
type LightRaySystem struct {
	em    *ecs.EntityManager
	rng   *rand.Rand
	noise *perlin.Perlin

	width, height float64
	time          float64
	spinX, spinY  float64

	intensity float64
	tween     *utils.Tween

	motes  []ProjectedMote
	lights []ProjectedLight
	washes []ProjectedLight
}

// NewLightRaySystem 创建体积光系统
func NewLightRaySystem(em *ecs.EntityManager, rng *rand.Rand) *LightRaySystem {
	return &LightRaySystem{
		em:        em,
		rng:       rng,
		noise:     perlin.NewPerlin(2, 2, 3, rng.Int63()),
		intensity: config.LightDefaultIntensity,
	}
}

// Reset 设置视口尺寸，首次调用时创建光尘与点光源
//
// 光柱在世界空间中定义，尺寸变化只影响投影，因此重复调用不会重建实体。
func (s *LightRaySystem) Reset(width, height float64) {
	s.width, s.height = width, height
	if len(ecs.GetEntitiesWith1[*components.LightMoteComponent](s.em)) == 0 {
		entities.CreateLightMotes(s.em, config.LightMoteCount, s.rng)
		entities.CreateAtmosphericLights(s.em, s.rng)
		log.Printf("[LightRaySystem] Created %d light motes and %d atmospheric lights",
			config.LightMoteCount, config.AtmosphericLightCount)
	}
}

// SetIntensity 立即设置方向光强度，并取消进行中的渐变
func (s *LightRaySystem) SetIntensity(v float64) {
	s.tween = nil
	s.intensity = v
}

// IntensityTo 在 duration 秒内把方向光强度渐变到 target
func (s *LightRaySystem) IntensityTo(target, duration float64) {
	s.tween = utils.NewTween(s.intensity, target, duration, utils.EaseInOutQuad)
}

// Intensity key 光强度
func (s *LightRaySystem) Intensity() float64 { return s.intensity }

// FillIntensity fill 光强度
func (s *LightRaySystem) FillIntensity() float64 { return s.intensity * config.LightFillRatio }

// RimIntensity rim 光强度
func (s *LightRaySystem) RimIntensity() float64 { return s.intensity * config.LightRimRatio }

// Update 推进 dt 秒（渐变使用 dt，其余动画按帧推进）
func (s *LightRaySystem) Update(dt float64) {
	s.time += twinkleTimeStep
	if s.tween != nil {
		s.intensity = s.tween.Update(dt)
		if s.tween.Done() {
			s.tween = nil
		}
	}

	s.spinY += config.LightSpinPerTick
	s.spinX = math.Sin(s.time*0.5) * 0.1

	if s.width <= 0 || s.height <= 0 {
		return
	}
	viewProj := s.viewProjection()

	s.updateAtmosphericLights(viewProj)
	s.projectMotes(viewProj)
	s.projectWashes()
}

// viewProjection 摄像机在 (sin(0.2t)*0.5, cos(0.15t)*0.3, 5) 看向原点
func (s *LightRaySystem) viewProjection() mgl64.Mat4 {
	eye := mgl64.Vec3{math.Sin(s.time*0.2) * 0.5, math.Cos(s.time*0.15) * 0.3, config.LightCameraDistance}
	view := mgl64.LookAtV(eye, mgl64.Vec3{}, mgl64.Vec3{0, 1, 0})
	proj := mgl64.Perspective(mgl64.DegToRad(config.LightFOV), s.width/s.height, lightNear, lightFar)
	return proj.Mul4(view)
}

// project 世界坐标投影到屏幕，返回屏幕坐标与裁剪空间 w（即视深）
func (s *LightRaySystem) project(m mgl64.Mat4, p mgl64.Vec3) (x, y, depth float64, ok bool) {
	clip := m.Mul4x1(p.Vec4(1))
	if clip[3] <= lightNear {
		return 0, 0, 0, false
	}
	ndcX := clip[0] / clip[3]
	ndcY := clip[1] / clip[3]
	return (ndcX + 1) / 2 * s.width, (1 - ndcY) / 2 * s.height, clip[3], true
}

func (s *LightRaySystem) updateAtmosphericLights(viewProj mgl64.Mat4) {
	s.lights = s.lights[:0]
	for _, id := range ecs.GetEntitiesWith1[*components.AtmosphericLightComponent](s.em) {
		l, _ := ecs.GetComponent[*components.AtmosphericLightComponent](s.em, id)
		t := s.time + float64(l.Index)*0.5
		l.Intensity = 0.2 + math.Sin(t*2)*0.1

		theta := float64(l.Index)/config.AtmosphericLightCount*2*math.Pi + t*0.1
		phi := math.Pi/2 + math.Sin(t*0.3)*0.2
		r := config.AtmosphericLightOrbit
		l.X3 = r * math.Sin(phi) * math.Cos(theta)
		l.Y3 = r * math.Sin(phi) * math.Sin(theta)
		l.Z3 = r * math.Cos(phi)

		x, y, depth, ok := s.project(viewProj, mgl64.Vec3{l.X3, l.Y3, l.Z3})
		if !ok {
			continue
		}
		s.lights = append(s.lights, ProjectedLight{
			X: x, Y: y,
			Radius:    config.AtmosphericLightRadius * config.LightCameraDistance / depth,
			Intensity: l.Intensity,
			Color:     l.Color,
		})
	}
}

func (s *LightRaySystem) projectMotes(viewProj mgl64.Mat4) {
	model := mgl64.HomogRotate3DX(s.spinX).Mul4(mgl64.HomogRotate3DY(s.spinY))
	m := viewProj.Mul4(model)
	alpha := math.Min(1, config.LightMoteOpacity*s.intensity/config.LightDefaultIntensity)
	drift := s.time * 0.2

	s.motes = s.motes[:0]
	for _, id := range ecs.GetEntitiesWith1[*components.LightMoteComponent](s.em) {
		mote, _ := ecs.GetComponent[*components.LightMoteComponent](s.em, id)
		p := mgl64.Vec3{
			mote.X3 + s.noise.Noise2D(mote.NoiseSeed, drift)*config.LightNoiseAmplitude,
			mote.Y3 + s.noise.Noise2D(drift, mote.NoiseSeed)*config.LightNoiseAmplitude,
			mote.Z3,
		}
		x, y, depth, ok := s.project(m, p)
		if !ok {
			continue
		}
		s.motes = append(s.motes, ProjectedMote{
			X: x, Y: y,
			Radius: lightPointSize * mote.Size / 2 * (s.height / 2) / depth,
			Alpha:  alpha,
			Color:  mote.Color,
		})
	}
}

// projectWashes 方向光没有位置，按方向在视口边缘放置泛光
func (s *LightRaySystem) projectWashes() {
	reach := math.Min(s.width, s.height) * 0.5
	wash := func(dir mgl64.Vec3, c config.RGB, intensity float64) ProjectedLight {
		d := dir.Normalize()
		return ProjectedLight{
			X:         s.width/2 + d[0]*reach,
			Y:         s.height/2 - d[1]*reach,
			Radius:    reach * 1.5,
			Intensity: intensity,
			Color:     c,
		}
	}
	s.washes = append(s.washes[:0],
		wash(keyLightDir, config.LightKeyColor, s.Intensity()),
		wash(fillLightDir, config.LightFillColor, s.FillIntensity()),
		wash(rimLightDir, config.LightRimColor, s.RimIntensity()),
	)
}

// Motes 本帧投影后的光尘
func (s *LightRaySystem) Motes() []ProjectedMote { return s.motes }

// Lights 本帧投影后的点光源
func (s *LightRaySystem) Lights() []ProjectedLight { return s.lights }

// Washes 本帧三盏方向光的泛光
func (s *LightRaySystem) Washes() []ProjectedLight { return s.washes }
