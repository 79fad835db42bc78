package entities

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/decker502/afraica/internal/textraster"
	"github.com/decker502/afraica/pkg/components"
	"github.com/decker502/afraica/pkg/config"
)

var (
	// ErrEmptySurface 绘制表面尺寸为零
	ErrEmptySurface = errors.New("ball: drawing surface has no area")

	// ErrNoTextRaster 缺少文字取色贴图
	ErrNoTextRaster = errors.New("ball: text raster unavailable")
)

// goldenAngle 黄金角，使球面采样点均匀分布
var goldenAngle = math.Pi * (3 - math.Sqrt(5))

const (
	// textMapRotY 取色前绕 Y 轴的旋转，让文字中心落在正面
	textMapRotY = -math.Pi / 2
)

// textMapRotation / finalOrientation 在包初始化时计算一次
//
// 绕 Y 轴的旋转使用 x' = x cos - z sin 的手性，对应 mgl64.Rotate3DY(-angle)。
var (
	textMapRotation  = mgl64.Rotate3DY(-textMapRotY)
	finalOrientation = mgl64.Rotate3DX(math.Pi).Mul3(mgl64.Rotate3DY(-math.Pi))
)

// BallCenter 根据视口尺寸计算球心和缩放
func BallCenter(v *config.BallVariant, width, height float64) (cx, cy, scale float64) {
	return width / 2, height/2 + v.CenterOffsetY, math.Min(width, height) * v.ScaleFactor
}

// GenerateBallParticles 生成粒子球
//
// 在单位球面上用黄金角螺旋采样 v.ParticleCount 个点，按文字贴图为每个点取色，
// 再整体翻转使文字朝向观察者。
//
// 参数：
//   - v: 变体参数
//   - width, height: 视口尺寸（逻辑像素）
//   - raster: 文字取色贴图
//   - rng: 随机源（测试中使用固定种子）
//
// 返回：
//   - 粒子切片，长度恰为 v.ParticleCount
//   - ErrEmptySurface / ErrNoTextRaster
func GenerateBallParticles(v *config.BallVariant, width, height float64, raster *textraster.Raster, rng *rand.Rand) ([]components.BallParticle, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %.0fx%.0f", ErrEmptySurface, width, height)
	}
	if raster == nil {
		return nil, ErrNoTextRaster
	}

	n := v.ParticleCount
	cx, cy, scale := BallCenter(v, width, height)

	bandStart := math.Pi * (1 - v.TextBandHeight) / 2
	bandEnd := math.Pi * (1 + v.TextBandHeight) / 2

	particles := make([]components.BallParticle, n)
	for i := 0; i < n; i++ {
		y := 1.0
		if n > 1 {
			y = 1 - float64(i)/float64(n-1)*2
		}
		r := math.Sqrt(math.Max(0, 1-y*y))
		theta := goldenAngle * float64(i)
		pos := mgl64.Vec3{math.Cos(theta) * r, y, math.Sin(theta) * r}

		// 取色
		tm := textMapRotation.Mul3x1(pos)
		lon := math.Atan2(tm.Z(), tm.X())
		lat := math.Acos(clampUnit(tm.Y()))

		p := &particles[i]
		if lat > bandStart && lat < bandEnd {
			u := (lon + math.Pi) / (2 * math.Pi)
			vv := (lat - bandStart) / (bandEnd - bandStart)
			red, alpha := raster.At(int(math.Floor(u*float64(raster.Width))), int(math.Floor(vv*float64(raster.Height))))
			if alpha > 128 {
				p.IsText = true
				if red > 128 {
					p.Color = v.Palette.Accent.RGB
				} else {
					p.Color = v.Palette.Primary.RGB
				}
			}
		}
		if !p.IsText {
			if rng.Float64() < v.AccentChance {
				p.Color = v.Palette.Accent.RGB
			} else {
				p.Color = v.Palette.Neutral.RGB
			}
		}

		base := finalOrientation.Mul3x1(pos)
		p.BaseX3D, p.BaseY3D, p.BaseZ3D = base.X(), base.Y(), base.Z()
		p.Z = p.BaseZ3D
		p.BaseX = p.BaseX3D*scale + cx
		p.BaseY = p.BaseY3D*scale + cy
		p.X, p.Y = p.BaseX, p.BaseY

		p.Radius = 1
		p.Alpha = 1
		p.Density = rng.Float64()*20 + 10
		p.GlowIntensity = rng.Float64()*0.5 + 0.5
		p.PulseOffset = rng.Float64() * 2 * math.Pi
	}

	return particles, nil
}

// CreateExplosionParticles 在 (cx, cy) 周围追加 count 个最终爆炸粒子
//
// 粒子分布在半径 50..150 像素的完整球壳上，基准 3D 坐标为偏移量的 1%，
// 因此旋转时它们几乎贴着球心。
func CreateExplosionParticles(particles []components.BallParticle, cx, cy float64, count int, rng *rand.Rand) []components.BallParticle {
	for i := 0; i < count; i++ {
		phi := math.Acos(1 - 2*rng.Float64())
		theta := rng.Float64() * 2 * math.Pi
		radius := rng.Float64()*100 + 50

		x := math.Sin(phi) * math.Cos(theta) * radius
		y := math.Sin(phi) * math.Sin(theta) * radius
		z := math.Cos(phi) * radius

		var c config.RGB
		switch kind := rng.Float64(); {
		case kind < config.ExplosionWhiteChance:
			c = config.ExplosionWhite
		case kind < config.ExplosionRedChance:
			c = config.ExplosionRed
		default:
			// 橙色火花
			c = config.RGB{
				R: 255,
				G: uint8(200 + rng.Float64()*55),
				B: uint8(100 + rng.Float64()*100),
			}
		}

		particles = append(particles, components.BallParticle{
			X:           cx + x,
			Y:           cy + y,
			BaseX:       cx + x,
			BaseY:       cy + y,
			BaseX3D:     x * 0.01,
			BaseY3D:     y * 0.01,
			BaseZ3D:     z * 0.01,
			Z:           z * 0.01,
			VX:          (rng.Float64() - 0.5) * 4,
			VY:          (rng.Float64() - 0.5) * 4,
			Radius:      rng.Float64()*2 + 0.5,
			Alpha:       1,
			Color:       c,
			Density:     rng.Float64()*15 + 5,
			PulseOffset: rng.Float64() * 2 * math.Pi,
			IsExplosion: true,
		})
	}
	return particles
}

func clampUnit(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
