package systems

import (
	"log"
	"math"
	"math/rand"

	"github.com/decker502/afraica/pkg/components"
	"github.com/decker502/afraica/pkg/config"
	"github.com/decker502/afraica/pkg/entities"
	"github.com/decker502/afraica/pkg/game"
)

// randomTiers 随机喷发档位，按累计概率排列
var randomTiers = []struct {
	kind components.EruptionType
	tier config.EruptionTier
}{
	{components.EruptionGentle, config.EruptionGentlePuff},
	{components.EruptionMediumType, config.EruptionMedium},
	{components.EruptionStrongType, config.EruptionStrong},
}

// EruptionSystem 粒子球的喷发与脚本化爆炸
//
// 喷发是作用在粒子速度上的径向力脉冲：
//   - 随机喷发：启用后每 EruptionSpawnInterval 帧检查一次，落在朝向镜头的半球
//   - 立即爆炸：释放时刻围绕球心的 5 个固定点
//   - 最终爆炸：追加 10 倍粒子，并通过调度器交错注入 11 个巨型喷发，只触发一次
type EruptionSystem struct {
	sched *game.Scheduler
	// timers 持有最终爆炸的延迟注入，粒子球卸载时一并取消
	timers *game.Scope
	rng    *rand.Rand

	eruptions []components.Eruption
	counter   int
	enabled   bool

	finalTriggered bool
}

// NewEruptionSystem 创建喷发系统
//
// 参数：
//   - sched: 调度器，最终爆炸的交错注入通过它计时
//   - timers: 注入定时器的归属作用域，可为 nil
//   - rng: 随机源
func NewEruptionSystem(sched *game.Scheduler, timers *game.Scope, rng *rand.Rand) *EruptionSystem {
	return &EruptionSystem{
		sched:  sched,
		timers: timers,
		rng:    rng,
	}
}

// Enable 启用随机喷发并重置计数器，重复调用无效果
//
// 返回：是否是本次调用启用的
func (s *EruptionSystem) Enable() bool {
	if s.enabled {
		return false
	}
	s.enabled = true
	s.counter = 0
	log.Printf("[EruptionSystem] Eruptions enabled")
	return true
}

// Enabled 随机喷发是否已启用
func (s *EruptionSystem) Enabled() bool {
	return s.enabled
}

// FinalTriggered 最终爆炸是否已经触发
func (s *EruptionSystem) FinalTriggered() bool {
	return s.finalTriggered
}

// Eruptions 当前活跃的喷发（只读）
func (s *EruptionSystem) Eruptions() []components.Eruption {
	return s.eruptions
}

// Counter 自启用以来的帧计数
func (s *EruptionSystem) Counter() int {
	return s.counter
}

// Spawn 推进计数器，满足条件时在镜头侧半球生成一次随机喷发
//
// 参数：
//   - cx, cy: 球心屏幕坐标
//   - scale: 球体缩放（像素）
func (s *EruptionSystem) Spawn(cx, cy, scale float64) {
	s.counter++
	if !s.enabled {
		return
	}
	if s.counter%config.EruptionSpawnInterval != 0 || s.rng.Float64() >= config.EruptionSpawnChance {
		return
	}

	roll := s.rng.Float64()
	pick := randomTiers[len(randomTiers)-1]
	for _, t := range randomTiers {
		if roll < t.tier.Chance {
			pick = t
			break
		}
	}
	tier := pick.tier
	strength := tier.StrengthMin + s.rng.Float64()*tier.StrengthRange
	size := scale * (tier.SizeMin + s.rng.Float64()*tier.SizeRange)
	life := tier.LifeMin + s.rng.Float64()*tier.LifeRange

	angle := s.rng.Float64() * 2 * math.Pi
	phi := s.rng.Float64() * math.Pi / 2
	radius := 0.4 + s.rng.Float64()*0.6
	x := cx + math.Sin(phi)*math.Cos(angle)*scale*radius + (s.rng.Float64()-0.5)*config.EruptionJitter
	y := cy + math.Sin(phi)*math.Sin(angle)*scale*radius + (s.rng.Float64()-0.5)*config.EruptionJitter

	s.eruptions = append(s.eruptions, components.Eruption{
		X: x, Y: y,
		Radius:   size,
		Strength: strength,
		Life:     life,
		MaxLife:  life,
		Type:     pick.kind,
		Profile:  tier,
	})

	if s.rng.Float64() < config.EruptionCompanionChance {
		companionLife := life * config.EruptionCompanionLife
		s.eruptions = append(s.eruptions, components.Eruption{
			X:        x + (s.rng.Float64()-0.5)*config.EruptionCompanionOffset,
			Y:        y + (s.rng.Float64()-0.5)*config.EruptionCompanionOffset,
			Radius:   size * config.EruptionCompanionSize,
			Strength: strength * config.EruptionCompanionStrength,
			Life:     companionLife,
			MaxLife:  companionLife,
			Type:     components.EruptionCompanion,
			Profile:  config.EruptionFinal,
		})
	}
}

// Apply 递减每个喷发的寿命，对半径内的粒子施加外推力，并移除过期喷发
//
// 脉冲强度超过 EruptionGrowthPulse 时粒子半径按档位放大（上限 8），
// 强力爆发还会点亮品牌红粒子。
func (s *EruptionSystem) Apply(particles []components.BallParticle) {
	for i := range s.eruptions {
		e := &s.eruptions[i]
		e.Life--

		pulse := e.Pulse()
		if pulse <= 0 {
			continue
		}
		grow := pulse > config.EruptionGrowthPulse
		r2 := e.Radius * e.Radius
		for j := range particles {
			p := &particles[j]
			dx := p.X - e.X
			dy := p.Y - e.Y
			d2 := dx*dx + dy*dy
			if d2 >= r2 || d2 == 0 {
				continue
			}
			d := math.Sqrt(d2)
			force := e.Strength * pulse / (d * config.EruptionForceDistance)
			p.VX += dx / d * force
			p.VY += dy / d * force

			if grow {
				p.Radius = math.Min(p.Radius*e.Profile.Growth, config.EruptionMaxParticleRadius)
				if e.Type == components.EruptionStrongType && p.Color == config.ExplosionRed {
					p.Glowing = true
				}
			}
		}
	}

	alive := s.eruptions[:0]
	for _, e := range s.eruptions {
		if e.State() != components.EruptionExpired {
			alive = append(alive, e)
		}
	}
	s.eruptions = alive
}

// TriggerImmediateExplosion 在球心周围放置 5 个固定爆炸点
func (s *EruptionSystem) TriggerImmediateExplosion(cx, cy float64) {
	for _, pt := range config.ImmediateExplosionPoints {
		s.eruptions = append(s.eruptions, components.Eruption{
			X:        cx + pt.X*config.ImmediateExplosionSpread,
			Y:        cy + pt.Y*config.ImmediateExplosionSpread,
			Radius:   config.ImmediateExplosionRadius,
			Strength: pt.Strength,
			Life:     config.ImmediateExplosionLife,
			MaxLife:  config.ImmediateExplosionLife,
			Type:     components.EruptionScripted,
			Profile:  config.EruptionFinal,
		})
	}
	log.Printf("[EruptionSystem] Immediate explosion at (%.0f, %.0f)", cx, cy)
}

// TriggerFinalExplosion 最终爆炸，只会生效一次
//
// 先在球心周围追加 FinalExplosionParticleFactor 倍的爆炸粒子，
// 再以 FinalExplosionStagger 秒的间隔向视口中心附近依次注入 11 个巨型喷发。
//
// 参数：
//   - particles: 现有粒子
//   - ballX, ballY: 球心（爆炸粒子的生成中心）
//   - viewX, viewY: 视口中心（注入点的参考中心）
//
// 返回：
//   - 追加后的粒子切片
//   - 本次调用是否触发（已触发过则返回 false，切片不变）
func (s *EruptionSystem) TriggerFinalExplosion(particles []components.BallParticle, ballX, ballY, viewX, viewY float64) ([]components.BallParticle, bool) {
	if s.finalTriggered {
		return particles, false
	}
	s.finalTriggered = true

	before := len(particles)
	particles = entities.CreateExplosionParticles(particles, ballX, ballY, before*config.FinalExplosionParticleFactor, s.rng)
	log.Printf("[EruptionSystem] Final explosion: added %d particles, total %d", len(particles)-before, len(particles))

	for i, pt := range config.FinalExplosionPoints {
		e := components.Eruption{
			X:        viewX + pt.X*config.FinalExplosionSpread,
			Y:        viewY + pt.Y*config.FinalExplosionSpread,
			Radius:   config.FinalExplosionRadius,
			Strength: pt.Strength * config.FinalExplosionStrengthScale,
			Life:     config.FinalExplosionLife,
			MaxLife:  config.FinalExplosionLife,
			Type:     components.EruptionScripted,
			Profile:  config.EruptionFinal,
		}
		inject := func() { s.eruptions = append(s.eruptions, e) }
		delay := float64(i) * config.FinalExplosionStagger
		if s.timers != nil {
			s.timers.After(s.sched, delay, inject)
		} else {
			s.sched.After(delay, inject)
		}
	}
	return particles, true
}
