package systems

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/afraica/pkg/components"
	"github.com/decker502/afraica/pkg/config"
	"github.com/decker502/afraica/pkg/ecs"
)

// shootingStarSegments 流星尾迹的分段数（分段绘制近似线性渐变）
const shootingStarSegments = 8

func rgba(c config.RGB, alpha float64) color.RGBA {
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	a := alpha
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(255 * a),
	}
}

var starWhite = config.RGB{R: 255, G: 255, B: 255}

// Draw 绘制背景星与流星，背景星整体平移视差偏移
func (s *StarfieldSystem) Draw(screen *ebiten.Image, parallax *ParallaxState) {
	dot, _ := sprites()
	px, py := 0.0, 0.0
	if parallax != nil {
		px, py = parallax.X, parallax.Y
	}

	ids := ecs.GetEntitiesWith2[*components.StarComponent, *components.PositionComponent](s.em)
	for _, id := range ids {
		star, _ := ecs.GetComponent[*components.StarComponent](s.em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.em, id)
		alpha := star.Alpha * s.Twinkle(star, pos.X) * s.variant.StarAlphaScale
		drawSprite(screen, dot, pos.X+px, pos.Y+py, star.Radius, 255, 255, 255, alpha, ebiten.BlendSourceOver)
	}

	for _, id := range ecs.GetEntitiesWith1[*components.ShootingStarComponent](s.em) {
		star, _ := ecs.GetComponent[*components.ShootingStarComponent](s.em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.em, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](s.em, id)

		tailX := pos.X - vel.VX*star.TailLength
		tailY := pos.Y - vel.VY*star.TailLength
		head := star.Opacity()
		for i := 0; i < shootingStarSegments; i++ {
			t0 := float64(i) / shootingStarSegments
			t1 := float64(i+1) / shootingStarSegments
			vector.StrokeLine(screen,
				float32(tailX+(pos.X-tailX)*t0), float32(tailY+(pos.Y-tailY)*t0),
				float32(tailX+(pos.X-tailX)*t1), float32(tailY+(pos.Y-tailY)*t1),
				1.5, rgba(starWhite, head*t1), true)
		}
	}
}

// Draw 绘制星座连线与节点
func (s *ConstellationSystem) Draw(screen *ebiten.Image) {
	dot, glow := sprites()
	for _, l := range s.links {
		vector.StrokeLine(screen, float32(l.X1), float32(l.Y1), float32(l.X2), float32(l.Y2), 0.8, rgba(l.Color, l.Opacity), true)
	}

	for _, id := range ecs.GetEntitiesWith2[*components.ConstellationNodeComponent, *components.PositionComponent](s.em) {
		node, _ := ecs.GetComponent[*components.ConstellationNodeComponent](s.em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.em, id)
		c := node.Color
		var blur float64
		switch node.Rank {
		case components.NodeExecutive:
			blur = config.ConstellationExecutive.GlowBlur
		case components.NodeData:
			blur = config.ConstellationData.GlowBlur
		}
		if blur > 0 {
			drawSprite(screen, glow, pos.X, pos.Y, node.Radius+blur, c.R, c.G, c.B, node.Opacity*0.5, ebiten.BlendLighter)
		}
		drawSprite(screen, dot, pos.X, pos.Y, node.Radius, c.R, c.G, c.B, node.Opacity, ebiten.BlendSourceOver)
	}
}

// Draw 以加色混合绘制方向光泛光、点光源与光尘
//
// opacity 为整个光照层的不透明度（编排器在 Emergence 阶段渐入到 0.7）。
func (s *LightRaySystem) Draw(screen *ebiten.Image, opacity float64) {
	if opacity <= 0 {
		return
	}
	dot, glow := sprites()
	for _, w := range s.washes {
		drawSprite(screen, glow, w.X, w.Y, w.Radius, w.Color.R, w.Color.G, w.Color.B, w.Intensity*0.25*opacity, ebiten.BlendLighter)
	}
	for _, l := range s.lights {
		drawSprite(screen, glow, l.X, l.Y, l.Radius, l.Color.R, l.Color.G, l.Color.B, l.Intensity*opacity, ebiten.BlendLighter)
	}
	for _, m := range s.motes {
		drawSprite(screen, dot, m.X, m.Y, m.Radius, m.Color.R, m.Color.G, m.Color.B, m.Alpha*opacity, ebiten.BlendLighter)
	}
}

// Draw 绘制电磁场与数据流
func (s *OrnamentSystem) Draw(screen *ebiten.Image, cx, cy, breath float64) {
	dot, glow := sprites()

	for _, id := range ecs.GetEntitiesWith1[*components.FieldNodeComponent](s.em) {
		node, _ := ecs.GetComponent[*components.FieldNodeComponent](s.em, id)
		x, y := FieldNodePosition(node, cx, cy, breath)
		c := node.Color
		vector.StrokeLine(screen, float32(cx), float32(cy), float32(x), float32(y), 0.5, rgba(c, node.Intensity*100/255), true)
		drawSprite(screen, glow, x, y, 12, c.R, c.G, c.B, 0.6, ebiten.BlendLighter)
		drawSprite(screen, dot, x, y, 2, c.R, c.G, c.B, 1, ebiten.BlendSourceOver)
	}

	colors := make(map[int]config.RGB, config.DataStreamCount)
	for _, id := range ecs.GetEntitiesWith1[*components.DataStreamComponent](s.em) {
		stream, _ := ecs.GetComponent[*components.DataStreamComponent](s.em, id)
		colors[stream.Index] = stream.Color
	}
	for _, id := range ecs.GetEntitiesWith2[*components.DataMoteComponent, *components.PositionComponent](s.em) {
		mote, _ := ecs.GetComponent[*components.DataMoteComponent](s.em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.em, id)
		c := colors[mote.Stream]
		drawSprite(screen, dot, pos.X, pos.Y, mote.Size, c.R, c.G, c.B, mote.Life, ebiten.BlendSourceOver)
	}
}
