// Package main 在终端中预览粒子球模拟
//
// Usage:
//
//	go run ./cmd/ballterm [flags]
//
// Flags:
//
//	--variant <name>   变体名称（loader, stress, enhanced），默认 stress
//	--config <path>    变体配置文件，默认 data/ball_variants.yaml
//	--particles <n>    覆盖粒子数，终端分辨率下几千个已足够
//	--verbose          输出日志到 stderr
//
// Controls:
//
//	Mouse drag  - 旋转球体
//	E           - 触发最终爆炸
//	R           - 重新生成
//	Q/Escape    - 退出
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/afraica/pkg/config"
	"github.com/decker502/afraica/pkg/game"
	"github.com/decker502/afraica/pkg/scenes"
	"github.com/decker502/afraica/pkg/termview"
)

// 每个字符格对应的模拟像素
const (
	cellWidth  = 8.0
	cellHeight = 16.0
)

var (
	variantFlag   = flag.String("variant", "stress", "Ball variant name")
	configFlag    = flag.String("config", config.BallVariantsPath, "Ball variants YAML")
	particlesFlag = flag.Int("particles", 3000, "Particle count override (0 keeps the variant value)")
	verboseFlag   = flag.Bool("verbose", false, "Enable verbose logging")
)

type preview struct {
	screen   tcell.Screen
	renderer *termview.Renderer
	sched    *game.Scheduler
	bus      *game.EventBus
	layer    *scenes.BallLayer
	dispose  game.Disposer
	variant  string
	pressed  bool
}

func loadVariant(path, name string, particles int) (*config.BallVariant, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	set, err := config.ParseBallVariants(data)
	if err != nil {
		return nil, err
	}
	v, err := set.Get(name)
	if err != nil {
		return nil, err
	}
	if particles > 0 {
		v.ParticleCount = particles
	}
	return v, nil
}

func newPreview(v *config.BallVariant) (*preview, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to init screen: %w", err)
	}
	screen.EnableMouse()

	p := &preview{
		screen:   screen,
		renderer: termview.NewRenderer(screen),
		sched:    game.NewScheduler(),
		bus:      game.NewEventBus(),
		variant:  v.Name,
	}
	p.layer, err = scenes.NewBallLayer(v, p.sched, p.bus, rand.New(rand.NewSource(time.Now().UnixNano())))
	if err != nil {
		screen.Fini()
		return nil, err
	}
	w, h := p.viewport()
	p.dispose, err = p.layer.Attach(w, h)
	if err != nil {
		screen.Fini()
		return nil, err
	}
	return p, nil
}

func (p *preview) viewport() (float64, float64) {
	cols, rows := p.screen.Size()
	return float64(cols) * cellWidth, float64(rows-1) * cellHeight
}

// handle 处理一个终端事件，返回 false 表示退出
func (p *preview) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Rune() == 'q' {
			return false
		}
		switch ev.Rune() {
		case 'e':
			p.layer.TriggerFinalExplosion()
		case 'r':
			w, h := p.viewport()
			if err := p.layer.Resize(w, h); err != nil {
				log.Printf("[BallTerm] Warning: regenerate failed: %v", err)
			}
		}
	case *tcell.EventMouse:
		col, row := ev.Position()
		x := (float64(col) + 0.5) * cellWidth
		y := (float64(row) + 0.5) * cellHeight
		p.bus.PublishPointer(game.PointerEvent{Kind: game.PointerMove, X: x, Y: y})
		pressed := ev.Buttons()&tcell.Button1 != 0
		if pressed != p.pressed {
			p.pressed = pressed
			kind := game.PointerUp
			if pressed {
				kind = game.PointerDown
			}
			p.bus.PublishPointer(game.PointerEvent{Kind: kind, X: x, Y: y})
		}
	case *tcell.EventResize:
		p.screen.Sync()
		w, h := p.viewport()
		p.bus.PublishResize(game.ResizeEvent{Width: w, Height: h, DeviceScale: 1})
	}
	return true
}

func (p *preview) run() {
	const dt = 1.0 / 60
	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			events <- p.screen.PollEvent()
		}
	}()

	for {
		select {
		case ev := <-events:
			if ev == nil || !p.handle(ev) {
				return
			}
		case <-ticker.C:
			p.sched.Tick(dt)
			w, h := p.layer.Size()
			status := fmt.Sprintf("%s  %d particles  rigidity %.2f  [e] explode  [r] regenerate  [q] quit",
				p.variant, len(p.layer.Particles()), p.layer.Rigidity())
			p.renderer.Draw(p.layer.Particles(), w, h, status)
		}
	}
}

func (p *preview) close() {
	p.dispose()
	p.screen.Fini()
}

func main() {
	flag.Parse()
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	v, err := loadVariant(*configFlag, *variantFlag, *particlesFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load variant: %v\n", err)
		os.Exit(1)
	}

	p, err := newPreview(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer p.close()

	p.run()
}
