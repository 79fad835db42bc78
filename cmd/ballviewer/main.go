// Package main provides a windowed viewer for the particle ball variants.
//
// Usage:
//
//	go run ./cmd/ballviewer [flags]
//
// Flags:
//
//	--variant <name>   Start with a specific variant (loader, stress, enhanced)
//	--config <path>    Variants YAML (default data/ball_variants.yaml)
//	--auto-play        Cycle through the variants every 10 seconds
//	--verbose          Enable verbose logging
//
// Controls:
//
//	Mouse drag        - Rotate the ball
//	Left/Right Arrow  - Switch to previous/next variant
//	E                 - Trigger the final explosion
//	I                 - Trigger the immediate explosion
//	H                 - Toggle hologram overlay
//	[ / ]             - Decrease/increase rigidity by 0.1
//	P                 - Toggle auto-play
//	Q/Escape          - Quit
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/afraica/pkg/config"
	"github.com/decker502/afraica/pkg/game"
	"github.com/decker502/afraica/pkg/scenes"
	"github.com/decker502/afraica/pkg/utils"
)

const (
	screenWidth  = 1280
	screenHeight = 800

	autoPlayInterval = 10 * time.Second
)

var (
	variantFlag  = flag.String("variant", "", "Start with specific variant name")
	configFlag   = flag.String("config", config.BallVariantsPath, "Ball variants YAML")
	autoPlayFlag = flag.Bool("auto-play", false, "Auto cycle through variants every 10 seconds")
	verboseFlag  = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

var errQuit = errors.New("quit requested")

// BallViewerGame implements ebiten.Game interface for the ball viewer
type BallViewerGame struct {
	sched   *game.Scheduler
	bus     *game.EventBus
	pointer *utils.PointerTracker
	rng     *rand.Rand

	variants     *config.BallVariantSet
	names        []string
	currentIndex int

	layer    *scenes.BallLayer
	dispose  game.Disposer
	hologram bool

	autoPlay       bool
	lastSwitchTime time.Time

	// UI state
	statusMessage string
}

// NewBallViewerGame creates a viewer over the variants in path
func NewBallViewerGame(path string) (*BallViewerGame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	variants, err := config.ParseBallVariants(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load variants: %w", err)
	}
	names := variants.Names()
	if len(names) == 0 {
		return nil, fmt.Errorf("no variants found in %s", path)
	}

	startIndex := 0
	if *variantFlag != "" {
		found := false
		for i, name := range names {
			if name == *variantFlag {
				startIndex, found = i, true
				break
			}
		}
		if !found {
			log.Printf("Warning: variant %q not found, starting with %q", *variantFlag, names[0])
		}
	}

	g := &BallViewerGame{
		sched:          game.NewScheduler(),
		bus:            game.NewEventBus(),
		pointer:        utils.NewPointerTracker(&utils.EbitenPointerSource{Width: screenWidth, Height: screenHeight}),
		rng:            rand.New(rand.NewSource(time.Now().UnixNano())),
		variants:       variants,
		names:          names,
		currentIndex:   startIndex,
		autoPlay:       *autoPlayFlag,
		lastSwitchTime: time.Now(),
	}
	if err := g.load(); err != nil {
		return nil, err
	}
	log.Printf("Ball Viewer initialized: %d variants", len(names))
	return g, nil
}

// load disposes the current layer and attaches the selected variant
func (g *BallViewerGame) load() error {
	if g.dispose != nil {
		g.dispose()
		g.dispose = nil
	}
	name := g.names[g.currentIndex]
	v, err := g.variants.Get(name)
	if err != nil {
		return err
	}
	layer, err := scenes.NewBallLayer(v, g.sched, g.bus, g.rng)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	dispose, err := layer.Attach(screenWidth, screenHeight)
	if err != nil {
		return fmt.Errorf("failed to attach %s: %w", name, err)
	}
	g.layer, g.dispose = layer, dispose
	g.hologram = v.Hologram
	if g.hologram {
		layer.SetHologram(true)
	}
	g.lastSwitchTime = time.Now()
	g.statusMessage = fmt.Sprintf("Selected: %s", name)
	log.Printf("Current variant: %s (%d/%d)", name, g.currentIndex+1, len(g.names))
	return nil
}

func (g *BallViewerGame) switchBy(delta int) {
	n := len(g.names)
	g.currentIndex = (g.currentIndex + delta + n) % n
	if err := g.load(); err != nil {
		log.Printf("Failed to switch variant: %v", err)
		g.statusMessage = fmt.Sprintf("Error: %v", err)
	}
}

// Update updates the viewer state
func (g *BallViewerGame) Update() error {
	dt := 1.0 / 60.0 // 60 FPS

	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return errQuit
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyRight):
		g.switchBy(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft):
		g.switchBy(-1)
	case g.autoPlay && time.Since(g.lastSwitchTime) >= autoPlayInterval:
		g.switchBy(1)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		g.layer.TriggerFinalExplosion()
		g.statusMessage = "Final explosion"
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyI) {
		g.layer.TriggerImmediateExplosion()
		g.statusMessage = "Immediate explosion"
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.hologram = !g.hologram
		g.layer.SetHologram(g.hologram)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) {
		g.layer.SetRigidity(g.layer.Rigidity() - 0.1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) {
		g.layer.SetRigidity(g.layer.Rigidity() + 0.1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.autoPlay = !g.autoPlay
		g.lastSwitchTime = time.Now()
	}

	g.pointer.Poll(g.bus)
	g.sched.Tick(dt)
	return nil
}

// Draw renders the ball and the UI
func (g *BallViewerGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{5, 6, 12, 255})
	g.layer.Draw(screen)
	g.drawUI(screen)
}

func (g *BallViewerGame) drawUI(screen *ebiten.Image) {
	v := g.layer.Variant()
	ebitenutil.DebugPrintAt(screen, "=== Particle Ball Viewer ===", 10, 10)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Variant: %s (%d/%d)", v.Name, g.currentIndex+1, len(g.names)), 10, 30)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Particles: %d  Rigidity: %.2f  Hologram: %v",
		len(g.layer.Particles()), g.layer.Rigidity(), g.hologram), 10, 50)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS: %.1f  FPS: %.1f", ebiten.ActualTPS(), ebiten.ActualFPS()), 10, 70)
	ebitenutil.DebugPrintAt(screen, g.statusMessage, 10, 90)

	help := "Left/Right: variant  E/I: explode  H: hologram  [/]: rigidity  P: auto-play  Q: quit"
	ebitenutil.DebugPrintAt(screen, help, 10, screenHeight-20)

	if g.autoPlay {
		ebitenutil.DebugPrintAt(screen, "AUTO-PLAY MODE", screenWidth-120, 10)
	}
}

// Layout returns the viewer's logical screen size
func (g *BallViewerGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	flag.Parse()

	// 默认静音运行，如需详细调试传入 --verbose
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	g, err := NewBallViewerGame(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize viewer: %v\n", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("afrAIca Particle Ball Viewer")

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, errQuit) {
		log.Fatal(err)
	}
	g.dispose()
}
