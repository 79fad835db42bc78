// Package app 提供应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"io/fs"
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/afraica/pkg/config"
	"github.com/decker502/afraica/pkg/game"
	"github.com/decker502/afraica/pkg/scenes"
	"github.com/decker502/afraica/pkg/utils"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Variant 主场景使用的粒子球变体，为空时使用 config.DefaultMainVariant
	Variant string
	// ResetIntro 启动时清除"已看过开场"标记
	ResetIntro bool
	// SkipIntro 直接进入主场景
	SkipIntro bool
	// Assets 图片等可选资源的文件系统，可为 nil
	Assets fs.FS
}

// Context 应用级运行时服务：调度器、事件总线与开场标记存储
//
// Init 通过 initialized 字段保证只执行一次。
type Context struct {
	Scheduler *game.Scheduler
	Events    *game.EventBus
	Intro     *game.IntroStore

	initialized bool
}

// Init 创建调度器、事件总线并打开 gdata 存储，重复调用直接返回
//
// gdata 打开失败时降级为仅内存的开场标记。
func (c *Context) Init() {
	if c.initialized {
		return
	}
	c.initialized = true

	c.Scheduler = game.NewScheduler()
	c.Events = game.NewEventBus()

	var manager *gdata.Manager
	if dir, err := utils.EnsureStorageDir(config.StorageAppName); err != nil {
		log.Printf("[App] Warning: storage directory unavailable: %v", err)
	} else if dir != "" {
		log.Printf("[App] Storage directory: %s", dir)
	}
	m, err := gdata.Open(gdata.Config{AppName: config.StorageAppName})
	if err != nil {
		log.Printf("[App] Warning: gdata unavailable, intro flag kept in memory: %v", err)
	} else {
		manager = m
	}
	c.Intro = game.NewIntroStore(manager, nil)
	log.Printf("[App] Context initialized (persistent=%v)", manager != nil)
}

// Initialized 是否已经执行过 Init
func (c *Context) Initialized() bool {
	return c.initialized
}

// App 实现 ebiten.Game 接口
type App struct {
	ctx          *Context
	svc          *scenes.Services
	sceneManager *game.SceneManager
	pointer      *utils.PointerTracker
	source       *utils.EbitenPointerSource

	width, height int
	deviceScale   float64
	verbose       bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	variants, err := config.LoadBallVariants(config.BallVariantsPath)
	if err != nil {
		return nil, fmt.Errorf("粒子球变体加载失败: %w", err)
	}
	sequence, err := config.LoadLoadingSequence(config.LoadingSequencePath)
	if err != nil {
		return nil, fmt.Errorf("加载序列配置失败: %w", err)
	}
	log.Printf("[Config] 加载 %d 个粒子球变体: %v", len(variants.Variants), variants.Names())

	mainVariant := cfg.Variant
	if mainVariant == "" {
		mainVariant = config.DefaultMainVariant
	}
	if _, err := variants.Get(mainVariant); err != nil {
		return nil, err
	}

	ctx := &Context{}
	ctx.Init()
	if cfg.ResetIntro {
		if err := ctx.Intro.Reset(); err != nil {
			log.Printf("[App] Warning: failed to reset intro flag: %v", err)
		}
	}

	a := &App{
		ctx:          ctx,
		sceneManager: game.NewSceneManager(),
		width:        config.GameWindowWidth,
		height:       config.GameWindowHeight,
		deviceScale:  1,
		verbose:      cfg.Verbose,
	}
	a.source = &utils.EbitenPointerSource{Width: float64(a.width), Height: float64(a.height)}
	a.pointer = utils.NewPointerTracker(a.source)
	a.svc = &scenes.Services{
		Scheduler:     ctx.Scheduler,
		Events:        ctx.Events,
		Intro:         ctx.Intro,
		Scenes:        a.sceneManager,
		Resources:     game.NewResourceManager(cfg.Assets),
		Variants:      variants,
		Sequence:      sequence,
		Rand:          rand.New(rand.NewSource(time.Now().UnixNano())),
		LoaderVariant: config.LoaderVariant,
		MainVariant:   mainVariant,
		Viewport:      a.viewport,
	}
	a.sceneManager.SetSceneFactory(scenes.NewFactory(a.svc))

	start := scenes.StartScene(a.svc)
	if cfg.SkipIntro {
		start = scenes.SceneMain
	}
	log.Printf("[App] Starting scene: %s", start)
	if err := a.sceneManager.Navigate(start); err != nil {
		return nil, fmt.Errorf("初始场景创建失败: %w", err)
	}
	return a, nil
}

func (a *App) viewport() (float64, float64) {
	return float64(a.width), float64(a.height)
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.pointer.Poll(a.ctx.Events)
	a.ctx.Scheduler.Tick(deltaTime)
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 以窗口的逻辑像素尺寸作为画布尺寸
//
// 尺寸或设备缩放比变化时发布 ResizeEvent，各图层据此重建。
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := 1.0
	if m := ebiten.Monitor(); m != nil {
		scale = m.DeviceScaleFactor()
	}
	a.resize(outsideWidth, outsideHeight, scale)
	return a.width, a.height
}

// resize 记录新尺寸，变化时发布事件
func (a *App) resize(width, height int, deviceScale float64) {
	if width <= 0 || height <= 0 {
		return
	}
	if width == a.width && height == a.height && deviceScale == a.deviceScale {
		return
	}
	a.width, a.height, a.deviceScale = width, height, deviceScale
	a.source.Width, a.source.Height = float64(width), float64(height)
	log.Printf("[App] Resize to %dx%d (device scale %.2f)", width, height, deviceScale)
	a.ctx.Events.PublishResize(game.ResizeEvent{
		Width:       float64(width),
		Height:      float64(height),
		DeviceScale: deviceScale,
	})
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
