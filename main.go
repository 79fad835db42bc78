package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/afraica/pkg/app"
	"github.com/decker502/afraica/pkg/config"
	"github.com/decker502/afraica/pkg/embedded"
)

func main() {
	verbose := flag.Bool("verbose", false, "启用详细日志输出")
	variant := flag.String("variant", "", "主场景粒子球变体 (loader, stress, enhanced)")
	resetIntro := flag.Bool("reset-intro", false, "清除已看过开场的标记")
	skipIntro := flag.Bool("skip-intro", false, "跳过开场直接进入主场景")
	flag.Parse()

	// 初始化嵌入资源（dataFS 在 embed.go 中声明）
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		Variant:    *variant,
		ResetIntro: *resetIntro,
		SkipIntro:  *skipIntro,
		Assets:     dataFS,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle(config.WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
