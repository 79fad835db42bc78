package scenes

import (
	"errors"
	"fmt"
	"log"
	"math/rand"

	"github.com/decker502/afraica/pkg/config"
	"github.com/decker502/afraica/pkg/game"
	"github.com/decker502/afraica/pkg/systems"
)

// Scene is a type alias for game.Scene to maintain backward compatibility.
// All scene implementations should implement the game.Scene interface.
type Scene = game.Scene

var (
	// ErrUnknownScene 工厂收到未知的场景名
	ErrUnknownScene = errors.New("unknown scene")
	// ErrBackdropRequested 显式请求静态画面
	ErrBackdropRequested = errors.New("static backdrop requested")
)

// 场景名称，用于 SceneManager.Navigate
const (
	SceneLoading  = "loading"
	SceneFallback = "fallback"
	SceneMain     = "main"
	SceneBackdrop = "backdrop"
)

// Services 场景共享的运行时服务，由 app.Context 创建
type Services struct {
	Scheduler *game.Scheduler
	Events    *game.EventBus
	Intro     *game.IntroStore
	Scenes    *game.SceneManager
	Resources *game.ResourceManager

	Variants *config.BallVariantSet
	Sequence *config.LoadingSequence
	Rand     *rand.Rand

	// LoaderVariant 加载场景使用的粒子球变体，MainVariant 主场景使用的变体
	LoaderVariant string
	MainVariant   string

	// Viewport 返回当前逻辑视口尺寸
	Viewport func() (width, height float64)
}

// navigate 切换到 name 场景，失败只记录日志
func (s *Services) navigate(name string) {
	if s.Scenes == nil {
		return
	}
	if err := s.Scenes.Navigate(name); err != nil {
		log.Printf("[Scenes] Warning: navigate to %s failed: %v", name, err)
	}
}

func (s *Services) viewport() (float64, float64) {
	if s.Viewport == nil {
		return config.GameWindowWidth, config.GameWindowHeight
	}
	return s.Viewport()
}

// seenMarker 返回"已看过"标记；未配置 IntroStore 时返回 nil
func (s *Services) seenMarker() systems.SeenMarker {
	if s.Intro == nil {
		return nil
	}
	return s.Intro
}

// NewFactory 返回按名称创建场景的工厂
//
// 粒子球是加载场景与主场景的必需组件，创建失败时以 StaticBackdrop 代替，
// 因此工厂对已知名称从不返回错误。
func NewFactory(svc *Services) game.SceneFactory {
	return func(name string) (game.Scene, error) {
		w, h := svc.viewport()
		switch name {
		case SceneLoading:
			scene, err := NewLoadingScene(svc, w, h)
			if err != nil {
				return NewStaticBackdrop(svc, w, h, SceneMain, err), nil
			}
			return scene, nil
		case SceneFallback:
			return NewFallbackLoadingScene(svc, w, h), nil
		case SceneMain:
			scene, err := NewMainScene(svc, w, h)
			if err != nil {
				return NewStaticBackdrop(svc, w, h, "", err), nil
			}
			return scene, nil
		case SceneBackdrop:
			return NewStaticBackdrop(svc, w, h, SceneMain, ErrBackdropRequested), nil
		}
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
}

// StartScene 按会话标记选择首个场景：未看过开场播放完整加载序列，否则播放简短版本
func StartScene(svc *Services) string {
	if svc.Intro != nil && svc.Intro.HasSeen() {
		return SceneFallback
	}
	return SceneLoading
}
