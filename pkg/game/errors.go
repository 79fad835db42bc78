package game

import "errors"

// ErrNoSceneFactory Navigate 前未设置场景工厂
var ErrNoSceneFactory = errors.New("scene factory not set")
