package components

// StarComponent 背景星（漂移，越界回绕）
// 位置和速度由 PositionComponent / VelocityComponent 存储
type StarComponent struct {
	Radius float64
	Alpha  float64
	// TwinkleSpeed 闪烁角速度，0 表示不闪烁
	TwinkleSpeed float64
}

// ShootingStarComponent 流星
type ShootingStarComponent struct {
	Life        float64 // 剩余寿命（帧）
	InitialLife float64
	// TailLength 尾迹长度（速度的倍数）
	TailLength float64
}

// Opacity 随寿命线性衰减的不透明度
func (s *ShootingStarComponent) Opacity() float64 {
	if s.InitialLife <= 0 {
		return 0
	}
	return s.Life / s.InitialLife
}
