package components

// PositionComponent 实体的屏幕坐标
type PositionComponent struct {
	X, Y float64
}

// VelocityComponent 实体的速度（像素/帧）
type VelocityComponent struct {
	VX, VY float64
}
