package components

import "github.com/decker502/afraica/pkg/config"

// LightMoteComponent 体积光柱中的光尘
//
// 坐标是光柱局部空间中的 3D 位置（圆柱半径 5、高 10），
// 由 LightRaySystem 旋转并透视投影到屏幕。
type LightMoteComponent struct {
	X3, Y3, Z3 float64
	Size       float64
	Color      config.RGB
	// NoiseSeed 噪声采样偏移
	NoiseSeed float64
}

// AtmosphericLightComponent 绕场景中心缓慢公转的点光源
type AtmosphericLightComponent struct {
	Index     int
	Color     config.RGB
	Phi       float64 // 初始仰角
	Intensity float64
	// 当前世界坐标
	X3, Y3, Z3 float64
}
