package components

import "github.com/decker502/afraica/pkg/config"

// FieldNodeComponent 电磁场节点，绕球心旋转
type FieldNodeComponent struct {
	Index      int
	Angle      float64
	Radius     float64
	BaseRadius float64
	Intensity  float64
	Speed      float64
	Color      config.RGB
}

// DataStreamComponent 数据流发射器
type DataStreamComponent struct {
	Index     int
	Color     config.RGB
	Speed     float64
	LastSpawn float64 // 上次发射时间（秒）
}

// DataMoteComponent 数据流中向球心汇聚的光点
// 位置由 PositionComponent 存储
type DataMoteComponent struct {
	Stream           int
	TargetX, TargetY float64
	Life             float64
	Size             float64
}
