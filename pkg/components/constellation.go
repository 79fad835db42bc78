package components

import "github.com/decker502/afraica/pkg/config"

// NodeRank 星座节点层级，数值越大层级越高
type NodeRank int

const (
	NodeNetwork NodeRank = iota
	NodeData
	NodeExecutive
)

// ConstellationNodeComponent 背景星座节点
type ConstellationNodeComponent struct {
	Rank        NodeRank
	Color       config.RGB
	Radius      float64
	BaseRadius  float64
	PulseOffset float64
	Opacity     float64
}
