package components

import "github.com/decker502/planetary/pkg/gear"

// GearRole 齿轮在行星轮系中的角色
type GearRole int

const (
	RoleSun GearRole = iota
	RolePlanet
	RoleRing
)

// String 返回角色名称
func (r GearRole) String() string {
	switch r {
	case RoleSun:
		return "sun"
	case RolePlanet:
		return "planet"
	case RoleRing:
		return "ring"
	default:
		return "unknown"
	}
}

// 绘制层级：数值小的先绘制
const (
	LayerRing    = 0
	LayerCarrier = 1
	LayerSun     = 2
	LayerPlanet  = 3
)

// GearComponent 可渲染齿轮
// Shape 为静态图形，多个行星轮实例共享同一个 Shape
type GearComponent struct {
	Role  GearRole
	Shape *gear.Shape
	Layer int
}
