package components

import (
	"fmt"

	"github.com/decker502/planetary/pkg/geometry"
)

// TransformComponent 齿轮在画面中的放置变换（角度制）
//
// 等价于 SVG 变换 "rotate(Orbital) translate(Offset) rotate(Rotation)"：
// 太阳轮与内齿圈只使用 Rotation，行星轮三项都使用。
type TransformComponent struct {
	Orbital  float64 // 绕画面中心的公转角
	Offset   float64 // 距画面中心的距离
	Rotation float64 // 自转角
}

// Matrix 返回对应的仿射变换
func (t *TransformComponent) Matrix() geometry.Transform {
	return geometry.Identity().Rotate(t.Orbital).Translate(t.Offset, 0).Rotate(t.Rotation)
}

// SVG 返回 transform 属性值
func (t *TransformComponent) SVG() string {
	if t.Offset == 0 && t.Orbital == 0 {
		return fmt.Sprintf("rotate(%g)", t.Rotation)
	}
	return fmt.Sprintf("rotate(%g) translate(%g) rotate(%g)", t.Orbital, t.Offset, t.Rotation)
}
