package components

import "github.com/decker502/planetary/pkg/kinematics"

// PlanetComponent 行星轮实例
// Index 为实例序号（0 起），决定名义均布角 360·Index/N
type PlanetComponent struct {
	Index int
	Pose  kinematics.PlanetPose
}
