package components

import "github.com/decker502/planetary/pkg/kinematics"

// TrainComponent 行星轮系状态，整个舞台只有一个
//
// Solver 独占持有 Train State；行星实例增删不会重置它。
type TrainComponent struct {
	Solver        *kinematics.Solver
	TargetPlanets int     // 期望的行星轮数量
	OrbitRadius   float64 // 行星公转半径（像素）

	// Structural 自上一帧以来发生了结构变化（行星数量变化），强制重新求解
	Structural bool
	// Frame 最近一次求解结果
	Frame kinematics.Frame
	// Changed 最近一次更新是否产生了新画面
	Changed bool
}
