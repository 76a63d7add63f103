package entities

import (
	"fmt"
	"image/color"

	"github.com/decker502/planetary/pkg/carrier"
	"github.com/decker502/planetary/pkg/components"
	"github.com/decker502/planetary/pkg/ecs"
	"github.com/decker502/planetary/pkg/kinematics"
)

// CarrierStyle 行星架绘制样式
type CarrierStyle struct {
	Fill        color.Color
	Stroke      color.Color
	StrokeWidth float64
}

// NewCarrierEntity 创建行星架实体，路径在第一次求解后生成
func NewCarrierEntity(em *ecs.EntityManager, style CarrierStyle) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, &components.CarrierComponent{
		Path:        carrier.Path{Empty: true},
		Fill:        style.Fill,
		Stroke:      style.Stroke,
		StrokeWidth: style.StrokeWidth,
		Layer:       components.LayerCarrier,
	})
	return id
}

// NewTrainEntity 创建行星轮系状态实体
//
// 参数:
//   - em: 实体管理器
//   - solver: 运动学求解器（持有轮系状态）
//   - planetCount: 期望的行星轮数量
//   - orbitRadius: 行星公转半径（像素）
func NewTrainEntity(em *ecs.EntityManager, solver *kinematics.Solver, planetCount int, orbitRadius float64) (ecs.EntityID, error) {
	if solver == nil {
		return 0, fmt.Errorf("solver is nil")
	}
	if planetCount < 0 {
		return 0, fmt.Errorf("invalid planet count %d", planetCount)
	}

	id := em.CreateEntity()
	em.AddComponent(id, &components.TrainComponent{
		Solver:        solver,
		TargetPlanets: planetCount,
		OrbitRadius:   orbitRadius,
		Structural:    true, // 第一帧必须求解
	})
	return id, nil
}
