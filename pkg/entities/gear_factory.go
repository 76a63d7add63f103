package entities

import (
	"fmt"

	"github.com/decker502/planetary/pkg/components"
	"github.com/decker502/planetary/pkg/ecs"
	"github.com/decker502/planetary/pkg/gear"
)

// NewGearEntity 创建太阳轮或内齿圈实体
//
// 参数:
//   - em: 实体管理器
//   - shape: 预先构建好的齿轮图形
//   - role: RoleSun 或 RoleRing
//
// 返回:
//   - ecs.EntityID: 创建的齿轮实体ID
//   - error: 参数无效时返回错误
func NewGearEntity(em *ecs.EntityManager, shape *gear.Shape, role components.GearRole) (ecs.EntityID, error) {
	if shape == nil {
		return 0, fmt.Errorf("gear shape for %s is nil", role)
	}

	var layer int
	switch role {
	case components.RoleSun:
		layer = components.LayerSun
	case components.RoleRing:
		layer = components.LayerRing
	default:
		return 0, fmt.Errorf("NewGearEntity does not create %s gears, use NewPlanetEntity", role)
	}

	id := em.CreateEntity()
	em.AddComponent(id, &components.TransformComponent{})
	em.AddComponent(id, &components.GearComponent{
		Role:  role,
		Shape: shape,
		Layer: layer,
	})
	return id, nil
}

// NewPlanetEntity 创建一个行星轮实例
// 所有实例共享同一个 shape，只有变换不同
func NewPlanetEntity(em *ecs.EntityManager, shape *gear.Shape, index int) (ecs.EntityID, error) {
	if shape == nil {
		return 0, fmt.Errorf("planet shape is nil")
	}
	if index < 0 {
		return 0, fmt.Errorf("invalid planet index %d", index)
	}

	id := em.CreateEntity()
	em.AddComponent(id, &components.TransformComponent{})
	em.AddComponent(id, &components.GearComponent{
		Role:  components.RolePlanet,
		Shape: shape,
		Layer: components.LayerPlanet,
	})
	em.AddComponent(id, &components.PlanetComponent{Index: index})
	return id, nil
}
