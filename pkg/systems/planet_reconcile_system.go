package systems

import (
	"log"
	"sort"

	"github.com/decker502/planetary/pkg/components"
	"github.com/decker502/planetary/pkg/ecs"
	"github.com/decker502/planetary/pkg/entities"
	"github.com/decker502/planetary/pkg/gear"
)

// PlanetReconcileSystem 使行星轮实例数量与 TrainComponent.TargetPlanets 一致
//
// 只增删实例，不触碰轮系状态；有增删时标记结构变化，
// 使 KinematicsSystem 在速度为 0 时也会重新求解。
type PlanetReconcileSystem struct {
	entityManager *ecs.EntityManager
	shape         *gear.Shape
}

// NewPlanetReconcileSystem 创建行星数量协调系统
// shape 为所有行星实例共享的图形
func NewPlanetReconcileSystem(em *ecs.EntityManager, shape *gear.Shape) *PlanetReconcileSystem {
	return &PlanetReconcileSystem{
		entityManager: em,
		shape:         shape,
	}
}

// Update 增删行星实例，返回是否发生了变化
func (s *PlanetReconcileSystem) Update() bool {
	changed := false
	for _, trainID := range ecs.GetEntitiesWith1[*components.TrainComponent](s.entityManager) {
		train, ok := ecs.GetComponent[*components.TrainComponent](s.entityManager, trainID)
		if !ok {
			continue
		}
		if s.reconcile(train.TargetPlanets) {
			train.Structural = true
			changed = true
		}
	}
	return changed
}

func (s *PlanetReconcileSystem) reconcile(target int) bool {
	if target < 0 {
		target = 0
	}
	planets := planetsByIndex(s.entityManager)
	current := len(planets)
	if current == target {
		return false
	}

	// 增加：从现有数量开始依次编号
	for i := current; i < target; i++ {
		if _, err := entities.NewPlanetEntity(s.entityManager, s.shape, i); err != nil {
			log.Printf("[PlanetReconcileSystem] 创建行星 %d 失败: %v", i, err)
			return i != current
		}
	}

	// 减少：移除序号最大的实例
	for i := target; i < current; i++ {
		s.entityManager.DestroyEntity(planets[i])
	}
	s.entityManager.RemoveMarkedEntities()

	log.Printf("[PlanetReconcileSystem] 行星数量 %d -> %d", current, target)
	return true
}

// planetsByIndex 返回所有行星实体，按行星序号排列
func planetsByIndex(em *ecs.EntityManager) []ecs.EntityID {
	ids := ecs.GetEntitiesWith2[*components.PlanetComponent, *components.TransformComponent](em)
	index := make(map[ecs.EntityID]int, len(ids))
	for _, id := range ids {
		p, _ := ecs.GetComponent[*components.PlanetComponent](em, id)
		index[id] = p.Index
	}
	sort.SliceStable(ids, func(i, j int) bool { return index[ids[i]] < index[ids[j]] })
	return ids
}
