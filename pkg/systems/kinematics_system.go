package systems

import (
	"github.com/decker502/planetary/pkg/carrier"
	"github.com/decker502/planetary/pkg/components"
	"github.com/decker502/planetary/pkg/ecs"
	"github.com/decker502/planetary/pkg/geometry"
)

// KinematicsSystem 推进轮系状态并把求解结果写回各齿轮的变换与行星架路径
type KinematicsSystem struct {
	entityManager *ecs.EntityManager
}

// NewKinematicsSystem 创建运动学系统
func NewKinematicsSystem(em *ecs.EntityManager) *KinematicsSystem {
	return &KinematicsSystem{entityManager: em}
}

// Update 推进 elapsedMs 毫秒
// 返回是否产生了新画面（速度全为 0 且无结构变化时为 false）
func (s *KinematicsSystem) Update(elapsedMs float64) bool {
	changed := false
	for _, trainID := range ecs.GetEntitiesWith1[*components.TrainComponent](s.entityManager) {
		train, ok := ecs.GetComponent[*components.TrainComponent](s.entityManager, trainID)
		if !ok || train.Solver == nil {
			continue
		}

		planets := planetsByIndex(s.entityManager)
		frame, frameChanged := train.Solver.Update(elapsedMs, len(planets), train.Structural)
		train.Structural = false
		train.Changed = frameChanged
		if !frameChanged {
			continue
		}
		train.Frame = frame
		changed = true

		s.applyGears(frame.Sun, frame.Ring)
		points := s.applyPlanets(planets, train)
		s.applyCarriers(points, train.OrbitRadius)
	}
	return changed
}

func (s *KinematicsSystem) applyGears(sun, ring float64) {
	for _, id := range ecs.GetEntitiesWith2[*components.GearComponent, *components.TransformComponent](s.entityManager) {
		g, _ := ecs.GetComponent[*components.GearComponent](s.entityManager, id)
		tr, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		switch g.Role {
		case components.RoleSun:
			tr.Rotation = sun
		case components.RoleRing:
			tr.Rotation = ring
		}
	}
}

// applyPlanets 写回行星位姿，返回各行星中心（相对画面中心）
func (s *KinematicsSystem) applyPlanets(planets []ecs.EntityID, train *components.TrainComponent) []geometry.Point {
	points := make([]geometry.Point, 0, len(planets))
	for i, id := range planets {
		if i >= len(train.Frame.Planets) {
			break
		}
		pose := train.Frame.Planets[i]

		planet, _ := ecs.GetComponent[*components.PlanetComponent](s.entityManager, id)
		planet.Pose = pose

		tr, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		tr.Orbital = pose.Orbital
		tr.Offset = train.OrbitRadius
		tr.Rotation = pose.Self

		points = append(points, tr.Matrix().Origin())
	}
	return points
}

func (s *KinematicsSystem) applyCarriers(points []geometry.Point, orbitRadius float64) {
	path := carrier.Build(points, orbitRadius)
	for _, id := range ecs.GetEntitiesWith1[*components.CarrierComponent](s.entityManager) {
		c, _ := ecs.GetComponent[*components.CarrierComponent](s.entityManager, id)
		c.Path = path
	}
}
