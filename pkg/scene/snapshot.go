package scene

import (
	"image/color"
	"sort"

	"github.com/decker502/planetary/pkg/carrier"
	"github.com/decker502/planetary/pkg/components"
	"github.com/decker502/planetary/pkg/ecs"
	"github.com/decker502/planetary/pkg/gear"
	"github.com/decker502/planetary/pkg/geometry"
	"github.com/decker502/planetary/pkg/kinematics"
)

// ItemKind 绘制项类型
type ItemKind int

const (
	ItemGear ItemKind = iota
	ItemCarrier
)

// Item 一个绘制项，坐标相对画面中心
type Item struct {
	Kind ItemKind

	// 齿轮项
	Role      components.GearRole
	Index     int // 行星序号，其他角色为 0
	Shape     *gear.Shape
	Transform components.TransformComponent

	// 行星架项
	Carrier     carrier.Path
	Fill        color.Color
	Stroke      color.Color
	StrokeWidth float64

	layer int
	id    ecs.EntityID
}

// Matrix 齿轮项的仿射变换（相对画面中心）
func (it *Item) Matrix() geometry.Transform {
	return it.Transform.Matrix()
}

// Snapshot 一帧的只读绘制列表，渲染器只依赖它
type Snapshot struct {
	Size       float64
	Center     geometry.Point
	Background color.Color
	Teeth      kinematics.Teeth
	Frame      kinematics.Frame

	// PlanetShape 所有行星共享的图形
	PlanetShape *gear.Shape

	// Items 按绘制顺序排列：内齿圈、行星架、太阳轮、行星
	Items []Item
}

// Planets 返回快照中的行星数量
func (s Snapshot) Planets() int {
	n := 0
	for _, it := range s.Items {
		if it.Kind == ItemGear && it.Role == components.RolePlanet {
			n++
		}
	}
	return n
}

// Snapshot 生成当前帧的绘制列表
func (s *Stage) Snapshot() Snapshot {
	em := s.entityManager
	snap := Snapshot{
		Size:        s.opts.CanvasSize,
		Center:      geometry.Point{X: s.opts.CanvasSize / 2, Y: s.opts.CanvasSize / 2},
		Background:  s.opts.Palette.Background,
		Teeth:       s.opts.Teeth,
		Frame:       s.train().Frame,
		PlanetShape: s.planetShape,
	}

	for _, id := range ecs.GetEntitiesWith2[*components.GearComponent, *components.TransformComponent](em) {
		g, _ := ecs.GetComponent[*components.GearComponent](em, id)
		tr, _ := ecs.GetComponent[*components.TransformComponent](em, id)
		item := Item{
			Kind:      ItemGear,
			Role:      g.Role,
			Shape:     g.Shape,
			Transform: *tr,
			layer:     g.Layer,
			id:        id,
		}
		if p, ok := ecs.GetComponent[*components.PlanetComponent](em, id); ok {
			item.Index = p.Index
		}
		snap.Items = append(snap.Items, item)
	}

	for _, id := range ecs.GetEntitiesWith1[*components.CarrierComponent](em) {
		c, _ := ecs.GetComponent[*components.CarrierComponent](em, id)
		snap.Items = append(snap.Items, Item{
			Kind:        ItemCarrier,
			Carrier:     c.Path,
			Fill:        c.Fill,
			Stroke:      c.Stroke,
			StrokeWidth: c.StrokeWidth,
			layer:       c.Layer,
			id:          id,
		})
	}

	sort.SliceStable(snap.Items, func(i, j int) bool {
		a, b := snap.Items[i], snap.Items[j]
		if a.layer != b.layer {
			return a.layer < b.layer
		}
		if a.Index != b.Index {
			return a.Index < b.Index
		}
		return a.id < b.id
	})
	return snap
}
