// Package render 把舞台快照输出为 SVG 文档或 PNG 图片
//
// 屏幕绘制见子包 screen；各种输出共享同一份 scene.Snapshot，
// 绘制顺序与快照中的 Items 一致。
package render

import (
	"image/color"

	"github.com/decker502/planetary/pkg/carrier"
	"github.com/decker502/planetary/pkg/gear"
	"github.com/decker502/planetary/pkg/geometry"
	"github.com/decker502/planetary/pkg/scene"
)

// PlacedCircle 画布坐标下的圆
type PlacedCircle struct {
	Center geometry.Point
	Radius float64
	Fill   color.Color
}

// PlacedGear 画布坐标下的齿轮图形
type PlacedGear struct {
	Body        *PlacedCircle
	Outline     []geometry.Point
	OutlineFill color.Color
	Stroke      color.Color
	StrokeWidth float64
	Axle        *PlacedCircle
	Mark        PlacedCircle
}

// ItemTransform 齿轮项在画布坐标系中的完整变换
func ItemTransform(snap *scene.Snapshot, it *scene.Item) geometry.Transform {
	return geometry.Identity().Translate(snap.Center.X, snap.Center.Y).Multiply(it.Matrix())
}

// PlaceGear 将齿轮图形变换到画布坐标
func PlaceGear(shape *gear.Shape, m geometry.Transform) PlacedGear {
	pg := PlacedGear{
		Outline:     m.ApplyAll(shape.Outline),
		OutlineFill: shape.OutlineFill,
		Stroke:      shape.Stroke,
		StrokeWidth: shape.StrokeWidth,
		Mark:        placeCircle(shape.Mark, m),
	}
	if shape.Body != nil {
		c := placeCircle(*shape.Body, m)
		pg.Body = &c
	}
	if shape.Axle != nil {
		c := placeCircle(*shape.Axle, m)
		pg.Axle = &c
	}
	return pg
}

func placeCircle(c gear.Circle, m geometry.Transform) PlacedCircle {
	return PlacedCircle{Center: m.Apply(c.Center), Radius: c.Radius, Fill: c.Fill}
}

// PlaceCarrier 将行星架路径平移到画布坐标
func PlaceCarrier(path carrier.Path, center geometry.Point) carrier.Path {
	if path.Empty {
		return path
	}
	out := carrier.Path{Start: path.Start.Add(center), Arcs: make([]carrier.Arc, len(path.Arcs))}
	for i, arc := range path.Arcs {
		out.Arcs[i] = carrier.Arc{Radius: arc.Radius, To: arc.To.Add(center)}
	}
	return out
}
