package gear

import (
	"image/color"
	"math"

	"github.com/decker502/planetary/pkg/geometry"
)

// 固定样式
var (
	StrokeColor     = color.RGBA{A: 0xff}                               // 轮廓描边（黑）
	BackgroundColor = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff} // 背景/轴孔（白）
	MarkColor       = color.RGBA{A: 0xff}
)

const (
	StrokeWidth = 2.0
	MarkRadius  = 2.0

	// axleInset 外齿轮轴孔半径上限 = 节圆半径 - axleInset
	axleInset = 20.0
	// markInset 外齿轮方向标记距节圆的内缩量
	markInset = 10.0
)

// Spec 齿轮规格
type Spec struct {
	ToothCount int
	Internal   bool // 内齿轮（齿圈）
	Color      color.Color
}

// Circle 以齿轮中心为参照的圆
type Circle struct {
	Center geometry.Point
	Radius float64
	Fill   color.Color
}

// Shape 一个齿轮的完整可渲染图形，坐标均在齿轮局部坐标系内
//
// 绘制顺序：Body（仅内齿轮）→ Outline → Axle（仅外齿轮）→ Mark
type Shape struct {
	Spec        Spec
	Dimensions  geometry.Dimensions
	Outline     []geometry.Point
	OutlineFill color.Color
	Body        *Circle // 内齿圈环体，外齿轮为 nil
	Axle        *Circle // 轴孔，内齿轮为 nil
	Mark        Circle  // 方向标记，随齿轮刚性旋转
	Stroke      color.Color
	StrokeWidth float64
}

// Make 根据规格构建齿轮图形
//
// 内齿轮：轮廓以背景色填充，其下方绘制半径为 节圆+外缘 的彩色环体，无轴孔；
// 外齿轮：轮廓以 spec.Color 填充，上方挖出白色轴孔，
// 半径 = clamp(AxleRadius, 1, 节圆 - 20)。
//
// 返回值由调用方持有，不会挂载到任何显示树上。
func Make(spec Spec, params Params) *Shape {
	dim := params.Dimensions(spec.ToothCount)
	profile := geometry.BuildToothProfile(geometry.NewToothParams(spec.ToothCount, dim))

	shape := &Shape{
		Spec:        spec,
		Dimensions:  dim,
		Outline:     geometry.BuildGearOutline(spec.ToothCount, profile),
		Stroke:      StrokeColor,
		StrokeWidth: StrokeWidth,
	}

	var markRadius float64
	if spec.Internal {
		shape.OutlineFill = BackgroundColor
		shape.Body = &Circle{
			Radius: dim.Pitch + params.RingMargin,
			Fill:   spec.Color,
		}
		markRadius = dim.Pitch + params.RingMargin/2
	} else {
		shape.OutlineFill = spec.Color
		shape.Axle = &Circle{
			Radius: AxleRadius(params, dim.Pitch),
			Fill:   BackgroundColor,
		}
		markRadius = dim.Pitch - markInset
	}

	// rotate(90) translate(markRadius)
	shape.Mark = Circle{
		Center: geometry.Identity().Rotate(90).Translate(markRadius, 0).Origin(),
		Radius: MarkRadius,
		Fill:   MarkColor,
	}
	return shape
}

// AxleRadius 外齿轮轴孔半径 = clamp(params.AxleRadius, 1, pitch - 20)
func AxleRadius(params Params, pitch float64) float64 {
	return math.Max(1, math.Min(params.AxleRadius, pitch-axleInset))
}

// ExtentRadius 图形最外缘到中心的距离
func (s *Shape) ExtentRadius() float64 {
	r := s.Dimensions.Outer
	if s.Body != nil {
		r = math.Max(r, s.Body.Radius)
	}
	return r
}
