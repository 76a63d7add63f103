// Package gear 根据齿数构建可渲染的齿轮图形（轮廓 + 轴孔 + 方向标记）
package gear

import (
	"math"

	"github.com/decker502/planetary/pkg/geometry"
)

// 原版默认的全局齿轮参数
const (
	DefaultToothPitch    = 3 * math.Pi // 单齿节距（像素），相互啮合的齿轮必须一致
	DefaultPressureAngle = 20.0        // 压力角（度），常用 20°，可取 10°~40°
	DefaultClearance     = 2.0         // 齿顶间隙
	DefaultBacklash      = 2.0         // 侧隙
	DefaultAxleRadius    = 10.0        // 轴孔半径（像素）
	DefaultRingMargin    = 10.0        // 内齿圈外缘宽度（像素）

	// ringMarginRatio 画布缩放时内齿圈外缘宽度占画布边长的比例
	ringMarginRatio = 0.05
)

// Params 一组齿轮共用的全局参数
// 同一个行星轮系内的所有齿轮必须使用同一组 Params 才能正确啮合
type Params struct {
	ToothPitch    float64 // 单齿节距（像素）
	PressureAngle float64 // 压力角（度）
	Clearance     float64
	Backlash      float64
	AxleRadius    float64
	RingMargin    float64
}

// DefaultParams 返回原版默认参数
func DefaultParams() Params {
	return Params{
		ToothPitch:    DefaultToothPitch,
		PressureAngle: DefaultPressureAngle,
		Clearance:     DefaultClearance,
		Backlash:      DefaultBacklash,
		AxleRadius:    DefaultAxleRadius,
		RingMargin:    DefaultRingMargin,
	}
}

// ParamsForCanvas 按画布边长缩放参数，使内齿圈恰好填满画布
//
// 参数:
//   - canvasSize: 画布边长（像素）
//   - ringTeeth: 内齿圈齿数
func ParamsForCanvas(canvasSize float64, ringTeeth int) Params {
	p := DefaultParams()
	if canvasSize <= 0 || ringTeeth <= 0 {
		return p
	}
	p.RingMargin = canvasSize * ringMarginRatio
	p.ToothPitch = math.Pi * (canvasSize - 2*p.RingMargin) / float64(ringTeeth)
	return p
}

// PitchRadius 返回该参数下 toothCount 齿的节圆半径
func (p Params) PitchRadius(toothCount int) float64 {
	return geometry.PitchRadius(p.ToothPitch, toothCount)
}

// Dimensions 返回该参数下 toothCount 齿的各圆半径
func (p Params) Dimensions(toothCount int) geometry.Dimensions {
	return geometry.ComputeDimensions(toothCount, p.ToothPitch, geometry.DegToRad(p.PressureAngle), p.Clearance, p.Backlash)
}
