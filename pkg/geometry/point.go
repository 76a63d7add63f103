// Package geometry 提供齿轮轮廓计算所需的纯数学工具
//
// 本包不依赖任何渲染后端：所有函数都是数值输入到点序列输出的纯函数，
// 坐标系与 SVG 屏幕坐标一致（X 向右，Y 向下）。
package geometry

import "math"

// Point 二维点
type Point struct {
	X, Y float64
}

// Add 返回 p + o
func (p Point) Add(o Point) Point { return Point{p.X + o.X, p.Y + o.Y} }

// Sub 返回 p - o
func (p Point) Sub(o Point) Point { return Point{p.X - o.X, p.Y - o.Y} }

// Scale 返回 p * s
func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s} }

// Length 返回点到原点的距离
func (p Point) Length() float64 { return math.Hypot(p.X, p.Y) }

// Rotate 绕原点旋转 angle 弧度
// 旋转方向与 SVG rotate() 一致：正角度在屏幕上为顺时针
func (p Point) Rotate(angle float64) Point {
	sin, cos := math.Sincos(angle)
	return Point{
		X: p.X*cos - p.Y*sin,
		Y: p.Y*cos + p.X*sin,
	}
}

// Polar 极坐标转笛卡尔坐标
// 注意：角度从 +Y 轴起算（x = r·sinθ, y = r·cosθ），齿形生成依赖此约定
func Polar(r, theta float64) Point {
	sin, cos := math.Sincos(theta)
	return Point{X: r * sin, Y: r * cos}
}

// RotatePoints 将点序列整体旋转 angle 弧度，返回新切片
func RotatePoints(points []Point, angle float64) []Point {
	out := make([]Point, len(points))
	sin, cos := math.Sincos(angle)
	for i, p := range points {
		out[i] = Point{
			X: p.X*cos - p.Y*sin,
			Y: p.Y*cos + p.X*sin,
		}
	}
	return out
}

// DegToRad 角度转弧度
func DegToRad(deg float64) float64 {
	return deg / 180 * math.Pi
}

// RadToDeg 弧度转角度
func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// NormalizeDegrees 将角度规范化到 [0, 360)
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	// -1e-15 + 360 在浮点下可能恰好等于 360
	if deg >= 360 {
		deg = 0
	}
	return deg
}
