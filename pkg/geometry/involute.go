package geometry

import "math"

// ProfilePointsPerTooth 单齿轮廓点数：2 个齿根闭合点 + 2×6 个渐开线采样点 + 2 个齿根闭合点
const ProfilePointsPerTooth = 16

// flankSamples 每侧齿面在齿根与齿顶之间的采样数
const flankSamples = 6

// Dimensions 由齿数导出的齿轮半径参数
type Dimensions struct {
	Pitch          float64 // 节圆半径
	Outer          float64 // 齿顶圆半径
	Base           float64 // 基圆半径
	Root           float64 // 齿根圆半径（已截断到 >= 0）
	ToothThickness float64 // 节圆上的齿厚（弧长）
}

// ToothParams 单齿轮廓生成参数
type ToothParams struct {
	ToothCount int
	Dimensions
	// FlankAngle 渐开线与基圆交点的角度（k）
	FlankAngle float64
}

// Involute 从半径 b 的基圆展开到半径 d 所需的渐开线角（弧度）
//
//	unwind(b, d) = sqrt((d/b)² − 1) − acos(b/d)
func Involute(b, d float64) float64 {
	ratio := d / b
	return math.Sqrt(ratio*ratio-1) - math.Acos(b/d)
}

// PitchRadius 节圆半径 = 齿距 × 齿数 / 2π
func PitchRadius(toothPitch float64, toothCount int) float64 {
	return toothPitch * float64(toothCount) / math.Pi / 2
}

// ComputeDimensions 计算齿轮的各圆半径
//
// 参数:
//   - toothCount: 齿数
//   - toothPitch: 节圆上单齿弧长（像素），相互啮合的齿轮必须相同
//   - pressureAngle: 压力角（弧度）
//   - clearance: 齿顶间隙
//   - backlash: 侧隙
func ComputeDimensions(toothCount int, toothPitch, pressureAngle, clearance, backlash float64) Dimensions {
	p := PitchRadius(toothPitch, toothCount)
	c := p + toothPitch/math.Pi - clearance
	b := p * math.Cos(pressureAngle)
	r := p - (c - p) - clearance
	if r < 0 {
		r = 0
	}
	return Dimensions{
		Pitch:          p,
		Outer:          c,
		Base:           b,
		Root:           r,
		ToothThickness: toothPitch/2 - backlash/2,
	}
}

// NewToothParams 根据齿轮尺寸计算渐开线起始角
func NewToothParams(toothCount int, dim Dimensions) ToothParams {
	k := -Involute(dim.Base, dim.Pitch) - dim.ToothThickness/2/dim.Pitch
	return ToothParams{
		ToothCount: toothCount,
		Dimensions: dim,
		FlankAngle: k,
	}
}

// flankPoint 齿面上距离齿根 f 比例处的点
// s 为齿面方向（+1 / -1）
func flankPoint(tp ToothParams, f, s float64) Point {
	d := (1-f)*math.Max(tp.Base, tp.Root) + f*tp.Outer
	return Polar(d, s*(Involute(tp.Base, d)+tp.FlankAngle))
}

// BuildToothProfile 生成单个齿的轮廓（16 个点）
//
// 顺序：齿根 → +1 侧渐开线（由内向外）→ 齿顶 → -1 侧渐开线（由外向内）→ 齿根
//
// 当齿根圆大于基圆时，齿面直接从齿根圆出发，闭合点改用 ±π/n，
// 避免在基圆处产生尖锐折角。
func BuildToothProfile(tp ToothParams) []Point {
	n := float64(tp.ToothCount)
	r, b, k := tp.Root, tp.Base, tp.FlankAngle

	innerLeft, innerRight := -math.Pi/n, math.Pi/n
	if r < b {
		innerLeft, innerRight = k, -k
	}

	points := make([]Point, 0, ProfilePointsPerTooth)
	points = append(points, Polar(r, -math.Pi/n), Polar(r, innerLeft))
	for i := 0; i < flankSamples; i++ {
		points = append(points, flankPoint(tp, float64(i)/(flankSamples-1), 1))
	}
	for i := flankSamples - 1; i >= 0; i-- {
		points = append(points, flankPoint(tp, float64(i)/(flankSamples-1), -1))
	}
	points = append(points, Polar(r, innerRight), Polar(r, math.Pi/n))
	return points
}

// BuildGearOutline 将单齿轮廓绕原点旋转 toothCount 次并首尾相接
// 第 i 个齿旋转 -i·2π/n，输出点序连续，可直接作为多边形填充
func BuildGearOutline(toothCount int, profile []Point) []Point {
	outline := make([]Point, 0, toothCount*len(profile))
	for i := 0; i < toothCount; i++ {
		outline = append(outline, RotatePoints(profile, -float64(i)*2*math.Pi/float64(toothCount))...)
	}
	return outline
}
