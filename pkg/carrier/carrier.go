// Package carrier 根据行星轮位置构建行星架轮廓（圆弧样条闭合路径）
package carrier

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/decker502/planetary/pkg/geometry"
)

// arcRadiusDivisor 经验常数：圆弧半径 = 轨道半径 × 行星数 / 1.923，
// 使连接相邻行星的圆弧略向外鼓起，近似真实的行星架外形
const arcRadiusDivisor = 1.923

// Arc SVG 端点式圆弧段：小弧（large-arc=0）、正向扫掠（sweep=1）
type Arc struct {
	Radius float64
	To     geometry.Point
}

// Path 行星架闭合路径
type Path struct {
	Start geometry.Point
	Arcs  []Arc
	// Empty 为 true 表示没有任何点（退化情况）
	Empty bool
}

// Build 依次连接各行星位置（最后一个连回第一个）
//
// 参数:
//   - points: 当前活跃行星的中心位置，按行星序号排列
//   - orbitRadius: 行星公转半径
//
// 少于 2 个点时结果退化（空路径或仅有起点），由调用方保证传入活跃行星集合。
func Build(points []geometry.Point, orbitRadius float64) Path {
	if len(points) == 0 {
		return Path{Empty: true}
	}

	radius := orbitRadius * float64(len(points)) / arcRadiusDivisor
	path := Path{Start: points[0]}
	if len(points) < 2 {
		return path
	}

	path.Arcs = make([]Arc, 0, len(points))
	for i := 1; i <= len(points); i++ {
		path.Arcs = append(path.Arcs, Arc{
			Radius: radius,
			To:     points[i%len(points)],
		})
	}
	return path
}

// SVG 返回 path 元素的 d 属性
// 格式："M x,y A r,r 0 0 1 x,y A ..."
func (p Path) SVG() string {
	if p.Empty {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("M")
	writePoint(&sb, p.Start)
	for _, arc := range p.Arcs {
		r := formatFloat(arc.Radius)
		fmt.Fprintf(&sb, " A%s,%s 0 0 1 ", r, r)
		writePoint(&sb, arc.To)
	}
	return sb.String()
}

// Segments 返回每段圆弧的起点与圆弧本身
func (p Path) Segments() []Segment {
	segs := make([]Segment, 0, len(p.Arcs))
	from := p.Start
	for _, arc := range p.Arcs {
		segs = append(segs, Segment{From: from, Arc: arc})
		from = arc.To
	}
	return segs
}

// Segment 一段带起点的圆弧
type Segment struct {
	From geometry.Point
	Arc
}

// Geometry 将 SVG 端点式圆弧转换为圆心式参数
//
// 返回圆心、实际半径，以及起止角（弧度，atan2 约定，Y 轴向下）。
// 正向扫掠意味着角度从 start 递增到 end（屏幕上顺时针）。
// 半径小于半弦长时按 SVG 规则放大到半弦长。
func (s Segment) Geometry() (center geometry.Point, radius, start, end float64) {
	radius = math.Abs(s.Radius)
	half := s.From.Sub(s.To).Scale(0.5)
	mid := s.From.Add(s.To).Scale(0.5)
	halfLenSq := half.X*half.X + half.Y*half.Y

	if halfLenSq == 0 {
		return s.From, radius, 0, 0
	}

	coef := 0.0
	if radius*radius > halfLenSq {
		coef = math.Sqrt((radius*radius - halfLenSq) / halfLenSq)
	} else {
		radius = math.Sqrt(halfLenSq)
	}

	// large-arc != sweep，圆心取正号一侧
	center = geometry.Point{
		X: mid.X + coef*half.Y,
		Y: mid.Y - coef*half.X,
	}
	start = math.Atan2(s.From.Y-center.Y, s.From.X-center.X)
	end = math.Atan2(s.To.Y-center.Y, s.To.X-center.X)
	for end < start {
		end += 2 * math.Pi
	}
	return center, radius, start, end
}

// Flatten 将路径离散为折线，每段圆弧取 steps 个分段
func (p Path) Flatten(steps int) []geometry.Point {
	if p.Empty {
		return nil
	}
	if steps < 1 {
		steps = 1
	}
	out := []geometry.Point{p.Start}
	for _, seg := range p.Segments() {
		center, radius, start, end := seg.Geometry()
		for i := 1; i <= steps; i++ {
			a := start + (end-start)*float64(i)/float64(steps)
			sin, cos := math.Sincos(a)
			out = append(out, geometry.Point{X: center.X + radius*cos, Y: center.Y + radius*sin})
		}
	}
	return out
}

func writePoint(sb *strings.Builder, p geometry.Point) {
	sb.WriteString(formatFloat(p.X))
	sb.WriteByte(',')
	sb.WriteString(formatFloat(p.Y))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
