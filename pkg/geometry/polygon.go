package geometry

import "math"

// Bounds 点集的轴对齐包围盒
type Bounds struct {
	Min, Max Point
}

// PolygonBounds 计算点集包围盒，空点集返回零值
func PolygonBounds(points []Point) Bounds {
	if len(points) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		b.Min.X = math.Min(b.Min.X, p.X)
		b.Min.Y = math.Min(b.Min.Y, p.Y)
		b.Max.X = math.Max(b.Max.X, p.X)
		b.Max.Y = math.Max(b.Max.Y, p.Y)
	}
	return b
}

// SelfIntersects 判断隐式闭合多边形是否存在非相邻边的交叉
//
// 零长度边（齿根处重复点）会被跳过；相邻边共享端点不视为交叉。
// 复杂度 O(n²)，仅用于校验与测试。
func SelfIntersects(polygon []Point) bool {
	n := len(polygon)
	if n < 4 {
		return false
	}
	const eps = 1e-9
	for i := 0; i < n; i++ {
		a1, a2 := polygon[i], polygon[(i+1)%n]
		if a1.Sub(a2).Length() < eps {
			continue
		}
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue
			}
			b1, b2 := polygon[j], polygon[(j+1)%n]
			if b1.Sub(b2).Length() < eps {
				continue
			}
			if segmentsCross(a1, a2, b1, b2, eps) {
				return true
			}
		}
	}
	return false
}

// segmentsCross 判断两条线段是否严格相交（端点接触不算）
func segmentsCross(p1, p2, q1, q2 Point, eps float64) bool {
	d1 := cross(q1, q2, p1)
	d2 := cross(q1, q2, p2)
	d3 := cross(p1, p2, q1)
	d4 := cross(p1, p2, q2)
	return ((d1 > eps && d2 < -eps) || (d1 < -eps && d2 > eps)) &&
		((d3 > eps && d4 < -eps) || (d3 < -eps && d4 > eps))
}

func cross(o, a, b Point) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}
