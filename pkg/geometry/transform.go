package geometry

import "math"

// Transform 2D 仿射变换（行向量约定）
//
//	x' = A*x + C*y + E
//	y' = B*x + D*y + F
//
// 组合顺序与 SVG transform 属性相同：
// Identity().Rotate(a).Translate(r, 0) 等价于 "rotate(a) translate(r)"
type Transform struct {
	A, B, C, D, E, F float64
}

// Identity 返回单位变换
func Identity() Transform {
	return Transform{A: 1, D: 1}
}

// Multiply 返回 t·o（先应用 o，再应用 t）
func (t Transform) Multiply(o Transform) Transform {
	return Transform{
		A: t.A*o.A + t.C*o.B,
		B: t.B*o.A + t.D*o.B,
		C: t.A*o.C + t.C*o.D,
		D: t.B*o.C + t.D*o.D,
		E: t.A*o.E + t.C*o.F + t.E,
		F: t.B*o.E + t.D*o.F + t.F,
	}
}

// Rotate 追加旋转（角度制，SVG 语义）
func (t Transform) Rotate(deg float64) Transform {
	sin, cos := math.Sincos(DegToRad(deg))
	return t.Multiply(Transform{A: cos, B: sin, C: -sin, D: cos})
}

// Translate 追加平移
func (t Transform) Translate(x, y float64) Transform {
	return t.Multiply(Transform{A: 1, D: 1, E: x, F: y})
}

// Apply 变换单个点
func (t Transform) Apply(p Point) Point {
	return Point{
		X: t.A*p.X + t.C*p.Y + t.E,
		Y: t.B*p.X + t.D*p.Y + t.F,
	}
}

// ApplyAll 变换点序列，返回新切片
func (t Transform) ApplyAll(points []Point) []Point {
	out := make([]Point, len(points))
	for i, p := range points {
		out[i] = t.Apply(p)
	}
	return out
}

// Origin 返回变换后原点的位置
func (t Transform) Origin() Point {
	return Point{X: t.E, Y: t.F}
}
