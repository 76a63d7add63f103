package geometry

import (
	"math"
	"testing"
)

const testPressureAngle = 20.0 / 180 * math.Pi

// buildTestOutline 按原版默认参数生成齿轮轮廓
func buildTestOutline(toothCount int, toothPitch float64) []Point {
	dim := ComputeDimensions(toothCount, toothPitch, testPressureAngle, 2, 2)
	profile := BuildToothProfile(NewToothParams(toothCount, dim))
	return BuildGearOutline(toothCount, profile)
}

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestInvoluteAtBaseCircleIsZero(t *testing.T) {
	if got := Involute(10, 10); got != 0 {
		t.Errorf("Involute(b, b) should be 0, got %f", got)
	}

	// 半径增大时展开角单调递增
	prev := 0.0
	for d := 10.5; d < 20; d += 0.5 {
		cur := Involute(10, d)
		if cur <= prev {
			t.Fatalf("Involute should increase with radius, d=%.1f got %f <= %f", d, cur, prev)
		}
		prev = cur
	}
}

func TestComputeDimensionsOrdering(t *testing.T) {
	for _, n := range []int{8, 16, 20, 52, 90} {
		dim := ComputeDimensions(n, 3*math.Pi, testPressureAngle, 2, 2)
		if !(dim.Base < dim.Pitch && dim.Pitch < dim.Outer) {
			t.Errorf("n=%d: expected base < pitch < outer, got %.3f %.3f %.3f", n, dim.Base, dim.Pitch, dim.Outer)
		}
		if dim.Root < 0 {
			t.Errorf("n=%d: root radius should be clamped to >= 0, got %f", n, dim.Root)
		}
	}
}

func TestRootRadiusClampedForTinyGears(t *testing.T) {
	// 齿根圆半径 = 齿距·(n-2)/2π，单齿时为负
	dim := ComputeDimensions(1, 3*math.Pi, testPressureAngle, 2, 2)
	if dim.Root != 0 {
		t.Errorf("Expected root radius clamped to 0, got %f", dim.Root)
	}
}

func TestPitchRadiusScalesLinearly(t *testing.T) {
	for _, n := range []int{8, 13, 20, 40} {
		single := PitchRadius(3*math.Pi, n)
		double := PitchRadius(3*math.Pi, 2*n)
		if !almostEqual(double, 2*single, 1e-9) {
			t.Errorf("n=%d: pitch(2n)=%f, expected %f", n, double, 2*single)
		}
	}
}

func TestToothProfileHasSixteenPoints(t *testing.T) {
	dim := ComputeDimensions(20, 3*math.Pi, testPressureAngle, 2, 2)
	profile := BuildToothProfile(NewToothParams(20, dim))
	if len(profile) != ProfilePointsPerTooth {
		t.Fatalf("Expected %d profile points, got %d", ProfilePointsPerTooth, len(profile))
	}

	// 第一个和最后一个点位于齿根圆上
	if !almostEqual(profile[0].Length(), dim.Root, 1e-9) || !almostEqual(profile[15].Length(), dim.Root, 1e-9) {
		t.Errorf("Closure points should lie on the root circle")
	}

	// 第 8、9 个点位于齿顶圆上
	if !almostEqual(profile[7].Length(), dim.Outer, 1e-9) || !almostEqual(profile[8].Length(), dim.Outer, 1e-9) {
		t.Errorf("Tip points should lie on the outer circle, got %f %f", profile[7].Length(), profile[8].Length())
	}
}

func TestToothProfileIsMirrorSymmetric(t *testing.T) {
	dim := ComputeDimensions(16, 3*math.Pi, testPressureAngle, 2, 2)
	profile := BuildToothProfile(NewToothParams(16, dim))

	// 齿形关于 Y 轴对称：第 i 个点与第 15-i 个点 X 互为相反数
	for i := 0; i < len(profile)/2; i++ {
		a, b := profile[i], profile[len(profile)-1-i]
		if !almostEqual(a.X, -b.X, 1e-9) || !almostEqual(a.Y, b.Y, 1e-9) {
			t.Errorf("Point %d (%f,%f) is not the mirror of point %d (%f,%f)", i, a.X, a.Y, len(profile)-1-i, b.X, b.Y)
		}
	}
}

func TestToothProfileRootBranch(t *testing.T) {
	// 小齿数：齿根圆在基圆内，第二个点使用渐开线起始角 k
	small := ComputeDimensions(12, 3*math.Pi, testPressureAngle, 2, 2)
	if small.Root >= small.Base {
		t.Fatalf("Test precondition: expected root < base for 12 teeth")
	}
	tp := NewToothParams(12, small)
	profile := BuildToothProfile(tp)
	want := Polar(small.Root, tp.FlankAngle)
	if !almostEqual(profile[1].X, want.X, 1e-12) || !almostEqual(profile[1].Y, want.Y, 1e-12) {
		t.Errorf("Expected second point at flank angle k, got (%f,%f)", profile[1].X, profile[1].Y)
	}

	// 大齿数：齿根圆在基圆外，第二个点与第一个点重合（-π/n）
	large := ComputeDimensions(60, 3*math.Pi, testPressureAngle, 2, 2)
	if large.Root <= large.Base {
		t.Fatalf("Test precondition: expected root > base for 60 teeth")
	}
	profile = BuildToothProfile(NewToothParams(60, large))
	if profile[0] != profile[1] {
		t.Errorf("Expected duplicated closure point when root > base, got %v and %v", profile[0], profile[1])
	}
	if profile[14] != profile[15] {
		t.Errorf("Expected duplicated closing point when root > base, got %v and %v", profile[14], profile[15])
	}
}

func TestGearOutlinePointCountAndSimplicity(t *testing.T) {
	// 原版默认齿距，以及按 600px 画布与 52 齿内齿圈缩放后的齿距
	pitches := []float64{3 * math.Pi, math.Pi * (600 - 60) / 52}
	for _, pitch := range pitches {
		for _, n := range []int{8, 9, 12, 16, 20, 33, 52, 80} {
			outline := buildTestOutline(n, pitch)
			if len(outline) != n*ProfilePointsPerTooth {
				t.Errorf("pitch=%.2f n=%d: expected %d points, got %d", pitch, n, n*ProfilePointsPerTooth, len(outline))
			}
			if SelfIntersects(outline) {
				t.Errorf("pitch=%.2f n=%d: outline should not self-intersect", pitch, n)
			}
		}
	}
}

func TestGearOutlineIsContinuous(t *testing.T) {
	n := 20
	outline := buildTestOutline(n, 3*math.Pi)

	// 相邻齿首尾相接：第 i 齿的最后一点与第 i+1 齿的第一点重合
	for i := 0; i < n; i++ {
		last := outline[i*ProfilePointsPerTooth+ProfilePointsPerTooth-1]
		next := outline[((i+1)%n)*ProfilePointsPerTooth]
		if last.Sub(next).Length() > 1e-9 {
			t.Errorf("Tooth %d does not join tooth %d: %v vs %v", i, (i+1)%n, last, next)
		}
	}
}

func TestGearOutlineRotationalSymmetry(t *testing.T) {
	for _, n := range []int{8, 17, 52} {
		outline := buildTestOutline(n, 3*math.Pi)
		rotated := RotatePoints(outline, 2*math.Pi/float64(n))
		total := len(outline)
		for j := range rotated {
			want := outline[(j-ProfilePointsPerTooth+total)%total]
			if rotated[j].Sub(want).Length() > 1e-9 {
				t.Fatalf("n=%d: rotated point %d = %v, expected %v", n, j, rotated[j], want)
			}
		}
	}
}
