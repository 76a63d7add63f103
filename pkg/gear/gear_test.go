package gear

import (
	"image/color"
	"math"
	"testing"

	"github.com/decker502/planetary/pkg/geometry"
)

var testColor = color.RGBA{R: 0x44, G: 0xdd, B: 0xdd, A: 0xff}

func TestMakeExternalGear(t *testing.T) {
	params := DefaultParams()
	shape := Make(Spec{ToothCount: 20, Color: testColor}, params)

	if len(shape.Outline) != 20*geometry.ProfilePointsPerTooth {
		t.Fatalf("Expected %d outline points, got %d", 20*geometry.ProfilePointsPerTooth, len(shape.Outline))
	}
	if shape.OutlineFill != color.Color(testColor) {
		t.Errorf("External gear outline should be filled with the gear colour")
	}
	if shape.Body != nil {
		t.Error("External gear should not have a ring body")
	}
	if shape.Axle == nil {
		t.Fatal("External gear should have an axle hole")
	}

	// pitch = 30 → clamp(10, 1, 10) = 10
	if math.Abs(shape.Axle.Radius-10) > 1e-9 {
		t.Errorf("Expected axle radius 10, got %.15f", shape.Axle.Radius)
	}
	if shape.Axle.Fill != color.Color(BackgroundColor) {
		t.Error("Axle hole should be white")
	}
}

func TestAxleRadiusClamp(t *testing.T) {
	params := DefaultParams()

	// 节圆 25 → 上限 5
	if got := AxleRadius(params, 25); got != 5 {
		t.Errorf("Expected axle radius 5, got %f", got)
	}
	// 节圆 15 → 下限 1
	if got := AxleRadius(params, 15); got != 1 {
		t.Errorf("Expected axle radius 1, got %f", got)
	}
	// 节圆 100 → 配置值 10
	if got := AxleRadius(params, 100); got != 10 {
		t.Errorf("Expected axle radius 10, got %f", got)
	}
}

func TestMakeInternalGear(t *testing.T) {
	params := DefaultParams()
	shape := Make(Spec{ToothCount: 52, Internal: true, Color: testColor}, params)

	if shape.Axle != nil {
		t.Error("Ring gear should not have an axle hole")
	}
	if shape.Body == nil {
		t.Fatal("Ring gear should have a body circle")
	}
	pitch := params.PitchRadius(52)
	if math.Abs(shape.Body.Radius-(pitch+params.RingMargin)) > 1e-9 {
		t.Errorf("Expected body radius %f, got %f", pitch+params.RingMargin, shape.Body.Radius)
	}
	if shape.OutlineFill != color.Color(BackgroundColor) {
		t.Error("Ring outline should be filled with the background colour")
	}
	if shape.ExtentRadius() != shape.Body.Radius {
		t.Errorf("Ring extent should be its body radius")
	}
}

func TestOrientationMarkPosition(t *testing.T) {
	params := DefaultParams()

	external := Make(Spec{ToothCount: 20, Color: testColor}, params)
	wantExternal := params.PitchRadius(20) - 10
	if math.Abs(external.Mark.Center.X) > 1e-9 || math.Abs(external.Mark.Center.Y-wantExternal) > 1e-9 {
		t.Errorf("External mark should be at (0,%f), got %v", wantExternal, external.Mark.Center)
	}

	internal := Make(Spec{ToothCount: 52, Internal: true, Color: testColor}, params)
	wantInternal := params.PitchRadius(52) + params.RingMargin/2
	if math.Abs(internal.Mark.Center.Y-wantInternal) > 1e-9 {
		t.Errorf("Internal mark should be at (0,%f), got %v", wantInternal, internal.Mark.Center)
	}
	if internal.Mark.Radius != MarkRadius {
		t.Errorf("Expected mark radius %f, got %f", MarkRadius, internal.Mark.Radius)
	}
}

func TestParamsForCanvas(t *testing.T) {
	params := ParamsForCanvas(600, 52)
	if math.Abs(params.RingMargin-30) > 1e-9 {
		t.Errorf("Expected ring margin 30, got %f", params.RingMargin)
	}

	// 内齿圈节圆直径 + 两侧外缘 = 画布边长
	pitch := params.PitchRadius(52)
	if math.Abs(2*pitch+2*params.RingMargin-600) > 1e-9 {
		t.Errorf("Ring gear should fill the canvas, got diameter %f", 2*pitch+2*params.RingMargin)
	}

	// 非法输入回退默认值
	if ParamsForCanvas(0, 52) != DefaultParams() {
		t.Error("Expected default params for zero canvas size")
	}
}
