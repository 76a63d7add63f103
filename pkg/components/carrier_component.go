package components

import (
	"image/color"

	"github.com/decker502/planetary/pkg/carrier"
)

// CarrierComponent 行星架：每帧由行星位置重新生成，不持久化
type CarrierComponent struct {
	Path        carrier.Path
	Fill        color.Color
	Stroke      color.Color
	StrokeWidth float64
	Layer       int
}
