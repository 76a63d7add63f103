package render

import (
	"encoding/xml"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/decker502/planetary/pkg/components"
	"github.com/decker502/planetary/pkg/gear"
	"github.com/decker502/planetary/pkg/geometry"
	"github.com/decker502/planetary/pkg/scene"
)

const (
	svgNamespace = "http://www.w3.org/2000/svg"
	planetDefID  = "planet"
)

// WriteSVG 将快照写为独立 SVG 文档
//
// 行星图形只在 <defs> 中定义一次，每个行星实例是一个带变换的 <use>。
// 齿轮图形保持局部坐标，放置变换写入 transform 属性。
func WriteSVG(w io.Writer, snap scene.Snapshot) error {
	sw := &svgWriter{enc: xml.NewEncoder(w)}
	sw.enc.Indent("", "  ")

	size := formatNumber(snap.Size)
	sw.start("svg",
		"xmlns", svgNamespace,
		"width", size,
		"height", size,
		"viewBox", "0 0 "+size+" "+size,
	)
	sw.empty("rect", "width", size, "height", size, "fill", colorHex(snap.Background))

	if snap.PlanetShape != nil {
		sw.start("defs")
		sw.start("g", "id", planetDefID)
		sw.shape(snap.PlanetShape)
		sw.end("g")
		sw.end("defs")
	}

	sw.start("g", "transform", fmt.Sprintf("translate(%s,%s)", formatNumber(snap.Center.X), formatNumber(snap.Center.Y)))
	for i := range snap.Items {
		it := &snap.Items[i]
		switch it.Kind {
		case scene.ItemCarrier:
			if it.Carrier.Empty || len(it.Carrier.Arcs) == 0 {
				continue
			}
			attrs := []string{"d", it.Carrier.SVG() + " Z"}
			attrs = append(attrs, fillAttrs("fill", it.Fill)...)
			attrs = append(attrs, fillAttrs("stroke", it.Stroke)...)
			attrs = append(attrs, "stroke-width", formatNumber(it.StrokeWidth))
			sw.empty("path", attrs...)
		case scene.ItemGear:
			if it.Role == components.RolePlanet && snap.PlanetShape != nil && it.Shape == snap.PlanetShape {
				sw.empty("use", "href", "#"+planetDefID, "transform", it.Transform.SVG())
				continue
			}
			sw.start("g", "transform", it.Transform.SVG())
			sw.shape(it.Shape)
			sw.end("g")
		}
	}
	sw.end("g")
	sw.end("svg")

	if sw.err != nil {
		return fmt.Errorf("write svg: %w", sw.err)
	}
	if err := sw.enc.Flush(); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

// svgWriter 基于 xml.Encoder 的元素写入器，记录第一个错误
type svgWriter struct {
	enc *xml.Encoder
	err error
}

// start 写入开始标签，attrs 为 name/value 交替排列
func (w *svgWriter) start(name string, attrs ...string) {
	if w.err != nil {
		return
	}
	el := xml.StartElement{Name: xml.Name{Local: name}}
	for i := 0; i+1 < len(attrs); i += 2 {
		el.Attr = append(el.Attr, xml.Attr{Name: xml.Name{Local: attrs[i]}, Value: attrs[i+1]})
	}
	w.err = w.enc.EncodeToken(el)
}

func (w *svgWriter) end(name string) {
	if w.err != nil {
		return
	}
	w.err = w.enc.EncodeToken(xml.EndElement{Name: xml.Name{Local: name}})
}

func (w *svgWriter) empty(name string, attrs ...string) {
	w.start(name, attrs...)
	w.end(name)
}

// shape 写入齿轮图形：环体、轮廓、轴孔、方向标记
func (w *svgWriter) shape(s *gear.Shape) {
	if s.Body != nil {
		w.circle(*s.Body)
	}

	attrs := []string{"points", formatPoints(s.Outline)}
	attrs = append(attrs, fillAttrs("fill", s.OutlineFill)...)
	attrs = append(attrs, fillAttrs("stroke", s.Stroke)...)
	attrs = append(attrs, "stroke-width", formatNumber(s.StrokeWidth))
	w.empty("polygon", attrs...)

	if s.Axle != nil {
		w.circle(*s.Axle)
	}
	w.circle(s.Mark)
}

func (w *svgWriter) circle(c gear.Circle) {
	attrs := []string{
		"cx", formatNumber(c.Center.X),
		"cy", formatNumber(c.Center.Y),
		"r", formatNumber(c.Radius),
	}
	attrs = append(attrs, fillAttrs("fill", c.Fill)...)
	w.empty("circle", attrs...)
}

// fillAttrs 返回颜色属性；半透明颜色额外输出 *-opacity
func fillAttrs(name string, c color.Color) []string {
	if c == nil {
		return []string{name, "none"}
	}
	attrs := []string{name, colorHex(c)}
	if a := color.NRGBAModel.Convert(c).(color.NRGBA).A; a != 0xff {
		attrs = append(attrs, name+"-opacity", strconv.FormatFloat(float64(a)/255, 'f', 3, 64))
	}
	return attrs
}

// colorHex 返回 #rrggbb
func colorHex(c color.Color) string {
	if c == nil {
		return "none"
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}

func formatPoints(points []geometry.Point) string {
	var sb strings.Builder
	for i, p := range points {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(formatNumber(p.X))
		sb.WriteByte(',')
		sb.WriteString(formatNumber(p.Y))
	}
	return sb.String()
}

// formatNumber 保留 3 位小数并去掉多余的 0
func formatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}
