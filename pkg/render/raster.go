package render

import (
	"fmt"
	"image"
	"io"
	"math"

	"github.com/gogpu/gg"

	"github.com/decker502/planetary/pkg/scene"
)

// RenderPNG 使用 gg 软件光栅化快照
//
// 返回:
//   - image.Image: 边长为 snap.Size 的图片
//   - error: 绘制失败时返回错误
func RenderPNG(snap scene.Snapshot) (image.Image, error) {
	dc, err := rasterize(snap)
	if err != nil {
		return nil, err
	}
	defer dc.Close()
	return dc.Image(), nil
}

// WritePNG 将快照编码为 PNG 写入 w
func WritePNG(w io.Writer, snap scene.Snapshot) error {
	dc, err := rasterize(snap)
	if err != nil {
		return err
	}
	defer dc.Close()
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// SavePNG 将快照保存为 PNG 文件
func SavePNG(path string, snap scene.Snapshot) error {
	dc, err := rasterize(snap)
	if err != nil {
		return err
	}
	defer dc.Close()
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("save png %s: %w", path, err)
	}
	return nil
}

func rasterize(snap scene.Snapshot) (*gg.Context, error) {
	size := int(math.Ceil(snap.Size))
	if size <= 0 {
		return nil, fmt.Errorf("invalid canvas size %f", snap.Size)
	}

	dc := gg.NewContext(size, size)
	dc.SetFillRule(gg.FillRuleNonZero)
	dc.ClearWithColor(gg.FromColor(snap.Background))

	r := &rasterizer{dc: dc}
	for i := range snap.Items {
		it := &snap.Items[i]
		switch it.Kind {
		case scene.ItemGear:
			r.gear(PlaceGear(it.Shape, ItemTransform(&snap, it)))
		case scene.ItemCarrier:
			r.carrier(it, snap)
		}
	}
	if r.err != nil {
		dc.Close()
		return nil, fmt.Errorf("rasterize: %w", r.err)
	}
	return dc, nil
}

// rasterizer 记录第一个绘制错误，后续调用直接跳过
type rasterizer struct {
	dc  *gg.Context
	err error
}

func (r *rasterizer) check(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *rasterizer) circle(c *PlacedCircle) {
	r.dc.DrawCircle(c.Center.X, c.Center.Y, c.Radius)
	r.dc.SetColor(c.Fill)
	r.check(r.dc.Fill())
}

func (r *rasterizer) gear(pg PlacedGear) {
	if pg.Body != nil {
		r.circle(pg.Body)
	}

	for i, p := range pg.Outline {
		if i == 0 {
			r.dc.MoveTo(p.X, p.Y)
		} else {
			r.dc.LineTo(p.X, p.Y)
		}
	}
	r.dc.ClosePath()
	r.dc.SetColor(pg.OutlineFill)
	r.check(r.dc.FillPreserve())
	r.dc.SetColor(pg.Stroke)
	r.dc.SetLineWidth(pg.StrokeWidth)
	r.check(r.dc.Stroke())

	if pg.Axle != nil {
		r.circle(pg.Axle)
	}
	r.circle(&pg.Mark)
}

func (r *rasterizer) carrier(it *scene.Item, snap scene.Snapshot) {
	path := PlaceCarrier(it.Carrier, snap.Center)
	if path.Empty || len(path.Arcs) == 0 {
		return
	}

	r.dc.MoveTo(path.Start.X, path.Start.Y)
	for _, seg := range path.Segments() {
		center, radius, start, end := seg.Geometry()
		r.dc.DrawArc(center.X, center.Y, radius, start, end)
	}
	r.dc.ClosePath()
	r.dc.SetColor(it.Fill)
	r.check(r.dc.FillPreserve())
	r.dc.SetColor(it.Stroke)
	r.dc.SetLineWidth(it.StrokeWidth)
	r.check(r.dc.Stroke())
}
