// Package screen 在 ebiten 图像上绘制舞台快照
package screen

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/planetary/pkg/geometry"
	"github.com/decker502/planetary/pkg/render"
	"github.com/decker502/planetary/pkg/scene"
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// Renderer 复用顶点缓冲的快照绘制器
type Renderer struct {
	vertices []ebiten.Vertex
	indices  []uint16
}

// NewRenderer 创建绘制器
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Draw 将快照绘制到 dst，origin 为画布左上角在 dst 上的位置
func (r *Renderer) Draw(dst *ebiten.Image, snap scene.Snapshot, origin geometry.Point) {
	base := geometry.Identity().Translate(origin.X, origin.Y)

	vector.DrawFilledRect(dst, float32(origin.X), float32(origin.Y), float32(snap.Size), float32(snap.Size), snap.Background, false)

	for i := range snap.Items {
		it := &snap.Items[i]
		switch it.Kind {
		case scene.ItemGear:
			m := base.Multiply(render.ItemTransform(&snap, it))
			r.drawGear(dst, render.PlaceGear(it.Shape, m))
		case scene.ItemCarrier:
			r.drawCarrier(dst, it, snap.Center.Add(origin))
		}
	}
}

func (r *Renderer) drawGear(dst *ebiten.Image, pg render.PlacedGear) {
	if pg.Body != nil {
		drawCircle(dst, pg.Body)
	}

	var path vector.Path
	for i, p := range pg.Outline {
		if i == 0 {
			path.MoveTo(float32(p.X), float32(p.Y))
		} else {
			path.LineTo(float32(p.X), float32(p.Y))
		}
	}
	path.Close()
	r.fill(dst, &path, pg.OutlineFill)
	r.stroke(dst, &path, pg.Stroke, pg.StrokeWidth)

	if pg.Axle != nil {
		drawCircle(dst, pg.Axle)
	}
	drawCircle(dst, &pg.Mark)
}

func (r *Renderer) drawCarrier(dst *ebiten.Image, it *scene.Item, center geometry.Point) {
	cp := render.PlaceCarrier(it.Carrier, center)
	if cp.Empty || len(cp.Arcs) == 0 {
		return
	}

	var path vector.Path
	path.MoveTo(float32(cp.Start.X), float32(cp.Start.Y))
	for _, seg := range cp.Segments() {
		c, radius, start, end := seg.Geometry()
		// 角度递增方向在 Y 轴向下的屏幕上即为顺时针
		path.Arc(float32(c.X), float32(c.Y), float32(radius), float32(start), float32(end), vector.Clockwise)
	}
	path.Close()
	r.fill(dst, &path, it.Fill)
	r.stroke(dst, &path, it.Stroke, it.StrokeWidth)
}

func (r *Renderer) fill(dst *ebiten.Image, path *vector.Path, clr color.Color) {
	if clr == nil {
		return
	}
	r.vertices, r.indices = path.AppendVerticesAndIndicesForFilling(r.vertices[:0], r.indices[:0])
	r.draw(dst, clr, ebiten.FillRuleNonZero)
}

func (r *Renderer) stroke(dst *ebiten.Image, path *vector.Path, clr color.Color, width float64) {
	if clr == nil || width <= 0 {
		return
	}
	r.vertices, r.indices = path.AppendVerticesAndIndicesForStroke(r.vertices[:0], r.indices[:0], &vector.StrokeOptions{
		Width:    float32(width),
		LineJoin: vector.LineJoinRound,
	})
	r.draw(dst, clr, ebiten.FillRuleFillAll)
}

func (r *Renderer) draw(dst *ebiten.Image, clr color.Color, rule ebiten.FillRule) {
	cr, cg, cb, ca := clr.RGBA()
	for i := range r.vertices {
		r.vertices[i].SrcX = 1
		r.vertices[i].SrcY = 1
		r.vertices[i].ColorR = float32(cr) / 0xffff
		r.vertices[i].ColorG = float32(cg) / 0xffff
		r.vertices[i].ColorB = float32(cb) / 0xffff
		r.vertices[i].ColorA = float32(ca) / 0xffff
	}

	op := &ebiten.DrawTrianglesOptions{}
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	op.FillRule = rule
	op.AntiAlias = true
	dst.DrawTriangles(r.vertices, r.indices, whiteSubImage, op)
}

func drawCircle(dst *ebiten.Image, c *render.PlacedCircle) {
	if c.Fill == nil || c.Radius <= 0 {
		return
	}
	vector.DrawFilledCircle(dst, float32(c.Center.X), float32(c.Center.Y), float32(c.Radius), c.Fill, true)
}
