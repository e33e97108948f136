package platform

import "github.com/decker502/lastfighter/pkg/utils"

// offsetRenderer 在转发前给所有坐标加上偏移（屏幕震动、胜利画面滑入）
type offsetRenderer struct {
	Renderer
	off utils.Vector
}

// WithOffset 返回按 off 平移的 Renderer，off 为零时直接返回 r
func WithOffset(r Renderer, off utils.Vector) Renderer {
	if off.IsZero() {
		return r
	}
	return &offsetRenderer{Renderer: r, off: off}
}

func (o *offsetRenderer) DrawSprite(pos utils.Vector, region ImageRegion, colkey Color) {
	o.Renderer.DrawSprite(pos.Add(o.off), region, colkey)
}

func (o *offsetRenderer) DrawRect(x, y, w, h float64, c Color) {
	o.Renderer.DrawRect(x+o.off.X, y+o.off.Y, w, h, c)
}

func (o *offsetRenderer) DrawCircle(x, y, r float64, c Color) {
	o.Renderer.DrawCircle(x+o.off.X, y+o.off.Y, r, c)
}

func (o *offsetRenderer) DrawCircleOutline(x, y, r float64, c Color) {
	o.Renderer.DrawCircleOutline(x+o.off.X, y+o.off.Y, r, c)
}

func (o *offsetRenderer) DrawLine(x1, y1, x2, y2 float64, c Color) {
	o.Renderer.DrawLine(x1+o.off.X, y1+o.off.Y, x2+o.off.X, y2+o.off.Y, c)
}

func (o *offsetRenderer) DrawPixel(x, y float64, c Color) {
	o.Renderer.DrawPixel(x+o.off.X, y+o.off.Y, c)
}

func (o *offsetRenderer) DrawText(x, y float64, s string, c Color) {
	o.Renderer.DrawText(x+o.off.X, y+o.off.Y, s, c)
}
