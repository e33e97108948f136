package systems

import (
	"image"

	"github.com/decker502/lastfighter/pkg/config"
	"github.com/decker502/lastfighter/pkg/platform"
	"github.com/decker502/lastfighter/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// AtlasSource 提供精灵图集及其换色版本（game.ResourceManager 实现）
type AtlasSource interface {
	Atlas() *ebiten.Image
	RemappedAtlas(from, to platform.Color) *ebiten.Image
}

// basicfont 的字形尺寸
const (
	glyphWidth  = 7
	glyphHeight = 13
)

// EbitenRenderer 把逻辑像素绘制到放大 scale 倍的 ebiten 屏幕上
//
// 每帧用 Begin 绑定目标图像。文字使用 basicfont 缩放到逻辑字符尺寸。
type EbitenRenderer struct {
	dst   *ebiten.Image
	atlas AtlasSource
	sheet *ebiten.Image
	scale float64
	face  text.Face
}

// NewEbitenRenderer 创建渲染器
func NewEbitenRenderer(atlas AtlasSource, scale int) *EbitenRenderer {
	return &EbitenRenderer{
		atlas: atlas,
		sheet: atlas.Atlas(),
		scale: float64(scale),
		face:  text.NewGoXFace(basicfont.Face7x13),
	}
}

// Layout 屏幕的物理尺寸
func (r *EbitenRenderer) Layout() (int, int) {
	return int(config.ScreenWidth * r.scale), int(config.ScreenHeight * r.scale)
}

// Begin 绑定本帧的目标图像
func (r *EbitenRenderer) Begin(dst *ebiten.Image) {
	r.dst = dst
	r.sheet = r.atlas.Atlas()
}

func (r *EbitenRenderer) s(v float64) float32 {
	return float32(v * r.scale)
}

func (r *EbitenRenderer) Clear(c platform.Color) {
	r.dst.Fill(c.RGBA())
}

func (r *EbitenRenderer) DrawSprite(pos utils.Vector, region platform.ImageRegion, colkey platform.Color) {
	if region.W <= 0 || region.H <= 0 {
		return
	}
	sub := r.sheet.SubImage(image.Rect(region.U, region.V, region.U+region.W, region.V+region.H)).(*ebiten.Image)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(r.scale, r.scale)
	op.GeoM.Translate(float64(int(pos.X))*r.scale, float64(int(pos.Y))*r.scale)
	r.dst.DrawImage(sub, op)
}

func (r *EbitenRenderer) DrawRect(x, y, w, h float64, c platform.Color) {
	vector.DrawFilledRect(r.dst, r.s(x), r.s(y), r.s(w), r.s(h), c.RGBA(), false)
}

func (r *EbitenRenderer) DrawCircle(x, y, rad float64, c platform.Color) {
	vector.DrawFilledCircle(r.dst, r.s(x), r.s(y), r.s(rad), c.RGBA(), false)
}

func (r *EbitenRenderer) DrawCircleOutline(x, y, rad float64, c platform.Color) {
	vector.StrokeCircle(r.dst, r.s(x), r.s(y), r.s(rad), float32(r.scale), c.RGBA(), false)
}

func (r *EbitenRenderer) DrawLine(x1, y1, x2, y2 float64, c platform.Color) {
	vector.StrokeLine(r.dst, r.s(x1), r.s(y1), r.s(x2), r.s(y2), float32(r.scale), c.RGBA(), false)
}

func (r *EbitenRenderer) DrawPixel(x, y float64, c platform.Color) {
	vector.DrawFilledRect(r.dst, r.s(float64(int(x))), r.s(float64(int(y))), float32(r.scale), float32(r.scale), c.RGBA(), false)
}

func (r *EbitenRenderer) DrawText(x, y float64, s string, c platform.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(config.CharWidth*r.scale/glyphWidth, config.LineHeight*r.scale/glyphHeight)
	op.GeoM.Translate(x*r.scale, y*r.scale)
	op.ColorScale.ScaleWithColor(c.RGBA())
	text.Draw(r.dst, s, r.face, op)
}

// Remap 之后的精灵从换色图集取图
func (r *EbitenRenderer) Remap(from, to platform.Color) {
	r.sheet = r.atlas.RemappedAtlas(from, to)
}

func (r *EbitenRenderer) ResetRemap() {
	r.sheet = r.atlas.Atlas()
}
