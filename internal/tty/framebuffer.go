// Package tty 终端前端：在调色板帧缓冲上绘制，再用半块字符输出到 tcell 屏幕
package tty

import (
	"image"
	"math"

	"github.com/decker502/lastfighter/pkg/config"
	"github.com/decker502/lastfighter/pkg/game"
	"github.com/decker502/lastfighter/pkg/platform"
	"github.com/decker502/lastfighter/pkg/utils"
)

// TextItem 一段叠加文字，坐标为逻辑像素
type TextItem struct {
	X, Y  int
	Text  string
	Color platform.Color
}

// Framebuffer 逻辑分辨率的调色板帧缓冲，实现 platform.Renderer
//
// 精灵从程序化绘制的图集复制，图集中的透明像素跳过。
// 文字不进帧缓冲，而是记下来由 Present 直接写成终端字符。
type Framebuffer struct {
	img   *image.Paletted
	atlas *image.Paletted
	texts []TextItem

	remapping bool
	from, to  uint8
}

// NewFramebuffer 以 atlas 为精灵来源创建帧缓冲
func NewFramebuffer(atlas *image.Paletted) *Framebuffer {
	return &Framebuffer{
		img:   image.NewPaletted(image.Rect(0, 0, config.ScreenWidth, config.ScreenHeight), atlas.Palette),
		atlas: atlas,
	}
}

// Image 帧缓冲图像
func (f *Framebuffer) Image() *image.Paletted { return f.img }

// Texts 本帧的叠加文字
func (f *Framebuffer) Texts() []TextItem { return f.texts }

// At 像素颜色，越界时为 Black
func (f *Framebuffer) At(x, y int) platform.Color {
	if !(image.Point{x, y}.In(f.img.Rect)) {
		return platform.Black
	}
	return platform.Color(f.img.ColorIndexAt(x, y))
}

func (f *Framebuffer) set(x, y int, c platform.Color) {
	if x < 0 || y < 0 || x >= f.img.Rect.Dx() || y >= f.img.Rect.Dy() {
		return
	}
	f.img.Pix[y*f.img.Stride+x] = uint8(c)
}

func (f *Framebuffer) Clear(c platform.Color) {
	for i := range f.img.Pix {
		f.img.Pix[i] = uint8(c)
	}
	f.texts = f.texts[:0]
}

func (f *Framebuffer) DrawSprite(pos utils.Vector, region platform.ImageRegion, _ platform.Color) {
	ox, oy := int(math.Floor(pos.X)), int(math.Floor(pos.Y))
	for y := 0; y < region.H; y++ {
		for x := 0; x < region.W; x++ {
			u, v := region.U+x, region.V+y
			if !(image.Point{u, v}.In(f.atlas.Rect)) {
				continue
			}
			idx := f.atlas.ColorIndexAt(u, v)
			if idx >= game.Transparent {
				continue
			}
			if f.remapping && idx == f.from {
				idx = f.to
			}
			f.set(ox+x, oy+y, platform.Color(idx))
		}
	}
}

func (f *Framebuffer) DrawRect(x, y, w, h float64, c platform.Color) {
	x0, y0 := int(math.Floor(x)), int(math.Floor(y))
	x1, y1 := int(math.Floor(x+w)), int(math.Floor(y+h))
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			f.set(px, py, c)
		}
	}
}

func (f *Framebuffer) DrawCircle(x, y, r float64, c platform.Color) {
	cx, cy, ir := int(math.Floor(x)), int(math.Floor(y)), int(math.Ceil(r))
	for dy := -ir; dy <= ir; dy++ {
		for dx := -ir; dx <= ir; dx++ {
			if float64(dx*dx+dy*dy) <= r*r {
				f.set(cx+dx, cy+dy, c)
			}
		}
	}
}

// DrawCircleOutline 中点圆算法
func (f *Framebuffer) DrawCircleOutline(x, y, r float64, c platform.Color) {
	cx, cy, ir := int(math.Floor(x)), int(math.Floor(y)), int(math.Round(r))
	px, py, d := ir, 0, 1-ir
	for px >= py {
		for _, p := range [8][2]int{
			{px, py}, {py, px}, {-py, px}, {-px, py},
			{-px, -py}, {-py, -px}, {py, -px}, {px, -py},
		} {
			f.set(cx+p[0], cy+p[1], c)
		}
		py++
		if d < 0 {
			d += 2*py + 1
		} else {
			px--
			d += 2*(py-px) + 1
		}
	}
}

// DrawLine Bresenham 直线
func (f *Framebuffer) DrawLine(x1, y1, x2, y2 float64, c platform.Color) {
	x0, y0 := int(math.Floor(x1)), int(math.Floor(y1))
	xe, ye := int(math.Floor(x2)), int(math.Floor(y2))
	dx, dy := abs(xe-x0), -abs(ye-y0)
	sx, sy := sign(xe-x0), sign(ye-y0)
	e := dx + dy
	for {
		f.set(x0, y0, c)
		if x0 == xe && y0 == ye {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func (f *Framebuffer) DrawPixel(x, y float64, c platform.Color) {
	f.set(int(math.Floor(x)), int(math.Floor(y)), c)
}

func (f *Framebuffer) DrawText(x, y float64, s string, c platform.Color) {
	f.texts = append(f.texts, TextItem{X: int(math.Floor(x)), Y: int(math.Floor(y)), Text: s, Color: c})
}

func (f *Framebuffer) Remap(from, to platform.Color) {
	f.remapping, f.from, f.to = true, uint8(from), uint8(to)
}

func (f *Framebuffer) ResetRemap() {
	f.remapping = false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
