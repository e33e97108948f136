package game

import (
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/decker502/lastfighter/pkg/config"
	"github.com/decker502/lastfighter/pkg/platform"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Transparent 图集调色板中的透明色下标，紧跟 16 色调色板
const Transparent = uint8(len(platform.Palette))

// atlasPalette 16 色调色板加一个透明色
func atlasPalette() color.Palette {
	p := make(color.Palette, 0, len(platform.Palette)+1)
	for _, c := range platform.Palette {
		p = append(p, c)
	}
	return append(p, color.RGBA{})
}

// canvas 在图集中的一个区域上按调色板下标作画
type canvas struct {
	img  *image.Paletted
	x, y int
	w, h int
}

func (c canvas) set(x, y int, col platform.Color) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.img.SetColorIndex(c.x+x, c.y+y, uint8(col))
}

// center 区域中心（像素中心坐标）
func (c canvas) center() (float64, float64) {
	return float64(c.w-1) / 2, float64(c.h-1) / 2
}

func (c canvas) each(fn func(x, y int, dx, dy float64)) {
	cx, cy := c.center()
	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			fn(x, y, float64(x)-cx, float64(y)-cy)
		}
	}
}

// PaintAtlas 按图集配置程序化绘制全部精灵，未绘制的像素透明
func PaintAtlas(cfg *config.SpriteAtlasConfig) *image.Paletted {
	w, h := cfg.Size()
	img := image.NewPaletted(image.Rect(0, 0, w, h), atlasPalette())
	for i := range img.Pix {
		img.Pix[i] = Transparent
	}
	for i := range cfg.Sprites {
		def := &cfg.Sprites[i]
		r := cfg.MustRegion(def.Name)
		paintSprite(canvas{img: img, x: r.U, y: r.V, w: r.W, h: r.H}, def)
	}
	return img
}

func paintSprite(c canvas, d *config.SpriteDef) {
	main, accent := d.Color, d.Accent
	rx, ry := float64(c.w)/2, float64(c.h)/2

	switch d.Shape {
	case config.ShapeShip:
		cx, _ := c.center()
		c.each(func(x, y int, dx, _ float64) {
			half := (float64(y) + 1) * rx / float64(c.h)
			if math.Abs(dx) <= half {
				c.set(x, y, main)
			}
		})
		for y := c.h / 3; y < c.h-1; y++ {
			c.set(int(cx), y, accent)
		}
		c.set(0, c.h-1, accent)
		c.set(c.w-1, c.h-1, accent)

	case config.ShapeBolt:
		for y := 0; y < c.h; y++ {
			col := main
			if y < 2 {
				col = accent
			}
			c.set(1, y, col)
			c.set(c.w-2, y, col)
		}

	case config.ShapeOrb:
		inner := 0.45
		if d.Phase == 1 {
			inner = 0.25
		}
		c.each(func(x, y int, dx, dy float64) {
			n := (dx*dx)/(rx*rx) + (dy*dy)/(ry*ry)
			switch {
			case n <= inner*inner:
				c.set(x, y, accent)
			case n <= 1:
				c.set(x, y, main)
			}
		})

	case config.ShapeDiamond:
		c.each(func(x, y int, dx, dy float64) {
			n := math.Abs(dx)/rx + math.Abs(dy)/ry
			switch {
			case n <= 0.4:
				c.set(x, y, pick(d.Phase == 1, main, accent))
			case n <= 1:
				c.set(x, y, pick(d.Phase == 1, accent, main))
			}
		})

	case config.ShapeCross:
		arm := float64(c.w) / 6
		c.each(func(x, y int, dx, dy float64) {
			if math.Abs(dx) <= arm || math.Abs(dy) <= arm {
				col := main
				if math.Abs(dx) <= arm && math.Abs(dy) <= arm {
					col = accent
				} else if d.Phase == 1 && (math.Abs(dx) > rx-2 || math.Abs(dy) > ry-2) {
					col = accent
				}
				c.set(x, y, col)
			}
		})

	case config.ShapeX:
		c.each(func(x, y int, dx, dy float64) {
			if math.Abs(math.Abs(dx)-math.Abs(dy)) <= 1 {
				col := main
				if (d.Phase == 1) == (math.Abs(dx) < rx/2) {
					col = accent
				}
				c.set(x, y, col)
			}
		})

	case config.ShapeRing:
		c.each(func(x, y int, dx, dy float64) {
			dist := math.Hypot(dx/rx, dy/ry)
			if dist <= 1 && dist >= 0.6 {
				c.set(x, y, main)
			}
			if d.Phase == 1 && dist < 0.3 {
				c.set(x, y, accent)
			}
		})

	case config.ShapeCraft:
		c.each(func(x, y int, dx, dy float64) {
			hull := (dx*dx)/(rx*rx*0.36) + (dy*dy)/(ry*ry) <= 1
			wing := math.Abs(dy) < ry/4 && math.Abs(dx) <= rx-float64(int(math.Abs(dy)))
			switch {
			case hull && math.Hypot(dx, dy+ry/4) < rx/6:
				c.set(x, y, accent)
			case hull || wing:
				c.set(x, y, main)
			}
			if d.Phase == 1 && wing && math.Abs(dx) > rx-3 {
				c.set(x, y, accent)
			}
		})

	case config.ShapeEye:
		pupil := 0.2
		if d.Phase == 1 {
			pupil = 0.45
		}
		c.each(func(x, y int, dx, dy float64) {
			n := math.Hypot(dx/rx, dy/ry)
			switch {
			case n <= pupil:
				c.set(x, y, accent)
			case n <= 1:
				c.set(x, y, main)
			}
		})

	case config.ShapePlanet:
		c.each(func(x, y int, dx, dy float64) {
			if math.Hypot(dx/rx, dy/ry) > 1 {
				return
			}
			// 左上受光
			if math.Hypot(dx/rx+0.35, dy/ry+0.35) < 0.6 {
				c.set(x, y, accent)
			} else {
				c.set(x, y, main)
			}
		})

	case config.ShapeStar:
		cx, cy := c.center()
		for x := 0; x < c.w; x++ {
			c.set(x, int(cy), main)
		}
		for y := 0; y < c.h; y++ {
			c.set(int(cx), y, main)
		}
		c.set(int(cx), int(cy), accent)

	case config.ShapeDot:
		cx, cy := c.center()
		c.set(int(cx), int(cy), main)
		c.set(int(cx)-1, int(cy), accent)
		c.set(int(cx)+1, int(cy), accent)
		c.set(int(cx), int(cy)-1, accent)
		c.set(int(cx), int(cy)+1, accent)

	case config.ShapeTitle:
		paintTitle(c, d.Text, main, accent)
	}
}

// paintTitle 用 basicfont 居中写出多行标题（"|" 分行），带 1 像素辅色阴影
func paintTitle(c canvas, text string, main, accent platform.Color) {
	face := basicfont.Face7x13
	lines := strings.Split(text, "|")
	lineH := face.Metrics().Height.Ceil()
	top := (c.h - lineH*len(lines)) / 2
	clip := c.img.SubImage(image.Rect(c.x, c.y, c.x+c.w, c.y+c.h)).(*image.Paletted)

	for i, line := range lines {
		width := font.MeasureString(face, line).Ceil()
		x := c.x + (c.w-width)/2
		baseline := c.y + top + i*lineH + face.Metrics().Ascent.Ceil()
		for _, pass := range []struct {
			off int
			col platform.Color
		}{{1, accent}, {0, main}} {
			dr := &font.Drawer{
				Dst:  clip,
				Src:  image.NewUniform(platform.Palette[pass.col]),
				Face: face,
				Dot:  fixed.P(x+pass.off, baseline+pass.off),
			}
			dr.DrawString(line)
		}
	}
}

func pick(cond bool, a, b platform.Color) platform.Color {
	if cond {
		return a
	}
	return b
}

// RemapPaletted 复制图集，把 from 色的像素换成 to 色
func RemapPaletted(src *image.Paletted, from, to platform.Color) *image.Paletted {
	dst := &image.Paletted{
		Pix:     append([]uint8(nil), src.Pix...),
		Stride:  src.Stride,
		Rect:    src.Rect,
		Palette: src.Palette,
	}
	for i, p := range dst.Pix {
		if p == uint8(from) {
			dst.Pix[i] = uint8(to)
		}
	}
	return dst
}

// DominantColor 区域内出现最多的不透明颜色，全透明时返回 Black 和 false
func DominantColor(img *image.Paletted, r platform.ImageRegion) (platform.Color, bool) {
	var counts [len(platform.Palette)]int
	for y := r.V; y < r.V+r.H; y++ {
		for x := r.U; x < r.U+r.W; x++ {
			if !(image.Point{x, y}.In(img.Rect)) {
				continue
			}
			if idx := img.ColorIndexAt(x, y); idx < Transparent {
				counts[idx]++
			}
		}
	}
	best, bestN := platform.Black, 0
	for i, n := range counts {
		if n > bestN {
			best, bestN = platform.Color(i), n
		}
	}
	return best, bestN > 0
}
