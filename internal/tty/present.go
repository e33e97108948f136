package tty

import (
	"image"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/lastfighter/pkg/config"
	"github.com/decker502/lastfighter/pkg/game"
	"github.com/decker502/lastfighter/pkg/platform"
)

// upperHalf 前景色画上半格，背景色画下半格
const upperHalf = '▀'

// Scale 把逻辑屏幕装进 cols×rows 个字符格时每格边长（逻辑像素），至少为 1
//
// 一个字符格上下各显示一个方块，所以纵向每格覆盖 2*scale 个像素。
func Scale(cols, rows int) int {
	s := 1
	if cols > 0 {
		s = max(s, ceilDiv(config.ScreenWidth, cols))
	}
	if rows > 0 {
		s = max(s, ceilDiv(config.ScreenHeight, 2*rows))
	}
	return s
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

var tcellPalette = func() [len(platform.Palette)]tcell.Color {
	var p [len(platform.Palette)]tcell.Color
	for i, c := range platform.Palette {
		p[i] = tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	}
	return p
}()

func tcellColor(c platform.Color) tcell.Color {
	if c < 0 || int(c) >= len(tcellPalette) {
		return tcellPalette[platform.Black]
	}
	return tcellPalette[c]
}

// blockColor 方块内出现最多的颜色
func blockColor(img *image.Paletted, x, y, s int) platform.Color {
	c, _ := game.DominantColor(img, platform.ImageRegion{U: x, V: y, W: s, H: s})
	return c
}

// Present 把帧缓冲缩小后写到屏幕并刷新
func Present(screen tcell.Screen, fb *Framebuffer) {
	cols, rows := screen.Size()
	s := Scale(cols, rows)
	img := fb.Image()
	w, h := ceilDiv(config.ScreenWidth, s), ceilDiv(config.ScreenHeight, 2*s)

	screen.Clear()
	for row := 0; row < h && row < rows; row++ {
		for col := 0; col < w && col < cols; col++ {
			top := blockColor(img, col*s, row*2*s, s)
			bottom := blockColor(img, col*s, row*2*s+s, s)
			style := tcell.StyleDefault.Foreground(tcellColor(top)).Background(tcellColor(bottom))
			screen.SetContent(col, row, upperHalf, nil, style)
		}
	}

	step := max(1, config.CharWidth/s)
	for _, t := range fb.Texts() {
		col, row := t.X/s, t.Y/(2*s)
		if row < 0 || row >= rows || row >= h {
			continue
		}
		for i, r := range []rune(t.Text) {
			c := col + i*step
			if c < 0 || c >= cols || c >= w {
				continue
			}
			bg := blockColor(img, c*s, row*2*s+s, s)
			style := tcell.StyleDefault.Foreground(tcellColor(t.Color)).Background(tcellColor(bg)).Bold(true)
			screen.SetContent(c, row, r, nil, style)
		}
	}
	screen.Show()
}
