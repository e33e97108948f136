// Package platform 定义游戏核心与外部协作者之间的窄接口
//
// 核心只通过这些接口绘制、发声、读取输入和持久化最高分，
// 桌面端（ebiten）和终端（tcell）各自提供实现。
package platform

import (
	"image/color"

	"github.com/decker502/lastfighter/pkg/utils"
)

// Color 调色板索引（0-15）
type Color int

// 16 色调色板
const (
	Black Color = iota
	Navy
	Purple
	DarkGreen
	Brown
	DarkBlue
	LightBlue
	White
	Red
	Orange
	Yellow
	Green
	Cyan
	Grey
	Pink
	Flesh
)

// 别名，与配色语义对应
const (
	Blue      = Navy
	LightGrey = LightBlue
)

// Palette 调色板的 RGB 值
var Palette = [16]color.RGBA{
	{0x00, 0x00, 0x00, 0xff},
	{0x2b, 0x33, 0x5f, 0xff},
	{0x7e, 0x20, 0x72, 0xff},
	{0x19, 0x95, 0x9c, 0xff},
	{0x8b, 0x48, 0x52, 0xff},
	{0x39, 0x5c, 0x98, 0xff},
	{0xa9, 0xc1, 0xff, 0xff},
	{0xee, 0xee, 0xee, 0xff},
	{0xd4, 0x18, 0x6c, 0xff},
	{0xd3, 0x84, 0x41, 0xff},
	{0xe9, 0xc3, 0x5b, 0xff},
	{0x70, 0xc6, 0xa9, 0xff},
	{0x76, 0x96, 0xde, 0xff},
	{0xa3, 0xa3, 0xa3, 0xff},
	{0xff, 0x97, 0x98, 0xff},
	{0xed, 0xc7, 0xb0, 0xff},
}

// RGBA 返回颜色的 RGB 值，越界时返回黑色
func (c Color) RGBA() color.RGBA {
	if c < 0 || int(c) >= len(Palette) {
		return Palette[Black]
	}
	return Palette[c]
}

// ImageRegion 精灵图集中的一个矩形区域
type ImageRegion struct {
	Name string
	U, V int
	W, H int
}

// Renderer 绘制接口
//
// 坐标为逻辑像素，颜色为调色板索引。
type Renderer interface {
	Clear(c Color)
	// DrawSprite 以 pos 为左上角绘制图集区域，colkey 为透明色
	DrawSprite(pos utils.Vector, region ImageRegion, colkey Color)
	DrawRect(x, y, w, h float64, c Color)
	DrawCircle(x, y, r float64, c Color)
	DrawCircleOutline(x, y, r float64, c Color)
	DrawLine(x1, y1, x2, y2 float64, c Color)
	DrawPixel(x, y float64, c Color)
	DrawText(x, y float64, s string, c Color)
	// Remap 之后绘制的精灵中 from 色替换为 to 色，直到 ResetRemap
	Remap(from, to Color)
	ResetRemap()
}

// Audio 声音接口，全部为即发即忘
type Audio interface {
	Play(channel, sound int)
	PlayMusic(track int, loop bool)
	Stop()
}

// Key 逻辑按键
type Key int

const (
	KeyLeft Key = iota
	KeyRight
	KeyUp
	KeyDown
	KeyFire
	KeyPause
	KeyQuit
	KeyMute
	KeyFullscreen
)

// Input 输入接口，每帧轮询一次
type Input interface {
	// IsPressed 按键当前是否按下
	IsPressed(k Key) bool
	// WasPressed 按键是否在本帧按下（边沿）
	WasPressed(k Key) bool
}

// HighScoreStore 最高分持久化接口
type HighScoreStore interface {
	LoadHighScores() ([]int, error)
	SaveHighScores(scores []int) error
}
