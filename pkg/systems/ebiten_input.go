package systems

import (
	"github.com/decker502/lastfighter/pkg/platform"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// keyBindings 逻辑按键到键盘按键的映射，方向键和 WASD 都可用
var keyBindings = map[platform.Key][]ebiten.Key{
	platform.KeyLeft:       {ebiten.KeyArrowLeft, ebiten.KeyA},
	platform.KeyRight:      {ebiten.KeyArrowRight, ebiten.KeyD},
	platform.KeyUp:         {ebiten.KeyArrowUp, ebiten.KeyW},
	platform.KeyDown:       {ebiten.KeyArrowDown, ebiten.KeyS},
	platform.KeyFire:       {ebiten.KeySpace, ebiten.KeyX},
	platform.KeyPause:      {ebiten.KeyP},
	platform.KeyQuit:       {ebiten.KeyQ},
	platform.KeyMute:       {ebiten.KeyM},
	platform.KeyFullscreen: {ebiten.KeyF11},
}

// EbitenInput 读取 ebiten 键盘状态
type EbitenInput struct{}

// NewEbitenInput 创建输入适配器
func NewEbitenInput() *EbitenInput {
	return &EbitenInput{}
}

// IsPressed 任一绑定按键按下
func (in *EbitenInput) IsPressed(k platform.Key) bool {
	for _, key := range keyBindings[k] {
		if ebiten.IsKeyPressed(key) {
			return true
		}
	}
	return false
}

// WasPressed 任一绑定按键在本帧按下
func (in *EbitenInput) WasPressed(k platform.Key) bool {
	for _, key := range keyBindings[k] {
		if inpututil.IsKeyJustPressed(key) {
			return true
		}
	}
	return false
}
