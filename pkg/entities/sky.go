package entities

import (
	"github.com/decker502/lastfighter/pkg/platform"
	"github.com/decker502/lastfighter/pkg/utils"
)

// Sky 背景和星空的当前颜色
//
// Background/Stars 是当前显示的颜色，FlashSky/FlashStars 是闪光结束后恢复到的颜色。
// Boss 出场时切换为紫色情绪，阵亡或游戏结束时复位。
type Sky struct {
	Background platform.Color
	Stars      platform.Color
	FlashSky   platform.Color
	FlashStars platform.Color
}

// NewSky 默认黑底蓝星
func NewSky() *Sky {
	s := &Sky{}
	s.Reset()
	return s
}

// Reset 恢复默认颜色
func (s *Sky) Reset() {
	s.Background = platform.Black
	s.Stars = platform.Blue
	s.FlashSky = platform.Black
	s.FlashStars = platform.Blue
}

// SetBossMood Boss 在场时的配色
func (s *Sky) SetBossMood() {
	s.FlashSky = platform.Purple
	s.FlashStars = platform.Flesh
	s.Background = platform.Purple
	s.Stars = platform.Flesh
}

// Camera 全局绘制偏移（屏幕震动、胜利画面滑入）
type Camera struct {
	Offset utils.Vector
}

// Reset 偏移归零
func (c *Camera) Reset() {
	c.Offset = utils.Vector{}
}

// Shaker 在一段时间内随机抖动镜头
type Shaker struct {
	world    *World
	amount   float64
	duration float64
	birth    float64
}

// NewShaker 创建并注册震动
func NewShaker(w *World, amount, duration, t float64) *Shaker {
	s := &Shaker{world: w, amount: amount, duration: duration, birth: t}
	w.Registry.RegisterForUpdate(s)
	return s
}

// Update 抖动期内每帧随机偏移，结束后归零并注销
func (s *Shaker) Update(dt, t float64) {
	if t-s.birth < s.duration {
		s.world.Camera.Offset = utils.Vec(
			s.world.randRange(-1, 1)*s.amount,
			s.world.randRange(-1, 1)*s.amount,
		)
		return
	}
	s.world.Camera.Reset()
	s.world.Registry.UnregisterForUpdate(s)
}
