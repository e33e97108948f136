package components

import "github.com/decker502/lastfighter/pkg/platform"

// AnimationComponent 两帧（或多帧）循环的精灵动画
//
// Clock 非空时使用同种敌机共享的时钟，所有实例同步换帧；
// 否则使用自己的计时。
type AnimationComponent struct {
	Frames []platform.ImageRegion
	Freq   float64 // 每帧持续时间（秒）
	Colkey platform.Color
	Clock  *SpeciesClock

	frame int
	last  float64
}

// NewAnimation 创建从 t 开始计时的动画
func NewAnimation(frames []platform.ImageRegion, freq float64, colkey platform.Color, t float64) *AnimationComponent {
	return &AnimationComponent{Frames: frames, Freq: freq, Colkey: colkey, last: t}
}

// Tick 推进到时刻 t
func (a *AnimationComponent) Tick(t float64) {
	if a.Clock != nil {
		a.Clock.Tick(t)
		return
	}
	if t-a.last >= a.Freq {
		a.frame++
		a.last = t
	}
	if a.frame >= len(a.Frames) {
		a.frame = 0
	}
}

// Frame 当前帧序号
func (a *AnimationComponent) Frame() int {
	if a.Clock != nil {
		return a.Clock.Frame() % max(len(a.Frames), 1)
	}
	return a.frame
}

// Current 当前帧的图集区域
func (a *AnimationComponent) Current() platform.ImageRegion {
	if len(a.Frames) == 0 {
		return platform.ImageRegion{}
	}
	return a.Frames[a.Frame()]
}

// SetFrames 替换帧序列（大 Boss 睁眼闭眼），保留计时
func (a *AnimationComponent) SetFrames(frames []platform.ImageRegion) {
	a.Frames = frames
	if a.frame >= len(frames) {
		a.frame = 0
	}
}
