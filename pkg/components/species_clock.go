package components

// SpeciesClock 同种敌机共享的动画时钟
//
// 由兵工厂按种类持有，所有实例引用同一个时钟。
// 同一帧里多个实例调用 Tick 只会推进一次。
type SpeciesClock struct {
	Freq   float64
	Frames int

	frame int
	prev  float64
}

// NewSpeciesClock 创建 frames 帧、每帧 freq 秒的时钟
func NewSpeciesClock(freq float64, frames int) *SpeciesClock {
	return &SpeciesClock{Freq: freq, Frames: frames}
}

// Tick 推进到时刻 t
func (c *SpeciesClock) Tick(t float64) {
	if t-c.prev >= c.Freq {
		c.frame++
		c.prev = t
		if c.frame >= c.Frames {
			c.frame = 0
		}
	}
}

// Frame 当前帧序号
func (c *SpeciesClock) Frame() int {
	return c.frame
}

// Reset 回到第一帧
func (c *SpeciesClock) Reset() {
	c.frame = 0
	c.prev = 0
}
