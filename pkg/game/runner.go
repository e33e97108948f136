package game

import (
	"time"

	"github.com/decker502/lastfighter/pkg/config"
	"github.com/decker502/lastfighter/pkg/platform"
	"go.uber.org/zap"
)

// maxFrameStep 单帧 dt 上限（秒），窗口拖动等卡顿不会让时间跳太远
const maxFrameStep = 0.25

// FrameClock 帧时钟
//
// t 是累计的 dt，暂停期间不增长；Reset 之后的第一帧 dt 从 Reset 时刻算起。
type FrameClock struct {
	prev    time.Time
	started bool
	t       float64
}

// Tick 推进一帧，返回 dt 和当前时间 t
func (c *FrameClock) Tick(now time.Time) (dt, t float64) {
	if c.started {
		dt = now.Sub(c.prev).Seconds()
		if dt < 0 {
			dt = 0
		} else if dt > maxFrameStep {
			dt = maxFrameStep
		}
	}
	c.prev, c.started = now, true
	c.t += dt
	return dt, c.t
}

// Reset 从 now 重新计时
func (c *FrameClock) Reset(now time.Time) {
	c.prev, c.started = now, true
}

// Now 当前时间（秒）
func (c *FrameClock) Now() float64 {
	return c.t
}

// Runner 两个前端共用的帧驱动：处理退出、暂停、静音按键，推进时钟和场景
type Runner struct {
	scenes *SceneManager
	clock  FrameClock
	input  platform.Input
	audio  platform.Audio
	onMute func()
	paused bool
	log    *zap.Logger
}

// NewRunner 创建帧驱动，scenes 须已 Start
func NewRunner(scenes *SceneManager, input platform.Input, audio platform.Audio, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{
		scenes: scenes,
		input:  input,
		audio:  audio,
		log:    log.Named("runner"),
	}
}

// OnMute 设置静音键的处理函数
func (r *Runner) OnMute(fn func()) {
	r.onMute = fn
}

// Paused 是否暂停
func (r *Runner) Paused() bool {
	return r.paused
}

// Clock 帧时钟
func (r *Runner) Clock() *FrameClock {
	return &r.clock
}

// Step 处理一帧，返回 true 表示退出
func (r *Runner) Step(now time.Time) bool {
	if r.input.WasPressed(platform.KeyQuit) {
		r.log.Info("quit requested")
		return true
	}
	if r.input.WasPressed(platform.KeyMute) && r.onMute != nil {
		r.onMute()
	}
	if r.input.WasPressed(platform.KeyPause) {
		r.togglePause(now)
	}
	if r.paused {
		return false
	}
	dt, t := r.clock.Tick(now)
	r.scenes.Update(dt, t)
	return false
}

func (r *Runner) togglePause(now time.Time) {
	r.paused = !r.paused
	if r.paused {
		r.audio.Stop()
	} else {
		r.clock.Reset(now)
		r.audio.PlayMusic(config.MusicCombat, true)
	}
	r.log.Debug("pause toggled", zap.Bool("paused", r.paused), zap.Float64("t", r.clock.Now()))
}

// Draw 绘制当前场景，暂停时叠加提示
func (r *Runner) Draw(rd platform.Renderer) {
	r.scenes.Draw(rd)
	if r.paused {
		const msg = "PAUSED"
		x := float64(config.ScreenWidth-len(msg)*config.CharWidth) / 2
		rd.DrawText(x, config.ScreenHeight/2, msg, platform.White)
	}
}
