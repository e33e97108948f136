package entities

import (
	"github.com/decker502/lastfighter/pkg/ecs"
	"github.com/decker502/lastfighter/pkg/platform"
	"github.com/decker502/lastfighter/pkg/utils"
)

const (
	hitFlashRadius   = 12
	hitFlashDuration = 0.1
	shakeAmount      = 2
	shakeDuration    = 0.15
)

// HitFlash 命中闪光：白色圆环加一条随机射线，并让背景闪一下
type HitFlash struct {
	world   *World
	pos     utils.Vector
	color   platform.Color
	birth   float64
	started bool
}

// NewHitFlash 创建闪光并注册到背景层，同时启动镜头震动
func NewHitFlash(w *World, pos utils.Vector, color platform.Color, t float64) *HitFlash {
	f := &HitFlash{world: w, pos: pos, color: color, birth: t}
	NewShaker(w, shakeAmount, shakeDuration, t)
	w.Sky.Background = color
	w.Sky.Stars = platform.White
	w.Registry.RegisterForUpdate(f)
	w.Registry.AssignLayer(f, ecs.LayerBack)
	return f
}

// Update 第一帧恢复天空颜色，持续 0.1 秒后注销
func (f *HitFlash) Update(dt, t float64) {
	if !f.started {
		f.world.Sky.Background = f.world.Sky.FlashSky
		f.world.Sky.Stars = f.world.Sky.FlashStars
		f.color = f.world.Sky.FlashSky
		f.started = true
	}
	if t > f.birth+hitFlashDuration {
		f.world.Registry.UnregisterForUpdate(f)
		f.world.Registry.RemoveFromLayer(f)
	}
}

// Draw 绘制
func (f *HitFlash) Draw(r platform.Renderer) {
	offx := f.world.randRange(-1, 1) * 3
	offy := f.world.randRange(-1, 1) * 3
	p1 := f.pos.Sub(utils.Vec(hitFlashRadius*offx/2, hitFlashRadius*offy/2))
	p2 := f.pos.Add(utils.Vec(offx, offy))
	r.DrawCircle(f.pos.X, f.pos.Y, hitFlashRadius, platform.White)
	r.DrawCircle(p2.X, p2.Y, hitFlashRadius-2, f.world.Sky.Background)
	r.DrawLine(f.pos.X, f.pos.Y, p1.X, p1.Y, platform.White)
}

// HitEffect 合并同一帧内的命中爆炸
//
// 每次请求立即产生闪光；爆炸粒子先挂起，下一帧只启动最后一个。
type HitEffect struct {
	world   *World
	pending []*ParticlesExplosion
}

// Request 请求一次命中效果
func (h *HitEffect) Request(pos utils.Vector, color platform.Color, t float64) {
	opt := defaultExplosion
	opt.color = color
	h.pending = append(h.pending, newParticlesExplosion(h.world, pos, opt))
	NewHitFlash(h.world, pos, color, t)
	h.world.Registry.RegisterForUpdate(h)
}

// Pending 挂起的爆炸数量
func (h *HitEffect) Pending() int {
	return len(h.pending)
}

// Update 启动最后一个挂起的爆炸并注销自己
func (h *HitEffect) Update(dt, t float64) {
	if n := len(h.pending); n > 0 {
		h.pending[n-1].start()
		h.pending = h.pending[:0]
	}
	h.world.Registry.UnregisterForUpdate(h)
}
