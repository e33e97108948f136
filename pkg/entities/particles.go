package entities

import (
	"github.com/decker502/lastfighter/pkg/config"
	"github.com/decker502/lastfighter/pkg/ecs"
	"github.com/decker502/lastfighter/pkg/platform"
	"github.com/decker502/lastfighter/pkg/utils"
)

// particleSizes 粒子尺寸 1-3 对应的矩形大小
var particleSizes = map[int]utils.Vector{
	1: {X: 1, Y: 1},
	2: {X: 1, Y: 2},
	3: {X: 2, Y: 2},
}

// Particle 单个粒子，不单独注册，由所属效果推进和绘制
type Particle struct {
	Pos      utils.Vector
	Vel      utils.Vector
	Acc      utils.Vector
	Size     int
	Lifespan float64
	Color    platform.Color
}

// Update 按 dt 推进
func (p *Particle) Update(dt float64) {
	p.Lifespan -= dt
	p.Vel = p.Vel.Add(p.Acc)
	p.Pos = p.Pos.Add(p.Vel.Scale(dt))
}

// Dead 寿命是否耗尽
func (p *Particle) Dead() bool {
	return p.Lifespan <= 0
}

// Draw 绘制为小矩形
func (p *Particle) Draw(r platform.Renderer) {
	dim := particleSizes[p.Size]
	r.DrawRect(p.Pos.X, p.Pos.Y, dim.X, dim.Y, p.Color)
}

const starCount = 50

// StarField 向下滚动的星空
//
// 不断从顶部补充粒子；Stop 后星星加速上移直至消失，空了之后自己注销。
type StarField struct {
	world       *World
	particles   []*Particle
	neverEnding bool
}

// NewStarField 创建星空，Start 之前不注册
func NewStarField(w *World) *StarField {
	return &StarField{world: w}
}

// Start 重新铺满星星并注册到背景层
func (s *StarField) Start() {
	s.particles = s.particles[:0]
	s.neverEnding = true
	for i := 0; i < starCount; i++ {
		s.addParticle(utils.Vec(float64(s.world.randInt(0, config.ScreenWidth)), float64(s.world.randInt(0, config.ScreenHeight))))
	}
	s.world.Registry.RegisterForUpdate(s)
	s.world.Registry.AssignLayer(s, ecs.LayerBack)
}

// Stop 不再补充，所有星星向上加速离开
func (s *StarField) Stop() {
	acc := utils.Vec(0, -4)
	for _, p := range s.particles {
		p.Acc = acc
	}
	s.neverEnding = false
}

// Len 当前星星数量
func (s *StarField) Len() int {
	return len(s.particles)
}

func (s *StarField) addParticle(pos utils.Vector) {
	s.particles = append(s.particles, &Particle{
		Pos:      pos,
		Vel:      utils.Vec(0, float64(s.world.randInt(100, 200))),
		Size:     s.world.randInt(1, 3),
		Lifespan: 2,
		Color:    s.world.Sky.Stars,
	})
}

func (s *StarField) remove() {
	s.world.Registry.UnregisterForUpdate(s)
	s.world.Registry.RemoveFromLayer(s)
}

// Update 移动星星，出界的星星在顶部重生
func (s *StarField) Update(dt, t float64) {
	if len(s.particles) == 0 {
		s.remove()
		return
	}
	alive := s.particles[:0]
	respawn := 0
	for _, p := range s.particles {
		p.Update(dt)
		p.Color = s.world.Sky.Stars
		if p.Pos.Y > config.ScreenHeight+3 || p.Pos.Y < -3 {
			if s.neverEnding {
				respawn++
			}
			continue
		}
		alive = append(alive, p)
	}
	s.particles = alive
	for i := 0; i < respawn; i++ {
		s.addParticle(utils.Vec(float64(s.world.randInt(0, config.ScreenWidth)), -3))
	}
}

// Draw 绘制所有星星
func (s *StarField) Draw(r platform.Renderer) {
	for _, p := range s.particles {
		p.Draw(r)
	}
}

// ParticlesExplosion 40 个向外扩散的粒子
type ParticlesExplosion struct {
	world     *World
	particles []*Particle
}

// explosionOptions 爆炸参数
type explosionOptions struct {
	color    platform.Color
	duration float64
	accel    float64 // 沿速度方向的加速度，负值减速
}

var defaultExplosion = explosionOptions{color: platform.Green, duration: 0.5, accel: -0.5}

// newParticlesExplosion 创建爆炸但不注册
func newParticlesExplosion(w *World, pos utils.Vector, opt explosionOptions) *ParticlesExplosion {
	e := &ParticlesExplosion{world: w, particles: make([]*Particle, 0, 40)}
	for i := 0; i < 40; i++ {
		dist := float64(w.randInt(60, 80))
		vel := utils.Vec(dist, 0).Rotate(w.randRange(0, 360))
		e.particles = append(e.particles, &Particle{
			Pos:      pos,
			Vel:      vel,
			Acc:      vel.Normalize().Scale(opt.accel),
			Size:     w.randInt(1, 3),
			Lifespan: opt.duration,
			Color:    opt.color,
		})
	}
	return e
}

// NewParticlesExplosion 创建并注册到前景层
func NewParticlesExplosion(w *World, pos utils.Vector, color platform.Color) *ParticlesExplosion {
	opt := defaultExplosion
	opt.color = color
	e := newParticlesExplosion(w, pos, opt)
	e.start()
	return e
}

func (e *ParticlesExplosion) start() {
	e.world.Registry.RegisterForUpdate(e)
	e.world.Registry.AssignLayer(e, ecs.LayerFore)
}

// step 推进粒子，返回是否还有存活粒子
func (e *ParticlesExplosion) step(dt float64) bool {
	alive := e.particles[:0]
	for _, p := range e.particles {
		p.Update(dt)
		if !p.Dead() {
			alive = append(alive, p)
		}
	}
	e.particles = alive
	return len(alive) > 0
}

// Update 粒子全部消失后注销
func (e *ParticlesExplosion) Update(dt, t float64) {
	if !e.step(dt) {
		e.world.Registry.UnregisterForUpdate(e)
		e.world.Registry.RemoveFromLayer(e)
	}
}

// Draw 绘制所有粒子
func (e *ParticlesExplosion) Draw(r platform.Renderer) {
	for _, p := range e.particles {
		p.Draw(r)
	}
}

// BigExplosion 四层叠加的大爆炸（飞船和 Boss 阵亡）
type BigExplosion struct {
	world      *World
	explosions []*ParticlesExplosion
}

// NewBigExplosion 创建并注册到前景层
func NewBigExplosion(w *World, pos utils.Vector) *BigExplosion {
	b := &BigExplosion{world: w}
	for _, opt := range []explosionOptions{
		{color: platform.Purple, duration: 1, accel: 2},
		{color: platform.Blue, duration: 1, accel: 2},
		{color: platform.White, duration: 3, accel: -0.35},
		{color: platform.Cyan, duration: 3, accel: -0.35},
	} {
		b.explosions = append(b.explosions, newParticlesExplosion(w, pos, opt))
	}
	w.Registry.RegisterForUpdate(b)
	w.Registry.AssignLayer(b, ecs.LayerFore)
	return b
}

// Update 推进每层爆炸，全部结束后注销
func (b *BigExplosion) Update(dt, t float64) {
	alive := b.explosions[:0]
	for _, e := range b.explosions {
		if e.step(dt) {
			alive = append(alive, e)
		}
	}
	b.explosions = alive
	if len(alive) == 0 {
		b.world.Registry.UnregisterForUpdate(b)
		b.world.Registry.RemoveFromLayer(b)
	}
}

// Draw 绘制所有层
func (b *BigExplosion) Draw(r platform.Renderer) {
	for _, e := range b.explosions {
		e.Draw(r)
	}
}
