package entities

import (
	"math"

	"github.com/decker502/lastfighter/pkg/components"
	"github.com/decker502/lastfighter/pkg/config"
	"github.com/decker502/lastfighter/pkg/platform"
	"github.com/decker502/lastfighter/pkg/types"
	"github.com/decker502/lastfighter/pkg/utils"
)

// XRotator 在起点和目的地之间往返，每秒向四个斜方向射击
type XRotator struct {
	opponentBase
	start       utils.Vector
	destination utils.Vector
	speed       float64
	fire        components.TimerComponent
}

func newXRotator(w *World, pos, destination utils.Vector, t float64) *XRotator {
	x := &XRotator{opponentBase: newOpponentBase(w, types.OpponentXRotator, pos, []string{"xrotator.0", "xrotator.1"}, platform.Black, t)}
	x.self = x
	x.points = 500
	x.health = components.NewHealth(3)
	x.color, x.colorBack = platform.Yellow, platform.Orange
	x.start = x.body.Pos
	x.destination = destination
	x.speed = 40
	x.fire = components.NewTimer(1, t)
	w.PlaySound(config.ChannelSpawn, config.SoundSpawnGreen)
	return x
}

// Update 推进
func (x *XRotator) Update(dt, t float64) {
	x.anim.Tick(t)

	toDest := x.destination.Sub(x.body.Pos)
	if toDest.Length() < 1 {
		x.destination, x.start = x.start, x.destination
	} else {
		x.body.Pos = x.body.Pos.Add(toDest.Normalize().Scale(x.speed * dt))
	}

	if x.fire.Ready(t) {
		x.world.FireBurst(x.body.Pos, 4, 45, 40, BulletRed)
		x.fire.Reset(t)
	}
}

// sider 网格参数
const (
	siderSpeed     = 64
	siderGridUnit  = config.ScreenWidth / 16.0
	siderBulletsPS = 16 // 每秒子弹数
)

// Sider 沿网格折线移动，螺旋弹幕，同种共享动画时钟
type Sider struct {
	opponentBase
	dir  float64
	tc   float64 // 走一个网格单位的次数/秒
	fire components.TimerComponent
}

func newSider(w *World, dir int, clock *components.SpeciesClock, t float64) *Sider {
	pos := utils.Vec(config.MidWidth+siderGridUnit*7*float64(-dir), -10)
	s := &Sider{opponentBase: newOpponentBase(w, types.OpponentSider, pos, []string{"sider.0", "sider.1"}, platform.Black, t)}
	s.self = s
	s.anim.Clock = clock
	s.points = 800
	s.health = components.NewHealth(4)
	s.color, s.colorBack = platform.Pink, platform.Purple
	s.destroySound = config.SoundExplosionHigh
	s.dir = float64(dir)
	s.tc = siderSpeed / siderGridUnit
	s.fire = components.NewTimer(1.0/siderBulletsPS, t)
	w.PlaySound(config.ChannelSpawn, config.SoundSpawnWorm)
	return s
}

// siderDirection 网格路径在某一时刻的方向
func siderDirection(c, dir float64) utils.Vector {
	switch {
	case c < 2 || (c >= 16 && c < 18):
		return utils.Vec(0, 1)
	case c < 16:
		return utils.Vec(dir, 0)
	}
	return utils.Vec(-dir, 0)
}

// Update 推进
func (s *Sider) Update(dt, t float64) {
	s.anim.Tick(t)

	c := math.Mod((t-s.birth)*s.tc, 32)
	s.body.Pos = s.body.Pos.Add(siderDirection(c, s.dir).Scale(siderSpeed * dt))

	if s.fire.Ready(t) {
		change := math.Mod((t-s.birth)*siderBulletsPS, 16)
		vel := utils.Vec(0, 1).Rotate(22.5 * change).Scale(45)
		s.world.FireEnemyBullet(s.body.Pos, vel, BulletRed)
		s.fire.Reset(t)
	}

	if s.body.Pos.Y > config.ScreenHeight+float64(s.anim.Current().H) {
		s.remove()
	}
}

// Pendulum 钟摆：左右摆动缓慢下降，每隔一个四分之一周期 16 向弹幕
type Pendulum struct {
	opponentBase
	count float64
	hwp   float64 // 摆动半宽
	hhp   float64 // 摆动半高，随时间减小
	freq  float64
	speed float64
}

func newPendulum(w *World, pos utils.Vector, t float64) *Pendulum {
	p := &Pendulum{opponentBase: newOpponentBase(w, types.OpponentPendulum, pos, []string{"pendulum.0", "pendulum.1"}, platform.Green, t)}
	p.self = p
	p.points = 1000
	p.health = components.NewHealth(10)
	p.color, p.colorBack = platform.LightGrey, platform.Grey
	p.hitSound = config.SoundBossHit
	p.destroySound = config.SoundExplosionLow
	p.speed = 5
	// 从摆动的顶点开始
	p.birth += math.Pi / 2
	p.count = -1
	p.hwp, p.hhp = 40, 20
	p.freq = 1.25
	w.PlaySound(config.ChannelSpawn, config.SoundSpawnHeavy)
	return p
}

// Update 推进
func (p *Pendulum) Update(dt, t float64) {
	p.anim.Tick(t)

	ti := t - p.birth
	swing := utils.Vec(math.Sin(ti*p.freq)*p.hwp, math.Cos(ti*p.freq*2)*p.hhp)
	p.body.Center = p.body.Center.Add(utils.Vec(0, p.speed*dt))
	p.hhp -= 2 * dt
	p.body.Pos = p.body.Center.Add(swing)

	c := math.Floor(ti / (math.Pi / 2 / p.freq))
	if c > p.count {
		if int(p.count)%2 != 0 {
			p.world.FireBurst(p.body.Pos, 16, 0, 45, BulletRed)
		}
		p.count++
	}

	if p.body.Pos.Y > config.ScreenHeight+float64(p.anim.Current().H) {
		p.remove()
	}
}
