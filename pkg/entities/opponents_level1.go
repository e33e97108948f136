package entities

import (
	"math"

	"github.com/decker502/lastfighter/pkg/components"
	"github.com/decker502/lastfighter/pkg/config"
	"github.com/decker502/lastfighter/pkg/platform"
	"github.com/decker502/lastfighter/pkg/types"
	"github.com/decker502/lastfighter/pkg/utils"
)

// aimedShotSpeed 瞄准射击的子弹速度
const aimedShotSpeed = 45

// Green 绿色小兵：边下落边左右摆动，每秒朝飞船射击一次
type Green struct {
	opponentBase
	fire components.TimerComponent
}

func newGreen(w *World, pos utils.Vector, t float64) *Green {
	g := &Green{opponentBase: newOpponentBase(w, types.OpponentGreen, pos, []string{"green.0", "green.1"}, platform.Black, t)}
	g.self = g
	g.points = 200
	g.color, g.colorBack = platform.Green, platform.DarkGreen
	g.destroySound = config.SoundExplosionHigh
	g.fire = components.NewTimer(1, t)
	w.PlaySound(config.ChannelSpawn, config.SoundSpawnGreen)
	return g
}

// Update 推进
func (g *Green) Update(dt, t float64) {
	g.anim.Tick(t)

	vx := math.Cos((t-g.birth)*3) * 10
	g.body.Center = g.body.Center.Add(utils.Vec(0, 20*dt))
	g.body.Pos = g.body.Center.Add(utils.Vec(vx, 0))

	if g.fire.Ready(t) && g.targetAlive() {
		g.aimAt(aimedShotSpeed)
		g.fire.Reset(t)
	}

	if g.body.Pos.Y >= config.ScreenHeight+float64(g.anim.Current().H) {
		g.remove()
	}
}

// Worm 蓝色虫子：绕圈斜向下落，同种共享动画时钟
type Worm struct {
	opponentBase
	dir float64
}

func newWorm(w *World, pos utils.Vector, dir int, clock *components.SpeciesClock, t float64) *Worm {
	wm := &Worm{opponentBase: newOpponentBase(w, types.OpponentWorm, pos, []string{"worm.0", "worm.1"}, platform.Green, t)}
	wm.self = wm
	wm.anim.Clock = clock
	wm.points = 100
	wm.color, wm.colorBack = platform.Cyan, platform.Blue
	wm.dir = float64(dir)
	// 每条虫子出场时随机一个音高
	w.PlaySound(config.ChannelSpawn, config.SoundWormNote+w.randInt(0, config.WormNotes-1))
	return wm
}

// Update 推进
func (wm *Worm) Update(dt, t float64) {
	wm.anim.Tick(t)

	wm.body.Center = wm.body.Center.Add(utils.Vec(8*wm.dir, 20).Scale(dt))
	a := (t - wm.birth) * 4
	wm.body.Pos = wm.body.Center.Add(utils.Vec(math.Cos(a)*16*wm.dir, math.Sin(a)*16))

	if wm.body.Pos.Y > config.ScreenHeight+64 {
		wm.remove()
	}
}

// Stairs 阶梯：右、下、左、下循环移动，每秒瞄准射击
type Stairs struct {
	opponentBase
	fire  components.TimerComponent
	speed float64
}

func newStairs(w *World, pos utils.Vector, t float64) *Stairs {
	s := &Stairs{opponentBase: newOpponentBase(w, types.OpponentStairs, pos, []string{"stairs.0", "stairs.1"}, platform.Black, t)}
	s.self = s
	s.points = 500
	s.health = components.NewHealth(3)
	s.color, s.colorBack = platform.Red, platform.Purple
	s.destroySound = config.SoundExplosionLow
	s.fire = components.NewTimer(1, t)
	s.speed = 50
	w.PlaySound(config.ChannelSpawn, config.SoundSpawnHeavy)
	return s
}

// stairsDirection 阶梯路径在某一时刻的方向
func stairsDirection(sinceBirth float64) utils.Vector {
	switch int(sinceBirth*1.25) % 4 {
	case 0:
		return utils.Vec(1, 0)
	case 2:
		return utils.Vec(-1, 0)
	}
	return utils.Vec(0, 1)
}

// Update 推进
func (s *Stairs) Update(dt, t float64) {
	s.anim.Tick(t)

	s.body.Pos = s.body.Pos.Add(stairsDirection(t - s.birth).Scale(s.speed * dt))

	if s.fire.Ready(t) && s.targetAlive() {
		s.aimAt(aimedShotSpeed)
		s.fire.Reset(t)
	}

	if s.body.Pos.Y > config.ScreenHeight+float64(s.anim.Current().H) {
		s.remove()
	}
}

// Boss 第一关 Boss：闪烁出场，左右巡航，16 向弹幕
type Boss struct {
	bossBase
	fire components.TimerComponent
}

func newBoss(w *World, pos utils.Vector, t float64) *Boss {
	b := &Boss{bossBase: newBossBase(w, types.OpponentBoss, pos, []string{"boss.0", "boss.1"}, platform.Black, t)}
	b.self = b
	b.body.Radius = 7
	b.health = components.NewHealth(50)
	b.points = b.health.MaxLife * 1000
	b.color, b.colorBack = platform.Grey, platform.Red
	b.hitSound = config.SoundBossHit
	b.fire = components.NewTimer(1, t)
	b.resumeMusic = true
	return b
}

// CollidesWith 出场和阵亡期间不碰撞；对飞船半径 22，被子弹击中时后退 5 像素
func (b *Boss) CollidesWith(other *components.Body, isShip bool) bool {
	if b.starting || b.dying || b.Destroyed() {
		return false
	}
	b.body.Radius = 7
	if isShip {
		b.body.Radius = 22
	}
	hit := b.body.Overlaps(other)
	if hit && !isShip {
		b.body.Pos = b.body.Pos.Add(utils.Vec(0, -5))
	}
	return hit
}

// Update 推进
func (b *Boss) Update(dt, t float64) {
	if b.finished {
		b.fx.Update(dt, t)
		return
	}
	b.anim.Tick(t)
	b.fx.Update(dt, t)

	sinceBirth := t - b.birth
	var vel utils.Vector
	maxHeight := config.ScreenHeight * 0.4

	if b.starting {
		if b.updateArrival(t, 3) {
			b.fire.Reset(t)
		}
	} else {
		if b.body.Pos.Y < maxHeight {
			vel.Y = 15
			if sinceBirth <= 3 {
				vel.Y = maxHeight
			}
		}
		switch int(sinceBirth) % 8 {
		case 0, 6:
			vel.X = 50
		case 2, 4:
			vel.X = -50
		}
	}

	if b.dying {
		vel = b.updateDying(t)
		if b.finished {
			return
		}
	}

	b.body.Pos = b.body.Pos.Add(vel.Scale(dt))

	if b.fire.Ready(t) && !b.starting && !b.dying && b.targetAlive() {
		b.world.FireBurst(b.body.Pos, 16, 0, 40, BulletBlue)
		b.fire.Reset(t)
	}

	if !b.targetAlive() {
		b.showLifebar = false
	}
}
