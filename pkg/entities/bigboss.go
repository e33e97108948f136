package entities

import (
	"math"

	"github.com/decker502/lastfighter/pkg/components"
	"github.com/decker502/lastfighter/pkg/config"
	"github.com/decker502/lastfighter/pkg/platform"
	"github.com/decker502/lastfighter/pkg/types"
	"github.com/decker502/lastfighter/pkg/utils"
)

const (
	towerGunCount  = 4
	towerGunOrbit  = 30
	towerGunLife   = 5
	bigBossLife    = 50
	bigBossArrival = 5
	bigBossSpeed   = 20
	winkDuration   = 0.5
)

// TowerGun 绕大 Boss 旋转的炮塔，受到的伤害同时计入大 Boss
type TowerGun struct {
	opponentBase
	n    int
	base *BigBoss
	aim  *utils.Vector
	fire components.TimerComponent
}

func newTowerGun(w *World, n int, base *BigBoss, t float64) *TowerGun {
	g := &TowerGun{n: n, base: base}
	g.opponentBase = newOpponentBase(w, types.OpponentTowerGun, g.orbitPos(t), []string{"stairs.0", "stairs.1"}, platform.Black, t)
	g.self = g
	g.health = components.NewHealth(towerGunLife)
	g.points = towerGunLife * 200
	g.color, g.colorBack = platform.Red, platform.Purple
	g.destroySound = config.SoundExplosionLow
	g.fire = components.NewTimer(0.5, t)
	w.PlaySound(config.ChannelSpawn, config.SoundSpawnHeavy)
	return g
}

// orbitPos 时刻 t 在轨道上的位置
func (g *TowerGun) orbitPos(t float64) utils.Vector {
	p := utils.Vec(math.Cos(-t), math.Sin(-t)).Normalize().Scale(towerGunOrbit)
	return g.base.body.Pos.Add(p.Rotate(90 * float64(g.n)))
}

// CollidesWith 大 Boss 出场期间不可被击中
func (g *TowerGun) CollidesWith(other *components.Body, isShip bool) bool {
	if g.base.starting {
		return false
	}
	return g.opponentBase.CollidesWith(other, isShip)
}

// HitBy 伤害同时扣除大 Boss 的生命
func (g *TowerGun) HitBy(pos utils.Vector, t float64) {
	g.opponentBase.HitBy(pos, t)
	g.base.health.Damage(1)
}

// Destroy 从大 Boss 的炮塔列表中移除
func (g *TowerGun) Destroy(t float64) {
	if g.destroyed {
		return
	}
	g.base.removeTower(g)
	g.opponentBase.Destroy(t)
}

// Update 跟随大 Boss 旋转，每 0.5 秒朝分配的目标点射击
func (g *TowerGun) Update(dt, t float64) {
	g.anim.Tick(t)
	g.body.Pos = g.orbitPos(t)

	if g.fire.Ready(t) && g.aim != nil {
		vel := g.aim.Sub(g.body.Pos)
		n := math.Max(vel.Length(), 25)
		vel = vel.Normalize().Scale(n * 0.7)
		g.world.FireEnemyBullet(g.body.Pos, vel, BulletBlue)
		g.fire.Reset(t)
	}
}

// Draw 紫色换成蓝色绘制
func (g *TowerGun) Draw(r platform.Renderer) {
	r.Remap(platform.Purple, platform.Blue)
	g.opponentBase.Draw(r)
	r.ResetRemap()
}

// bigBossPhase 大 Boss 的战斗阶段
type bigBossPhase int

const (
	bigBossEntering   bigBossPhase = iota // 从顶部进场
	bigBossWithTowers                     // 炮塔作战
	bigBossAlone                          // 独自作战：眨眼弹幕、放出小兵
)

// BigBoss 最终 Boss：四个炮塔护卫，炮塔全灭后本体才可被击中
type BigBoss struct {
	bossBase
	factory *SoldierFactory
	towers  []*TowerGun
	phase   bigBossPhase

	framesClosed []platform.ImageRegion
	framesOpen   []platform.ImageRegion
	eyeOpen      bool
	winking      bool

	shootAt float64
	enemyAt float64
}

func newBigBoss(f *SoldierFactory, pos utils.Vector, t float64) *BigBoss {
	w := f.world
	b := &BigBoss{bossBase: newBossBase(w, types.OpponentBigBoss, pos, []string{"bigboss.closed.0", "bigboss.closed.1"}, platform.Green, t)}
	b.self = b
	b.factory = f
	b.framesClosed = b.anim.Frames
	b.framesOpen = []platform.ImageRegion{w.Region("bigboss.open.0"), w.Region("bigboss.open.1")}
	b.body.Radius = 5
	b.health = components.NewHealth(bigBossLife + towerGunCount*towerGunLife)
	b.points = bigBossLife * 2000
	b.color, b.colorBack = platform.Grey, platform.Red
	b.hitSound = config.SoundBossHit

	for i := 0; i < towerGunCount; i++ {
		b.towers = append(b.towers, newTowerGun(w, i, b, t))
	}
	// 炮塔按进场前的位置生成，本体从屏幕上方进场
	b.body.Pos = utils.Vec(config.MidWidth, -40)
	return b
}

// deploy 炮塔随大 Boss 一起加入战场
func (b *BigBoss) deploy() {
	for _, g := range b.towers {
		b.world.Spawn(g)
	}
}

// Towers 剩余炮塔数量
func (b *BigBoss) Towers() int {
	return len(b.towers)
}

func (b *BigBoss) removeTower(g *TowerGun) {
	for i, x := range b.towers {
		if x == g {
			b.towers = append(b.towers[:i], b.towers[i+1:]...)
			return
		}
	}
}

// CollidesWith 本体只在独自作战阶段接受子弹；对飞船半径 15
func (b *BigBoss) CollidesWith(other *components.Body, isShip bool) bool {
	if b.starting || b.dying || b.Destroyed() {
		return false
	}
	b.body.Radius = 5
	if isShip {
		b.body.Radius = 15
	}
	if b.phase != bigBossAlone && !isShip {
		return false
	}
	return b.body.Overlaps(other)
}

// targets 在飞船周围为 num 个炮塔分配散开的瞄准点
func (b *BigBoss) targets(num int) []utils.Vector {
	ship := b.target.body
	v := b.body.Pos.Sub(ship.Pos).Normalize()
	c := v.Scale(ship.Radius).Add(ship.Pos)
	if num == 1 {
		return []utils.Vector{c}
	}
	const size = 3
	start := utils.Vec(v.Y, -v.X).Scale(ship.Radius * size)
	step := ship.Radius * size * 2 / float64(num-1)
	out := make([]utils.Vector, num)
	for i := range out {
		out[i] = c.Add(start).Add(utils.Vec(-v.Y, v.X).Scale(step * float64(i)))
	}
	return out
}

func (b *BigBoss) openEye() {
	b.eyeOpen = true
	b.anim.SetFrames(b.framesOpen)
}

func (b *BigBoss) closeEye() {
	b.eyeOpen = false
	if !b.winking {
		b.anim.SetFrames(b.framesClosed)
	}
}

func (b *BigBoss) startWink(t float64) {
	b.winking = true
	b.anim.SetFrames(b.framesOpen)
	b.fx.Schedule(t+winkDuration, "stop wink", func(float64) {
		b.winking = false
		if !b.eyeOpen {
			b.anim.SetFrames(b.framesClosed)
		}
	})
}

// childDelay 放出小兵的间隔，生命越少越快
func (b *BigBoss) childDelay() float64 {
	if b.health.Life > 20 {
		return utils.MapRange(float64(b.health.Life), 20, 50, 0.4, 2)
	}
	return 0.2
}

// Update 推进
func (b *BigBoss) Update(dt, t float64) {
	if b.finished {
		b.fx.Update(dt, t)
		return
	}
	b.anim.Tick(t)
	b.fx.Update(dt, t)

	switch {
	case b.starting:
		if b.updateArrival(t, bigBossArrival) {
			b.phase = bigBossEntering
			b.shootAt = t
		}
	case b.dying:
		vel := b.updateDying(t)
		if b.finished {
			return
		}
		b.body.Pos = b.body.Pos.Add(vel.Scale(dt))
	default:
		b.updateFight(dt, t)
	}

	if !b.targetAlive() {
		b.showLifebar = false
	}
}

func (b *BigBoss) updateFight(dt, t float64) {
	sinceBirth := t - b.birth

	if b.phase == bigBossEntering || b.phase == bigBossWithTowers {
		if n := len(b.towers); n > 0 {
			if b.target != nil {
				for i, aim := range b.targets(n) {
					b.towers[i].aim = &aim
				}
			}
		} else {
			b.phase = bigBossAlone
			b.shootAt = t
			b.enemyAt = t
		}
	}

	if b.phase == bigBossAlone && t-b.shootAt >= 2 && b.targetAlive() {
		b.startWink(t)
		b.world.FireBurst(b.body.Pos, 16, 0, 40, BulletBlue)
		b.shootAt = t
	}

	var vel utils.Vector
	period := int(sinceBirth*0.5) % 8
	if b.phase == bigBossEntering {
		switch period {
		case 0, 1:
			vel.Y = bigBossSpeed
		case 2:
			b.phase = bigBossWithTowers
		}
	} else {
		switch period {
		case 3, 7:
			if b.phase == bigBossAlone {
				b.closeEye()
			}
			vel.Y = bigBossSpeed
		case 4, 6:
			vel.X = bigBossSpeed
		case 5, 1:
			vel.Y = -bigBossSpeed
		case 0, 2:
			vel.X = -bigBossSpeed
		}
		if (period == 2 || period == 6) && b.phase == bigBossAlone && t-b.enemyAt >= b.childDelay() {
			b.openEye()
			b.launchChild(period, t)
			b.enemyAt = t
		}
	}

	b.body.Pos = b.body.Pos.Add(vel.Scale(dt))
}

// launchChild 生命多时放出绿色小兵，少时放出虫子
func (b *BigBoss) launchChild(period int, t float64) {
	// period 2 向右，period 6 向左
	dir := 1
	if period == 6 {
		dir = -1
	}
	if b.health.Life > 20 {
		child := b.factory.newGreen(b.body.Pos.Sub(utils.Vec(10, 0)), t)
		child.SetTarget(b.target)
		b.world.Spawn(child)
		return
	}
	b.world.Spawn(b.factory.newWorm(b.body.Pos.Sub(utils.Vec(16*float64(dir), 0)), dir, t))
}
