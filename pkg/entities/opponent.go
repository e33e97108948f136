package entities

import (
	"github.com/decker502/lastfighter/pkg/components"
	"github.com/decker502/lastfighter/pkg/config"
	"github.com/decker502/lastfighter/pkg/ecs"
	"github.com/decker502/lastfighter/pkg/platform"
	"github.com/decker502/lastfighter/pkg/types"
	"github.com/decker502/lastfighter/pkg/utils"
)

// Opponent 敌机
//
// 只能由兵工厂（或大 Boss 生成子机）创建；被摧毁或离开战场后从所有集合中移除，不会复活。
type Opponent interface {
	ecs.Updatable
	ecs.Drawable

	ID() ecs.EntityID
	Kind() types.OpponentType
	Body() *components.Body
	// CollidesWith 碰撞测试，isShip 表示对方是飞船（Boss 对飞船使用更大半径）
	CollidesWith(other *components.Body, isShip bool) bool
	Health() *components.HealthComponent
	Points() int
	// HitBy 在 pos 处被击中一次
	HitBy(pos utils.Vector, t float64)
	// Destroy 生命耗尽时调用，只生效一次
	Destroy(t float64)
	// Destroyed 已被摧毁或已离场
	Destroyed() bool
	SetTarget(s *Ship)
}

// deployer 加入世界后还需要生成附属单位的敌机（大 Boss 的炮塔）
type deployer interface {
	deploy()
}

// opponentBase 所有敌机共享的数据和默认行为
type opponentBase struct {
	world *World
	self  Opponent
	id    ecs.EntityID
	kind  types.OpponentType

	body   components.Body
	anim   *components.AnimationComponent
	health components.HealthComponent
	points int

	destroySound int
	hitSound     int
	color        platform.Color // 命中效果颜色
	colorBack    platform.Color

	birth  float64
	target *Ship

	destroyed bool
	removed   bool
}

// newOpponentBase 初始化公共字段，出生在屏幕边缘的敌机被推到屏幕外
func newOpponentBase(w *World, kind types.OpponentType, pos utils.Vector, frames []string, colkey platform.Color, t float64) opponentBase {
	regions := make([]platform.ImageRegion, len(frames))
	for i, name := range frames {
		regions[i] = w.Region(name)
	}
	b := opponentBase{
		world:        w,
		id:           w.Registry.CreateEntity(),
		kind:         kind,
		anim:         components.NewAnimation(regions, 0.5, colkey, t),
		health:       components.NewHealth(1),
		destroySound: config.SoundExplosion,
		hitSound:     config.SoundShipHit,
		birth:        t,
	}
	first := regions[0]
	b.body = components.NewBody(offscreen(pos, first.W, first.H), components.SpriteRadius(first.W, first.H))
	return b
}

// offscreen 恰好位于屏幕边缘的出生点移到屏幕外
func offscreen(pos utils.Vector, w, h int) utils.Vector {
	hw, hh := float64(w)/2+1, float64(h)/2+1
	switch pos.Y {
	case 0:
		pos.Y -= hh
	case config.ScreenHeight:
		pos.Y += hh
	}
	switch pos.X {
	case 0:
		pos.X -= hw
	case config.ScreenWidth:
		pos.X += hw
	}
	return pos
}

func (b *opponentBase) ID() ecs.EntityID                    { return b.id }
func (b *opponentBase) Kind() types.OpponentType            { return b.kind }
func (b *opponentBase) Body() *components.Body              { return &b.body }
func (b *opponentBase) Health() *components.HealthComponent { return &b.health }
func (b *opponentBase) Points() int                         { return b.points }
func (b *opponentBase) SetTarget(s *Ship)                   { b.target = s }

// Destroyed 已被摧毁或已离场
func (b *opponentBase) Destroyed() bool {
	return b.destroyed || b.removed
}

// CollidesWith 默认的圆形碰撞
func (b *opponentBase) CollidesWith(other *components.Body, isShip bool) bool {
	if b.Destroyed() {
		return false
	}
	return b.body.Overlaps(other)
}

// HitBy 扣一点生命，未死时播放受击音效
func (b *opponentBase) HitBy(pos utils.Vector, t float64) {
	b.health.Damage(1)
	if b.health.Life > 0 {
		b.world.PlaySound(config.ChannelDestroy, b.hitSound)
	}
	b.world.HitEffect(pos, b.color, t)
}

// Destroy 播放爆炸音效并移除
func (b *opponentBase) Destroy(t float64) {
	if b.destroyed {
		return
	}
	b.destroyed = true
	b.world.PlaySound(config.ChannelDestroy, b.destroySound)
	b.remove()
}

// remove 离开战场
func (b *opponentBase) remove() {
	if b.removed {
		return
	}
	b.removed = true
	b.world.Despawn(b.self)
}

// targetAlive 是否有存活的目标
func (b *opponentBase) targetAlive() bool {
	return b.target != nil && b.target.Alive
}

// aimAt 朝目标发射一颗子弹
func (b *opponentBase) aimAt(speed float64) {
	vel := b.target.body.Pos.Sub(b.body.Pos).Normalize().Scale(speed)
	b.world.FireEnemyBullet(b.body.Pos, vel, BulletRed)
}

// Draw 以当前帧绘制
func (b *opponentBase) Draw(r platform.Renderer) {
	components.DrawCentered(r, b.body.Pos, b.anim.Current(), b.anim.Colkey)
}

// OpponentSet 按出场顺序排列的敌机集合
type OpponentSet struct {
	items []Opponent
	index map[Opponent]struct{}
}

// NewOpponentSet 创建空集合
func NewOpponentSet() *OpponentSet {
	return &OpponentSet{index: make(map[Opponent]struct{})}
}

// Add 加入集合
func (s *OpponentSet) Add(o Opponent) {
	if _, ok := s.index[o]; ok {
		return
	}
	s.index[o] = struct{}{}
	s.items = append(s.items, o)
}

// Remove 移出集合，返回是否确实移除
func (s *OpponentSet) Remove(o Opponent) bool {
	if _, ok := s.index[o]; !ok {
		return false
	}
	delete(s.index, o)
	for i, x := range s.items {
		if x == o {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	return true
}

// Contains 是否在集合中
func (s *OpponentSet) Contains(o Opponent) bool {
	_, ok := s.index[o]
	return ok
}

// Len 敌机数量
func (s *OpponentSet) Len() int {
	return len(s.items)
}

// Snapshot 按出场顺序复制当前敌机
func (s *OpponentSet) Snapshot() []Opponent {
	out := make([]Opponent, len(s.items))
	copy(out, s.items)
	return out
}
