package systems

import (
	"github.com/decker502/lastfighter/pkg/components"
	"github.com/decker502/lastfighter/pkg/entities"
	"go.uber.org/zap"
)

// Overlaps 两个圆形是否重叠（含相切），任一半径为 0 时不碰撞
func Overlaps(a, b *components.Body) bool {
	return a.Overlaps(b)
}

// CombatListener 战斗结果的接收方（由 game.Match 实现）
type CombatListener interface {
	// ShipHit 飞船被击中（护盾与扣命由接收方判断）
	ShipHit(t float64)
	// OpponentDestroyed 敌机生命耗尽，每个敌机只通知一次
	OpponentDestroyed(o entities.Opponent)
}

// CollisionSystem 战斗阶段的碰撞判定
//
// 判定顺序：
//  1. 敌方子弹（后发先判）对飞船，首个命中后本帧不再检查敌方子弹
//  2. 敌机（后出场先判）对飞船子弹（后发先判），每个敌机最多吃一颗子弹
//  3. 同一敌机未被摧毁时对飞船，命中后本帧不再检查其他敌机
//
// 敌机生命耗尽时立即加分并摧毁，之后的判定会跳过它。
type CollisionSystem struct {
	world    *entities.World
	ship     *entities.Ship
	listener CombatListener
	log      *zap.Logger
}

// NewCollisionSystem 创建碰撞系统
func NewCollisionSystem(w *entities.World, ship *entities.Ship, listener CombatListener) *CollisionSystem {
	return &CollisionSystem{
		world:    w,
		ship:     ship,
		listener: listener,
		log:      w.Log.Named("collision"),
	}
}

// Resolve 执行一帧的碰撞判定
func (s *CollisionSystem) Resolve(t float64) {
	s.enemyBulletsVsShip(t)
	s.opponents(t)
}

func (s *CollisionSystem) enemyBulletsVsShip(t float64) {
	ship := s.ship.Body()
	bullets := s.world.EnemyBullets.Snapshot()
	for i := len(bullets) - 1; i >= 0; i-- {
		b := bullets[i]
		if Overlaps(b.Body(), ship) {
			b.Remove()
			s.listener.ShipHit(t)
			return
		}
	}
}

func (s *CollisionSystem) opponents(t float64) {
	opponents := s.world.Opponents.Snapshot()
	for i := len(opponents) - 1; i >= 0; i-- {
		o := opponents[i]
		if o.Destroyed() {
			continue
		}

		bullets := s.world.Bullets.Snapshot()
		for j := len(bullets) - 1; j >= 0; j-- {
			b := bullets[j]
			if o.CollidesWith(b.Body(), false) {
				s.hitOpponent(o, b.Body(), false, t)
				b.Remove()
				break
			}
		}

		if o.Destroyed() {
			// 刚被子弹击毁但仍压着飞船：不再扣命，本帧也不再检查其他敌机
			if !o.Kind().IsBoss() && Overlaps(o.Body(), s.ship.Body()) {
				return
			}
			continue
		}
		if o.CollidesWith(s.ship.Body(), true) {
			s.hitOpponent(o, s.ship.Body(), true, t)
			s.listener.ShipHit(t)
			return
		}
	}
}

// hitOpponent 护盾开启时飞船的撞击不伤害敌机
func (s *CollisionSystem) hitOpponent(o entities.Opponent, by *components.Body, byShip bool, t float64) {
	if !(byShip && s.ship.Shielded()) {
		o.HitBy(by.Pos, t)
	}
	if o.Health().Depleted() && !o.Destroyed() {
		s.log.Debug("opponent destroyed",
			zap.Uint64("id", uint64(o.ID())),
			zap.Stringer("kind", o.Kind()),
			zap.Int("points", o.Points()))
		s.listener.OpponentDestroyed(o)
		o.Destroy(t)
	}
}
