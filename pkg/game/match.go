package game

import (
	"github.com/decker502/lastfighter/pkg/config"
	"github.com/decker502/lastfighter/pkg/entities"
	"github.com/decker502/lastfighter/pkg/systems"
	"go.uber.org/zap"
)

// DefaultLives 开局生命数
const DefaultLives = 3

// Match 一局比赛的状态：分数、生命、飞船和战斗系统
//
// Match 实现 systems.CombatListener，碰撞系统通过它结算得分和扣命。
type Match struct {
	World      *entities.World
	Ship       *entities.Ship
	Factory    *entities.SoldierFactory
	Spawner    *systems.WaveSpawnSystem
	Collisions *systems.CollisionSystem

	Score int
	Lives int

	rules      ScoreRules
	startLives int
	log        *zap.Logger
}

// NewMatch 组装一局比赛，rules 为 nil 时使用 DefaultRules，lives < 1 时使用 DefaultLives
func NewMatch(w *entities.World, army *config.ArmyConfig, rules ScoreRules, lives int) *Match {
	if rules == nil {
		rules = DefaultRules{}
	}
	if lives < 1 {
		lives = DefaultLives
	}
	m := &Match{
		World:      w,
		Ship:       entities.NewShip(w),
		Factory:    entities.NewSoldierFactory(w),
		rules:      rules,
		startLives: lives,
		Lives:      lives,
		log:        w.Log.Named("match"),
	}
	m.Spawner = systems.NewWaveSpawnSystem(systems.NewWaveScheduler(army), m.Factory, w.Log)
	m.Collisions = systems.NewCollisionSystem(w, m.Ship, m)
	return m
}

// Start 开局：分数清零、生命复位、重置波次和出场计时，飞船回到出发点
func (m *Match) Start(t float64) {
	m.Score = 0
	m.Lives = m.startLives
	m.Factory.ResetClocks()
	m.Spawner.Start(t, m.Ship)
	m.Ship.Activate(t)
	m.log.Info("match started", zap.Int("lives", m.Lives), zap.Int("waves", m.Spawner.Scheduler().Waves()))
}

// Step 战斗阶段每帧在注册表推进之后调用：先结算碰撞，再执行出场
func (m *Match) Step(t float64) {
	m.Collisions.Resolve(t)
	// 出场错误已由出场系统记录，坏模板被丢弃，比赛继续
	_, _ = m.Spawner.Update(t, m.BattlefieldEmpty())
}

// ShipHit 飞船被击中：无护盾时扣一条命并开启护盾
func (m *Match) ShipHit(t float64) {
	if m.Ship.Shielded() {
		return
	}
	m.Ship.Hit(t)
	if m.Lives > 0 {
		m.Lives--
		m.Ship.Protect(t)
	}
	m.log.Debug("ship hit", zap.Int("lives", m.Lives))
}

// OpponentDestroyed 按计分规则累加击毁得分
func (m *Match) OpponentDestroyed(o entities.Opponent) {
	m.Score += m.rules.KillScore(o.Kind().String(), o.Points())
}

// AwardLivesBonus 把剩余生命奖励加入分数，返回奖励分
func (m *Match) AwardLivesBonus() int {
	bonus := m.rules.LivesBonus(m.Lives)
	m.Score += bonus
	m.log.Info("lives bonus", zap.Int("lives", m.Lives), zap.Int("bonus", bonus))
	return bonus
}

// BattlefieldEmpty 场上没有敌机
func (m *Match) BattlefieldEmpty() bool {
	return m.World.Opponents.Len() == 0
}

// Lost 生命耗尽
func (m *Match) Lost() bool {
	return m.Lives == 0
}

// Won 所有波次已放出且场上已清空
func (m *Match) Won() bool {
	return m.Spawner.Scheduler().EndOfWar() && m.BattlefieldEmpty()
}
