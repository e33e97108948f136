package game

// LivesBonusPerLife 每条剩余生命的奖励分
const LivesBonusPerLife = 10000

// ScoreRules 计分规则
//
// 默认实现为 DefaultRules，脚本化实现见 internal/scripting。
type ScoreRules interface {
	// KillScore 击毁一个 kind 类型、基础分为 points 的敌机得到的分数
	KillScore(kind string, points int) int
	// LivesBonus 通关时剩余 lives 条命的奖励分
	LivesBonus(lives int) int
}

// DefaultRules 内置规则：击毁得基础分，每条命 10000 分
type DefaultRules struct{}

func (DefaultRules) KillScore(_ string, points int) int {
	return points
}

func (DefaultRules) LivesBonus(lives int) int {
	return lives * LivesBonusPerLife
}
