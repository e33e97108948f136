package systems

import "github.com/decker502/lastfighter/pkg/config"

// WaveScheduler 按顺序消费军队配置中的波次
//
// 队列中是尚未出场的模板。波次只在队列取空后才拉取下一波，
// 没有剩余波次可拉时标记战争结束。
type WaveScheduler struct {
	army     *config.ArmyConfig
	wave     int
	queue    []config.TroopTemplate
	endOfWar bool
}

// NewWaveScheduler 创建调度器
func NewWaveScheduler(army *config.ArmyConfig) *WaveScheduler {
	return &WaveScheduler{army: army}
}

// StartWar 新的一局：清空队列，从第一波开始
func (s *WaveScheduler) StartWar() {
	s.wave = 0
	s.queue = s.queue[:0]
	s.endOfWar = false
}

// DelayUntilNext 队首模板的出场间隔
//
// 第二个返回值为 false 表示队列为空或队首没有间隔，此时应等待清屏。
func (s *WaveScheduler) DelayUntilNext() (float64, bool) {
	if len(s.queue) == 0 || !s.queue[0].HasDelay() {
		return 0, false
	}
	return s.queue[0].DelaySeconds(), true
}

// PullNextWave 把下一波的模板追加到队列；没有剩余波次时标记战争结束
func (s *WaveScheduler) PullNextWave() {
	if s.wave >= len(s.army.Waves) {
		s.endOfWar = true
		return
	}
	s.queue = append(s.queue, s.army.WaveTemplates(s.wave)...)
	s.wave++
}

// ReleaseNext 弹出队首模板；队列为空时拉取下一波并报告本次无模板
func (s *WaveScheduler) ReleaseNext() (config.TroopTemplate, bool) {
	if len(s.queue) == 0 {
		s.PullNextWave()
		return config.TroopTemplate{}, false
	}
	tpl := s.queue[0]
	s.queue = s.queue[1:]
	return tpl, true
}

// HasQueued 队列中是否还有模板
func (s *WaveScheduler) HasQueued() bool {
	return len(s.queue) > 0
}

// EndOfWar 最后一波已出完且再没有波次
func (s *WaveScheduler) EndOfWar() bool {
	return s.endOfWar
}

// Wave 已拉取的波次数
func (s *WaveScheduler) Wave() int {
	return s.wave
}

// Remaining 队列中尚未出场的模板数
func (s *WaveScheduler) Remaining() int {
	return len(s.queue)
}

// Waves 波次总数
func (s *WaveScheduler) Waves() int {
	return len(s.army.Waves)
}
