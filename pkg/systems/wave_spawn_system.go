package systems

import (
	"fmt"

	"github.com/decker502/lastfighter/pkg/config"
	"github.com/decker502/lastfighter/pkg/entities"
	"go.uber.org/zap"
)

// Builder 根据模板构造并登记敌机（entities.SoldierFactory 实现）
type Builder interface {
	Build(tpl config.TroopTemplate, t float64) (entities.Opponent, error)
}

// WaveSpawnSystem 每帧决定是否放出下一个敌机
//
// 出场策略：
//   - 队首没有间隔（或队列为空）时等待清屏，清屏后先放出无间隔的队首，
//     队列为空则拉取下一波
//   - 队首有间隔时，距上次出场满间隔即放出
//
// 每次放出或拉取都会重置出场计时。
type WaveSpawnSystem struct {
	scheduler *WaveScheduler
	builder   Builder
	target    *entities.Ship
	log       *zap.Logger
	lastSpawn float64
}

// NewWaveSpawnSystem 创建出场系统
func NewWaveSpawnSystem(scheduler *WaveScheduler, builder Builder, log *zap.Logger) *WaveSpawnSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &WaveSpawnSystem{
		scheduler: scheduler,
		builder:   builder,
		log:       log.Named("spawn"),
	}
}

// Start 开局：重置调度器，出场计时从 t 开始
func (s *WaveSpawnSystem) Start(t float64, target *entities.Ship) {
	s.scheduler.StartWar()
	s.target = target
	s.lastSpawn = t
}

// Scheduler 调度器
func (s *WaveSpawnSystem) Scheduler() *WaveScheduler {
	return s.scheduler
}

// Update 执行出场策略，返回本帧放出的敌机（可能为 nil）
//
// 工厂出错时该模板已被弹出，不会占用出场位置；错误记录后返回给调用方。
func (s *WaveSpawnSystem) Update(t float64, battlefieldEmpty bool) (entities.Opponent, error) {
	delay, ok := s.scheduler.DelayUntilNext()
	if !ok {
		if !battlefieldEmpty {
			return nil, nil
		}
		s.lastSpawn = t
		if s.scheduler.HasQueued() {
			return s.release(t)
		}
		s.scheduler.PullNextWave()
		if s.scheduler.HasQueued() {
			s.log.Info("wave pulled",
				zap.Int("wave", s.scheduler.Wave()),
				zap.Int("troops", s.scheduler.Remaining()))
		} else if s.scheduler.EndOfWar() {
			s.log.Info("end of war")
		}
		return nil, nil
	}

	if t-s.lastSpawn < delay {
		return nil, nil
	}
	s.lastSpawn = t
	return s.release(t)
}

func (s *WaveSpawnSystem) release(t float64) (entities.Opponent, error) {
	tpl, ok := s.scheduler.ReleaseNext()
	if !ok {
		return nil, nil
	}
	o, err := s.builder.Build(tpl, t)
	if err != nil {
		s.log.Error("failed to build opponent", zap.String("type", tpl.Type), zap.Error(err))
		return nil, fmt.Errorf("spawn wave %d: %w", s.scheduler.Wave(), err)
	}
	if o != nil && s.target != nil {
		o.SetTarget(s.target)
	}
	return o, nil
}
