package entities

import (
	"errors"
	"fmt"

	"github.com/decker502/lastfighter/pkg/components"
	"github.com/decker502/lastfighter/pkg/config"
	"github.com/decker502/lastfighter/pkg/types"
	"github.com/decker502/lastfighter/pkg/utils"
	"go.uber.org/zap"
)

// ErrUnknownOpponentType 模板中的敌机类型无法构造
var ErrUnknownOpponentType = errors.New("unknown opponent type")

// speciesFrameFreq 同种共享时钟的换帧间隔
const speciesFrameFreq = 0.5

// creator 根据模板构造一个敌机（尚未加入世界）
type creator func(f *SoldierFactory, tpl config.TroopTemplate, t float64) Opponent

// creators 敌机类型到构造函数的映射
// 按模板所需参数分为：只需位置、位置 + 方向、只需方向、位置 + 目的地
var creators = map[types.OpponentType]creator{
	types.OpponentGreen: func(f *SoldierFactory, tpl config.TroopTemplate, t float64) Opponent {
		return f.newGreen(tpl.Position(), t)
	},
	types.OpponentStairs: func(f *SoldierFactory, tpl config.TroopTemplate, t float64) Opponent {
		return newStairs(f.world, tpl.Position(), t)
	},
	types.OpponentBoss: func(f *SoldierFactory, tpl config.TroopTemplate, t float64) Opponent {
		return newBoss(f.world, tpl.Position(), t)
	},
	types.OpponentPendulum: func(f *SoldierFactory, tpl config.TroopTemplate, t float64) Opponent {
		return newPendulum(f.world, tpl.Position(), t)
	},
	types.OpponentBigBoss: func(f *SoldierFactory, tpl config.TroopTemplate, t float64) Opponent {
		return newBigBoss(f, tpl.Position(), t)
	},
	types.OpponentWorm: func(f *SoldierFactory, tpl config.TroopTemplate, t float64) Opponent {
		return f.newWorm(tpl.Position(), direction(tpl.Dir), t)
	},
	types.OpponentSider: func(f *SoldierFactory, tpl config.TroopTemplate, t float64) Opponent {
		return newSider(f.world, direction(tpl.Dir), f.siderClock, t)
	},
	types.OpponentXRotator: func(f *SoldierFactory, tpl config.TroopTemplate, t float64) Opponent {
		return newXRotator(f.world, tpl.Position(), tpl.Destination.Vector(), t)
	},
}

// direction 方向默认为 1
func direction(dir int) int {
	if dir == 0 {
		return 1
	}
	return dir
}

// SoldierFactory 兵工厂：把出场模板变成敌机并加入世界
//
// 同种敌机的共享动画时钟由工厂持有。
type SoldierFactory struct {
	world      *World
	log        *zap.Logger
	wormClock  *components.SpeciesClock
	siderClock *components.SpeciesClock
}

// NewSoldierFactory 创建兵工厂
func NewSoldierFactory(w *World) *SoldierFactory {
	return &SoldierFactory{
		world:      w,
		log:        w.Log.Named("factory"),
		wormClock:  components.NewSpeciesClock(speciesFrameFreq, 2),
		siderClock: components.NewSpeciesClock(speciesFrameFreq, 2),
	}
}

// Build 根据模板创建敌机并加入世界
//
// 参数:
//   - tpl: 出场模板
//   - t: 当前时刻
//
// 返回:
//   - Opponent: 创建的敌机；"none" 模板只占用延迟，返回 nil
//   - error: 类型无法构造时返回包装了 ErrUnknownOpponentType 的错误
func (f *SoldierFactory) Build(tpl config.TroopTemplate, t float64) (Opponent, error) {
	kind := types.OpponentTypeFromString(tpl.Type)
	if kind == types.OpponentNone {
		return nil, nil
	}
	create, ok := creators[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOpponentType, tpl.Type)
	}
	if kind == types.OpponentXRotator && tpl.Destination == nil {
		return nil, fmt.Errorf("%w: xrotator without destination", ErrUnknownOpponentType)
	}

	o := create(f, tpl, t)
	f.world.Spawn(o)
	f.log.Debug("opponent spawned",
		zap.Uint64("id", uint64(o.ID())),
		zap.Stringer("kind", o.Kind()),
		zap.Float64("x", o.Body().Pos.X),
		zap.Float64("y", o.Body().Pos.Y))
	return o, nil
}

// ResetClocks 新的一局开始时复位共享时钟
func (f *SoldierFactory) ResetClocks() {
	f.wormClock.Reset()
	f.siderClock.Reset()
}

func (f *SoldierFactory) newGreen(pos utils.Vector, t float64) *Green {
	return newGreen(f.world, pos, t)
}

func (f *SoldierFactory) newWorm(pos utils.Vector, dir int, t float64) *Worm {
	return newWorm(f.world, pos, dir, f.wormClock, t)
}
