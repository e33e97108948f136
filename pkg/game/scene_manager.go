package game

import (
	"github.com/decker502/lastfighter/pkg/platform"
	"go.uber.org/zap"
)

// SceneManager 持有当前阶段，按切换表校验并执行阶段切换
//
// 同一时间只有一个场景的 Update 和 Draw 被调用。
type SceneManager struct {
	current Scene
	log     *zap.Logger

	// rejected 被拒绝的非法切换次数
	rejected int
}

// NewSceneManager 创建场景管理器，Start 之前没有活动场景
func NewSceneManager(log *zap.Logger) *SceneManager {
	if log == nil {
		log = zap.NewNop()
	}
	return &SceneManager{log: log.Named("scenes")}
}

// Start 设置初始场景并进入
//
// 初始场景不经过切换表校验，当前已有场景时先退出它。
func (sm *SceneManager) Start(scene Scene, t float64) {
	if sm.current != nil {
		sm.current.Exit()
	}
	sm.current = scene
	sm.log.Info("scene started", zap.Stringer("phase", scene.Phase()))
	scene.Enter(t)
}

// Current 返回当前场景，未启动时为 nil
func (sm *SceneManager) Current() Scene {
	return sm.current
}

// Phase 当前阶段
func (sm *SceneManager) Phase() Phase {
	if sm.current == nil {
		return PhaseIntro
	}
	return sm.current.Phase()
}

// Rejected 被拒绝的切换次数
func (sm *SceneManager) Rejected() int {
	return sm.rejected
}

// Update 推进当前场景，需要时执行切换
func (sm *SceneManager) Update(dt, t float64) {
	if sm.current == nil {
		return
	}
	next := sm.current.Update(dt, t)
	if next == nil || next == sm.current {
		return
	}

	from, to := sm.current.Phase(), next.Phase()
	if !CanTransition(from, to) {
		sm.rejected++
		sm.log.Error("illegal phase transition",
			zap.Stringer("from", from),
			zap.Stringer("to", to),
		)
		return
	}

	sm.current.Exit()
	sm.current = next
	sm.log.Debug("phase transition",
		zap.Stringer("from", from),
		zap.Stringer("to", to),
		zap.Float64("t", t),
	)
	next.Enter(t)
}

// Draw 绘制当前场景
func (sm *SceneManager) Draw(r platform.Renderer) {
	if sm.current != nil {
		sm.current.Draw(r)
	}
}
