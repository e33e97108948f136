package game

import (
	"github.com/decker502/lastfighter/pkg/platform"
)

// Scene 一个比赛阶段
//
// Update 返回自身表示停留，返回另一个场景表示请求切换。
// 切换由 SceneManager 在帧之间完成：先 Exit 旧场景，再 Enter 新场景。
type Scene interface {
	Phase() Phase

	// Enter 进入阶段时调用，t 为当前时间（秒）
	Enter(t float64)

	// Update 推进一帧，dt 为距上一帧的时间（秒），t 为单调时间
	Update(dt, t float64) Scene

	Draw(r platform.Renderer)

	Exit()
}
