package tty

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/lastfighter/pkg/platform"
)

// keyHold 终端没有松键事件，按键在最后一次事件之后保持这么久
//
// 需要盖住终端自动重复的间隔，否则移动会断断续续。
const keyHold = 250 * time.Millisecond

// Input 由 tcell 按键事件驱动的 platform.Input
//
// Handle 在事件到达时调用，BeginFrame 在每帧开始时调用，
// 两者须在同一个 goroutine 上。
type Input struct {
	until   map[platform.Key]time.Time
	pending map[platform.Key]bool
	edges   map[platform.Key]bool
	now     time.Time
}

// NewInput 创建输入
func NewInput() *Input {
	return &Input{
		until:   make(map[platform.Key]time.Time),
		pending: make(map[platform.Key]bool),
		edges:   make(map[platform.Key]bool),
	}
}

// KeyFor 把终端按键映射为逻辑按键
func KeyFor(ev *tcell.EventKey) (platform.Key, bool) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return platform.KeyLeft, true
	case tcell.KeyRight:
		return platform.KeyRight, true
	case tcell.KeyUp:
		return platform.KeyUp, true
	case tcell.KeyDown:
		return platform.KeyDown, true
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return platform.KeyQuit, true
	case tcell.KeyEnter:
		return platform.KeyFire, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'x', 'X', ' ':
			return platform.KeyFire, true
		case 'p', 'P':
			return platform.KeyPause, true
		case 'q', 'Q':
			return platform.KeyQuit, true
		case 'm', 'M':
			return platform.KeyMute, true
		}
	}
	return 0, false
}

// Handle 记录一次按键事件，返回是否为游戏按键
func (in *Input) Handle(ev *tcell.EventKey, now time.Time) bool {
	k, ok := KeyFor(ev)
	if !ok {
		return false
	}
	in.until[k] = now.Add(keyHold)
	in.pending[k] = true
	return true
}

// BeginFrame 把上一帧以来的按键事件变为本帧的边沿
func (in *Input) BeginFrame(now time.Time) {
	in.now = now
	in.edges, in.pending = in.pending, in.edges
	clear(in.pending)
}

func (in *Input) IsPressed(k platform.Key) bool {
	return in.edges[k] || in.now.Before(in.until[k])
}

func (in *Input) WasPressed(k platform.Key) bool {
	return in.edges[k]
}
