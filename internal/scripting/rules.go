// Package scripting 用 Lua 脚本定义计分规则
//
// 脚本可以定义两个全局函数：
//
//	kill_score(kind, points) -> number
//	lives_bonus(lives) -> number
//
// 缺少的函数或运行出错时退回 game.DefaultRules。
package scripting

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/decker502/lastfighter/pkg/config"
	"github.com/decker502/lastfighter/pkg/game"
)

const (
	fnKillScore  = "kill_score"
	fnLivesBonus = "lives_bonus"
)

// Rules 实现 game.ScoreRules，只能在游戏循环的 goroutine 中使用
type Rules struct {
	vm       *lua.LState
	log      *zap.Logger
	fallback game.DefaultRules
}

// LoadRules 读取脚本文件，"data/" 开头的路径从嵌入资源读取
func LoadRules(path string, log *zap.Logger) (*Rules, error) {
	src, err := config.ReadDataFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules %s: %w", path, err)
	}
	r, err := NewRules(string(src), log)
	if err != nil {
		return nil, fmt.Errorf("rules %s: %w", path, err)
	}
	return r, nil
}

// NewRules 执行脚本源码并返回规则
func NewRules(src string, log *zap.Logger) (*Rules, error) {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState(lua.Options{SkipOpenLibs: true})
	// 只开放纯计算用的库
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.MathLibName, lua.OpenMath},
		{lua.StringLibName, lua.OpenString},
		{lua.TabLibName, lua.OpenTable},
	} {
		if err := vm.CallByParam(lua.P{Fn: vm.NewFunction(lib.fn), NRet: 0, Protect: true}, lua.LString(lib.name)); err != nil {
			vm.Close()
			return nil, fmt.Errorf("open lua lib %s: %w", lib.name, err)
		}
	}
	vm.SetGlobal("LIVES_BONUS_PER_LIFE", lua.LNumber(game.LivesBonusPerLife))

	if err := vm.DoString(src); err != nil {
		vm.Close()
		return nil, fmt.Errorf("run script: %w", err)
	}

	r := &Rules{vm: vm, log: log.Named("rules")}
	for _, name := range []string{fnKillScore, fnLivesBonus} {
		if r.vm.GetGlobal(name) == lua.LNil {
			r.log.Warn("lua function missing, using built-in rule", zap.String("function", name))
		}
	}
	return r, nil
}

// KillScore 调用 kill_score(kind, points)
func (r *Rules) KillScore(kind string, points int) int {
	if v, ok := r.call(fnKillScore, lua.LString(kind), lua.LNumber(points)); ok {
		return v
	}
	return r.fallback.KillScore(kind, points)
}

// LivesBonus 调用 lives_bonus(lives)
func (r *Rules) LivesBonus(lives int) int {
	if v, ok := r.call(fnLivesBonus, lua.LNumber(lives)); ok {
		return v
	}
	return r.fallback.LivesBonus(lives)
}

// Close 释放 Lua 虚拟机
func (r *Rules) Close() {
	r.vm.Close()
}

// call 调用返回单个数字的全局函数
func (r *Rules) call(name string, args ...lua.LValue) (int, bool) {
	fn := r.vm.GetGlobal(name)
	if fn == lua.LNil {
		return 0, false
	}
	if err := r.vm.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, args...); err != nil {
		r.log.Error("lua rule failed", zap.String("function", name), zap.Error(err))
		return 0, false
	}
	ret := r.vm.Get(-1)
	r.vm.Pop(1)

	n, ok := ret.(lua.LNumber)
	if !ok {
		r.log.Error("lua rule returned a non-number", zap.String("function", name), zap.String("type", ret.Type().String()))
		return 0, false
	}
	return int(n), true
}
