package ecs

import "sort"

// Action 定时动作
type Action func(t float64)

type scheduledAction struct {
	deadline float64
	seq      uint64
	name     string
	fn       Action
}

// ActionQueue 定时动作队列
//
// 由某个阶段或对象持有并注册为 Updatable，持有者退出时 Clear，
// 因此排好的动作不会在持有者消失后触发。
type ActionQueue struct {
	pending []scheduledAction
	seq     uint64
}

// NewActionQueue 创建空队列
func NewActionQueue() *ActionQueue {
	return &ActionQueue{}
}

// Schedule 在 deadline 时刻执行 fn，name 用于调试
func (q *ActionQueue) Schedule(deadline float64, name string, fn Action) {
	q.seq++
	q.pending = append(q.pending, scheduledAction{deadline: deadline, seq: q.seq, name: name, fn: fn})
	// 同一时刻的动作按安排顺序执行
	sort.SliceStable(q.pending, func(i, j int) bool {
		return q.pending[i].deadline < q.pending[j].deadline
	})
}

// Update 执行所有到期动作
//
// 动作中新安排且已到期的动作在同一次调用中执行。
// 动作中调用 Clear 会取消剩余动作。
func (q *ActionQueue) Update(dt, t float64) {
	for len(q.pending) > 0 && q.pending[0].deadline <= t {
		a := q.pending[0]
		q.pending = q.pending[1:]
		a.fn(t)
	}
}

// Pending 未执行动作的名字，按执行顺序
func (q *ActionQueue) Pending() []string {
	names := make([]string, len(q.pending))
	for i, a := range q.pending {
		names[i] = a.name
	}
	return names
}

// Len 未执行动作数量
func (q *ActionQueue) Len() int {
	return len(q.pending)
}

// Clear 取消所有动作
func (q *ActionQueue) Clear() {
	q.pending = nil
}
