package components

// TimerComponent 周期计时器（射击间隔等）
type TimerComponent struct {
	Interval float64 // 间隔（秒）
	Last     float64 // 上次触发时刻
}

// NewTimer 从 t 开始计时
func NewTimer(interval, t float64) TimerComponent {
	return TimerComponent{Interval: interval, Last: t}
}

// Ready 距上次触发是否已满一个间隔
func (tm *TimerComponent) Ready(t float64) bool {
	return t-tm.Last >= tm.Interval
}

// Reset 记录在 t 触发
func (tm *TimerComponent) Reset(t float64) {
	tm.Last = t
}
